package validation

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidateDisplayName(t *testing.T) {
	tests := []struct {
		name      string
		input     string
		expectErr bool
	}{
		{"Valid simple", "TravelGuru", false},
		{"Valid with digits", "Sage42", false},
		{"Valid with underscore", "eco_warrior", false},
		{"Valid minimum length", "abc", false},
		{"Valid maximum length", "a" + strings.Repeat("b", 29), false},
		{"Empty", "", true},
		{"Too short", "ab", true},
		{"Too long", "a" + strings.Repeat("b", 30), true},
		{"Starts with digit", "1user", true},
		{"Starts with underscore", "_user", true},
		{"Contains space", "two words", true},
		{"Contains hyphen", "some-name", true},
		{"Contains slash", "a/b/c", true},
		{"Reserved lowercase", "admin", true},
		{"Reserved mixed case", "Admin", true},
		{"Reserved route name", "avatar", true},
		{"Reserved metrics", "metrics", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateDisplayName(tt.input)
			if tt.expectErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
