// Package validation provides input validation utilities
package validation

import (
	"fmt"
	"regexp"
	"strings"
)

var displayNameRegex = regexp.MustCompile(`^[A-Za-z][A-Za-z0-9_]{2,29}$`)

var reservedDisplayNames = map[string]struct{}{
	"admin":    {},
	"api":      {},
	"auth":     {},
	"avatar":   {},
	"login":    {},
	"logout":   {},
	"me":       {},
	"metrics":  {},
	"posts":    {},
	"profile":  {},
	"register": {},
	"users":    {},
}

// ValidateDisplayName validates display name format and reserved names.
// Names appear in URLs (the avatar route), so the charset stays conservative.
func ValidateDisplayName(name string) error {
	if name == "" {
		return fmt.Errorf("display name is required")
	}
	if !displayNameRegex.MatchString(name) {
		return fmt.Errorf("display name must start with a letter and contain 3-30 letters, numbers, or underscores")
	}
	if _, exists := reservedDisplayNames[strings.ToLower(name)]; exists {
		return fmt.Errorf("display name is reserved")
	}
	return nil
}
