package avatar

import (
	"bytes"
	"image/png"
	"testing"

	"birdwatch/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLetterFor(t *testing.T) {
	tests := []struct {
		name      string
		input     string
		expected  rune
		expectErr bool
	}{
		{"Uppercase kept", "Alice", 'A', false},
		{"Lowercase uppercased", "alice", 'A', false},
		{"Surrounding whitespace trimmed", "  bob  ", 'B', false},
		{"Digit allowed", "7thSeal", '7', false},
		{"Empty", "", 0, true},
		{"Whitespace only", "   ", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			letter, err := LetterFor(tt.input)
			if tt.expectErr {
				assert.Error(t, err)
				assert.True(t, models.HasCode(err, models.CodeValidation))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expected, letter)
		})
	}
}

func TestBackgroundFor(t *testing.T) {
	// 'A' is codepoint 65, 65 % 5 == 0, so the first palette entry.
	assert.Equal(t, palette[0], BackgroundFor('A'))
	// 'B' is 66 -> second entry.
	assert.Equal(t, palette[1], BackgroundFor('B'))
	// Same letter, same color, always.
	assert.Equal(t, BackgroundFor('Q'), BackgroundFor('Q'))
}

func TestGenerateDeterministic(t *testing.T) {
	first, err := Generate('A', DefaultSize, DefaultSize)
	require.NoError(t, err)
	second, err := Generate('A', DefaultSize, DefaultSize)
	require.NoError(t, err)

	assert.Equal(t, first, second, "identical inputs must produce identical bytes")
}

func TestGenerateDistinctLetters(t *testing.T) {
	a, err := Generate('A', DefaultSize, DefaultSize)
	require.NoError(t, err)
	b, err := Generate('B', DefaultSize, DefaultSize)
	require.NoError(t, err)

	assert.False(t, bytes.Equal(a, b), "different letters must render differently")
}

func TestGenerateValidPNG(t *testing.T) {
	data, err := Generate('Z', 64, 64)
	require.NoError(t, err)

	img, err := png.Decode(bytes.NewReader(data))
	require.NoError(t, err)
	assert.Equal(t, 64, img.Bounds().Dx())
	assert.Equal(t, 64, img.Bounds().Dy())

	// A corner pixel is pure background.
	bg := BackgroundFor('Z')
	r, g, b, _ := img.At(1, 1).RGBA()
	assert.Equal(t, uint32(bg.R), r>>8)
	assert.Equal(t, uint32(bg.G), g>>8)
	assert.Equal(t, uint32(bg.B), b>>8)
}

func TestGenerateInvalidDimensions(t *testing.T) {
	_, err := Generate('A', 0, 100)
	assert.True(t, models.HasCode(err, models.CodeValidation))

	_, err = Generate('A', 100, -1)
	assert.True(t, models.HasCode(err, models.CodeValidation))
}

func TestGenerateForNameNormalizesCase(t *testing.T) {
	upper, err := GenerateForName("Carol")
	require.NoError(t, err)
	lower, err := GenerateForName("carol")
	require.NoError(t, err)

	assert.Equal(t, upper, lower, "case variants of a name share an avatar")
}
