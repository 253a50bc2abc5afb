// Package avatar renders deterministic letter avatars as PNG images.
//
// Generation is a pure function of the letter and the dimensions: the same
// inputs always produce byte-identical output, so the result can be cached
// forever and compared in tests.
package avatar

import (
	"bytes"
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"strings"
	"sync"
	"unicode"

	"birdwatch/internal/models"

	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/math/fixed"
)

// DefaultSize is the side length of an avatar when the caller does not ask
// for specific dimensions.
const DefaultSize = 100

// palette is the fixed background palette; the letter's codepoint selects the
// color, so a given letter always gets the same background.
var palette = []color.RGBA{
	{R: 0xFF, G: 0x57, B: 0x33, A: 0xFF}, // #FF5733
	{R: 0x33, G: 0xFF, B: 0x57, A: 0xFF}, // #33FF57
	{R: 0x33, G: 0x57, B: 0xFF, A: 0xFF}, // #3357FF
	{R: 0xF3, G: 0x33, B: 0xFF, A: 0xFF}, // #F333FF
	{R: 0xFF, G: 0x33, B: 0xB5, A: 0xFF}, // #FF33B5
}

var (
	parseOnce  sync.Once
	parsedFont *opentype.Font
	parseErr   error
)

func regularFont() (*opentype.Font, error) {
	parseOnce.Do(func() {
		parsedFont, parseErr = opentype.Parse(goregular.TTF)
	})
	return parsedFont, parseErr
}

// LetterFor derives the avatar letter from a display name: the uppercased
// first character. An empty or unprintable name is invalid input.
func LetterFor(name string) (rune, error) {
	trimmed := strings.TrimSpace(name)
	if trimmed == "" {
		return 0, models.NewValidationError("Avatar name must not be empty")
	}
	first := unicode.ToUpper([]rune(trimmed)[0])
	if !unicode.IsGraphic(first) {
		return 0, models.NewValidationError("Avatar name must start with a printable character")
	}
	return first, nil
}

// BackgroundFor returns the palette color for a letter.
func BackgroundFor(letter rune) color.RGBA {
	return palette[int(letter)%len(palette)]
}

// Generate renders a width x height PNG: the palette background with the
// letter drawn centered in white at a font size of width/2.
func Generate(letter rune, width, height int) ([]byte, error) {
	if width <= 0 || height <= 0 {
		return nil, models.NewValidationError("Avatar dimensions must be positive")
	}
	if !unicode.IsGraphic(letter) {
		return nil, models.NewValidationError("Avatar letter must be a printable character")
	}

	ft, err := regularFont()
	if err != nil {
		return nil, models.NewInternalError(err)
	}

	face, err := opentype.NewFace(ft, &opentype.FaceOptions{
		Size:    float64(width) / 2,
		DPI:     72,
		Hinting: font.HintingNone,
	})
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	defer face.Close()

	img := image.NewRGBA(image.Rect(0, 0, width, height))
	draw.Draw(img, img.Bounds(), image.NewUniform(BackgroundFor(letter)), image.Point{}, draw.Src)

	s := string(letter)
	bounds, _ := font.BoundString(face, s)

	// Place the dot so the glyph's bounding box is centered on the canvas.
	d := &font.Drawer{
		Dst:  img,
		Src:  image.White,
		Face: face,
		Dot: fixed.Point26_6{
			X: fixed.I(width)/2 - (bounds.Min.X+bounds.Max.X)/2,
			Y: fixed.I(height)/2 - (bounds.Min.Y+bounds.Max.Y)/2,
		},
	}
	d.DrawString(s)

	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, models.NewInternalError(err)
	}
	return buf.Bytes(), nil
}

// GenerateForName is the common path: derive the letter from a name and
// render at the default size.
func GenerateForName(name string) ([]byte, error) {
	letter, err := LetterFor(name)
	if err != nil {
		return nil, err
	}
	return Generate(letter, DefaultSize, DefaultSize)
}
