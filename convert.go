package nuru

import (
	"errors"
	stdimage "image"
	"image/color"

	"github.com/ericpauley/go-quantize/quantize"

	"github.com/bodgit/nuru/image"
	"github.com/bodgit/nuru/palette"
)

// Index 255 is kept out of the generated palette so it can serve as the
// background sentinel key.
const maxConvertColors = 255

// Convert quantizes a pixel image down to at most 255 colors and resamples
// it onto a character grid of the given width, producing a nuru image of
// background-colored blank cells plus the RGB palette it indexes into.
// paletteName is recorded in the image header as the companion palette to
// load.
func Convert(src stdimage.Image, cols int, paletteName string) (*image.Image, *palette.Palette, error) {
	b := src.Bounds()
	if b.Dx() == 0 || b.Dy() == 0 {
		return nil, nil, errors.New("nuru: empty source image")
	}
	if cols <= 0 || cols > 0xffff {
		return nil, nil, errors.New("nuru: bad column count")
	}

	// A character cell is roughly twice as tall as it is wide.
	rows := b.Dy() * cols / b.Dx() / 2
	if rows < 1 {
		rows = 1
	}
	if rows > 0xffff {
		return nil, nil, errors.New("nuru: bad row count")
	}

	q := quantize.MedianCutQuantizer{}
	p := q.Quantize(make(color.Palette, 0, maxConvertColors), src)

	entries := make([]palette.RGB, len(p))
	for i, c := range p {
		r, g, b, _ := c.RGBA()
		entries[i] = palette.RGB{R: uint8(r >> 8), G: uint8(g >> 8), B: uint8(b >> 8)}
	}
	pal, err := palette.NewColorRGB(palette.Version2, entries)
	if err != nil {
		return nil, nil, err
	}

	img, err := image.New(image.Config{
		Version:              image.Version1,
		ColorMode:            image.ColorModePalette,
		ColorPaletteRequired: true,
		GlyphMode:            image.GlyphModeNone,
		Cols:                 uint16(cols),
		Rows:                 uint16(rows),
		BgKey:                0xff,
		ColorPalette:         paletteName,
	})
	if err != nil {
		return nil, nil, err
	}

	// Nearest sampling at the center of each cell's footprint.
	for row := 0; row < rows; row++ {
		y := b.Min.Y + (2*row+1)*b.Dy()/(2*rows)
		for col := 0; col < cols; col++ {
			x := b.Min.X + (2*col+1)*b.Dx()/(2*cols)
			img.Set(col, row, image.Cell{
				Bg: uint8(p.Index(src.At(x, y))),
			})
		}
	}

	return img, pal, nil
}
