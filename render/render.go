/*
Package render turns a decoded nuru image into a stream of ANSI terminal
escape sequences interleaved with the cell glyphs.

Every cell is rendered in isolation: its color sequences, its glyph, then a
style reset, so colors never bleed into the following cell. The grid is
clipped to the available output area, never scaled.
*/
package render

import (
	"bufio"
	"errors"
	"fmt"
	"io"

	"github.com/bodgit/nuru/image"
	"github.com/bodgit/nuru/palette"
)

const sgrReset = "\x1b[0m"

// blank is emitted for glyph mode none and for cells matching the glyph key.
const blank = ' '

var (
	// ErrColorOutOfRange means a cell carries a color value its mode cannot
	// express, such as a 4-bit cell value above 15.
	ErrColorOutOfRange = errors.New("render: color out of range")
	// ErrMissingPalette means the image declares a palette-indexed mode but
	// no palette of that kind was supplied.
	ErrMissingPalette = errors.New("render: missing palette")
)

// Renderer renders the cells of one image. It holds only read-only state
// and may be used for multiple renders, concurrently if need be.
type Renderer struct {
	img    *image.Image
	glyphs *palette.Palette
	colors *palette.Palette
}

// New returns a renderer for img. A glyph and/or color palette must be
// supplied when the image's modes index into one; palettes the modes do
// not need are ignored.
func New(img *image.Image, glyphs, colors *palette.Palette) (*Renderer, error) {
	if img.GlyphMode == image.GlyphModePalette && glyphs == nil {
		return nil, fmt.Errorf("%w: glyph mode is %s", ErrMissingPalette, img.GlyphMode)
	}
	if img.ColorMode == image.ColorModePalette && colors == nil {
		return nil, fmt.Errorf("%w: color mode is %s", ErrMissingPalette, img.ColorMode)
	}
	return &Renderer{img: img, glyphs: glyphs, colors: colors}, nil
}

// Render walks the grid in row-major order, clipped to cols by rows
// terminal cells, writing the escape stream to w. Output is buffered and
// flushed once after the full grid; a cell that fails to resolve aborts
// the render with nothing further written.
func (r *Renderer) Render(w io.Writer, cols, rows int) error {
	bw := bufio.NewWriter(w)

	maxRows := int(r.img.Rows)
	if rows < maxRows {
		maxRows = rows
	}

	for row := 0; row < maxRows; row++ {
		width := 0
		for col := 0; col < int(r.img.Cols); col++ {
			// Clipped cells are never visited: every rendered cell
			// occupies at least one column, so a spent width budget
			// means no further cell on this row can fit.
			if width >= cols {
				break
			}

			cell := r.img.At(col, row)

			g, gw, err := r.glyph(cell)
			if err != nil {
				return err
			}
			if width+gw > cols {
				break
			}

			if err := r.color(bw, cell); err != nil {
				return err
			}
			if _, err := bw.WriteRune(g); err != nil {
				return err
			}
			if _, err := bw.WriteString(sgrReset); err != nil {
				return err
			}

			width += gw
		}
		if err := bw.WriteByte('\n'); err != nil {
			return err
		}
	}

	return bw.Flush()
}
