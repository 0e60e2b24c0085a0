package render

import (
	"bufio"
	"fmt"

	"github.com/bodgit/nuru/image"
	"github.com/bodgit/nuru/palette"
	"github.com/mattn/go-runewidth"
)

// SGR parameter bases for setting the foreground; backgrounds are the same
// plus ten.
const (
	sgrFgNormal = 30
	sgrFgBright = 90
	bgOffset    = 10
)

// color emits the foreground and background sequences for one cell. The two
// fields are resolved independently with the same algorithm; a field equal
// to its sentinel key emits nothing at all.
func (r *Renderer) color(bw *bufio.Writer, c image.Cell) error {
	if err := r.colorField(bw, c.Fg, r.img.FgKey, 0); err != nil {
		return err
	}
	return r.colorField(bw, c.Bg, r.img.BgKey, bgOffset)
}

func (r *Renderer) colorField(bw *bufio.Writer, v, key uint8, offset int) error {
	if r.img.ColorMode == image.ColorModeNone || v == key {
		return nil
	}

	switch r.img.ColorMode {
	case image.ColorMode4Bit:
		if v > 15 {
			return fmt.Errorf("%w: %d is not a 4-bit color", ErrColorOutOfRange, v)
		}
		// 0-7 are the standard colors, 8-15 their bright counterparts.
		sgr := sgrFgNormal + int(v)
		if v > 7 {
			sgr = sgrFgBright + int(v) - 8
		}
		_, err := fmt.Fprintf(bw, "\x1b[%dm", sgr+offset)
		return err

	case image.ColorMode8Bit:
		_, err := fmt.Fprintf(bw, "\x1b[%d;5;%dm", 38+offset, v)
		return err

	case image.ColorModePalette:
		switch r.colors.Type() {
		case palette.TypeColorRGB:
			rgb, err := r.colors.RGB(int(v))
			if err != nil {
				return err
			}
			_, err = fmt.Fprintf(bw, "\x1b[%d;2;%d;%d;%dm", 38+offset, rgb.R, rgb.G, rgb.B)
			return err
		default:
			col, err := r.colors.Color8(int(v))
			if err != nil {
				return err
			}
			_, err = fmt.Fprintf(bw, "\x1b[%d;5;%dm", 38+offset, col)
			return err
		}
	}

	return nil
}

// glyph resolves the rune for one cell along with the number of terminal
// columns it will occupy.
func (r *Renderer) glyph(c image.Cell) (rune, int, error) {
	g := rune(blank)

	switch r.img.GlyphMode {
	case image.GlyphModeNone:
		// Always blank, whatever is stored.

	case image.GlyphModeASCII, image.GlyphModeUnicode:
		if c.Glyph != uint16(r.img.GlyphKey) {
			g = rune(c.Glyph)
		}

	case image.GlyphModePalette:
		if c.Glyph != uint16(r.img.GlyphKey) {
			var err error
			if g, err = r.glyphs.Glyph(int(c.Glyph)); err != nil {
				return 0, 0, err
			}
		}
	}

	w := runewidth.RuneWidth(g)
	if w == 0 {
		w = 1
	}
	return g, w, nil
}
