/*
Package image implements a nuru character-image decoder and encoder.

A nuru image is a row-major grid of character cells, each holding a glyph
value and an 8-bit foreground and background value. How the stored values
are interpreted is selected per image by a color mode and a glyph mode; the
palette-indexed modes resolve values through a companion palette file which
is loaded separately (see the palette package).

The file starts with the signature "NURUIMG" followed by a version byte,
three mode bytes, big-endian 16-bit column and row counts, three sentinel
key bytes, two palette name fields, a comment field and finally cols*rows
fixed-size cell records. The high bit of the color and glyph mode bytes
flags that a named companion palette must be located and loaded before the
image can be rendered; the decoder only surfaces the flag and the name.

Version 1 stores one byte per glyph and fixed-width NUL-padded string
fields; version 2 widens glyphs to big-endian 16-bit values and uses
length-prefixed string fields.
*/
package image

import (
	"errors"
	"fmt"
)

// Signature identifies a nuru image file.
const Signature = "NURUIMG"

// FileExt is the conventional filename extension for image files.
const FileExt = "nui"

// Image file format versions understood by this package.
const (
	Version1 = 1
	Version2 = 2
)

// Fixed field widths used by version 1.
const (
	nameLenV1    = 7
	commentLenV1 = 32
)

// paletteFlag on a raw mode byte marks the mode as needing a named
// companion palette.
const paletteFlag = 0x80

var (
	// ErrBadSignature means the buffer does not start with Signature.
	ErrBadSignature = errors.New("image: bad signature")
	// ErrUnsupportedVersion means the declared format version is not implemented.
	ErrUnsupportedVersion = errors.New("image: unsupported version")
	// ErrUnknownMode means a mode byte does not map to a defined mode.
	ErrUnknownMode = errors.New("image: unknown mode")
	// ErrEmptyImage means the declared grid has zero columns or zero rows.
	ErrEmptyImage = errors.New("image: empty image")
)

// ColorMode selects how the stored fg and bg values of every cell are
// interpreted.
type ColorMode uint8

const (
	// ColorModeNone leaves the terminal colors untouched.
	ColorModeNone ColorMode = 0
	// ColorMode4Bit uses the stored value as one of the 16 standard colors.
	ColorMode4Bit ColorMode = 1
	// ColorMode8Bit uses the stored value as a 256-color number.
	ColorMode8Bit ColorMode = 2
	// ColorModePalette uses the stored value as an index into a color palette.
	ColorModePalette ColorMode = 3
)

func (m ColorMode) String() string {
	switch m {
	case ColorModeNone:
		return "none"
	case ColorMode4Bit:
		return "4bit"
	case ColorMode8Bit:
		return "8bit"
	case ColorModePalette:
		return "palette"
	}
	return fmt.Sprintf("color-mode(%d)", uint8(m))
}

// GlyphMode selects how the stored glyph value of every cell is interpreted.
type GlyphMode uint8

const (
	// GlyphModeNone renders every cell as a blank, whatever is stored.
	GlyphModeNone GlyphMode = 0
	// GlyphModeASCII uses the stored value as an ASCII character code.
	GlyphModeASCII GlyphMode = 1
	// GlyphModeUnicode uses the stored value as a Unicode codepoint.
	GlyphModeUnicode GlyphMode = 2
	// GlyphModePalette uses the stored value as an index into a glyph palette.
	GlyphModePalette GlyphMode = 3
)

func (m GlyphMode) String() string {
	switch m {
	case GlyphModeNone:
		return "none"
	case GlyphModeASCII:
		return "ascii"
	case GlyphModeUnicode:
		return "unicode"
	case GlyphModePalette:
		return "palette"
	}
	return fmt.Sprintf("glyph-mode(%d)", uint8(m))
}

// MdataMode declares whether an opaque metadata payload follows the cell
// data. The payload is never interpreted here.
type MdataMode uint8

const (
	// MdataModeNone means the file ends with the cell data.
	MdataModeNone MdataMode = 0
	// MdataModeRaw means an opaque payload follows the cell data.
	MdataModeRaw MdataMode = 1
)

func (m MdataMode) String() string {
	switch m {
	case MdataModeNone:
		return "none"
	case MdataModeRaw:
		return "raw"
	}
	return fmt.Sprintf("mdata-mode(%d)", uint8(m))
}

// Cell is one grid position. Glyph holds a palette index or codepoint
// depending on the image's glyph mode; version 1 files store only the low
// byte.
type Cell struct {
	Glyph  uint16
	Fg, Bg uint8
}

// Config holds everything from an image header. The sentinel keys carry
// the in-band "no override" convention of the wire format: a cell field
// equal to its key means the terminal default is kept for that field.
type Config struct {
	Version   uint8
	ColorMode ColorMode
	GlyphMode GlyphMode
	MdataMode MdataMode

	// GlyphPaletteRequired and ColorPaletteRequired surface the high bit
	// of the respective mode byte: the named companion palette must be
	// loaded by the caller before rendering.
	GlyphPaletteRequired bool
	ColorPaletteRequired bool

	Cols, Rows uint16

	GlyphKey, FgKey, BgKey uint8

	GlyphPalette, ColorPalette string
	Comment                    string
}

// Image is a decoded nuru image: its header plus cols*rows cells in
// row-major order. Immutable once decoded and safe to share read-only
// across concurrent renders.
type Image struct {
	Config

	// Metadata is the opaque payload following the cell data, present
	// only when MdataMode says so.
	Metadata []byte

	cells []Cell
}

// New returns an image with the given header and an all-zero cell grid,
// for callers constructing an image to encode.
func New(cfg Config) (*Image, error) {
	if err := validConfig(&cfg); err != nil {
		return nil, err
	}
	return &Image{
		Config: cfg,
		cells:  make([]Cell, int(cfg.Cols)*int(cfg.Rows)),
	}, nil
}

func validConfig(cfg *Config) error {
	if cfg.Version != Version1 && cfg.Version != Version2 {
		return fmt.Errorf("%w: %d", ErrUnsupportedVersion, cfg.Version)
	}
	if cfg.ColorMode > ColorModePalette {
		return fmt.Errorf("%w: color mode %d", ErrUnknownMode, uint8(cfg.ColorMode))
	}
	if cfg.GlyphMode > GlyphModePalette {
		return fmt.Errorf("%w: glyph mode %d", ErrUnknownMode, uint8(cfg.GlyphMode))
	}
	if cfg.MdataMode > MdataModeRaw {
		return fmt.Errorf("%w: metadata mode %d", ErrUnknownMode, uint8(cfg.MdataMode))
	}
	if cfg.Cols == 0 || cfg.Rows == 0 {
		return fmt.Errorf("%w: %dx%d", ErrEmptyImage, cfg.Cols, cfg.Rows)
	}
	return nil
}

// At returns the cell at the given column and row. It panics if the
// position is outside the grid, like indexing a slice would.
func (m *Image) At(col, row int) Cell {
	return m.cells[m.index(col, row)]
}

// Set replaces the cell at the given column and row, for callers
// constructing an image to encode.
func (m *Image) Set(col, row int, c Cell) {
	m.cells[m.index(col, row)] = c
}

func (m *Image) index(col, row int) int {
	if col < 0 || col >= int(m.Cols) || row < 0 || row >= int(m.Rows) {
		panic(fmt.Sprintf("image: cell (%d,%d) outside %dx%d grid", col, row, m.Cols, m.Rows))
	}
	return row*int(m.Cols) + col
}
