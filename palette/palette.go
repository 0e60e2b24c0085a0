/*
Package palette implements a nuru palette decoder and encoder.

A palette file maps 8-bit cell indices to displayable values. It starts with
the signature "NURUPAL" followed by a version byte, a type byte and a
big-endian 16-bit entry count. The entries follow immediately: one byte per
entry for an 8-bit color table, three bytes per entry for an RGB table, and
for a glyph table one byte per codepoint in version 1 or a big-endian 32-bit
scalar per codepoint in version 2.
*/
package palette

import (
	"errors"
	"fmt"
)

// Signature identifies a nuru palette file.
const Signature = "NURUPAL"

// FileExt is the conventional filename extension for palette files.
const FileExt = "nup"

const maxEntries = 256

// Palette file format versions understood by this package.
const (
	Version1 = 1
	Version2 = 2
)

var (
	// ErrBadSignature means the buffer does not start with Signature.
	ErrBadSignature = errors.New("palette: bad signature")
	// ErrUnsupportedVersion means the declared format version is not implemented.
	ErrUnsupportedVersion = errors.New("palette: unsupported version")
	// ErrUnknownType means the type byte is not one of the defined table types.
	ErrUnknownType = errors.New("palette: unknown palette type")
	// ErrBadCount means the declared entry count is zero or above 256.
	ErrBadCount = errors.New("palette: invalid entry count")
	// ErrTypeMismatch means a lookup was performed against the wrong table type.
	ErrTypeMismatch = errors.New("palette: type mismatch")
	// ErrIndexOutOfRange means a lookup index is beyond the table length.
	ErrIndexOutOfRange = errors.New("palette: index out of range")
)

// Type discriminates the three mutually exclusive palette shapes.
type Type uint8

const (
	// TypeColor8Bit maps indices to 8-bit terminal color numbers.
	TypeColor8Bit Type = 1
	// TypeColorRGB maps indices to 24-bit color triples.
	TypeColorRGB Type = 2
	// TypeGlyph maps indices to Unicode codepoints.
	TypeGlyph Type = 3
)

func (t Type) String() string {
	switch t {
	case TypeColor8Bit:
		return "color-8bit"
	case TypeColorRGB:
		return "color-rgb"
	case TypeGlyph:
		return "glyph"
	}
	return fmt.Sprintf("type(%d)", uint8(t))
}

// RGB is one entry of a TypeColorRGB table.
type RGB struct {
	R, G, B uint8
}

// Palette is a decoded palette file. It is immutable once decoded and safe
// to share read-only across concurrent renders. Exactly one of the three
// tables is populated, according to Type.
type Palette struct {
	version uint8
	typ     Type
	colors  []uint8
	rgb     []RGB
	glyphs  []rune
}

// Version returns the declared format version.
func (p *Palette) Version() uint8 {
	return p.version
}

// Type returns which of the three table shapes this palette holds.
func (p *Palette) Type() Type {
	return p.typ
}

// Len returns the number of entries in the table.
func (p *Palette) Len() int {
	switch p.typ {
	case TypeColor8Bit:
		return len(p.colors)
	case TypeColorRGB:
		return len(p.rgb)
	case TypeGlyph:
		return len(p.glyphs)
	}
	return 0
}

// Color8 resolves an index against an 8-bit color table.
func (p *Palette) Color8(i int) (uint8, error) {
	if p.typ != TypeColor8Bit {
		return 0, fmt.Errorf("%w: have %s, want %s", ErrTypeMismatch, p.typ, TypeColor8Bit)
	}
	if i < 0 || i >= len(p.colors) {
		return 0, fmt.Errorf("%w: %d of %d", ErrIndexOutOfRange, i, len(p.colors))
	}
	return p.colors[i], nil
}

// RGB resolves an index against an RGB color table.
func (p *Palette) RGB(i int) (RGB, error) {
	if p.typ != TypeColorRGB {
		return RGB{}, fmt.Errorf("%w: have %s, want %s", ErrTypeMismatch, p.typ, TypeColorRGB)
	}
	if i < 0 || i >= len(p.rgb) {
		return RGB{}, fmt.Errorf("%w: %d of %d", ErrIndexOutOfRange, i, len(p.rgb))
	}
	return p.rgb[i], nil
}

// Glyph resolves an index against a glyph table.
func (p *Palette) Glyph(i int) (rune, error) {
	if p.typ != TypeGlyph {
		return 0, fmt.Errorf("%w: have %s, want %s", ErrTypeMismatch, p.typ, TypeGlyph)
	}
	if i < 0 || i >= len(p.glyphs) {
		return 0, fmt.Errorf("%w: %d of %d", ErrIndexOutOfRange, i, len(p.glyphs))
	}
	return p.glyphs[i], nil
}
