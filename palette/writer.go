package palette

import (
	"encoding/binary"
	"fmt"
	"io"
)

// NewColor8Bit returns an 8-bit color table palette with the given entries.
func NewColor8Bit(version uint8, colors []uint8) (*Palette, error) {
	if err := checkNew(version, len(colors)); err != nil {
		return nil, err
	}
	return &Palette{version: version, typ: TypeColor8Bit, colors: colors}, nil
}

// NewColorRGB returns an RGB color table palette with the given entries.
func NewColorRGB(version uint8, rgb []RGB) (*Palette, error) {
	if err := checkNew(version, len(rgb)); err != nil {
		return nil, err
	}
	return &Palette{version: version, typ: TypeColorRGB, rgb: rgb}, nil
}

// NewGlyphs returns a glyph table palette with the given codepoints. Version
// 1 tables can only hold codepoints below 256.
func NewGlyphs(version uint8, glyphs []rune) (*Palette, error) {
	if err := checkNew(version, len(glyphs)); err != nil {
		return nil, err
	}
	if version == Version1 {
		for _, g := range glyphs {
			if g > 0xff {
				return nil, fmt.Errorf("palette: codepoint %U does not fit version 1", g)
			}
		}
	}
	return &Palette{version: version, typ: TypeGlyph, glyphs: glyphs}, nil
}

func checkNew(version uint8, n int) error {
	if version != Version1 && version != Version2 {
		return fmt.Errorf("%w: %d", ErrUnsupportedVersion, version)
	}
	if n == 0 || n > maxEntries {
		return fmt.Errorf("%w: %d", ErrBadCount, n)
	}
	return nil
}

type encoder struct {
	w io.Writer
}

func (e *encoder) encode(p *Palette) error {
	if _, err := io.WriteString(e.w, Signature); err != nil {
		return err
	}
	if _, err := e.w.Write([]byte{p.version, uint8(p.typ)}); err != nil {
		return err
	}

	var count [2]byte
	binary.BigEndian.PutUint16(count[:], uint16(p.Len()))
	if _, err := e.w.Write(count[:]); err != nil {
		return err
	}

	switch p.typ {
	case TypeColor8Bit:
		if _, err := e.w.Write(p.colors); err != nil {
			return err
		}
	case TypeColorRGB:
		for _, c := range p.rgb {
			if _, err := e.w.Write([]byte{c.R, c.G, c.B}); err != nil {
				return err
			}
		}
	case TypeGlyph:
		for _, g := range p.glyphs {
			if p.version == Version1 {
				if _, err := e.w.Write([]byte{uint8(g)}); err != nil {
					return err
				}
			} else {
				var b [4]byte
				binary.BigEndian.PutUint32(b[:], uint32(g))
				if _, err := e.w.Write(b[:]); err != nil {
					return err
				}
			}
		}
	}

	return nil
}

// Encode writes the palette p to w in nuru palette format.
func Encode(w io.Writer, p *Palette) error {
	e := encoder{w: w}
	return e.encode(p)
}
