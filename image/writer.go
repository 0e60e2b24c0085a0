package image

import (
	"encoding/binary"
	"fmt"
	"io"
)

type encoder struct {
	w io.Writer
}

func (e *encoder) writeString(version uint8, s string, v1Width int) error {
	if version == Version1 {
		if len(s) > v1Width {
			return fmt.Errorf("image: %q does not fit a %d byte field", s, v1Width)
		}
		b := make([]byte, v1Width)
		copy(b, s)
		_, err := e.w.Write(b)
		return err
	}

	if v1Width > nameLenV1 {
		if len(s) > 0xffff {
			return fmt.Errorf("image: comment of %d bytes is too long", len(s))
		}
		var l [2]byte
		binary.BigEndian.PutUint16(l[:], uint16(len(s)))
		if _, err := e.w.Write(l[:]); err != nil {
			return err
		}
	} else {
		if len(s) > 0xff {
			return fmt.Errorf("image: name of %d bytes is too long", len(s))
		}
		if _, err := e.w.Write([]byte{uint8(len(s))}); err != nil {
			return err
		}
	}
	_, err := io.WriteString(e.w, s)
	return err
}

func modeByte(mode uint8, required bool) uint8 {
	if required {
		mode |= paletteFlag
	}
	return mode
}

func (e *encoder) writeHeader(m *Image) error {
	if _, err := io.WriteString(e.w, Signature); err != nil {
		return err
	}

	hdr := []byte{
		m.Version,
		modeByte(uint8(m.ColorMode), m.ColorPaletteRequired),
		modeByte(uint8(m.GlyphMode), m.GlyphPaletteRequired),
		uint8(m.MdataMode),
	}
	if _, err := e.w.Write(hdr); err != nil {
		return err
	}

	var dims [4]byte
	binary.BigEndian.PutUint16(dims[0:], m.Cols)
	binary.BigEndian.PutUint16(dims[2:], m.Rows)
	if _, err := e.w.Write(dims[:]); err != nil {
		return err
	}

	if _, err := e.w.Write([]byte{m.GlyphKey, m.FgKey, m.BgKey}); err != nil {
		return err
	}

	if err := e.writeString(m.Version, m.GlyphPalette, nameLenV1); err != nil {
		return err
	}
	if err := e.writeString(m.Version, m.ColorPalette, nameLenV1); err != nil {
		return err
	}
	return e.writeString(m.Version, m.Comment, commentLenV1)
}

func (e *encoder) writeCells(m *Image) error {
	width := 3
	if m.Version == Version2 {
		width = 4
	}

	buf := make([]byte, 0, len(m.cells)*width)
	for _, c := range m.cells {
		if m.Version == Version1 {
			if c.Glyph > 0xff {
				return fmt.Errorf("image: glyph %#x does not fit version 1", c.Glyph)
			}
			buf = append(buf, uint8(c.Glyph))
		} else {
			buf = append(buf, uint8(c.Glyph>>8), uint8(c.Glyph))
		}
		buf = append(buf, c.Fg, c.Bg)
	}

	_, err := e.w.Write(buf)
	return err
}

func (e *encoder) encode(m *Image) error {
	if err := validConfig(&m.Config); err != nil {
		return err
	}
	if len(m.cells) != int(m.Cols)*int(m.Rows) {
		return fmt.Errorf("image: %d cells for a %dx%d grid", len(m.cells), m.Cols, m.Rows)
	}

	if err := e.writeHeader(m); err != nil {
		return err
	}
	if err := e.writeCells(m); err != nil {
		return err
	}

	if m.MdataMode == MdataModeRaw && len(m.Metadata) > 0 {
		if _, err := e.w.Write(m.Metadata); err != nil {
			return err
		}
	}

	return nil
}

// Encode writes the image m to w in nuru image format.
func Encode(w io.Writer, m *Image) error {
	e := encoder{w: w}
	return e.encode(m)
}
