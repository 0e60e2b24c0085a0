package palette

import (
	"errors"
	"fmt"

	"github.com/bodgit/nuru/cursor"
)

var errTooMuch = errors.New("palette: too much data")

type decoder struct {
	c *cursor.Cursor

	pal Palette
}

func (d *decoder) readHeader() error {
	sig, err := d.c.Bytes(len(Signature))
	if err != nil {
		return err
	}
	if string(sig) != Signature {
		return ErrBadSignature
	}

	if d.pal.version, err = d.c.Uint8(); err != nil {
		return err
	}
	if d.pal.version != Version1 && d.pal.version != Version2 {
		return fmt.Errorf("%w: %d", ErrUnsupportedVersion, d.pal.version)
	}

	typ, err := d.c.Uint8()
	if err != nil {
		return err
	}
	d.pal.typ = Type(typ)
	if d.pal.typ < TypeColor8Bit || d.pal.typ > TypeGlyph {
		return fmt.Errorf("%w: %d", ErrUnknownType, typ)
	}

	return nil
}

func (d *decoder) entryWidth() int {
	switch d.pal.typ {
	case TypeColorRGB:
		return 3
	case TypeGlyph:
		if d.pal.version == Version2 {
			return 4
		}
	}
	return 1
}

func (d *decoder) readEntries() error {
	count, err := d.c.Uint16()
	if err != nil {
		return err
	}
	if count == 0 || count > maxEntries {
		return fmt.Errorf("%w: %d", ErrBadCount, count)
	}

	width := d.entryWidth()
	if d.c.Remaining() < int(count)*width {
		return cursor.ErrTruncated
	}

	switch d.pal.typ {
	case TypeColor8Bit:
		d.pal.colors = make([]uint8, count)
		for i := range d.pal.colors {
			if d.pal.colors[i], err = d.c.Uint8(); err != nil {
				return err
			}
		}
	case TypeColorRGB:
		d.pal.rgb = make([]RGB, count)
		for i := range d.pal.rgb {
			b, err := d.c.Bytes(3)
			if err != nil {
				return err
			}
			d.pal.rgb[i] = RGB{b[0], b[1], b[2]}
		}
	case TypeGlyph:
		d.pal.glyphs = make([]rune, count)
		for i := range d.pal.glyphs {
			if d.pal.version == Version1 {
				b, err := d.c.Uint8()
				if err != nil {
					return err
				}
				d.pal.glyphs[i] = rune(b)
			} else {
				u, err := d.c.Uint32()
				if err != nil {
					return err
				}
				d.pal.glyphs[i] = rune(u)
			}
		}
	}

	return nil
}

func (d *decoder) decode(b []byte) error {
	d.c = cursor.New(b)

	if err := d.readHeader(); err != nil {
		return err
	}
	if err := d.readEntries(); err != nil {
		return err
	}
	if d.c.Remaining() != 0 {
		return errTooMuch
	}

	return nil
}

// Decode parses b as a nuru palette file. No partial palette is ever
// returned; on error the result is nil.
func Decode(b []byte) (*Palette, error) {
	var d decoder
	if err := d.decode(b); err != nil {
		return nil, err
	}
	return &d.pal, nil
}
