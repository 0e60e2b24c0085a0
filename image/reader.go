package image

import (
	"errors"
	"fmt"

	"github.com/bodgit/nuru/cursor"
)

var errTooMuch = errors.New("image: too much data")

type decoder struct {
	c *cursor.Cursor

	img Image
}

func (d *decoder) readMode() (uint8, bool, error) {
	raw, err := d.c.Uint8()
	if err != nil {
		return 0, false, err
	}
	return raw &^ paletteFlag, raw&paletteFlag != 0, nil
}

func (d *decoder) readHeader() error {
	sig, err := d.c.Bytes(len(Signature))
	if err != nil {
		return err
	}
	if string(sig) != Signature {
		return ErrBadSignature
	}

	cfg := &d.img.Config

	if cfg.Version, err = d.c.Uint8(); err != nil {
		return err
	}
	if cfg.Version != Version1 && cfg.Version != Version2 {
		return fmt.Errorf("%w: %d", ErrUnsupportedVersion, cfg.Version)
	}

	color, colorPal, err := d.readMode()
	if err != nil {
		return err
	}
	if ColorMode(color) > ColorModePalette {
		return fmt.Errorf("%w: color mode %d", ErrUnknownMode, color)
	}
	cfg.ColorMode, cfg.ColorPaletteRequired = ColorMode(color), colorPal

	glyph, glyphPal, err := d.readMode()
	if err != nil {
		return err
	}
	if GlyphMode(glyph) > GlyphModePalette {
		return fmt.Errorf("%w: glyph mode %d", ErrUnknownMode, glyph)
	}
	cfg.GlyphMode, cfg.GlyphPaletteRequired = GlyphMode(glyph), glyphPal

	mdata, err := d.c.Uint8()
	if err != nil {
		return err
	}
	if MdataMode(mdata) > MdataModeRaw {
		return fmt.Errorf("%w: metadata mode %d", ErrUnknownMode, mdata)
	}
	cfg.MdataMode = MdataMode(mdata)

	if cfg.Cols, err = d.c.Uint16(); err != nil {
		return err
	}
	if cfg.Rows, err = d.c.Uint16(); err != nil {
		return err
	}
	if cfg.Cols == 0 || cfg.Rows == 0 {
		return fmt.Errorf("%w: %dx%d", ErrEmptyImage, cfg.Cols, cfg.Rows)
	}

	if cfg.GlyphKey, err = d.c.Uint8(); err != nil {
		return err
	}
	if cfg.FgKey, err = d.c.Uint8(); err != nil {
		return err
	}
	if cfg.BgKey, err = d.c.Uint8(); err != nil {
		return err
	}

	if cfg.GlyphPalette, err = d.readString(nameLenV1); err != nil {
		return err
	}
	if cfg.ColorPalette, err = d.readString(nameLenV1); err != nil {
		return err
	}
	if cfg.Comment, err = d.readString(commentLenV1); err != nil {
		return err
	}

	return nil
}

// readString reads a string field: fixed-width NUL-padded in version 1,
// length-prefixed in version 2. The name fields carry a single length byte,
// the wider comment field a 16-bit length, so the version 1 fixed width
// doubles as the field selector.
func (d *decoder) readString(v1Width int) (string, error) {
	if d.img.Version == Version1 {
		return d.c.String(v1Width)
	}
	var n int
	if v1Width > nameLenV1 {
		l, err := d.c.Uint16()
		if err != nil {
			return "", err
		}
		n = int(l)
	} else {
		l, err := d.c.Uint8()
		if err != nil {
			return "", err
		}
		n = int(l)
	}
	b, err := d.c.Bytes(n)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

func (d *decoder) readCells() error {
	n := int(d.img.Cols) * int(d.img.Rows)

	width := 3
	if d.img.Version == Version2 {
		width = 4
	}
	if d.c.Remaining() < n*width {
		return cursor.ErrTruncated
	}

	d.img.cells = make([]Cell, n)
	for i := range d.img.cells {
		var (
			glyph uint16
			err   error
		)
		if d.img.Version == Version1 {
			var g uint8
			if g, err = d.c.Uint8(); err != nil {
				return err
			}
			glyph = uint16(g)
		} else {
			if glyph, err = d.c.Uint16(); err != nil {
				return err
			}
		}

		fg, err := d.c.Uint8()
		if err != nil {
			return err
		}
		bg, err := d.c.Uint8()
		if err != nil {
			return err
		}

		d.img.cells[i] = Cell{Glyph: glyph, Fg: fg, Bg: bg}
	}

	return nil
}

func (d *decoder) decode(b []byte, configOnly bool) error {
	d.c = cursor.New(b)

	if err := d.readHeader(); err != nil {
		return err
	}

	if configOnly {
		return nil
	}

	if err := d.readCells(); err != nil {
		return err
	}

	if d.img.MdataMode == MdataModeRaw {
		rest, _ := d.c.Bytes(d.c.Remaining())
		if len(rest) > 0 {
			d.img.Metadata = append([]byte(nil), rest...)
		}
	} else if d.c.Remaining() != 0 {
		return errTooMuch
	}

	return nil
}

// Decode parses b as a nuru image file. Parsing either succeeds fully or
// fails; no partial image is ever returned.
func Decode(b []byte) (*Image, error) {
	var d decoder
	if err := d.decode(b, false); err != nil {
		return nil, err
	}
	return &d.img, nil
}

// DecodeConfig parses only the header of a nuru image file, without
// decoding the cell grid.
func DecodeConfig(b []byte) (Config, error) {
	var d decoder
	if err := d.decode(b, true); err != nil {
		return Config{}, err
	}
	return d.img.Config, nil
}
