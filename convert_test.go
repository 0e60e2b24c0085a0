package nuru

import (
	"bytes"
	stdimage "image"
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bodgit/nuru/image"
	"github.com/bodgit/nuru/palette"
)

func TestConvert(t *testing.T) {
	src := stdimage.NewRGBA(stdimage.Rect(0, 0, 64, 64))
	for y := 0; y < 64; y++ {
		for x := 0; x < 64; x++ {
			c := color.RGBA{A: 0xff}
			if x >= 32 {
				c.R = 0xff
			} else {
				c.B = 0xff
			}
			src.Set(x, y, c)
		}
	}

	img, pal, err := Convert(src, 16, "testpal")
	require.NoError(t, err)

	assert.Equal(t, uint16(16), img.Cols)
	assert.Equal(t, uint16(8), img.Rows)
	assert.Equal(t, image.ColorModePalette, img.ColorMode)
	assert.True(t, img.ColorPaletteRequired)
	assert.Equal(t, image.GlyphModeNone, img.GlyphMode)
	assert.Equal(t, "testpal", img.ColorPalette)
	assert.Equal(t, palette.TypeColorRGB, pal.Type())

	// Every cell must index into the generated palette and keep its
	// foreground suppressed via the sentinel.
	for row := 0; row < int(img.Rows); row++ {
		for col := 0; col < int(img.Cols); col++ {
			c := img.At(col, row)
			assert.Equal(t, img.FgKey, c.Fg)
			assert.NotEqual(t, img.BgKey, c.Bg)

			_, err := pal.RGB(int(c.Bg))
			assert.NoError(t, err)
		}
	}

	// The generated pair must survive its own encoders.
	var ib, pb bytes.Buffer
	require.NoError(t, image.Encode(&ib, img))
	require.NoError(t, palette.Encode(&pb, pal))

	gotImg, err := image.Decode(ib.Bytes())
	require.NoError(t, err)
	assert.Equal(t, img, gotImg)

	gotPal, err := palette.Decode(pb.Bytes())
	require.NoError(t, err)
	assert.Equal(t, pal, gotPal)
}

func TestConvertRendered(t *testing.T) {
	src := stdimage.NewRGBA(stdimage.Rect(0, 0, 8, 4))
	for y := 0; y < 4; y++ {
		for x := 0; x < 8; x++ {
			src.Set(x, y, color.RGBA{G: 0xff, A: 0xff})
		}
	}

	img, pal, err := Convert(src, 4, "green")
	require.NoError(t, err)

	n := New("", discard())

	b := new(bytes.Buffer)
	require.NoError(t, n.Display(b, img, nil, pal, 80, 24))

	// Background-colored blanks only: a true-color background sequence
	// per cell and never a foreground one.
	assert.Contains(t, b.String(), "\x1b[48;2;")
	assert.NotContains(t, b.String(), "\x1b[38;2;")
}

func TestConvertBadInput(t *testing.T) {
	src := stdimage.NewRGBA(stdimage.Rect(0, 0, 4, 4))

	_, _, err := Convert(src, 0, "x")
	assert.Error(t, err)

	_, _, err = Convert(stdimage.NewRGBA(stdimage.Rect(0, 0, 0, 0)), 16, "x")
	assert.Error(t, err)
}
