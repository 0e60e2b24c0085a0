package nuru

import (
	"bytes"
	"io"
	"log"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bodgit/nuru/image"
	"github.com/bodgit/nuru/palette"
)

func discard() *log.Logger {
	return log.New(io.Discard, "", 0)
}

func writePalette(t *testing.T, path string, p *palette.Palette) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))

	f, err := os.Create(path)
	require.NoError(t, err)
	defer f.Close()

	require.NoError(t, palette.Encode(f, p))
}

func writeImage(t *testing.T, path string, img *image.Image) {
	t.Helper()

	f, err := os.Create(path)
	require.NoError(t, err)
	defer f.Close()

	require.NoError(t, image.Encode(f, img))
}

func TestPalettePath(t *testing.T) {
	n := New("/etc/nuru", discard())

	path, err := n.palettePath(colorDir, "Fire")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join("/etc/nuru", "colors", "fire.nup"), path)
}

func TestPalettesByName(t *testing.T) {
	dir := t.TempDir()

	colors, err := palette.NewColor8Bit(palette.Version1, []uint8{1, 2, 3})
	require.NoError(t, err)
	writePalette(t, filepath.Join(dir, colorDir, "fire.nup"), colors)

	img, err := image.New(image.Config{
		Version:              image.Version1,
		ColorMode:            image.ColorModePalette,
		ColorPaletteRequired: true,
		GlyphMode:            image.GlyphModeASCII,
		Cols:                 1,
		Rows:                 1,
		ColorPalette:         "Fire",
	})
	require.NoError(t, err)

	n := New(dir, discard())

	glyphs, got, err := n.Palettes(img, "", "")
	require.NoError(t, err)
	assert.Nil(t, glyphs)
	require.NotNil(t, got)
	assert.Equal(t, colors, got)
}

func TestPalettesExplicitWins(t *testing.T) {
	dir := t.TempDir()

	named, err := palette.NewColor8Bit(palette.Version1, []uint8{1})
	require.NoError(t, err)
	writePalette(t, filepath.Join(dir, colorDir, "fire.nup"), named)

	explicit, err := palette.NewColor8Bit(palette.Version1, []uint8{9, 9})
	require.NoError(t, err)
	explicitPath := filepath.Join(dir, "explicit.nup")
	writePalette(t, explicitPath, explicit)

	img, err := image.New(image.Config{
		Version:              image.Version1,
		ColorMode:            image.ColorModePalette,
		ColorPaletteRequired: true,
		GlyphMode:            image.GlyphModeASCII,
		Cols:                 1,
		Rows:                 1,
		ColorPalette:         "fire",
	})
	require.NoError(t, err)

	n := New(dir, discard())

	_, got, err := n.Palettes(img, "", explicitPath)
	require.NoError(t, err)
	assert.Equal(t, explicit, got)
}

func TestPalettesNotRequired(t *testing.T) {
	img, err := image.New(image.Config{
		Version:   image.Version1,
		ColorMode: image.ColorMode8Bit,
		GlyphMode: image.GlyphModeASCII,
		Cols:      1,
		Rows:      1,
	})
	require.NoError(t, err)

	n := New(t.TempDir(), discard())

	glyphs, colors, err := n.Palettes(img, "", "")
	require.NoError(t, err)
	assert.Nil(t, glyphs)
	assert.Nil(t, colors)
}

func TestLoadImage(t *testing.T) {
	dir := t.TempDir()

	img, err := image.New(image.Config{
		Version:   image.Version1,
		ColorMode: image.ColorModeNone,
		GlyphMode: image.GlyphModeASCII,
		Cols:      2,
		Rows:      1,
	})
	require.NoError(t, err)
	img.Set(0, 0, image.Cell{Glyph: 'h'})
	img.Set(1, 0, image.Cell{Glyph: 'i'})

	path := filepath.Join(dir, "test.nui")
	writeImage(t, path, img)

	n := New(dir, discard())

	got, err := n.LoadImage(path)
	require.NoError(t, err)
	assert.Equal(t, img, got)

	// Display the loaded image end to end.
	b := new(bytes.Buffer)
	require.NoError(t, n.Display(b, got, nil, nil, 80, 24))
	assert.Equal(t, "h\x1b[0mi\x1b[0m\n", b.String())
}

func TestInfo(t *testing.T) {
	cfg := image.Config{
		Version:   image.Version1,
		ColorMode: image.ColorMode8Bit,
		GlyphMode: image.GlyphModeUnicode,
		Cols:      80,
		Rows:      24,
		GlyphKey:  32,
		Comment:   "hello",
	}

	b := new(bytes.Buffer)
	Info(b, cfg)

	out := b.String()
	assert.Contains(t, out, "color_mode: 8bit\n")
	assert.Contains(t, out, "glyph_mode: unicode\n")
	assert.Contains(t, out, "cols:       80\n")
	assert.Contains(t, out, "comment:    hello\n")
}
