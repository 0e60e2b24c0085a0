/*
Package nuru glues the image and palette codecs and the renderer into the
display flow used by the command line viewer: load an image, resolve the
palettes it needs, probe the terminal and render.
*/
package nuru

import (
	"fmt"
	"io"
	"log"
	"os"
	"strings"

	"github.com/bodgit/nuru/image"
	"github.com/bodgit/nuru/palette"
	"github.com/bodgit/nuru/render"
)

// Nuru carries the shared state of the viewer commands.
type Nuru struct {
	configDir string
	logger    *log.Logger
}

// New returns a viewer. configDir overrides the default per-user palette
// location when non-empty.
func New(configDir string, logger *log.Logger) *Nuru {
	return &Nuru{
		configDir: configDir,
		logger:    logger,
	}
}

// LoadImage reads and decodes a nuru image file.
func (n *Nuru) LoadImage(path string) (*image.Image, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	img, err := image.Decode(b)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	n.logger.Printf("loaded %dx%d image from %s", img.Cols, img.Rows, path)
	return img, nil
}

// LoadPalette reads and decodes a nuru palette file.
func (n *Nuru) LoadPalette(path string) (*palette.Palette, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	pal, err := palette.Decode(b)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	n.logger.Printf("loaded %s palette of %d entries from %s", pal.Type(), pal.Len(), path)
	return pal, nil
}

// Palettes resolves the palettes an image needs before rendering. Explicit
// file paths win; otherwise a palette the image declares as required is
// looked up by name under the config tree. Palettes the image's modes do
// not use stay nil.
func (n *Nuru) Palettes(img *image.Image, glyphPath, colorPath string) (glyphs, colors *palette.Palette, err error) {
	switch {
	case glyphPath != "":
		if glyphs, err = n.LoadPalette(glyphPath); err != nil {
			return nil, nil, err
		}
	case img.GlyphPaletteRequired && img.GlyphPalette != "":
		if glyphs, err = n.findPalette(glyphDir, img.GlyphPalette); err != nil {
			return nil, nil, err
		}
	}

	switch {
	case colorPath != "":
		if colors, err = n.LoadPalette(colorPath); err != nil {
			return nil, nil, err
		}
	case img.ColorPaletteRequired && img.ColorPalette != "":
		if colors, err = n.findPalette(colorDir, img.ColorPalette); err != nil {
			return nil, nil, err
		}
	}

	return glyphs, colors, nil
}

func (n *Nuru) findPalette(kind, name string) (*palette.Palette, error) {
	path, err := n.palettePath(kind, name)
	if err != nil {
		return nil, err
	}
	pal, err := n.LoadPalette(path)
	if err != nil {
		return nil, fmt.Errorf("palette %q: %w", name, err)
	}
	return pal, nil
}

// Display renders img clipped to cols by rows, writing the escape stream
// to w.
func (n *Nuru) Display(w io.Writer, img *image.Image, glyphs, colors *palette.Palette, cols, rows int) error {
	r, err := render.New(img, glyphs, colors)
	if err != nil {
		return err
	}
	return r.Render(w, cols, rows)
}

// Info writes the decoded header fields of an image, one per line.
func Info(w io.Writer, cfg image.Config) {
	fmt.Fprintf(w, "signature:  %s\n", image.Signature)
	fmt.Fprintf(w, "version:    %d\n", cfg.Version)
	fmt.Fprintf(w, "color_mode: %s\n", cfg.ColorMode)
	fmt.Fprintf(w, "glyph_mode: %s\n", cfg.GlyphMode)
	fmt.Fprintf(w, "mdata_mode: %s\n", cfg.MdataMode)
	fmt.Fprintf(w, "cols:       %d\n", cfg.Cols)
	fmt.Fprintf(w, "rows:       %d\n", cfg.Rows)
	fmt.Fprintf(w, "glyph_key:  %d\n", cfg.GlyphKey)
	fmt.Fprintf(w, "fg_key:     %d\n", cfg.FgKey)
	fmt.Fprintf(w, "bg_key:     %d\n", cfg.BgKey)
	fmt.Fprintf(w, "glyph_pal:  %s\n", cfg.GlyphPalette)
	fmt.Fprintf(w, "color_pal:  %s\n", cfg.ColorPalette)
	if cfg.Comment != "" {
		fmt.Fprintf(w, "comment:    %s\n", strings.ReplaceAll(cfg.Comment, "\n", " "))
	}
}
