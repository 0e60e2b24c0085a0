package nuru

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/bodgit/nuru/palette"
)

const project = "nuru"

// Directories under the config root holding named palettes, by kind.
const (
	glyphDir = "glyphs"
	colorDir = "colors"
)

func (n *Nuru) configRoot() (string, error) {
	if n.configDir != "" {
		return n.configDir, nil
	}
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, project), nil
}

// palettePath maps a palette name declared inside an image to the file it
// should live in. Names are matched case-insensitively by lower-casing.
func (n *Nuru) palettePath(kind, name string) (string, error) {
	root, err := n.configRoot()
	if err != nil {
		return "", err
	}
	return filepath.Join(root, kind, strings.ToLower(name)+"."+palette.FileExt), nil
}
