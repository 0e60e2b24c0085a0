package main

import (
	stdimage "image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"io"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/bodgit/nuru"
	"github.com/bodgit/nuru/image"
	"github.com/bodgit/nuru/palette"
	"github.com/urfave/cli/v2"
)

const defaultImportWidth = 80

func init() {
	cli.VersionFlag = &cli.BoolFlag{
		Name:    "version",
		Aliases: []string{"V"},
		Usage:   "print the version",
	}
}

func newNuru(c *cli.Context) *nuru.Nuru {
	logger := log.New(io.Discard, "", 0)
	if c.Bool("verbose") {
		logger.SetOutput(os.Stderr)
	}
	return nuru.New(c.String("config-dir"), logger)
}

func area() (int, int, error) {
	cols, rows, err := nuru.TermSize(os.Stdout)
	if err != nil {
		return 0, 0, cli.Exit("failed to determine terminal size", 1)
	}
	if cols == 0 || rows == 0 {
		return 0, 0, cli.Exit("terminal size not appropriate", 1)
	}
	return cols, rows, nil
}

func display(c *cli.Context, view bool) error {
	if c.NArg() < 1 {
		cli.ShowCommandHelpAndExit(c, c.Command.FullName(), 1)
	}

	n := newNuru(c)

	img, err := n.LoadImage(c.Args().First())
	if err != nil {
		return cli.Exit(err, 1)
	}

	glyphs, colors, err := n.Palettes(img, c.String("glyph-palette"), c.String("color-palette"))
	if err != nil {
		return cli.Exit(err, 1)
	}

	cols, rows, err := area()
	if err != nil {
		return err
	}

	if view || c.Bool("clear") {
		t := nuru.TermSetup(os.Stdin, os.Stdout, true)
		defer t.Restore()

		if err := n.Display(os.Stdout, img, glyphs, colors, cols, rows); err != nil {
			return cli.Exit(err, 1)
		}
		if view {
			if err := t.WaitKey(); err != nil {
				return cli.Exit(err, 1)
			}
		}
		return nil
	}

	if err := n.Display(os.Stdout, img, glyphs, colors, cols, rows); err != nil {
		return cli.Exit(err, 1)
	}

	return nil
}

func paletteFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:    "glyph-palette",
			Aliases: []string{"g"},
			Usage:   "path to glyph palette file to use",
		},
		&cli.StringFlag{
			Name:    "color-palette",
			Aliases: []string{"c"},
			Usage:   "path to color palette file to use",
		},
	}
}

func main() {
	app := cli.NewApp()

	app.Name = "nuru"
	app.Usage = "nuru character-image viewer"
	app.Version = "1.0.0"

	app.Flags = []cli.Flag{
		&cli.StringFlag{
			Name:    "config-dir",
			EnvVars: []string{"NURU_CONFIG_DIR"},
			Usage:   "directory holding named palettes",
		},
		&cli.BoolFlag{
			Name:    "verbose",
			Aliases: []string{"v"},
			Usage:   "increase verbosity",
		},
	}

	app.Commands = []*cli.Command{
		{
			Name:      "cat",
			Usage:     "Print an image to the terminal",
			ArgsUsage: "FILE",
			Flags: append(paletteFlags(),
				&cli.BoolFlag{
					Name:    "clear",
					Aliases: []string{"C"},
					Usage:   "clear the terminal before printing",
				}),
			Action: func(c *cli.Context) error {
				return display(c, false)
			},
		},
		{
			Name:      "view",
			Usage:     "Display an image full screen until a key is pressed",
			ArgsUsage: "FILE",
			Flags:     paletteFlags(),
			Action: func(c *cli.Context) error {
				return display(c, true)
			},
		},
		{
			Name:      "info",
			Usage:     "Print image header information",
			ArgsUsage: "FILE",
			Action: func(c *cli.Context) error {
				if c.NArg() < 1 {
					cli.ShowCommandHelpAndExit(c, c.Command.FullName(), 1)
				}

				b, err := os.ReadFile(c.Args().First())
				if err != nil {
					return cli.Exit(err, 1)
				}

				cfg, err := image.DecodeConfig(b)
				if err != nil {
					return cli.Exit(err, 1)
				}

				nuru.Info(os.Stdout, cfg)

				return nil
			},
		},
		{
			Name:      "import",
			Usage:     "Convert a pixel image into a nuru image and palette",
			ArgsUsage: "FILE",
			Flags: []cli.Flag{
				&cli.StringFlag{
					Name:    "output",
					Aliases: []string{"o"},
					Usage:   "nuru image file to write",
				},
				&cli.IntFlag{
					Name:    "width",
					Aliases: []string{"w"},
					Value:   defaultImportWidth,
					Usage:   "width of the generated image in cells",
				},
			},
			Action: importImage,
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

func importImage(c *cli.Context) error {
	if c.NArg() < 1 {
		cli.ShowCommandHelpAndExit(c, c.Command.FullName(), 1)
	}

	src := c.Args().First()

	out := c.String("output")
	if out == "" {
		out = strings.TrimSuffix(src, filepath.Ext(src)) + "." + image.FileExt
	}
	palOut := strings.TrimSuffix(out, filepath.Ext(out)) + "." + palette.FileExt

	// The name recorded in the header is limited to seven bytes.
	name := strings.ToLower(strings.TrimSuffix(filepath.Base(out), filepath.Ext(out)))
	if len(name) > 7 {
		name = name[:7]
	}

	f, err := os.Open(src)
	if err != nil {
		return cli.Exit(err, 1)
	}
	defer f.Close()

	m, _, err := stdimage.Decode(f)
	if err != nil {
		return cli.Exit(err, 1)
	}

	img, pal, err := nuru.Convert(m, c.Int("width"), name)
	if err != nil {
		return cli.Exit(err, 1)
	}

	imgFile, err := os.Create(out)
	if err != nil {
		return cli.Exit(err, 1)
	}
	defer imgFile.Close()

	if err := image.Encode(imgFile, img); err != nil {
		return cli.Exit(err, 1)
	}

	palFile, err := os.Create(palOut)
	if err != nil {
		return cli.Exit(err, 1)
	}
	defer palFile.Close()

	if err := palette.Encode(palFile, pal); err != nil {
		return cli.Exit(err, 1)
	}

	return nil
}
