package main

import (
	"bytes"
	"errors"
	"fmt"
	"image/color"
	"log/slog"
	"os"

	"github.com/alecthomas/kong"

	"github.com/gogpu/gd"
	"github.com/gogpu/gd/palfile"
)

type PaletteCmd struct {
	In     string `arg:"" help:"Source image." type:"existingfile"`
	Out    string `arg:"" optional:"" help:"Destination image. Not used with --export." type:"path"`
	Pal    string `help:"RIFF PAL file to read, or to write with --export." required:"" type:"path"`
	Index  int    `help:"Palette to use when the file holds several." default:"0"`
	Export bool   `help:"Write the source image's palette to --pal instead of applying it."`
	Format string `help:"Output format. Defaults to the destination extension."`
}

func (c *PaletteCmd) Validate(kctx *kong.Context) error {
	if c.Index < 0 {
		return fmt.Errorf("invalid palette index: %d", c.Index)
	}
	if !c.Export && c.Out == "" {
		return errors.New("destination image required unless --export is given")
	}
	return nil
}

func (c *PaletteCmd) Run(g *Globals) error {
	img, _, err := readImage(g.Codecs, c.In)
	if err != nil {
		return err
	}
	if c.Export {
		return c.export(img)
	}

	f, err := os.Open(c.Pal)
	if err != nil {
		return fmt.Errorf("could not open palette %q: %w", c.Pal, err)
	}
	pals, err := palfile.Read(f)
	_ = f.Close()
	if err != nil {
		return fmt.Errorf("could not read palette %q: %w", c.Pal, err)
	}
	if c.Index >= len(pals) {
		return fmt.Errorf("palette %q holds %d palettes, no index %d", c.Pal, len(pals), c.Index)
	}

	out, err := applyPalette(img, pals[c.Index])
	if err != nil {
		return err
	}

	format, err := formatFor(c.Format, c.Out)
	if err != nil {
		return err
	}
	n, err := writeImage(g.Codecs, out, format, nil, c.Out)
	if err != nil {
		return err
	}
	slog.Info("palette applied", "palette", c.Pal, "colors", len(pals[c.Index]), "file", c.Out, "bytes", n)
	return nil
}

// applyPalette maps img onto pal. Indexed images are remapped in place;
// true-color images are copied into a new indexed image, each pixel
// taking the closest palette entry.
func applyPalette(img *gd.Image, pal color.Palette) (*gd.Image, error) {
	if !img.IsTrueColor() {
		return img, palfile.Apply(img, pal)
	}
	out, err := palfile.NewImage(img.Width(), img.Height(), pal)
	if err != nil {
		return nil, err
	}
	if err := out.CopyResampled(img, out.Bounds(), img.Bounds()); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *PaletteCmd) export(img *gd.Image) error {
	pal, err := palfile.FromImage(img)
	if err != nil {
		return err
	}
	var buf bytes.Buffer
	if _, err := palfile.Write(&buf, pal); err != nil {
		return err
	}
	if err := saveFile(c.Pal, buf.Bytes()); err != nil {
		return err
	}
	slog.Info("palette exported", "file", c.Pal, "colors", len(pal))
	return nil
}
