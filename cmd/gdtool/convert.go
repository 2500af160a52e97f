package main

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/alecthomas/kong"

	"github.com/gogpu/gd"
	"github.com/gogpu/gd/codec"
)

type ConvertCmd struct {
	In        string `arg:"" help:"Source image." type:"existingfile"`
	Out       string `arg:"" help:"Destination image." type:"path"`
	Format    string `help:"Output format (png, jpeg, gif, bmp, tiff, wbmp). Defaults to the destination extension."`
	Quality   int    `help:"JPEG quality 0-100, -1 for the codec default." default:"-1"`
	Interlace bool   `help:"Mark the image interlaced before encoding."`
}

func (c *ConvertCmd) Validate(kctx *kong.Context) error {
	if c.Quality < codec.QualityAuto || c.Quality > 100 {
		return fmt.Errorf("invalid quality: %d", c.Quality)
	}
	return nil
}

func (c *ConvertCmd) Run(g *Globals) error {
	format, err := formatFor(c.Format, c.Out)
	if err != nil {
		return err
	}
	img, from, err := readImage(g.Codecs, c.In)
	if err != nil {
		return err
	}
	if c.Interlace {
		img.SetInterlace(true)
	}

	opts := codec.DefaultOptions()
	opts.JPEG.Quality = c.Quality
	n, err := writeImage(g.Codecs, img, format, opts, c.Out)
	if err != nil {
		return err
	}
	slog.Info("converted", "from", from, "to", format, "file", c.Out, "bytes", n)
	return nil
}

type InfoCmd struct {
	Files []string `arg:"" help:"Images to describe." type:"existingfile"`
}

func (c *InfoCmd) Run(g *Globals) error {
	var errs []error
	for _, path := range c.Files {
		img, format, err := readImage(g.Codecs, path)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		fmt.Fprintf(g.Out, "%s: %s %dx%d %s", path, format, img.Width(), img.Height(), img.Mode())
		if !img.IsTrueColor() {
			fmt.Fprintf(g.Out, " colors=%d", img.ColorsTotal())
		}
		if t := img.Transparent(); t != gd.None {
			e, _ := img.ColorComponents(t)
			fmt.Fprintf(g.Out, " transparent=#%02x%02x%02x/%d", e.R, e.G, e.B, e.A)
		}
		if img.Interlaced() {
			fmt.Fprint(g.Out, " interlaced")
		}
		fmt.Fprintln(g.Out)
	}
	return errors.Join(errs...)
}

type CompareCmd struct {
	A      string `arg:"" help:"First image." type:"existingfile"`
	B      string `arg:"" help:"Second image." type:"existingfile"`
	Strict bool   `help:"Fail unless the images have identical pixels."`
}

// errDifferent is returned by compare --strict.
var errDifferent = errors.New("images differ")

func (c *CompareCmd) Run(g *Globals) error {
	a, _, err := readImage(g.Codecs, c.A)
	if err != nil {
		return err
	}
	b, _, err := readImage(g.Codecs, c.B)
	if err != nil {
		return err
	}
	flags := gd.Compare(a, b)
	fmt.Fprintln(g.Out, flags)
	if c.Strict && flags.Has(gd.CmpImage) {
		return errDifferent
	}
	return nil
}
