package main

import (
	"fmt"
	"image"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/gogpu/gd"
	"github.com/gogpu/gd/codec"
	"github.com/gogpu/gd/text"
)

type DemoCmd struct {
	Dest string `help:"Output folder." default:"." type:"path"`
	Font string `help:"Font id or file for the caption." default:"goregular"`
	Text string `help:"Caption text." default:"Hello Go"`
}

// drawDemo paints a 200x200 palette image: a black border, a blue
// ellipse flood-filled red and a caption. White is transparent.
func drawDemo(r *text.Renderer, fontID, caption string) (*gd.Image, gd.BoundingBox, error) {
	img, err := gd.New(200, 200, gd.ModeIndexed, gd.WithInterlace(true))
	if err != nil {
		return nil, gd.BoundingBox{}, err
	}

	var colors [4]gd.Color
	for i, rgb := range [4][3]int{{255, 255, 255}, {0, 0, 0}, {255, 0, 0}, {0, 0, 255}} {
		if colors[i], err = img.ColorAllocate(rgb[0], rgb[1], rgb[2]); err != nil {
			return nil, gd.BoundingBox{}, err
		}
	}
	white, black, red, blue := colors[0], colors[1], colors[2], colors[3]

	steps := []func() error{
		func() error { return img.ColorTransparent(white) },
		func() error { return img.Rectangle(image.Pt(0, 0), image.Pt(199, 199), black) },
		func() error { return img.Arc(image.Pt(100, 100), image.Pt(195, 175), 0, 360, blue) },
		func() error { return img.Fill(image.Pt(100, 100), red) },
	}
	for _, step := range steps {
		if err := step(); err != nil {
			return nil, gd.BoundingBox{}, err
		}
	}

	box, err := img.StringFT(r, fontID, 20, 0, image.Pt(10, 100), caption, black)
	if err != nil {
		return nil, gd.BoundingBox{}, err
	}
	return img, box, nil
}

func (c *DemoCmd) Run(g *Globals) error {
	if err := os.MkdirAll(c.Dest, 0o755); err != nil {
		return fmt.Errorf("unable to create destination folder %q: %w", c.Dest, err)
	}

	measured, err := gd.BoundingRect(g.Fonts, c.Font, 12, 0, image.Pt(10, 100), c.Text)
	if err != nil {
		return err
	}
	fmt.Fprintf(g.Out, "bounding rect: %v\n", measured)

	img, _, err := drawDemo(g.Fonts, c.Font, c.Text)
	if err != nil {
		return err
	}

	outputs := []struct {
		name   string
		format codec.Format
		opts   *codec.Options
	}{
		{"xx.png", codec.PNG, nil},
		{"xx.jpg", codec.JPEG, &codec.Options{JPEG: codec.JPEGOptions{Quality: 100}}},
	}
	for _, out := range outputs {
		path := filepath.Join(c.Dest, out.name)
		n, err := writeImage(g.Codecs, img, out.format, out.opts, path)
		if err != nil {
			return err
		}
		slog.Info("wrote", "file", path, "bytes", n)
		if out.format == codec.PNG {
			fmt.Fprintf(g.Out, "PNG size: %d\n", n)
		}
	}
	return nil
}
