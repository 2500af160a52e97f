package palfile

import (
	"fmt"
	"image/color"

	"github.com/gogpu/gd"
)

// NewImage creates an indexed image whose palette holds pal in order.
func NewImage(w, h int, pal color.Palette) (*gd.Image, error) {
	if len(pal) > gd.MaxColors {
		return nil, fmt.Errorf("%w: %d colors", gd.ErrPaletteFull, len(pal))
	}
	img, err := gd.New(w, h, gd.ModeIndexed)
	if err != nil {
		return nil, err
	}
	for _, c := range pal {
		e := gd.FromColor(c)
		if _, err := img.ColorAllocateAlpha(int(e.R), int(e.G), int(e.B), int(e.A)); err != nil {
			return nil, err
		}
	}
	return img, nil
}

// Apply replaces img's palette with pal, remapping every pixel to the
// closest new entry.
func Apply(img *gd.Image, pal color.Palette) error {
	src, err := NewImage(1, 1, pal)
	if err != nil {
		return err
	}
	return img.CopyPalette(src)
}

// FromImage returns the palette of an indexed image.
func FromImage(img *gd.Image) (color.Palette, error) {
	if img.IsTrueColor() {
		return nil, fmt.Errorf("%w: true-color image has no palette", gd.ErrDimensionMismatch)
	}
	return img.Palette().Colors(), nil
}
