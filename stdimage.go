package gd

import (
	"fmt"
	"image"
	"image/color"
)

// ColorModel implements image.Image.
func (img *Image) ColorModel() color.Model {
	if img.mode == ModeIndexed {
		return img.stdPalette()
	}
	return color.NRGBAModel
}

// At implements image.Image. Indexed pixels of the transparent color
// report zero alpha.
func (img *Image) At(x, y int) color.Color {
	if !img.BoundsSafe(x, y) {
		return color.NRGBA{}
	}
	return img.stdColor(img.raw(x, y))
}

// ColorIndexAt implements image.PalettedImage. It returns 0 for
// true-color images.
func (img *Image) ColorIndexAt(x, y int) uint8 {
	if img.mode != ModeIndexed || !img.BoundsSafe(x, y) {
		return 0
	}
	return img.pix[y*img.width+x]
}

func (img *Image) stdColor(c Color) color.NRGBA {
	n := img.rgbaOf(c).NRGBA()
	if img.mode == ModeIndexed && c == img.transparent {
		n.A = 0
	}
	return n
}

func (img *Image) stdPalette() color.Palette {
	pal := make(color.Palette, img.palette.total)
	for i := range pal {
		pal[i] = img.stdColor(Color(i))
	}
	return pal
}

// ToStdImage converts the image to an *image.Paletted (indexed) or
// *image.NRGBA (true-color). The result does not share memory with img.
func (img *Image) ToStdImage() image.Image {
	r := img.Bounds()
	if img.mode == ModeIndexed {
		p := image.NewPaletted(r, img.stdPalette())
		copy(p.Pix, img.pix)
		return p
	}

	n := image.NewNRGBA(r)
	for i, v := range img.tpix {
		c := unpack(Color(v)).NRGBA()
		n.Pix[i*4+0] = c.R
		n.Pix[i*4+1] = c.G
		n.Pix[i*4+2] = c.B
		n.Pix[i*4+3] = c.A
	}
	return n
}

// FromImage converts a standard library image. Paletted images become
// indexed, with the first fully transparent entry as the transparent
// color. That entry is stored opaque, as the marker alone makes it
// transparent. Anything else becomes true-color.
func FromImage(m image.Image) (*Image, error) {
	b := m.Bounds()
	if p, ok := m.(*image.Paletted); ok {
		return fromPaletted(p)
	}

	img, err := New(b.Dx(), b.Dy(), ModeTrueColor)
	if err != nil {
		return nil, err
	}

	if n, ok := m.(*image.NRGBA); ok {
		for y := range b.Dy() {
			row := n.Pix[(y)*n.Stride:]
			for x := range b.Dx() {
				px := row[x*4 : x*4+4]
				img.tpix[y*img.width+x] = uint32(RGBA{px[0], px[1], px[2], alpha7(px[3])}.pack())
			}
		}
		return img, nil
	}

	for y := range b.Dy() {
		for x := range b.Dx() {
			img.tpix[y*img.width+x] = uint32(FromColor(m.At(b.Min.X+x, b.Min.Y+y)).pack())
		}
	}
	return img, nil
}

func fromPaletted(p *image.Paletted) (*Image, error) {
	if len(p.Palette) > MaxColors {
		return nil, fmt.Errorf("%w: %d colors", ErrPaletteFull, len(p.Palette))
	}
	b := p.Bounds()
	img, err := New(b.Dx(), b.Dy(), ModeIndexed)
	if err != nil {
		return nil, err
	}

	for i, c := range p.Palette {
		e := FromColor(c)
		if img.transparent == None && e.A == AlphaTransparent {
			if _, _, _, a := c.RGBA(); a == 0 {
				img.transparent = Color(i)
				e = opaqueOf(c)
			}
		}
		img.palette.entries[i] = e
	}
	img.palette.total = len(p.Palette)

	for y := range b.Dy() {
		copy(img.pix[y*img.width:(y+1)*img.width], p.Pix[y*p.Stride:])
	}
	return img, nil
}

// opaqueOf returns the color channels of a fully transparent c. Encoders
// keep them in the palette even though alpha-premultiplied RGBA drops them.
func opaqueOf(c color.Color) RGBA {
	switch n := c.(type) {
	case color.NRGBA:
		return RGBA{R: n.R, G: n.G, B: n.B}
	case RGBA:
		return RGBA{R: n.R, G: n.G, B: n.B}
	}
	return RGBA{}
}
