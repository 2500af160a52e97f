package gd

import (
	"image/color"
	"math"
)

// Color is a color handle. In an indexed image it is an index into the
// image's palette; in a true-color image it is a packed value built by
// TrueColorAlpha. Negative values are the special drawing colors below.
type Color int

// Special colors. They are accepted by drawing operations in place of a
// solid color and select the image's current style, brush or tile.
const (
	// None means "no color": no transparent color is set, or a lookup
	// found nothing.
	None Color = -1

	// Styled draws with the pattern set by SetStyle, one entry per pixel.
	Styled Color = -2

	// Brushed stamps the image set by SetBrush at every pixel.
	Brushed Color = -3

	// StyledBrushed stamps the brush where the current style entry is not
	// Transparent.
	StyledBrushed Color = -4

	// Tiled paints the image set by SetTile, repeated from the origin.
	Tiled Color = -5

	// Transparent is only valid inside a style and leaves the pixel untouched.
	Transparent Color = -6
)

const (
	// MaxColors is the capacity of an indexed image's palette.
	MaxColors = 256

	// AlphaOpaque is the alpha value of a fully opaque color.
	AlphaOpaque = 0

	// AlphaTransparent is the alpha value of a fully transparent color.
	AlphaTransparent = 127
)

// TrueColor packs an opaque color for a true-color image.
// Components are masked to 8 bits.
func TrueColor(r, g, b int) Color {
	return TrueColorAlpha(r, g, b, AlphaOpaque)
}

// TrueColorAlpha packs a color for a true-color image. r, g and b are in
// [0, 255]; a is in [0, 127] where 0 is opaque and 127 fully transparent.
// Components are masked to their range.
func TrueColorAlpha(r, g, b, a int) Color {
	return Color(a&0x7f)<<24 | Color(r&0xff)<<16 | Color(g&0xff)<<8 | Color(b&0xff)
}

// RGBA is a palette entry or an unpacked true-color value.
// A uses the 7-bit convention: 0 is opaque, 127 fully transparent.
type RGBA struct {
	R, G, B, A uint8
}

// NRGBA converts the color to a non-premultiplied 8-bit color.
func (c RGBA) NRGBA() color.NRGBA {
	return color.NRGBA{R: c.R, G: c.G, B: c.B, A: alpha8(c.A)}
}

// RGBA implements color.Color.
func (c RGBA) RGBA() (r, g, b, a uint32) {
	return c.NRGBA().RGBA()
}

// FromColor converts any color.Color to an RGBA entry.
func FromColor(c color.Color) RGBA {
	n := color.NRGBAModel.Convert(c).(color.NRGBA)
	return RGBA{R: n.R, G: n.G, B: n.B, A: alpha7(n.A)}
}

func (c RGBA) pack() Color {
	return TrueColorAlpha(int(c.R), int(c.G), int(c.B), int(c.A))
}

func unpack(c Color) RGBA {
	return RGBA{
		R: uint8(c >> 16),
		G: uint8(c >> 8),
		B: uint8(c),
		A: uint8(c>>24) & 0x7f,
	}
}

// alpha8 maps the 7-bit alpha (0 opaque) to 8-bit alpha (255 opaque).
func alpha8(a uint8) uint8 {
	return 255 - (a<<1 + a>>6)
}

// alpha7 maps 8-bit alpha (255 opaque) to the 7-bit alpha (0 opaque).
func alpha7(a uint8) uint8 {
	return 127 - a>>1
}

// luminance returns the ITU-R 601 weighted gray level of c.
func luminance(c RGBA) uint8 {
	y := 0.299*float64(c.R) + 0.587*float64(c.G) + 0.114*float64(c.B)
	return uint8(math.Round(y))
}

// blend composites src over dst. Both use 7-bit alpha.
func blend(dst, src RGBA) RGBA {
	switch {
	case src.A == AlphaOpaque:
		return src
	case src.A == AlphaTransparent:
		return dst
	case dst.A == AlphaTransparent:
		return src
	}

	srcWeight := int(AlphaTransparent - src.A)
	dstWeight := int(AlphaTransparent-dst.A) * int(src.A) / AlphaTransparent
	total := srcWeight + dstWeight

	mix := func(s, d uint8) uint8 {
		return uint8((int(s)*srcWeight + int(d)*dstWeight) / total)
	}

	return RGBA{
		R: mix(src.R, dst.R),
		G: mix(src.G, dst.G),
		B: mix(src.B, dst.B),
		A: uint8(int(src.A) * int(dst.A) / AlphaTransparent),
	}
}

// hwb is a color in hue, whiteness, blackness coordinates.
// h is undefined (negative) for grays.
type hwb struct {
	h, w, b float64
}

func toHWB(c RGBA) hwb {
	r, g, b := float64(c.R)/255, float64(c.G)/255, float64(c.B)/255
	w := min(r, g, b)
	v := max(r, g, b)
	if v == w {
		return hwb{h: -1, w: w, b: 1 - v}
	}

	var f, i float64
	switch {
	case r == w:
		f, i = g-b, 3
	case g == w:
		f, i = b-r, 5
	default:
		f, i = r-g, 1
	}
	return hwb{h: i - f/(v-w), w: w, b: 1 - v}
}

func hwbDistance(a, b hwb) float64 {
	var dh float64
	if a.h >= 0 && b.h >= 0 {
		dh = math.Abs(a.h - b.h)
		if dh > 3 {
			dh = 6 - dh
		}
	}
	dw := a.w - b.w
	db := a.b - b.b
	return dh*dh + dw*dw + db*db
}
