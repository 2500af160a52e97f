package gd

import (
	"errors"
	"fmt"
	"image"
)

// GlyphRenderer turns text into a coverage mask. Implementations own
// font lookup, shaping and rasterization; package text provides one.
type GlyphRenderer interface {
	// Render rasterizes s in the font fontID at sizePt points, rotated
	// counter-clockwise by angle radians around the pen origin on the
	// baseline.
	Render(fontID string, sizePt, angle float64, s string) (*GlyphBitmap, error)
}

// GlyphBitmap is rendered text relative to the pen origin.
type GlyphBitmap struct {
	// Mask holds coverage, 0 (none) to 255 (full). Its Rect is in
	// pen-relative coordinates and may have a negative origin.
	Mask *image.Alpha

	// Box is the rotated ink bounding box, pen-relative.
	Box BoundingBox
}

// BoundingBox holds the corners of a possibly rotated box in the order
// lower-left, lower-right, upper-right, upper-left.
type BoundingBox [4]image.Point

// Add translates every corner by p.
func (b BoundingBox) Add(p image.Point) BoundingBox {
	for i := range b {
		b[i] = b[i].Add(p)
	}
	return b
}

// Rect returns the smallest rectangle containing all four corners,
// with an exclusive maximum.
func (b BoundingBox) Rect() image.Rectangle {
	r := image.Rectangle{Min: b[0], Max: b[0]}
	for _, p := range b[1:] {
		r.Min.X, r.Min.Y = min(r.Min.X, p.X), min(r.Min.Y, p.Y)
		r.Max.X, r.Max.Y = max(r.Max.X, p.X), max(r.Max.Y, p.Y)
	}
	r.Max = r.Max.Add(image.Pt(1, 1))
	return r
}

var errNilRenderer = errors.New("gd: nil glyph renderer")

// BoundingRect measures s without drawing it. The box is placed at pt.
func BoundingRect(r GlyphRenderer, fontID string, sizePt, angle float64, pt image.Point, s string) (BoundingBox, error) {
	if r == nil {
		return BoundingBox{}, errNilRenderer
	}
	g, err := r.Render(fontID, sizePt, angle, s)
	if err != nil {
		return BoundingBox{}, fmt.Errorf("gd: render text: %w", err)
	}
	return g.Box.Add(pt), nil
}

// StringFT draws anti-aliased text with its pen origin at pt and
// returns the ink bounding box. Only pt must lie inside the image.
// True-color images blend by coverage; indexed images use c for full
// coverage and resolve a mixed color for partial coverage.
func (img *Image) StringFT(r GlyphRenderer, fontID string, sizePt, angle float64, pt image.Point, s string, c Color) (BoundingBox, error) {
	if r == nil {
		return BoundingBox{}, errNilRenderer
	}
	if err := img.checkPoints("text", pt); err != nil {
		return BoundingBox{}, err
	}
	if err := img.checkSolid(c); err != nil {
		return BoundingBox{}, err
	}

	g, err := r.Render(fontID, sizePt, angle, s)
	if err != nil {
		return BoundingBox{}, fmt.Errorf("gd: render text: %w", err)
	}

	m := g.Mask
	if m != nil {
		for y := m.Rect.Min.Y; y < m.Rect.Max.Y; y++ {
			for x := m.Rect.Min.X; x < m.Rect.Max.X; x++ {
				if cov := m.AlphaAt(x, y).A; cov > 0 {
					img.cover(pt.X+x, pt.Y+y, c, cov)
				}
			}
		}
	}
	return g.Box.Add(pt), nil
}

// cover paints c at partial coverage cov. On true-color images the
// coverage scales the opacity of c, and the result is blended or
// written as is depending on the alpha blending mode.
func (img *Image) cover(x, y int, c Color, cov uint8) {
	if !img.BoundsSafe(x, y) {
		return
	}
	if img.mode == ModeTrueColor {
		e := unpack(c)
		opacity := int(AlphaTransparent-e.A) * int(cov) / 255
		e.A = uint8(AlphaTransparent - opacity)
		img.put(x, y, e.pack())
		return
	}
	if cov == 255 {
		img.setRaw(x, y, c)
		return
	}
	s := img.rgbaOf(c)
	d := img.rgbaOf(img.raw(x, y))
	f := float64(cov) / 255
	mix := func(a, b uint8) uint8 {
		return roundByte(float64(a)*f + float64(b)*(1-f))
	}
	img.setRaw(x, y, img.resolve(RGBA{mix(s.R, d.R), mix(s.G, d.G), mix(s.B, d.B), s.A}))
}
