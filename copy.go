package gd

import (
	"fmt"
	"image"
	"math"

	"github.com/gogpu/gd/internal/cache"
)

// mapperCacheSize bounds the conversions remembered per copy.
const mapperCacheSize = 4096

// Copy copies the sr region of src to img with its top-left corner at
// dp. Pixels of src's transparent color are skipped. Both regions must
// fit inside their images. src may be img; overlapping regions are
// handled as if the source were read first.
func (img *Image) Copy(src *Image, dp image.Point, sr image.Rectangle) error {
	dr := sr.Sub(sr.Min).Add(dp)
	src, sr, err := img.prepareCopy("copy", src, dr, sr)
	if err != nil {
		return err
	}

	m := newColorMapper(img, src)
	for y := range sr.Dy() {
		for x := range sr.Dx() {
			sc := src.raw(sr.Min.X+x, sr.Min.Y+y)
			if sc == src.transparent {
				continue
			}
			img.put(dr.Min.X+x, dr.Min.Y+y, m.mapColor(sc))
		}
	}
	return nil
}

// CopyResized copies the sr region of src into the dr region of img
// with nearest-neighbor sampling. Equal sizes give the same result as
// Copy.
func (img *Image) CopyResized(src *Image, dr, sr image.Rectangle) error {
	src, sr, err := img.prepareCopy("copy", src, dr, sr)
	if err != nil {
		return err
	}

	m := newColorMapper(img, src)
	dw, dh := dr.Dx(), dr.Dy()
	sw, sh := sr.Dx(), sr.Dy()
	for y := range dh {
		sy := sr.Min.Y + y*sh/dh
		for x := range dw {
			sx := sr.Min.X + x*sw/dw
			sc := src.raw(sx, sy)
			if sc == src.transparent {
				continue
			}
			img.put(dr.Min.X+x, dr.Min.Y+y, m.mapColor(sc))
		}
	}
	return nil
}

// CopyResampled copies the sr region of src into the dr region of img,
// averaging every source pixel by its area of overlap with each target
// pixel. Color channels are weighted by opacity. Indexed targets take
// the closest palette entry, alpha included, and must have a non-empty
// palette.
func (img *Image) CopyResampled(src *Image, dr, sr image.Rectangle) error {
	src, sr, err := img.prepareCopy("copy", src, dr, sr)
	if err != nil {
		return err
	}
	if err := img.needPalette("copy"); err != nil {
		return err
	}

	sx := float64(sr.Dx()) / float64(dr.Dx())
	sy := float64(sr.Dy()) / float64(dr.Dy())
	for y := range dr.Dy() {
		y0, y1 := float64(y)*sy, min(float64(y+1)*sy, float64(sr.Dy()))
		for x := range dr.Dx() {
			x0, x1 := float64(x)*sx, min(float64(x+1)*sx, float64(sr.Dx()))
			e := src.average(sr.Min, x0, y0, x1, y1)
			var c Color
			if img.mode == ModeTrueColor {
				c = e.pack()
			} else {
				c, _ = img.palette.closestRGBA(e)
			}
			img.put(dr.Min.X+x, dr.Min.Y+y, c)
		}
	}
	return nil
}

// average returns the area-weighted mean color of the source box
// [x0,x1)x[y0,y1), offset by origin.
func (img *Image) average(origin image.Point, x0, y0, x1, y1 float64) RGBA {
	var r, g, b, a, wsum, opaque float64
	var ur, ug, ub float64
	for py := int(y0); float64(py) < y1; py++ {
		hy := math.Min(float64(py+1), y1) - math.Max(float64(py), y0)
		for px := int(x0); float64(px) < x1; px++ {
			hx := math.Min(float64(px+1), x1) - math.Max(float64(px), x0)
			area := hx * hy
			if area <= 0 {
				continue
			}
			sc := img.raw(origin.X+px, origin.Y+py)
			e := img.rgbaOf(sc)
			if sc == img.transparent {
				e.A = AlphaTransparent
			}
			op := float64(AlphaTransparent-e.A) / AlphaTransparent
			w := area * op
			r += float64(e.R) * w
			g += float64(e.G) * w
			b += float64(e.B) * w
			ur += float64(e.R) * area
			ug += float64(e.G) * area
			ub += float64(e.B) * area
			a += float64(e.A) * area
			opaque += w
			wsum += area
		}
	}
	if wsum == 0 {
		return RGBA{A: AlphaTransparent}
	}
	if opaque == 0 {
		r, g, b, opaque = ur, ug, ub, wsum
	}
	return RGBA{
		R: roundByte(r / opaque),
		G: roundByte(g / opaque),
		B: roundByte(b / opaque),
		A: uint8(min(math.Round(a/wsum), AlphaTransparent)),
	}
}

// CopyMerge blends the sr region of src onto img at dp. pct is the
// weight of the source, from 0 (no change) to 100 (plain copy).
// Indexed targets take the closest palette entry, alpha included.
func (img *Image) CopyMerge(src *Image, dp image.Point, sr image.Rectangle, pct int) error {
	return img.merge("merge", src, dp, sr, pct, false)
}

// CopyMergeGray is CopyMerge with the source converted to gray first.
func (img *Image) CopyMergeGray(src *Image, dp image.Point, sr image.Rectangle, pct int) error {
	return img.merge("merge", src, dp, sr, pct, true)
}

func (img *Image) merge(op string, src *Image, dp image.Point, sr image.Rectangle, pct int, gray bool) error {
	if pct < 0 || pct > 100 {
		return fmt.Errorf("%w: %s percentage %d not in [0,100]", ErrOutOfBounds, op, pct)
	}
	dr := sr.Sub(sr.Min).Add(dp)
	src, sr, err := img.prepareCopy(op, src, dr, sr)
	if err != nil {
		return err
	}
	if err := img.needPalette(op); err != nil {
		return err
	}

	p := float64(pct) / 100
	mix := func(s, d uint8) uint8 {
		return roundByte(float64(s)*p + float64(d)*(1-p))
	}
	for y := range sr.Dy() {
		for x := range sr.Dx() {
			sc := src.raw(sr.Min.X+x, sr.Min.Y+y)
			if sc == src.transparent {
				continue
			}
			s := src.rgbaOf(sc)
			if gray {
				l := luminance(s)
				s.R, s.G, s.B = l, l, l
			}
			tx, ty := dr.Min.X+x, dr.Min.Y+y
			d := img.rgbaOf(img.raw(tx, ty))
			out := RGBA{mix(s.R, d.R), mix(s.G, d.G), mix(s.B, d.B), mix(s.A, d.A)}
			if img.mode == ModeTrueColor {
				img.setRaw(tx, ty, out.pack())
			} else {
				c, _ := img.palette.closestRGBA(out)
				img.setRaw(tx, ty, c)
			}
		}
	}
	return nil
}

// prepareCopy validates both regions. When src is img it returns a
// snapshot of the source region so reads never see earlier writes.
func (img *Image) prepareCopy(op string, src *Image, dr, sr image.Rectangle) (*Image, image.Rectangle, error) {
	if src == nil {
		return nil, sr, fmt.Errorf("%w: %s from nil image", ErrDimensionMismatch, op)
	}
	if err := src.checkRect(op+" source", sr); err != nil {
		return nil, sr, err
	}
	if err := img.checkRect(op+" target", dr); err != nil {
		return nil, sr, err
	}
	if src != img {
		return src, sr, nil
	}
	return src.crop(sr), image.Rect(0, 0, sr.Dx(), sr.Dy()), nil
}

// crop returns a copy of r with the same mode, palette and transparent
// color.
func (img *Image) crop(r image.Rectangle) *Image {
	c := blankLike(img)
	c.width, c.height = r.Dx(), r.Dy()
	if img.mode == ModeTrueColor {
		c.tpix = make([]uint32, c.width*c.height)
	} else {
		c.pix = make([]uint8, c.width*c.height)
	}
	for y := range c.height {
		for x := range c.width {
			c.setRaw(x, y, img.raw(r.Min.X+x, r.Min.Y+y))
		}
	}
	return c
}

func (img *Image) needPalette(op string) error {
	if img.mode == ModeIndexed && img.palette.total == 0 {
		return fmt.Errorf("%w: %s into an image with an empty palette", ErrInvalidColor, op)
	}
	return nil
}

func roundByte(v float64) uint8 {
	return uint8(math.Max(0, math.Min(255, math.Round(v))))
}

// colorMapper translates source pixel values into target colors,
// memoizing palette lookups.
type colorMapper struct {
	dst, src *Image
	identity bool
	cache    *cache.Cache[Color, Color]
}

func newColorMapper(dst, src *Image) *colorMapper {
	identity := dst.mode == src.mode &&
		(dst.mode == ModeTrueColor || dst.palette.equal(&src.palette))
	return &colorMapper{
		dst:      dst,
		src:      src,
		identity: identity,
		cache:    cache.New[Color, Color](mapperCacheSize),
	}
}

func (m *colorMapper) mapColor(c Color) Color {
	if m.identity {
		return c
	}
	return m.cache.GetOrCreate(c, func() Color {
		return m.dst.convert(m.src, c)
	})
}

// CopyPalette replaces img's palette with src's. Every pixel and the
// transparent color are remapped to the closest entry of the new
// palette first, so the image looks as close to unchanged as the new
// palette allows. Both images must be indexed.
func (img *Image) CopyPalette(src *Image) error {
	if src == nil || img.mode != ModeIndexed || src.mode != ModeIndexed {
		return fmt.Errorf("%w: palette copy needs two indexed images", ErrDimensionMismatch)
	}
	if src == img {
		return nil
	}
	if src.palette.total == 0 {
		return fmt.Errorf("%w: source palette is empty", ErrInvalidColor)
	}

	var remap [MaxColors]uint8
	var done [MaxColors]bool
	lookup := func(i uint8) uint8 {
		if !done[i] {
			c, _ := src.palette.closestRGBA(img.palette.entries[i])
			remap[i], done[i] = uint8(c), true
		}
		return remap[i]
	}
	for i, v := range img.pix {
		img.pix[i] = lookup(v)
	}
	if img.transparent != None {
		img.transparent = Color(lookup(uint8(img.transparent)))
	}
	img.palette = src.palette
	return nil
}
