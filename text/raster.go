package text

import (
	"fmt"
	"image"
	"math"

	"golang.org/x/image/font/sfnt"
	"golang.org/x/image/math/fixed"
	"golang.org/x/image/vector"

	"github.com/gogpu/gd"
)

type vec struct{ x, y float64 }

// pathSeg is one outline segment in final pen-relative coordinates.
type pathSeg struct {
	op  sfnt.SegmentOp
	pts [3]vec
}

// rotation turns pen-relative points counter-clockwise on screen.
type rotation struct{ sin, cos float64 }

func newRotation(angle float64) rotation {
	if angle == 0 {
		return rotation{cos: 1}
	}
	return rotation{sin: math.Sin(angle), cos: math.Cos(angle)}
}

func (t rotation) apply(p vec) vec {
	return vec{
		x: p.x*t.cos + p.y*t.sin,
		y: -p.x*t.sin + p.y*t.cos,
	}
}

func (t rotation) point(p vec) image.Point {
	q := t.apply(p)
	return image.Pt(int(math.Round(q.x)), int(math.Round(q.y)))
}

// outline returns the scaled outline of gid, y down, from the cache.
func (r *Renderer) outline(f *Font, gid sfnt.GlyphIndex, ppem fixed.Int26_6) []sfnt.Segment {
	key := outlineKey{font: f, gid: gid, ppem: ppem}
	if segs, ok := r.outlines.Get(key); ok {
		return segs
	}

	buf := r.buffers.Get().(*sfnt.Buffer)
	segs, err := f.outline.LoadGlyph(buf, gid, ppem, nil)
	if err != nil {
		gd.Logger().Debug("text: glyph has no outline", "font", f.id, "gid", gid, "err", err)
		segs = nil
	}
	// LoadGlyph's result aliases buf.
	segs = append([]sfnt.Segment(nil), segs...)
	r.buffers.Put(buf)

	gd.Logger().Debug("text: outline cache miss", "font", f.id, "gid", gid, "ppem", ppem)
	r.outlines.Set(key, segs)
	return segs
}

func argCount(op sfnt.SegmentOp) int {
	switch op {
	case sfnt.SegmentOpQuadTo:
		return 2
	case sfnt.SegmentOpCubeTo:
		return 3
	default:
		return 1
	}
}

// rasterize fills the laid out glyph outlines into a coverage mask.
func (r *Renderer) rasterize(f *Font, ppem fixed.Int26_6, angle float64, l layoutResult) (*gd.GlyphBitmap, error) {
	rot := newRotation(angle)

	var path []pathSeg
	ink := struct{ min, max vec }{
		min: vec{math.Inf(1), math.Inf(1)},
		max: vec{math.Inf(-1), math.Inf(-1)},
	}
	lo := vec{math.Inf(1), math.Inf(1)}
	hi := vec{math.Inf(-1), math.Inf(-1)}

	for _, g := range l.glyphs {
		for _, seg := range r.outline(f, g.gid, ppem) {
			ps := pathSeg{op: seg.Op}
			for i := range argCount(seg.Op) {
				p := vec{g.x + fixedToFloat(seg.Args[i].X), g.y + fixedToFloat(seg.Args[i].Y)}
				ink.min = vec{min(ink.min.x, p.x), min(ink.min.y, p.y)}
				ink.max = vec{max(ink.max.x, p.x), max(ink.max.y, p.y)}

				q := rot.apply(p)
				lo = vec{min(lo.x, q.x), min(lo.y, q.y)}
				hi = vec{max(hi.x, q.x), max(hi.y, q.y)}
				ps.pts[i] = q
			}
			path = append(path, ps)
		}
	}

	if len(path) == 0 {
		// No ink: the box spans the advance on the baseline.
		return &gd.GlyphBitmap{
			Mask: image.NewAlpha(image.Rectangle{}),
			Box: gd.BoundingBox{
				{},
				rot.point(vec{l.width, 0}),
				rot.point(vec{l.width, 0}),
				{},
			},
		}, nil
	}

	x0, y0 := int(math.Floor(lo.x)), int(math.Floor(lo.y))
	x1, y1 := int(math.Ceil(hi.x)), int(math.Ceil(hi.y))
	w, h := x1-x0, y1-y0
	if w <= 0 || h <= 0 || w > gd.MaxPixels/h {
		return nil, fmt.Errorf("%w: text mask %dx%d", gd.ErrInvalidDimension, w, h)
	}

	z := vector.NewRasterizer(w, h)
	ox, oy := float64(x0), float64(y0)
	pt := func(v vec) (float32, float32) {
		return float32(v.x - ox), float32(v.y - oy)
	}
	open := false
	for _, s := range path {
		switch s.op {
		case sfnt.SegmentOpMoveTo:
			if open {
				z.ClosePath()
			}
			z.MoveTo(pt(s.pts[0]))
			open = true
		case sfnt.SegmentOpLineTo:
			z.LineTo(pt(s.pts[0]))
		case sfnt.SegmentOpQuadTo:
			bx, by := pt(s.pts[0])
			cx, cy := pt(s.pts[1])
			z.QuadTo(bx, by, cx, cy)
		case sfnt.SegmentOpCubeTo:
			bx, by := pt(s.pts[0])
			cx, cy := pt(s.pts[1])
			dx, dy := pt(s.pts[2])
			z.CubeTo(bx, by, cx, cy, dx, dy)
		}
	}
	if open {
		z.ClosePath()
	}

	mask := image.NewAlpha(image.Rect(0, 0, w, h))
	z.Draw(mask, mask.Bounds(), image.Opaque, image.Point{})
	mask.Rect = mask.Rect.Add(image.Pt(x0, y0))

	return &gd.GlyphBitmap{
		Mask: mask,
		Box: gd.BoundingBox{
			rot.point(vec{ink.min.x, ink.max.y}),
			rot.point(vec{ink.max.x, ink.max.y}),
			rot.point(vec{ink.max.x, ink.min.y}),
			rot.point(vec{ink.min.x, ink.min.y}),
		},
	}, nil
}
