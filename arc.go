package gd

import (
	"fmt"
	"image"
	"math"
)

// ArcStyle selects how FilledArc draws. Values combine with |.
type ArcStyle int

const (
	// ArcPie fills the wedge between the arc and the center.
	ArcPie ArcStyle = 0

	// ArcChord connects the arc endpoints with a straight line instead
	// of following the curve.
	ArcChord ArcStyle = 1

	// ArcNoFill draws outlines only.
	ArcNoFill ArcStyle = 2

	// ArcEdged adds lines from the center to the arc endpoints. It only
	// affects ArcNoFill drawing.
	ArcEdged ArcStyle = 4
)

// Arc draws part of the ellipse inscribed in a size.X by size.Y box
// centered on center. Angles are in degrees, clockwise from 3 o'clock.
// A sweep of 360 degrees or more draws the whole ellipse. Only center
// must lie inside the image; the curve is clipped.
func (img *Image) Arc(center, size image.Point, start, end int, c Color) error {
	if err := img.checkEllipse("arc", center, size, c); err != nil {
		return err
	}
	s, e, full := normalizeArc(start, end)
	if full {
		img.ellipse(center, size, c)
		return nil
	}
	img.curve(arcPoints(center, size, s, e), c)
	return nil
}

// Ellipse draws the outline of an ellipse.
func (img *Image) Ellipse(center, size image.Point, c Color) error {
	if err := img.checkEllipse("ellipse", center, size, c); err != nil {
		return err
	}
	img.ellipse(center, size, c)
	return nil
}

// FilledEllipse fills an ellipse.
func (img *Image) FilledEllipse(center, size image.Point, c Color) error {
	if err := img.checkEllipse("ellipse", center, size, c); err != nil {
		return err
	}
	a, b := size.X/2, size.Y/2
	for dy := -b; dy <= b; dy++ {
		half := a
		if b > 0 {
			half = int(math.Round(float64(a) * math.Sqrt(1-float64(dy*dy)/float64(b*b))))
		}
		img.span(center.X-half, center.X+half, center.Y+dy, c)
	}
	return nil
}

// FilledArc draws a pie slice or chord according to style.
func (img *Image) FilledArc(center, size image.Point, start, end int, c Color, style ArcStyle) error {
	if err := img.checkEllipse("arc", center, size, c); err != nil {
		return err
	}
	s, e, full := normalizeArc(start, end)
	if full {
		s, e = 0, 360
	}
	pts := arcPoints(center, size, s, e)
	first, last := pts[0], pts[len(pts)-1]

	switch {
	case style&ArcNoFill != 0:
		if style&ArcChord != 0 {
			img.segment(first, last, c, false, false)
		} else {
			img.curve(pts, c)
		}
		if style&ArcEdged != 0 {
			img.segment(center, first, c, false, true)
			if last != first {
				img.segment(center, last, c, true, true)
			}
		}
	case style&ArcChord != 0:
		img.fillPolygon([]image.Point{center, first, last}, c)
	default:
		img.fillPolygon(append([]image.Point{center}, pts...), c)
	}
	return nil
}

func (img *Image) checkEllipse(op string, center, size image.Point, c Color) error {
	if size.X < 0 || size.Y < 0 {
		return fmt.Errorf("%w: %s size %v", ErrInvalidDimension, op, size)
	}
	if err := img.checkPoints(op, center); err != nil {
		return err
	}
	return img.checkDraw(c)
}

// curve draws connected points as one open path.
func (img *Image) curve(pts []image.Point, c Color) {
	if len(pts) == 1 {
		img.plot(pts[0].X, pts[0].Y, c)
		return
	}
	img.path(pts, false, c)
}

func (img *Image) ellipse(center, size image.Point, c Color) {
	for _, p := range ellipsePoints(center, size.X/2, size.Y/2) {
		img.plot(p.X, p.Y, c)
	}
}

// normalizeArc maps start and end to 0 <= s < 360 and s <= e < s+360.
// full reports a sweep of at least one turn.
func normalizeArc(start, end int) (s, e int, full bool) {
	if end-start >= 360 || start-end >= 360 {
		return 0, 360, true
	}
	s = start % 360
	if s < 0 {
		s += 360
	}
	e = end % 360
	if e < 0 {
		e += 360
	}
	if e < s {
		e += 360
	}
	return s, e, false
}

// arcPoints samples the ellipse once per degree from s to e inclusive.
func arcPoints(center, size image.Point, s, e int) []image.Point {
	pts := make([]image.Point, 0, e-s+1)
	for d := s; d <= e; d++ {
		sin, cos := math.Sincos(float64(d) * math.Pi / 180)
		p := image.Pt(
			center.X+int(math.Round(cos*float64(size.X)/2)),
			center.Y+int(math.Round(sin*float64(size.Y)/2)),
		)
		if len(pts) > 0 && pts[len(pts)-1] == p {
			continue
		}
		pts = append(pts, p)
	}
	return pts
}

// ellipsePoints returns the pixels of a midpoint ellipse with semi-axes
// a and b, each exactly once.
func ellipsePoints(center image.Point, a, b int) []image.Point {
	var pts []image.Point
	seen := make(map[image.Point]bool)
	add := func(p image.Point) {
		if !seen[p] {
			seen[p] = true
			pts = append(pts, p)
		}
	}
	add4 := func(x, y int) {
		add(image.Pt(center.X+x, center.Y+y))
		add(image.Pt(center.X-x, center.Y+y))
		add(image.Pt(center.X-x, center.Y-y))
		add(image.Pt(center.X+x, center.Y-y))
	}

	if a == 0 || b == 0 {
		for x := -a; x <= a; x++ {
			for y := -b; y <= b; y++ {
				add(image.Pt(center.X+x, center.Y+y))
			}
		}
		return pts
	}

	a2, b2 := float64(a)*float64(a), float64(b)*float64(b)
	x, y := 0, b
	dx, dy := 0.0, 2*a2*float64(y)
	d1 := b2 - a2*float64(b) + 0.25*a2
	for dx < dy {
		add4(x, y)
		x++
		dx += 2 * b2
		if d1 < 0 {
			d1 += dx + b2
		} else {
			y--
			dy -= 2 * a2
			d1 += dx - dy + b2
		}
	}

	fx, fy := float64(x)+0.5, float64(y-1)
	d2 := b2*fx*fx + a2*fy*fy - a2*b2
	for y >= 0 {
		add4(x, y)
		y--
		dy -= 2 * a2
		if d2 > 0 {
			d2 += a2 - dy
		} else {
			x++
			dx += 2 * b2
			d2 += dx - dy + a2
		}
	}
	return pts
}
