package gd

import (
	"fmt"
	"image"
	"math"
	"slices"
)

// FilledPolygon fills the polygon through points using the even-odd
// scanline rule. Every vertex must lie inside the image.
func (img *Image) FilledPolygon(points []image.Point, c Color) error {
	if len(points) < 3 {
		return fmt.Errorf("%w: polygon needs at least 3 points, got %d", ErrInvalidDimension, len(points))
	}
	if err := img.checkPoints("polygon", points...); err != nil {
		return err
	}
	if err := img.checkDraw(c); err != nil {
		return err
	}
	img.fillPolygon(points, c)
	return nil
}

// fillPolygon scan-converts a polygon, clipping to the image. Edges are
// half-open in y except on the bottom row so shared vertices are counted
// once.
func (img *Image) fillPolygon(points []image.Point, c Color) {
	minY, maxY := points[0].Y, points[0].Y
	minX, maxX := points[0].X, points[0].X
	for _, p := range points[1:] {
		minY, maxY = min(minY, p.Y), max(maxY, p.Y)
		minX, maxX = min(minX, p.X), max(maxX, p.X)
	}

	if minY == maxY {
		img.span(minX, maxX, minY, c)
		return
	}

	n := len(points)
	xs := make([]int, 0, n)
	for y := max(minY, 0); y <= min(maxY, img.height-1); y++ {
		xs = xs[:0]
		for i := range n {
			p1, p2 := points[(i+n-1)%n], points[i]
			if p1.Y == p2.Y {
				continue
			}
			if p1.Y > p2.Y {
				p1, p2 = p2, p1
			}
			if (y >= p1.Y && y < p2.Y) || (y == maxY && y > p1.Y && y <= p2.Y) {
				t := float64((y-p1.Y)*(p2.X-p1.X)) / float64(p2.Y-p1.Y)
				xs = append(xs, p1.X+int(math.Floor(t+0.5)))
			}
		}
		slices.Sort(xs)
		for i := 0; i+1 < len(xs); i += 2 {
			img.span(xs[i], xs[i+1], y, c)
		}
	}
}

// span plots the inclusive run [x0, x1] on row y, clipped.
func (img *Image) span(x0, x1, y int, c Color) {
	if y < 0 || y >= img.height {
		return
	}
	for x := max(x0, 0); x <= min(x1, img.width-1); x++ {
		img.plot(x, y, c)
	}
}
