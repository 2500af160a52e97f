package gd

import (
	"fmt"
	"image"
)

// Line draws a straight line from p0 to p1, both endpoints included.
// Both endpoints must lie inside the image; nothing is drawn otherwise.
func (img *Image) Line(p0, p1 image.Point, c Color) error {
	if err := img.checkPoints("line", p0, p1); err != nil {
		return err
	}
	if err := img.checkDraw(c); err != nil {
		return err
	}
	img.segment(p0, p1, c, false, false)
	return nil
}

// Polyline draws connected line segments through points. Shared
// vertices are drawn once.
func (img *Image) Polyline(points []image.Point, c Color) error {
	if len(points) < 2 {
		return fmt.Errorf("%w: polyline needs at least 2 points, got %d", ErrInvalidDimension, len(points))
	}
	if err := img.checkPoints("polyline", points...); err != nil {
		return err
	}
	if err := img.checkDraw(c); err != nil {
		return err
	}
	img.path(points, false, c)
	return nil
}

// Polygon draws the closed outline through points.
func (img *Image) Polygon(points []image.Point, c Color) error {
	if len(points) < 3 {
		return fmt.Errorf("%w: polygon needs at least 3 points, got %d", ErrInvalidDimension, len(points))
	}
	if err := img.checkPoints("polygon", points...); err != nil {
		return err
	}
	if err := img.checkDraw(c); err != nil {
		return err
	}
	img.path(points, true, c)
	return nil
}

// path draws segments through points, plotting each shared vertex once.
func (img *Image) path(points []image.Point, closed bool, c Color) {
	for i := 1; i < len(points); i++ {
		img.segment(points[i-1], points[i], c, i > 1, false)
	}
	if closed && len(points) > 2 {
		img.segment(points[len(points)-1], points[0], c, true, true)
	}
}

// segment draws a Bresenham line. skipFirst and skipLast omit the
// endpoints so joined segments do not plot a vertex twice.
func (img *Image) segment(p0, p1 image.Point, c Color, skipFirst, skipLast bool) {
	dx := abs(p1.X - p0.X)
	dy := abs(p1.Y - p0.Y)
	sx, sy := sign(p1.X-p0.X), sign(p1.Y-p0.Y)
	horizontal := dx >= dy

	x, y := p0.X, p0.Y
	err := dx - dy
	for {
		first := x == p0.X && y == p0.Y
		last := x == p1.X && y == p1.Y
		if !(first && skipFirst) && !(last && skipLast) {
			img.plotWide(x, y, c, horizontal)
		}
		if last {
			return
		}
		e2 := 2 * err
		if e2 > -dy {
			err -= dy
			x += sx
		}
		if e2 < dx {
			err += dx
			y += sy
		}
	}
}

// plotWide plots a pen-width span across the line direction.
func (img *Image) plotWide(x, y int, c Color, horizontal bool) {
	t := img.thickness
	if t <= 1 {
		img.plot(x, y, c)
		return
	}
	off := t / 2
	for i := range t {
		if horizontal {
			img.plot(x, y-off+i, c)
		} else {
			img.plot(x-off+i, y, c)
		}
	}
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

func sign(v int) int {
	switch {
	case v < 0:
		return -1
	case v > 0:
		return 1
	}
	return 0
}
