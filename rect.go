package gd

import "image"

// canon orders two corners into an inclusive min/max pair.
func canon(p0, p1 image.Point) (lo, hi image.Point) {
	return image.Pt(min(p0.X, p1.X), min(p0.Y, p1.Y)),
		image.Pt(max(p0.X, p1.X), max(p0.Y, p1.Y))
}

// Rectangle draws the outline of the rectangle with corners p0 and p1,
// both inclusive.
func (img *Image) Rectangle(p0, p1 image.Point, c Color) error {
	if err := img.checkPoints("rectangle", p0, p1); err != nil {
		return err
	}
	if err := img.checkDraw(c); err != nil {
		return err
	}

	lo, hi := canon(p0, p1)
	if lo.X == hi.X || lo.Y == hi.Y {
		img.segment(lo, hi, c, false, false)
		return nil
	}
	if img.thickness > 1 {
		img.path([]image.Point{lo, {hi.X, lo.Y}, hi, {lo.X, hi.Y}}, true, c)
		return nil
	}
	for x := lo.X; x <= hi.X; x++ {
		img.plot(x, lo.Y, c)
	}
	for y := lo.Y + 1; y < hi.Y; y++ {
		img.plot(hi.X, y, c)
	}
	for x := hi.X; x >= lo.X; x-- {
		img.plot(x, hi.Y, c)
	}
	for y := hi.Y - 1; y > lo.Y; y-- {
		img.plot(lo.X, y, c)
	}
	return nil
}

// FilledRectangle fills the rectangle with corners p0 and p1, both
// inclusive.
func (img *Image) FilledRectangle(p0, p1 image.Point, c Color) error {
	if err := img.checkPoints("rectangle", p0, p1); err != nil {
		return err
	}
	if err := img.checkDraw(c); err != nil {
		return err
	}

	lo, hi := canon(p0, p1)
	for y := lo.Y; y <= hi.Y; y++ {
		for x := lo.X; x <= hi.X; x++ {
			img.plot(x, y, c)
		}
	}
	return nil
}
