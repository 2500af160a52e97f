package gd

import (
	"fmt"
	"image"
)

// Fill flood-fills the 4-connected region of pixels equal to the seed
// pixel. c may be a solid color or Tiled. Filling a region with the
// color it already has is a no-op.
func (img *Image) Fill(seed image.Point, c Color) error {
	if err := img.checkFill("fill", seed, c); err != nil {
		return err
	}
	old := img.raw(seed.X, seed.Y)
	if c == old {
		return nil
	}
	img.flood(seed, c, func(v Color) bool { return v == old })
	return nil
}

// FillToBorder flood-fills the 4-connected region around seed that is
// bounded by pixels of the border color. Border pixels are never
// changed; a seed on the border is a no-op.
func (img *Image) FillToBorder(seed image.Point, border, c Color) error {
	if err := img.checkFill("fill", seed, c); err != nil {
		return err
	}
	if err := img.checkSolid(border); err != nil {
		return fmt.Errorf("border: %w", err)
	}
	if img.raw(seed.X, seed.Y) == border {
		return nil
	}
	img.flood(seed, c, func(v Color) bool { return v != border })
	return nil
}

func (img *Image) checkFill(op string, seed image.Point, c Color) error {
	if err := img.checkPoints(op, seed); err != nil {
		return err
	}
	if c != Tiled && c < 0 {
		return fmt.Errorf("%w: %s accepts a solid color or Tiled", ErrInvalidColor, op)
	}
	return img.checkDraw(c)
}

// flood runs a span fill from seed over pixels accepted by inside.
// Each pixel is visited once, so the fill terminates even when the new
// color still satisfies inside.
func (img *Image) flood(seed image.Point, c Color, inside func(Color) bool) {
	w := img.width
	visited := make([]bool, w*img.height)
	match := func(x, y int) bool {
		return !visited[y*w+x] && inside(img.raw(x, y))
	}

	stack := []image.Point{seed}
	for len(stack) > 0 {
		p := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if !match(p.X, p.Y) {
			continue
		}

		x0, x1 := p.X, p.X
		for x0 > 0 && match(x0-1, p.Y) {
			x0--
		}
		for x1 < w-1 && match(x1+1, p.Y) {
			x1++
		}
		for x := x0; x <= x1; x++ {
			visited[p.Y*w+x] = true
		}
		for x := x0; x <= x1; x++ {
			img.plot(x, p.Y, c)
		}

		for _, ny := range [2]int{p.Y - 1, p.Y + 1} {
			if ny < 0 || ny >= img.height {
				continue
			}
			for x := x0; x <= x1; x++ {
				if match(x, ny) && (x == x0 || !match(x-1, ny)) {
					stack = append(stack, image.Pt(x, ny))
				}
			}
		}
	}
}
