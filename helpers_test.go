package gd

import (
	"image"
	"testing"
)

func newImage(t *testing.T, w, h int, mode Mode, opts ...Option) *Image {
	t.Helper()
	img, err := New(w, h, mode, opts...)
	if err != nil {
		t.Fatalf("New(%d, %d, %v): %v", w, h, mode, err)
	}
	return img
}

func alloc(t *testing.T, img *Image, r, g, b int) Color {
	t.Helper()
	c, err := img.ColorAllocate(r, g, b)
	if err != nil {
		t.Fatalf("ColorAllocate(%d, %d, %d): %v", r, g, b, err)
	}
	return c
}

// countColor counts pixels holding c.
func countColor(img *Image, c Color) int {
	n := 0
	for y := range img.Height() {
		for x := range img.Width() {
			if img.raw(x, y) == c {
				n++
			}
		}
	}
	return n
}

// pixels returns the set of points holding c.
func pixels(img *Image, c Color) map[image.Point]bool {
	set := make(map[image.Point]bool)
	for y := range img.Height() {
		for x := range img.Width() {
			if img.raw(x, y) == c {
				set[image.Pt(x, y)] = true
			}
		}
	}
	return set
}

func mustPixel(t *testing.T, img *Image, x, y int) Color {
	t.Helper()
	c, err := img.GetPixel(x, y)
	if err != nil {
		t.Fatalf("GetPixel(%d, %d): %v", x, y, err)
	}
	return c
}
