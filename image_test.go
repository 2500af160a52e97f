package gd

import (
	"errors"
	"image"
	"testing"
)

func TestNew_InvalidDimension(t *testing.T) {
	tests := []struct {
		name string
		w, h int
	}{
		{"zero width", 0, 5},
		{"negative height", 5, -1},
		{"too many pixels", 1 << 15, 1 << 14},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := New(tt.w, tt.h, ModeIndexed)
			if !errors.Is(err, ErrInvalidDimension) {
				t.Errorf("New(%d, %d) error = %v, want ErrInvalidDimension", tt.w, tt.h, err)
			}
		})
	}

	if _, err := New(1, 1, Mode(9)); !errors.Is(err, ErrUnsupportedFormat) {
		t.Errorf("unknown mode error = %v", err)
	}
	if _, err := New(1, 1, ModeIndexed, WithThickness(0)); !errors.Is(err, ErrInvalidDimension) {
		t.Errorf("zero thickness error = %v", err)
	}
}

func TestNew_DefaultBackground(t *testing.T) {
	img := newImage(t, 4, 3, ModeIndexed)
	white := alloc(t, img, 255, 255, 255)
	alloc(t, img, 0, 0, 0)

	if n := countColor(img, white); n != 12 {
		t.Errorf("%d pixels show the first allocated color, want 12", n)
	}
	if img.Transparent() != None {
		t.Errorf("Transparent = %d, want None", img.Transparent())
	}

	tc := newImage(t, 2, 2, ModeTrueColor)
	if got := mustPixel(t, tc, 1, 1); got != TrueColor(0, 0, 0) {
		t.Errorf("true-color default pixel = %#x, want opaque black", int(got))
	}
	if !tc.AlphaBlending() {
		t.Error("true-color images blend by default")
	}
}

func TestNew_Options(t *testing.T) {
	img := newImage(t, 2, 2, ModeTrueColor,
		WithInterlace(true), WithAlphaBlending(false), WithThickness(3))
	if !img.Interlaced() || img.AlphaBlending() || img.Thickness() != 3 {
		t.Errorf("options not applied: interlace=%v blending=%v thickness=%d",
			img.Interlaced(), img.AlphaBlending(), img.Thickness())
	}
	if img.Mode().String() != "truecolor" || !img.IsTrueColor() {
		t.Errorf("Mode = %v", img.Mode())
	}
}

func TestBoundsSafe(t *testing.T) {
	img := newImage(t, 3, 2, ModeIndexed)
	tests := []struct {
		x, y int
		want bool
	}{
		{0, 0, true},
		{2, 1, true},
		{3, 1, false},
		{2, 2, false},
		{-1, 0, false},
		{0, -1, false},
	}
	for _, tt := range tests {
		if got := img.BoundsSafe(tt.x, tt.y); got != tt.want {
			t.Errorf("BoundsSafe(%d, %d) = %v, want %v", tt.x, tt.y, got, tt.want)
		}
	}
	if img.Bounds() != image.Rect(0, 0, 3, 2) {
		t.Errorf("Bounds = %v", img.Bounds())
	}
}

func TestGetSetPixel(t *testing.T) {
	img := newImage(t, 3, 3, ModeIndexed)
	alloc(t, img, 0, 0, 0)
	red := alloc(t, img, 255, 0, 0)

	if err := img.SetPixel(2, 1, red); err != nil {
		t.Fatal(err)
	}
	if got := mustPixel(t, img, 2, 1); got != red {
		t.Errorf("GetPixel = %d, want %d", got, red)
	}

	if _, err := img.GetPixel(3, 0); !errors.Is(err, ErrOutOfBounds) {
		t.Errorf("GetPixel out of bounds error = %v", err)
	}
	if err := img.SetPixel(-1, 0, red); !errors.Is(err, ErrOutOfBounds) {
		t.Errorf("SetPixel out of bounds error = %v", err)
	}
	if err := img.SetPixel(0, 0, 7); !errors.Is(err, ErrInvalidColor) {
		t.Errorf("SetPixel unallocated handle error = %v", err)
	}
	if err := img.SetPixel(0, 0, Brushed); !errors.Is(err, ErrInvalidColor) {
		t.Errorf("SetPixel Brushed without brush error = %v", err)
	}
}

func TestSetPixel_AlphaBlending(t *testing.T) {
	img := newImage(t, 1, 1, ModeTrueColor)
	if err := img.SetPixel(0, 0, TrueColor(255, 255, 255)); err != nil {
		t.Fatal(err)
	}
	half := TrueColorAlpha(0, 0, 0, 64)

	if err := img.SetPixel(0, 0, half); err != nil {
		t.Fatal(err)
	}
	if got := mustPixel(t, img, 0, 0); got != TrueColor(128, 128, 128) {
		t.Errorf("blended pixel = %#x, want %#x", int(got), int(TrueColor(128, 128, 128)))
	}

	img.SetAlphaBlending(false)
	if err := img.SetPixel(0, 0, half); err != nil {
		t.Fatal(err)
	}
	if got := mustPixel(t, img, 0, 0); got != half {
		t.Errorf("unblended pixel = %#x, want %#x", int(got), int(half))
	}
}

func TestClone(t *testing.T) {
	img := newImage(t, 2, 2, ModeIndexed)
	alloc(t, img, 0, 0, 0)
	red := alloc(t, img, 255, 0, 0)

	c := img.Clone()
	if err := c.SetPixel(0, 0, red); err != nil {
		t.Fatal(err)
	}
	if _, err := c.ColorAllocate(1, 2, 3); err != nil {
		t.Fatal(err)
	}
	if mustPixel(t, img, 0, 0) != 0 || img.ColorsTotal() != 2 {
		t.Error("changing the clone changed the original")
	}
	if Compare(img, img.Clone()) != 0 {
		t.Error("fresh clone compares different")
	}
}

func newFromSource(t *testing.T) (*Image, Color, Color) {
	t.Helper()
	img := newImage(t, 4, 2, ModeIndexed)
	black := alloc(t, img, 0, 0, 0)
	red := alloc(t, img, 255, 0, 0)
	blue := alloc(t, img, 0, 0, 255)
	if err := img.ColorTransparent(red); err != nil {
		t.Fatal(err)
	}
	for x := range 4 {
		img.setRaw(x, 0, red)
		img.setRaw(x, 1, blue)
	}
	img.setRaw(0, 0, black)
	return img, red, blue
}

func TestNewFrom_SameSize(t *testing.T) {
	src, red, _ := newFromSource(t)
	n, err := NewFrom(src, 0, 0, ModeIndexed)
	if err != nil {
		t.Fatal(err)
	}
	if f := Compare(src, n); f != 0 {
		t.Errorf("Compare = %v, want identical", f)
	}
	if n.Transparent() != red {
		t.Errorf("transparent = %d, want %d", n.Transparent(), red)
	}
}

func TestNewFrom_Resized(t *testing.T) {
	src, red, blue := newFromSource(t)
	n, err := NewFrom(src, 8, 4, ModeIndexed)
	if err != nil {
		t.Fatal(err)
	}
	if n.Width() != 8 || n.Height() != 4 {
		t.Fatalf("NewFrom = %dx%d, want 8x4", n.Width(), n.Height())
	}
	for y := range 4 {
		for x := range 8 {
			if got, want := n.raw(x, y), src.raw(x/2, y/2); got != want {
				t.Errorf("pixel (%d,%d) = %d, want %d", x, y, got, want)
			}
		}
	}
	if n.raw(7, 0) != red || n.raw(7, 3) != blue {
		t.Error("transparent pixels not carried over")
	}
}

func TestNewFrom_IndexedToTrueColor(t *testing.T) {
	src, _, _ := newFromSource(t)
	n, err := NewFrom(src, 0, 0, ModeTrueColor)
	if err != nil {
		t.Fatal(err)
	}
	if !n.IsTrueColor() {
		t.Fatal("NewFrom kept the indexed mode")
	}
	if !n.AlphaBlending() {
		t.Error("alpha blending off after NewFrom")
	}
	tests := []struct {
		x, y int
		want Color
	}{
		{0, 0, TrueColor(0, 0, 0)},
		{1, 0, TrueColor(255, 0, 0)},
		{3, 1, TrueColor(0, 0, 255)},
	}
	for _, tt := range tests {
		if got := mustPixel(t, n, tt.x, tt.y); got != tt.want {
			t.Errorf("pixel (%d,%d) = %+v, want %+v", tt.x, tt.y, unpack(got), unpack(tt.want))
		}
	}
	if n.Transparent() != TrueColor(255, 0, 0) {
		t.Errorf("transparent = %+v", unpack(n.Transparent()))
	}
	if f := Compare(src, n); f.Has(CmpColor) {
		t.Errorf("Compare = %v", f)
	}
}

func TestNewFrom_Errors(t *testing.T) {
	src, _, _ := newFromSource(t)
	if _, err := NewFrom(nil, 1, 1, ModeIndexed); !errors.Is(err, ErrDimensionMismatch) {
		t.Errorf("nil source error = %v", err)
	}
	if _, err := NewFrom(src, -1, 2, ModeIndexed); !errors.Is(err, ErrInvalidDimension) {
		t.Errorf("negative width error = %v", err)
	}
}

func TestResize(t *testing.T) {
	img := newImage(t, 2, 2, ModeIndexed)
	alloc(t, img, 0, 0, 0)
	red := alloc(t, img, 255, 0, 0)
	fillc := alloc(t, img, 0, 0, 255)
	if err := img.SetPixel(1, 1, red); err != nil {
		t.Fatal(err)
	}
	if err := img.ColorTransparent(fillc); err != nil {
		t.Fatal(err)
	}

	if err := img.Resize(4, 3); err != nil {
		t.Fatal(err)
	}
	if img.Width() != 4 || img.Height() != 3 {
		t.Fatalf("size = %dx%d", img.Width(), img.Height())
	}
	if mustPixel(t, img, 1, 1) != red || mustPixel(t, img, 0, 0) != 0 {
		t.Error("resize lost the overlapping region")
	}
	if mustPixel(t, img, 3, 2) != fillc || mustPixel(t, img, 2, 0) != fillc {
		t.Error("new area not filled with the transparent color")
	}

	if err := img.Resize(1, 1); err != nil {
		t.Fatal(err)
	}
	if err := img.Resize(0, 1); !errors.Is(err, ErrInvalidDimension) {
		t.Errorf("Resize(0, 1) error = %v", err)
	}
}

func TestSetStyle(t *testing.T) {
	img := newImage(t, 2, 2, ModeIndexed)
	c := alloc(t, img, 1, 1, 1)
	if err := img.SetStyle(c, Transparent); err != nil {
		t.Errorf("SetStyle = %v", err)
	}
	if err := img.SetStyle(c, Brushed); !errors.Is(err, ErrInvalidColor) {
		t.Errorf("SetStyle with Brushed error = %v", err)
	}
	if err := img.SetBrush(img); !errors.Is(err, ErrInvalidColor) {
		t.Errorf("self brush error = %v", err)
	}
	if err := img.SetThickness(0); !errors.Is(err, ErrInvalidDimension) {
		t.Errorf("SetThickness(0) error = %v", err)
	}
}
