package gd

import (
	"fmt"
	"image/color"
)

// Palette is the color table of an indexed image. Slots are handed out
// lowest-free-first; a deallocated slot becomes free for reuse but
// pixels that still refer to it keep their index.
type Palette struct {
	entries [MaxColors]RGBA
	open    [MaxColors]bool
	total   int
}

// Len returns the number of slots in use, including deallocated slots
// below the highest allocated one.
func (p *Palette) Len() int {
	return p.total
}

// Allocated reports whether c refers to a live palette slot.
func (p *Palette) Allocated(c Color) bool {
	return c >= 0 && int(c) < p.total && !p.open[c]
}

// At returns the entry for c. ok is false when c is not a live slot.
func (p *Palette) At(c Color) (e RGBA, ok bool) {
	if !p.Allocated(c) {
		return RGBA{}, false
	}
	return p.entries[c], true
}

// Colors returns the palette as a standard library palette. Deallocated
// slots keep their last value.
func (p *Palette) Colors() color.Palette {
	pal := make(color.Palette, p.total)
	for i := range p.total {
		pal[i] = p.entries[i].NRGBA()
	}
	return pal
}

func (p *Palette) allocate(e RGBA) (Color, error) {
	for i := range p.total {
		if p.open[i] {
			p.entries[i] = e
			p.open[i] = false
			return Color(i), nil
		}
	}
	if p.total == MaxColors {
		return None, ErrPaletteFull
	}
	c := Color(p.total)
	p.entries[c] = e
	p.open[c] = false
	p.total++
	return c, nil
}

func (p *Palette) exact(e RGBA) (Color, bool) {
	for i := range p.total {
		if !p.open[i] && p.entries[i] == e {
			return Color(i), true
		}
	}
	return None, false
}

// closest finds the live entry with the smallest squared distance as
// computed by dist. Ties go to the lowest index.
// equal reports whether p and q have the same slots in use and the same
// colors in their allocated slots.
func (p *Palette) equal(q *Palette) bool {
	if p.total != q.total {
		return false
	}
	for i := range p.total {
		if p.open[i] != q.open[i] {
			return false
		}
		if !p.open[i] && p.entries[i] != q.entries[i] {
			return false
		}
	}
	return true
}

func (p *Palette) closest(dist func(RGBA) int) (Color, bool) {
	best := None
	bestDist := 0
	for i := range p.total {
		if p.open[i] {
			continue
		}
		d := dist(p.entries[i])
		if best == None || d < bestDist {
			best, bestDist = Color(i), d
			if d == 0 {
				break
			}
		}
	}
	return best, best != None
}

func (p *Palette) closestRGBA(e RGBA) (Color, bool) {
	return p.closest(func(q RGBA) int {
		dr := int(q.R) - int(e.R)
		dg := int(q.G) - int(e.G)
		db := int(q.B) - int(e.B)
		da := int(q.A) - int(e.A)
		return dr*dr + dg*dg + db*db + da*da
	})
}

func checkComponents(r, g, b, a int) error {
	if r < 0 || r > 255 || g < 0 || g > 255 || b < 0 || b > 255 {
		return fmt.Errorf("%w: color component out of range (%d,%d,%d)", ErrOutOfBounds, r, g, b)
	}
	if a < AlphaOpaque || a > AlphaTransparent {
		return fmt.Errorf("%w: alpha %d out of range [0,127]", ErrOutOfBounds, a)
	}
	return nil
}

// ColorAllocate adds an opaque color to the palette and returns its
// handle. For true-color images it returns the packed color.
func (img *Image) ColorAllocate(r, g, b int) (Color, error) {
	return img.ColorAllocateAlpha(r, g, b, AlphaOpaque)
}

// ColorAllocateAlpha adds a color to the palette and returns its handle.
// It fails with ErrPaletteFull when all MaxColors slots are live.
func (img *Image) ColorAllocateAlpha(r, g, b, a int) (Color, error) {
	if err := checkComponents(r, g, b, a); err != nil {
		return None, err
	}
	e := RGBA{uint8(r), uint8(g), uint8(b), uint8(a)}
	if img.mode == ModeTrueColor {
		return e.pack(), nil
	}
	c, err := img.palette.allocate(e)
	if err != nil {
		return None, err
	}
	return c, nil
}

// ColorDeallocate frees a palette slot for reuse. Pixels keep the index
// and show whatever color is allocated into the slot next. If c is the
// transparent color, the transparent marker is cleared. It is a no-op
// for true-color images.
func (img *Image) ColorDeallocate(c Color) error {
	if img.mode == ModeTrueColor {
		return nil
	}
	if c < 0 || int(c) >= img.palette.total {
		return fmt.Errorf("%w: handle %d", ErrInvalidColor, c)
	}
	img.palette.open[c] = true
	if img.transparent == c {
		img.transparent = None
	}
	return nil
}

// ColorExact returns the handle of an opaque color that matches exactly.
func (img *Image) ColorExact(r, g, b int) (Color, bool) {
	return img.ColorExactAlpha(r, g, b, AlphaOpaque)
}

// ColorExactAlpha returns the handle of the first live entry equal to the
// given color. True-color images always match.
func (img *Image) ColorExactAlpha(r, g, b, a int) (Color, bool) {
	if checkComponents(r, g, b, a) != nil {
		return None, false
	}
	e := RGBA{uint8(r), uint8(g), uint8(b), uint8(a)}
	if img.mode == ModeTrueColor {
		return e.pack(), true
	}
	return img.palette.exact(e)
}

// ColorClosest returns the live entry nearest to (r, g, b) in Euclidean
// RGB distance, ignoring alpha. ok is false for an empty palette.
func (img *Image) ColorClosest(r, g, b int) (Color, bool) {
	if img.mode == ModeTrueColor {
		return TrueColor(r, g, b), true
	}
	return img.palette.closest(func(q RGBA) int {
		dr := int(q.R) - r
		dg := int(q.G) - g
		db := int(q.B) - b
		return dr*dr + dg*dg + db*db
	})
}

// ColorClosestAlpha is ColorClosest with alpha as a fourth dimension.
func (img *Image) ColorClosestAlpha(r, g, b, a int) (Color, bool) {
	if img.mode == ModeTrueColor {
		return TrueColorAlpha(r, g, b, a), true
	}
	return img.palette.closestRGBA(RGBA{uint8(r), uint8(g), uint8(b), uint8(a)})
}

// ColorClosestHWB returns the live entry nearest to (r, g, b) in
// hue-whiteness-blackness space, which tracks perceived hue better than
// RGB distance.
func (img *Image) ColorClosestHWB(r, g, b int) (Color, bool) {
	if img.mode == ModeTrueColor {
		return TrueColor(r, g, b), true
	}
	want := toHWB(RGBA{R: uint8(r), G: uint8(g), B: uint8(b)})
	return img.palette.closest(func(q RGBA) int {
		// Scaled to keep resolution through the integer comparison.
		return int(hwbDistance(want, toHWB(q)) * 1e6)
	})
}

// ColorResolve returns an exact match, else allocates the color, else
// falls back to the closest entry.
func (img *Image) ColorResolve(r, g, b int) (Color, error) {
	return img.ColorResolveAlpha(r, g, b, AlphaOpaque)
}

// ColorResolveAlpha is ColorResolve with an alpha component.
func (img *Image) ColorResolveAlpha(r, g, b, a int) (Color, error) {
	if err := checkComponents(r, g, b, a); err != nil {
		return None, err
	}
	return img.resolve(RGBA{uint8(r), uint8(g), uint8(b), uint8(a)}), nil
}

func (img *Image) resolve(e RGBA) Color {
	if img.mode == ModeTrueColor {
		return e.pack()
	}
	if c, ok := img.palette.exact(e); ok {
		return c
	}
	if c, err := img.palette.allocate(e); err == nil {
		return c
	}
	c, _ := img.palette.closestRGBA(e)
	Logger().Debug("palette full, using closest color",
		"want", e, "got", c)
	return c
}

// ColorsTotal returns the number of palette slots in use, or 0 for a
// true-color image.
func (img *Image) ColorsTotal() int {
	if img.mode == ModeTrueColor {
		return 0
	}
	return img.palette.total
}

// ColorComponents returns the components of a color handle. Deallocated
// slots below ColorsTotal report their last value.
func (img *Image) ColorComponents(c Color) (RGBA, error) {
	if img.mode == ModeTrueColor {
		if c < 0 || c > 0x7fffffff {
			return RGBA{}, fmt.Errorf("%w: %d", ErrInvalidColor, c)
		}
		return unpack(c), nil
	}
	if c < 0 || int(c) >= img.palette.total {
		return RGBA{}, fmt.Errorf("%w: handle %d", ErrInvalidColor, c)
	}
	return img.palette.entries[c], nil
}

// Red returns the red component of c, or 0 for an invalid handle.
func (img *Image) Red(c Color) int {
	e, _ := img.ColorComponents(c)
	return int(e.R)
}

// Green returns the green component of c, or 0 for an invalid handle.
func (img *Image) Green(c Color) int {
	e, _ := img.ColorComponents(c)
	return int(e.G)
}

// Blue returns the blue component of c, or 0 for an invalid handle.
func (img *Image) Blue(c Color) int {
	e, _ := img.ColorComponents(c)
	return int(e.B)
}

// Alpha returns the 7-bit alpha of c, or 0 for an invalid handle.
func (img *Image) Alpha(c Color) int {
	e, _ := img.ColorComponents(c)
	return int(e.A)
}

// ColorTransparent marks c as the transparent color, or clears the
// marker when c is None. For indexed images c must be allocated.
func (img *Image) ColorTransparent(c Color) error {
	switch {
	case c == None:
	case img.mode == ModeTrueColor && (c < 0 || c > 0x7fffffff):
		return fmt.Errorf("%w: %d", ErrInvalidColor, c)
	case img.mode == ModeIndexed && !img.palette.Allocated(c):
		return fmt.Errorf("%w: handle %d is not allocated", ErrInvalidColor, c)
	}
	img.transparent = c
	return nil
}

// Transparent returns the transparent color or None.
func (img *Image) Transparent() Color {
	return img.transparent
}

// Palette returns the image's color table. It is empty for true-color
// images.
func (img *Image) Palette() *Palette {
	return &img.palette
}

// rgbaOf returns the components of a stored pixel value.
func (img *Image) rgbaOf(c Color) RGBA {
	if img.mode == ModeTrueColor {
		return unpack(c)
	}
	return img.palette.entries[uint8(c)]
}
