package gd

import (
	"image"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/font/inconsolata"
	"golang.org/x/image/math/fixed"
)

// Font is a built-in fixed-cell bitmap font.
type Font struct {
	name string
	face font.Face
}

// Built-in bitmap fonts.
var (
	FontSmall     = &Font{name: "small", face: basicfont.Face7x13}
	FontLarge     = &Font{name: "large", face: inconsolata.Regular8x16}
	FontLargeBold = &Font{name: "large-bold", face: inconsolata.Bold8x16}
)

// Name returns the font name.
func (f *Font) Name() string {
	return f.name
}

// CellSize returns the width and height of one character cell.
func (f *Font) CellSize() image.Point {
	adv, _ := f.face.GlyphAdvance('M')
	return image.Pt(adv.Round(), f.face.Metrics().Height.Ceil())
}

// FontStringSize returns the width and height of s drawn left to right
// with f.
func FontStringSize(f *Font, s string) image.Point {
	return image.Pt(font.MeasureString(f.face, s).Round(), f.face.Metrics().Height.Ceil())
}

// DrawChar draws r with its cell's top-left corner at pt. Only pt must
// lie inside the image; the glyph is clipped.
func (img *Image) DrawChar(f *Font, pt image.Point, r rune, c Color) error {
	if err := img.checkText(pt, c); err != nil {
		return err
	}
	img.glyph(f, pt, r, false, c)
	return nil
}

// DrawCharUp draws r rotated 90 degrees counter-clockwise with its
// cell's bottom-left corner at pt.
func (img *Image) DrawCharUp(f *Font, pt image.Point, r rune, c Color) error {
	if err := img.checkText(pt, c); err != nil {
		return err
	}
	img.glyph(f, pt, r, true, c)
	return nil
}

// DrawString draws s left to right starting at pt.
func (img *Image) DrawString(f *Font, pt image.Point, s string, c Color) error {
	if err := img.checkText(pt, c); err != nil {
		return err
	}
	for _, r := range s {
		pt.X += img.glyph(f, pt, r, false, c)
	}
	return nil
}

// DrawStringUp draws s bottom to top starting at pt, each character
// rotated 90 degrees counter-clockwise.
func (img *Image) DrawStringUp(f *Font, pt image.Point, s string, c Color) error {
	if err := img.checkText(pt, c); err != nil {
		return err
	}
	for _, r := range s {
		pt.Y -= img.glyph(f, pt, r, true, c)
	}
	return nil
}

func (img *Image) checkText(pt image.Point, c Color) error {
	if err := img.checkPoints("text", pt); err != nil {
		return err
	}
	return img.checkDraw(c)
}

// glyph plots the mask of r from f and returns the advance in pixels.
// Runes the font lacks are drawn as '?'.
func (img *Image) glyph(f *Font, pt image.Point, r rune, up bool, c Color) int {
	dot := fixed.P(0, f.face.Metrics().Ascent.Ceil())
	dr, mask, mp, adv, ok := f.face.Glyph(dot, r)
	if !ok {
		dr, mask, mp, adv, ok = f.face.Glyph(dot, '?')
		if !ok {
			return adv.Round()
		}
	}

	for gy := dr.Min.Y; gy < dr.Max.Y; gy++ {
		for gx := dr.Min.X; gx < dr.Max.X; gx++ {
			_, _, _, a := mask.At(mp.X+gx-dr.Min.X, mp.Y+gy-dr.Min.Y).RGBA()
			if a < 0x8000 {
				continue
			}
			if up {
				img.plot(pt.X+gy, pt.Y-gx, c)
			} else {
				img.plot(pt.X+gx, pt.Y+gy, c)
			}
		}
	}
	return adv.Round()
}
