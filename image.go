package gd

import (
	"fmt"
	"image"
	"slices"
)

// Mode selects how an Image stores pixels.
type Mode uint8

const (
	// ModeIndexed stores one palette index per pixel.
	ModeIndexed Mode = iota

	// ModeTrueColor stores one packed color per pixel.
	ModeTrueColor
)

// String returns the mode name.
func (m Mode) String() string {
	switch m {
	case ModeIndexed:
		return "indexed"
	case ModeTrueColor:
		return "truecolor"
	default:
		return fmt.Sprintf("Mode(%d)", m)
	}
}

// MaxPixels bounds width*height for a single image.
const MaxPixels = 1 << 28

// Image is a rectangular pixel buffer with a color table and drawing
// state. The origin is top-left; x grows right and y grows down.
//
// An Image is not safe for concurrent use.
type Image struct {
	width, height int
	mode          Mode

	pix  []uint8  // indexed
	tpix []uint32 // true-color, packed as TrueColorAlpha

	palette     Palette
	transparent Color

	interlace     bool
	alphaBlending bool
	thickness     int

	brush    *Image
	tile     *Image
	style    []Color
	stylePos int
}

// New creates an image. Every pixel starts at value 0: palette index 0
// for indexed images (the first color allocated becomes the background)
// and opaque black for true-color images.
func New(width, height int, mode Mode, opts ...Option) (*Image, error) {
	if err := checkDimensions(width, height); err != nil {
		return nil, err
	}
	if mode != ModeIndexed && mode != ModeTrueColor {
		return nil, fmt.Errorf("%w: pixel mode %d", ErrUnsupportedFormat, mode)
	}

	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	if o.thickness < 1 {
		return nil, fmt.Errorf("%w: thickness %d", ErrInvalidDimension, o.thickness)
	}

	img := &Image{
		width:       width,
		height:      height,
		mode:        mode,
		transparent: None,
		interlace:   o.interlace,
		thickness:   o.thickness,
	}
	if mode == ModeTrueColor {
		img.tpix = make([]uint32, width*height)
		img.alphaBlending = true
	} else {
		img.pix = make([]uint8, width*height)
	}
	if o.alphaBlending != nil {
		img.alphaBlending = *o.alphaBlending
	}
	return img, nil
}

// NewFrom creates a width x height image of the given mode holding a
// copy of src. A zero width or height keeps src's. When the size
// differs the pixels are resized with nearest-neighbor sampling. An
// indexed copy of an indexed src starts from src's palette; other mode
// pairs convert every color. The transparent color carries over.
func NewFrom(src *Image, width, height int, mode Mode) (*Image, error) {
	if src == nil {
		return nil, fmt.Errorf("%w: nil source image", ErrDimensionMismatch)
	}
	if width == 0 {
		width = src.width
	}
	if height == 0 {
		height = src.height
	}
	img, err := New(width, height, mode)
	if err != nil {
		return nil, err
	}
	img.interlace = src.interlace
	if mode == ModeIndexed && src.mode == ModeIndexed {
		img.palette = src.palette
	}

	if src.transparent != None {
		tc := newColorMapper(img, src).mapColor(src.transparent)
		img.transparent = tc
		for y := range height {
			for x := range width {
				img.setRaw(x, y, tc)
			}
		}
	}

	blending := img.alphaBlending
	img.alphaBlending = false
	if width == src.width && height == src.height {
		err = img.Copy(src, image.Point{}, src.Bounds())
	} else {
		err = img.CopyResized(src, img.Bounds(), src.Bounds())
	}
	img.alphaBlending = blending
	if err != nil {
		return nil, err
	}
	return img, nil
}

// blankLike creates an empty image with the size, mode, palette and
// transparent color of src. Pixels start at 0.
func blankLike(src *Image) *Image {
	img, _ := New(src.width, src.height, src.mode)
	img.palette = src.palette
	img.transparent = src.transparent
	img.interlace = src.interlace
	img.alphaBlending = src.alphaBlending
	return img
}

func checkDimensions(width, height int) error {
	if width <= 0 || height <= 0 {
		return fmt.Errorf("%w: %dx%d", ErrInvalidDimension, width, height)
	}
	if width > MaxPixels/height {
		return fmt.Errorf("%w: %dx%d exceeds %d pixels", ErrInvalidDimension, width, height, MaxPixels)
	}
	return nil
}

// Width returns the width in pixels.
func (img *Image) Width() int {
	return img.width
}

// Height returns the height in pixels.
func (img *Image) Height() int {
	return img.height
}

// Bounds returns the image rectangle, anchored at the origin.
func (img *Image) Bounds() image.Rectangle {
	return image.Rect(0, 0, img.width, img.height)
}

// Mode returns the pixel storage mode.
func (img *Image) Mode() Mode {
	return img.mode
}

// IsTrueColor reports whether the image stores packed colors.
func (img *Image) IsTrueColor() bool {
	return img.mode == ModeTrueColor
}

// BoundsSafe reports whether (x, y) lies inside the image.
func (img *Image) BoundsSafe(x, y int) bool {
	return x >= 0 && y >= 0 && x < img.width && y < img.height
}

// Interlaced reports the interlace flag.
func (img *Image) Interlaced() bool {
	return img.interlace
}

// SetInterlace sets the interlace flag.
func (img *Image) SetInterlace(on bool) {
	img.interlace = on
}

// AlphaBlending reports whether true-color drawing composites.
func (img *Image) AlphaBlending() bool {
	return img.alphaBlending
}

// SetAlphaBlending turns compositing of true-color drawing on or off.
// With blending off, drawn colors replace pixels including their alpha.
func (img *Image) SetAlphaBlending(on bool) {
	img.alphaBlending = on
}

// Thickness returns the pen width.
func (img *Image) Thickness() int {
	return img.thickness
}

// SetThickness sets the pen width used by lines, rectangles, polygons
// and arcs.
func (img *Image) SetThickness(n int) error {
	if n < 1 {
		return fmt.Errorf("%w: thickness %d", ErrInvalidDimension, n)
	}
	img.thickness = n
	return nil
}

// SetBrush sets the image stamped by Brushed and StyledBrushed. A nil
// brush clears it.
func (img *Image) SetBrush(brush *Image) error {
	if brush == img {
		return fmt.Errorf("%w: image cannot be its own brush", ErrInvalidColor)
	}
	img.brush = brush
	return nil
}

// SetTile sets the image painted by Tiled. A nil tile clears it.
func (img *Image) SetTile(tile *Image) error {
	if tile == img {
		return fmt.Errorf("%w: image cannot be its own tile", ErrInvalidColor)
	}
	img.tile = tile
	return nil
}

// SetStyle sets the per-pixel pattern used by Styled and
// StyledBrushed. Entries are solid colors or Transparent.
func (img *Image) SetStyle(style ...Color) error {
	for _, c := range style {
		if c == Transparent {
			continue
		}
		if err := img.checkSolid(c); err != nil {
			return err
		}
	}
	img.style = slices.Clone(style)
	img.stylePos = 0
	return nil
}

// GetPixel returns the stored value at (x, y): a palette index for
// indexed images, a packed color for true-color images.
func (img *Image) GetPixel(x, y int) (Color, error) {
	if !img.BoundsSafe(x, y) {
		return None, fmt.Errorf("%w: (%d,%d) outside %dx%d", ErrOutOfBounds, x, y, img.width, img.height)
	}
	return img.raw(x, y), nil
}

// SetPixel draws a single pixel. c may be a special color.
func (img *Image) SetPixel(x, y int, c Color) error {
	if err := img.checkPoints("pixel", image.Pt(x, y)); err != nil {
		return err
	}
	if err := img.checkDraw(c); err != nil {
		return err
	}
	img.plot(x, y, c)
	return nil
}

// Clone returns a deep copy of the image and its drawing state. Brush
// and tile images are shared, not copied.
func (img *Image) Clone() *Image {
	c := *img
	c.pix = slices.Clone(img.pix)
	c.tpix = slices.Clone(img.tpix)
	c.style = slices.Clone(img.style)
	return &c
}

// Resize changes the image size in place. The overlapping region is
// kept; new pixels take the transparent color if one is set, else 0.
func (img *Image) Resize(width, height int) error {
	if err := checkDimensions(width, height); err != nil {
		return err
	}

	fill := Color(0)
	if img.transparent != None {
		fill = img.transparent
	}

	keepW := min(width, img.width)
	keepH := min(height, img.height)
	if img.mode == ModeTrueColor {
		pix := make([]uint32, width*height)
		for i := range pix {
			pix[i] = uint32(fill)
		}
		for y := range keepH {
			copy(pix[y*width:y*width+keepW], img.tpix[y*img.width:])
		}
		img.tpix = pix
	} else {
		pix := make([]uint8, width*height)
		for i := range pix {
			pix[i] = uint8(fill)
		}
		for y := range keepH {
			copy(pix[y*width:y*width+keepW], img.pix[y*img.width:])
		}
		img.pix = pix
	}
	img.width, img.height = width, height
	return nil
}

// raw returns the stored value at an in-bounds point.
func (img *Image) raw(x, y int) Color {
	if img.mode == ModeTrueColor {
		return Color(img.tpix[y*img.width+x])
	}
	return Color(img.pix[y*img.width+x])
}

// setRaw stores a value at an in-bounds point without blending.
func (img *Image) setRaw(x, y int, c Color) {
	if img.mode == ModeTrueColor {
		img.tpix[y*img.width+x] = uint32(c)
		return
	}
	img.pix[y*img.width+x] = uint8(c)
}

// checkPoints fails with ErrOutOfBounds unless every point is inside.
func (img *Image) checkPoints(op string, pts ...image.Point) error {
	for _, p := range pts {
		if !img.BoundsSafe(p.X, p.Y) {
			return fmt.Errorf("%w: %s point (%d,%d) outside %dx%d",
				ErrOutOfBounds, op, p.X, p.Y, img.width, img.height)
		}
	}
	return nil
}

// checkRect fails unless r is non-empty and inside the image.
func (img *Image) checkRect(op string, r image.Rectangle) error {
	if r.Empty() {
		return fmt.Errorf("%w: %s rectangle %v is empty", ErrInvalidDimension, op, r)
	}
	if !r.In(img.Bounds()) {
		return fmt.Errorf("%w: %s rectangle %v outside %dx%d",
			ErrOutOfBounds, op, r, img.width, img.height)
	}
	return nil
}

// checkSolid fails unless c is a valid stored color for this image.
func (img *Image) checkSolid(c Color) error {
	if img.mode == ModeTrueColor {
		if c < 0 || c > 0x7fffffff {
			return fmt.Errorf("%w: %d", ErrInvalidColor, c)
		}
		return nil
	}
	if c < 0 || int(c) >= img.palette.total {
		return fmt.Errorf("%w: handle %d not in palette of %d", ErrInvalidColor, c, img.palette.total)
	}
	return nil
}

// checkDraw fails unless c is a solid color or a special color whose
// brush, tile or style is set.
func (img *Image) checkDraw(c Color) error {
	switch c {
	case Styled:
		if len(img.style) == 0 {
			return fmt.Errorf("%w: Styled without a style", ErrInvalidColor)
		}
	case Brushed:
		if img.brush == nil {
			return fmt.Errorf("%w: Brushed without a brush", ErrInvalidColor)
		}
	case StyledBrushed:
		if len(img.style) == 0 || img.brush == nil {
			return fmt.Errorf("%w: StyledBrushed needs a style and a brush", ErrInvalidColor)
		}
	case Tiled:
		if img.tile == nil {
			return fmt.Errorf("%w: Tiled without a tile", ErrInvalidColor)
		}
	default:
		return img.checkSolid(c)
	}
	return nil
}
