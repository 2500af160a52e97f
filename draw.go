package gd

// put writes a solid color, clipping to the image. True-color images
// composite when alpha blending is on.
func (img *Image) put(x, y int, c Color) {
	if !img.BoundsSafe(x, y) {
		return
	}
	if img.mode == ModeTrueColor && img.alphaBlending {
		c = blend(unpack(img.raw(x, y)), unpack(c)).pack()
	}
	img.setRaw(x, y, c)
}

// plot draws one pixel in any color, resolving special colors against
// the current style, brush and tile.
func (img *Image) plot(x, y int, c Color) {
	switch c {
	case Styled:
		if s := img.nextStyle(); s != Transparent {
			img.put(x, y, s)
		}
	case Brushed:
		img.stampBrush(x, y)
	case StyledBrushed:
		if s := img.nextStyle(); s != Transparent {
			img.stampBrush(x, y)
		}
	case Tiled:
		img.tilePixel(x, y)
	default:
		img.put(x, y, c)
	}
}

func (img *Image) nextStyle() Color {
	s := img.style[img.stylePos%len(img.style)]
	img.stylePos = (img.stylePos + 1) % len(img.style)
	return s
}

// stampBrush copies the brush centered on (x, y), skipping the brush's
// transparent pixels.
func (img *Image) stampBrush(x, y int) {
	b := img.brush
	x0 := x - b.width/2
	y0 := y - b.height/2
	for by := range b.height {
		for bx := range b.width {
			if !img.BoundsSafe(x0+bx, y0+by) {
				continue
			}
			bc := b.raw(bx, by)
			if bc == b.transparent {
				continue
			}
			img.put(x0+bx, y0+by, img.convert(b, bc))
		}
	}
}

// tilePixel paints (x, y) from the tile repeated from the origin.
func (img *Image) tilePixel(x, y int) {
	if !img.BoundsSafe(x, y) {
		return
	}
	t := img.tile
	tc := t.raw(x%t.width, y%t.height)
	if tc == t.transparent {
		return
	}
	img.put(x, y, img.convert(t, tc))
}

// convert maps a pixel value of src to a color of img. Indexed targets
// resolve the color in their own palette.
func (img *Image) convert(src *Image, c Color) Color {
	if src.mode == ModeTrueColor && img.mode == ModeTrueColor {
		return c
	}
	return img.resolve(src.rgbaOf(c))
}
