package gd

import "strings"

// CompareFlags describe how two images differ. Zero means identical.
type CompareFlags int

// Compare result bits.
const (
	CmpImage       CompareFlags = 1 << iota // pixels or size differ
	CmpNumColors                            // palette sizes differ
	CmpColor                                // some pixel color differs
	CmpSizeX                                // widths differ
	CmpSizeY                                // heights differ
	CmpTransparent                          // transparent colors differ
	CmpBackground                           // first palette entries differ
	CmpInterlace                            // interlace flags differ
	CmpTrueColor                            // storage modes differ
	CmpPalette                              // palette entries differ
)

var cmpNames = []string{
	"image", "num-colors", "color", "size-x", "size-y",
	"transparent", "background", "interlace", "truecolor", "palette",
}

// Has reports whether all bits of flag are set.
func (f CompareFlags) Has(flag CompareFlags) bool {
	return f&flag == flag
}

// String lists the set bits, separated by '|'.
func (f CompareFlags) String() string {
	if f == 0 {
		return "same"
	}
	var parts []string
	for i, name := range cmpNames {
		if f&(1<<i) != 0 {
			parts = append(parts, name)
		}
	}
	return strings.Join(parts, "|")
}

// Compare reports the differences between a and b. Pixels are compared
// by color, not by index, over the area both images cover, so two
// indexed images with reordered palettes can still match.
func Compare(a, b *Image) CompareFlags {
	var f CompareFlags

	if a.interlace != b.interlace {
		f |= CmpInterlace
	}
	if a.mode != b.mode {
		f |= CmpTrueColor
	}

	at, aok := a.transparentColor()
	bt, bok := b.transparentColor()
	if aok != bok || at != bt {
		f |= CmpTransparent
	}

	if a.width != b.width {
		f |= CmpSizeX | CmpImage
	}
	if a.height != b.height {
		f |= CmpSizeY | CmpImage
	}

	if a.ColorsTotal() != b.ColorsTotal() {
		f |= CmpNumColors
	}
	if a.mode == ModeIndexed && b.mode == ModeIndexed {
		if !a.palette.equal(&b.palette) {
			f |= CmpPalette
		}
		if a.palette.total > 0 && b.palette.total > 0 &&
			a.palette.entries[0] != b.palette.entries[0] {
			f |= CmpBackground
		}
	}

	w, h := min(a.width, b.width), min(a.height, b.height)
outer:
	for y := range h {
		for x := range w {
			if a.rgbaOf(a.raw(x, y)) != b.rgbaOf(b.raw(x, y)) {
				f |= CmpColor | CmpImage
				break outer
			}
		}
	}
	return f
}

func (img *Image) transparentColor() (RGBA, bool) {
	if img.transparent == None {
		return RGBA{}, false
	}
	return img.rgbaOf(img.transparent), true
}
