package codec

import (
	"fmt"
	"image"
	"image/color"
	"io"

	"github.com/gogpu/gd"
	"github.com/gogpu/gd/codec/wbmp"
)

type wbmpCodec struct{}

// NewWBMP returns the WBMP codec. WBMP has no signature, so it is
// sniffed last and only matches data whose length fits its header.
func NewWBMP() Codec {
	return wbmpCodec{}
}

func (wbmpCodec) Format() Format { return WBMP }

func (wbmpCodec) Match(data []byte) bool {
	return wbmp.Match(data)
}

// Decode returns an indexed image with white at index 0 and black at
// index 1.
func (wbmpCodec) Decode(data []byte) (*gd.Image, error) {
	return decodeStd(data, wbmp.DecodeConfig, wbmp.Decode)
}

// Encode writes pixels of o.WBMP.Foreground as black and all others as
// white. Without a foreground it thresholds by luminance.
func (wbmpCodec) Encode(w io.Writer, m *gd.Image, o *Options) error {
	fg := o.WBMP.Foreground
	if fg == gd.None {
		return wbmp.Encode(w, m)
	}
	if _, err := m.ColorComponents(fg); err != nil {
		return fmt.Errorf("wbmp foreground: %w", err)
	}

	mask := foregroundMask{m: m, fg: fg}
	return wbmp.EncodeFunc(w, mask, func(c color.Color) bool {
		return c == color.Gray{Y: 0xff}
	})
}

// foregroundMask shows the foreground color as black and the rest as
// white.
type foregroundMask struct {
	m  *gd.Image
	fg gd.Color
}

func (f foregroundMask) ColorModel() color.Model { return color.GrayModel }
func (f foregroundMask) Bounds() image.Rectangle { return f.m.Bounds() }

func (f foregroundMask) At(x, y int) color.Color {
	if c, err := f.m.GetPixel(x, y); err == nil && c == f.fg {
		return color.Gray{}
	}
	return color.Gray{Y: 0xff}
}
