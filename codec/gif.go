package codec

import (
	"bytes"
	"fmt"
	"image/gif"
	"io"

	"golang.org/x/image/draw"

	"github.com/gogpu/gd"
)

type gifCodec struct{}

// NewGIF returns the GIF codec. Only the first frame is decoded.
func NewGIF() Codec {
	return gifCodec{}
}

func (gifCodec) Format() Format { return GIF }

func (gifCodec) Match(data []byte) bool {
	return bytes.HasPrefix(data, []byte("GIF87a")) || bytes.HasPrefix(data, []byte("GIF89a"))
}

func (gifCodec) Decode(data []byte) (*gd.Image, error) {
	return decodeStd(data, gif.DecodeConfig, gif.Decode)
}

// Encode writes indexed images with their palette. True-color images
// are quantized with Floyd-Steinberg dithering.
func (gifCodec) Encode(w io.Writer, m *gd.Image, o *Options) error {
	opts := &gif.Options{NumColors: o.GIF.NumColors, Drawer: draw.FloydSteinberg}
	if err := gif.Encode(w, m.ToStdImage(), opts); err != nil {
		return fmt.Errorf("gif: %w", err)
	}
	return nil
}
