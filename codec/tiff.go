package codec

import (
	"bytes"
	"fmt"
	"io"

	"golang.org/x/image/tiff"

	"github.com/gogpu/gd"
)

type tiffCodec struct{}

// NewTIFF returns the TIFF codec. Output is deflate-compressed.
func NewTIFF() Codec {
	return tiffCodec{}
}

func (tiffCodec) Format() Format { return TIFF }

func (tiffCodec) Match(data []byte) bool {
	return bytes.HasPrefix(data, []byte("II*\x00")) || bytes.HasPrefix(data, []byte("MM\x00*"))
}

func (tiffCodec) Decode(data []byte) (*gd.Image, error) {
	return decodeStd(data, tiff.DecodeConfig, tiff.Decode)
}

func (tiffCodec) Encode(w io.Writer, m *gd.Image, _ *Options) error {
	opts := &tiff.Options{Compression: tiff.Deflate, Predictor: true}
	if err := tiff.Encode(w, m.ToStdImage(), opts); err != nil {
		return fmt.Errorf("tiff: %w", err)
	}
	return nil
}
