package codec

import (
	"bytes"
	"fmt"
	"io"

	"golang.org/x/image/bmp"

	"github.com/gogpu/gd"
)

type bmpCodec struct{}

// NewBMP returns the BMP codec.
func NewBMP() Codec {
	return bmpCodec{}
}

func (bmpCodec) Format() Format { return BMP }

func (bmpCodec) Match(data []byte) bool {
	return bytes.HasPrefix(data, []byte("BM"))
}

func (bmpCodec) Decode(data []byte) (*gd.Image, error) {
	return decodeStd(data, bmp.DecodeConfig, bmp.Decode)
}

func (bmpCodec) Encode(w io.Writer, m *gd.Image, _ *Options) error {
	if err := bmp.Encode(w, m.ToStdImage()); err != nil {
		return fmt.Errorf("bmp: %w", err)
	}
	return nil
}
