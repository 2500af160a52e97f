package codec

import (
	"fmt"
	"io"

	"golang.org/x/image/webp"

	"github.com/gogpu/gd"
)

type webpCodec struct{}

// NewWebP returns the WebP codec. It decodes only.
func NewWebP() Codec {
	return webpCodec{}
}

func (webpCodec) Format() Format { return WebP }

func (webpCodec) Match(data []byte) bool {
	return len(data) >= 12 && string(data[0:4]) == "RIFF" && string(data[8:12]) == "WEBP"
}

func (webpCodec) Decode(data []byte) (*gd.Image, error) {
	return decodeStd(data, webp.DecodeConfig, webp.Decode)
}

func (webpCodec) Encode(io.Writer, *gd.Image, *Options) error {
	return fmt.Errorf("%w: webp encoding", gd.ErrUnsupportedFormat)
}
