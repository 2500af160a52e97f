package codec

import (
	"bytes"
	"fmt"
	"image"
	"io"

	"github.com/gogpu/gd"
)

// decodeStd checks the header dimensions before decoding the pixels
// with a standard decoder and converting the result.
func decodeStd(data []byte,
	config func(io.Reader) (image.Config, error),
	decode func(io.Reader) (image.Image, error),
) (*gd.Image, error) {
	cfg, err := config(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("%w: %w", gd.ErrCorruptData, err)
	}
	if cfg.Width <= 0 || cfg.Height <= 0 || cfg.Width > gd.MaxPixels/max(cfg.Height, 1) {
		return nil, fmt.Errorf("%w: %dx%d", gd.ErrInvalidDimension, cfg.Width, cfg.Height)
	}

	m, err := decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("%w: %w", gd.ErrCorruptData, err)
	}
	return gd.FromImage(m)
}
