package codec

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"image/jpeg"
	"io"

	"github.com/gogpu/gd"
)

type jpegCodec struct{}

// NewJPEG returns the JPEG codec. JPEG has no alpha; transparent pixels
// are written as their color over black.
func NewJPEG() Codec {
	return jpegCodec{}
}

func (jpegCodec) Format() Format { return JPEG }

func (jpegCodec) Match(data []byte) bool {
	return bytes.HasPrefix(data, []byte{0xff, 0xd8, 0xff})
}

// Decode returns a true-color image. Progressive files set the
// interlace flag.
func (jpegCodec) Decode(data []byte) (*gd.Image, error) {
	m, err := decodeStd(data, jpeg.DecodeConfig, jpeg.Decode)
	if err != nil {
		return nil, err
	}
	m.SetInterlace(jpegProgressive(data))
	return m, nil
}

func (jpegCodec) Encode(w io.Writer, m *gd.Image, o *Options) error {
	q := o.JPEG.Quality
	switch {
	case q == QualityAuto:
		q = jpeg.DefaultQuality
	case q < 0 || q > 100:
		return fmt.Errorf("%w: jpeg quality %d not in [0,100]", gd.ErrOutOfBounds, q)
	}
	if err := jpeg.Encode(w, m.ToStdImage(), &jpeg.Options{Quality: q}); err != nil {
		return fmt.Errorf("jpeg: %w", err)
	}
	return nil
}

// jpegProgressive walks the marker segments up to the first frame
// header and reports whether it is SOF2.
func jpegProgressive(data []byte) bool {
	i := 2
	for i+4 <= len(data) {
		if data[i] != 0xff {
			return false
		}
		marker := data[i+1]
		switch {
		case marker == 0xc2:
			return true
		case marker >= 0xc0 && marker <= 0xcf && marker != 0xc4 && marker != 0xc8 && marker != 0xcc:
			return false
		case marker == 0xda:
			return false
		}
		i += 2 + int(binary.BigEndian.Uint16(data[i+2:]))
	}
	return false
}
