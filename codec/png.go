package codec

import (
	"bytes"
	"fmt"
	"image/png"
	"io"
	"sync"

	"github.com/gogpu/gd"
)

var pngSignature = []byte("\x89PNG\r\n\x1a\n")

// pngInterlaceOffset is the interlace method byte of the IHDR chunk.
const pngInterlaceOffset = 28

type pngCodec struct {
	pool *pngEncoderBufferPool
}

// NewPNG returns the PNG codec. Encoders share a buffer pool.
func NewPNG() Codec {
	return &pngCodec{pool: pngPool}
}

func (*pngCodec) Format() Format { return PNG }

func (*pngCodec) Match(data []byte) bool {
	return bytes.HasPrefix(data, pngSignature)
}

func (*pngCodec) Decode(data []byte) (*gd.Image, error) {
	m, err := decodeStd(data, png.DecodeConfig, png.Decode)
	if err != nil {
		return nil, err
	}
	if len(data) > pngInterlaceOffset && data[pngInterlaceOffset] == 1 {
		m.SetInterlace(true)
	}
	return m, nil
}

// Encode writes m as PNG. Indexed images are written as paletted PNGs
// with the transparent color as a fully transparent entry. The standard
// encoder does not write Adam7, so the interlace flag is not kept.
func (c *pngCodec) Encode(w io.Writer, m *gd.Image, o *Options) error {
	enc := png.Encoder{
		CompressionLevel: o.PNG.CompressionLevel,
		BufferPool:       c.pool,
	}
	if err := enc.Encode(w, m.ToStdImage()); err != nil {
		return fmt.Errorf("png: %w", err)
	}
	return nil
}

type pngEncoderBufferPool struct {
	pool sync.Pool
}

func (p *pngEncoderBufferPool) Get() *png.EncoderBuffer {
	return p.pool.Get().(*png.EncoderBuffer)
}

func (p *pngEncoderBufferPool) Put(buf *png.EncoderBuffer) {
	p.pool.Put(buf)
}

var pngPool = &pngEncoderBufferPool{
	pool: sync.Pool{
		New: func() any {
			return &png.EncoderBuffer{}
		},
	},
}
