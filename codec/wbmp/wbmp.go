// Package wbmp implements a WBMP (Wireless Application Protocol bitmap)
// decoder and encoder. Only type 0 images, uncompressed one bit per
// pixel, are supported.
//
// Decoded images are *image.Paletted with white at index 0 and black at
// index 1. A set bit is white.
package wbmp

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"image"
	"image/color"
	"io"
)

// FormatError reports malformed WBMP data.
type FormatError string

func (e FormatError) Error() string { return "wbmp: invalid format: " + string(e) }

// ErrUnsupported is returned for WBMP types other than 0.
var ErrUnsupported = errors.New("wbmp: unsupported type")

// Palette is the palette of decoded images.
var Palette = color.Palette{color.Gray{Y: 0xff}, color.Gray{Y: 0}}

// maxDimension bounds width and height.
const maxDimension = 1 << 16

// header is the parsed image header.
type header struct {
	width, height int
	size          int // header length in bytes
}

func (h header) stride() int { return (h.width + 7) / 8 }

// readMultiByte reads a multi-byte integer: 7 bits per byte, most
// significant first, high bit set on all but the last byte.
func readMultiByte(r io.ByteReader) (int, int, error) {
	v := 0
	for n := 1; n <= 4; n++ {
		b, err := r.ReadByte()
		if err != nil {
			return 0, n, err
		}
		v = v<<7 | int(b&0x7f)
		if b&0x80 == 0 {
			return v, n, nil
		}
	}
	return 0, 4, FormatError("multi-byte integer too long")
}

func appendMultiByte(dst []byte, v int) []byte {
	var tmp [5]byte
	i := len(tmp) - 1
	tmp[i] = byte(v & 0x7f)
	for v >>= 7; v > 0; v >>= 7 {
		i--
		tmp[i] = byte(v&0x7f) | 0x80
	}
	return append(dst, tmp[i:]...)
}

func readHeader(r io.ByteReader) (header, error) {
	var h header
	typ, err := r.ReadByte()
	if err != nil {
		return h, noEOF(err)
	}
	if typ != 0 {
		return h, fmt.Errorf("%w %d", ErrUnsupported, typ)
	}
	h.size = 1

	// Fix header field; extension headers follow while the high bit is set.
	for {
		b, err := r.ReadByte()
		if err != nil {
			return h, noEOF(err)
		}
		h.size++
		if b&0x80 == 0 {
			break
		}
	}

	var n int
	if h.width, n, err = readMultiByte(r); err != nil {
		return h, noEOF(err)
	}
	h.size += n
	if h.height, n, err = readMultiByte(r); err != nil {
		return h, noEOF(err)
	}
	h.size += n

	if h.width <= 0 || h.height <= 0 || h.width > maxDimension || h.height > maxDimension {
		return h, FormatError(fmt.Sprintf("bad dimensions %dx%d", h.width, h.height))
	}
	return h, nil
}

func noEOF(err error) error {
	if err == io.EOF {
		return io.ErrUnexpectedEOF
	}
	return err
}

// Match reports whether data is a complete type 0 WBMP image. The
// format has no magic number, so the header must parse and the data
// length must equal the header length plus the pixel rows.
func Match(data []byte) bool {
	h, err := readHeader(bytes.NewReader(data))
	if err != nil {
		return false
	}
	return len(data) == h.size+h.stride()*h.height
}

// DecodeConfig returns the dimensions and color model of a WBMP image.
func DecodeConfig(r io.Reader) (image.Config, error) {
	h, err := readHeader(bufio.NewReader(r))
	if err != nil {
		return image.Config{}, err
	}
	return image.Config{ColorModel: Palette, Width: h.width, Height: h.height}, nil
}

// Decode reads a WBMP image.
func Decode(r io.Reader) (image.Image, error) {
	br := bufio.NewReader(r)
	h, err := readHeader(br)
	if err != nil {
		return nil, err
	}

	m := image.NewPaletted(image.Rect(0, 0, h.width, h.height), Palette)
	row := make([]byte, h.stride())
	for y := range h.height {
		if _, err := io.ReadFull(br, row); err != nil {
			return nil, noEOF(err)
		}
		for x := range h.width {
			if row[x/8]&(0x80>>(x%8)) == 0 {
				m.Pix[y*m.Stride+x] = 1
			}
		}
	}
	return m, nil
}

// Encode writes m as a WBMP image. Pixels with a luminance of at least
// half are white.
func Encode(w io.Writer, m image.Image) error {
	return EncodeFunc(w, m, func(c color.Color) bool {
		return color.GrayModel.Convert(c).(color.Gray).Y >= 0x80
	})
}

// EncodeFunc writes m as a WBMP image, with white reporting which
// pixels are white.
func EncodeFunc(w io.Writer, m image.Image, white func(color.Color) bool) error {
	b := m.Bounds()
	if b.Dx() <= 0 || b.Dy() <= 0 || b.Dx() > maxDimension || b.Dy() > maxDimension {
		return FormatError(fmt.Sprintf("bad dimensions %dx%d", b.Dx(), b.Dy()))
	}

	bw := bufio.NewWriter(w)
	hdr := []byte{0, 0}
	hdr = appendMultiByte(hdr, b.Dx())
	hdr = appendMultiByte(hdr, b.Dy())
	if _, err := bw.Write(hdr); err != nil {
		return err
	}

	row := make([]byte, (b.Dx()+7)/8)
	for y := b.Min.Y; y < b.Max.Y; y++ {
		clear(row)
		for x := range b.Dx() {
			if white(m.At(b.Min.X+x, y)) {
				row[x/8] |= 0x80 >> (x % 8)
			}
		}
		if _, err := bw.Write(row); err != nil {
			return err
		}
	}
	return bw.Flush()
}
