// Package codec converts between gd images and encoded byte streams.
//
// A Registry maps each Format to a Codec and sniffs the format of
// undeclared input from its leading bytes. Default returns a registry
// with every built-in codec:
//
//	img, err := codec.Default().Decode(data, codec.Auto)
//	out, err := codec.Default().Encode(img, codec.PNG, nil)
//
// Decoding failures wrap gd.ErrCorruptData; unknown or undetectable
// formats return gd.ErrUnsupportedFormat.
package codec

import (
	"fmt"
	"io"
	"strings"

	"github.com/gogpu/gd"
)

// Format names an encoded image format.
type Format string

// Built-in formats.
const (
	Auto Format = "" // detect from content when decoding
	PNG  Format = "png"
	JPEG Format = "jpeg"
	GIF  Format = "gif"
	BMP  Format = "bmp"
	TIFF Format = "tiff"
	WebP Format = "webp"
	WBMP Format = "wbmp"
)

// ParseFormat maps a format name or file extension, case-insensitively
// and with or without a leading dot, to a Format.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimPrefix(s, ".")) {
	case "png":
		return PNG, nil
	case "jpeg", "jpg", "jpe", "jfif":
		return JPEG, nil
	case "gif":
		return GIF, nil
	case "bmp", "dib":
		return BMP, nil
	case "tiff", "tif":
		return TIFF, nil
	case "webp":
		return WebP, nil
	case "wbmp":
		return WBMP, nil
	case "", "auto":
		return Auto, nil
	}
	return Auto, fmt.Errorf("%w: %q", gd.ErrUnsupportedFormat, s)
}

// Codec reads and writes one format.
type Codec interface {
	// Format returns the format handled by the codec.
	Format() Format

	// Match reports whether data starts like this format.
	Match(data []byte) bool

	// Decode parses a complete encoded image.
	Decode(data []byte) (*gd.Image, error)

	// Encode writes m. o is never nil.
	Encode(w io.Writer, m *gd.Image, o *Options) error
}
