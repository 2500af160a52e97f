package codec

import (
	"image/png"

	"github.com/gogpu/gd"
)

// QualityAuto selects the JPEG library's default quality.
const QualityAuto = -1

// Options tune encoding. Each codec reads only its own section.
type Options struct {
	PNG  PNGOptions
	JPEG JPEGOptions
	GIF  GIFOptions
	WBMP WBMPOptions
}

// PNGOptions configure PNG encoding.
type PNGOptions struct {
	CompressionLevel png.CompressionLevel
}

// JPEGOptions configure JPEG encoding.
type JPEGOptions struct {
	// Quality ranges from 0 to 100, higher is better. QualityAuto picks
	// the library default.
	Quality int
}

// GIFOptions configure GIF encoding.
type GIFOptions struct {
	// NumColors caps the palette when a true-color image is quantized.
	// Values outside [1, 256] mean 256.
	NumColors int
}

// WBMPOptions configure WBMP encoding.
type WBMPOptions struct {
	// Foreground is the color written as black; every other pixel is
	// white. gd.None thresholds by luminance instead.
	Foreground gd.Color
}

// DefaultOptions returns the options used when none are given.
func DefaultOptions() *Options {
	return &Options{
		PNG:  PNGOptions{CompressionLevel: png.DefaultCompression},
		JPEG: JPEGOptions{Quality: QualityAuto},
		GIF:  GIFOptions{NumColors: 256},
		WBMP: WBMPOptions{Foreground: gd.None},
	}
}
