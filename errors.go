package gd

import "errors"

// Errors reported by image operations. Operations wrap these with context;
// test for them with errors.Is.
var (
	// ErrInvalidDimension is returned when a width, height or rectangle is
	// empty or negative.
	ErrInvalidDimension = errors.New("gd: invalid dimension")

	// ErrOutOfBounds is returned when a coordinate, rectangle or argument lies
	// outside the range the operation accepts.
	ErrOutOfBounds = errors.New("gd: out of bounds")

	// ErrPaletteFull is returned when an indexed image already holds MaxColors
	// allocated colors.
	ErrPaletteFull = errors.New("gd: palette full")

	// ErrDimensionMismatch is returned when two images cannot take part in the
	// same operation (for example a palette copy involving a true-color image).
	ErrDimensionMismatch = errors.New("gd: dimension mismatch")

	// ErrUnsupportedFormat is returned when no codec handles a format.
	ErrUnsupportedFormat = errors.New("gd: unsupported format")

	// ErrCorruptData is returned when a codec rejects its input.
	ErrCorruptData = errors.New("gd: corrupt data")

	// ErrInvalidColor is returned for a color handle that is not valid for the
	// image, or a special drawing color used without its brush, tile or style.
	ErrInvalidColor = errors.New("gd: invalid color")
)
