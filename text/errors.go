package text

import "errors"

// Sentinel errors for text package.
var (
	// ErrEmptyFontData is returned when font data is empty.
	ErrEmptyFontData = errors.New("text: empty font data")

	// ErrFontNotFound is returned when no font matches an id.
	ErrFontNotFound = errors.New("text: font not found")
)
