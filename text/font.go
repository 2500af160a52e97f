package text

import (
	"bytes"
	"fmt"

	"github.com/go-text/typesetting/font"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/font/sfnt"
)

// Font is a parsed TrueType or OpenType font.
//
// A Font is safe for concurrent use.
type Font struct {
	id      string
	outline *sfnt.Font // glyph outlines
	shaping *font.Font // go-text font for HarfBuzz shaping; read-only
}

// ParseFont parses font data. id names the font in cache keys and
// logs.
func ParseFont(id string, data []byte) (*Font, error) {
	if len(data) == 0 {
		return nil, ErrEmptyFontData
	}
	outline, err := opentype.Parse(data)
	if err != nil {
		return nil, fmt.Errorf("text: failed to parse font %q: %w", id, err)
	}
	face, err := font.ParseTTF(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("text: failed to parse font %q for shaping: %w", id, err)
	}
	return &Font{id: id, outline: outline, shaping: face.Font}, nil
}

// ID returns the id the font was registered or loaded under.
func (f *Font) ID() string {
	return f.id
}

// Name returns the font family name, or "" if the font has none.
func (f *Font) Name() string {
	name, err := f.outline.Name(nil, sfnt.NameIDFamily)
	if err != nil {
		return ""
	}
	return name
}

// NumGlyphs returns the number of glyphs in the font.
func (f *Font) NumGlyphs() int {
	return f.outline.NumGlyphs()
}
