// Package text renders TrueType and OpenType strings for gd.
//
// A Renderer implements gd.GlyphRenderer:
//
//	r := text.NewRenderer()
//	box, err := img.StringFT(r, "goregular", 12, 0, image.Pt(10, 40), "Hello", black)
//
// Strings are split into lines on '\n' and into direction runs with
// golang.org/x/text/unicode/bidi. Each run is shaped by the go-text
// HarfBuzz port, so kerning, ligatures and right-to-left scripts come
// out in visual order. Glyph outlines are loaded with
// golang.org/x/image/font/sfnt and rasterized into an 8-bit coverage
// mask with golang.org/x/image/vector.
//
// Fonts are found by id: the builtin Go fonts "goregular", "gobold" and
// "gomono", fonts added with RegisterFont, a path to a font file, or a
// file named id, id.ttf or id.otf in one of the search directories
// (GDFONTPATH by default).
package text
