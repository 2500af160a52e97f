package text

import (
	"strings"

	"github.com/go-text/typesetting/di"
	"github.com/go-text/typesetting/font"
	"github.com/go-text/typesetting/language"
	"github.com/go-text/typesetting/shaping"
	"golang.org/x/image/font/sfnt"
	"golang.org/x/image/math/fixed"
	"golang.org/x/text/unicode/bidi"
)

// lineSpacing is the baseline distance in ems.
const lineSpacing = 1.05

// placed is a glyph at its pen-relative position, y down.
type placed struct {
	gid  sfnt.GlyphIndex
	x, y float64
}

// layoutResult is shaped text ready for rasterization.
type layoutResult struct {
	glyphs []placed
	// width is the widest line advance, used for text without ink.
	width float64
}

// run is a piece of one line with a single direction.
type run struct {
	text string
	dir  di.Direction
}

// layout shapes s line by line. Lines start at x 0; the first baseline
// is at y 0 and each following one lineSpacing ems lower.
func (r *Renderer) layout(f *Font, ppem fixed.Int26_6, s string) layoutResult {
	var res layoutResult
	if s == "" {
		return res
	}

	face := font.NewFace(f.shaping)
	hb := r.shapers.Get().(*shaping.HarfbuzzShaper)
	defer r.shapers.Put(hb)

	lineHeight := lineSpacing * fixedToFloat(ppem)
	for i, line := range strings.Split(s, "\n") {
		line = strings.TrimSuffix(line, "\r")
		baseline := float64(i) * lineHeight
		pen := 0.0
		for _, rn := range visualRuns(line) {
			runes := []rune(rn.text)
			out := hb.Shape(shaping.Input{
				Text:      runes,
				RunStart:  0,
				RunEnd:    len(runes),
				Direction: rn.dir,
				Face:      face,
				Size:      ppem,
				Script:    detectScript(runes),
				Language:  language.NewLanguage("en"),
			})
			for _, g := range out.Glyphs {
				res.glyphs = append(res.glyphs, placed{
					gid: sfnt.GlyphIndex(g.GlyphID), //nolint:gosec // sfnt glyph indices are 16-bit
					x:   pen + fixedToFloat(g.XOffset),
					y:   baseline - fixedToFloat(g.YOffset),
				})
				pen += fixedToFloat(g.Advance)
			}
		}
		res.width = max(res.width, pen)
	}
	return res
}

// visualRuns splits a line into direction runs in display order.
// HarfBuzz emits each run's glyphs left to right.
func visualRuns(line string) []run {
	if line == "" {
		return nil
	}
	fallback := []run{{text: line, dir: di.DirectionLTR}}

	var p bidi.Paragraph
	if _, err := p.SetString(line); err != nil {
		return fallback
	}
	ordering, err := p.Order()
	if err != nil || ordering.NumRuns() == 0 {
		return fallback
	}

	runs := make([]run, 0, ordering.NumRuns())
	for i := range ordering.NumRuns() {
		br := ordering.Run(i)
		dir := di.DirectionLTR
		if br.Direction() == bidi.RightToLeft {
			dir = di.DirectionRTL
		}
		if t := br.String(); t != "" {
			runs = append(runs, run{text: t, dir: dir})
		}
	}
	if len(runs) == 0 {
		return fallback
	}
	return runs
}

// detectScript returns the script of the first non-space rune.
func detectScript(runes []rune) language.Script {
	for _, r := range runes {
		if r == ' ' || r == '\t' {
			continue
		}
		return language.LookupScript(r)
	}
	return language.Latin
}

func fixedToFloat(v fixed.Int26_6) float64 {
	return float64(v) / 64
}
