package text

import (
	"errors"
	"image"
	"math"
	"os"
	"path/filepath"
	"testing"

	"golang.org/x/image/font/gofont/gomono"
	"golang.org/x/image/font/gofont/goregular"

	"github.com/gogpu/gd"
)

func render(t *testing.T, r *Renderer, id string, size, angle float64, s string) *gd.GlyphBitmap {
	t.Helper()
	g, err := r.Render(id, size, angle, s)
	if err != nil {
		t.Fatalf("Render(%q, %v, %v, %q) error = %v", id, size, angle, s, err)
	}
	return g
}

func inked(m *image.Alpha) int {
	n := 0
	for _, a := range m.Pix {
		if a > 0 {
			n++
		}
	}
	return n
}

func TestRenderHorizontal(t *testing.T) {
	r := NewRenderer(WithSearchPath())
	g := render(t, r, GoRegular, 12, 0, "Hello")

	if inked(g.Mask) == 0 {
		t.Fatal("mask has no coverage")
	}
	if g.Mask.Rect.Min.Y >= 0 {
		t.Errorf("mask top = %d, want above the baseline", g.Mask.Rect.Min.Y)
	}
	if h := g.Mask.Rect.Dy(); h < 8 || h > 20 {
		t.Errorf("mask height = %d, want cap height of a 16px em", h)
	}

	ll, lr, ur, ul := g.Box[0], g.Box[1], g.Box[2], g.Box[3]
	if ll.Y != lr.Y || ul.Y != ur.Y || ll.X != ul.X || lr.X != ur.X {
		t.Errorf("box %v is not axis aligned", g.Box)
	}
	if !(ll.Y > ul.Y && lr.X > ll.X) {
		t.Errorf("box %v corners out of order", g.Box)
	}
	br, mr := g.Box.Rect(), g.Mask.Rect
	if !br.Inset(-1).Overlaps(mr) || !mr.In(br.Inset(-1)) {
		t.Errorf("box %v and mask %v disagree", br, mr)
	}
}

func TestRenderScalesWithSize(t *testing.T) {
	r := NewRenderer(WithSearchPath())
	small := render(t, r, GoRegular, 12, 0, "Hello World").Box.Rect().Dx()
	large := render(t, r, GoRegular, 24, 0, "Hello World").Box.Rect().Dx()

	ratio := float64(large) / float64(small)
	if ratio < 1.8 || ratio > 2.2 {
		t.Errorf("width ratio 24pt/12pt = %.2f (%d/%d), want about 2", ratio, large, small)
	}
}

func TestRenderRotated(t *testing.T) {
	r := NewRenderer(WithSearchPath())
	flat := render(t, r, GoRegular, 12, 0, "Hello World")
	up := render(t, r, GoRegular, 12, math.Pi/2, "Hello World")

	fr, ur := flat.Box.Rect(), up.Box.Rect()
	if ur.Dy() <= ur.Dx() {
		t.Errorf("rotated box %v is not taller than wide", ur)
	}
	if d := ur.Dy() - fr.Dx(); d < -2 || d > 2 {
		t.Errorf("rotated height %d, want flat width %d", ur.Dy(), fr.Dx())
	}
	if up.Mask.Rect.Max.Y > 2 {
		t.Errorf("counter-clockwise text extends below the origin: %v", up.Mask.Rect)
	}
	// Lower-right corner moves up the screen.
	if up.Box[1].Y >= up.Box[0].Y {
		t.Errorf("rotated box %v: lower-right not above lower-left", up.Box)
	}
}

func TestRenderMultiline(t *testing.T) {
	r := NewRenderer(WithSearchPath())
	one := render(t, r, GoRegular, 12, 0, "Hx").Box.Rect()
	two := render(t, r, GoRegular, 12, 0, "Hx\nHx").Box.Rect()

	lineHeight := int(math.Round(lineSpacing * 16))
	if d := two.Dy() - one.Dy(); d < lineHeight-1 || d > lineHeight+1 {
		t.Errorf("second line adds %d px, want %d", d, lineHeight)
	}
	if two.Dx() != one.Dx() {
		t.Errorf("width = %d, want %d", two.Dx(), one.Dx())
	}
}

func TestRenderWithoutInk(t *testing.T) {
	r := NewRenderer(WithSearchPath())
	tests := []struct {
		name  string
		s     string
		width bool
	}{
		{"empty", "", false},
		{"spaces", "   ", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := render(t, r, GoRegular, 12, 0, tt.s)
			if !g.Mask.Rect.Empty() {
				t.Errorf("mask = %v, want empty", g.Mask.Rect)
			}
			if got := g.Box[1].X > 0; got != tt.width {
				t.Errorf("box %v has width %v, want %v", g.Box, got, tt.width)
			}
		})
	}
}

func TestRenderErrors(t *testing.T) {
	r := NewRenderer(WithSearchPath())
	tests := []struct {
		name  string
		id    string
		size  float64
		angle float64
		want  error
	}{
		{"zero size", GoRegular, 0, 0, gd.ErrInvalidDimension},
		{"negative size", GoRegular, -3, 0, gd.ErrInvalidDimension},
		{"nan size", GoRegular, math.NaN(), 0, gd.ErrInvalidDimension},
		{"infinite angle", GoRegular, 12, math.Inf(1), gd.ErrOutOfBounds},
		{"unknown font", "no-such-font", 12, 0, ErrFontNotFound},
		{"empty id", "", 12, 0, ErrFontNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := r.Render(tt.id, tt.size, tt.angle, "x")
			if !errors.Is(err, tt.want) {
				t.Errorf("Render error = %v, want %v", err, tt.want)
			}
		})
	}
}

func TestRegisterFont(t *testing.T) {
	r := NewRenderer(WithSearchPath())
	if err := r.RegisterFont("mono", gomono.TTF); err != nil {
		t.Fatalf("RegisterFont error = %v", err)
	}
	f, err := r.Font("mono")
	if err != nil {
		t.Fatalf("Font error = %v", err)
	}
	if f.ID() != "mono" || f.Name() == "" || f.NumGlyphs() == 0 {
		t.Errorf("font id=%q name=%q glyphs=%d", f.ID(), f.Name(), f.NumGlyphs())
	}
	render(t, r, "mono", 12, 0, "mono")

	if err := r.RegisterFont("empty", nil); !errors.Is(err, ErrEmptyFontData) {
		t.Errorf("RegisterFont(nil) error = %v, want ErrEmptyFontData", err)
	}
	if err := r.RegisterFont("junk", []byte("not a font")); err == nil {
		t.Error("RegisterFont(junk) error = nil")
	}
}

func TestSearchPath(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "body.ttf"), goregular.TTF, 0o600); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "broken.ttf"), []byte("garbage"), 0o600); err != nil {
		t.Fatal(err)
	}

	r := NewRenderer(WithSearchPath(dir))
	if got := r.SearchPath(); len(got) != 1 || got[0] != dir {
		t.Errorf("SearchPath() = %v", got)
	}

	tests := []struct {
		name string
		id   string
		want error
	}{
		{"by name", "body", nil},
		{"with extension", "body.ttf", nil},
		{"by path", filepath.Join(dir, "body.ttf"), nil},
		{"invalid file skipped", "broken", ErrFontNotFound},
		{"missing", "absent", ErrFontNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := r.Render(tt.id, 10, 0, "ok")
			if !errors.Is(err, tt.want) {
				t.Errorf("Render(%q) error = %v, want %v", tt.id, err, tt.want)
			}
		})
	}
}

func TestRegisterFontReplacesOutlines(t *testing.T) {
	r := NewRenderer(WithSearchPath())
	if err := r.RegisterFont("body", goregular.TTF); err != nil {
		t.Fatal(err)
	}
	before := render(t, r, "body", 12, 0, "mmm")
	if r.outlines.Stats().Len == 0 {
		t.Fatal("no outlines cached")
	}

	if err := r.RegisterFont("body", gomono.TTF); err != nil {
		t.Fatal(err)
	}
	if n := r.outlines.Stats().Len; n != 0 {
		t.Errorf("cached outlines after replacing the font = %d, want 0", n)
	}
	after := render(t, r, "body", 12, 0, "mmm")
	if before.Box == after.Box {
		t.Errorf("replaced font renders the old box %v", after.Box)
	}
}

func TestSearchPathFromEnvironment(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("GDFONTPATH", dir)
	r := NewRenderer()
	if got := r.SearchPath(); len(got) != 1 || got[0] != dir {
		t.Errorf("SearchPath() = %v, want [%s]", got, dir)
	}
}

func TestOutlineCache(t *testing.T) {
	r := NewRenderer(WithSearchPath(), WithCacheSize(64))
	render(t, r, GoRegular, 12, 0, "abcabc")
	n := r.outlines.Stats().Len
	if n != 3 {
		t.Errorf("cached outlines = %d, want 3", n)
	}
	render(t, r, GoRegular, 12, 0, "cab")
	if s := r.outlines.Stats(); s.Len != n || s.Hits == 0 {
		t.Errorf("cache stats after rerender = %+v", s)
	}
	render(t, r, GoRegular, 13, 0, "a")
	if r.outlines.Stats().Len != n+1 {
		t.Errorf("new size not cached separately: %d", r.outlines.Stats().Len)
	}
}

func TestVisualRuns(t *testing.T) {
	tests := []struct {
		line string
		want int
	}{
		{"", 0},
		{"plain latin text", 1},
	}
	for _, tt := range tests {
		runs := visualRuns(tt.line)
		if len(runs) != tt.want {
			t.Errorf("visualRuns(%q) = %d runs, want %d", tt.line, len(runs), tt.want)
		}
		for _, rn := range runs {
			if rn.dir.IsVertical() {
				t.Errorf("run %q is vertical", rn.text)
			}
		}
	}
}

func TestStringFTIntegration(t *testing.T) {
	r := NewRenderer(WithSearchPath())
	tests := []struct {
		name string
		mode gd.Mode
	}{
		{"indexed", gd.ModeIndexed},
		{"truecolor", gd.ModeTrueColor},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			img, err := gd.New(120, 40, tt.mode)
			if err != nil {
				t.Fatal(err)
			}
			white, _ := img.ColorAllocate(255, 255, 255)
			black, _ := img.ColorAllocate(0, 0, 0)
			if err := img.FilledRectangle(image.Pt(0, 0), image.Pt(119, 39), white); err != nil {
				t.Fatal(err)
			}
			box, err := img.StringFT(r, GoBold, 14, 0, image.Pt(5, 30), "Text", black)
			if err != nil {
				t.Fatalf("StringFT error = %v", err)
			}
			if box[0].X < 4 || box[0].Y < 28 || box[0].Y > 36 {
				t.Errorf("box %v not anchored at (5, 30)", box)
			}
			n := 0
			for y := range 40 {
				for x := range 120 {
					if c, _ := img.GetPixel(x, y); c != white {
						n++
					}
				}
			}
			if n == 0 {
				t.Error("StringFT drew nothing")
			}
		})
	}
}
