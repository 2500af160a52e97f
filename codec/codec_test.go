package codec

import (
	"bytes"
	"errors"
	"image"
	"testing"

	"github.com/gogpu/gd"
)

func indexedSample(t *testing.T) *gd.Image {
	t.Helper()
	m, err := gd.New(7, 5, gd.ModeIndexed)
	if err != nil {
		t.Fatal(err)
	}
	colors := [][4]int{{255, 255, 255, 0}, {0, 0, 0, 0}, {200, 30, 40, 0}, {10, 20, 30, 0}}
	var handles []gd.Color
	for _, c := range colors {
		h, err := m.ColorAllocateAlpha(c[0], c[1], c[2], c[3])
		if err != nil {
			t.Fatal(err)
		}
		handles = append(handles, h)
	}
	if err := m.ColorTransparent(handles[3]); err != nil {
		t.Fatal(err)
	}
	for y := range 5 {
		for x := range 7 {
			if err := m.SetPixel(x, y, handles[(x*y+x)%4]); err != nil {
				t.Fatal(err)
			}
		}
	}
	return m
}

// markedWhiteSample marks an opaque white background transparent, the
// way most drawings set up a transparent canvas.
func markedWhiteSample(t *testing.T) *gd.Image {
	t.Helper()
	m, err := gd.New(4, 4, gd.ModeIndexed)
	if err != nil {
		t.Fatal(err)
	}
	white, err := m.ColorAllocate(255, 255, 255)
	if err != nil {
		t.Fatal(err)
	}
	black, err := m.ColorAllocate(0, 0, 0)
	if err != nil {
		t.Fatal(err)
	}
	if err := m.ColorTransparent(white); err != nil {
		t.Fatal(err)
	}
	if err := m.SetPixel(1, 1, black); err != nil {
		t.Fatal(err)
	}
	return m
}

func trueColorSample(t *testing.T, withAlpha bool) *gd.Image {
	t.Helper()
	m, err := gd.New(16, 16, gd.ModeTrueColor, gd.WithAlphaBlending(false))
	if err != nil {
		t.Fatal(err)
	}
	for y := range 16 {
		for x := range 16 {
			a := 0
			if withAlpha {
				a = (x + y) * 127 / 30
			}
			if err := m.SetPixel(x, y, gd.TrueColorAlpha(40+x*4, 40+y*4, 128, a)); err != nil {
				t.Fatal(err)
			}
		}
	}
	return m
}

func roundTrip(t *testing.T, m *gd.Image, f Format, o *Options) *gd.Image {
	t.Helper()
	data, err := Default().Encode(m, f, o)
	if err != nil {
		t.Fatalf("Encode %s: %v", f, err)
	}
	if got, ok := Default().Sniff(data); !ok || got != f {
		t.Errorf("Sniff(%s output) = %q, %v", f, got, ok)
	}
	back, err := Default().Decode(data, Auto)
	if err != nil {
		t.Fatalf("Decode %s: %v", f, err)
	}
	return back
}

func TestPNG_RoundTrip(t *testing.T) {
	tests := []struct {
		name string
		m    func(*testing.T) *gd.Image
	}{
		{"indexed", indexedSample},
		{"opaque transparent entry", markedWhiteSample},
		{"truecolor", func(t *testing.T) *gd.Image { return trueColorSample(t, false) }},
		{"truecolor alpha", func(t *testing.T) *gd.Image { return trueColorSample(t, true) }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := tt.m(t)
			back := roundTrip(t, m, PNG, nil)
			if f := gd.Compare(m, back); f != 0 {
				t.Errorf("Compare after PNG round trip = %v", f)
			}
			if tc := m.Transparent(); tc != gd.None {
				want, _ := m.ColorComponents(tc)
				got, _ := back.ColorComponents(back.Transparent())
				if got != want {
					t.Errorf("transparent entry = %+v, want %+v", got, want)
				}
			}
		})
	}
}

func TestPNG_CompressionLevel(t *testing.T) {
	m := trueColorSample(t, false)
	o := DefaultOptions()
	o.PNG.CompressionLevel = -3 // best compression
	back := roundTrip(t, m, PNG, o)
	if f := gd.Compare(m, back); f != 0 {
		t.Errorf("Compare = %v", f)
	}
}

func TestJPEG_Quality100(t *testing.T) {
	m := trueColorSample(t, false)
	o := DefaultOptions()
	o.JPEG.Quality = 100
	back := roundTrip(t, m, JPEG, o)

	if !back.IsTrueColor() || back.Width() != 16 || back.Height() != 16 {
		t.Fatalf("decoded %dx%d %v", back.Width(), back.Height(), back.Mode())
	}
	const tolerance = 12
	for y := range 16 {
		for x := range 16 {
			want, _ := m.GetPixel(x, y)
			got, _ := back.GetPixel(x, y)
			we, _ := m.ColorComponents(want)
			ge, _ := back.ColorComponents(got)
			if diff(we.R, ge.R) > tolerance || diff(we.G, ge.G) > tolerance || diff(we.B, ge.B) > tolerance {
				t.Fatalf("pixel (%d,%d) = %+v, want about %+v", x, y, ge, we)
			}
		}
	}
}

func diff(a, b uint8) int {
	if a > b {
		return int(a - b)
	}
	return int(b - a)
}

func TestJPEG_InvalidQuality(t *testing.T) {
	o := DefaultOptions()
	o.JPEG.Quality = 101
	_, err := Default().Encode(trueColorSample(t, false), JPEG, o)
	if !errors.Is(err, gd.ErrOutOfBounds) {
		t.Errorf("error = %v, want ErrOutOfBounds", err)
	}
}

func TestJPEGProgressive(t *testing.T) {
	baseline := []byte{0xff, 0xd8, 0xff, 0xe0, 0x00, 0x04, 0x00, 0x00, 0xff, 0xc0, 0x00, 0x02}
	progressive := []byte{0xff, 0xd8, 0xff, 0xdb, 0x00, 0x02, 0xff, 0xc2, 0x00, 0x02}
	if jpegProgressive(baseline) {
		t.Error("baseline reported progressive")
	}
	if !jpegProgressive(progressive) {
		t.Error("progressive not detected")
	}
}

func TestOtherFormats_RoundTrip(t *testing.T) {
	for _, f := range []Format{GIF, BMP, TIFF} {
		t.Run(string(f), func(t *testing.T) {
			m := trueColorSample(t, false)
			if f == GIF {
				m = indexedSample(t)
				if err := m.ColorTransparent(gd.None); err != nil {
					t.Fatal(err)
				}
			}
			back := roundTrip(t, m, f, nil)
			if back.Width() != m.Width() || back.Height() != m.Height() {
				t.Fatalf("decoded %dx%d", back.Width(), back.Height())
			}
			if flags := gd.Compare(m, back); flags.Has(gd.CmpColor) {
				t.Errorf("Compare = %v", flags)
			}
		})
	}
}

func TestWBMP_RoundTrip(t *testing.T) {
	m, err := gd.New(9, 3, gd.ModeIndexed)
	if err != nil {
		t.Fatal(err)
	}
	white, _ := m.ColorAllocate(255, 255, 255)
	black, _ := m.ColorAllocate(0, 0, 0)
	if err := m.Line(image.Pt(0, 1), image.Pt(8, 1), black); err != nil {
		t.Fatal(err)
	}

	back := roundTrip(t, m, WBMP, nil)
	if f := gd.Compare(m, back); f != 0 {
		t.Errorf("Compare after WBMP round trip = %v", f)
	}
	if c, _ := back.GetPixel(4, 1); c != 1 {
		t.Errorf("black decoded as index %d, want 1", c)
	}

	// Foreground mode writes only that color as black.
	red, _ := m.ColorAllocate(255, 0, 0)
	if err := m.SetPixel(0, 0, red); err != nil {
		t.Fatal(err)
	}
	o := DefaultOptions()
	o.WBMP.Foreground = red
	data, err := Default().Encode(m, WBMP, o)
	if err != nil {
		t.Fatal(err)
	}
	back, err = Default().Decode(data, WBMP)
	if err != nil {
		t.Fatal(err)
	}
	if c, _ := back.GetPixel(0, 0); c != 1 {
		t.Error("foreground pixel not black")
	}
	if c, _ := back.GetPixel(4, 1); c != white {
		t.Error("non-foreground pixel not white")
	}

	o.WBMP.Foreground = 42
	if _, err := Default().Encode(m, WBMP, o); !errors.Is(err, gd.ErrInvalidColor) {
		t.Errorf("bad foreground error = %v", err)
	}
}

func TestSniff(t *testing.T) {
	tests := []struct {
		name string
		data []byte
		want Format
		ok   bool
	}{
		{"png", []byte("\x89PNG\r\n\x1a\n...."), PNG, true},
		{"jpeg", []byte{0xff, 0xd8, 0xff, 0xe0}, JPEG, true},
		{"gif", []byte("GIF89a...."), GIF, true},
		{"bmp", []byte("BM......"), BMP, true},
		{"tiff le", []byte("II*\x00...."), TIFF, true},
		{"tiff be", []byte("MM\x00*...."), TIFF, true},
		{"webp", []byte("RIFF\x10\x00\x00\x00WEBPVP8 "), WebP, true},
		{"wbmp", []byte{0, 0, 8, 1, 0xff}, WBMP, true},
		{"text", []byte("hello world"), Auto, false},
		{"empty", nil, Auto, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := Default().Sniff(tt.data)
			if got != tt.want || ok != tt.ok {
				t.Errorf("Sniff = %q, %v; want %q, %v", got, ok, tt.want, tt.ok)
			}
		})
	}
}

func TestDecode_Errors(t *testing.T) {
	png := []byte("\x89PNG\r\n\x1a\nnot really a png")
	tests := []struct {
		name string
		data []byte
		hint Format
		want error
	}{
		{"unrecognized", []byte("hello"), Auto, gd.ErrUnsupportedFormat},
		{"unknown hint", png, Format("xcf"), gd.ErrUnsupportedFormat},
		{"corrupt png", png, Auto, gd.ErrCorruptData},
		{"wrong hint", png, JPEG, gd.ErrCorruptData},
		{"truncated wbmp", []byte{0, 0, 8, 4, 0xff}, WBMP, gd.ErrCorruptData},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Default().Decode(tt.data, tt.hint)
			if !errors.Is(err, tt.want) {
				t.Errorf("error = %v, want %v", err, tt.want)
			}
		})
	}
}

func TestEncode_Errors(t *testing.T) {
	m := trueColorSample(t, false)
	if _, err := Default().Encode(m, Format("xcf"), nil); !errors.Is(err, gd.ErrUnsupportedFormat) {
		t.Errorf("unknown format error = %v", err)
	}
	if _, err := Default().Encode(m, WebP, nil); !errors.Is(err, gd.ErrUnsupportedFormat) {
		t.Errorf("webp encode error = %v", err)
	}
	var buf bytes.Buffer
	if err := Default().EncodeTo(&buf, nil, PNG, nil); err == nil {
		t.Error("nil image accepted")
	}
}

func TestParseFormat(t *testing.T) {
	tests := []struct {
		in   string
		want Format
	}{
		{"PNG", PNG},
		{".jpg", JPEG},
		{"jpeg", JPEG},
		{"tif", TIFF},
		{".wbmp", WBMP},
		{"", Auto},
	}
	for _, tt := range tests {
		got, err := ParseFormat(tt.in)
		if err != nil || got != tt.want {
			t.Errorf("ParseFormat(%q) = %q, %v; want %q", tt.in, got, err, tt.want)
		}
	}
	if _, err := ParseFormat("xcf"); !errors.Is(err, gd.ErrUnsupportedFormat) {
		t.Errorf("ParseFormat(xcf) error = %v", err)
	}
}

func TestRegistry_Register(t *testing.T) {
	r := NewRegistry(NewWBMP())
	if got := r.Formats(); len(got) != 1 || got[0] != WBMP {
		t.Fatalf("Formats = %v", got)
	}
	r.Register(NewPNG())
	r.Register(NewPNG())
	if got := r.Formats(); len(got) != 2 || got[1] != PNG {
		t.Errorf("Formats after re-register = %v", got)
	}
	if _, err := r.Lookup(JPEG); !errors.Is(err, gd.ErrUnsupportedFormat) {
		t.Errorf("Lookup(JPEG) error = %v", err)
	}
}
