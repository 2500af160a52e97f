package wbmp

import (
	"bytes"
	"errors"
	"image"
	"image/color"
	"io"
	"testing"
)

func checker(w, h int) *image.Paletted {
	m := image.NewPaletted(image.Rect(0, 0, w, h), Palette)
	for y := range h {
		for x := range w {
			m.SetColorIndex(x, y, uint8((x+y)%2))
		}
	}
	return m
}

func TestRoundTrip(t *testing.T) {
	for _, size := range []image.Point{{1, 1}, {8, 2}, {10, 200}, {130, 3}} {
		src := checker(size.X, size.Y)
		var buf bytes.Buffer
		if err := Encode(&buf, src); err != nil {
			t.Fatalf("Encode %v: %v", size, err)
		}
		if !Match(buf.Bytes()) {
			t.Errorf("Match rejected encoded %v image", size)
		}

		got, err := Decode(bytes.NewReader(buf.Bytes()))
		if err != nil {
			t.Fatalf("Decode %v: %v", size, err)
		}
		p := got.(*image.Paletted)
		if !bytes.Equal(p.Pix, src.Pix) || p.Rect != src.Rect {
			t.Errorf("%v: decoded pixels differ", size)
		}
	}
}

func TestEncode_Header(t *testing.T) {
	var buf bytes.Buffer
	if err := Encode(&buf, checker(10, 200)); err != nil {
		t.Fatal(err)
	}
	want := []byte{0x00, 0x00, 0x0a, 0x81, 0x48}
	if got := buf.Bytes()[:5]; !bytes.Equal(got, want) {
		t.Errorf("header = % x, want % x", got, want)
	}
	if buf.Len() != 5+2*200 {
		t.Errorf("length = %d, want %d", buf.Len(), 5+2*200)
	}
	// Row 0 starts white at x=0: 1010 1010 01.. ....
	if buf.Bytes()[5] != 0xaa || buf.Bytes()[6] != 0x80 {
		t.Errorf("first row = % x", buf.Bytes()[5:7])
	}
}

func TestEncode_Threshold(t *testing.T) {
	m := image.NewGray(image.Rect(0, 0, 3, 1))
	m.SetGray(0, 0, color.Gray{Y: 0x7f})
	m.SetGray(1, 0, color.Gray{Y: 0x80})
	m.SetGray(2, 0, color.Gray{Y: 0xff})

	var buf bytes.Buffer
	if err := Encode(&buf, m); err != nil {
		t.Fatal(err)
	}
	if got := buf.Bytes()[4]; got != 0x60 {
		t.Errorf("row = %08b, want 01100000", got)
	}
}

func TestDecodeConfig(t *testing.T) {
	cfg, err := DecodeConfig(bytes.NewReader([]byte{0, 0, 0x81, 0x00, 0x03}))
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Width != 128 || cfg.Height != 3 {
		t.Errorf("config = %dx%d, want 128x3", cfg.Width, cfg.Height)
	}
}

func TestDecode_Errors(t *testing.T) {
	tests := []struct {
		name   string
		data   []byte
		want   error
		format bool
	}{
		{name: "empty", data: nil, want: io.ErrUnexpectedEOF},
		{name: "type 1", data: []byte{1, 0, 1, 1, 0}, want: ErrUnsupported},
		{name: "truncated rows", data: []byte{0, 0, 8, 2, 0xff}, want: io.ErrUnexpectedEOF},
		{name: "zero width", data: []byte{0, 0, 0, 1}, format: true},
		{name: "long integer", data: []byte{0, 0, 0x81, 0x81, 0x81, 0x81, 0x01}, format: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Decode(bytes.NewReader(tt.data))
			if tt.format {
				var fe FormatError
				if !errors.As(err, &fe) {
					t.Errorf("error = %v, want a FormatError", err)
				}
			} else if !errors.Is(err, tt.want) {
				t.Errorf("error = %v, want %v", err, tt.want)
			}
			if Match(tt.data) {
				t.Error("Match accepted invalid data")
			}
		})
	}
}

func TestMatch(t *testing.T) {
	valid := []byte{0, 0, 8, 1, 0xff}
	if !Match(valid) {
		t.Error("Match rejected a valid image")
	}
	if Match(append(valid, 0)) {
		t.Error("Match accepted trailing data")
	}
	if Match([]byte("\x89PNG\r\n\x1a\n")) {
		t.Error("Match accepted a PNG signature")
	}
}
