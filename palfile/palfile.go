// Package palfile reads and writes Microsoft RIFF palette (.pal) files
// and moves their colors in and out of indexed gd images.
//
// A file holds one or more "data" chunks, optionally nested in LIST
// chunks of type "PAL ". Each chunk is a LOGPALETTE: a version word
// (0x0300), an entry count and four bytes per entry (red, green, blue,
// flags).
package palfile

import (
	"encoding/binary"
	"errors"
	"fmt"
	"image/color"
	"io"
	"math"

	"golang.org/x/image/riff"
)

// ErrUnsupportedRIFF is returned for RIFF streams that are not palettes
// or use an unknown palette version.
var ErrUnsupportedRIFF = errors.New("palfile: unsupported RIFF content")

const palVersion = 0x0300

var (
	riffType = riff.FourCC{'R', 'I', 'F', 'F'}
	palType  = riff.FourCC{'P', 'A', 'L', ' '}
	dataType = riff.FourCC{'d', 'a', 't', 'a'}
)

// Read returns every palette in a RIFF PAL stream, in file order.
func Read(r io.Reader) ([]color.Palette, error) {
	formType, rd, err := riff.NewReader(r)
	if err != nil {
		return nil, fmt.Errorf("palfile: could not open RIFF stream: %w", err)
	}
	if formType != palType {
		return nil, fmt.Errorf("%w: form type %q", ErrUnsupportedRIFF, formType[:])
	}
	return readChunks(rd, "PAL")
}

func readChunks(r *riff.Reader, ident string) ([]color.Palette, error) {
	var res []color.Palette
	for i := 0; ; i++ {
		id, size, data, err := r.Next()
		if errors.Is(err, io.EOF) {
			return res, nil
		}
		if err != nil {
			return res, fmt.Errorf("palfile: could not read chunk %s#%d: %w", ident, i, err)
		}

		switch id {
		case riff.LIST:
			listType, list, err := riff.NewListReader(size, data)
			if err != nil {
				return res, fmt.Errorf("palfile: could not read list %s#%d: %w", ident, i, err)
			}
			if listType != palType {
				return res, fmt.Errorf("%w: list type %q in %s#%d", ErrUnsupportedRIFF, listType[:], ident, i)
			}
			nested, err := readChunks(list, fmt.Sprintf("%s#%d", ident, i))
			res = append(res, nested...)
			if err != nil {
				return res, err
			}
		case dataType:
			pal, err := readPalette(data, size)
			if err != nil {
				return res, fmt.Errorf("palfile: chunk %s#%d: %w", ident, i, err)
			}
			res = append(res, pal)
		default:
			// Unknown chunks are skipped by the next call to Next.
		}
	}
}

func readPalette(r io.Reader, size uint32) (color.Palette, error) {
	var head [4]byte
	if _, err := io.ReadFull(r, head[:]); err != nil {
		return nil, fmt.Errorf("could not read palette header: %w", err)
	}
	if v := binary.LittleEndian.Uint16(head[0:]); v != palVersion {
		return nil, fmt.Errorf("%w: palette version %#04x", ErrUnsupportedRIFF, v)
	}
	count := int(binary.LittleEndian.Uint16(head[2:]))
	if 4+4*count > int(size) {
		return nil, fmt.Errorf("%d entries do not fit a %d byte chunk", count, size)
	}

	buf := make([]byte, 4*count)
	if _, err := io.ReadFull(r, buf); err != nil {
		return nil, fmt.Errorf("could not read %d colors: %w", count, err)
	}
	pal := make(color.Palette, count)
	for i := range pal {
		e := buf[4*i:]
		pal[i] = color.RGBA{R: e[0], G: e[1], B: e[2], A: 0xff}
	}
	return pal, nil
}

// Write stores pals as one RIFF PAL stream with a data chunk per
// palette. It returns the number of bytes written.
func Write(w io.Writer, pals ...color.Palette) (int64, error) {
	body := 4 // form type
	for i, pal := range pals {
		if len(pal) > math.MaxUint16 {
			return 0, fmt.Errorf("palfile: palette %d has %d colors, at most %d fit", i, len(pal), math.MaxUint16)
		}
		body += 8 + 4 + 4*len(pal)
	}

	buf := make([]byte, 0, 8+body)
	buf = append(buf, riffType[:]...)
	buf = binary.LittleEndian.AppendUint32(buf, uint32(body)) //nolint:gosec // bounded by the entry limit
	buf = append(buf, palType[:]...)
	for _, pal := range pals {
		buf = append(buf, dataType[:]...)
		buf = binary.LittleEndian.AppendUint32(buf, uint32(4+4*len(pal))) //nolint:gosec // bounded above
		buf = binary.LittleEndian.AppendUint16(buf, palVersion)
		buf = binary.LittleEndian.AppendUint16(buf, uint16(len(pal))) //nolint:gosec // bounded above
		for _, c := range pal {
			n := color.NRGBAModel.Convert(c).(color.NRGBA)
			buf = append(buf, n.R, n.G, n.B, 0)
		}
	}

	n, err := w.Write(buf)
	if err != nil {
		return int64(n), fmt.Errorf("palfile: write: %w", err)
	}
	return int64(n), nil
}
