package gd

import (
	"fmt"
	"image"

	"golang.org/x/image/draw"
)

// Interpolation selects the resampling kernel used by Scale.
type Interpolation int

const (
	// NearestNeighbor is the fastest and blockiest kernel.
	NearestNeighbor Interpolation = iota
	// ApproxBiLinear mixes nearest-neighbor and bilinear sampling.
	ApproxBiLinear
	// BiLinear uses the tent kernel.
	BiLinear
	// CatmullRom uses the Catmull-Rom cubic kernel.
	CatmullRom
)

func (i Interpolation) scaler() (draw.Scaler, error) {
	switch i {
	case NearestNeighbor:
		return draw.NearestNeighbor, nil
	case ApproxBiLinear:
		return draw.ApproxBiLinear, nil
	case BiLinear:
		return draw.BiLinear, nil
	case CatmullRom:
		return draw.CatmullRom, nil
	default:
		return nil, fmt.Errorf("%w: interpolation %d", ErrUnsupportedFormat, i)
	}
}

// Scale returns a new true-color image of the given size with the whole
// of img resampled into it.
func (img *Image) Scale(width, height int, interp Interpolation) (*Image, error) {
	if err := checkDimensions(width, height); err != nil {
		return nil, err
	}
	s, err := interp.scaler()
	if err != nil {
		return nil, err
	}

	dst := image.NewNRGBA(image.Rect(0, 0, width, height))
	s.Scale(dst, dst.Bounds(), img.ToStdImage(), img.Bounds(), draw.Src, nil)

	out, err := FromImage(dst)
	if err != nil {
		return nil, err
	}
	out.interlace = img.interlace
	return out, nil
}
