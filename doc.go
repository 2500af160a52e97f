// Package gd provides a raster canvas with palette management, integer
// drawing primitives and image compositing.
//
// # Overview
//
// An Image is either indexed, with up to 256 palette colors referenced
// by handle, or true-color, with a packed color per pixel. Drawing
// operations take a Color handle: a palette index, a packed value from
// TrueColorAlpha, or one of the special colors (Styled, Brushed,
// StyledBrushed, Tiled) that draw with the image's current style,
// brush or tile.
//
// # Quick Start
//
//	img, err := gd.New(64, 64, gd.ModeIndexed)
//	if err != nil {
//		return err
//	}
//	white, _ := img.ColorAllocate(255, 255, 255) // background
//	red, _ := img.ColorAllocate(255, 0, 0)
//	_ = img.Line(image.Pt(0, 0), image.Pt(63, 63), red)
//	_ = img.Fill(image.Pt(63, 0), white)
//
//	data, err := codec.Default().Encode(img, codec.PNG, nil)
//
// # Coordinate System
//
//   - Origin (0,0) at top-left
//   - X increases right
//   - Y increases down
//   - Arc angles in degrees, 0 at 3 o'clock, increasing clockwise
//
// # Errors
//
// Operations validate their arguments before touching pixels: a call
// that returns an error leaves the image unchanged. Line, rectangle and
// polygon vertices must lie inside the image; arcs, ellipses and text
// only need their anchor inside and are clipped.
//
// # Alpha
//
// Alpha uses 7 bits: 0 is opaque and 127 fully transparent. RGBA.NRGBA
// and FromColor convert to and from 8-bit alpha.
package gd

// Version is the library version.
const Version = "0.1.0"
