package gd

// Option configures an Image during creation.
//
// Example:
//
//	img, err := gd.New(640, 480, gd.ModeTrueColor,
//		gd.WithAlphaBlending(false),
//		gd.WithThickness(2))
type Option func(*imageOptions)

// imageOptions holds optional configuration for Image creation.
type imageOptions struct {
	interlace     bool
	alphaBlending *bool
	thickness     int
}

// defaultOptions returns the default image options.
func defaultOptions() imageOptions {
	return imageOptions{
		thickness: 1,
	}
}

// WithInterlace sets the interlace flag, which encoders that support it
// honor (PNG progressive rows, progressive JPEG on decode).
func WithInterlace(on bool) Option {
	return func(o *imageOptions) {
		o.interlace = on
	}
}

// WithAlphaBlending controls whether true-color drawing composites over
// existing pixels. The default is on for true-color images.
func WithAlphaBlending(on bool) Option {
	return func(o *imageOptions) {
		o.alphaBlending = &on
	}
}

// WithThickness sets the pen width for line-based drawing.
func WithThickness(n int) Option {
	return func(o *imageOptions) {
		o.thickness = n
	}
}
