package text

import (
	"os"
	"path/filepath"
)

// DefaultCacheSize is the number of glyph outlines a Renderer keeps.
const DefaultCacheSize = 1024

// Option configures a Renderer.
type Option func(*options)

type options struct {
	searchPath []string
	cacheSize  int
}

func defaultOptions() options {
	return options{
		searchPath: filepath.SplitList(os.Getenv("GDFONTPATH")),
		cacheSize:  DefaultCacheSize,
	}
}

// WithSearchPath replaces the directories searched for font files.
func WithSearchPath(dirs ...string) Option {
	return func(o *options) {
		o.searchPath = append([]string(nil), dirs...)
	}
}

// WithCacheSize sets how many scaled glyph outlines are cached.
// Zero or less means unlimited.
func WithCacheSize(n int) Option {
	return func(o *options) {
		o.cacheSize = n
	}
}
