package text

import (
	"errors"
	"fmt"
	"io/fs"
	"math"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/go-text/typesetting/shaping"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/gomono"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/sfnt"
	"golang.org/x/image/math/fixed"

	"github.com/gogpu/gd"
	"github.com/gogpu/gd/internal/cache"
)

// Builtin font ids.
const (
	GoRegular = "goregular"
	GoBold    = "gobold"
	GoMono    = "gomono"
)

var builtin = map[string][]byte{
	GoRegular: goregular.TTF,
	GoBold:    gobold.TTF,
	GoMono:    gomono.TTF,
}

// Renderer is a gd.GlyphRenderer for TrueType and OpenType fonts.
//
// Renderer is safe for concurrent use. Fonts are loaded on first use
// and kept for the Renderer's lifetime.
type Renderer struct {
	opts options

	mu    sync.RWMutex
	fonts map[string]*Font

	outlines *cache.Cache[outlineKey, []sfnt.Segment]

	// HarfbuzzShaper and sfnt.Buffer hold per-call scratch state.
	shapers sync.Pool
	buffers sync.Pool
}

var _ gd.GlyphRenderer = (*Renderer)(nil)

type outlineKey struct {
	font *Font
	gid  sfnt.GlyphIndex
	ppem fixed.Int26_6
}

// NewRenderer creates a Renderer.
func NewRenderer(opts ...Option) *Renderer {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	return &Renderer{
		opts:     o,
		fonts:    make(map[string]*Font),
		outlines: cache.New[outlineKey, []sfnt.Segment](o.cacheSize),
		shapers: sync.Pool{
			New: func() any { return &shaping.HarfbuzzShaper{} },
		},
		buffers: sync.Pool{
			New: func() any { return new(sfnt.Buffer) },
		},
	}
}

// SearchPath returns the directories searched for font files.
func (r *Renderer) SearchPath() []string {
	return append([]string(nil), r.opts.searchPath...)
}

// RegisterFont parses data and makes it available as id, replacing any
// font previously known by that id.
func (r *Renderer) RegisterFont(id string, data []byte) error {
	f, err := ParseFont(id, data)
	if err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.fonts[id]; ok {
		// Outlines of the replaced font can no longer be reached.
		r.outlines.Clear()
		gd.Logger().Debug("text: font replaced, outline cache cleared", "id", id)
	}
	r.fonts[id] = f
	return nil
}

// Font returns the font for id, loading it if needed.
func (r *Renderer) Font(id string) (*Font, error) {
	r.mu.RLock()
	f := r.fonts[id]
	r.mu.RUnlock()
	if f != nil {
		return f, nil
	}

	f, err := r.load(id)
	if err != nil {
		return nil, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if existing := r.fonts[id]; existing != nil {
		return existing, nil
	}
	r.fonts[id] = f
	return f, nil
}

func (r *Renderer) load(id string) (*Font, error) {
	if id == "" {
		return nil, fmt.Errorf("%w: empty font id", ErrFontNotFound)
	}
	if data, ok := builtin[id]; ok {
		return ParseFont(id, data)
	}

	for _, path := range r.candidates(id) {
		data, err := os.ReadFile(path)
		if errors.Is(err, fs.ErrNotExist) {
			continue
		}
		if err != nil {
			gd.Logger().Warn("text: skipping unreadable font", "path", path, "err", err)
			continue
		}
		f, err := ParseFont(id, data)
		if err != nil {
			gd.Logger().Warn("text: skipping invalid font", "path", path, "err", err)
			continue
		}
		gd.Logger().Debug("text: loaded font", "id", id, "path", path)
		return f, nil
	}
	return nil, fmt.Errorf("%w: %q", ErrFontNotFound, id)
}

// candidates lists the files that may hold font id, in search order.
func (r *Renderer) candidates(id string) []string {
	var paths []string
	if filepath.IsAbs(id) || strings.ContainsRune(id, filepath.Separator) {
		paths = append(paths, id)
	}
	for _, dir := range r.opts.searchPath {
		if dir == "" {
			continue
		}
		base := filepath.Join(dir, id)
		paths = append(paths, base, base+".ttf", base+".otf")
	}
	return paths
}

// Render implements gd.GlyphRenderer. sizePt is in points at 96 dpi;
// angle is in radians, counter-clockwise.
func (r *Renderer) Render(fontID string, sizePt, angle float64, s string) (*gd.GlyphBitmap, error) {
	if !(sizePt > 0) || math.IsInf(sizePt, 0) {
		return nil, fmt.Errorf("%w: font size %v", gd.ErrInvalidDimension, sizePt)
	}
	if math.IsNaN(angle) || math.IsInf(angle, 0) {
		return nil, fmt.Errorf("%w: angle %v", gd.ErrOutOfBounds, angle)
	}
	f, err := r.Font(fontID)
	if err != nil {
		return nil, err
	}

	ppem := fixed.Int26_6(math.Round(sizePt * 96 / 72 * 64))
	return r.rasterize(f, ppem, angle, r.layout(f, ppem, s))
}
