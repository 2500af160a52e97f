package codec

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"sync"

	"github.com/gogpu/gd"
)

// Registry maps formats to codecs. It is safe for concurrent use.
type Registry struct {
	mu     sync.RWMutex
	codecs map[Format]Codec
	order  []Format // sniffing order
}

// NewRegistry returns a registry holding the given codecs. Codecs are
// sniffed in the order given.
func NewRegistry(codecs ...Codec) *Registry {
	r := &Registry{codecs: make(map[Format]Codec)}
	for _, c := range codecs {
		r.Register(c)
	}
	return r
}

var (
	defaultOnce     sync.Once
	defaultRegistry *Registry
)

// Default returns the shared registry with every built-in codec.
func Default() *Registry {
	defaultOnce.Do(func() {
		defaultRegistry = NewRegistry(
			NewPNG(), NewJPEG(), NewGIF(), NewBMP(), NewTIFF(), NewWebP(), NewWBMP(),
		)
	})
	return defaultRegistry
}

// Register adds c, replacing any codec for the same format.
func (r *Registry) Register(c Codec) {
	r.mu.Lock()
	defer r.mu.Unlock()

	f := c.Format()
	if _, ok := r.codecs[f]; !ok {
		r.order = append(r.order, f)
	}
	r.codecs[f] = c
}

// Lookup returns the codec for f.
func (r *Registry) Lookup(f Format) (Codec, error) {
	r.mu.RLock()
	c, ok := r.codecs[f]
	r.mu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("%w: no codec for %q", gd.ErrUnsupportedFormat, f)
	}
	return c, nil
}

// Formats lists the registered formats in sniffing order.
func (r *Registry) Formats() []Format {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return append([]Format(nil), r.order...)
}

// Sniff detects the format of data. ok is false when no codec matches.
func (r *Registry) Sniff(data []byte) (f Format, ok bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, name := range r.order {
		if r.codecs[name].Match(data) {
			return name, true
		}
	}
	return Auto, false
}

// Decode parses data in format hint, or the sniffed format when hint is
// Auto.
func (r *Registry) Decode(data []byte, hint Format) (*gd.Image, error) {
	f := hint
	if f == Auto {
		var ok bool
		if f, ok = r.Sniff(data); !ok {
			return nil, fmt.Errorf("%w: format not recognized", gd.ErrUnsupportedFormat)
		}
	}
	c, err := r.Lookup(f)
	if err != nil {
		return nil, err
	}

	m, err := c.Decode(data)
	if err != nil {
		if errors.Is(err, gd.ErrCorruptData) || errors.Is(err, gd.ErrInvalidDimension) ||
			errors.Is(err, gd.ErrPaletteFull) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: %s: %w", gd.ErrCorruptData, f, err)
	}
	gd.Logger().Debug("decoded image", "format", string(f),
		"width", m.Width(), "height", m.Height(), "mode", m.Mode().String())
	return m, nil
}

// Encode serializes m in format f. A nil o means DefaultOptions.
func (r *Registry) Encode(m *gd.Image, f Format, o *Options) ([]byte, error) {
	var buf bytes.Buffer
	if err := r.EncodeTo(&buf, m, f, o); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// EncodeTo writes m in format f to w. A nil o means DefaultOptions.
func (r *Registry) EncodeTo(w io.Writer, m *gd.Image, f Format, o *Options) error {
	if m == nil {
		return fmt.Errorf("%w: nil image", gd.ErrInvalidDimension)
	}
	c, err := r.Lookup(f)
	if err != nil {
		return err
	}
	if o == nil {
		o = DefaultOptions()
	}
	if err := c.Encode(w, m, o); err != nil {
		return fmt.Errorf("codec: encode %s: %w", f, err)
	}
	return nil
}
