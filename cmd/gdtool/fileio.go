package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/gogpu/gd"
	"github.com/gogpu/gd/codec"
)

// readImage decodes a file, sniffing its format.
func readImage(reg *codec.Registry, path string) (*gd.Image, codec.Format, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, codec.Auto, fmt.Errorf("could not read %q: %w", path, err)
	}
	format, _ := reg.Sniff(data)
	img, err := reg.Decode(data, codec.Auto)
	if err != nil {
		return nil, format, fmt.Errorf("could not decode %q: %w", path, err)
	}
	return img, format, nil
}

// formatFor picks the explicit format or the one named by path's
// extension.
func formatFor(explicit, path string) (codec.Format, error) {
	if explicit != "" {
		return codec.ParseFormat(explicit)
	}
	f, err := codec.ParseFormat(filepath.Ext(path))
	if err != nil {
		return codec.Auto, fmt.Errorf("cannot tell output format of %q: %w", path, err)
	}
	if f == codec.Auto {
		return codec.Auto, fmt.Errorf("%w: %q has no extension", gd.ErrUnsupportedFormat, path)
	}
	return f, nil
}

// writeImage encodes img and stores it at path.
func writeImage(reg *codec.Registry, img *gd.Image, f codec.Format, o *codec.Options, path string) (int, error) {
	data, err := reg.Encode(img, f, o)
	if err != nil {
		return 0, fmt.Errorf("could not encode %q: %w", path, err)
	}
	if err := saveFile(path, data); err != nil {
		return 0, err
	}
	return len(data), nil
}

// saveFile writes data to a temporary file next to path and renames it
// into place, so readers never see a partial file.
func saveFile(path string, data []byte) (err error) {
	dir, name := filepath.Split(path)
	if dir == "" {
		dir = "."
	}
	tmp, err := os.CreateTemp(dir, "."+name+".*")
	if err != nil {
		return fmt.Errorf("could not create temporary file for %q: %w", path, err)
	}
	defer func() {
		if err != nil {
			_ = os.Remove(tmp.Name())
		}
	}()

	if _, err = tmp.Write(data); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("could not write %q: %w", path, err)
	}
	if err = tmp.Chmod(0o644); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("could not set mode of %q: %w", path, err)
	}
	if err = tmp.Sync(); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("could not flush %q: %w", path, err)
	}
	if err = tmp.Close(); err != nil {
		return fmt.Errorf("could not close %q: %w", path, err)
	}
	if err = os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("could not rename into %q: %w", path, err)
	}
	return nil
}
