package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync/atomic"

	"github.com/alecthomas/kong"

	"github.com/gogpu/gd"
	"github.com/gogpu/gd/codec"
	"github.com/gogpu/gd/internal/parallel"
)

type ThumbCmd struct {
	Scan    string `help:"Source folder to scan." default:"."`
	Dest    string `help:"Destination folder. Relative to the scan folder if not absolute." default:"thumbs"`
	Width   int    `help:"Maximum thumbnail width, 0 for no limit." default:"160"`
	Height  int    `help:"Maximum thumbnail height, 0 for no limit." default:"160"`
	Format  string `help:"Thumbnail format." enum:"png,jpeg,gif,bmp,tiff" default:"png"`
	Workers int    `help:"Parallel workers, 0 for one per CPU." default:"0"`
}

func (c *ThumbCmd) Validate(kctx *kong.Context) error {
	scanDir, err := filepath.Abs(c.Scan)
	var info os.FileInfo
	if err == nil {
		if info, err = os.Stat(scanDir); err == nil && !info.IsDir() {
			err = fmt.Errorf("not a directory")
		}
	}
	if err != nil {
		return fmt.Errorf("invalid scan path %q: %w", c.Scan, err)
	}
	c.Scan = scanDir

	if !filepath.IsAbs(c.Dest) {
		c.Dest = filepath.Join(scanDir, c.Dest)
	}

	switch {
	case c.Width < 0:
		return fmt.Errorf("invalid thumbnail width: %d", c.Width)
	case c.Height < 0:
		return fmt.Errorf("invalid thumbnail height: %d", c.Height)
	case c.Width == 0 && c.Height == 0:
		return fmt.Errorf("no thumbnail dimensions given")
	case c.Workers < 0:
		return fmt.Errorf("invalid worker count: %d", c.Workers)
	}
	return nil
}

// fit scales w x h to fit inside maxW x maxH, keeping the aspect ratio.
// A zero limit is ignored. Images never grow.
func fit(w, h, maxW, maxH int) (int, int) {
	scale := 1.0
	if maxW > 0 {
		scale = min(scale, float64(maxW)/float64(w))
	}
	if maxH > 0 {
		scale = min(scale, float64(maxH)/float64(h))
	}
	tw := max(1, int(float64(w)*scale+0.5))
	th := max(1, int(float64(h)*scale+0.5))
	return tw, th
}

// thumbnail resamples src into a new true-color image.
func thumbnail(src *gd.Image, maxW, maxH int) (*gd.Image, error) {
	w, h := fit(src.Width(), src.Height(), maxW, maxH)
	dst, err := gd.New(w, h, gd.ModeTrueColor, gd.WithAlphaBlending(false))
	if err != nil {
		return nil, err
	}
	if err := dst.CopyResampled(src, dst.Bounds(), src.Bounds()); err != nil {
		return nil, err
	}
	return dst, nil
}

func (c *ThumbCmd) Run(g *Globals) error {
	format, err := codec.ParseFormat(c.Format)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(c.Dest, 0o755); err != nil {
		return fmt.Errorf("unable to create destination folder %q: %w", c.Dest, err)
	}
	files, err := os.ReadDir(c.Scan)
	if err != nil {
		return fmt.Errorf("unable to read folder %q: %w", c.Scan, err)
	}

	pool := parallel.NewWorkerPool(c.Workers)
	defer pool.Close()

	var processed, failed atomic.Uint64
	var jobs []parallel.Job
	for _, file := range files {
		if file.IsDir() {
			continue
		}
		name := file.Name()
		jobs = append(jobs, func(context.Context) error {
			src := filepath.Join(c.Scan, name)
			logger := slog.Default().With("file", src)

			img, _, err := readImage(g.Codecs, src)
			if err != nil {
				failed.Add(1)
				logger.Error("could not read image", "error", err)
				return err
			}
			thumb, err := thumbnail(img, c.Width, c.Height)
			if err != nil {
				failed.Add(1)
				logger.Error("could not resample image", "error", err)
				return err
			}
			dest := filepath.Join(c.Dest, strings.TrimSuffix(name, filepath.Ext(name))+"."+string(format))
			if _, err := writeImage(g.Codecs, thumb, format, nil, dest); err != nil {
				failed.Add(1)
				logger.Error("could not save thumbnail", "error", err)
				return err
			}
			processed.Add(1)
			return nil
		})
	}

	ctx := g.Ctx
	if ctx == nil {
		ctx = context.Background()
	}
	runErr := pool.Run(ctx, jobs)

	slog.Info("stats", "processed", processed.Load(), "errors", failed.Load(), "workers", pool.Workers())
	if runErr != nil {
		return fmt.Errorf("error processing %d of %d files: %w", len(jobs)-int(processed.Load()), len(jobs), runErr)
	}
	return nil
}
