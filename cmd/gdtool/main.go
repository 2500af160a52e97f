// Command gdtool draws, converts and inspects raster images with gd.
package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"

	"github.com/alecthomas/kong"

	"github.com/gogpu/gd"
	"github.com/gogpu/gd/codec"
	"github.com/gogpu/gd/text"
)

// Globals are the shared services handed to every command's Run.
type Globals struct {
	Ctx    context.Context
	Codecs *codec.Registry
	Fonts  *text.Renderer
	Out    io.Writer
}

type CLI struct {
	LogLevel string   `help:"Log level." enum:"debug,info,warn,error" default:"info"`
	FontPath []string `help:"Font directories. Defaults to GDFONTPATH." placeholder:"DIR"`

	Demo    DemoCmd    `cmd:"" help:"Draw the demonstration image and write it as PNG and JPEG."`
	Convert ConvertCmd `cmd:"" help:"Convert an image between formats."`
	Info    InfoCmd    `cmd:"" help:"Describe an image file."`
	Compare CompareCmd `cmd:"" help:"Report how two images differ."`
	Palette PaletteCmd `cmd:"" help:"Apply or export a RIFF PAL palette."`
	Thumb   ThumbCmd   `cmd:"" help:"Write resampled thumbnails for every image in a folder."`
}

func newLogger(w io.Writer, level string) (*slog.Logger, error) {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(level)); err != nil {
		return nil, fmt.Errorf("invalid log level %q: %w", level, err)
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: lvl})), nil
}

func main() {
	var cli CLI
	kctx := kong.Parse(&cli,
		kong.Name("gdtool"),
		kong.Description("Raster image toolkit: drawing, codecs, palettes and thumbnails."),
		kong.UsageOnError(),
	)

	logger, err := newLogger(os.Stderr, cli.LogLevel)
	kctx.FatalIfErrorf(err)
	slog.SetDefault(logger)
	gd.SetLogger(logger)

	var fontOpts []text.Option
	if len(cli.FontPath) > 0 {
		fontOpts = append(fontOpts, text.WithSearchPath(cli.FontPath...))
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	err = kctx.Run(&Globals{
		Ctx:    ctx,
		Codecs: codec.Default(),
		Fonts:  text.NewRenderer(fontOpts...),
		Out:    os.Stdout,
	})
	kctx.FatalIfErrorf(err)
}
