// Command soft3d renders a scene headlessly to PNG files, a terminal or
// memory.
//
// Usage:
//
//	soft3d [-config job.yaml] [-scene monkey.babylon] [-frames 60] [-output png|ansi|image] [-dir frames]
//
// Flags given on the command line override the job file.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"time"

	"github.com/schollz/progressbar/v3"
	"golang.org/x/term"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/gogpu/soft3d"
	"github.com/gogpu/soft3d/driver"
	"github.com/gogpu/soft3d/internal/config"
	"github.com/gogpu/soft3d/internal/hud"
	"github.com/gogpu/soft3d/surface"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := run(ctx, os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintf(os.Stderr, "soft3d: %v\n", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	fs := flag.NewFlagSet("soft3d", flag.ContinueOnError)
	fs.SetOutput(stderr)

	var (
		configPath  = fs.String("config", "", "job file (YAML)")
		writeConfig = fs.String("write-config", "", "write the effective job to this file and exit")
		verbose     = fs.Bool("v", false, "verbose logging")
	)
	// Job overrides, applied by Job.ApplyFlags when set.
	fs.String("scene", "", "scene file (.babylon, .json, .yaml)")
	fs.Int("width", config.DefaultWidth, "image width")
	fs.Int("height", config.DefaultHeight, "image height")
	fs.Int("frames", config.DefaultFrames, "number of frames to render (0 = until interrupted)")
	fs.Int("fps", 0, "frame rate cap (0 = unlimited)")
	fs.String("output", config.DefaultBackend, "output backend: "+fmt.Sprint(surface.List()))
	fs.String("dir", config.DefaultOutputDir, "output directory for the png backend")
	fs.Int("workers", 0, "rasterization workers (0 = serial, -1 = all CPUs)")
	fs.Bool("hud", false, "draw frame statistics on each frame")
	if err := fs.Parse(args); err != nil {
		return err
	}

	level := slog.LevelWarn
	if *verbose {
		level = slog.LevelDebug
	}
	soft3d.SetLogger(slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: level})))

	job := config.Default()
	if *configPath != "" {
		var err error
		if job, err = config.Load(*configPath); err != nil {
			return err
		}
	}

	// Explicit flags win over the job file.
	job.ApplyFlags(fs)
	if err := job.Validate(); err != nil {
		return err
	}

	if *writeConfig != "" {
		return config.Write(*writeConfig, job)
	}

	meshes, err := job.Meshes()
	if err != nil {
		return err
	}

	s, err := surface.NewSurfaceByName(job.Output.Backend, surface.Options{
		Width:  job.Width,
		Height: job.Height,
		Dir:    job.Output.Dir,
		Out:    stdout,
	})
	if err != nil {
		return err
	}
	defer s.Close()

	dev, err := soft3d.NewDevice(job.Width, job.Height,
		append(job.DeviceOptions(), soft3d.WithPresenter(s))...)
	if err != nil {
		return err
	}
	defer dev.Close()

	loop := &driver.Loop{
		Scene:     soft3d.NewScene(*job.NewCamera(), meshes...),
		Device:    dev,
		Update:    driver.Spin(job.SpinPerFrame()),
		FPS:       job.FPS,
		MaxFrames: job.FrameCount(),
	}
	if job.HUD {
		loop.Overlay = hud.Overlay()
	}

	var bar *progressbar.ProgressBar
	if job.Output.Backend != "ansi" && job.FrameCount() > 1 && isTerminal(stderr) {
		bar = progressbar.NewOptions(job.FrameCount(),
			progressbar.OptionSetWriter(stderr),
			progressbar.OptionSetDescription("rendering"),
			progressbar.OptionShowCount(),
			progressbar.OptionClearOnFinish())
		defer bar.Close()
	}

	var total soft3d.FrameStats
	loop.OnFrame = func(_ int, st soft3d.FrameStats) {
		total.Add(st)
		if bar != nil {
			_ = bar.Add(1)
		}
	}

	start := time.Now()
	err = loop.Run(ctx)
	if err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	if bar != nil {
		_ = bar.Finish()
	}

	p := message.NewPrinter(language.English)
	p.Fprintf(stderr, "rendered %d frames of %d faces in %v: %d triangles, %d pixels written, %d rejected\n",
		loop.Frame(), loop.Scene.FaceCount(), time.Since(start).Round(time.Millisecond),
		total.Triangles, total.PixelsWritten, total.PixelsRejected)
	if total.Skipped > 0 {
		p.Fprintf(stderr, "skipped %d degenerate faces\n", total.Skipped)
	}
	return nil
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}
