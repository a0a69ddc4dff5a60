// Command softview opens a window and spins a scene.
//
// Usage:
//
//	softview [-config job.yaml] [-scene monkey.babylon] [-scale 2] [-workers -1]
package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"

	"github.com/gogpu/soft3d"
	"github.com/gogpu/soft3d/driver"
	"github.com/gogpu/soft3d/integration/ebitenview"
	"github.com/gogpu/soft3d/internal/config"
	"github.com/gogpu/soft3d/internal/hud"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "softview: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	var (
		configPath = flag.String("config", "", "job file (YAML)")
		scale      = flag.Int("scale", 1, "window scale factor")
		workers    = flag.Int("workers", -1, "rasterization workers (0 = serial, -1 = all CPUs)")
		showHUD    = flag.Bool("hud", true, "draw frame statistics")
		verbose    = flag.Bool("v", false, "verbose logging")
	)
	flag.String("scene", "", "scene file (.babylon, .json, .yaml)")
	flag.Parse()

	if *verbose {
		soft3d.SetLogger(slog.New(slog.NewTextHandler(os.Stderr,
			&slog.HandlerOptions{Level: slog.LevelDebug})))
	}

	job := config.Default()
	job.Workers = *workers
	if *configPath != "" {
		var err error
		if job, err = config.Load(*configPath); err != nil {
			return err
		}
	}
	job.ApplyFlags(flag.CommandLine)

	meshes, err := job.Meshes()
	if err != nil {
		return err
	}
	dev, err := soft3d.NewDevice(job.Width, job.Height, job.DeviceOptions()...)
	if err != nil {
		return err
	}
	defer dev.Close()

	loop := &driver.Loop{
		Scene:  soft3d.NewScene(*job.NewCamera(), meshes...),
		Device: dev,
		Update: driver.Spin(job.SpinPerFrame()),
		FPS:    job.FPS,
	}
	if *showHUD {
		loop.Overlay = hud.Overlay()
	}

	title := "soft3d"
	if job.Scene != "" {
		title += " - " + job.Scene
	}
	return ebitenview.Run(loop, title, *scale)
}
