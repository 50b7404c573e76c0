package cmd

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"

	"github.com/df07/go-pathtracer/pkg/integrator"
	"github.com/df07/go-pathtracer/pkg/renderer"
	"github.com/df07/go-pathtracer/pkg/scene"
	"github.com/urfave/cli"
)

// RenderFrame renders a single frame and writes it to a PNG file.
func RenderFrame(ctx *cli.Context) error {
	if err := setupLogging(ctx); err != nil {
		return err
	}

	sceneObj, err := loadScene(ctx)
	if err != nil {
		return err
	}

	opts := renderOptions(ctx, sceneObj)
	logHostInfo(opts)

	r, err := renderer.New(sceneObj, opts)
	if err != nil {
		return err
	}
	if ctx.Bool("iterative") {
		r.SetIntegrator(integrator.NewIterativePathTracingIntegrator())
	}

	runCtx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	frame, stats, err := r.Render(runCtx)
	if err != nil {
		return err
	}

	out := ctx.String("out")
	if dir := filepath.Dir(out); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("create output directory: %w", err)
		}
	}
	if err := frame.SavePNG(out); err != nil {
		return err
	}

	displayFrameStats(stats)
	logger.Noticef("wrote %s", out)
	return nil
}

// loadScene picks the scene file if one was given, otherwise a built-in scene
func loadScene(ctx *cli.Context) (*scene.Scene, error) {
	if path := ctx.String("scene-file"); path != "" {
		logger.Infof("loading scene from %s", path)
		return scene.Load(path)
	}

	name := ctx.String("scene")
	if name == "spheres" && ctx.IsSet("seed") {
		return scene.NewRandomSpheresScene(ctx.Int64("seed")), nil
	}
	return scene.Create(name)
}

// renderOptions starts from the scene's recommended settings and applies
// any flags the user set explicitly
func renderOptions(ctx *cli.Context, sceneObj *scene.Scene) renderer.Options {
	opts := renderer.OptionsFromScene(sceneObj)

	if ctx.IsSet("width") || opts.Width <= 0 {
		opts.Width = ctx.Int("width")
	}
	if ctx.IsSet("height") || opts.Height <= 0 {
		opts.Height = ctx.Int("height")
	}
	if ctx.IsSet("spp") || opts.SamplesPerPixel <= 0 {
		opts.SamplesPerPixel = ctx.Int("spp")
	}
	if ctx.IsSet("depth") || opts.MaxDepth <= 0 {
		opts.MaxDepth = ctx.Int("depth")
	}
	opts.Workers = ctx.Int("workers")
	opts.Seed = ctx.Int64("seed")
	opts.Gamma = ctx.Bool("gamma")

	return opts
}

func logHostInfo(opts renderer.Options) {
	host, err := renderer.DetectHost()
	if err != nil {
		logger.Warningf("could not read host memory: %v", err)
		return
	}

	logger.Infof("host: %s, %d logical cores, %d MiB total / %d MiB available",
		host.CPUModel, host.LogicalCores, host.TotalMemory>>20, host.FreeMemory>>20)

	if need := renderer.FrameBytes(opts.Width, opts.Height); host.FreeMemory > 0 && need > host.FreeMemory {
		logger.Warningf("frame needs %d MiB, more than the %d MiB available", need>>20, host.FreeMemory>>20)
	}
}

// Display frame stats in a table.
func displayFrameStats(stats renderer.RenderStats) {
	var buf bytes.Buffer
	stats.WriteTable(&buf)
	logger.Noticef("frame statistics\n%s", buf.String())
}
