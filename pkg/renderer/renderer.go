package renderer

import (
	"context"
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/df07/go-pathtracer/pkg/core"
	"github.com/df07/go-pathtracer/pkg/geometry"
	"github.com/df07/go-pathtracer/pkg/integrator"
	"github.com/df07/go-pathtracer/pkg/log"
	"github.com/df07/go-pathtracer/pkg/scene"
)

// ErrInvalidConfig is wrapped by every options validation failure
var ErrInvalidConfig = errors.New("renderer: invalid configuration")

var logger = log.New("renderer")

// Options controls a single render
type Options struct {
	Width           int
	Height          int
	SamplesPerPixel int
	MaxDepth        int
	Workers         int   // 0 picks one worker per logical core
	Seed            int64 // Base seed; row y uses Seed+y
	Gamma           bool  // Frames are encoded with gamma 2
}

// OptionsFromScene returns the scene's recommended sampling settings
func OptionsFromScene(s *scene.Scene) Options {
	return Options{
		Width:           s.SamplingConfig.Width,
		Height:          s.SamplingConfig.Height,
		SamplesPerPixel: s.SamplingConfig.SamplesPerPixel,
		MaxDepth:        s.SamplingConfig.MaxDepth,
	}
}

// Validate checks that the options describe a renderable frame
func (o Options) Validate() error {
	if o.Width <= 0 || o.Height <= 0 {
		return fmt.Errorf("%w: image size %dx%d", ErrInvalidConfig, o.Width, o.Height)
	}
	if o.SamplesPerPixel <= 0 {
		return fmt.Errorf("%w: samples per pixel %d", ErrInvalidConfig, o.SamplesPerPixel)
	}
	if o.MaxDepth < 0 {
		return fmt.Errorf("%w: max depth %d", ErrInvalidConfig, o.MaxDepth)
	}
	if o.Workers < 0 {
		return fmt.Errorf("%w: workers %d", ErrInvalidConfig, o.Workers)
	}
	return nil
}

// Frame holds the averaged, clamped radiance of every pixel in row-major
// order, top row first
type Frame struct {
	Width  int
	Height int
	Pixels []core.Vec3
	Gamma  bool // EncodePNG applies gamma 2
}

// NewFrame allocates a black frame
func NewFrame(width, height int) *Frame {
	return &Frame{Width: width, Height: height, Pixels: make([]core.Vec3, width*height)}
}

// At returns the pixel at column x, row y
func (f *Frame) At(x, y int) core.Vec3 {
	return f.Pixels[y*f.Width+x]
}

// Renderer owns the pixel loop: it builds the scene's BVH, traces jittered
// camera rays for every pixel and averages the integrator's estimates
type Renderer struct {
	scene      *scene.Scene
	camera     Camera
	integrator integrator.Integrator
	opts       Options
}

// New creates a renderer for a scene
func New(s *scene.Scene, opts Options) (*Renderer, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}

	return &Renderer{
		scene:      s,
		camera:     NewCameraFromConfig(s.Camera, float64(opts.Width)/float64(opts.Height)),
		integrator: integrator.NewPathTracingIntegrator(),
		opts:       opts,
	}, nil
}

// SetCamera replaces the camera derived from the scene
func (r *Renderer) SetCamera(camera Camera) {
	r.camera = camera
}

// SetIntegrator replaces the default recursive path tracer
func (r *Renderer) SetIntegrator(i integrator.Integrator) {
	r.integrator = i
}

// Render traces the whole frame. Rows are distributed over a worker pool;
// every row draws from its own sampler so the result does not depend on the
// number of workers.
func (r *Renderer) Render(ctx context.Context) (*Frame, RenderStats, error) {
	start := time.Now()

	// The BVH must exist before any worker queries it
	accel := r.scene.Accelerator()

	frame := NewFrame(r.opts.Width, r.opts.Height)
	frame.Gamma = r.opts.Gamma

	renderRow := func(y int) (int, error) {
		if err := ctx.Err(); err != nil {
			return 0, err
		}
		sampler := core.NewRandomSampler(r.opts.Seed + int64(y))
		return r.renderRow(frame, y, accel, sampler), nil
	}

	pool := NewWorkerPool(renderRow, r.opts.Height, r.opts.Workers)
	pool.Start()

	logger.Infof("rendering %q at %dx%d, %d spp, depth %d on %d workers",
		r.scene.Name, r.opts.Width, r.opts.Height, r.opts.SamplesPerPixel, r.opts.MaxDepth, pool.GetNumWorkers())

	for y := 0; y < r.opts.Height; y++ {
		pool.SubmitTask(RowTask{Row: y})
	}
	pool.Stop()

	stats := RenderStats{
		Width:      r.opts.Width,
		Height:     r.opts.Height,
		Workers:    pool.GetNumWorkers(),
		Primitives: r.scene.PrimitiveCount(),
		BVH:        r.scene.BVH.Stats(),
	}

	var renderErr error
	for {
		result, ok := pool.GetResult()
		if !ok {
			break
		}
		if result.Error != nil {
			if renderErr == nil {
				renderErr = result.Error
			}
			continue
		}
		stats.TotalPixels += r.opts.Width
		stats.TotalSamples += result.Samples
	}

	stats.Duration = time.Since(start)
	if renderErr != nil {
		return nil, stats, fmt.Errorf("render %q: %w", r.scene.Name, renderErr)
	}

	logger.Debugf("finished %q in %s", r.scene.Name, stats.Duration)
	return frame, stats, nil
}

// renderRow fills row y of the frame and returns the number of samples taken
func (r *Renderer) renderRow(frame *Frame, y int, accel geometry.Accelerator, sampler core.Sampler) int {
	width := float64(r.opts.Width)
	height := float64(r.opts.Height)
	samples := 0

	for x := 0; x < r.opts.Width; x++ {
		var color core.Vec3
		for s := 0; s < r.opts.SamplesPerPixel; s++ {
			jx, jy := sampler.Get2D()
			u := (float64(x)+jx)/width*2.0 - 1.0
			v := 1.0 - (float64(y)+jy)/height*2.0
			ray := r.camera.GetRay(u, v)
			color = color.Add(r.integrator.Li(ray, accel, sampler, r.opts.MaxDepth))
			samples++
		}

		color = color.Mul(1.0 / float64(r.opts.SamplesPerPixel))
		frame.Pixels[y*r.opts.Width+x] = clamp(color)
	}

	return samples
}

func clamp(c core.Vec3) core.Vec3 {
	return core.NewVec3(clamp01(c.X), clamp01(c.Y), clamp01(c.Z))
}

func clamp01(x float64) float64 {
	return math.Min(math.Max(x, 0), 1)
}
