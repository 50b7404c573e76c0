package renderer

import (
	"bytes"
	"context"
	"errors"
	"image/color"
	"image/png"
	"strings"
	"testing"

	"github.com/df07/go-pathtracer/pkg/core"
	"github.com/df07/go-pathtracer/pkg/integrator"
	"github.com/df07/go-pathtracer/pkg/material"
	"github.com/df07/go-pathtracer/pkg/scene"
)

// skyCamera always looks straight up
type skyCamera struct{}

func (skyCamera) GetRay(u, v float64) core.Ray {
	return core.NewRay(core.NewVec3(0, 0, 0), core.NewVec3(0, 1, 0))
}

func smallOptions(workers int) Options {
	return Options{Width: 8, Height: 6, SamplesPerPixel: 2, MaxDepth: 5, Workers: workers, Seed: 42}
}

func TestOptions_Validate(t *testing.T) {
	tests := []struct {
		name string
		opts Options
	}{
		{"zero width", Options{Width: 0, Height: 10, SamplesPerPixel: 1}},
		{"negative height", Options{Width: 10, Height: -1, SamplesPerPixel: 1}},
		{"no samples", Options{Width: 10, Height: 10}},
		{"negative depth", Options{Width: 10, Height: 10, SamplesPerPixel: 1, MaxDepth: -1}},
		{"negative workers", Options{Width: 10, Height: 10, SamplesPerPixel: 1, Workers: -2}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := tt.opts.Validate(); !errors.Is(err, ErrInvalidConfig) {
				t.Errorf("Expected ErrInvalidConfig, got %v", err)
			}
		})
	}

	if err := smallOptions(1).Validate(); err != nil {
		t.Errorf("Expected valid options, got %v", err)
	}
}

func TestRender_DeterministicAcrossWorkers(t *testing.T) {
	var frames []*Frame
	for _, workers := range []int{1, 3} {
		r, err := New(scene.NewFirstScene(), smallOptions(workers))
		if err != nil {
			t.Fatal(err)
		}
		frame, stats, err := r.Render(context.Background())
		if err != nil {
			t.Fatalf("Render failed: %v", err)
		}
		if stats.TotalPixels != 48 || stats.TotalSamples != 96 {
			t.Errorf("Unexpected stats %+v", stats)
		}
		if stats.Workers != workers {
			t.Errorf("Expected %d workers, got %d", workers, stats.Workers)
		}
		frames = append(frames, frame)
	}

	for i := range frames[0].Pixels {
		if frames[0].Pixels[i] != frames[1].Pixels[i] {
			t.Fatalf("Pixel %d differs between worker counts: %v vs %v", i, frames[0].Pixels[i], frames[1].Pixels[i])
		}
	}
}

func TestRender_PixelsClamped(t *testing.T) {
	r, err := New(scene.NewFirstScene(), smallOptions(2))
	if err != nil {
		t.Fatal(err)
	}
	frame, _, err := r.Render(context.Background())
	if err != nil {
		t.Fatal(err)
	}

	for i, p := range frame.Pixels {
		for _, c := range []float64{p.X, p.Y, p.Z} {
			if c < 0 || c > 1 {
				t.Fatalf("Pixel %d channel %f outside [0,1]", i, c)
			}
		}
	}
}

func TestRender_SkyOnly(t *testing.T) {
	r, err := New(scene.NewGroundScene(), smallOptions(2))
	if err != nil {
		t.Fatal(err)
	}
	r.SetCamera(skyCamera{})

	frame, _, err := r.Render(context.Background())
	if err != nil {
		t.Fatal(err)
	}

	sky := core.NewVec3(0.5, 0.7, 1.0)
	for i, p := range frame.Pixels {
		if p.Sub(sky).Norm() > 1e-12 {
			t.Fatalf("Pixel %d: expected sky %v, got %v", i, sky, p)
		}
	}
}

func TestRender_Cancelled(t *testing.T) {
	r, err := New(scene.NewGroundScene(), smallOptions(2))
	if err != nil {
		t.Fatal(err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, _, err := r.Render(ctx); !errors.Is(err, context.Canceled) {
		t.Errorf("Expected context.Canceled, got %v", err)
	}
}

func TestRender_IterativeIntegratorMatches(t *testing.T) {
	opts := smallOptions(2)

	recursive, _ := New(scene.NewFirstScene(), opts)
	a, _, err := recursive.Render(context.Background())
	if err != nil {
		t.Fatal(err)
	}

	iterative, _ := New(scene.NewFirstScene(), opts)
	iterative.SetIntegrator(integrator.NewIterativePathTracingIntegrator())
	b, _, err := iterative.Render(context.Background())
	if err != nil {
		t.Fatal(err)
	}

	for i := range a.Pixels {
		if a.Pixels[i].Sub(b.Pixels[i]).Norm() > 1e-9 {
			t.Fatalf("Pixel %d: recursive %v, iterative %v", i, a.Pixels[i], b.Pixels[i])
		}
	}
}

// A primary ray through the lower part of the view lands on the ground
// sphere; with a fixed hemisphere sample the single bounce escapes to the sky
// and the radiance is the albedo times the sky in the scattered direction.
func TestGroundScene_OneBounce(t *testing.T) {
	s := scene.NewGroundScene()
	camera := NewCameraFromConfig(s.Camera, 1.0)
	accel := s.Accelerator()

	ray := camera.GetRay(0, -0.9)
	hit, ok := accel.Hit(ray)
	if !ok {
		t.Fatal("Expected the ray to hit the ground")
	}

	lambertian, ok := hit.Object.Material.(*material.Lambertian)
	if !ok {
		t.Fatalf("Expected a lambertian ground, got %T", hit.Object.Material)
	}

	scattered := hit.Normal.Add(core.SampleHemisphere(0.25, 0.5)).Normalize()
	expected := core.MultiplyVec(lambertian.Albedo, integrator.DefaultBackground().Evaluate(scattered))

	got := integrator.NewPathTracingIntegrator().Li(ray, accel, core.NewFixedSampler(0.25, 0.5), 2)
	if got.Sub(expected).Norm() > 1e-9 {
		t.Errorf("Expected %v, got %v", expected, got)
	}
}

func TestFrame_ToImage(t *testing.T) {
	frame := NewFrame(4, 1)
	frame.Pixels[0] = core.NewVec3(1, 0, 0.5)
	frame.Pixels[1] = core.NewVec3(0.25, 0.25, 0.25)
	frame.Pixels[2] = core.NewVec3(2, -1, 1)

	linear := frame.ToImage(false)
	if c := linear.RGBAAt(0, 0); c.R != 255 || c.G != 0 || c.B != 127 || c.A != 255 {
		t.Errorf("Unexpected linear pixel %v", c)
	}
	if c := linear.RGBAAt(1, 0); c.R != 63 {
		t.Errorf("Expected 63 for 0.25, got %d", c.R)
	}
	if c := linear.RGBAAt(2, 0); c.R != 255 || c.G != 0 || c.B != 255 {
		t.Errorf("Out-of-range channels should saturate, got %v", c)
	}

	gamma := frame.ToImage(true)
	if c := gamma.RGBAAt(1, 0); c.R != 127 {
		t.Errorf("Expected gamma-corrected 0.25 to become 127, got %d", c.R)
	}
}

func TestFrame_EncodePNG(t *testing.T) {
	frame := NewFrame(3, 2)
	var buf bytes.Buffer
	if err := frame.EncodePNG(&buf); err != nil {
		t.Fatal(err)
	}

	img, err := png.Decode(&buf)
	if err != nil {
		t.Fatalf("Output is not a valid PNG: %v", err)
	}
	if b := img.Bounds(); b.Dx() != 3 || b.Dy() != 2 {
		t.Errorf("Expected 3x2 image, got %v", b)
	}
}

func TestRender_GammaOption(t *testing.T) {
	tests := []struct {
		name     string
		gamma    bool
		expected color.RGBA
	}{
		// Sky straight up is (0.5, 0.7, 1.0)
		{"linear", false, color.RGBA{R: 127, G: 178, B: 255, A: 255}},
		{"gamma", true, color.RGBA{R: 180, G: 213, B: 255, A: 255}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			opts := smallOptions(1)
			opts.Gamma = tt.gamma
			r, err := New(scene.NewGroundScene(), opts)
			if err != nil {
				t.Fatal(err)
			}
			r.SetCamera(skyCamera{})

			frame, _, err := r.Render(context.Background())
			if err != nil {
				t.Fatal(err)
			}
			if frame.Gamma != tt.gamma {
				t.Errorf("Expected frame gamma %v, got %v", tt.gamma, frame.Gamma)
			}

			var buf bytes.Buffer
			if err := frame.EncodePNG(&buf); err != nil {
				t.Fatal(err)
			}
			img, err := png.Decode(&buf)
			if err != nil {
				t.Fatal(err)
			}
			got := color.RGBAModel.Convert(img.At(0, 0)).(color.RGBA)
			if got != tt.expected {
				t.Errorf("Expected %v, got %v", tt.expected, got)
			}
		})
	}
}

func TestRenderStats_WriteTable(t *testing.T) {
	stats := RenderStats{Width: 8, Height: 6, TotalPixels: 48, TotalSamples: 96, Workers: 2}

	var buf bytes.Buffer
	stats.WriteTable(&buf)

	out := buf.String()
	for _, want := range []string{"Resolution", "8x6", "96", "2.0"} {
		if !strings.Contains(out, want) {
			t.Errorf("Expected table to contain %q, got:\n%s", want, out)
		}
	}
}
