package main

import (
	"bytes"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/df07/go-pathtracer/pkg/log"
)

func TestNewApp_Commands(t *testing.T) {
	app := newApp()

	for _, name := range []string{"render", "scenes", "serve"} {
		if app.Command(name) == nil {
			t.Errorf("Expected command %q", name)
		}
	}
}

func TestScenesCommand(t *testing.T) {
	app := newApp()
	var buf bytes.Buffer
	app.Writer = &buf

	if err := app.Run([]string{"pathtracer", "scenes"}); err != nil {
		t.Fatalf("scenes failed: %v", err)
	}

	out := buf.String()
	for _, name := range []string{"first", "ground", "spheres"} {
		if !strings.Contains(out, name) {
			t.Errorf("Expected %q in output:\n%s", name, out)
		}
	}
}

func TestRenderCommand(t *testing.T) {
	tests := []struct {
		name        string
		args        []string
		expectError bool
	}{
		{"built-in scene", []string{"--scene", "ground"}, false},
		{"iterative integrator", []string{"--scene", "first", "--iterative", "--gamma"}, false},
		{"unknown scene", []string{"--scene", "nonexistent"}, true},
		{"missing scene file", []string{"--scene-file", "does-not-exist.json"}, true},
		{"zero samples", []string{"--scene", "ground", "--spp", "0"}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out := filepath.Join(t.TempDir(), "out", "frame.png")
			args := append([]string{"pathtracer", "render", "--width", "8", "--height", "6", "--spp", "2", "--out", out}, tt.args...)

			err := newApp().Run(args)
			if tt.expectError {
				if err == nil {
					t.Error("Expected an error")
				}
				return
			}
			if err != nil {
				t.Fatalf("Unexpected error: %v", err)
			}

			f, err := os.Open(out)
			if err != nil {
				t.Fatalf("Output not written: %v", err)
			}
			defer f.Close()
			img, err := png.Decode(f)
			if err != nil {
				t.Fatalf("Output is not a PNG: %v", err)
			}
			if b := img.Bounds(); b.Dx() != 8 || b.Dy() != 6 {
				t.Errorf("Expected 8x6 image, got %v", b)
			}
		})
	}
}

func TestGlobalFlags(t *testing.T) {
	defer log.SetLevel(log.Notice)

	tests := []struct {
		name        string
		args        []string
		expectError bool
		expectOut   string
	}{
		{"version", []string{"--version"}, false, "0.1.0"},
		{"render help", []string{"render", "--help"}, false, "--scene-file"},
		{"verbose", []string{"-v", "scenes"}, false, "first"},
		{"very verbose", []string{"-vv", "scenes"}, false, "first"},
		{"log level", []string{"--log-level", "warning", "scenes"}, false, "first"},
		{"unknown log level", []string{"--log-level", "loud", "scenes"}, true, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			app := newApp()
			var buf bytes.Buffer
			app.Writer = &buf

			err := app.Run(append([]string{"pathtracer"}, tt.args...))
			if (err != nil) != tt.expectError {
				t.Fatalf("Run(%v) error = %v, expectError %v", tt.args, err, tt.expectError)
			}
			if tt.expectOut != "" && !strings.Contains(buf.String(), tt.expectOut) {
				t.Errorf("Expected %q in output:\n%s", tt.expectOut, buf.String())
			}
		})
	}
}
