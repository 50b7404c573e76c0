package server

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"github.com/df07/go-pathtracer/pkg/log"
	"github.com/df07/go-pathtracer/pkg/renderer"
	"github.com/df07/go-pathtracer/pkg/scene"
	"github.com/labstack/echo/v4"
)

var logger = log.New("server")

// Limits applied to render requests
const (
	MaxDimension = 2000
	MaxSamples   = 1000
	MaxDepth     = 100
)

// Server is the HTTP preview API for the path tracer
type Server struct {
	addr string
	echo *echo.Echo
}

// RenderRequest represents a render request from the client
type RenderRequest struct {
	Scene   string
	Width   int
	Height  int
	Samples int
	Depth   int
	Seed    int64
	Gamma   bool
}

// SceneConfig is the JSON description of a built-in scene's defaults
type SceneConfig struct {
	Scene           string `json:"scene"`
	Width           int    `json:"width"`
	Height          int    `json:"height"`
	SamplesPerPixel int    `json:"samplesPerPixel"`
	MaxDepth        int    `json:"maxDepth"`
	Primitives      int    `json:"primitives"`
}

// NewServer creates a server listening on addr, e.g. ":8080"
func NewServer(addr string) *Server {
	s := &Server{addr: addr, echo: echo.New()}
	s.echo.HideBanner = true
	s.echo.HidePort = true

	s.echo.Use(corsMiddleware)
	s.echo.GET("/api/health", s.handleHealth)
	s.echo.GET("/api/scenes", s.handleScenes)
	s.echo.GET("/api/scene-config", s.handleSceneConfig)
	s.echo.GET("/api/render", s.handleRender)

	return s
}

// Handler exposes the router, mainly for tests
func (s *Server) Handler() http.Handler {
	return s.echo
}

// Start serves until the server is shut down
func (s *Server) Start() error {
	logger.Noticef("starting web server on http://localhost%s", s.addr)
	if err := s.echo.Start(s.addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("start server: %w", err)
	}
	return nil
}

// Shutdown stops accepting requests and waits for in-flight renders
func (s *Server) Shutdown(ctx context.Context) error {
	return s.echo.Shutdown(ctx)
}

func corsMiddleware(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		c.Response().Header().Set("Access-Control-Allow-Origin", "*")
		c.Response().Header().Set("Access-Control-Allow-Methods", "GET")
		c.Response().Header().Set("Access-Control-Allow-Headers", "Content-Type, Accept")

		if c.Request().Method == http.MethodOptions {
			return c.NoContent(http.StatusOK)
		}

		return next(c)
	}
}

func (s *Server) handleHealth(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleScenes(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string][]string{"scenes": scene.Names()})
}

// handleSceneConfig returns the default configuration for a scene
func (s *Server) handleSceneConfig(c echo.Context) error {
	name := c.QueryParam("scene")
	if name == "" {
		name = "first"
	}

	sceneObj, err := scene.Create(name)
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
	}

	return c.JSON(http.StatusOK, SceneConfig{
		Scene:           name,
		Width:           sceneObj.SamplingConfig.Width,
		Height:          sceneObj.SamplingConfig.Height,
		SamplesPerPixel: sceneObj.SamplingConfig.SamplesPerPixel,
		MaxDepth:        sceneObj.SamplingConfig.MaxDepth,
		Primitives:      sceneObj.PrimitiveCount(),
	})
}

// handleRender renders a full frame and returns it as a PNG
func (s *Server) handleRender(c echo.Context) error {
	name := c.QueryParam("scene")
	if name == "" {
		name = "first"
	}

	sceneObj, err := scene.Create(name)
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
	}

	req, err := parseRenderRequest(c.QueryParams(), sceneObj)
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": fmt.Sprintf("invalid request: %v", err)})
	}

	r, err := renderer.New(sceneObj, renderer.Options{
		Width:           req.Width,
		Height:          req.Height,
		SamplesPerPixel: req.Samples,
		MaxDepth:        req.Depth,
		Seed:            req.Seed,
		Gamma:           req.Gamma,
	})
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
	}

	// Use request context to detect client disconnection
	frame, stats, err := r.Render(c.Request().Context())
	if err != nil {
		logger.Warningf("render %s failed: %v", name, err)
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": err.Error()})
	}
	logger.Infof("rendered %s: %d samples in %s", name, stats.TotalSamples, stats.Duration)

	var buf bytes.Buffer
	if err := frame.EncodePNG(&buf); err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": err.Error()})
	}

	c.Response().Header().Set("X-Render-Time", stats.Duration.String())
	return c.Blob(http.StatusOK, "image/png", buf.Bytes())
}

// parseRenderRequest reads render parameters, falling back to the scene's defaults
func parseRenderRequest(values url.Values, sceneObj *scene.Scene) (*RenderRequest, error) {
	req := &RenderRequest{Scene: sceneObj.Name}
	cfg := sceneObj.SamplingConfig

	var err error
	if req.Width, err = parseIntParam(values, "width", cfg.Width, 1, MaxDimension); err != nil {
		return nil, err
	}
	if req.Height, err = parseIntParam(values, "height", cfg.Height, 1, MaxDimension); err != nil {
		return nil, err
	}
	if req.Samples, err = parseIntParam(values, "spp", cfg.SamplesPerPixel, 1, MaxSamples); err != nil {
		return nil, err
	}
	if req.Depth, err = parseIntParam(values, "depth", cfg.MaxDepth, 0, MaxDepth); err != nil {
		return nil, err
	}

	if value := values.Get("seed"); value != "" {
		if req.Seed, err = strconv.ParseInt(value, 10, 64); err != nil {
			return nil, fmt.Errorf("invalid seed: %s", value)
		}
	}
	if value := values.Get("gamma"); value != "" {
		if req.Gamma, err = strconv.ParseBool(value); err != nil {
			return nil, fmt.Errorf("invalid gamma: %s", value)
		}
	}

	return req, nil
}

// parseIntParam parses an integer parameter from URL query with validation
func parseIntParam(values url.Values, key string, defaultValue, min, max int) (int, error) {
	if value := values.Get(key); value != "" {
		parsed, err := strconv.Atoi(value)
		if err != nil {
			return 0, fmt.Errorf("invalid %s: %s", key, value)
		}
		if parsed < min || parsed > max {
			return 0, fmt.Errorf("%s must be between %d and %d, got: %d", key, min, max, parsed)
		}
		return parsed, nil
	}
	return defaultValue, nil
}
