package renderer

import (
	"fmt"
	"io"
	"time"

	"github.com/df07/go-pathtracer/pkg/geometry"
	"github.com/olekukonko/tablewriter"
)

// RenderStats contains statistics about the rendering process
type RenderStats struct {
	Width        int
	Height       int
	TotalPixels  int // Total number of pixels rendered
	TotalSamples int // Total number of samples taken
	Workers      int
	Primitives   int
	BVH          geometry.BVHStats
	Duration     time.Duration
}

// AverageSamples returns the mean samples per rendered pixel
func (s RenderStats) AverageSamples() float64 {
	if s.TotalPixels == 0 {
		return 0
	}
	return float64(s.TotalSamples) / float64(s.TotalPixels)
}

// SamplesPerSecond returns the sampling throughput
func (s RenderStats) SamplesPerSecond() float64 {
	if s.Duration <= 0 {
		return 0
	}
	return float64(s.TotalSamples) / s.Duration.Seconds()
}

// WriteTable prints the statistics as a two-column table
func (s RenderStats) WriteTable(w io.Writer) {
	table := tablewriter.NewWriter(w)
	table.SetAutoFormatHeaders(false)
	table.SetAutoWrapText(false)
	table.SetHeader([]string{"Metric", "Value"})

	table.Append([]string{"Resolution", fmt.Sprintf("%dx%d", s.Width, s.Height)})
	table.Append([]string{"Pixels", fmt.Sprintf("%d", s.TotalPixels)})
	table.Append([]string{"Samples", fmt.Sprintf("%d", s.TotalSamples)})
	table.Append([]string{"Samples / pixel", fmt.Sprintf("%.1f", s.AverageSamples())})
	table.Append([]string{"Workers", fmt.Sprintf("%d", s.Workers)})
	table.Append([]string{"Primitives", fmt.Sprintf("%d", s.Primitives)})
	table.Append([]string{"BVH nodes", fmt.Sprintf("%d (%d leaves)", s.BVH.TotalNodes, s.BVH.LeafNodes)})
	table.Append([]string{"BVH depth", fmt.Sprintf("max %d, avg %.1f", s.BVH.MaxDepth, s.BVH.AvgDepth)})
	table.SetFooter([]string{"Render time", s.Duration.String()})

	table.Render()
}
