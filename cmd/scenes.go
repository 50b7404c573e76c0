package cmd

import (
	"bytes"
	"fmt"

	"github.com/df07/go-pathtracer/pkg/scene"
	"github.com/olekukonko/tablewriter"
	"github.com/urfave/cli"
)

// ListScenes prints the built-in scenes with their default settings.
func ListScenes(ctx *cli.Context) error {
	if err := setupLogging(ctx); err != nil {
		return err
	}

	var buf bytes.Buffer
	table := tablewriter.NewWriter(&buf)
	table.SetAutoFormatHeaders(false)
	table.SetAutoWrapText(false)
	table.SetHeader([]string{"Scene", "Objects", "Resolution", "SPP", "Depth"})

	for _, name := range scene.Names() {
		s, err := scene.Create(name)
		if err != nil {
			return err
		}
		cfg := s.SamplingConfig
		table.Append([]string{
			name,
			fmt.Sprintf("%d", s.PrimitiveCount()),
			fmt.Sprintf("%dx%d", cfg.Width, cfg.Height),
			fmt.Sprintf("%d", cfg.SamplesPerPixel),
			fmt.Sprintf("%d", cfg.MaxDepth),
		})
	}

	table.Render()
	fmt.Fprint(ctx.App.Writer, buf.String())
	return nil
}
