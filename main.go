package main

import (
	"fmt"
	"os"

	"github.com/df07/go-pathtracer/cmd"
	"github.com/urfave/cli"
)

func newApp() *cli.App {
	cli.VersionFlag = cli.BoolFlag{
		Name:  "version",
		Usage: "print only the version",
	}

	app := cli.NewApp()
	app.Name = "pathtracer"
	app.Usage = "render sphere scenes using Monte Carlo path tracing"
	app.Version = "0.1.0"
	app.Flags = []cli.Flag{
		cli.BoolFlag{
			Name:  "v",
			Usage: "enable verbose logging",
		},
		cli.BoolFlag{
			Name:  "vv",
			Usage: "enable even more verbose logging",
		},
		cli.StringFlag{
			Name:  "log-level",
			Usage: "log level: debug, info, notice, warning or error (overrides -v/-vv)",
		},
	}
	app.Commands = []cli.Command{
		{
			Name:  "render",
			Usage: "render a single frame to a PNG file",
			Description: `
Render a built-in scene, or a JSON scene file, with a recursive path tracer.
Image size, samples per pixel and depth default to the scene's recommended
settings; flags that are set explicitly override them.`,
			Flags: []cli.Flag{
				cli.StringFlag{
					Name:  "scene",
					Value: "first",
					Usage: "built-in scene name (see the scenes command)",
				},
				cli.StringFlag{
					Name:  "scene-file",
					Usage: "load the scene from a JSON file instead",
				},
				cli.IntFlag{
					Name:  "width",
					Value: 400,
					Usage: "frame width",
				},
				cli.IntFlag{
					Name:  "height",
					Value: 300,
					Usage: "frame height",
				},
				cli.IntFlag{
					Name:  "spp",
					Value: 100,
					Usage: "samples per pixel",
				},
				cli.IntFlag{
					Name:  "depth",
					Value: 10,
					Usage: "maximum number of scattering events per path",
				},
				cli.Int64Flag{
					Name:  "seed",
					Value: 42,
					Usage: "base random seed",
				},
				cli.IntFlag{
					Name:  "workers",
					Value: 0,
					Usage: "render workers, 0 for one per logical core",
				},
				cli.BoolFlag{
					Name:  "gamma",
					Usage: "apply gamma 2 correction to the output",
				},
				cli.BoolFlag{
					Name:  "iterative",
					Usage: "use the iterative integrator instead of the recursive one",
				},
				cli.StringFlag{
					Name:  "out, o",
					Value: "render.png",
					Usage: "image filename for the rendered frame",
				},
			},
			Action: cmd.RenderFrame,
		},
		{
			Name:   "scenes",
			Usage:  "list built-in scenes",
			Action: cmd.ListScenes,
		},
		{
			Name:  "serve",
			Usage: "run the HTTP preview server",
			Flags: []cli.Flag{
				cli.StringFlag{
					Name:  "addr",
					Value: ":8080",
					Usage: "listen address",
				},
			},
			Action: cmd.Serve,
		},
	}

	return app
}

func main() {
	if err := newApp().Run(os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}
