package cmd

import (
	"github.com/df07/go-scanline-raytracer/web/server"
	"github.com/urfave/cli"
)

// NewApp assembles the command line interface.
func NewApp() *cli.App {
	app := cli.NewApp()
	app.Name = "raytracer"
	app.Usage = "render scenes one scanline at a time"
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
	}
	app.Commands = []cli.Command{
		{
			Name:  "render",
			Usage: "render a single frame",
			Description: `
Render a built-in scene or a JSON scene file and write the frame to disk.
The output format is picked from the file extension (png, bmp, tif, tiff).`,
			Flags: []cli.Flag{
				cli.StringFlag{
					Name:  "scene, s",
					Value: "default",
					Usage: "built-in scene name",
				},
				cli.StringFlag{
					Name:  "scene-file",
					Usage: "JSON scene file; overrides --scene",
				},
				cli.IntFlag{
					Name:  "width",
					Usage: "frame width (0 keeps the scene default)",
				},
				cli.IntFlag{
					Name:  "height",
					Usage: "frame height (0 follows the camera aspect ratio)",
				},
				cli.IntFlag{
					Name:   "spp",
					Usage:  "samples per pixel (0 keeps the scene default)",
					EnvVar: "RAYTRACER_SPP",
				},
				cli.IntFlag{
					Name:  "depth",
					Value: -1,
					Usage: "maximum ray bounces (-1 keeps the scene default)",
				},
				cli.Int64Flag{
					Name:  "seed",
					Value: 42,
					Usage: "base random seed; row y is seeded with seed+y",
				},
				cli.IntFlag{
					Name:   "workers",
					Usage:  "number of render workers (0 uses every CPU)",
					EnvVar: "RAYTRACER_WORKERS",
				},
				cli.StringFlag{
					Name:  "out, o",
					Usage: "image filename (defaults to output/<scene>/render_<timestamp>.png)",
				},
				cli.BoolFlag{
					Name:  "annotate",
					Usage: "stamp the render settings onto the image",
				},
			},
			Action: RenderFrame,
		},
		{
			Name:  "scenes",
			Usage: "list the available scenes",
			Flags: []cli.Flag{
				cli.StringFlag{
					Name:  "dir",
					Value: "scenes",
					Usage: "directory holding JSON scene files",
				},
			},
			Action: ListScenes,
		},
		{
			Name:  "serve",
			Usage: "serve the web preview",
			Flags: []cli.Flag{
				cli.IntFlag{
					Name:   "port, p",
					Value:  8080,
					Usage:  "port to serve on",
					EnvVar: "RAYTRACER_PORT",
				},
				cli.StringFlag{
					Name:  "scenes",
					Value: "scenes",
					Usage: "directory holding JSON scene files",
				},
			},
			Action: Serve,
		},
	}

	return app
}

// Serve starts the web preview server.
func Serve(ctx *cli.Context) error {
	setupLogging(ctx)

	port := ctx.Int("port")
	logger.Noticef("visit http://localhost:%d to start rendering", port)
	return server.NewServer(port, ctx.String("scenes")).Start()
}
