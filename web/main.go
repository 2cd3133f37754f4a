package main

import (
	"fmt"
	"os"

	"github.com/df07/go-scanline-raytracer/pkg/log"
	"github.com/df07/go-scanline-raytracer/web/server"
	"github.com/urfave/cli"
)

var logger = log.New("web")

func main() {
	app := cli.NewApp()
	app.Name = "raytracer-web"
	app.Usage = "serve the scanline raytracer preview over HTTP"
	app.Flags = []cli.Flag{
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
		cli.BoolFlag{
			Name:  "v",
			Usage: "enable verbose logging",
		},
	}
	app.Action = func(ctx *cli.Context) error {
		if ctx.Bool("v") {
			log.SetLevel(log.Info)
		}

		port := ctx.Int("port")
		logger.Noticef("Visit http://localhost:%d to start rendering", port)

		if err := server.NewServer(port, ctx.String("scenes")).Start(); err != nil {
			return cli.NewExitError(fmt.Sprintf("error starting server: %v", err), 1)
		}
		return nil
	}

	if err := app.Run(os.Args); err != nil {
		os.Exit(1)
	}
}
