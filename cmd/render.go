package cmd

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"os"
	"os/signal"
	"time"

	"github.com/df07/go-scanline-raytracer/pkg/loaders"
	"github.com/df07/go-scanline-raytracer/pkg/log"
	"github.com/df07/go-scanline-raytracer/pkg/output"
	"github.com/df07/go-scanline-raytracer/pkg/renderer"
	"github.com/df07/go-scanline-raytracer/pkg/scene"
	"github.com/olekukonko/tablewriter"
	"github.com/urfave/cli"
)

// Render a still frame.
func RenderFrame(ctx *cli.Context) error {
	setupLogging(ctx)

	sc, err := loadScene(ctx.String("scene"), ctx.String("scene-file"))
	if err != nil {
		return err
	}
	applyOverrides(sc, ctx.Int("width"), ctx.Int("height"), ctx.Int("spp"), ctx.Int("depth"))

	rt, err := sc.NewRaytracer()
	if err != nil {
		return err
	}

	renderCtx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	logger.Noticef("rendering scene %q", sc.Name)
	config := renderer.RenderConfig{Seed: ctx.Int64("seed"), NumWorkers: ctx.Int("workers")}
	frame, stats, err := renderer.NewScanlineRenderer(rt, config, logger).Render(renderCtx, progressLogger())
	if err != nil {
		return fmt.Errorf("rendering %q: %w", sc.Name, err)
	}

	displayFrameStats(stats)

	var img image.Image = frame.Image()
	if ctx.Bool("annotate") {
		img = output.Annotate(img, output.Caption{
			Scene:           sc.Name,
			SamplesPerPixel: stats.SamplesPerPixel,
			MaxDepth:        stats.MaxDepth,
			RenderTime:      stats.RenderTime,
		})
	}

	outFile := ctx.String("out")
	if outFile == "" {
		outFile = output.DefaultPath(sc.Name, time.Now())
	}

	start := time.Now()
	if err := output.Save(outFile, img); err != nil {
		return err
	}
	logger.Noticef("wrote frame to %s in %d ms", outFile, time.Since(start).Milliseconds())

	return nil
}

// loadScene builds a scene file when one is given and a built-in scene otherwise.
func loadScene(name, file string) (*scene.Scene, error) {
	if file != "" {
		return loaders.LoadSceneFile(file)
	}
	return scene.Create(name)
}

// applyOverrides replaces the scene defaults with any values given on the command line.
func applyOverrides(sc *scene.Scene, width, height, spp, depth int) {
	sc.Resize(width, height)
	if spp > 0 {
		sc.SamplingConfig.SamplesPerPixel = spp
	}
	if depth >= 0 {
		sc.SamplingConfig.MaxDepth = depth
	}
}

// progressLogger reports every tenth of the frame at Info level, or nothing when Info is filtered.
func progressLogger() renderer.RowCallback {
	if !log.Enabled(log.Info) {
		return nil
	}

	lastDecile := 0
	return func(update renderer.RowUpdate) {
		decile := 10 * update.RowsCompleted / update.TotalRows
		if decile > lastDecile {
			lastDecile = decile
			logger.Infof("%d%% of scanlines done", 10*decile)
		}
	}
}

func displayFrameStats(stats renderer.RenderStats) {
	logger.Noticef("frame statistics\n%s", frameStatsTable(stats))
}

func frameStatsTable(stats renderer.RenderStats) string {
	var buf bytes.Buffer
	table := tablewriter.NewWriter(&buf)
	table.SetAutoFormatHeaders(false)
	table.SetAutoWrapText(false)
	table.SetHeader([]string{"Worker", "Rows", "% of frame", "Busy time"})
	for _, worker := range stats.Workers {
		table.Append([]string{
			fmt.Sprintf("%d", worker.ID),
			fmt.Sprintf("%d", worker.Rows),
			fmt.Sprintf("%02.1f %%", worker.RowPercent(stats.Height)),
			worker.BusyTime.Round(time.Microsecond).String(),
		})
	}
	table.SetFooter([]string{
		fmt.Sprintf("%dx%d", stats.Width, stats.Height),
		fmt.Sprintf("%d spp", stats.SamplesPerPixel),
		"TOTAL",
		stats.RenderTime.Round(time.Microsecond).String(),
	})

	table.Render()
	return buf.String()
}
