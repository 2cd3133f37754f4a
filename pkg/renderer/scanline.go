package renderer

import (
	"context"
	"time"

	"github.com/df07/go-scanline-raytracer/pkg/core"
	"github.com/df07/go-scanline-raytracer/pkg/log"
)

// RenderConfig controls how a frame is split across workers
type RenderConfig struct {
	Seed       int64 // Base seed; row y uses Seed+y
	NumWorkers int   // Number of parallel workers (0 = use CPU count)
}

// DefaultRenderConfig returns sensible default values
func DefaultRenderConfig() RenderConfig {
	return RenderConfig{
		Seed:       42,
		NumWorkers: 0,
	}
}

// RowUpdate is delivered for every finished scanline, strictly in top-to-bottom order
type RowUpdate struct {
	Row           int          // Image row, 0 at the top
	Colors        []core.Color // Output colors for the row
	RowsCompleted int          // Rows delivered so far, including this one
	TotalRows     int          // Rows in the frame
}

// RowCallback receives scanlines as they become available
type RowCallback func(RowUpdate)

// ScanlineRenderer renders a frame one scanline per task on a worker pool
type ScanlineRenderer struct {
	raytracer *Raytracer
	config    RenderConfig
	logger    log.Logger
}

// NewScanlineRenderer creates a scanline renderer for a validated raytracer
func NewScanlineRenderer(raytracer *Raytracer, config RenderConfig, logger log.Logger) *ScanlineRenderer {
	if logger == nil {
		logger = log.Discard()
	}
	return &ScanlineRenderer{
		raytracer: raytracer,
		config:    config,
		logger:    logger,
	}
}

// Render traces every pixel of the frame. onRow may be nil.
// When ctx is cancelled the partial frame is discarded and ctx.Err() is returned.
func (sr *ScanlineRenderer) Render(ctx context.Context, onRow RowCallback) (*Frame, RenderStats, error) {
	rt := sr.raytracer
	height := rt.Height()

	workerPool := NewWorkerPool(rt, sr.config.NumWorkers)
	stats := newRenderStats(rt, workerPool.GetNumWorkers())

	sr.logger.Infof("Rendering %dx%d at %d samples per pixel, max depth %d, using %d workers",
		rt.Width(), height, stats.SamplesPerPixel, stats.MaxDepth, workerPool.GetNumWorkers())

	startTime := time.Now()
	workerPool.Start(ctx)
	defer workerPool.Stop()

	for y := 0; y < height; y++ {
		workerPool.SubmitTask(RowTask{Row: y, Seed: sr.config.Seed + int64(y)})
	}

	frame := NewFrame(rt.Width(), height)

	// Rows finish in any order; hold them back until every row above has been delivered
	pending := make(map[int]RowResult)
	nextRow := 0

	for i := 0; i < height; i++ {
		result, ok := workerPool.GetResult()
		if !ok {
			return nil, stats, ErrPoolClosed
		}
		if result.Error != nil {
			sr.logger.Warningf("Render abandoned: %v", result.Error)
			return nil, stats, result.Error
		}

		stats.addRow(result)
		pending[result.Row] = result

		for {
			ready, found := pending[nextRow]
			if !found {
				break
			}
			delete(pending, nextRow)

			frame.SetRow(ready.Row, ready.Colors)
			nextRow++

			sr.logger.Debugf("Scanlines remaining: %d", height-nextRow)
			if onRow != nil {
				onRow(RowUpdate{
					Row:           ready.Row,
					Colors:        ready.Colors,
					RowsCompleted: nextRow,
					TotalRows:     height,
				})
			}
		}
	}

	stats.RenderTime = time.Since(startTime)
	sr.logger.Infof("Render completed in %v (%.0f samples/s)", stats.RenderTime, stats.SamplesPerSecond())

	return frame, stats, nil
}
