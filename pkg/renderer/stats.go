package renderer

import (
	"image"
	"time"

	"github.com/df07/go-scanline-raytracer/pkg/core"
)

// WorkerStats records how much of the frame a single worker rendered
type WorkerStats struct {
	ID       int           // Worker identifier
	Rows     int           // Number of scanlines rendered
	BusyTime time.Duration // Time spent tracing
}

// RowPercent returns the share of the frame rendered by this worker
func (ws WorkerStats) RowPercent(totalRows int) float64 {
	if totalRows == 0 {
		return 0
	}
	return 100 * float64(ws.Rows) / float64(totalRows)
}

// RenderStats contains statistics about the rendering process
type RenderStats struct {
	Width           int           // Image width in pixels
	Height          int           // Image height in pixels
	SamplesPerPixel int           // Samples taken for every pixel
	MaxDepth        int           // Bounce limit used
	TotalSamples    int64         // Total number of camera rays traced
	RenderTime      time.Duration // Wall-clock time for the whole frame
	Workers         []WorkerStats // Per-worker breakdown, indexed by worker ID
}

// newRenderStats initializes statistics for a frame rendered by numWorkers workers
func newRenderStats(rt *Raytracer, numWorkers int) RenderStats {
	workers := make([]WorkerStats, numWorkers)
	for i := range workers {
		workers[i].ID = i
	}

	config := rt.Config()
	return RenderStats{
		Width:           rt.Width(),
		Height:          rt.Height(),
		SamplesPerPixel: config.SamplesPerPixel,
		MaxDepth:        config.MaxDepth,
		Workers:         workers,
	}
}

// addRow records a completed scanline
func (s *RenderStats) addRow(result RowResult) {
	s.TotalSamples += int64(len(result.Colors) * s.SamplesPerPixel)
	if result.WorkerID >= 0 && result.WorkerID < len(s.Workers) {
		s.Workers[result.WorkerID].Rows++
		s.Workers[result.WorkerID].BusyTime += result.Duration
	}
}

// SamplesPerSecond returns the camera ray throughput of the render
func (s RenderStats) SamplesPerSecond() float64 {
	if s.RenderTime <= 0 {
		return 0
	}
	return float64(s.TotalSamples) / s.RenderTime.Seconds()
}

// CalculateAverageLuminance returns the mean Rec. 709 luminance of an image, in [0, 1]
func CalculateAverageLuminance(img image.Image) float64 {
	bounds := img.Bounds()
	pixels := bounds.Dx() * bounds.Dy()
	if pixels == 0 {
		return 0
	}

	var total float64
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			r, g, b, _ := img.At(x, y).RGBA()
			total += core.NewColor(float64(r), float64(g), float64(b)).Divide(0xffff).Luminance()
		}
	}
	return total / float64(pixels)
}
