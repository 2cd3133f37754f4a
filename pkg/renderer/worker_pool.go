package renderer

import (
	"context"
	"runtime"
	"sync"
	"time"

	"github.com/df07/go-scanline-raytracer/pkg/core"
)

// RowTask represents a scanline rendering task for the worker pool
type RowTask struct {
	Row  int   // Image row, 0 at the top
	Seed int64 // Seed for the task-private sampler
}

// RowResult contains the result from rendering a scanline
type RowResult struct {
	Row      int
	Colors   []core.Color
	WorkerID int
	Duration time.Duration
	Error    error
}

// WorkerPool manages parallel scanline rendering
type WorkerPool struct {
	taskQueue   chan RowTask
	resultQueue chan RowResult
	workers     []*Worker
	numWorkers  int
	wg          sync.WaitGroup
}

// Worker handles individual scanline rendering tasks
type Worker struct {
	ID          int
	raytracer   *Raytracer
	taskQueue   chan RowTask
	resultQueue chan RowResult
}

// NewWorkerPool creates a worker pool with the specified number of workers.
// All workers share the raytracer, which is read-only while rendering.
func NewWorkerPool(raytracer *Raytracer, numWorkers int) *WorkerPool {
	if numWorkers <= 0 {
		numWorkers = runtime.NumCPU()
	}

	// Every row fits in the queues so neither side ever blocks on the other
	rows := raytracer.Height()

	wp := &WorkerPool{
		taskQueue:   make(chan RowTask, rows),
		resultQueue: make(chan RowResult, rows),
		numWorkers:  numWorkers,
	}

	for i := 0; i < numWorkers; i++ {
		wp.workers = append(wp.workers, &Worker{
			ID:          i,
			raytracer:   raytracer,
			taskQueue:   wp.taskQueue,
			resultQueue: wp.resultQueue,
		})
	}

	return wp
}

// Start begins all workers. Tasks picked up after ctx is done are skipped with ctx.Err().
func (wp *WorkerPool) Start(ctx context.Context) {
	for _, worker := range wp.workers {
		wp.wg.Add(1)
		go worker.run(ctx, &wp.wg)
	}
}

// Stop gracefully shuts down all workers
func (wp *WorkerPool) Stop() {
	close(wp.taskQueue) // No more tasks
	wp.wg.Wait()        // Wait for workers to finish
	close(wp.resultQueue)
}

// SubmitTask submits a row task to the worker pool
func (wp *WorkerPool) SubmitTask(task RowTask) {
	wp.taskQueue <- task
}

// GetResult retrieves a completed row result
func (wp *WorkerPool) GetResult() (RowResult, bool) {
	result, ok := <-wp.resultQueue
	return result, ok
}

// GetNumWorkers returns the number of workers in the pool
func (wp *WorkerPool) GetNumWorkers() int {
	return wp.numWorkers
}

// run is the main worker loop
func (w *Worker) run(ctx context.Context, wg *sync.WaitGroup) {
	defer wg.Done()

	for task := range w.taskQueue {
		if err := ctx.Err(); err != nil {
			w.resultQueue <- RowResult{Row: task.Row, WorkerID: w.ID, Error: err}
			continue
		}

		start := time.Now()

		// Each row gets its own generator, so output does not depend on scheduling
		sampler := core.NewSeededSampler(task.Seed)
		colors := make([]core.Color, w.raytracer.Width())
		w.raytracer.RenderRow(task.Row, colors, sampler)

		w.resultQueue <- RowResult{
			Row:      task.Row,
			Colors:   colors,
			WorkerID: w.ID,
			Duration: time.Since(start),
		}
	}
}
