package renderer

import (
	"context"
	"sync"

	"github.com/df07/go-weekend-raytracer/pkg/bitmap"
)

// ColumnTask represents a column range rendering task for the worker pool
type ColumnTask struct {
	Columns     ColumnRange
	Framebuffer *bitmap.Framebuffer // Shared frame; tasks own disjoint columns of it
}

// ColumnResult contains the result from rendering a column range
type ColumnResult struct {
	TaskID  int
	Samples int
	Error   error
}

// WorkerPool manages parallel column rendering
type WorkerPool struct {
	taskQueue   chan ColumnTask
	resultQueue chan ColumnResult
	workers     []*Worker
	numWorkers  int
	wg          sync.WaitGroup
}

// Worker handles individual column rendering tasks
type Worker struct {
	ID          int
	renderer    *ColumnRenderer
	taskQueue   chan ColumnTask
	resultQueue chan ColumnResult
}

// NewWorkerPool creates a worker pool with the specified number of workers.
// maxTasks sizes the queues so submitting a whole frame never blocks.
func NewWorkerPool(renderer *ColumnRenderer, numWorkers, maxTasks int) *WorkerPool {
	wp := &WorkerPool{
		taskQueue:   make(chan ColumnTask, maxTasks),
		resultQueue: make(chan ColumnResult, maxTasks),
		numWorkers:  numWorkers,
	}

	for i := 0; i < numWorkers; i++ {
		wp.workers = append(wp.workers, &Worker{
			ID:          i,
			renderer:    renderer,
			taskQueue:   wp.taskQueue,
			resultQueue: wp.resultQueue,
		})
	}

	return wp
}

// Start begins all workers
func (wp *WorkerPool) Start(ctx context.Context) {
	for _, worker := range wp.workers {
		wp.wg.Add(1)
		go worker.run(ctx, &wp.wg)
	}
}

// Stop closes the task queue and waits for every worker to exit
func (wp *WorkerPool) Stop() {
	close(wp.taskQueue)
	wp.wg.Wait()
	close(wp.resultQueue)
}

// SubmitTask submits a column task to the worker pool
func (wp *WorkerPool) SubmitTask(task ColumnTask) {
	wp.taskQueue <- task
}

// GetResult retrieves a completed column result
func (wp *WorkerPool) GetResult() (ColumnResult, bool) {
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
		samples, err := w.renderer.RenderColumns(ctx, task.Columns, task.Framebuffer)
		w.resultQueue <- ColumnResult{
			TaskID:  task.Columns.ID,
			Samples: samples,
			Error:   err,
		}
	}
}
