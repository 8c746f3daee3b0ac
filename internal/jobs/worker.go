package jobs

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/vecindia/condominio-api/pkg/logger"
)

// Job is a unit of background work. The context is the worker's own and
// is cancelled on Shutdown.
type Job func(ctx context.Context) error

const queueCapacity = 100

// Worker runs queued and scheduled jobs on a fixed pool of goroutines.
type Worker struct {
	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup
	queue  chan Job

	// bounds fire-and-forget goroutines from EnqueueAsync
	asyncSem chan struct{}

	mu    sync.RWMutex
	stats WorkerStats
}

// WorkerStats is a snapshot of the worker's counters.
type WorkerStats struct {
	ActiveJobs   int   `json:"active_jobs"`
	FinishedJobs int64 `json:"finished_jobs"`
	FailedJobs   int64 `json:"failed_jobs"`
	QueueLength  int   `json:"queue_length"`
}

// NewWorker starts n goroutines draining the job queue.
func NewWorker(n int) *Worker {
	ctx, cancel := context.WithCancel(context.Background())

	asyncLimit := n * 2
	if asyncLimit < 10 {
		asyncLimit = 10
	}

	w := &Worker{
		ctx:      ctx,
		cancel:   cancel,
		queue:    make(chan Job, queueCapacity),
		asyncSem: make(chan struct{}, asyncLimit),
	}
	for i := 0; i < n; i++ {
		w.wg.Add(1)
		go w.drain(i)
	}
	return w
}

// Enqueue hands a job to the pool. A full queue degrades to running the
// job inline so nothing is silently dropped.
func (w *Worker) Enqueue(job Job) {
	select {
	case w.queue <- job:
	default:
		logger.Warn("[Worker] queue full, running job inline")
		w.run("inline", job)
	}
}

// EnqueueAsync runs a job on its own goroutine, bounded by the async
// semaphore. Use it for fan-out work that must not block a request.
func (w *Worker) EnqueueAsync(job Job) {
	go func() {
		w.asyncSem <- struct{}{}
		defer func() { <-w.asyncSem }()

		w.wg.Add(1)
		defer w.wg.Done()

		w.run("async", job)
	}()
}

// ScheduleEvery runs a job at a fixed interval, first run after one
// interval has passed.
func (w *Worker) ScheduleEvery(interval time.Duration, job Job) {
	w.schedule(interval, job, false)
}

// ScheduleEveryImmediate is ScheduleEvery with an extra run at startup,
// for sweeps that must not wait a full interval after a restart.
func (w *Worker) ScheduleEveryImmediate(interval time.Duration, job Job) {
	w.schedule(interval, job, true)
}

func (w *Worker) schedule(interval time.Duration, job Job, immediate bool) {
	w.wg.Add(1)
	go func() {
		defer w.wg.Done()

		if immediate {
			w.run("scheduler", job)
		}

		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-w.ctx.Done():
				return
			case <-ticker.C:
				w.run("scheduler", job)
			}
		}
	}()
}

func (w *Worker) drain(id int) {
	defer w.wg.Done()
	for {
		select {
		case <-w.ctx.Done():
			return
		case job, ok := <-w.queue:
			if !ok {
				return
			}
			w.run(fmt.Sprintf("worker %d", id), job)
		}
	}
}

// run executes one job with panic containment and counter upkeep.
func (w *Worker) run(origin string, job Job) {
	w.mu.Lock()
	w.stats.ActiveJobs++
	w.mu.Unlock()

	start := time.Now()
	failed := false

	defer func() {
		if r := recover(); r != nil {
			logger.Error(fmt.Sprintf("[%s] job panic: %v", origin, r))
			failed = true
		}
		w.mu.Lock()
		w.stats.ActiveJobs--
		w.stats.FinishedJobs++
		if failed {
			w.stats.FailedJobs++
		}
		w.mu.Unlock()
	}()

	if err := job(w.ctx); err != nil {
		logger.Error(fmt.Sprintf("[%s] job error: %v", origin, err))
		failed = true
		return
	}
	logger.Debug(fmt.Sprintf("[%s] job finished in %v", origin, time.Since(start)))
}

// Shutdown cancels the context and waits for in-flight jobs to finish.
func (w *Worker) Shutdown() {
	w.cancel()
	close(w.queue)
	w.wg.Wait()
}

// Context exposes the worker's lifecycle context.
func (w *Worker) Context() context.Context {
	return w.ctx
}

// GetStats returns a point-in-time snapshot of the counters.
func (w *Worker) GetStats() WorkerStats {
	w.mu.RLock()
	defer w.mu.RUnlock()
	snapshot := w.stats
	snapshot.QueueLength = len(w.queue)
	return snapshot
}
