package build

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"sync"
	"time"

	"github.com/dgallion1/docnav/internal/config"
	"github.com/dgallion1/docnav/internal/notify"
)

// ErrRootNotFound reports a rebuild request naming a root the service
// does not manage.
var ErrRootNotFound = errors.New("root not found")

// ErrQueueFull reports a rebuild queue at capacity.
var ErrQueueFull = errors.New("job queue is full")

// Orchestrator manages the rebuild pipeline in serve mode: it queues
// rebuild jobs, runs them on a fixed worker pool, and keeps the latest
// result per root for the API to serve.
type Orchestrator struct {
	jobs    *JobStore
	queue   chan *Job
	runner  *Runner
	roots   []Root
	webhook *notify.Webhook
	log     *slog.Logger
	cfg     config.Config
	stats   *Stats

	mu      sync.RWMutex
	results map[string]*Result

	cancel context.CancelFunc
	wg     sync.WaitGroup
}

// NewOrchestrator creates the pipeline; call Start to launch it.
func NewOrchestrator(cfg config.Config, roots []Root, runner *Runner, webhook *notify.Webhook, log *slog.Logger) *Orchestrator {
	return &Orchestrator{
		jobs:    NewJobStore(cfg.JobTTL),
		queue:   make(chan *Job, cfg.MaxQueueSize),
		runner:  runner,
		roots:   roots,
		webhook: webhook,
		log:     log,
		cfg:     cfg,
		stats:   NewStats(time.Hour),
		results: make(map[string]*Result),
	}
}

// Start launches worker goroutines.
func (o *Orchestrator) Start(ctx context.Context) {
	workerCtx, cancel := context.WithCancel(ctx)
	o.cancel = cancel

	for i := 0; i < o.cfg.WorkerCount; i++ {
		o.wg.Add(1)
		go func() {
			defer o.wg.Done()
			for {
				select {
				case <-workerCtx.Done():
					return
				case job, ok := <-o.queue:
					if !ok {
						return
					}
					o.process(workerCtx, job)
				}
			}
		}()
	}

	// Start job store cleanup.
	o.wg.Add(1)
	go func() {
		defer o.wg.Done()
		ticker := time.NewTicker(5 * time.Minute)
		defer ticker.Stop()
		for {
			select {
			case <-workerCtx.Done():
				return
			case <-ticker.C:
				o.jobs.Cleanup()
			}
		}
	}()
}

// Stop gracefully shuts down the pipeline.
func (o *Orchestrator) Stop() {
	if o.cancel != nil {
		o.cancel()
	}
	close(o.queue)
	o.wg.Wait()
}

// Submit queues a rebuild of the named roots; nil or empty means every
// managed root. Unknown keys are rejected before a job is created.
func (o *Orchestrator) Submit(rootKeys []string) (*Job, error) {
	if len(rootKeys) == 0 {
		for _, r := range o.roots {
			rootKeys = append(rootKeys, r.Key)
		}
	} else {
		for _, key := range rootKeys {
			if _, ok := o.lookupRoot(key); !ok {
				return nil, fmt.Errorf("%w: %s", ErrRootNotFound, key)
			}
		}
	}

	job := NewJob(rootKeys)
	o.jobs.Put(job)
	select {
	case o.queue <- job:
		return job, nil
	default:
		job.SetStatus(StatusFailed, "queue_full")
		return nil, fmt.Errorf("%w (%d)", ErrQueueFull, o.cfg.MaxQueueSize)
	}
}

func (o *Orchestrator) lookupRoot(key string) (Root, bool) {
	for _, r := range o.roots {
		if r.Key == key {
			return r, true
		}
	}
	return Root{}, false
}

func (o *Orchestrator) setResult(res *Result) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.results[res.Root] = res
}

// Result returns the latest build of one root, if any.
func (o *Orchestrator) Result(root string) (*Result, bool) {
	o.mu.RLock()
	defer o.mu.RUnlock()
	res, ok := o.results[root]
	return res, ok
}

// Results lists the latest build per root, ordered by root key.
func (o *Orchestrator) Results() []*Result {
	o.mu.RLock()
	defer o.mu.RUnlock()
	out := make([]*Result, 0, len(o.results))
	for _, res := range o.results {
		out = append(out, res)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Root < out[j].Root })
	return out
}

// Roots lists the managed roots.
func (o *Orchestrator) Roots() []Root {
	out := make([]Root, len(o.roots))
	copy(out, o.roots)
	return out
}

// GetJob returns a job by ID.
func (o *Orchestrator) GetJob(id string) *Job {
	return o.jobs.Get(id)
}

// QueueDepth returns current queue depth.
func (o *Orchestrator) QueueDepth() int {
	return len(o.queue)
}

// StatsSnapshot returns build latency statistics for the last hour.
func (o *Orchestrator) StatsSnapshot() StatsSnapshot {
	return o.stats.Snapshot()
}
