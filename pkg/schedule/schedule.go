// Package schedule runs background jobs on fixed intervals.
//
//	schedule.Every(time.Minute).Name("cache:warm").Run(warmCache)
//	schedule.Start(ctx)
package schedule

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/plantnet-dev/plantnet/pkg/logger"
)

type Task func()

type entry struct {
	id       string
	interval time.Duration
	task     Task
	lastRun  time.Time
	running  bool // overlap guard
	mu       sync.Mutex
}

// Job is the builder for one entry before registration.
type Job struct {
	e *entry
}

var (
	regMu   sync.Mutex
	entries []*entry
)

// Every starts a job that fires once per interval. The first run happens on
// the tick after Start.
func Every(interval time.Duration) *Job {
	return &Job{e: &entry{interval: interval}}
}

// Name gives the job an identifier for logging.
func (j *Job) Name(id string) *Job {
	j.e.id = id
	return j
}

// Run registers the job. Overlapping runs are always skipped.
func (j *Job) Run(fn Task) {
	j.e.task = fn
	if j.e.id == "" {
		j.e.id = fmt.Sprintf("job-%d", len(entries)+1)
	}
	regMu.Lock()
	entries = append(entries, j.e)
	regMu.Unlock()
}

// Start begins dispatching registered jobs until ctx is cancelled.
func Start(ctx context.Context) {
	go run(ctx)
}

func run(ctx context.Context) {
	ticker := time.NewTicker(time.Second)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case now := <-ticker.C:
			regMu.Lock()
			current := make([]*entry, len(entries))
			copy(current, entries)
			regMu.Unlock()

			for _, e := range current {
				if e.lastRun.IsZero() || now.Sub(e.lastRun) >= e.interval {
					dispatch(e)
				}
			}
		}
	}
}

func dispatch(e *entry) {
	e.mu.Lock()
	if e.running {
		e.mu.Unlock()
		logger.Warn("schedule: skipping overlapping run", "job", e.id)
		return
	}
	e.running = true
	e.lastRun = time.Now()
	e.mu.Unlock()

	go func() {
		defer func() {
			e.mu.Lock()
			e.running = false
			e.mu.Unlock()
			if r := recover(); r != nil {
				logger.Error("schedule: job panicked", "job", e.id, "panic", r)
			}
		}()
		e.task()
	}()
}

// List reports registered jobs as "id [interval]" strings.
func List() []string {
	regMu.Lock()
	defer regMu.Unlock()
	out := make([]string, 0, len(entries))
	for _, e := range entries {
		out = append(out, fmt.Sprintf("%s  [%s]", e.id, e.interval))
	}
	return out
}
