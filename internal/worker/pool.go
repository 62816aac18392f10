// Package worker provides bounded fan-out for scan-time duration probing.
package worker

import (
	"context"
	"log"
	"sync"
)

// Job is one probe: the track's index in the scan result and its local path.
type Job struct {
	Index int
	Path  string
}

// Pool runs duration probes across a fixed number of workers. Each worker
// writes only the index named by its job, so results need no locking.
type Pool struct {
	workers int
	probe   ProbeFunc
}

// NewPool creates a pool with the given worker count.
func NewPool(workers int) *Pool {
	if workers < 1 {
		workers = 1
	}
	return &Pool{workers: workers, probe: ProbeDurationFunc}
}

// Process probes every job and fills durations (milliseconds) at each job's
// index. It returns once all probes have settled; per-file failures are
// logged and leave the slot at zero.
func (p *Pool) Process(ctx context.Context, jobs []Job, durations []int) {
	if len(jobs) == 0 {
		return
	}

	queue := make(chan Job)
	var wg sync.WaitGroup

	for i := 0; i < p.workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for job := range queue {
				if err := ctx.Err(); err != nil {
					continue
				}
				d, err := p.probe(job.Path)
				if err != nil {
					log.Printf("WARN worker: duration probe failed for %s: %v", job.Path, err)
					continue
				}
				durations[job.Index] = int(d.Milliseconds())
			}
		}()
	}

	for _, job := range jobs {
		queue <- job
	}
	close(queue)
	wg.Wait()
}
