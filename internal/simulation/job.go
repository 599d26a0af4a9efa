package simulation

import (
	"context"
	"time"

	"github.com/osse101/FissureBot_Go/internal/metrics"
)

type jobResult struct {
	result *Result
	err    error
}

// simulationJob runs one sampler on a worker. done is buffered so a worker
// never blocks on a caller that already gave up.
type simulationJob struct {
	sampler  *Sampler
	plan     Plan
	queuedAt time.Time
	done     chan jobResult
}

func newSimulationJob(sampler *Sampler, plan Plan) *simulationJob {
	return &simulationJob{
		sampler:  sampler,
		plan:     plan,
		queuedAt: time.Now(),
		done:     make(chan jobResult, 1),
	}
}

// Process implements worker.Job. Errors go back to the caller, not the pool log.
func (j *simulationJob) Process(ctx context.Context) error {
	metrics.SimulationQueueWait.Observe(time.Since(j.queuedAt).Seconds())
	res, err := j.sampler.Simulate(j.plan)
	j.done <- jobResult{result: res, err: err}
	return nil
}
