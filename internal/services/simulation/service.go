package simulation

//go:generate mockgen -destination=mock/mock_service.go -package=mocksimulation -source=service.go

import (
	"context"

	"github.com/KirkDiggler/dnd-dpr-engine/internal/domain/combat"
	"github.com/KirkDiggler/dnd-dpr-engine/internal/uuid"
)

const (
	defaultWorkers       = 4
	defaultBatchSize     = 1000
	defaultMaxIterations = 1_000_000

	// Progress is reported roughly this many times over a run.
	progressUpdates = 100
)

// Service runs Monte Carlo damage simulations
type Service interface {
	// Run executes a simulation synchronously and returns the aggregated
	// result. Identical seed, iterations, and records reproduce the result
	// bit for bit regardless of worker count.
	Run(ctx context.Context, input *RunInput) (*combat.MonteCarloResult, error)

	// Submit starts a simulation in the background and returns a job
	// handle. Input validation happens before the job launches, so an
	// error here is always a bad request, never a lost job.
	Submit(ctx context.Context, input *RunInput) (*Job, error)
}

// RunInput carries one simulation request. Seed is part of the request
// contract: zero is an ordinary seed, not an absent one.
type RunInput struct {
	Build      *combat.Build
	Target     *combat.Target
	Tactics    *combat.Tactics
	Iterations int
	Seed       int64

	// OnProgress, when set, receives completion counts during Run. It may
	// be called from multiple worker goroutines. Ignored by Submit, which
	// reports on the job's Progress channel instead.
	OnProgress func(completed, total int)
}

// Progress is a point-in-time completion snapshot.
type Progress struct {
	Completed int
	Total     int
}

// Job is a handle to a background simulation. Results delivers the single
// terminal result and closes; a canceled job closes Results without
// delivering anything. Progress delivers snapshots and closes when the run
// ends either way; a slow reader misses intermediate snapshots rather than
// blocking the run.
type Job struct {
	ID       string
	Results  <-chan *combat.MonteCarloResult
	Progress <-chan Progress

	cancel context.CancelFunc
}

// Cancel stops the job. Safe to call repeatedly and after completion.
func (j *Job) Cancel() {
	j.cancel()
}

type service struct {
	uuidGenerator uuid.Generator
	workers       int
	batchSize     int
	maxIterations int
}

// ServiceConfig holds configuration for the service
type ServiceConfig struct {
	UUIDGenerator uuid.Generator // Optional - defaults to google/uuid
	Workers       int            // Parallel batch workers (default: 4)
	BatchSize     int            // Trials per batch between cancellation checks (default: 1000)
	MaxIterations int            // Upper bound on Iterations (default: 1000000)
}

// NewService creates a new simulation service
func NewService(cfg *ServiceConfig) Service {
	svc := &service{
		workers:       defaultWorkers,
		batchSize:     defaultBatchSize,
		maxIterations: defaultMaxIterations,
	}

	if cfg != nil {
		if cfg.Workers > 0 {
			svc.workers = cfg.Workers
		}
		if cfg.BatchSize > 0 {
			svc.batchSize = cfg.BatchSize
		}
		if cfg.MaxIterations > 0 {
			svc.maxIterations = cfg.MaxIterations
		}
	}

	if cfg != nil && cfg.UUIDGenerator != nil {
		svc.uuidGenerator = cfg.UUIDGenerator
	} else {
		svc.uuidGenerator = uuid.NewGoogleUUIDGenerator()
	}

	return svc
}
