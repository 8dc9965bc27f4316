package simulation

import (
	"context"
	"errors"
	"log"
	"sync"
	"sync/atomic"

	"golang.org/x/sync/errgroup"

	"github.com/KirkDiggler/dnd-dpr-engine/internal/dice"
	"github.com/KirkDiggler/dnd-dpr-engine/internal/domain/combat"
	dnderr "github.com/KirkDiggler/dnd-dpr-engine/internal/errors"
)

// Run executes a simulation synchronously.
func (s *service) Run(ctx context.Context, input *RunInput) (*combat.MonteCarloResult, error) {
	scenario, err := s.prepare(input)
	if err != nil {
		return nil, err
	}
	return s.execute(ctx, scenario, input, nil)
}

// Submit starts a simulation in the background. The job owns a context
// derived from ctx, so canceling either stops it.
func (s *service) Submit(ctx context.Context, input *RunInput) (*Job, error) {
	scenario, err := s.prepare(input)
	if err != nil {
		return nil, err
	}

	jobCtx, cancel := context.WithCancel(ctx)
	results := make(chan *combat.MonteCarloResult, 1)
	progress := make(chan Progress, 1)

	job := &Job{
		ID:       s.uuidGenerator.New(),
		Results:  results,
		Progress: progress,
		cancel:   cancel,
	}

	go func() {
		defer cancel()

		result, runErr := s.execute(jobCtx, scenario, input, progress)
		if runErr == nil {
			results <- result
		} else if !errors.Is(runErr, context.Canceled) {
			log.Printf("simulation: job %s failed: %v", job.ID, runErr)
		}
		close(results)
		close(progress)
	}()

	return job, nil
}

// prepare validates the request and resolves the scenario. Strictness lives
// here: a request that cannot be simulated exactly as asked is rejected, not
// patched up.
func (s *service) prepare(input *RunInput) (*combat.Scenario, error) {
	if input == nil {
		return nil, dnderr.InvalidArgument("input is required")
	}
	if input.Iterations <= 0 {
		return nil, dnderr.InvalidField("iterations", input.Iterations, "must be positive")
	}
	if input.Iterations > s.maxIterations {
		return nil, dnderr.InvalidField("iterations", input.Iterations, "exceeds the iteration limit")
	}
	return combat.ResolveScenario(input.Build, input.Target, input.Tactics)
}

// execute partitions the trials into batches across a worker pool. Batch b
// always rolls the stream seeded by NewBatchPRNG(seed, b) and writes into
// its own sample segment, so the outcome is a pure function of (seed,
// iterations, scenario) no matter how the batches are scheduled.
func (s *service) execute(ctx context.Context, scenario *combat.Scenario, input *RunInput, progressCh chan Progress) (*combat.MonteCarloResult, error) {
	iterations := input.Iterations
	numBatches := (iterations + s.batchSize - 1) / s.batchSize

	samples := make([]float64, iterations)
	tallies := make([]batchTally, numBatches)

	reporter := &progressReporter{
		total:      iterations,
		every:      progressCadence(iterations),
		onProgress: input.OnProgress,
		channel:    progressCh,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.workers)

	for b := 0; b < numBatches; b++ {
		b := b
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}

			prng := dice.NewBatchPRNG(input.Seed, b)
			tally := &tallies[b]
			tally.init(scenario.Rounds)

			start := b * s.batchSize
			end := start + s.batchSize
			if end > iterations {
				end = iterations
			}

			for i := start; i < end; i++ {
				samples[i] = runTrial(scenario, input.Target, prng, tally)
				reporter.advance()
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	reporter.finish()

	return aggregate(samples, tallies, scenario, input.Seed), nil
}

func progressCadence(iterations int) int {
	cadence := iterations / progressUpdates
	if cadence < 1 {
		cadence = 1
	}
	return cadence
}

// progressReporter fans completion counts out to the optional callback and
// the optional channel. The channel send never blocks: a stale snapshot is
// dropped to make room for the fresh one.
type progressReporter struct {
	total      int
	every      int
	completed  atomic.Int64
	mu         sync.Mutex
	onProgress func(completed, total int)
	channel    chan Progress
}

func (r *progressReporter) advance() {
	done := int(r.completed.Add(1))
	if done%r.every == 0 {
		r.emit(done)
	}
}

func (r *progressReporter) finish() {
	r.emit(int(r.completed.Load()))
}

func (r *progressReporter) emit(done int) {
	if r.onProgress != nil {
		r.mu.Lock()
		r.onProgress(done, r.total)
		r.mu.Unlock()
	}
	if r.channel == nil {
		return
	}
	snapshot := Progress{Completed: done, Total: r.total}
	select {
	case r.channel <- snapshot:
	default:
		select {
		case <-r.channel:
		default:
		}
		select {
		case r.channel <- snapshot:
		default:
		}
	}
}
