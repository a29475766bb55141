// Package bench drives the replay buffer with a synthetic workload, standing
// in for a training loop: it pushes random transitions, samples batches, and
// feeds fabricated TD errors back as priority updates.
package bench

import (
	"context"
	"fmt"
	"math/rand"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/cartridge/replaybuf/internal/config"
	"github.com/cartridge/replaybuf/internal/metrics"
	"github.com/cartridge/replaybuf/internal/replay"
)

// uniformStrategy adapts UniformSampler to the prioritized Sampler surface so
// the runner drives all three strategies through one path. Weights and
// indices stay nil and priority updates are no-ops.
type uniformStrategy struct {
	store   *replay.Store
	sampler *replay.UniformSampler
}

func (s *uniformStrategy) Push(transitions ...replay.Transition) {
	s.store.Push(transitions...)
}

func (s *uniformStrategy) Sample(batchSize int, beta float64) (*replay.PrioritizedBatch, error) {
	batch, err := s.sampler.Sample(batchSize)
	if err != nil {
		return nil, err
	}
	return &replay.PrioritizedBatch{Batch: *batch}, nil
}

func (s *uniformStrategy) UpdatePriorities(indices []int, tdErrors []float64) error {
	return nil
}

func (s *uniformStrategy) Len() int { return s.store.Len() }

// Runner owns one buffer and one synthetic workload over it.
type Runner struct {
	cfg     *config.Config
	sampler replay.Sampler
	metrics *metrics.Collector
	logger  zerolog.Logger
	rng     *rand.Rand
	runID   string

	stepCount int
}

// New builds a runner with the strategy named in the config.
func New(cfg *config.Config, logger zerolog.Logger) (*Runner, error) {
	sampler, err := buildSampler(cfg)
	if err != nil {
		return nil, err
	}

	seed := cfg.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	runID := uuid.New().String()
	runLogger := logger.With().Str("run_id", runID).Str("strategy", cfg.Strategy).Logger()

	return &Runner{
		cfg:     cfg,
		sampler: sampler,
		metrics: metrics.NewCollector(runLogger),
		logger:  runLogger,
		rng:     rand.New(rand.NewSource(seed)),
		runID:   runID,
	}, nil
}

func buildSampler(cfg *config.Config) (replay.Sampler, error) {
	switch cfg.Strategy {
	case config.StrategyUniform:
		store, err := replay.NewStore(cfg.Capacity)
		if err != nil {
			return nil, err
		}
		return &uniformStrategy{store: store, sampler: replay.NewUniformSampler(store)}, nil
	case config.StrategyFlat:
		store, err := replay.NewStore(cfg.Capacity)
		if err != nil {
			return nil, err
		}
		return replay.NewFlatPrioritySampler(store, cfg.Alpha), nil
	case config.StrategyTree:
		return replay.NewTreePrioritySampler(cfg.Capacity, cfg.Alpha)
	default:
		return nil, fmt.Errorf("unknown strategy %q", cfg.Strategy)
	}
}

// Run executes the workload until the configured step count is reached or the
// context is cancelled.
func (r *Runner) Run(ctx context.Context) error {
	r.logger.Info().
		Int("capacity", r.cfg.Capacity).
		Int("batch_size", r.cfg.BatchSize).
		Int("steps", r.cfg.Steps).
		Msg("benchmark starting")

	for r.stepCount = 0; r.stepCount < r.cfg.Steps; r.stepCount++ {
		select {
		case <-ctx.Done():
			r.logger.Info().Int("completed_steps", r.stepCount).Msg("benchmark cancelled")
			return ctx.Err()
		default:
		}

		if err := r.step(); err != nil {
			return fmt.Errorf("step %d failed: %w", r.stepCount, err)
		}

		if (r.stepCount+1)%1000 == 0 {
			r.logger.Info().
				Int("step", r.stepCount+1).
				Int("occupied", r.sampler.Len()).
				Msg("benchmark progress")
		}
	}

	r.metrics.TransitionsPushed(r.cfg.Steps, r.sampler.Len(), r.cfg.Capacity)
	r.logger.Info().Int("steps", r.cfg.Steps).Msg("benchmark finished")
	return nil
}

// step pushes one transition and, once warm-up is over, runs one
// sample-and-update cycle.
func (r *Runner) step() error {
	r.sampler.Push(r.randomTransition())

	if r.sampler.Len() < r.cfg.BatchSize {
		return nil
	}

	start := time.Now()
	batch, err := r.sampler.Sample(r.cfg.BatchSize, r.cfg.Beta)
	if err != nil {
		return err
	}
	r.metrics.BatchSampled(r.cfg.Strategy, batch.Len(), r.cfg.Beta, time.Since(start))

	if len(batch.Indices) == 0 {
		return nil
	}

	// fabricated TD errors stand in for the learning step
	tdErrors := make([]float64, len(batch.Indices))
	for i := range tdErrors {
		tdErrors[i] = r.rng.NormFloat64()
	}

	start = time.Now()
	if err := r.sampler.UpdatePriorities(batch.Indices, tdErrors); err != nil {
		return err
	}
	r.metrics.PrioritiesUpdated(len(tdErrors), time.Since(start))
	return nil
}

func (r *Runner) randomTransition() replay.Transition {
	state := make([]byte, r.cfg.StateSize)
	nextState := make([]byte, r.cfg.StateSize)
	r.rng.Read(state)
	r.rng.Read(nextState)

	return replay.Transition{
		State:     state,
		Action:    int64(r.rng.Intn(18)), // Atari-sized action set
		Reward:    float32(r.rng.NormFloat64()),
		NextState: nextState,
		Done:      r.rng.Float64() < 0.01,
	}
}
