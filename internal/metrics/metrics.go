package metrics

import (
	"time"

	"github.com/rs/zerolog"
)

// Collector emits structured metrics for buffer operations
type Collector struct {
	logger zerolog.Logger
}

func NewCollector(logger zerolog.Logger) *Collector {
	return &Collector{
		logger: logger.With().Str("component", "replay_metrics").Logger(),
	}
}

// Track push throughput
func (c *Collector) TransitionsPushed(count, occupied, capacity int) {
	c.logger.Info().
		Str("metric", "transitions_pushed").
		Int("count", count).
		Int("occupied", occupied).
		Int("capacity", capacity).
		Msg("Push metric")
}

// Track sampling latency
func (c *Collector) BatchSampled(strategy string, batchSize int, beta float64, duration time.Duration) {
	c.logger.Info().
		Str("metric", "batch_sampled").
		Str("strategy", strategy).
		Int("batch_size", batchSize).
		Float64("beta", beta).
		Dur("duration", duration).
		Msg("Sample metric")
}

// Track priority rewrites after a learning step
func (c *Collector) PrioritiesUpdated(count int, duration time.Duration) {
	c.logger.Info().
		Str("metric", "priorities_updated").
		Int("count", count).
		Dur("duration", duration).
		Msg("Priority update metric")
}
