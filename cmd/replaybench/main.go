package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/cartridge/replaybuf/internal/bench"
	"github.com/cartridge/replaybuf/internal/config"
)

var cfg *config.Config

var rootCmd = &cobra.Command{
	Use:   "replaybench",
	Short: "Experience replay buffer benchmark",
	Long: `Drives an experience replay buffer with a synthetic workload.

Transitions are pushed continuously while batches are sampled with the
selected strategy (uniform, flat prioritized, or sum-tree prioritized) and
priorities are rewritten from fabricated TD errors, mirroring the access
pattern of a DQN training loop.`,
	RunE:          runBench,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	cfg = config.Default()

	// Buffer settings
	rootCmd.Flags().IntVar(&cfg.Capacity, "capacity", cfg.Capacity, "Buffer capacity in transitions")
	rootCmd.Flags().IntVar(&cfg.StateSize, "state-size", cfg.StateSize, "State payload size in bytes")
	rootCmd.Flags().StringVar(&cfg.Strategy, "strategy", cfg.Strategy, "Sampling strategy (uniform, flat, tree)")

	// Prioritization settings
	rootCmd.Flags().Float64Var(&cfg.Alpha, "alpha", cfg.Alpha, "Priority exponent")
	rootCmd.Flags().Float64Var(&cfg.Beta, "beta", cfg.Beta, "Importance-sampling exponent")

	// Workload settings
	rootCmd.Flags().IntVar(&cfg.BatchSize, "batch-size", cfg.BatchSize, "Sample batch size")
	rootCmd.Flags().IntVar(&cfg.Steps, "steps", cfg.Steps, "Number of workload steps")
	rootCmd.Flags().Int64Var(&cfg.Seed, "seed", cfg.Seed, "RNG seed (0 seeds from the clock)")

	// Logging
	rootCmd.Flags().StringVar(&cfg.LogLevel, "log-level", cfg.LogLevel, "Log level (debug, info, warn, error)")

	// Bind flags to viper for environment variable support
	viper.BindPFlags(rootCmd.Flags())
	viper.SetEnvPrefix("REPLAYBUF")
	viper.AutomaticEnv()
}

func runBench(cmd *cobra.Command, args []string) error {
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	level, err := zerolog.ParseLevel(cfg.LogLevel)
	if err != nil {
		return fmt.Errorf("invalid log level %q: %w", cfg.LogLevel, err)
	}
	logger := zerolog.New(os.Stdout).Level(level).With().Timestamp().Logger()

	runner, err := bench.New(cfg, logger)
	if err != nil {
		return fmt.Errorf("failed to create runner: %w", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sigChan
		logger.Info().Msg("shutdown signal received, stopping benchmark")
		cancel()
	}()

	if err := runner.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		return fmt.Errorf("benchmark failed: %w", err)
	}
	return nil
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
