package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"madmapper/strategy"
)

// app holds state shared by every command of one invocation.
type app struct {
	verbose  bool
	logger   *zap.Logger
	registry *strategy.Registry
}

func newRootCmd() *cobra.Command {
	a := &app{
		logger:   zap.NewNop(),
		registry: strategy.Builtins(),
	}

	root := &cobra.Command{
		Use:   "madmapper",
		Short: "Declarative tree transformations for JSON and YAML documents",
		Long: `madmapper restructures documents according to an instruction file.

Instructions map fields one to one, follow dotted paths, call named
strategies, and nest object, array and group operations to hydrate
flat rows into trees.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			config := zap.NewProductionConfig()
			if a.verbose {
				config.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
			}

			logger, err := config.Build()
			if err != nil {
				return fmt.Errorf("failed to initialize logger: %w", err)
			}

			a.logger = logger

			return nil
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			_ = a.logger.Sync()
		},
	}

	root.PersistentFlags().BoolVarP(&a.verbose, "verbose", "v", false, "enable debug logging")

	root.AddCommand(
		newMapCmd(a),
		newCheckCmd(a),
		newStrategiesCmd(a),
	)

	return root
}
