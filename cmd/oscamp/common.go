package main

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/colorprofile"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"

	"github.com/mark3labs/oscamp/internal/apperr"
	"github.com/mark3labs/oscamp/internal/config"
	"github.com/mark3labs/oscamp/internal/exercise"
	"github.com/mark3labs/oscamp/internal/logger"
	"github.com/mark3labs/oscamp/internal/runner"
)

// workspace is what every exercise command needs: loaded config, the
// exercise registry and a runner for the configured test command.
type workspace struct {
	cfg      *config.Config
	registry *exercise.Registry
	runner   *runner.CommandRunner
}

func loadWorkspace() (*workspace, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	if err := logger.Configure(cfg.LogLevel, cfg.LogFile); err != nil {
		return nil, fmt.Errorf("failed to configure logger: %w", err)
	}

	reg, err := exercise.Load(afero.NewOsFs(), cfg.ExercisesFile)
	if err != nil {
		return nil, err
	}

	return &workspace{
		cfg:      cfg,
		registry: reg,
		runner: runner.New(runner.Config{
			TestCommand:   cfg.TestCommand,
			QuietCommand:  cfg.QuietCommand,
			CrossTarget:   cfg.CrossTarget,
			CrossPackages: cfg.CrossPackages,
		}),
	}, nil
}

// find looks an exercise up by package or name.
func (w *workspace) find(name string) (exercise.Exercise, error) {
	ex, ok := w.registry.Find(name)
	if !ok {
		return exercise.Exercise{}, apperr.Errorf(apperr.ExerciseNotFound,
			"exercise not found: %s\n\nUse 'oscamp list' to see all exercises", name)
	}
	return ex, nil
}

// stdout wraps the command's output so colors are downsampled to what the
// terminal supports.
func stdout(cmd *cobra.Command) io.Writer {
	return colorprofile.NewWriter(cmd.OutOrStdout(), os.Environ())
}

func noArgs(cmd *cobra.Command, args []string) error {
	if err := cobra.NoArgs(cmd, args); err != nil {
		return apperr.New(apperr.Usage, cmd.Name(), err)
	}
	return nil
}

func exactArgs(n int) cobra.PositionalArgs {
	return func(cmd *cobra.Command, args []string) error {
		if err := cobra.ExactArgs(n)(cmd, args); err != nil {
			return apperr.New(apperr.Usage, cmd.Name(), fmt.Errorf("%w\n\nUsage: %s", err, cmd.UseLine()))
		}
		return nil
	}
}
