package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/mark3labs/oscamp/internal/dashboard"
	"github.com/mark3labs/oscamp/internal/input"
	"github.com/mark3labs/oscamp/internal/logger"
	"github.com/mark3labs/oscamp/internal/render"
	"github.com/mark3labs/oscamp/internal/watcher"
)

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Interactive exercise mode with file watching (default)",
	Long: `Scan every exercise, then open the interactive dashboard on the first
one that does not pass yet. Saving a file under the watched directory
retests the current exercise; a pass jumps to the next unfinished one.`,
	Args: noArgs,
	RunE: runWatch,
}

func runWatch(cmd *cobra.Command, args []string) error {
	ws, err := loadWorkspace()
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	out := stdout(cmd)
	ctrl := dashboard.New(dashboard.Config{
		Exercises:    ws.registry.Exercises,
		Runner:       ws.runner,
		Terminal:     dashboard.NewTTY(os.Stdin),
		Out:          out,
		PollTimeout:  ws.cfg.PollTimeout,
		AdvanceDelay: ws.cfg.AdvanceDelay,
		OutputLines:  ws.cfg.OutputLines,
		BarWidth:     ws.cfg.BarWidth,
	})

	allDone, err := ctrl.Scan(ctx, out)
	if err != nil {
		return err
	}
	if allDone {
		fmt.Fprintf(out, "\n\n  %s\n", render.Congratulations(ws.registry.Len()))
		return nil
	}

	fw, err := watcher.New(ws.cfg.WatchDir, ws.cfg.Debounce, watcher.DefaultExcludes)
	if err != nil {
		return err
	}
	if err := fw.Start(); err != nil {
		return err
	}
	defer func() {
		if err := fw.Stop(); err != nil {
			logger.Warn("Failed to stop file watcher: %v", err)
		}
	}()

	reader, err := input.NewReader(os.Stdin)
	if err != nil {
		return fmt.Errorf("failed to read terminal input: %w", err)
	}
	defer func() { _ = reader.Close() }()

	return ctrl.Run(ctx, reader.Commands(), fw.Changes())
}
