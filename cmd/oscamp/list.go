package main

import (
	"github.com/spf13/cobra"

	"github.com/mark3labs/oscamp/internal/report"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "Show the completion status of every exercise",
	Args:  noArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ws, err := loadWorkspace()
		if err != nil {
			return err
		}
		_, err = report.List(cmd.Context(), stdout(cmd), ws.registry, ws.runner, ws.cfg.BarWidth)
		return err
	},
}

var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Test every exercise and print a pass/fail summary",
	Args:  noArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ws, err := loadWorkspace()
		if err != nil {
			return err
		}
		_, err = report.Check(cmd.Context(), stdout(cmd), ws.registry, ws.runner)
		return err
	},
}
