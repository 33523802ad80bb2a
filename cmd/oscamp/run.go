package main

import (
	"os"

	"github.com/charmbracelet/x/term"
	"github.com/spf13/cobra"

	"github.com/mark3labs/oscamp/internal/report"
)

var runCmd = &cobra.Command{
	Use:   "run <exercise>",
	Short: "Run one exercise's tests and show the full output",
	Long: `Run the tests for a single exercise, identified by its package name
or its exercise name, and print the complete test output.

A failing test is reported but does not change the exit status.`,
	Args: exactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ws, err := loadWorkspace()
		if err != nil {
			return err
		}
		ex, err := ws.find(args[0])
		if err != nil {
			return err
		}
		_, err = report.Run(cmd.Context(), stdout(cmd), ex, ws.runner)
		return err
	},
}

var hintCmd = &cobra.Command{
	Use:   "hint <exercise>",
	Short: "Show the hint for an exercise",
	Args:  exactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ws, err := loadWorkspace()
		if err != nil {
			return err
		}
		ex, err := ws.find(args[0])
		if err != nil {
			return err
		}
		report.Hint(stdout(cmd), ex, terminalWidth())
		return nil
	},
}

// terminalWidth returns the width of stdout, or 0 when it is not a terminal.
func terminalWidth() int {
	w, _, err := term.GetSize(os.Stdout.Fd())
	if err != nil {
		return 0
	}
	return w
}
