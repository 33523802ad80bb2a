package main

import (
	"fmt"
	"os"

	"github.com/charmbracelet/x/editor"
	"github.com/spf13/cobra"

	"github.com/mark3labs/oscamp/internal/apperr"
)

var editCmd = &cobra.Command{
	Use:   "edit <exercise>",
	Short: "Open an exercise's source file in $EDITOR",
	Args:  exactArgs(1),
	RunE:  runEdit,
}

func runEdit(cmd *cobra.Command, args []string) error {
	ws, err := loadWorkspace()
	if err != nil {
		return err
	}
	ex, err := ws.find(args[0])
	if err != nil {
		return err
	}
	if _, err := os.Stat(ex.Path); err != nil {
		return apperr.New(apperr.ExerciseNotFound, "edit "+ex.Package, err)
	}

	c, err := editor.Command("oscamp", ex.Path)
	if err != nil {
		return fmt.Errorf("failed to build editor command: %w", err)
	}
	c.Stdin = os.Stdin
	c.Stdout = os.Stdout
	c.Stderr = os.Stderr
	if err := c.Run(); err != nil {
		return apperr.New(apperr.ProcessSpawnFailed, "edit "+ex.Package, err)
	}
	return nil
}
