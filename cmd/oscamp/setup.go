package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mark3labs/oscamp/internal/config"
)

var setupFlags struct {
	project bool
	force   bool
}

var setupCmd = &cobra.Command{
	Use:   "setup",
	Short: "Create oscamp configuration file",
	Long: `Create an oscamp configuration file with the default test commands,
watch directory and timings.

By default, creates a global config at ~/.config/oscamp/oscamp.yml.
Use --project to create a project-local config in the current directory.`,
	Args: noArgs,
	RunE: runSetup,
}

func init() {
	setupCmd.Flags().BoolVarP(&setupFlags.project, "project", "p", false, "Create config in current directory instead of global location")
	setupCmd.Flags().BoolVarP(&setupFlags.force, "force", "f", false, "Overwrite existing config file")
}

func runSetup(cmd *cobra.Command, args []string) error {
	targetPath := config.GlobalPath()
	if setupFlags.project {
		targetPath = config.ProjectPath()
	}

	if !setupFlags.force && config.FileExists(targetPath) {
		return fmt.Errorf("config file already exists at %s\n\nUse --force to overwrite", targetPath)
	}

	cfg := config.Defaults()
	var err error
	if setupFlags.project {
		err = config.WriteProject(cfg)
	} else {
		err = config.WriteGlobal(cfg)
	}
	if err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Config written to: %s\n\n", targetPath)
	fmt.Fprintln(cmd.OutOrStdout(), "Run 'oscamp' in the project root to get started.")
	return nil
}
