package main

import (
	"context"
	"os"

	"github.com/charmbracelet/fang"
	"github.com/spf13/cobra"

	"github.com/mark3labs/oscamp/internal/apperr"
	"github.com/mark3labs/oscamp/internal/logger"
	"github.com/mark3labs/oscamp/internal/render"
)

const logoText = "▄▀█ █▀ █▀▀ ▄▀█ █▀▄▀█ █▀█\n█▄█ ▄█ █▄▄ █▀█ █ ▀ █ █▀▀"

// Version set via ldflags during build
var version = "dev"

func main() {
	code := 0
	if err := fang.Execute(context.Background(), rootCmd, fang.WithVersion(version)); err != nil {
		logger.Error("Command execution failed: %v", err)
		code = apperr.ExitCode(err)
	}
	_ = logger.Close()
	os.Exit(code)
}

var rootCmd = &cobra.Command{
	Use:   "oscamp",
	Short: "Interactive exercise dashboard for Rust & OS experiments",
	Long: render.StyleLogo.Render(logoText) + `

oscamp tracks which exercises pass their tests. Run without a command to
enter watch mode: the current exercise is retested whenever a file under
the exercises directory is saved, and passing moves on to the next one.`,
	Args:          noArgs,
	RunE:          runWatch,
	SilenceUsage:  true,
	SilenceErrors: false,
}

func init() {
	rootCmd.AddCommand(watchCmd)
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(checkCmd)
	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(hintCmd)
	rootCmd.AddCommand(editCmd)
	rootCmd.AddCommand(setupCmd)
}
