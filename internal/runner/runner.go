// Package runner executes an exercise's external test command.
package runner

import (
	"bytes"
	"context"
	"errors"
	"io"
	"os"
	"os/exec"
	"slices"
	"strings"
	"time"

	"github.com/mark3labs/oscamp/internal/apperr"
	"github.com/mark3labs/oscamp/internal/exercise"
	"github.com/mark3labs/oscamp/internal/logger"
)

// Outcome is the result of one test invocation.
type Outcome struct {
	Passed bool
	Output string
}

// Runner runs exercise tests. Both calls block until the test process exits.
// A failing test is reported through the result, not as an error; errors mean
// the process could not be started at all.
type Runner interface {
	Run(ctx context.Context, ex exercise.Exercise) (Outcome, error)
	RunQuiet(ctx context.Context, ex exercise.Exercise) (bool, error)
}

// Config holds configuration for creating a CommandRunner.
type Config struct {
	TestCommand   []string // argv template for Run
	QuietCommand  []string // argv template for RunQuiet
	CrossTarget   string   // target triple for CrossPackages
	CrossPackages []string // packages always built for CrossTarget
	WorkDir       string   // working directory for the test process
}

const killWaitDelay = 500 * time.Millisecond

// CommandRunner runs tests by spawning the configured command.
type CommandRunner struct {
	cfg Config
}

var _ Runner = (*CommandRunner)(nil)

// New creates a CommandRunner.
func New(cfg Config) *CommandRunner {
	return &CommandRunner{cfg: cfg}
}

// Run executes the test command and captures stderr followed by stdout.
func (r *CommandRunner) Run(ctx context.Context, ex exercise.Exercise) (Outcome, error) {
	args := r.Args(ex, false)
	cmd := r.command(ctx, args)

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	start := time.Now()
	passed, err := wait(ctx, cmd)
	if err != nil {
		return Outcome{}, err
	}
	logger.Debug("Tested %s in %s: passed=%v", ex.Package, time.Since(start).Round(time.Millisecond), passed)

	return Outcome{
		Passed: passed,
		Output: stderr.String() + stdout.String(),
	}, nil
}

// RunQuiet executes the quiet command with all output discarded.
func (r *CommandRunner) RunQuiet(ctx context.Context, ex exercise.Exercise) (bool, error) {
	args := r.Args(ex, true)
	cmd := r.command(ctx, args)
	cmd.Stdout = io.Discard
	cmd.Stderr = io.Discard

	passed, err := wait(ctx, cmd)
	if err != nil {
		return false, err
	}
	logger.Debug("Probed %s: passed=%v", ex.Package, passed)
	return passed, nil
}

func (r *CommandRunner) command(ctx context.Context, args []string) *exec.Cmd {
	cmd := exec.CommandContext(ctx, args[0], args[1:]...)
	cmd.Dir = r.cfg.WorkDir
	cmd.Env = os.Environ()
	// Children of a killed test command may hold the output pipes open.
	cmd.WaitDelay = killWaitDelay
	return cmd
}

// wait runs cmd to completion. A non-zero exit status is a failed test. If
// ctx ends first, its error is returned as is: a killed process is neither
// a result nor a spawn failure. Anything else is ProcessSpawnFailed.
func wait(ctx context.Context, cmd *exec.Cmd) (bool, error) {
	err := cmd.Run()
	if ctxErr := ctx.Err(); ctxErr != nil {
		return false, ctxErr
	}
	if err == nil {
		return true, nil
	}
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		return false, nil
	}
	return false, apperr.New(apperr.ProcessSpawnFailed, "run "+cmd.Args[0], err)
}

// Args expands the command template for ex. Cross-target exercises get
// "--target <triple>" before the "--" separator and "--nocapture" after it.
func (r *CommandRunner) Args(ex exercise.Exercise, quiet bool) []string {
	tmpl := r.cfg.TestCommand
	if quiet {
		tmpl = r.cfg.QuietCommand
	}

	args := make([]string, 0, len(tmpl)+4)
	for _, a := range tmpl {
		args = append(args, expandVariables(a, ex))
	}

	target := r.targetFor(ex)
	if target == "" {
		return args
	}

	sep := slices.Index(args, "--")
	if sep < 0 {
		args = append(args, "--target", target, "--", "--nocapture")
		return args
	}
	out := make([]string, 0, len(args)+3)
	out = append(out, args[:sep]...)
	out = append(out, "--target", target)
	out = append(out, args[sep:]...)
	return append(out, "--nocapture")
}

func (r *CommandRunner) targetFor(ex exercise.Exercise) string {
	if ex.Target != "" {
		return ex.Target
	}
	if r.cfg.CrossTarget != "" && slices.Contains(r.cfg.CrossPackages, ex.Package) {
		return r.cfg.CrossTarget
	}
	return ""
}

// expandVariables replaces {{variable}} placeholders in one argument.
func expandVariables(arg string, ex exercise.Exercise) string {
	return strings.NewReplacer(
		"{{package}}", ex.Package,
		"{{name}}", ex.Name,
		"{{path}}", ex.Path,
		"{{module}}", ex.Module,
	).Replace(arg)
}
