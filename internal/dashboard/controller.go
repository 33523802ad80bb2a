// Package dashboard runs the interactive watch mode. A single controller loop
// owns all session state and reacts to key commands, debounced file changes
// and test results.
package dashboard

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/mark3labs/oscamp/internal/exercise"
	"github.com/mark3labs/oscamp/internal/input"
	"github.com/mark3labs/oscamp/internal/logger"
	"github.com/mark3labs/oscamp/internal/progress"
	"github.com/mark3labs/oscamp/internal/render"
	"github.com/mark3labs/oscamp/internal/runner"
)

// State is the controller's position in the watch-mode state machine.
type State int

const (
	Scanning State = iota
	AwaitingRetest
	Retesting
	ShowingFailure
	ShowingPass
	AllComplete
	Quitting
)

// String returns the string representation of a state
func (s State) String() string {
	switch s {
	case Scanning:
		return "scanning"
	case AwaitingRetest:
		return "awaiting-retest"
	case Retesting:
		return "retesting"
	case ShowingFailure:
		return "showing-failure"
	case ShowingPass:
		return "showing-pass"
	case AllComplete:
		return "all-complete"
	case Quitting:
		return "quitting"
	default:
		return "unknown"
	}
}

const (
	DefaultPollTimeout  = 200 * time.Millisecond
	DefaultAdvanceDelay = 800 * time.Millisecond
)

// Config holds configuration for creating a Controller.
type Config struct {
	Exercises []exercise.Exercise
	Runner    runner.Runner
	Terminal  Terminal
	Out       io.Writer // raw-mode screen

	PollTimeout  time.Duration
	AdvanceDelay time.Duration
	OutputLines  int
	BarWidth     int

	// Sleep pauses after an auto-advance notice. Defaults to time.Sleep.
	Sleep func(time.Duration)
}

// Controller is the watch-mode state machine. It is not safe for concurrent
// use; only the goroutine calling Scan and Run touches it.
type Controller struct {
	cfg Config

	state      State
	progress   *progress.State
	toggles    render.Toggles
	outcome    *runner.Outcome
	retestOwed bool
}

// New creates a Controller. Scan must be called before Run.
func New(cfg Config) *Controller {
	if cfg.PollTimeout <= 0 {
		cfg.PollTimeout = DefaultPollTimeout
	}
	if cfg.AdvanceDelay < 0 {
		cfg.AdvanceDelay = 0
	}
	if cfg.Sleep == nil {
		cfg.Sleep = time.Sleep
	}
	return &Controller{cfg: cfg, state: Scanning}
}

// State returns the current state.
func (c *Controller) State() State { return c.state }

// Current returns the index of the selected exercise.
func (c *Controller) Current() int { return c.progress.Current() }

// Done returns a copy of the done flags.
func (c *Controller) Done() []bool { return c.progress.Flags() }

// Toggles returns the display toggles.
func (c *Controller) Toggles() render.Toggles { return c.toggles }

// Outcome returns the last test outcome for the current exercise, if any.
func (c *Controller) Outcome() *runner.Outcome { return c.outcome }

// Scan quietly probes every exercise in order and builds the session
// progress, reporting each probe on w. It reports whether every exercise
// already passes, in which case Run has nothing to do.
func (c *Controller) Scan(ctx context.Context, w io.Writer) (bool, error) {
	total := len(c.cfg.Exercises)
	if total == 0 {
		return false, errors.New("no exercises to scan")
	}

	fmt.Fprintf(w, "%s - Scanning exercise progress...\n\n", render.Title)
	done := make([]bool, total)
	for i, ex := range c.cfg.Exercises {
		if err := ctx.Err(); err != nil {
			return false, err
		}
		fmt.Fprint(w, render.ScanLine(i, total, ex.Package))
		passed, err := c.cfg.Runner.RunQuiet(ctx, ex)
		if ctxErr := ctx.Err(); ctxErr != nil {
			// The probe was killed, so its result says nothing.
			return false, ctxErr
		}
		if err != nil {
			return false, fmt.Errorf("probe %s: %w", ex.Package, err)
		}
		done[i] = passed
	}

	c.progress = progress.New(done)
	logger.Info("Scan complete: %d/%d exercises pass", c.progress.Count(), total)
	if c.progress.AllDone() {
		c.state = AllComplete
		return true, nil
	}
	c.state = AwaitingRetest
	c.retestOwed = true
	return false, nil
}

// Run enters raw mode and drives the dashboard from key commands and
// debounced change signals until the user quits, ctx ends, or a test
// process cannot be started. Context cancellation is a normal quit. The
// terminal is restored before Run returns.
func (c *Controller) Run(ctx context.Context, commands <-chan input.Command, changes <-chan struct{}) (err error) {
	if c.progress == nil {
		return errors.New("dashboard: Run called before Scan")
	}

	restore, err := c.cfg.Terminal.MakeRaw()
	if err != nil {
		return err
	}
	defer func() {
		if rerr := restore(); rerr != nil {
			logger.Warn("Failed to restore terminal: %v", rerr)
			if err == nil {
				err = rerr
			}
		}
		if err == nil {
			fmt.Fprintf(c.cfg.Out, "%s%s\n", render.ClearHome, render.Farewell)
		}
	}()

	for {
		if ctx.Err() != nil {
			c.state = Quitting
			return nil
		}
		if c.retestOwed && c.state != AllComplete {
			if err := c.retest(ctx); err != nil {
				if ctx.Err() != nil {
					c.state = Quitting
					return nil
				}
				return err
			}
			continue
		}

		timer := time.NewTimer(c.cfg.PollTimeout)
		select {
		case cmd, ok := <-commands:
			if !ok {
				// Input is gone, so a quit key can never arrive.
				logger.Info("Input closed, leaving watch mode")
				c.state = Quitting
			} else {
				c.handle(cmd)
			}
		case <-changes:
			if c.state != AllComplete {
				logger.Debug("File change detected, retesting %s", c.exercise().Package)
				c.owe()
			}
		case <-ctx.Done():
			c.state = Quitting
		case <-timer.C:
		}
		timer.Stop()

		if c.state == Quitting {
			return nil
		}
	}
}

func (c *Controller) handle(cmd input.Command) {
	logger.Debug("Key command: %s", cmd)
	if cmd == input.Quit {
		c.state = Quitting
		return
	}
	if c.state == AllComplete {
		return
	}

	switch cmd {
	case input.ToggleHint:
		c.toggles.ShowHint = !c.toggles.ShowHint
		c.draw(render.Screen(c.view()))
	case input.ToggleList:
		c.toggles.ShowList = !c.toggles.ShowList
		c.draw(render.Screen(c.view()))
	case input.Next:
		c.progress.Next()
		c.owe()
	case input.Previous:
		c.progress.Previous()
		c.owe()
	case input.Retest:
		c.owe()
	}
}

func (c *Controller) owe() {
	c.retestOwed = true
	c.toggles = render.Toggles{}
	c.state = AwaitingRetest
}

// retest runs the current exercise and applies the result. A pass marks the
// exercise done and moves on to the next unfinished one, or completes the
// session when none remain.
func (c *Controller) retest(ctx context.Context) error {
	c.retestOwed = false
	c.toggles = render.Toggles{}
	c.state = Retesting
	c.draw(render.Testing(c.view()))

	ex := c.exercise()
	outcome, err := c.cfg.Runner.Run(ctx, ex)
	if err != nil {
		return fmt.Errorf("test %s: %w", ex.Package, err)
	}
	c.outcome = &outcome

	if !outcome.Passed {
		c.state = ShowingFailure
		logger.Info("Exercise %s failed", ex.Package)
		c.draw(render.FailureScreen(c.view()))
		return nil
	}

	c.state = ShowingPass
	c.progress.MarkCurrent()
	logger.Info("Exercise %s passed (%d/%d)", ex.Package, c.progress.Count(), c.progress.Total())
	screen := render.Passed(c.view())

	next, ok := c.progress.NextIncomplete()
	if !ok {
		c.state = AllComplete
		c.draw(screen + render.AllComplete(c.progress.Total()))
		return nil
	}

	c.progress.Select(next)
	c.draw(screen + render.AutoAdvance(c.exercise()))
	c.cfg.Sleep(c.cfg.AdvanceDelay)
	c.retestOwed = true
	return nil
}

func (c *Controller) exercise() exercise.Exercise {
	return c.cfg.Exercises[c.progress.Current()]
}

func (c *Controller) view() render.View {
	return render.View{
		Exercises:   c.cfg.Exercises,
		Current:     c.progress.Current(),
		Done:        c.progress.Flags(),
		Outcome:     c.outcome,
		Toggles:     c.toggles,
		OutputLines: c.cfg.OutputLines,
		BarWidth:    c.cfg.BarWidth,
	}
}

func (c *Controller) draw(screen string) {
	if _, err := io.WriteString(c.cfg.Out, render.ClearHome+render.CRLF(screen)); err != nil {
		logger.Warn("Failed to draw screen: %v", err)
	}
}
