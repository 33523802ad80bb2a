// Package report implements the one-shot commands that print exercise
// status to a plain writer and exit.
package report

import (
	"context"
	"fmt"
	"io"
	"strings"

	"charm.land/glamour/v2"

	"github.com/mark3labs/oscamp/internal/exercise"
	"github.com/mark3labs/oscamp/internal/render"
	"github.com/mark3labs/oscamp/internal/runner"
)

// Summary counts passing exercises.
type Summary struct {
	Passed int
	Total  int
}

// AllPassed reports whether every exercise passed.
func (s Summary) AllPassed() bool { return s.Total > 0 && s.Passed == s.Total }

// List probes every exercise and prints them grouped by module, followed by
// the overall progress bar.
func List(ctx context.Context, w io.Writer, reg *exercise.Registry, r runner.Runner, barWidth int) (Summary, error) {
	fmt.Fprintf(w, "%s\n", render.StyleTitle.Render(render.Title+" - Exercise list"))

	sum := Summary{Total: reg.Len()}
	for _, g := range reg.Groups() {
		fmt.Fprintf(w, "\n  %s\n", render.StyleModule.Render("["+g.Module+"]"))
		for i := g.Start; i < g.Start+g.Count; i++ {
			ex := reg.At(i)
			passed, err := r.RunQuiet(ctx, ex)
			if err != nil {
				return sum, fmt.Errorf("probe %s: %w", ex.Package, err)
			}
			status := render.StyleError.Render("❌")
			if passed {
				sum.Passed++
				status = render.StyleSuccess.Render("✅")
			}
			fmt.Fprintf(w, "  %s %2d. %-22s (%s)\n", status, i+1, ex.Name, render.StyleDim.Render(ex.Package))
		}
	}

	fmt.Fprintf(w, "\n  Progress: %s\n\n", render.ProgressBar(sum.Passed, sum.Total, barWidth))
	return sum, nil
}

// Check probes every exercise in order and prints a PASS/FAIL line for each.
func Check(ctx context.Context, w io.Writer, reg *exercise.Registry, r runner.Runner) (Summary, error) {
	fmt.Fprintf(w, "%s\n\n", render.StyleTitle.Render(render.Title+" - Check all exercises"))

	sum := Summary{Total: reg.Len()}
	for i, ex := range reg.Exercises {
		fmt.Fprintf(w, "  [%2d/%d] %-22s ", i+1, sum.Total, ex.Name)
		passed, err := r.RunQuiet(ctx, ex)
		if err != nil {
			fmt.Fprintln(w)
			return sum, fmt.Errorf("probe %s: %w", ex.Package, err)
		}
		if passed {
			sum.Passed++
			fmt.Fprintln(w, render.StyleSuccess.Render("✅ PASS"))
		} else {
			fmt.Fprintln(w, render.StyleError.Render("❌ FAIL"))
		}
	}

	fmt.Fprintf(w, "\n  %s\n", render.StyleBold.Render(fmt.Sprintf("Result: %d/%d passed", sum.Passed, sum.Total)))
	if sum.AllPassed() {
		fmt.Fprintf(w, "  %s\n", render.StyleSuccess.Render("🎉 All passed!"))
	}
	return sum, nil
}

// Run tests a single exercise and prints its full output. A failing test is
// reported in the output and is not an error.
func Run(ctx context.Context, w io.Writer, ex exercise.Exercise, r runner.Runner) (runner.Outcome, error) {
	fmt.Fprintf(w, "%s\n", render.StyleBold.Render(fmt.Sprintf("▶ %s - %s", ex.Name, ex.Description)))
	fmt.Fprintf(w, "  📄 %s\n\n", ex.Path)

	outcome, err := r.Run(ctx, ex)
	if err != nil {
		return outcome, err
	}
	if _, err := io.WriteString(w, outcome.Output); err != nil {
		return outcome, fmt.Errorf("writing test output: %w", err)
	}

	if outcome.Passed {
		fmt.Fprintf(w, "\n%s\n", render.StyleSuccess.Render("✅ Test passed!"))
	} else {
		fmt.Fprintf(w, "\n%s\n", render.StyleError.Render("❌ Test failed"))
		fmt.Fprintf(w, "  💡 Use 'oscamp hint %s' to view hint\n", ex.Package)
	}
	return outcome, nil
}

// Hint prints an exercise's hint, rendered as markdown.
func Hint(w io.Writer, ex exercise.Exercise, width int) {
	fmt.Fprintf(w, "%s\n\n", render.StyleHint.Render(fmt.Sprintf("💡 %s - Hint:", ex.Name)))
	fmt.Fprintln(w, Markdown(ex.Hint, width))
}

// Markdown renders content for the terminal. Falls back to the raw text if
// rendering fails.
func Markdown(content string, width int) string {
	if width <= 0 || width > 120 {
		width = 80
	}

	r, err := glamour.NewTermRenderer(
		glamour.WithStandardStyle("dark"),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		return content
	}

	rendered, err := r.Render(content)
	if err != nil {
		return content
	}
	return strings.TrimSuffix(rendered, "\n")
}
