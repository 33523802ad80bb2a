// Package render draws the dashboard screens. Every function here is pure:
// it turns session data into a string and never touches the terminal.
package render

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/x/ansi"

	"github.com/mark3labs/oscamp/internal/exercise"
	"github.com/mark3labs/oscamp/internal/runner"
)

const (
	Title         = "OS Camp"
	DefaultWidth  = 20
	DefaultOutput = 30

	// Farewell is printed in cooked mode after watch mode ends.
	Farewell = "Goodbye! Keep up the good work 💪"
)

// ClearHome erases the screen and moves the cursor to the top-left corner.
const ClearHome = ansi.EraseEntireScreen + ansi.CursorHomePosition

// Toggles are the transient display switches. Both are cleared whenever a
// retest begins.
type Toggles struct {
	ShowHint bool
	ShowList bool
}

// View is everything a screen needs. Done has one flag per exercise.
type View struct {
	Exercises   []exercise.Exercise
	Current     int
	Done        []bool
	Outcome     *runner.Outcome
	Toggles     Toggles
	OutputLines int
	BarWidth    int
}

func (v View) current() exercise.Exercise {
	return v.Exercises[v.Current]
}

func (v View) doneCount() int {
	n := 0
	for _, d := range v.Done {
		if d {
			n++
		}
	}
	return n
}

func (v View) barWidth() int {
	if v.BarWidth > 0 {
		return v.BarWidth
	}
	return DefaultWidth
}

func (v View) outputLines() int {
	if v.OutputLines > 0 {
		return v.OutputLines
	}
	return DefaultOutput
}

// ProgressBar renders a width-cell bar followed by "done/total (pct%)".
// Filled cells and the percentage are both rounded down; an empty registry
// renders an empty bar at 0%.
func ProgressBar(done, total, width int) string {
	width = max(width, 0)
	filled, pct := 0, 0
	if total > 0 {
		done = min(max(done, 0), total)
		filled = done * width / total
		pct = done * 100 / total
	}
	bar := strings.Repeat("█", filled) + strings.Repeat("░", width-filled)
	return styleProgressFill.Render(fmt.Sprintf("%s  %d/%d (%d%%)", bar, done, total, pct))
}

// Header is the fixed top section shown on every watch-mode screen.
func Header(v View) string {
	ex := v.current()
	var b strings.Builder
	b.WriteString(StyleTitle.Render("─── " + Title + " ─── Rust & OS Advanced Experiments ───"))
	b.WriteString("\n")
	fmt.Fprintf(&b, "  Progress: %s\n", ProgressBar(v.doneCount(), len(v.Exercises), v.barWidth()))
	b.WriteString("\n")
	fmt.Fprintf(&b, "  %s\n", styleCurrent.Render(fmt.Sprintf("▶ Exercise %d/%d: %s", v.Current+1, len(v.Exercises), ex.Name)))
	fmt.Fprintf(&b, "    %s %s\n", StyleDim.Render("Module:"), ex.Module)
	fmt.Fprintf(&b, "    %s\n", styleDescription.Render(ex.Description))
	fmt.Fprintf(&b, "    %s\n", StyleDim.Render("📄 "+ex.Path))
	return b.String()
}

// Screen is the full redraw used after a key toggles a panel. The list
// replaces the outcome panel; the hint only shows when the list is hidden.
func Screen(v View) string {
	var b strings.Builder
	b.WriteString(Header(v))
	if v.Toggles.ShowList {
		b.WriteString(List(v))
	} else {
		if v.Outcome != nil {
			if v.Outcome.Passed {
				fmt.Fprintf(&b, "\n  %s\n", StyleSuccess.Render("✅ Test passed!"))
			} else {
				b.WriteString(Failure(v.Outcome.Output, v.outputLines()))
			}
		}
		if v.Toggles.ShowHint {
			b.WriteString(Hint(v.current()))
		}
	}
	b.WriteString(Controls())
	return b.String()
}

// Testing is drawn while the test process for the current exercise runs.
func Testing(v View) string {
	return Header(v) + "\n" + fmt.Sprintf("  %s\n", styleWarning.Render(fmt.Sprintf("⏳ Testing %s...", v.current().Package)))
}

// FailureScreen is drawn when the current exercise's test fails.
func FailureScreen(v View) string {
	out := ""
	if v.Outcome != nil {
		out = v.Outcome.Output
	}
	return Header(v) + Failure(out, v.outputLines()) + Controls()
}

// Passed is drawn right after the current exercise passes.
func Passed(v View) string {
	return Header(v) + fmt.Sprintf("\n  %s\n", StyleSuccess.Render(fmt.Sprintf("✅ Exercise '%s' passed!", v.current().Name)))
}

// AutoAdvance announces the exercise the dashboard jumps to next.
func AutoAdvance(next exercise.Exercise) string {
	return fmt.Sprintf("\n  ➡  Auto-jump: %s\n", styleJump.Render(next.Name))
}

// AllComplete is appended to the pass screen once every exercise passes.
func AllComplete(total int) string {
	return "\n  " + Congratulations(total) + "\n\n  Press " + styleKey.Render("q") + " to quit\n"
}

// Congratulations is the one-line completion message.
func Congratulations(total int) string {
	return StyleSuccess.Render(fmt.Sprintf("🎉 Congratulations! All %d exercises passed!", total))
}

// ScanLine reports startup probe progress. It ends in a carriage return so
// the next line overwrites it.
func ScanLine(i, total int, pkg string) string {
	return fmt.Sprintf("  [%2d/%d] Checking %-25s\r", i+1, total, pkg)
}

// Failure renders the failure banner and the tail of the test output.
func Failure(output string, maxLines int) string {
	var b strings.Builder
	fmt.Fprintf(&b, "\n  %s\n\n", StyleError.Render("❌ Test failed"))
	lines, omitted := FailureTail(output, maxLines)
	if omitted > 0 {
		fmt.Fprintf(&b, "  %s\n", StyleDim.Render(fmt.Sprintf("... omitted %d lines ...", omitted)))
	}
	for _, line := range lines {
		fmt.Fprintf(&b, "  %s\n", line)
	}
	return b.String()
}

// FailureTail returns the last maxLines lines of output and how many lines
// came before them.
func FailureTail(output string, maxLines int) ([]string, int) {
	output = strings.TrimSuffix(strings.ReplaceAll(output, "\r\n", "\n"), "\n")
	if output == "" {
		return nil, 0
	}
	lines := strings.Split(output, "\n")
	if maxLines < 0 {
		maxLines = 0
	}
	start := max(len(lines)-maxLines, 0)
	return lines[start:], start
}

// Hint renders the current exercise's hint block.
func Hint(ex exercise.Exercise) string {
	var b strings.Builder
	fmt.Fprintf(&b, "\n  %s\n", StyleHint.Render("💡 Hint:"))
	for _, line := range strings.Split(strings.TrimSuffix(ex.Hint, "\n"), "\n") {
		fmt.Fprintf(&b, "  %s\n", styleWarning.Render(line))
	}
	return b.String()
}

// List renders every exercise grouped by module, marking the current one
// and those already passed.
func List(v View) string {
	var b strings.Builder
	fmt.Fprintf(&b, "\n  %s\n\n", StyleTitle.Render("Exercise list:"))
	for _, g := range (&exercise.Registry{Exercises: v.Exercises}).Groups() {
		fmt.Fprintf(&b, "  %s\n", StyleModule.Render("["+g.Module+"]"))
		for i := g.Start; i < g.Start+g.Count; i++ {
			marker := " "
			if i == v.Current {
				marker = "▶"
			}
			status := "  "
			if i < len(v.Done) && v.Done[i] {
				status = StyleSuccess.Render("✅")
			}
			ex := v.Exercises[i]
			fmt.Fprintf(&b, "  %s %s %2d. %-22s (%s)\n", marker, status, i+1, ex.Name, StyleDim.Render(ex.Package))
		}
	}
	return b.String()
}

// Controls is the persistent footer with the keymap.
func Controls() string {
	var b strings.Builder
	b.WriteString("\n")
	fmt.Fprintf(&b, "  %s\n", StyleDim.Render(strings.Repeat("─", 41)))
	fmt.Fprintf(&b, "  %s hint  %s list  %s/%s next/prev  %s retest  %s quit\n",
		styleKey.Render("h"), styleKey.Render("l"), styleKey.Render("n"),
		styleKey.Render("p"), styleKey.Render("r"), styleKey.Render("q"))
	fmt.Fprintf(&b, "  %s\n", StyleDim.Render("📡 Watching for file changes, automatically retests after saving"))
	return b.String()
}

// CRLF rewrites line endings for a raw-mode terminal, where a bare newline
// does not return the cursor to column zero.
func CRLF(s string) string {
	return strings.ReplaceAll(strings.ReplaceAll(s, "\r\n", "\n"), "\n", "\r\n")
}
