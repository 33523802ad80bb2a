package render

import (
	"fmt"
	"strings"
	"testing"

	"github.com/charmbracelet/x/ansi"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mark3labs/oscamp/internal/exercise"
	"github.com/mark3labs/oscamp/internal/runner"
)

func testExercises() []exercise.Exercise {
	return []exercise.Exercise{
		{Name: "thread_spawn", Package: "thread_spawn", Path: "exercises/01/thread_spawn/src/lib.rs", Module: "Concurrency", Description: "Spawn threads", Hint: "Use std::thread::spawn"},
		{Name: "mutex_counter", Package: "mutex_counter", Path: "exercises/01/mutex_counter/src/lib.rs", Module: "Concurrency", Description: "Share a counter", Hint: "Wrap it in Arc<Mutex<_>>\nthen lock it"},
		{Name: "bump_allocator", Package: "bump_allocator", Path: "exercises/02/bump_allocator/src/lib.rs", Module: "no_std", Description: "Bump allocation", Hint: "Align first"},
	}
}

func testView() View {
	return View{
		Exercises: testExercises(),
		Current:   1,
		Done:      []bool{true, false, false},
	}
}

func plain(s string) string { return ansi.Strip(s) }

func TestProgressBar_Width20(t *testing.T) {
	const total = 7
	for done := 0; done <= total; done++ {
		t.Run(fmt.Sprintf("%d of %d", done, total), func(t *testing.T) {
			got := plain(ProgressBar(done, total, 20))
			filled := done * 20 / total
			want := strings.Repeat("█", filled) + strings.Repeat("░", 20-filled) +
				fmt.Sprintf("  %d/%d (%d%%)", done, total, done*100/total)
			assert.Equal(t, want, got)
		})
	}
}

func TestProgressBar_Rounding(t *testing.T) {
	got := plain(ProgressBar(1, 3, 20))
	assert.Equal(t, 6, strings.Count(got, "█"))
	assert.Equal(t, 14, strings.Count(got, "░"))
	assert.True(t, strings.HasSuffix(got, "1/3 (33%)"))
}

func TestProgressBar_Empty(t *testing.T) {
	got := plain(ProgressBar(0, 0, 20))
	assert.Equal(t, strings.Repeat("░", 20)+"  0/0 (0%)", got)
}

func TestProgressBar_Full(t *testing.T) {
	got := plain(ProgressBar(5, 5, 10))
	assert.Equal(t, strings.Repeat("█", 10)+"  5/5 (100%)", got)
}

func TestHeader(t *testing.T) {
	got := plain(Header(testView()))
	assert.Contains(t, got, "OS Camp")
	assert.Contains(t, got, "▶ Exercise 2/3: mutex_counter")
	assert.Contains(t, got, "Module: Concurrency")
	assert.Contains(t, got, "Share a counter")
	assert.Contains(t, got, "📄 exercises/01/mutex_counter/src/lib.rs")
	assert.Contains(t, got, "1/3 (33%)")
}

func TestScreen_OutcomePanels(t *testing.T) {
	v := testView()

	v.Outcome = &runner.Outcome{Passed: true}
	got := plain(Screen(v))
	assert.Contains(t, got, "✅ Test passed!")
	assert.Contains(t, got, "Watching for file changes")

	v.Outcome = &runner.Outcome{Passed: false, Output: "error[E0308]: mismatched types\n"}
	got = plain(Screen(v))
	assert.Contains(t, got, "❌ Test failed")
	assert.Contains(t, got, "error[E0308]: mismatched types")
	assert.NotContains(t, got, "💡 Hint:")

	v.Outcome = nil
	got = plain(Screen(v))
	assert.NotContains(t, got, "Test passed")
	assert.NotContains(t, got, "Test failed")
}

func TestScreen_Hint(t *testing.T) {
	v := testView()
	v.Toggles.ShowHint = true
	got := plain(Screen(v))
	assert.Contains(t, got, "💡 Hint:")
	assert.Contains(t, got, "Wrap it in Arc<Mutex<_>>")
	assert.Contains(t, got, "then lock it")
}

func TestScreen_ListHidesOutcomeAndHint(t *testing.T) {
	v := testView()
	v.Outcome = &runner.Outcome{Passed: false, Output: "boom"}
	v.Toggles = Toggles{ShowHint: true, ShowList: true}

	got := plain(Screen(v))
	assert.Contains(t, got, "Exercise list:")
	assert.NotContains(t, got, "💡 Hint:")
	assert.NotContains(t, got, "boom")
	assert.Contains(t, got, "h hint")
}

func TestScreen_ToggleIdempotence(t *testing.T) {
	v := testView()
	v.Outcome = &runner.Outcome{Passed: false, Output: "boom"}
	before := Screen(v)

	v.Toggles.ShowHint = !v.Toggles.ShowHint
	require.NotEqual(t, before, Screen(v))
	v.Toggles.ShowHint = !v.Toggles.ShowHint
	assert.Equal(t, before, Screen(v))

	v.Toggles.ShowList = !v.Toggles.ShowList
	require.NotEqual(t, before, Screen(v))
	v.Toggles.ShowList = !v.Toggles.ShowList
	assert.Equal(t, before, Screen(v))
}

func TestList_GroupsAndMarkers(t *testing.T) {
	got := plain(List(testView()))
	lines := strings.Split(strings.TrimSpace(got), "\n")

	var body []string
	for _, l := range lines {
		if strings.TrimSpace(l) != "" {
			body = append(body, l)
		}
	}
	require.Len(t, body, 6)
	assert.Equal(t, "Exercise list:", strings.TrimSpace(body[0]))
	assert.Equal(t, "[Concurrency]", strings.TrimSpace(body[1]))
	assert.Contains(t, body[2], "✅")
	assert.Contains(t, body[2], " 1. thread_spawn")
	assert.Contains(t, body[3], "▶")
	assert.NotContains(t, body[3], "✅")
	assert.Equal(t, "[no_std]", strings.TrimSpace(body[4]))
	assert.Contains(t, body[5], "(bump_allocator)")
}

func TestFailureTail(t *testing.T) {
	var lines []string
	for i := 1; i <= 45; i++ {
		lines = append(lines, fmt.Sprintf("line %d", i))
	}
	out := strings.Join(lines, "\n") + "\n"

	tail, omitted := FailureTail(out, 30)
	assert.Equal(t, 15, omitted)
	require.Len(t, tail, 30)
	assert.Equal(t, "line 16", tail[0])
	assert.Equal(t, "line 45", tail[29])

	tail, omitted = FailureTail("a\r\nb", 30)
	assert.Equal(t, 0, omitted)
	assert.Equal(t, []string{"a", "b"}, tail)

	tail, omitted = FailureTail("", 30)
	assert.Empty(t, tail)
	assert.Equal(t, 0, omitted)
}

func TestFailure_OmittedNotice(t *testing.T) {
	out := strings.Repeat("x\n", 31)
	got := plain(Failure(out, 30))
	assert.Contains(t, got, "... omitted 1 lines ...")

	got = plain(Failure("x\n", 30))
	assert.NotContains(t, got, "omitted")
}

func TestTransitionalScreens(t *testing.T) {
	v := testView()
	assert.Contains(t, plain(Testing(v)), "⏳ Testing mutex_counter...")
	assert.Contains(t, plain(Passed(v)), "✅ Exercise 'mutex_counter' passed!")
	assert.Contains(t, plain(AutoAdvance(v.Exercises[2])), "Auto-jump: bump_allocator")

	done := plain(AllComplete(3))
	assert.Contains(t, done, "🎉 Congratulations! All 3 exercises passed!")
	assert.Contains(t, done, "Press q to quit")
}

func TestScanLine(t *testing.T) {
	got := ScanLine(2, 12, "mutex_counter")
	assert.True(t, strings.HasPrefix(got, "  [ 3/12] Checking mutex_counter"))
	assert.True(t, strings.HasSuffix(got, "\r"))
}

func TestCRLF(t *testing.T) {
	assert.Equal(t, "a\r\nb\r\n", CRLF("a\nb\n"))
	assert.Equal(t, "a\r\nb\r\n", CRLF("a\r\nb\r\n"))
	assert.Equal(t, "no newline", CRLF("no newline"))
}

func TestClearHome(t *testing.T) {
	assert.Equal(t, "\x1b[2J\x1b[H", ClearHome)
}
