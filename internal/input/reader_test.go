package input

import (
	"os"
	"runtime"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReader_DeliversInOrder(t *testing.T) {
	r, err := NewReader(strings.NewReader("nrq"))
	require.NoError(t, err)

	var got []Command
	for cmd := range r.Commands() {
		got = append(got, cmd)
	}
	assert.Equal(t, []Command{Next, Retest, Quit}, got)
}

func TestReader_PollTimeout(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("cancelable pipes are not supported on windows")
	}
	pr, pw, err := os.Pipe()
	require.NoError(t, err)
	defer pw.Close()

	r, err := NewReader(pr)
	require.NoError(t, err)

	start := time.Now()
	cmd, ok := r.Poll(50 * time.Millisecond)
	assert.False(t, ok)
	assert.Equal(t, None, cmd)
	assert.GreaterOrEqual(t, time.Since(start), 50*time.Millisecond)

	_, err = pw.Write([]byte("h"))
	require.NoError(t, err)
	cmd, ok = r.Poll(2 * time.Second)
	assert.True(t, ok)
	assert.Equal(t, ToggleHint, cmd)

	done := make(chan error, 1)
	go func() { done <- r.Close() }()
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("Close did not cancel the pending read")
	}
}
