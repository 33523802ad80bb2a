package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mark3labs/oscamp/internal/apperr"
	"github.com/mark3labs/oscamp/internal/config"
	"github.com/mark3labs/oscamp/internal/exercise"
)

func TestExactArgs_UsageError(t *testing.T) {
	cmd := &cobra.Command{Use: "run <exercise>"}
	err := exactArgs(1)(cmd, nil)
	require.Error(t, err)
	assert.Equal(t, 2, apperr.ExitCode(err))
	assert.NoError(t, exactArgs(1)(cmd, []string{"mutex_counter"}))

	err = noArgs(cmd, []string{"extra"})
	assert.True(t, apperr.Is(err, apperr.Usage))
}

func TestWorkspaceFind(t *testing.T) {
	ws := &workspace{registry: &exercise.Registry{Exercises: []exercise.Exercise{
		{Name: "Mutex Counter", Package: "mutex_counter"},
	}}}

	ex, err := ws.find("mutex-counter")
	require.NoError(t, err)
	assert.Equal(t, "mutex_counter", ex.Package)

	_, err = ws.find("green_threads")
	require.Error(t, err)
	assert.Equal(t, 3, apperr.ExitCode(err))
}

func TestRunSetup_Project(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(dir, "config"))

	setupFlags.project = true
	setupFlags.force = false
	t.Cleanup(func() { setupFlags.project, setupFlags.force = false, false })

	var out bytes.Buffer
	cmd := &cobra.Command{}
	cmd.SetOut(&out)

	require.NoError(t, runSetup(cmd, nil))
	assert.Contains(t, out.String(), "Config written to: oscamp.yml")

	data, err := os.ReadFile(filepath.Join(dir, config.ProjectPath()))
	require.NoError(t, err)
	assert.Contains(t, string(data), "watch_dir: exercises")

	err = runSetup(cmd, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "already exists")

	setupFlags.force = true
	require.NoError(t, runSetup(cmd, nil))
}
