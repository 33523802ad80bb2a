package exercise

import (
	"path/filepath"
	"testing"

	"github.com/mark3labs/oscamp/internal/apperr"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleTOML = `
[[exercise]]
name = "thread_spawn"
package = "thread_spawn"
path = "exercises/01_concurrency_sync/01_thread_spawn/src/lib.rs"
module = "01_concurrency_sync"
description = "Spawn threads and join them"
hint = """
Use std::thread::spawn.
Remember to join."""

[[exercise]]
name = "mutex_counter"
package = "mutex_counter"
path = "exercises/01_concurrency_sync/02_mutex_counter/src/lib.rs"
module = "01_concurrency_sync"
description = "Share a counter behind a Mutex"
hint = "Arc<Mutex<T>>"

[[exercise]]
name = "Stack Coroutine"
package = "stack_coroutine"
path = "exercises/04_context_switch/01_stack_coroutine/src/lib.rs"
module = "04_context_switch"
description = "Switch stacks by hand"
hint = "Save callee-saved registers."
target = "riscv64gc-unknown-linux-gnu"
`

func TestLoad_DefaultSearchPaths(t *testing.T) {
	fsys := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fsys, filepath.Join("..", DefaultFile), []byte(sampleTOML), 0644))

	reg, err := Load(fsys, "")
	require.NoError(t, err)

	require.Equal(t, 3, reg.Len())
	assert.Equal(t, filepath.Join("..", DefaultFile), reg.Source)
	assert.Equal(t, "thread_spawn", reg.At(0).Package)
	assert.Equal(t, "Use std::thread::spawn.\nRemember to join.", reg.At(0).Hint)
	assert.Equal(t, "riscv64gc-unknown-linux-gnu", reg.At(2).Target)
}

func TestLoad_PrefersCurrentDirectory(t *testing.T) {
	fsys := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fsys, DefaultFile, []byte(sampleTOML), 0644))
	require.NoError(t, afero.WriteFile(fsys, filepath.Join("..", DefaultFile), []byte("not toml ["), 0644))

	reg, err := Load(fsys, "")
	require.NoError(t, err)
	assert.Equal(t, DefaultFile, reg.Source)
}

func TestLoad_Missing(t *testing.T) {
	_, err := Load(afero.NewMemMapFs(), "")
	require.Error(t, err)
	assert.True(t, apperr.Is(err, apperr.RegistryUnreadable))
	assert.Contains(t, err.Error(), "could not find exercises.toml")

	_, err = Load(afero.NewMemMapFs(), "course.toml")
	require.Error(t, err)
	assert.True(t, apperr.Is(err, apperr.RegistryUnreadable))
}

func TestLoad_YAML(t *testing.T) {
	fsys := afero.NewMemMapFs()
	doc := `exercise:
  - name: bump_allocator
    package: bump_allocator
    path: exercises/02_no_std_dev/02_bump_allocator/src/lib.rs
    module: 02_no_std_dev
    description: A bump allocator
    hint: Keep a cursor.
`
	require.NoError(t, afero.WriteFile(fsys, "course.yaml", []byte(doc), 0644))

	reg, err := Load(fsys, "course.yaml")
	require.NoError(t, err)
	require.Equal(t, 1, reg.Len())
	assert.Equal(t, "02_no_std_dev", reg.At(0).Module)
}

func TestParse_Invalid(t *testing.T) {
	tests := []struct {
		name string
		data string
		want string
	}{
		{"syntax error", "[[exercise]\nname=", "parse"},
		{"empty", "", "no exercises"},
		{"missing package", "[[exercise]]\nname = \"a\"\n", "has no package"},
		{"duplicate package", "[[exercise]]\npackage = \"a\"\n[[exercise]]\npackage = \"a\"\n", "listed twice"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse("exercises.toml", []byte(tt.data))
			require.Error(t, err)
			assert.True(t, apperr.Is(err, apperr.RegistryUnreadable))
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestParse_DefaultsNameToPackage(t *testing.T) {
	reg, err := Parse("exercises.toml", []byte("[[exercise]]\npackage = \"fd_table\"\n"))
	require.NoError(t, err)
	assert.Equal(t, "fd_table", reg.At(0).Name)
}

func TestRegistry_Find(t *testing.T) {
	reg, err := Parse("exercises.toml", []byte(sampleTOML))
	require.NoError(t, err)

	tests := []struct {
		query string
		want  string
		found bool
	}{
		{"mutex_counter", "mutex_counter", true},
		{"stack-coroutine", "stack_coroutine", true},
		{"Stack Coroutine", "stack_coroutine", true},
		{"  thread_spawn ", "thread_spawn", true},
		{"green_threads", "", false},
		{"", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.query, func(t *testing.T) {
			ex, ok := reg.Find(tt.query)
			assert.Equal(t, tt.found, ok)
			assert.Equal(t, tt.want, ex.Package)
		})
	}
}

func TestRegistry_Groups(t *testing.T) {
	reg := &Registry{Exercises: []Exercise{
		{Package: "a", Module: "m1"},
		{Package: "b", Module: "m1"},
		{Package: "c", Module: "m2"},
		{Package: "d", Module: "m1"},
	}}

	assert.Equal(t, []Group{
		{Module: "m1", Start: 0, Count: 2},
		{Module: "m2", Start: 2, Count: 1},
		{Module: "m1", Start: 3, Count: 1},
	}, reg.Groups())
	assert.Nil(t, (&Registry{}).Groups())
}
