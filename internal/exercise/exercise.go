// Package exercise defines the exercise records and loads the registry that
// lists them.
package exercise

import (
	"strings"

	"github.com/gosimple/slug"
)

// Exercise is one graded unit. Records are immutable once loaded.
type Exercise struct {
	Name        string `toml:"name" yaml:"name"`
	Package     string `toml:"package" yaml:"package"`
	Path        string `toml:"path" yaml:"path"`
	Module      string `toml:"module" yaml:"module"`
	Description string `toml:"description" yaml:"description"`
	Hint        string `toml:"hint" yaml:"hint"`
	// Target is an optional cross-compilation target triple.
	Target string `toml:"target,omitempty" yaml:"target,omitempty"`
}

// Registry is the ordered list of exercises. Order defines navigation and
// module grouping.
type Registry struct {
	Source    string
	Exercises []Exercise
}

// Len returns the number of exercises.
func (r *Registry) Len() int { return len(r.Exercises) }

// At returns the exercise at index i.
func (r *Registry) At(i int) Exercise { return r.Exercises[i] }

// Find looks an exercise up by package identifier, then by name. Names match
// case-insensitively through their slug, so "Mutex Counter" and
// "mutex-counter" both find the same exercise.
func (r *Registry) Find(name string) (Exercise, bool) {
	name = strings.TrimSpace(name)
	if name == "" {
		return Exercise{}, false
	}
	for _, ex := range r.Exercises {
		if ex.Package == name {
			return ex, true
		}
	}
	want := slug.Make(name)
	for _, ex := range r.Exercises {
		if slug.Make(ex.Name) == want || slug.Make(ex.Package) == want {
			return ex, true
		}
	}
	return Exercise{}, false
}

// Group is a run of consecutive exercises sharing a module.
type Group struct {
	Module string
	Start  int // index of the first exercise in the group
	Count  int
}

// Groups splits the registry into consecutive module runs. A module that
// reappears later starts a new group, matching the on-screen list.
func (r *Registry) Groups() []Group {
	var groups []Group
	for i, ex := range r.Exercises {
		if n := len(groups); n > 0 && groups[n-1].Module == ex.Module {
			groups[n-1].Count++
			continue
		}
		groups = append(groups, Group{Module: ex.Module, Start: i, Count: 1})
	}
	return groups
}
