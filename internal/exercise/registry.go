package exercise

import (
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"
	"strings"

	"github.com/mark3labs/oscamp/internal/apperr"
	"github.com/mark3labs/oscamp/internal/logger"
	"github.com/pelletier/go-toml/v2"
	"github.com/spf13/afero"
	"gopkg.in/yaml.v3"
)

// DefaultFile is the registry file name searched for when none is configured.
const DefaultFile = "exercises.toml"

// SearchPaths are tried in order when no registry path is configured.
var SearchPaths = []string{DefaultFile, filepath.Join("..", DefaultFile)}

type document struct {
	Exercise []Exercise `toml:"exercise" yaml:"exercise"`
}

// Load reads the registry at path, or the first of SearchPaths that exists
// when path is empty. Every failure is classified as RegistryUnreadable.
func Load(fsys afero.Fs, path string) (*Registry, error) {
	candidates := SearchPaths
	if path != "" {
		candidates = []string{path}
	}

	for _, candidate := range candidates {
		data, err := afero.ReadFile(fsys, candidate)
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) && path == "" {
				continue
			}
			return nil, apperr.New(apperr.RegistryUnreadable, "read "+candidate, err)
		}
		reg, err := Parse(candidate, data)
		if err != nil {
			return nil, err
		}
		logger.Info("Loaded %d exercises from %s", reg.Len(), candidate)
		return reg, nil
	}

	return nil, apperr.Errorf(apperr.RegistryUnreadable,
		"could not find %s, please run in the project root directory", DefaultFile)
}

// Parse decodes registry bytes. The format follows the file extension:
// .yaml/.yml is YAML, anything else is TOML.
func Parse(source string, data []byte) (*Registry, error) {
	var doc document
	switch strings.ToLower(filepath.Ext(source)) {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &doc); err != nil {
			return nil, apperr.New(apperr.RegistryUnreadable, "parse "+source, err)
		}
	default:
		if err := toml.Unmarshal(data, &doc); err != nil {
			return nil, apperr.New(apperr.RegistryUnreadable, "parse "+source, err)
		}
	}

	reg := &Registry{Source: source, Exercises: doc.Exercise}
	if err := reg.validate(); err != nil {
		return nil, apperr.New(apperr.RegistryUnreadable, "validate "+source, err)
	}
	return reg, nil
}

func (r *Registry) validate() error {
	if len(r.Exercises) == 0 {
		return fmt.Errorf("no exercises defined")
	}
	seen := make(map[string]int, len(r.Exercises))
	for i, ex := range r.Exercises {
		if ex.Package == "" {
			return fmt.Errorf("exercise %d (%q) has no package", i+1, ex.Name)
		}
		if prev, dup := seen[ex.Package]; dup {
			return fmt.Errorf("package %q is listed twice (exercises %d and %d)", ex.Package, prev+1, i+1)
		}
		seen[ex.Package] = i
		if ex.Name == "" {
			r.Exercises[i].Name = ex.Package
		}
	}
	return nil
}
