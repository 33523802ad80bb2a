package watcher

import (
	"bufio"
	"os"
	"path"
	"path/filepath"
	"strings"
)

// ignoreSet holds .gitignore-style rules. Supported syntax: globs (*.o),
// directory-only (target/), root-relative (/build), ** at the start, end or
// middle of a pattern, negation (!keep.rs) and # comments.
type ignoreSet struct {
	rules []rule
}

type rule struct {
	glob     string // slash-separated, no leading or trailing slash
	negate   bool
	dirOnly  bool
	anchored bool // matched against the full relative path, not the basename
}

// loadIgnoreFile appends the rules found in a .gitignore file. A missing or
// unreadable file contributes nothing.
func (s *ignoreSet) loadIgnoreFile(name string) {
	f, err := os.Open(name)
	if err != nil {
		return
	}
	defer f.Close()

	sc := bufio.NewScanner(f)
	for sc.Scan() {
		s.add(sc.Text())
	}
}

// add parses one pattern line and appends it when it is a rule.
func (s *ignoreSet) add(line string) {
	if r, ok := parseRule(line); ok {
		s.rules = append(s.rules, r)
	}
}

// ignored reports whether rel (relative to the watch root, OS separators)
// is excluded. Any ignored parent directory excludes everything beneath it.
// Later rules override earlier ones.
func (s *ignoreSet) ignored(rel string, isDir bool) bool {
	if len(s.rules) == 0 {
		return false
	}
	rel = filepath.ToSlash(rel)

	for i := strings.IndexByte(rel, '/'); i >= 0; {
		if s.match(rel[:i], true) {
			return true
		}
		next := strings.IndexByte(rel[i+1:], '/')
		if next < 0 {
			break
		}
		i += next + 1
	}
	return s.match(rel, isDir)
}

func (s *ignoreSet) match(rel string, isDir bool) bool {
	out := false
	for _, r := range s.rules {
		if r.dirOnly && !isDir {
			continue
		}
		if r.matches(rel) {
			out = !r.negate
		}
	}
	return out
}

func parseRule(line string) (rule, bool) {
	line = strings.TrimRight(line, " \t")
	if line == "" || line[0] == '#' {
		return rule{}, false
	}

	var r rule
	if line[0] == '!' {
		r.negate = true
		line = line[1:]
	}
	if strings.HasSuffix(line, "/") {
		r.dirOnly = true
		line = strings.TrimRight(line, "/")
	}
	switch {
	case strings.HasPrefix(line, "/"):
		r.anchored = true
		line = line[1:]
	case strings.Contains(line, "/") && !strings.HasPrefix(line, "**/"):
		r.anchored = true
	}
	if line == "" {
		return rule{}, false
	}
	r.glob = line
	return r, true
}

func (r rule) matches(rel string) bool {
	g := r.glob
	switch {
	case strings.HasPrefix(g, "**/"):
		return matchAtAnyDepth(g[3:], rel)
	case strings.HasSuffix(g, "/**"):
		prefix := g[:len(g)-3]
		return rel == prefix || strings.HasPrefix(rel, prefix+"/")
	}
	if prefix, suffix, ok := strings.Cut(g, "/**/"); ok {
		if rel != prefix && !strings.HasPrefix(rel, prefix+"/") {
			return false
		}
		return matchAtAnyDepth(suffix, strings.TrimPrefix(rel, prefix+"/"))
	}
	if r.anchored {
		return globMatch(g, rel)
	}
	return globMatch(g, path.Base(rel))
}

// matchAtAnyDepth matches glob against rel and against every suffix of rel
// that starts right after a slash.
func matchAtAnyDepth(glob, rel string) bool {
	for {
		if globMatch(glob, rel) {
			return true
		}
		i := strings.IndexByte(rel, '/')
		if i < 0 {
			return false
		}
		rel = rel[i+1:]
	}
}

// globMatch reports false for malformed patterns.
func globMatch(glob, name string) bool {
	ok, _ := path.Match(glob, name)
	return ok
}
