// Package ignore implements the ignore-list policy: glob patterns matched
// against frame URLs to elide library and vendor frames from rendered
// stacks.
package ignore

import (
	"fmt"

	"github.com/gobwas/glob"

	"github.com/probelab/diaglens/internal/diag"
)

// List is a compiled set of ignore patterns. It implements
// diag.IgnoreSource. A nil *List never ignores.
type List struct {
	globs []glob.Glob
}

// New compiles the given glob patterns (e.g. "*node_modules*",
// "https://cdn.example.com/*").
func New(patterns []string) (*List, error) {
	l := &List{globs: make([]glob.Glob, 0, len(patterns))}
	for _, p := range patterns {
		g, err := glob.Compile(p)
		if err != nil {
			return nil, fmt.Errorf("invalid ignore pattern %q: %w", p, err)
		}
		l.globs = append(l.globs, g)
	}
	return l, nil
}

// IsIgnored reports whether the frame's script URL, or its resolved
// original source URL, matches any pattern.
func (l *List) IsIgnored(f diag.Frame) bool {
	if l == nil {
		return false
	}
	for _, g := range l.globs {
		if f.URL != "" && g.Match(f.URL) {
			return true
		}
		if f.Source != nil && g.Match(f.Source.URL) {
			return true
		}
	}
	return false
}
