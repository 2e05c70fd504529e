package sourcemap

import (
	"fmt"
	"sync"

	gosourcemap "github.com/go-sourcemap/sourcemap"

	"github.com/probelab/diaglens/internal/diag"
)

// Resolver maps raw frame positions through registered source maps into
// original source locations. Source maps are registered per script URL.
type Resolver struct {
	mu        sync.RWMutex
	consumers map[string]*gosourcemap.Consumer
}

// NewResolver creates an empty Resolver.
func NewResolver() *Resolver {
	return &Resolver{consumers: make(map[string]*gosourcemap.Consumer)}
}

// Register parses a source map and associates it with the generated
// script's URL.
func (r *Resolver) Register(url string, data []byte) error {
	consumer, err := gosourcemap.Parse("", data)
	if err != nil {
		return fmt.Errorf("failed to parse source map for %q: %w", url, err)
	}

	r.mu.Lock()
	r.consumers[url] = consumer
	r.mu.Unlock()
	return nil
}

// ResolveFrame returns the original source location for a frame, or nil
// when no source map is registered for the frame's URL or the position has
// no mapping.
func (r *Resolver) ResolveFrame(f diag.Frame) *diag.ResolvedLocation {
	if r == nil {
		return nil
	}

	r.mu.RLock()
	consumer := r.consumers[f.URL]
	r.mu.RUnlock()
	if consumer == nil {
		return nil
	}

	// go-sourcemap expects a 1-indexed line and a 0-indexed column.
	file, function, line, col, ok := consumer.Source(f.Line+1, f.Column)
	if !ok || file == "" || line < 1 {
		return nil
	}

	return &diag.ResolvedLocation{
		URL:      file,
		Function: function,
		Line:     line - 1,
		Column:   col,
	}
}
