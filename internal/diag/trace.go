package diag

// ResolvedLocation is a position in original (pre-bundling) source, produced
// by the location resolver. Line and Column are 0-based internally.
type ResolvedLocation struct {
	URL      string `json:"url"`
	Function string `json:"function,omitempty"`
	Line     int    `json:"line"`
	Column   int    `json:"column"`
}

// Frame is one call-site entry in a stack. Line and Column are 0-based
// internally; rendering converts to 1-based. An empty Name renders as
// "<anonymous>". Source, when present, takes precedence over URL for
// rendering context.
type Frame struct {
	Name   string            `json:"name,omitempty"`
	URL    string            `json:"url,omitempty"`
	Line   int               `json:"line"`
	Column int               `json:"column"`
	Source *ResolvedLocation `json:"source,omitempty"`
}

// Fragment is one unbroken synchronous call chain, innermost frame first.
type Fragment []Frame

// AsyncFragment is a fragment preceded by an asynchronous scheduling
// boundary (e.g. "setTimeout", "await").
type AsyncFragment struct {
	Description string   `json:"description,omitempty"`
	Frames      Fragment `json:"frames"`
}

// StackTrace is a synchronous fragment plus the chain of async fragments
// that scheduled it. The oldest boundary is the last element; rendering
// preserves the given order.
type StackTrace struct {
	Sync  Fragment        `json:"sync"`
	Async []AsyncFragment `json:"async,omitempty"`
}

// IgnorePredicate reports whether a frame should be elided from rendered
// stacks (library/vendor code).
type IgnorePredicate func(Frame) bool

// neverIgnore is the default predicate when no ignore source is wired.
func neverIgnore(Frame) bool { return false }
