package diag

import (
	"context"
	"encoding/json"
)

// StackResolver constructs a symbolicated stack trace for a console
// message. A returned error degrades the record to having no stack.
type StackResolver interface {
	ResolveStack(ctx context.Context, msg ConsoleMessage) (*StackTrace, error)
}

// ErrorDetails is the resolved detail for one raw error: a display
// message, an optional symbolicated stack, and an optional raw cause for
// the next link of the chain.
type ErrorDetails struct {
	Message string
	Stack   *StackTrace
	Cause   *RawError
}

// ErrorResolver resolves a raw error descriptor. When detail is false the
// implementation may skip stack and cause work entirely.
type ErrorResolver interface {
	ResolveError(ctx context.Context, raw RawError, detail bool) (ErrorDetails, error)
}

// ArgumentRealizer obtains a realized (JSON-able) value for one raw
// argument handle. Failures are isolated per argument.
type ArgumentRealizer interface {
	Realize(ctx context.Context, arg RawValue) (json.RawMessage, error)
}

// IgnoreSource exposes the ignore-list policy for stack frames.
type IgnoreSource interface {
	IsIgnored(f Frame) bool
}

// LocationFormatter renders a resolved source location as a
// file:line:column style string with 1-based numbers.
type LocationFormatter interface {
	FormatLocation(loc ResolvedLocation) string
}

// Resolvers bundles the collaborator capabilities the formatter needs for
// live enrichment. Every field is optional: a nil collaborator disables
// the corresponding enrichment and the formatter degrades per its failure
// policy. Production wiring supplies sourcemap/ignore-backed
// implementations; tests supply fixed-value ones.
type Resolvers struct {
	Stack    StackResolver
	Error    ErrorResolver
	Args     ArgumentRealizer
	Ignore   IgnoreSource
	Location LocationFormatter
}

func (r Resolvers) ignorePredicate() IgnorePredicate {
	if r.Ignore == nil {
		return neverIgnore
	}
	return r.Ignore.IsIgnored
}
