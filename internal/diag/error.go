package diag

import "context"

// SymbolizedError is a resolved exception: a display message, an optional
// symbolicated stack, and an optional cause, itself resolved recursively.
type SymbolizedError struct {
	Message string
	Stack   *StackTrace
	Cause   *SymbolizedError
}

// maxCauseDepth bounds cause-chain resolution. Genuine runtime cause
// chains are shallow; the cap guards against a cyclic cause graph, which
// nothing upstream structurally prevents. Chains beyond the cap are
// truncated.
const maxCauseDepth = 16

// SymbolizeError resolves a raw error into a SymbolizedError. The message
// is always derived from the best available description. When detail is
// false only the message is produced; otherwise the stack and cause are
// resolved best-effort through res.Error, with failures degrading to "no
// stack" / chain truncation rather than failing the whole operation.
func SymbolizeError(ctx context.Context, raw RawError, detail bool, res Resolvers) *SymbolizedError {
	return symbolizeError(ctx, raw, detail, res, 0)
}

func symbolizeError(ctx context.Context, raw RawError, detail bool, res Resolvers, depth int) *SymbolizedError {
	se := &SymbolizedError{Message: raw.Description}

	// Without a resolver the captured data is the best we have.
	if res.Error == nil {
		if detail {
			se.Stack = raw.Stack
			if raw.Cause != nil && depth+1 < maxCauseDepth {
				se.Cause = symbolizeError(ctx, *raw.Cause, true, res, depth+1)
			}
		}
		return se
	}

	det, err := res.Error.ResolveError(ctx, raw, detail)
	if err != nil {
		if detail {
			se.Stack = raw.Stack
		}
		return se
	}

	if det.Message != "" {
		se.Message = det.Message
	}
	if !detail {
		return se
	}

	se.Stack = det.Stack
	if se.Stack == nil {
		se.Stack = raw.Stack
	}
	if det.Cause != nil && depth+1 < maxCauseDepth {
		se.Cause = symbolizeError(ctx, *det.Cause, true, res, depth+1)
	}
	return se
}
