package diag

import (
	"context"
	"fmt"
	"testing"
)

// fixedError resolves errors from a fixed table keyed by description.
// Descriptions missing from the table resolve with an error.
type fixedError struct {
	details map[string]ErrorDetails
}

func (f fixedError) ResolveError(_ context.Context, raw RawError, detail bool) (ErrorDetails, error) {
	det, ok := f.details[raw.Description]
	if !ok {
		return ErrorDetails{}, fmt.Errorf("unknown error %q", raw.Description)
	}
	if !detail {
		return ErrorDetails{Message: det.Message}, nil
	}
	return det, nil
}

func TestSymbolizeErrorMessageOnly(t *testing.T) {
	raw := RawError{
		Description: "Error: boom",
		Stack:       &StackTrace{Sync: Fragment{frame("explode", "https://a.example/x.js", 1, 1)}},
		Cause:       &RawError{Description: "Error: fuse"},
	}

	se := SymbolizeError(context.Background(), raw, false, Resolvers{})

	if se.Message != "Error: boom" {
		t.Errorf("message = %q", se.Message)
	}
	if se.Stack != nil || se.Cause != nil {
		t.Errorf("cheap path resolved stack/cause: %+v", se)
	}
}

func TestSymbolizeErrorWithoutResolverUsesCapturedData(t *testing.T) {
	raw := RawError{
		Description: "Error: boom",
		Stack:       &StackTrace{Sync: Fragment{frame("explode", "https://a.example/x.js", 1, 1)}},
		Cause:       &RawError{Description: "Error: fuse"},
	}

	se := SymbolizeError(context.Background(), raw, true, Resolvers{})

	if se.Stack == nil {
		t.Error("captured stack dropped")
	}
	if se.Cause == nil || se.Cause.Message != "Error: fuse" {
		t.Errorf("cause = %+v", se.Cause)
	}
}

func TestSymbolizeErrorResolvedChain(t *testing.T) {
	res := Resolvers{Error: fixedError{details: map[string]ErrorDetails{
		"Error: outer": {
			Message: "Error: outer",
			Stack:   &StackTrace{Sync: Fragment{frame("a", "https://a.example/x.js", 0, 0)}},
			Cause:   &RawError{Description: "Error: middle"},
		},
		"Error: middle": {
			Message: "Error: middle",
			Cause:   &RawError{Description: "Error: inner"},
		},
		"Error: inner": {Message: "Error: inner"},
	}}}

	se := SymbolizeError(context.Background(), RawError{Description: "Error: outer"}, true, res)

	if se.Cause == nil || se.Cause.Message != "Error: middle" {
		t.Fatalf("first cause = %+v", se.Cause)
	}
	if se.Cause.Cause == nil || se.Cause.Cause.Message != "Error: inner" {
		t.Fatalf("second cause = %+v", se.Cause.Cause)
	}
	if se.Cause.Cause.Cause != nil {
		t.Errorf("chain did not terminate: %+v", se.Cause.Cause.Cause)
	}
}

func TestSymbolizeErrorFailureTruncatesChain(t *testing.T) {
	res := Resolvers{Error: fixedError{details: map[string]ErrorDetails{
		"Error: outer": {
			Message: "Error: outer",
			Cause:   &RawError{Description: "Error: unresolvable"},
		},
	}}}

	se := SymbolizeError(context.Background(), RawError{Description: "Error: outer"}, true, res)

	// The failing link keeps its message; nothing deeper is resolved.
	if se.Cause == nil {
		t.Fatal("chain discarded entirely")
	}
	if se.Cause.Message != "Error: unresolvable" {
		t.Errorf("cause message = %q", se.Cause.Message)
	}
	if se.Cause.Cause != nil {
		t.Errorf("chain continued past failure: %+v", se.Cause.Cause)
	}
}

// alwaysCause resolves every error with a further cause; the depth cap
// must terminate the chain.
type alwaysCause struct{}

func (alwaysCause) ResolveError(_ context.Context, raw RawError, _ bool) (ErrorDetails, error) {
	return ErrorDetails{
		Message: raw.Description,
		Cause:   &RawError{Description: raw.Description + "'"},
	}, nil
}

func TestSymbolizeErrorDepthCap(t *testing.T) {
	se := SymbolizeError(context.Background(), RawError{Description: "e"}, true, Resolvers{Error: alwaysCause{}})

	depth := 0
	for link := se; link != nil; link = link.Cause {
		depth++
		if depth > maxCauseDepth {
			t.Fatalf("chain exceeded cap: depth %d", depth)
		}
	}
	if depth != maxCauseDepth {
		t.Errorf("depth = %d, want %d", depth, maxCauseDepth)
	}
}
