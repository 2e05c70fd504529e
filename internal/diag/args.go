package diag

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"

	"golang.org/x/sync/errgroup"
)

// ArgKind tags the resolved variant of an Argument.
type ArgKind int

const (
	// ArgPrimitive is a string, number, boolean or sentinel placeholder.
	ArgPrimitive ArgKind = iota
	// ArgObject is a JSON-serializable object or array value.
	ArgObject
	// ArgError is an error-valued argument carrying its own stack/cause.
	ArgError
)

// Argument is one resolved call argument. Exactly one of Text, JSON or Err
// is meaningful, selected by Kind; Index is the argument's original
// position in the call.
type Argument struct {
	Index int
	Kind  ArgKind
	Text  string
	JSON  json.RawMessage
	Err   *SymbolizedError
}

// String returns the argument's display value. Error arguments render as
// their message only; their stack is rendered separately by the detailed
// projection.
func (a Argument) String() string {
	switch a.Kind {
	case ArgObject:
		return string(a.JSON)
	case ArgError:
		return a.Err.Message
	default:
		return a.Text
	}
}

// resolveArgs maps raw argument handles to Argument values. All arguments
// are resolved concurrently and gathered in original order; a failure at
// position i yields a sentinel placeholder at that index and never
// disturbs sibling arguments.
func resolveArgs(ctx context.Context, raws []RawValue, detail bool, res Resolvers) []Argument {
	if len(raws) == 0 {
		return nil
	}
	out := make([]Argument, len(raws))
	g, gctx := errgroup.WithContext(ctx)
	for i, raw := range raws {
		g.Go(func() error {
			out[i] = resolveArg(gctx, i, raw, detail, res)
			return nil
		})
	}
	// Workers report failures as placeholder values, never as errors.
	_ = g.Wait()
	return out
}

func resolveArg(ctx context.Context, index int, raw RawValue, detail bool, res Resolvers) Argument {
	if raw.IsError() {
		se := SymbolizeError(ctx, RawError{Description: raw.Description, Cause: raw.Cause}, detail, res)
		return Argument{Index: index, Kind: ArgError, Err: se}
	}

	// Inline value captured with the record: no round trip needed.
	if len(raw.Value) > 0 {
		return argumentFromJSON(index, raw)
	}

	if res.Args == nil {
		return unavailableArg(index)
	}
	val, err := res.Args.Realize(ctx, raw)
	if err != nil || len(val) == 0 {
		return unavailableArg(index)
	}
	return argumentFromJSON(index, RawValue{Type: raw.Type, Value: val, Description: raw.Description})
}

// unavailableArg is the fixed sentinel for a failed per-argument
// resolution.
func unavailableArg(index int) Argument {
	return Argument{
		Index: index,
		Kind:  ArgPrimitive,
		Text:  fmt.Sprintf("<argument #%d is no longer available>", index),
	}
}

// argumentFromJSON classifies a realized JSON value into the tagged
// variant. Strings are unquoted for display; objects and arrays keep their
// compact JSON encoding, which is deterministic for identical input bytes.
func argumentFromJSON(index int, raw RawValue) Argument {
	// json.Unmarshal treats null as a no-op for any target type, so it
	// has to be recognized before the string attempt.
	if string(bytes.TrimSpace(raw.Value)) == "null" {
		return Argument{Index: index, Kind: ArgPrimitive, Text: "null"}
	}

	var s string
	if err := json.Unmarshal(raw.Value, &s); err == nil {
		return Argument{Index: index, Kind: ArgPrimitive, Text: s}
	}

	var buf bytes.Buffer
	if err := json.Compact(&buf, raw.Value); err != nil {
		if raw.Description != "" {
			return Argument{Index: index, Kind: ArgPrimitive, Text: raw.Description}
		}
		return unavailableArg(index)
	}

	compact := buf.Bytes()
	if len(compact) > 0 && (compact[0] == '{' || compact[0] == '[') {
		return Argument{Index: index, Kind: ArgObject, JSON: json.RawMessage(compact)}
	}
	// Numbers, booleans and null render as their JSON literal.
	return Argument{Index: index, Kind: ArgPrimitive, Text: string(compact)}
}
