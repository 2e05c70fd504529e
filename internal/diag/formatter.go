package diag

import (
	"context"
	"fmt"
	"strings"

	"golang.org/x/sync/errgroup"
)

// Options configures Formatter construction.
type Options struct {
	// ID is the record's numeric identifier in listings.
	ID int64
	// Detail requests live enrichment: argument resolution, stack
	// symbolication and cause-chain traversal. Without it only the cheap
	// concise fields are populated.
	Detail bool
	// Res supplies the collaborator capabilities for live enrichment.
	Res Resolvers
}

// Formatter is the façade over one fully-resolved diagnostic record. It is
// immutable once constructed; the rendering methods are pure projections
// of its state and are safe for concurrent use.
type Formatter struct {
	id       int64
	kind     string
	text     string
	argCount int
	args     []Argument
	stack    *StackTrace
	cause    *SymbolizedError
	ignored  IgnorePredicate
	loc      LocationFormatter
}

// From constructs a Formatter from a source record. It never fails:
// every degradable resolution failure collapses to a sentinel or absent
// value, so the result is always a valid (possibly degraded) record.
func From(ctx context.Context, src Source, opts Options) *Formatter {
	f := &Formatter{
		id:      opts.ID,
		ignored: opts.Res.ignorePredicate(),
		loc:     opts.Res.Location,
	}

	switch rec := src.(type) {
	case UncaughtError:
		se := SymbolizeError(ctx, rec.Err, opts.Detail, opts.Res)
		f.kind = "error"
		f.text = se.Message
		f.stack = se.Stack
		f.cause = se.Cause

	case ConsoleMessage:
		f.kind = rec.Kind
		f.text = rec.Text
		f.argCount = len(rec.Args)
		if opts.Detail {
			// Arguments and stack are independent round trips; resolve
			// them together so cost is bounded by the slowest, not the sum.
			g, gctx := errgroup.WithContext(ctx)
			g.Go(func() error {
				f.args = resolveArgs(gctx, rec.Args, true, opts.Res)
				return nil
			})
			g.Go(func() error {
				if opts.Res.Stack == nil {
					return nil
				}
				st, err := opts.Res.Stack.ResolveStack(gctx, rec)
				if err == nil {
					f.stack = st
				}
				return nil
			})
			_ = g.Wait()
		}

		// An empty record text means the first argument supplied it; that
		// argument is then excluded from the rendered list.
		if f.text == "" && len(f.args) > 0 {
			f.text = f.args[0].String()
			f.args = f.args[1:]
		}
	}

	return f
}

// String is the concise one-line rendering: identity, kind, text and raw
// argument count. It never includes argument or stack content.
func (f *Formatter) String() string {
	return fmt.Sprintf("msgid=%d [%s] %s (%d args)", f.id, f.kind, f.text, f.argCount)
}

// Summary is a concise flat-object rendering of a record.
type Summary struct {
	ID       int64  `json:"id"`
	Kind     string `json:"kind"`
	Text     string `json:"text"`
	ArgCount int    `json:"argCount"`
}

// Summary returns the concise structured rendering.
func (f *Formatter) Summary() Summary {
	return Summary{ID: f.id, Kind: f.kind, Text: f.text, ArgCount: f.argCount}
}

// ReportArg is one resolved argument in a detailed report. Stack is
// present only for error-valued arguments.
type ReportArg struct {
	Index int      `json:"index"`
	Value string   `json:"value"`
	Stack []string `json:"stackTrace,omitempty"`
}

// Report is the detailed structured rendering: the concise fields plus
// resolved arguments and rendered stack lines. Fields are structured
// rather than pre-joined so presentation layers can format independently.
type Report struct {
	Summary
	Args  []ReportArg `json:"args,omitempty"`
	Stack []string    `json:"stackTrace,omitempty"`
}

// Detailed returns the detailed structured rendering.
func (f *Formatter) Detailed() Report {
	rep := Report{Summary: f.Summary()}
	for _, a := range f.args {
		ra := ReportArg{Index: a.Index, Value: a.String()}
		if a.Kind == ArgError {
			ra.Stack = RenderStack(a.Err.Stack, f.ignored, a.Err.Cause, f.loc)
		}
		rep.Args = append(rep.Args, ra)
	}
	rep.Stack = RenderStack(f.stack, f.ignored, f.cause, f.loc)
	return rep
}

// DetailedString is the canonical human-readable join of the detailed
// fields: a heading line, an arguments section and a stack-trace section,
// with blank lines between non-empty sections.
func (f *Formatter) DetailedString() string {
	rep := f.Detailed()

	sections := []string{f.String()}

	if len(rep.Args) > 0 {
		lines := []string{"Arguments:"}
		for _, a := range rep.Args {
			lines = append(lines, fmt.Sprintf("Arg #%d: %s", a.Index, a.Value))
			lines = append(lines, a.Stack...)
		}
		sections = append(sections, strings.Join(lines, "\n"))
	}

	if len(rep.Stack) > 0 {
		lines := append([]string{"Stack trace:"}, rep.Stack...)
		sections = append(sections, strings.Join(lines, "\n"))
	}

	return strings.Join(sections, "\n\n")
}
