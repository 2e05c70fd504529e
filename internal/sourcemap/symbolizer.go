package sourcemap

import (
	"context"
	"fmt"
	"strings"

	"github.com/probelab/diaglens/internal/diag"
)

// Symbolizer is the production stack and error resolver: it decorates
// captured frames with source-map-resolved locations. It implements both
// diag.StackResolver and diag.ErrorResolver.
type Symbolizer struct {
	Resolver *Resolver
}

// ResolveStack symbolicates the stack captured with a console message.
func (s *Symbolizer) ResolveStack(_ context.Context, msg diag.ConsoleMessage) (*diag.StackTrace, error) {
	if msg.Stack == nil {
		return nil, fmt.Errorf("no stack captured for message")
	}
	return s.symbolicate(msg.Stack), nil
}

// ResolveError resolves a raw error into its display message and, when
// detail is requested, a symbolicated stack and the next cause link.
// Error-valued arguments carry their stack only as the trailing lines of
// the captured description, so when no structured stack was captured the
// description's remainder is parsed as stack text.
func (s *Symbolizer) ResolveError(_ context.Context, raw diag.RawError, detail bool) (diag.ErrorDetails, error) {
	message, rest := splitDescription(raw.Description)
	det := diag.ErrorDetails{Message: message}
	if !detail {
		return det, nil
	}
	switch {
	case raw.Stack != nil:
		det.Stack = s.symbolicate(raw.Stack)
	case rest != "":
		if st := ParseStack(rest); st != nil {
			det.Stack = s.symbolicate(st)
		}
	}
	det.Cause = raw.Cause
	return det, nil
}

// symbolicate returns a copy of st with every frame's resolved location
// filled in where a mapping exists. The input is never mutated.
func (s *Symbolizer) symbolicate(st *diag.StackTrace) *diag.StackTrace {
	out := &diag.StackTrace{
		Sync:  s.symbolicateFragment(st.Sync),
		Async: make([]diag.AsyncFragment, 0, len(st.Async)),
	}
	for _, af := range st.Async {
		out.Async = append(out.Async, diag.AsyncFragment{
			Description: af.Description,
			Frames:      s.symbolicateFragment(af.Frames),
		})
	}
	if len(out.Async) == 0 {
		out.Async = nil
	}
	return out
}

func (s *Symbolizer) symbolicateFragment(frames diag.Fragment) diag.Fragment {
	if frames == nil {
		return nil
	}
	out := make(diag.Fragment, len(frames))
	for i, f := range frames {
		if f.Source == nil {
			f.Source = s.Resolver.ResolveFrame(f)
		}
		out[i] = f
	}
	return out
}

// splitDescription splits a captured error description into its display
// message (the first line) and any stack text after it.
func splitDescription(description string) (message, rest string) {
	if i := strings.IndexByte(description, '\n'); i >= 0 {
		return description[:i], description[i+1:]
	}
	return description, ""
}
