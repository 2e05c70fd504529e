package diag

import (
	"fmt"
	"strings"
)

const (
	// maxRenderLines bounds the rendered stack output.
	maxRenderLines = 50
	// bannerWidth is the fixed width of async-boundary separator lines.
	bannerWidth = 40
	// indexingNote trails every non-empty stack rendering.
	indexingNote = "Note: line and column numbers are 1-based."
)

// RenderStack turns a stack trace, an ignore predicate and an optional
// cause chain into an ordered sequence of text lines. It is pure: no I/O,
// deterministic for identical inputs. Output is truncated to
// maxRenderLines with a trailing omission count, then a fixed note about
// 1-based numbering. It serves both the top-level record's stack and an
// error-valued argument's own stack.
func RenderStack(st *StackTrace, ignored IgnorePredicate, cause *SymbolizedError, loc LocationFormatter) []string {
	if ignored == nil {
		ignored = neverIgnore
	}
	lines := renderLines(st, ignored, cause, loc)
	if len(lines) == 0 {
		return nil
	}
	if len(lines) > maxRenderLines {
		omitted := len(lines) - maxRenderLines
		lines = lines[:maxRenderLines]
		lines = append(lines, fmt.Sprintf("... and %d more frames", omitted))
	}
	return append(lines, indexingNote)
}

func renderLines(st *StackTrace, ignored IgnorePredicate, cause *SymbolizedError, loc LocationFormatter) []string {
	var lines []string

	if st != nil {
		for _, f := range st.Sync {
			if ignored(f) {
				continue
			}
			lines = append(lines, frameLine(f, loc))
		}
		for _, af := range st.Async {
			frameLines := make([]string, 0, len(af.Frames))
			for _, f := range af.Frames {
				if ignored(f) {
					continue
				}
				frameLines = append(frameLines, frameLine(f, loc))
			}
			// A boundary with no attributable frames is noise.
			if len(frameLines) == 0 {
				continue
			}
			lines = append(lines, asyncBanner(af.Description))
			lines = append(lines, frameLines...)
		}
	}

	if cause != nil {
		lines = append(lines, "Caused by: "+cause.Message)
		lines = append(lines, renderLines(cause.Stack, ignored, cause.Cause, loc)...)
	}

	return lines
}

// frameLine renders one frame as "at <name> (<location>)" with 1-based
// line/column numbers.
func frameLine(f Frame, loc LocationFormatter) string {
	name := f.Name
	if name == "" {
		name = "<anonymous>"
	}
	var where string
	switch {
	case f.Source != nil && loc != nil:
		where = loc.FormatLocation(*f.Source)
	case f.Source != nil:
		where = fmt.Sprintf("%s:%d:%d", f.Source.URL, f.Source.Line+1, f.Source.Column+1)
	default:
		where = fmt.Sprintf("%s:%d:%d", f.URL, f.Line+1, f.Column+1)
	}
	return fmt.Sprintf("at %s (%s)", name, where)
}

// asyncBanner renders a fixed-width separator for an async boundary,
// seeded with the boundary's description and padded with dashes. The
// banner is always exactly bannerWidth wide; an oversized description is
// shortened to fit.
func asyncBanner(description string) string {
	if description == "" {
		description = "async"
	}
	const frame = len("--- ") + len(" ")
	if len(description) > bannerWidth-frame {
		description = description[:bannerWidth-frame-3] + "..."
	}
	s := "--- " + description + " "
	if len(s) < bannerWidth {
		s += strings.Repeat("-", bannerWidth-len(s))
	}
	return s
}
