package sourcemap

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/probelab/diaglens/internal/diag"
)

var (
	// Separator lines between async fragments, e.g. "--- setTimeout ---".
	bannerPattern = regexp.MustCompile(`^-{3,}\s+(.*?)\s*-*$`)
	// at functionName (file:line:column)
	framePattern = regexp.MustCompile(`^at\s+(.+?)\s+\((.+?):(\d+):(\d+)\)$`)
	// at file:line:column
	bareFramePattern = regexp.MustCompile(`^at\s+(.+?):(\d+):(\d+)$`)
	// file:line:column (no "at")
	locPattern = regexp.MustCompile(`^(.+?):(\d+):(\d+)$`)
	// at functionName (native)
	nativePattern = regexp.MustCompile(`^at\s+(.+?)\s+\(native\)$`)
)

// ParseStack parses raw stack-trace text into the fragment model. Frames
// accumulate into the synchronous fragment until the first async
// separator line; each separator starts a new async fragment labeled with
// the separator's description. Unparseable lines are skipped. Positions in
// stack text are 1-based and are converted to the 0-based internal
// representation.
func ParseStack(text string) *diag.StackTrace {
	st := &diag.StackTrace{}
	current := &st.Sync

	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		if m := bannerPattern.FindStringSubmatch(line); m != nil {
			st.Async = append(st.Async, diag.AsyncFragment{Description: m[1]})
			current = &st.Async[len(st.Async)-1].Frames
			continue
		}

		if f := parseFrameLine(line); f != nil {
			*current = append(*current, *f)
		}
	}

	if len(st.Sync) == 0 && len(st.Async) == 0 {
		return nil
	}
	return st
}

// parseFrameLine parses one stack line. Handled forms:
//
//	at functionName (file:line:column)
//	at file:line:column
//	file:line:column
//	at functionName (native)
func parseFrameLine(line string) *diag.Frame {
	if m := nativePattern.FindStringSubmatch(line); m != nil {
		return &diag.Frame{Name: m[1], URL: "native"}
	}
	if m := framePattern.FindStringSubmatch(line); m != nil {
		name := m[1]
		if name == "<anonymous>" {
			name = ""
		}
		return frameAt(name, m[2], m[3], m[4])
	}
	if m := bareFramePattern.FindStringSubmatch(line); m != nil {
		return frameAt("", m[1], m[2], m[3])
	}
	if m := locPattern.FindStringSubmatch(line); m != nil {
		return frameAt("", m[1], m[2], m[3])
	}
	return nil
}

func frameAt(name, url, line, column string) *diag.Frame {
	ln, _ := strconv.Atoi(line)
	col, _ := strconv.Atoi(column)
	return &diag.Frame{
		Name:   name,
		URL:    url,
		Line:   max(ln-1, 0),
		Column: max(col-1, 0),
	}
}
