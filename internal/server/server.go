package server

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/probelab/diaglens/internal/diag"
	"github.com/probelab/diaglens/internal/session"
	"github.com/probelab/diaglens/internal/textutil"
)

// ListMessagesArgs represents the arguments for the list_messages tool
type ListMessagesArgs struct {
	Kind     string `json:"kind,omitempty" jsonschema:"Only list records of this kind (e.g. 'log', 'warning', 'error')"`
	All      bool   `json:"all,omitempty" jsonschema:"List every retained record instead of only records new to this session (default: false)"`
	Truncate int    `json:"truncate,omitempty" jsonschema:"Shorten each line to at most this many characters (0 = full lines)"`
}

// GetMessageArgs represents the arguments for the get_message tool
type GetMessageArgs struct {
	Msgid   int64 `json:"msgid" jsonschema:"Record identifier as shown by list_messages"`
	Verbose bool  `json:"verbose,omitempty" jsonschema:"Return the detailed rendering with arguments, stack trace and cause chain (default: false)"`
}

// ClearMessagesArgs represents the arguments for the clear_messages tool
type ClearMessagesArgs struct{}

// NewMCPServer creates and configures the MCP server
func NewMCPServer(sessionMgr *session.Manager, logger *slog.Logger) *mcp.Server {
	server := mcp.NewServer(&mcp.Implementation{
		Name:    "diaglens",
		Version: "1.0.0",
	}, &mcp.ServerOptions{
		Instructions: `
Diagnostics captured from an instrumented page or script.

diaglens collects console messages and uncaught runtime errors reported by
the target and renders them in two fidelities:

- Concise: one line per record, "msgid=<id> [<kind>] <text> (<n> args)".
  Cheap to produce and cheap to read; use it for listings.
- Detailed: the record's resolved arguments, its symbolicated stack trace
  (source-mapped where a map is registered, vendor frames elided by the
  ignore list) and the full "Caused by:" chain.

Available Tools:
1. "list_messages" - Concise listing of captured records. By default only
   records you have not listed before in this session are returned; pass
   all=true to relist everything.
2. "get_message" - One record by msgid. Pass verbose=true for the
   detailed rendering.
3. "clear_messages" - Drop all retained records.

Recommended Workflow:
1. Call list_messages to see what the target reported
2. Pick the msgid you care about
3. Call get_message with verbose=true to see arguments and stack traces
`,
	})

	server.AddReceivingMiddleware(createSessionInjectionMiddleware(sessionMgr))
	server.AddReceivingMiddleware(createLoggingMiddleware(logger))

	// Register list_messages tool
	mcp.AddTool(server, &mcp.Tool{
		Name:        "list_messages",
		Description: "List captured console messages and uncaught errors, one concise line per record. By default only records new to this session are returned.",
	}, func(ctx context.Context, req *mcp.CallToolRequest, args ListMessagesArgs) (*mcp.CallToolResult, any, error) {
		sessionCtx, err := getSessionFromContext(ctx)
		if err != nil {
			return nil, nil, err
		}
		return textResult(listMessages(ctx, sessionCtx, args)), nil, nil
	})

	// Register get_message tool
	mcp.AddTool(server, &mcp.Tool{
		Name:        "get_message",
		Description: "Show one captured record by msgid. With verbose=true the record's resolved arguments, symbolicated stack trace and cause chain are included.",
	}, func(ctx context.Context, req *mcp.CallToolRequest, args GetMessageArgs) (*mcp.CallToolResult, any, error) {
		sessionCtx, err := getSessionFromContext(ctx)
		if err != nil {
			return nil, nil, err
		}
		text, err := getMessage(ctx, sessionCtx, args)
		if err != nil {
			return nil, nil, err
		}
		return textResult(text), nil, nil
	})

	// Register clear_messages tool
	mcp.AddTool(server, &mcp.Tool{
		Name:        "clear_messages",
		Description: "Drop all retained records. Record ids keep increasing across clears.",
	}, func(ctx context.Context, req *mcp.CallToolRequest, args ClearMessagesArgs) (*mcp.CallToolResult, any, error) {
		sessionCtx, err := getSessionFromContext(ctx)
		if err != nil {
			return nil, nil, err
		}
		sessionCtx.Store.Clear()
		return textResult("Cleared."), nil, nil
	})

	return server
}

func textResult(text string) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		Content: []mcp.Content{
			&mcp.TextContent{Text: text},
		},
	}
}

// listMessages renders the concise listing and advances the session's
// seen cursor past every record it returned. Listing is the only
// operation that marks records seen.
func listMessages(ctx context.Context, sessionCtx *session.Context, args ListMessagesArgs) string {
	afterID := sessionCtx.LastSeen()
	if args.All {
		afterID = 0
	}
	records := sessionCtx.Store.List(afterID, args.Kind)

	if len(records) == 0 {
		return "No new console messages."
	}

	lines := make([]string, 0, len(records))
	for _, rec := range records {
		line := diag.From(ctx, rec.Source(), diag.Options{
			ID:  rec.ID,
			Res: sessionCtx.Resolvers,
		}).String()
		if args.Truncate > 0 {
			line = textutil.Ellipsize(line, args.Truncate)
		}
		lines = append(lines, line)
		sessionCtx.MarkSeen(rec.ID)
	}

	return strings.Join(lines, "\n")
}

// getMessage renders one record by msgid. It leaves the seen cursor
// untouched: fetching record N must not hide still-unlisted records
// before it from the next default listing.
func getMessage(ctx context.Context, sessionCtx *session.Context, args GetMessageArgs) (string, error) {
	rec, ok := sessionCtx.Store.Get(args.Msgid)
	if !ok {
		return "", fmt.Errorf("message %d not found", args.Msgid)
	}

	formatter := diag.From(ctx, rec.Source(), diag.Options{
		ID:     rec.ID,
		Detail: args.Verbose,
		Res:    sessionCtx.Resolvers,
	})

	if args.Verbose {
		return formatter.DetailedString(), nil
	}
	return formatter.String(), nil
}
