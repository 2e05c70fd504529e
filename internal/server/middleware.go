package server

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/probelab/diaglens/internal/session"
)

// contextKey is the context key type for request-scoped values.
type contextKey string

const sessionContextKey contextKey = "session"

// getSessionFromContext retrieves the session context from the request
// context. The session context is stored as a value to keep request
// lifecycle separate from session lifecycle.
func getSessionFromContext(ctx context.Context) (*session.Context, error) {
	sessionCtx, ok := ctx.Value(sessionContextKey).(*session.Context)
	if !ok || sessionCtx == nil {
		return nil, fmt.Errorf("session context not found in request context")
	}
	return sessionCtx, nil
}

// createSessionInjectionMiddleware creates middleware that resolves the
// MCP session to its Context and stores it in the request context.
func createSessionInjectionMiddleware(sessionMgr *session.Manager) mcp.Middleware {
	return func(next mcp.MethodHandler) mcp.MethodHandler {
		return func(
			ctx context.Context,
			method string,
			req mcp.Request,
		) (mcp.Result, error) {
			sessionID := req.GetSession().ID()
			sessionCtx := sessionMgr.GetOrCreateSession(sessionID)
			ctx = context.WithValue(ctx, sessionContextKey, sessionCtx)
			return next(ctx, method, req)
		}
	}
}

// createLoggingMiddleware creates middleware that logs all MCP method
// calls with their duration and outcome.
func createLoggingMiddleware(logger *slog.Logger) mcp.Middleware {
	return func(next mcp.MethodHandler) mcp.MethodHandler {
		return func(
			ctx context.Context,
			method string,
			req mcp.Request,
		) (mcp.Result, error) {
			start := time.Now()
			sessionID := req.GetSession().ID()

			result, err := next(ctx, method, req)

			duration := time.Since(start)
			if err != nil {
				logger.Error("mcp request failed",
					"session", sessionID, "method", method,
					"duration", duration, "error", err)
			} else {
				logger.Info("mcp request",
					"session", sessionID, "method", method,
					"duration", duration)
			}

			return result, err
		}
	}
}
