package mcp

import (
	"context"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"
)

type contextKey int

const sessionIDKey contextKey = iota

// defaultSessionID keys the browse session of transports without session
// IDs, such as stdio.
const defaultSessionID = "default"

// getSessionID extracts session ID from context.
func getSessionID(ctx context.Context) string {
	v, _ := ctx.Value(sessionIDKey).(string)
	return v
}

// sessionKey picks the browse session for a tool call.
func sessionKey(ctx context.Context, req *sdkmcp.CallToolRequest) string {
	var transportID string
	if req != nil && req.Session != nil {
		transportID = req.Session.ID()
	}
	return resolveSessionKey(transportID, getSessionID(ctx))
}

// resolveSessionKey prefers the transport's session ID. A client-chosen
// _meta.session_id only applies on transports without one, such as stdio,
// so HTTP callers cannot reach another connection's browse session.
func resolveSessionKey(transportID, requested string) string {
	if transportID != "" {
		return transportID
	}
	if requested != "" {
		return requested
	}
	return defaultSessionID
}

// sessionMiddleware stores _meta.session_id in the context for transports
// that carry no session ID of their own.
func sessionMiddleware() sdkmcp.Middleware {
	return func(next sdkmcp.MethodHandler) sdkmcp.MethodHandler {
		return func(ctx context.Context, method string, req sdkmcp.Request) (sdkmcp.Result, error) {
			var sessionID string

			// Some notifications (like "initialized") have nil params, and
			// GetMeta on a nil underlying value panics.
			if params := req.GetParams(); params != nil {
				func() {
					defer func() { recover() }()
					if meta := params.GetMeta(); meta != nil {
						if sid, ok := meta["session_id"].(string); ok {
							sessionID = sid
						}
					}
				}()
			}

			if sessionID != "" {
				ctx = context.WithValue(ctx, sessionIDKey, sessionID)
			}

			return next(ctx, method, req)
		}
	}
}
