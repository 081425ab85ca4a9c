package context

import (
	"context"

	"github.com/google/uuid"
)

// RequestContextKey represents keys used in request context
type RequestContextKey string

const (
	// RequestIDKey is the context key for request ID
	RequestIDKey RequestContextKey = "request_id"
	// UserAgentKey is the context key for user agent
	UserAgentKey RequestContextKey = "user_agent"
	// RemoteAddrKey is the context key for remote address
	RemoteAddrKey RequestContextKey = "remote_addr"
)

// WithRequestID adds a request ID to the context
func WithRequestID(ctx context.Context, requestID string) context.Context {
	return context.WithValue(ctx, RequestIDKey, requestID)
}

// GetRequestID retrieves the request ID from context
func GetRequestID(ctx context.Context) string {
	if requestID, ok := ctx.Value(RequestIDKey).(string); ok {
		return requestID
	}
	return ""
}

// GetUserAgent retrieves the user agent from context
func GetUserAgent(ctx context.Context) string {
	if userAgent, ok := ctx.Value(UserAgentKey).(string); ok {
		return userAgent
	}
	return ""
}

// GetRemoteAddr retrieves the remote address from context
func GetRemoteAddr(ctx context.Context) string {
	if remoteAddr, ok := ctx.Value(RemoteAddrKey).(string); ok {
		return remoteAddr
	}
	return ""
}

// NewRequestContext creates a request context with a generated id and
// caller metadata
func NewRequestContext(ctx context.Context, userAgent, remoteAddr string) context.Context {
	ctx = WithRequestID(ctx, uuid.New().String())
	ctx = context.WithValue(ctx, UserAgentKey, userAgent)
	ctx = context.WithValue(ctx, RemoteAddrKey, remoteAddr)
	return ctx
}
