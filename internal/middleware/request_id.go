package middleware

import (
	"net/http"

	reqcontext "github.com/prajwalbharadwajbm/adweave/internal/context"
)

// RequestIDMiddleware adds request IDs to incoming requests
type RequestIDMiddleware struct{}

// NewRequestIDMiddleware creates a new request ID middleware
func NewRequestIDMiddleware() *RequestIDMiddleware {
	return &RequestIDMiddleware{}
}

// Middleware returns the HTTP middleware function for request IDs
func (m *RequestIDMiddleware) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// Honor an upstream X-Request-ID when present
		ctx := r.Context()
		if existing := r.Header.Get("X-Request-ID"); existing != "" {
			ctx = reqcontext.WithRequestID(ctx, existing)
		} else {
			ctx = reqcontext.NewRequestContext(ctx, r.UserAgent(), r.RemoteAddr)
		}

		// Echo the id back so clients can correlate
		w.Header().Set("X-Request-ID", reqcontext.GetRequestID(ctx))

		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
