package middleware

import (
	"cgrates-rpc/message"
	"cgrates-rpc/transport"
	"context"
	"time"
)

// TimeOutMiddleware bounds a single exchange. The client adds no deadline on
// its own; this is for callers who want one at the transport layer.
func TimeOutMiddleware(timeout time.Duration) Middleware {
	return func(next HandlerFunc) HandlerFunc {
		return func(ctx context.Context, url string, env *message.Envelope) (*transport.Response, error) {
			ctx, cancel := context.WithTimeout(ctx, timeout)
			defer cancel()
			return next(ctx, url, env)
		}
	}
}
