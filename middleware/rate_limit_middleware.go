package middleware

import (
	"cgrates-rpc/message"
	"cgrates-rpc/transport"
	"context"

	"golang.org/x/time/rate"
)

// RateLimitMiddleware throttles outbound calls with a token bucket. Callers
// wait for a token instead of being rejected; a cancelled context while
// waiting fails the exchange.
func RateLimitMiddleware(r float64, burst int) Middleware {
	limiter := rate.NewLimiter(rate.Limit(r), burst)
	return func(next HandlerFunc) HandlerFunc {
		return func(ctx context.Context, url string, env *message.Envelope) (*transport.Response, error) {
			if err := limiter.Wait(ctx); err != nil {
				return nil, err
			}
			return next(ctx, url, env)
		}
	}
}
