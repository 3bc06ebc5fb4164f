package middleware

import (
	"cgrates-rpc/message"
	"cgrates-rpc/transport"
	"context"
	"time"

	"go.uber.org/zap"
)

func LoggingMiddleware(logger *zap.Logger) Middleware {
	if logger == nil {
		logger = zap.NewNop()
	}
	return func(next HandlerFunc) HandlerFunc {
		return func(ctx context.Context, url string, env *message.Envelope) (*transport.Response, error) {
			start := time.Now()
			resp, err := next(ctx, url, env)
			fields := []zap.Field{
				zap.String("call", describe(env)),
				zap.String("url", url),
				zap.Duration("duration", time.Since(start)),
			}
			if err != nil {
				logger.Warn("engine call failed", append(fields, zap.Error(err))...)
				return resp, err
			}
			if resp != nil {
				fields = append(fields, zap.Int("status", resp.StatusCode), zap.Int("bytes", len(resp.Body)))
			}
			logger.Debug("engine call", fields...)
			return resp, nil
		}
	}
}
