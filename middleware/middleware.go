// Package middleware decorates a transport with cross-cutting behaviour.
//
// Middlewares wrap the single exchange the client performs per call; they
// never replay it. Chain(A, B)(h) runs A.before, B.before, h, B.after, A.after.
package middleware

import (
	"cgrates-rpc/message"
	"cgrates-rpc/transport"
	"context"
	"fmt"
)

type HandlerFunc func(ctx context.Context, url string, env *message.Envelope) (*transport.Response, error)

type Middleware func(next HandlerFunc) HandlerFunc

// Chain combines several middlewares into one, outermost first.
func Chain(middlewares ...Middleware) Middleware {
	return func(next HandlerFunc) HandlerFunc {
		for i := len(middlewares) - 1; i >= 0; i-- {
			next = middlewares[i](next)
		}
		return next
	}
}

// Apply wraps t so every Post runs through the given middlewares.
// Payloads that are not envelopes bypass the chain.
func Apply(t transport.Transport, middlewares ...Middleware) transport.Transport {
	if len(middlewares) == 0 {
		return t
	}
	handler := Chain(middlewares...)(func(ctx context.Context, url string, env *message.Envelope) (*transport.Response, error) {
		return t.Post(ctx, url, env)
	})
	return transport.TransportFunc(func(ctx context.Context, url string, payload any) (*transport.Response, error) {
		env, ok := payload.(*message.Envelope)
		if !ok {
			return t.Post(ctx, url, payload)
		}
		return handler(ctx, url, env)
	})
}

func describe(env *message.Envelope) string {
	if env.ID == nil {
		return env.Method
	}
	return fmt.Sprintf("%s#%v", env.Method, env.ID)
}
