// Package client is a thin JSON-RPC client for the CGRateS rating engine.
//
// Every named operation follows the same two steps:
//
//	GetAccount(opts, id) ── validate, build envelope ──→ *Call   (or *ValidationError, no I/O)
//	call.Do(ctx)         ── one HTTP POST, translate ──→ result (or Transport/Protocol/ApplicationError)
//
// Splitting the steps keeps "malformed call" apart from "call failed in
// flight": the first is known before anything is sent.
package client

import (
	"bytes"
	"cgrates-rpc/codec"
	"cgrates-rpc/loadbalance"
	"cgrates-rpc/message"
	"cgrates-rpc/middleware"
	"cgrates-rpc/registry"
	"cgrates-rpc/transport"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"go.uber.org/zap"
)

// Client talks to one engine endpoint. It holds no per-call state and is
// safe for concurrent use.
type Client struct {
	url       string
	transport transport.Transport
	codec     codec.Codec
	logger    *zap.Logger
}

type config struct {
	transport   transport.Transport
	logger      *zap.Logger
	middlewares []middleware.Middleware
}

// Option customises a Client at construction.
type Option func(*config)

// WithTransport replaces the HTTP transport, e.g. with a test double.
func WithTransport(t transport.Transport) Option {
	return func(c *config) {
		c.transport = t
	}
}

// WithHTTPClient sends requests through a caller-owned *http.Client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *config) {
		c.transport = transport.NewHTTPTransportWithDoer(hc)
	}
}

// WithLogger enables debug logging of every exchange.
func WithLogger(logger *zap.Logger) Option {
	return func(c *config) {
		c.logger = logger
	}
}

// WithMiddleware wraps the transport with the given middlewares, outermost first.
func WithMiddleware(middlewares ...middleware.Middleware) Option {
	return func(c *config) {
		c.middlewares = append(c.middlewares, middlewares...)
	}
}

// New returns a client for the engine at url. An empty url fails immediately.
func New(url string, opts ...Option) (*Client, error) {
	if url == "" {
		return nil, &ConstructionError{Message: "URL is required"}
	}

	cfg := &config{}
	for _, opt := range opts {
		opt(cfg)
	}
	if cfg.transport == nil {
		cfg.transport = transport.NewHTTPTransport(nil)
	}

	logger := cfg.logger
	if logger == nil {
		logger = zap.NewNop()
	} else {
		cfg.middlewares = append([]middleware.Middleware{middleware.LoggingMiddleware(logger)}, cfg.middlewares...)
	}

	return &Client{
		url:       url,
		transport: middleware.Apply(cfg.transport, cfg.middlewares...),
		codec:     codec.Default,
		logger:    logger,
	}, nil
}

// NewFromRegistry discovers the instances of service, lets bal pick one and
// builds a client for it. The choice is made once; the client never moves
// to another engine afterwards. A nil bal picks round robin.
func NewFromRegistry(ctx context.Context, reg registry.Registry, bal loadbalance.Balancer, service string, opts ...Option) (*Client, error) {
	if reg == nil {
		return nil, &ConstructionError{Message: "registry is required"}
	}
	if bal == nil {
		bal = &loadbalance.RoundRobinBalancer{}
	}

	instances, err := reg.Discover(ctx, service)
	if err != nil {
		return nil, &ConstructionError{Message: "discover " + service, Err: err}
	}

	instance, err := bal.Pick(instances)
	if err != nil {
		return nil, &ConstructionError{Message: "pick " + service + " instance", Err: err}
	}

	return New(instance.Addr, opts...)
}

// URL returns the engine endpoint this client posts to.
func (c *Client) URL() string {
	return c.url
}

// Call prepares an arbitrary engine method. params becomes the single params
// element; id is attached unless it is nil, "" or zero.
func (c *Client) Call(method string, params any, id any) (*Call, error) {
	if method == "" {
		return nil, required("method")
	}
	return c.newCall(method, params, id)
}

func (c *Client) newCall(method string, params any, id any) (*Call, error) {
	if !message.ValidID(id) {
		return nil, &ValidationError{Field: "id", Message: fmt.Sprintf("id must be a string or number, got %T", id)}
	}
	return &Call{
		Envelope: message.NewEnvelope(method, params, id),
		client:   c,
	}, nil
}

// Call is a validated request that has not been sent yet. Each Do, Into or
// Go performs a fresh exchange.
type Call struct {
	Envelope *message.Envelope
	client   *Client
}

// Outcome is delivered by Go once the exchange completes.
type Outcome struct {
	Result json.RawMessage
	Err    error
}

// Do sends the envelope and returns the engine's result member.
func (call *Call) Do(ctx context.Context) (json.RawMessage, error) {
	return call.client.perform(ctx, call.Envelope)
}

// Into sends the envelope and decodes the result into v.
func (call *Call) Into(ctx context.Context, v any) error {
	result, err := call.Do(ctx)
	if err != nil {
		return err
	}
	if err := call.client.codec.Decode(result, v); err != nil {
		return fmt.Errorf("client: decode %s result: %w", call.Envelope.Method, err)
	}
	return nil
}

// Go sends the envelope in the background. The returned channel yields
// exactly one Outcome and is then closed.
func (call *Call) Go(ctx context.Context) <-chan Outcome {
	done := make(chan Outcome, 1)
	go func() {
		defer close(done)
		result, err := call.Do(ctx)
		done <- Outcome{Result: result, Err: err}
	}()
	return done
}

// perform issues one POST and maps the reply, checking in order: transport
// failure, non-200 status, engine error member, result.
func (c *Client) perform(ctx context.Context, env *message.Envelope) (json.RawMessage, error) {
	resp, err := c.transport.Post(ctx, c.url, env)
	if err != nil {
		return nil, &TransportError{Err: err}
	}
	if resp == nil {
		return nil, &TransportError{Err: errors.New("transport returned no response")}
	}

	if resp.StatusCode != http.StatusOK {
		c.logger.Debug("engine rejected call", zap.String("method", env.Method), zap.Int("status", resp.StatusCode))
		return nil, &ProtocolError{StatusCode: resp.StatusCode, Body: bodyText(resp.Body)}
	}

	body := bytes.TrimSpace(resp.Body)
	if len(body) == 0 {
		return json.RawMessage("null"), nil
	}

	if body[0] != '{' {
		// Valid JSON that is not an object carries neither result nor error.
		if json.Valid(body) {
			return json.RawMessage("null"), nil
		}
		return nil, &ProtocolError{StatusCode: resp.StatusCode, Body: bodyText(resp.Body)}
	}

	var reply message.Response
	if err := c.codec.Decode(body, &reply); err != nil {
		return nil, &ProtocolError{StatusCode: resp.StatusCode, Body: bodyText(resp.Body)}
	}

	if msg, ok := reply.ErrorMessage(); ok {
		c.logger.Debug("engine returned error", zap.String("method", env.Method), zap.String("error", msg))
		return nil, &ApplicationError{Message: msg}
	}

	return reply.ResultOrNull(), nil
}

// bodyText renders a response body for an error message: a JSON string is
// unquoted, anything else is returned as received.
func bodyText(body []byte) string {
	trimmed := bytes.TrimSpace(body)
	if len(trimmed) > 0 && trimmed[0] == '"' {
		var s string
		if err := json.Unmarshal(trimmed, &s); err == nil {
			return s
		}
	}
	return string(body)
}
