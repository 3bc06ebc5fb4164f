// Package transport implements the single capability the client needs from the
// network: POST a JSON payload to a URL and hand back a status code and body.
//
//	client ──Post(ctx, url, envelope)──→ Transport ──HTTP POST──→ engine
//	client ←──── *Response{StatusCode, Body} ────── Transport
//
// Anything that satisfies Transport can stand in for the real HTTP exchange;
// tests use TransportFunc to script replies without a network.
package transport

import (
	"bytes"
	"cgrates-rpc/codec"
	"context"
	"fmt"
	"io"
	"net/http"
	"time"
)

// Response is what came back from one exchange. Body is the raw bytes; the
// caller decides how to decode them.
type Response struct {
	StatusCode int
	Body       []byte
}

// Transport performs exactly one exchange per Post call. Implementations must
// be safe for concurrent use.
type Transport interface {
	Post(ctx context.Context, url string, payload any) (*Response, error)
}

// TransportFunc adapts an ordinary function to the Transport interface.
type TransportFunc func(ctx context.Context, url string, payload any) (*Response, error)

func (f TransportFunc) Post(ctx context.Context, url string, payload any) (*Response, error) {
	return f(ctx, url, payload)
}

// Doer is the subset of *http.Client used by HTTPTransport.
type Doer interface {
	Do(req *http.Request) (*http.Response, error)
}

// HTTPConfig tunes the default *http.Client built by NewHTTPTransport.
// Zero values keep the net/http defaults, including no timeout.
type HTTPConfig struct {
	Timeout         time.Duration // Whole-exchange deadline enforced by http.Client
	MaxConnsPerHost int           // Upper bound on open connections to the engine
	MaxIdleConns    int           // Idle keep-alive connections kept for reuse
}

// HTTPTransport posts JSON-encoded payloads over HTTP.
type HTTPTransport struct {
	doer  Doer
	codec codec.Codec
}

// NewHTTPTransport builds a transport on a fresh *http.Client configured from cfg.
// A nil cfg gives http.DefaultTransport settings.
func NewHTTPTransport(cfg *HTTPConfig) *HTTPTransport {
	if cfg == nil {
		return NewHTTPTransportWithDoer(http.DefaultClient)
	}
	rt := http.DefaultTransport.(*http.Transport).Clone()
	if cfg.MaxConnsPerHost > 0 {
		rt.MaxConnsPerHost = cfg.MaxConnsPerHost
	}
	if cfg.MaxIdleConns > 0 {
		rt.MaxIdleConns = cfg.MaxIdleConns
		rt.MaxIdleConnsPerHost = cfg.MaxIdleConns
	}
	return NewHTTPTransportWithDoer(&http.Client{Transport: rt, Timeout: cfg.Timeout})
}

// NewHTTPTransportWithDoer uses the given Doer, typically a caller-owned *http.Client.
func NewHTTPTransportWithDoer(doer Doer) *HTTPTransport {
	if doer == nil {
		doer = http.DefaultClient
	}
	return &HTTPTransport{doer: doer, codec: codec.Default}
}

// Post encodes payload, sends it, and reads the whole response body.
// Non-200 statuses are not errors here; only failures to complete the
// exchange are.
func (t *HTTPTransport) Post(ctx context.Context, url string, payload any) (*Response, error) {
	body, err := t.codec.Encode(payload)
	if err != nil {
		return nil, fmt.Errorf("transport: encode request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", t.codec.ContentType()+"; charset=utf-8")
	req.Header.Set("Accept", t.codec.ContentType())

	resp, err := t.doer.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("transport: read response: %w", err)
	}

	return &Response{StatusCode: resp.StatusCode, Body: data}, nil
}
