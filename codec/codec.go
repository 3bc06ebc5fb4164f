// Package codec serializes envelopes and engine replies.
//
// The engine only speaks JSON over HTTP, so JSONCodec is the single
// implementation; the interface stays so transports and the fake server
// share one seam for encoding.
package codec

type Codec interface {
	Encode(v any) ([]byte, error)
	Decode(data []byte, v any) error
	ContentType() string
}

// Default is the codec used when a component is not given one.
var Default Codec = &JSONCodec{}
