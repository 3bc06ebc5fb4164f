// Package message defines the JSON-RPC structures exchanged with the billing engine.
//
// The engine speaks the net/rpc flavour of JSON-RPC: a request is
// {"method", "params", "id"} with params always a one-element array, and a
// response is {"id", "result", "error"} where error is a string or null.
// No "jsonrpc" version member is sent.
package message

import (
	"bytes"
	"encoding/json"
	"strconv"
)

// Envelope is a single outbound call.
//
//   - Method: "Service.Method", e.g. "ApierV2.GetAccount"
//   - Params: always exactly one element, the caller's options value, untouched
//   - ID:     only present when the caller supplied a non-zero string or number
type Envelope struct {
	Method string `json:"method"`
	Params []any  `json:"params"`
	ID     any    `json:"id,omitempty"`
}

// NewEnvelope wraps params into a one-element params array and attaches id
// only when IsZeroID reports it as absent.
func NewEnvelope(method string, params any, id any) *Envelope {
	env := &Envelope{
		Method: method,
		Params: []any{params},
	}
	if !IsZeroID(id) {
		env.ID = id
	}
	return env
}

// Response is the decoded body of an engine reply. Result and Error are kept
// raw so the caller decides how to interpret them.
type Response struct {
	ID     json.RawMessage `json:"id,omitempty"`
	Result json.RawMessage `json:"result,omitempty"`
	Error  json.RawMessage `json:"error,omitempty"`
}

// ErrorMessage reports whether the response carries a truthy error member and
// returns its text. Strings are unquoted; other JSON values are returned raw.
// null, "", false and 0 are treated as no error.
func (r *Response) ErrorMessage() (string, bool) {
	raw := bytes.TrimSpace(r.Error)
	if len(raw) == 0 {
		return "", false
	}
	switch string(raw) {
	case "null", "false", `""`:
		return "", false
	}
	if raw[0] == '"' {
		var s string
		if err := json.Unmarshal(raw, &s); err == nil {
			return s, s != ""
		}
	}
	if f, err := strconv.ParseFloat(string(raw), 64); err == nil && f == 0 {
		return "", false
	}
	return string(raw), true
}

// ResultOrNull returns the result member, substituting JSON null when the
// engine omitted it.
func (r *Response) ResultOrNull() json.RawMessage {
	if len(bytes.TrimSpace(r.Result)) == 0 {
		return json.RawMessage("null")
	}
	return r.Result
}

// Request is the server-side view of an Envelope: params stay raw until the
// target method's argument type is known.
type Request struct {
	Method string            `json:"method"`
	Params []json.RawMessage `json:"params"`
	ID     json.RawMessage   `json:"id,omitempty"`
}

// Reply is what a server writes back. Result and Error are always present,
// null when unused, matching net/rpc/jsonrpc.
type Reply struct {
	ID     json.RawMessage `json:"id"`
	Result any             `json:"result"`
	Error  any             `json:"error"`
}

// IsZeroID reports whether id should be left off the envelope: nil, the empty
// string and numeric zero all count as "no id".
func IsZeroID(id any) bool {
	switch v := id.(type) {
	case nil:
		return true
	case string:
		return v == ""
	case int:
		return v == 0
	case int8:
		return v == 0
	case int16:
		return v == 0
	case int32:
		return v == 0
	case int64:
		return v == 0
	case uint:
		return v == 0
	case uint8:
		return v == 0
	case uint16:
		return v == 0
	case uint32:
		return v == 0
	case uint64:
		return v == 0
	case float32:
		return v == 0
	case float64:
		return v == 0
	case json.Number:
		f, err := v.Float64()
		return v == "" || (err == nil && f == 0)
	}
	return false
}

// ValidID reports whether id is one of the shapes JSON-RPC allows for a
// request identifier: a string or a number.
func ValidID(id any) bool {
	switch v := id.(type) {
	case nil, string,
		int, int8, int16, int32, int64,
		uint, uint8, uint16, uint32, uint64,
		float32, float64:
		return true
	case json.Number:
		_, err := v.Float64()
		return err == nil
	}
	return false
}
