package codec

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
)

// JSONCodec uses encoding/json. Decode keeps numbers as json.Number when the
// target is an interface, so balances and ids survive without float rounding.
type JSONCodec struct{}

func (c *JSONCodec) Encode(v any) ([]byte, error) {
	return json.Marshal(v)
}

func (c *JSONCodec) Decode(data []byte, v any) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	if err := dec.Decode(v); err != nil {
		return err
	}
	// Trailing garbage after the first value means the body was not one JSON document.
	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		return errors.New("codec: unexpected data after JSON value")
	}
	return nil
}

func (c *JSONCodec) ContentType() string {
	return "application/json"
}
