package client

// Every failed call returns exactly one of the error types below. They are
// matched with errors.As; none of them is retried or recovered internally.

// ConstructionError reports an unusable client configuration, such as an
// empty URL or an engine that could not be discovered.
type ConstructionError struct {
	Message string
	Err     error
}

func (e *ConstructionError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

func (e *ConstructionError) Unwrap() error {
	return e.Err
}

// ValidationError reports a malformed call. It is returned before any network
// activity, so nothing reached the engine.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

func required(field string) *ValidationError {
	return &ValidationError{Field: field, Message: field + " is required"}
}

// TransportError wraps a failure to complete the HTTP exchange. The message
// is the transport's own, and errors.Is reaches the original error.
type TransportError struct {
	Err error
}

func (e *TransportError) Error() string {
	return e.Err.Error()
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

// ProtocolError reports a reply with a status other than 200, or a 200 reply
// whose body is not a JSON-RPC response. Body is the raw response text, with
// a JSON string body unquoted.
type ProtocolError struct {
	StatusCode int
	Body       string
}

func (e *ProtocolError) Error() string {
	return e.Body
}

// ApplicationError carries the engine's own error member verbatim.
type ApplicationError struct {
	Message string
}

func (e *ApplicationError) Error() string {
	return e.Message
}
