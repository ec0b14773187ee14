package jsonrpc

import (
	"encoding/json"

	"github.com/tkingovr/gemini-mcp/api"
)

// JSON-RPC error codes used by the bridge.
const (
	CodeMethodNotFound = -32601
	CodeInvalidParams  = -32602
	CodeInternalError  = -32603
)

// NewResult creates a success response for the given request id.
func NewResult(id json.RawMessage, result any) *api.Response {
	return &api.Response{
		JSONRPC: api.Version,
		ID:      normalizeID(id),
		Result:  result,
	}
}

// NewError creates an error response for the given request id.
func NewError(id json.RawMessage, code int, message string) *api.Response {
	return &api.Response{
		JSONRPC: api.Version,
		ID:      normalizeID(id),
		Error: &api.Error{
			Code:    code,
			Message: message,
		},
	}
}

// Marshal encodes a Response to compact JSON, one envelope per line.
func Marshal(resp *api.Response) ([]byte, error) {
	return json.Marshal(resp)
}

// Requests without an id still get a response; the id is echoed as null so the
// envelope always carries the field.
func normalizeID(id json.RawMessage) json.RawMessage {
	if id == nil {
		return json.RawMessage("null")
	}
	return id
}
