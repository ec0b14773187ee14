package api

import "encoding/json"

// Version is the JSON-RPC version string stamped on every envelope.
const Version = "2.0"

// ProtocolVersion is the MCP protocol revision this server implements.
const ProtocolVersion = "2024-11-05"

// Request represents a JSON-RPC 2.0 request envelope read from the transport.
// The ID is kept raw so numeric and string identifiers round-trip untouched.
type Request struct {
	JSONRPC string          `json:"jsonrpc"`
	ID      json.RawMessage `json:"id,omitempty"`
	Method  string          `json:"method"`
	Params  json.RawMessage `json:"params,omitempty"`
}

// Response represents a JSON-RPC 2.0 response envelope. Exactly one of
// Result/Error is set.
type Response struct {
	JSONRPC string          `json:"jsonrpc"`
	ID      json.RawMessage `json:"id"`
	Result  any             `json:"result,omitempty"`
	Error   *Error          `json:"error,omitempty"`
}

// Error represents a JSON-RPC 2.0 error object.
type Error struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// HasID reports whether the request carried an id field. Requests without an
// id still receive a response; the id is serialized as null.
func (r *Request) HasID() bool {
	return r.ID != nil
}

// ToolCallParams carries the tool name and arguments of a tools/call request.
type ToolCallParams struct {
	Name      string          `json:"name"`
	Arguments json.RawMessage `json:"arguments,omitempty"`
}

// ServerInfo identifies the server in the initialize result.
type ServerInfo struct {
	Name    string `json:"name"`
	Version string `json:"version"`
}
