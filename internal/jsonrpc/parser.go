package jsonrpc

import (
	"encoding/json"
	"fmt"

	"github.com/tkingovr/gemini-mcp/api"
)

// Parse decodes a raw line into a Request envelope. A line that is not a JSON
// object fails here; the transport loop drops such lines without responding.
// The jsonrpc version field is not enforced, matching the permissive behavior
// of the hosts this bridge is used with.
func Parse(data []byte) (*api.Request, error) {
	var req api.Request
	if err := json.Unmarshal(data, &req); err != nil {
		return nil, fmt.Errorf("invalid request envelope: %w", err)
	}
	return &req, nil
}

// ExtractToolCall decodes the params of a tools/call request. Absent params
// yield empty call params; a non-object params is an error the caller maps to
// invalid-params.
func ExtractToolCall(req *api.Request) (*api.ToolCallParams, error) {
	if req.Params == nil {
		return &api.ToolCallParams{}, nil
	}
	var params api.ToolCallParams
	if err := json.Unmarshal(req.Params, &params); err != nil {
		return nil, fmt.Errorf("parsing tools/call params: %w", err)
	}
	return &params, nil
}

// ExtractArguments unmarshals raw tool arguments into a generic map, for
// schema validation and stdin payloads. Absent arguments become an empty map.
func ExtractArguments(raw json.RawMessage) (map[string]any, error) {
	if raw == nil {
		return map[string]any{}, nil
	}
	var args map[string]any
	if err := json.Unmarshal(raw, &args); err != nil {
		return nil, fmt.Errorf("parsing arguments: %w", err)
	}
	if args == nil {
		args = map[string]any{}
	}
	return args, nil
}
