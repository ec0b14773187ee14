package api

// Tool describes a capability the server advertises via tools/list.
// InputSchema is a JSON Schema document kept as a generic map so that
// config-defined tools can carry arbitrary schemas.
type Tool struct {
	Name        string         `json:"name"`
	Description string         `json:"description"`
	InputSchema map[string]any `json:"inputSchema"`
}

// ContentItem is a single item in a tool call result.
type ContentItem struct {
	Type string `json:"type"`
	Text string `json:"text"`
}

// CallResult is the successful result of a tools/call request.
type CallResult struct {
	Content []ContentItem `json:"content"`
}

// TextResult wraps plain text as a single text-typed content item.
func TextResult(text string) *CallResult {
	return &CallResult{Content: []ContentItem{{Type: "text", Text: text}}}
}
