package tool

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/tkingovr/gemini-mcp/api"
)

// Handler executes a single tool. Call returns either a result or a
// protocol-level error; it never does both.
type Handler interface {
	Descriptor() api.Tool
	Call(ctx context.Context, args json.RawMessage) (*api.CallResult, *api.Error)
}

// Registry maps tool names to handlers. It is populated at startup and
// read-only afterwards, so no locking is needed.
type Registry struct {
	order []string
	tools map[string]Handler
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{tools: make(map[string]Handler)}
}

// Register adds a handler. Names must be unique.
func (r *Registry) Register(h Handler) error {
	name := h.Descriptor().Name
	if name == "" {
		return fmt.Errorf("tool has empty name")
	}
	if _, exists := r.tools[name]; exists {
		return fmt.Errorf("duplicate tool name %q", name)
	}
	r.order = append(r.order, name)
	r.tools[name] = h
	return nil
}

// Lookup returns the handler for a tool name.
func (r *Registry) Lookup(name string) (Handler, bool) {
	h, ok := r.tools[name]
	return h, ok
}

// Descriptors returns all registered tools in registration order.
func (r *Registry) Descriptors() []api.Tool {
	ds := make([]api.Tool, 0, len(r.order))
	for _, name := range r.order {
		ds = append(ds, r.tools[name].Descriptor())
	}
	return ds
}
