package tool

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/tkingovr/gemini-mcp/api"
	"github.com/tkingovr/gemini-mcp/internal/jsonrpc"
	"github.com/tkingovr/gemini-mcp/internal/runner"
	"github.com/xeipuuv/gojsonschema"
)

// CommandTool is a config-defined tool that runs a fixed command and feeds the
// call arguments to it as a JSON object on stdin. Trimmed stdout becomes the
// text content of the result.
type CommandTool struct {
	desc    api.Tool
	command string
	args    []string
	timeout time.Duration
	schema  *gojsonschema.Schema
	runner  runner.Runner
}

// NewCommandTool creates a command tool. The descriptor's inputSchema is
// compiled once here so broken schemas are rejected at startup, not on the
// first call.
func NewCommandTool(r runner.Runner, desc api.Tool, command string, args []string, timeout time.Duration) (*CommandTool, error) {
	if desc.Name == "" {
		return nil, fmt.Errorf("command tool is missing a name")
	}
	if command == "" {
		return nil, fmt.Errorf("tool %q is missing a command", desc.Name)
	}

	var schema *gojsonschema.Schema
	if desc.InputSchema != nil {
		var err error
		schema, err = gojsonschema.NewSchema(gojsonschema.NewGoLoader(desc.InputSchema))
		if err != nil {
			return nil, fmt.Errorf("compiling input schema for tool %q: %w", desc.Name, err)
		}
	}

	return &CommandTool{
		desc:    desc,
		command: command,
		args:    args,
		timeout: timeout,
		schema:  schema,
		runner:  r,
	}, nil
}

func (c *CommandTool) Descriptor() api.Tool { return c.desc }

func (c *CommandTool) Call(ctx context.Context, raw json.RawMessage) (*api.CallResult, *api.Error) {
	args, err := jsonrpc.ExtractArguments(raw)
	if err != nil {
		return nil, &api.Error{
			Code:    jsonrpc.CodeInvalidParams,
			Message: fmt.Sprintf("Invalid arguments for tool %s: %v", c.desc.Name, err),
		}
	}

	if c.schema != nil {
		result, err := c.schema.Validate(gojsonschema.NewGoLoader(args))
		if err != nil {
			return nil, &api.Error{
				Code:    jsonrpc.CodeInvalidParams,
				Message: fmt.Sprintf("Invalid arguments for tool %s: %v", c.desc.Name, err),
			}
		}
		if !result.Valid() {
			var msgs []string
			for _, desc := range result.Errors() {
				msgs = append(msgs, desc.String())
			}
			return nil, &api.Error{
				Code:    jsonrpc.CodeInvalidParams,
				Message: fmt.Sprintf("Invalid arguments for tool %s: %s", c.desc.Name, strings.Join(msgs, "; ")),
			}
		}
	}

	payload, err := json.Marshal(args)
	if err != nil {
		return nil, &api.Error{
			Code:    jsonrpc.CodeInternalError,
			Message: fmt.Sprintf("Error encoding arguments for tool %s: %v", c.desc.Name, err),
		}
	}

	out, err := c.runner.Run(ctx, runner.Invocation{
		Command: c.command,
		Args:    c.args,
		Stdin:   payload,
		Timeout: c.timeout,
	})
	if err != nil {
		if errors.Is(err, runner.ErrTimeout) {
			return nil, &api.Error{
				Code:    jsonrpc.CodeInternalError,
				Message: fmt.Sprintf("Tool %s timed out", c.desc.Name),
			}
		}
		return nil, &api.Error{
			Code:    jsonrpc.CodeInternalError,
			Message: fmt.Sprintf("Error executing tool %s: %v", c.desc.Name, err),
		}
	}
	if out.ExitCode != 0 {
		return nil, &api.Error{
			Code:    jsonrpc.CodeInternalError,
			Message: fmt.Sprintf("Tool %s failed: %s", c.desc.Name, out.Stderr),
		}
	}

	return api.TextResult(strings.TrimSpace(out.Stdout)), nil
}
