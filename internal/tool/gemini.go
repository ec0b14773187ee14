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
)

// GeminiSearchName is the advertised name of the web search tool.
const GeminiSearchName = "gemini_search"

// searchPrefix tells the gemini CLI to perform a live web search instead of
// answering from static knowledge. Queries are never sent unprefixed.
const searchPrefix = "WebSearch: "

// GeminiSearch bridges the gemini CLI as an MCP tool. Each call runs
// `<command> -p "WebSearch: <query>"` and relays trimmed stdout.
type GeminiSearch struct {
	runner  runner.Runner
	command string
	timeout time.Duration
}

// NewGeminiSearch creates the search tool backed by the given runner.
func NewGeminiSearch(r runner.Runner, command string, timeout time.Duration) *GeminiSearch {
	return &GeminiSearch{
		runner:  r,
		command: command,
		timeout: timeout,
	}
}

func (g *GeminiSearch) Descriptor() api.Tool {
	return api.Tool{
		Name:        GeminiSearchName,
		Description: "Search the web using Google Gemini AI for current information, news, weather, and real-time data",
		InputSchema: map[string]any{
			"type": "object",
			"properties": map[string]any{
				"query": map[string]any{
					"type":        "string",
					"description": "The search query (e.g., 'current weather in Tokyo', 'latest news about AI', 'stock price of AAPL')",
				},
			},
			"required": []string{"query"},
		},
	}
}

// Call runs the search. A missing query field defaults to the empty string
// rather than failing; the gemini CLI is still invoked with the bare prefix.
func (g *GeminiSearch) Call(ctx context.Context, args json.RawMessage) (*api.CallResult, *api.Error) {
	var params struct {
		Query string `json:"query"`
	}
	if args != nil {
		// Malformed arguments degrade to an empty query, same as absence.
		_ = json.Unmarshal(args, &params)
	}

	prompt := searchPrefix + params.Query

	out, err := g.runner.Run(ctx, runner.Invocation{
		Command: g.command,
		Args:    []string{"-p", prompt},
		Timeout: g.timeout,
	})
	if err != nil {
		if errors.Is(err, runner.ErrTimeout) {
			return nil, &api.Error{
				Code:    jsonrpc.CodeInternalError,
				Message: "Gemini command timed out",
			}
		}
		return nil, &api.Error{
			Code:    jsonrpc.CodeInternalError,
			Message: fmt.Sprintf("Error executing gemini: %v", err),
		}
	}
	if out.ExitCode != 0 {
		return nil, &api.Error{
			Code:    jsonrpc.CodeInternalError,
			Message: fmt.Sprintf("Gemini command failed: %s", out.Stderr),
		}
	}

	return api.TextResult(strings.TrimSpace(out.Stdout)), nil
}
