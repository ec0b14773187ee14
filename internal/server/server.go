package server

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/tkingovr/gemini-mcp/api"
	"github.com/tkingovr/gemini-mcp/internal/audit"
	"github.com/tkingovr/gemini-mcp/internal/jsonrpc"
	"github.com/tkingovr/gemini-mcp/internal/tool"
)

// Supported JSON-RPC methods.
const (
	methodInitialize = "initialize"
	methodToolsList  = "tools/list"
	methodToolsCall  = "tools/call"
)

// Server is the stdio transport loop. It reads newline-delimited JSON-RPC
// requests from an input stream and writes one compact response line per
// request, strictly in order. Requests are handled one at a time; a tool call
// blocks the loop until the external command finishes or times out.
type Server struct {
	logger   *slog.Logger
	registry *tool.Registry
	info     api.ServerInfo
	auditLog *audit.JSONLStore
}

// New creates a server. auditLog may be nil to disable request logging.
func New(logger *slog.Logger, registry *tool.Registry, info api.ServerInfo, auditLog *audit.JSONLStore) *Server {
	return &Server{
		logger:   logger,
		registry: registry,
		info:     info,
		auditLog: auditLog,
	}
}

// Run processes requests until the input stream closes or ctx is cancelled.
// Lines that are not valid JSON envelopes are dropped without a response.
// No per-request failure terminates the loop.
func (s *Server) Run(ctx context.Context, in io.Reader, out io.Writer) error {
	scanner := bufio.NewScanner(in)
	scanner.Buffer(make([]byte, 0, 1024*1024), 10*1024*1024) // 10MB max message

	lines := make(chan []byte)
	errCh := make(chan error, 1)
	go func() {
		defer close(lines)
		for scanner.Scan() {
			line := make([]byte, len(scanner.Bytes()))
			copy(line, scanner.Bytes())
			select {
			case lines <- line:
			case <-ctx.Done():
				return
			}
		}
		errCh <- scanner.Err()
	}()

	for {
		select {
		case <-ctx.Done():
			return nil
		case line, ok := <-lines:
			if !ok {
				select {
				case err := <-errCh:
					return err
				default:
					return nil
				}
			}
			if len(line) == 0 {
				continue
			}
			s.handleLine(ctx, line, out)
		}
	}
}

func (s *Server) handleLine(ctx context.Context, line []byte, out io.Writer) {
	defer func() {
		if r := recover(); r != nil {
			s.logger.Error("request handling panic", "panic", r)
		}
	}()

	req, err := jsonrpc.Parse(line)
	if err != nil {
		// Best-effort transport: malformed lines get no response.
		s.logger.Debug("dropping malformed line", "error", err)
		return
	}

	start := time.Now()
	resp := s.dispatch(ctx, req)
	if err := writeLine(out, resp); err != nil {
		s.logger.Error("writing response", "error", err)
	}
	s.record(req, resp, time.Since(start))
}

func (s *Server) dispatch(ctx context.Context, req *api.Request) *api.Response {
	switch req.Method {
	case methodInitialize:
		return jsonrpc.NewResult(req.ID, s.initializeResult())
	case methodToolsList:
		return jsonrpc.NewResult(req.ID, toolsListResult{Tools: s.registry.Descriptors()})
	case methodToolsCall:
		return s.handleToolsCall(ctx, req)
	default:
		return jsonrpc.NewError(req.ID, jsonrpc.CodeMethodNotFound,
			fmt.Sprintf("Method not found: %s", req.Method))
	}
}

func (s *Server) handleToolsCall(ctx context.Context, req *api.Request) *api.Response {
	params, err := jsonrpc.ExtractToolCall(req)
	if err != nil {
		return jsonrpc.NewError(req.ID, jsonrpc.CodeInvalidParams,
			fmt.Sprintf("Invalid params: %v", err))
	}

	h, ok := s.registry.Lookup(params.Name)
	if !ok {
		return jsonrpc.NewError(req.ID, jsonrpc.CodeInvalidParams,
			fmt.Sprintf("Unknown tool: %s", params.Name))
	}

	result, toolErr := h.Call(ctx, params.Arguments)
	if toolErr != nil {
		return jsonrpc.NewError(req.ID, toolErr.Code, toolErr.Message)
	}
	return jsonrpc.NewResult(req.ID, result)
}

type initializeResult struct {
	ProtocolVersion string         `json:"protocolVersion"`
	Capabilities    capabilities   `json:"capabilities"`
	ServerInfo      api.ServerInfo `json:"serverInfo"`
}

type capabilities struct {
	Tools struct{} `json:"tools"`
}

type toolsListResult struct {
	Tools []api.Tool `json:"tools"`
}

func (s *Server) initializeResult() initializeResult {
	return initializeResult{
		ProtocolVersion: api.ProtocolVersion,
		ServerInfo:      s.info,
	}
}

func (s *Server) record(req *api.Request, resp *api.Response, duration time.Duration) {
	if s.auditLog == nil {
		return
	}

	rec := &api.AuditRecord{
		RequestID: req.ID,
		Method:    req.Method,
		Status:    api.AuditStatusOK,
		Duration:  duration,
	}
	if req.Method == methodToolsCall {
		if params, err := jsonrpc.ExtractToolCall(req); err == nil {
			rec.Tool = params.Name
		}
	}
	if resp.Error != nil {
		rec.Status = api.AuditStatusError
		rec.ErrorCode = resp.Error.Code
	}

	// Audit failures never fail the request.
	if err := s.auditLog.Write(rec); err != nil {
		s.logger.Warn("writing audit record", "error", err)
	}
}

// writeLine emits one compact JSON envelope followed by a newline. The writer
// is unbuffered so the host sees each response as soon as it is produced.
func writeLine(w io.Writer, resp *api.Response) error {
	data, err := jsonrpc.Marshal(resp)
	if err != nil {
		return err
	}
	if _, err := w.Write(data); err != nil {
		return err
	}
	_, err = w.Write([]byte("\n"))
	return err
}
