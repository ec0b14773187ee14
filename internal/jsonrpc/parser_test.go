package jsonrpc

import (
	"encoding/json"
	"testing"
)

func TestParse_ValidRequest(t *testing.T) {
	data := []byte(`{"jsonrpc":"2.0","id":1,"method":"tools/call","params":{"name":"gemini_search","arguments":{"query":"weather in Tokyo"}}}`)
	req, err := Parse(data)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if req.Method != "tools/call" {
		t.Errorf("expected method tools/call, got %q", req.Method)
	}
	if !req.HasID() {
		t.Error("expected HasID() to be true")
	}
}

func TestParse_StringID(t *testing.T) {
	data := []byte(`{"jsonrpc":"2.0","id":"req-7","method":"initialize"}`)
	req, err := Parse(data)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if string(req.ID) != `"req-7"` {
		t.Errorf("expected raw id %q, got %q", `"req-7"`, req.ID)
	}
}

func TestParse_MissingID(t *testing.T) {
	data := []byte(`{"jsonrpc":"2.0","method":"tools/list"}`)
	req, err := Parse(data)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if req.HasID() {
		t.Error("expected HasID() to be false")
	}
}

func TestParse_InvalidJSON(t *testing.T) {
	data := []byte(`not json`)
	if _, err := Parse(data); err == nil {
		t.Fatal("expected error for invalid JSON")
	}
}

func TestParse_NonObject(t *testing.T) {
	data := []byte(`42`)
	if _, err := Parse(data); err == nil {
		t.Fatal("expected error for non-object envelope")
	}
}

func TestExtractToolCall(t *testing.T) {
	data := []byte(`{"jsonrpc":"2.0","id":1,"method":"tools/call","params":{"name":"gemini_search","arguments":{"query":"latest AI news"}}}`)
	req, _ := Parse(data)

	tc, err := ExtractToolCall(req)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if tc.Name != "gemini_search" {
		t.Errorf("expected tool name gemini_search, got %q", tc.Name)
	}

	args, err := ExtractArguments(tc.Arguments)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if args["query"] != "latest AI news" {
		t.Errorf("expected query 'latest AI news', got %v", args["query"])
	}
}

func TestExtractToolCall_NoParams(t *testing.T) {
	data := []byte(`{"jsonrpc":"2.0","id":1,"method":"tools/call"}`)
	req, _ := Parse(data)

	tc, err := ExtractToolCall(req)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if tc.Name != "" {
		t.Errorf("expected empty tool name, got %q", tc.Name)
	}
}

func TestExtractToolCall_BadParams(t *testing.T) {
	data := []byte(`{"jsonrpc":"2.0","id":1,"method":"tools/call","params":"nope"}`)
	req, _ := Parse(data)
	if _, err := ExtractToolCall(req); err == nil {
		t.Fatal("expected error for non-object params")
	}
}

func TestExtractArguments_Absent(t *testing.T) {
	args, err := ExtractArguments(nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if args == nil || len(args) != 0 {
		t.Errorf("expected empty map, got %v", args)
	}
}

func TestNewError_Marshal(t *testing.T) {
	resp := NewError(json.RawMessage(`1`), CodeMethodNotFound, "Method not found: foo/bar")
	data, err := Marshal(resp)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	var msg map[string]any
	if err := json.Unmarshal(data, &msg); err != nil {
		t.Fatalf("invalid JSON output: %v", err)
	}

	errObj, ok := msg["error"].(map[string]any)
	if !ok {
		t.Fatal("expected error field in response")
	}
	if errObj["message"] != "Method not found: foo/bar" {
		t.Errorf("unexpected message %v", errObj["message"])
	}
	if int(errObj["code"].(float64)) != CodeMethodNotFound {
		t.Errorf("expected error code %d, got %v", CodeMethodNotFound, errObj["code"])
	}
}

func TestNewResult_NilIDBecomesNull(t *testing.T) {
	resp := NewResult(nil, map[string]any{"tools": []any{}})
	data, err := Marshal(resp)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	var msg map[string]any
	if err := json.Unmarshal(data, &msg); err != nil {
		t.Fatalf("invalid JSON output: %v", err)
	}
	if v, present := msg["id"]; !present || v != nil {
		t.Errorf("expected id to be present and null, got %v (present=%v)", v, present)
	}
}

func TestNewResult_EchoesStringID(t *testing.T) {
	resp := NewResult(json.RawMessage(`"abc"`), "ok")
	data, _ := Marshal(resp)

	var msg map[string]any
	if err := json.Unmarshal(data, &msg); err != nil {
		t.Fatalf("invalid JSON output: %v", err)
	}
	if msg["id"] != "abc" {
		t.Errorf("expected id abc, got %v", msg["id"])
	}
}
