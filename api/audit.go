package api

import (
	"encoding/json"
	"time"
)

// AuditRecord represents one handled request in the JSONL request log.
type AuditRecord struct {
	Timestamp time.Time       `json:"timestamp"`
	RequestID json.RawMessage `json:"request_id,omitempty"`
	Method    string          `json:"method"`
	Tool      string          `json:"tool,omitempty"`
	Status    string          `json:"status"`
	ErrorCode int             `json:"error_code,omitempty"`
	Duration  time.Duration   `json:"duration,omitempty"`
}

// Audit record statuses.
const (
	AuditStatusOK    = "ok"
	AuditStatusError = "error"
)
