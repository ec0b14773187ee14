package config

import "time"

const (
	DefaultServerName    = "gemini-mcp-server"
	DefaultServerVersion = "1.0.0"
	DefaultGeminiCommand = "gemini"
	DefaultSearchTimeout = 60 * time.Second
	DefaultToolTimeout   = 60 * time.Second
)
