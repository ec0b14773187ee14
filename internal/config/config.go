package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

// file is the on-disk YAML shape. Durations are strings ("60s", "2m") and
// parsed into the runtime Config.
type file struct {
	Server struct {
		Name    string `yaml:"name"`
		Version string `yaml:"version"`
	} `yaml:"server"`
	Gemini struct {
		Command string `yaml:"command"`
		Timeout string `yaml:"timeout"`
	} `yaml:"gemini"`
	Audit struct {
		Dir string `yaml:"dir"`
	} `yaml:"audit"`
	Tools []ToolFile `yaml:"tools"`
}

// ToolFile declares an extra command-backed tool in the config file.
type ToolFile struct {
	Name        string         `yaml:"name"`
	Description string         `yaml:"description"`
	Command     string         `yaml:"command"`
	Args        []string       `yaml:"args"`
	Timeout     string         `yaml:"timeout"`
	InputSchema map[string]any `yaml:"input_schema"`
}

// Config is the runtime configuration for the bridge.
type Config struct {
	ServerName    string
	ServerVersion string
	GeminiCommand string
	SearchTimeout time.Duration
	AuditDir      string
	Tools         []ToolConfig
}

// ToolConfig is a resolved extra tool declaration.
type ToolConfig struct {
	Name        string
	Description string
	Command     string
	Args        []string
	Timeout     time.Duration
	InputSchema map[string]any
}

// Load reads a YAML config file and produces a runtime Config.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}
	return LoadBytes(data)
}

// LoadBytes parses YAML data and produces a runtime Config.
func LoadBytes(data []byte) (*Config, error) {
	var f file
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}

	cfg := DefaultConfig()

	if f.Server.Name != "" {
		cfg.ServerName = f.Server.Name
	}
	if f.Server.Version != "" {
		cfg.ServerVersion = f.Server.Version
	}
	if f.Gemini.Command != "" {
		cfg.GeminiCommand = f.Gemini.Command
	}
	if f.Gemini.Timeout != "" {
		d, err := time.ParseDuration(f.Gemini.Timeout)
		if err != nil {
			return nil, fmt.Errorf("invalid gemini timeout %q: %w", f.Gemini.Timeout, err)
		}
		cfg.SearchTimeout = d
	}
	if f.Audit.Dir != "" {
		cfg.AuditDir = expandHome(f.Audit.Dir)
	}

	for _, tf := range f.Tools {
		if tf.Name == "" {
			return nil, fmt.Errorf("tool entry is missing a name")
		}
		if tf.Command == "" {
			return nil, fmt.Errorf("tool %q is missing a command", tf.Name)
		}
		tc := ToolConfig{
			Name:        tf.Name,
			Description: tf.Description,
			Command:     tf.Command,
			Args:        tf.Args,
			Timeout:     DefaultToolTimeout,
			InputSchema: tf.InputSchema,
		}
		if tf.Timeout != "" {
			d, err := time.ParseDuration(tf.Timeout)
			if err != nil {
				return nil, fmt.Errorf("invalid timeout for tool %q: %w", tf.Name, err)
			}
			tc.Timeout = d
		}
		cfg.Tools = append(cfg.Tools, tc)
	}

	return cfg, nil
}

// DefaultConfig returns the configuration used when no config file is given.
func DefaultConfig() *Config {
	return &Config{
		ServerName:    DefaultServerName,
		ServerVersion: DefaultServerVersion,
		GeminiCommand: DefaultGeminiCommand,
		SearchTimeout: DefaultSearchTimeout,
	}
}

func expandHome(path string) string {
	if len(path) > 1 && path[0] == '~' && path[1] == '/' {
		home, err := os.UserHomeDir()
		if err != nil {
			return path
		}
		return filepath.Join(home, path[2:])
	}
	return path
}
