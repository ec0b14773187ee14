package cli

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/tkingovr/gemini-mcp/api"
	"github.com/tkingovr/gemini-mcp/internal/audit"
	"github.com/tkingovr/gemini-mcp/internal/config"
	"github.com/tkingovr/gemini-mcp/internal/runner"
	"github.com/tkingovr/gemini-mcp/internal/server"
	"github.com/tkingovr/gemini-mcp/internal/tool"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the MCP bridge on stdin/stdout",
	Long: `Run the stdio MCP server. The host writes JSON-RPC requests to stdin,
one per line, and reads responses from stdout. Tool calls shell out to the
gemini CLI; diagnostics go to stderr.`,
	Example: `  geminimcp serve
  geminimcp serve -c config.yaml -v`,
	RunE: runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)
}

func loadConfig() (*config.Config, error) {
	if cfgFile != "" {
		cfg, err := config.Load(cfgFile)
		if err != nil {
			return nil, fmt.Errorf("loading config: %w", err)
		}
		return cfg, nil
	}
	return config.DefaultConfig(), nil
}

// buildRegistry registers the built-in search tool plus any config-defined
// command tools.
func buildRegistry(cfg *config.Config, r runner.Runner) (*tool.Registry, error) {
	reg := tool.NewRegistry()
	if err := reg.Register(tool.NewGeminiSearch(r, cfg.GeminiCommand, cfg.SearchTimeout)); err != nil {
		return nil, err
	}
	for _, tc := range cfg.Tools {
		ct, err := tool.NewCommandTool(r, api.Tool{
			Name:        tc.Name,
			Description: tc.Description,
			InputSchema: tc.InputSchema,
		}, tc.Command, tc.Args, tc.Timeout)
		if err != nil {
			return nil, fmt.Errorf("building tool %q: %w", tc.Name, err)
		}
		if err := reg.Register(ct); err != nil {
			return nil, err
		}
	}
	return reg, nil
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	reg, err := buildRegistry(cfg, runner.NewExec())
	if err != nil {
		return err
	}

	var auditLog *audit.JSONLStore
	if cfg.AuditDir != "" {
		auditLog, err = audit.NewJSONLStore(cfg.AuditDir)
		if err != nil {
			return fmt.Errorf("creating audit log: %w", err)
		}
		defer auditLog.Close()
	}

	srv := server.New(logger, reg, api.ServerInfo{
		Name:    cfg.ServerName,
		Version: cfg.ServerVersion,
	}, auditLog)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigCh
		logger.Info("shutting down")
		cancel()
	}()

	logger.Info("starting stdio bridge",
		slog.String("server", cfg.ServerName),
		slog.String("command", cfg.GeminiCommand),
		slog.Int("tools", len(reg.Descriptors())),
	)

	return srv.Run(ctx, os.Stdin, os.Stdout)
}
