package cli

import (
	"log/slog"
	"os"

	"github.com/spf13/cobra"
)

var (
	cfgFile string
	verbose bool
	logger  *slog.Logger
)

var rootCmd = &cobra.Command{
	Use:   "geminimcp",
	Short: "geminimcp — expose the gemini CLI as an MCP stdio server",
	Long: `geminimcp bridges the gemini command-line tool into the Model Context
Protocol. It speaks line-delimited JSON-RPC 2.0 on stdin/stdout, advertises
a web search tool, and fulfills tool calls by shelling out to gemini,
relaying its output back to the calling host.`,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		level := slog.LevelInfo
		if verbose {
			level = slog.LevelDebug
		}
		// Diagnostics go to stderr; stdout belongs to the protocol.
		logger = slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{
			Level: level,
		}))
	},
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "", "config file (YAML)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}
