package cli

import (
	"encoding/json"
	"os"

	"github.com/spf13/cobra"
	"github.com/tkingovr/gemini-mcp/internal/runner"
)

var toolsCmd = &cobra.Command{
	Use:   "tools",
	Short: "Print the tool descriptors this server advertises",
	Long: `Print the descriptors the server would return from tools/list, including
any config-defined command tools. Broken tool declarations (e.g. an invalid
input schema) are reported as errors.`,
	Example: `  geminimcp tools
  geminimcp tools -c config.yaml`,
	RunE: runTools,
}

func init() {
	rootCmd.AddCommand(toolsCmd)
}

func runTools(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	reg, err := buildRegistry(cfg, runner.NewExec())
	if err != nil {
		return err
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(reg.Descriptors())
}
