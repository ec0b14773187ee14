package cli

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"
	"github.com/tkingovr/gemini-mcp/internal/runner"
	"github.com/tkingovr/gemini-mcp/internal/tool"
)

var queryCmd = &cobra.Command{
	Use:   "query <text>",
	Short: "Run a one-off web search without the server loop",
	Long: `Invoke the gemini_search tool directly and print its text result.
Useful for checking that the gemini CLI is installed and reachable before
wiring the server into a host.`,
	Example: `  geminimcp query "current weather in Tokyo"`,
	Args:    cobra.ExactArgs(1),
	RunE:    runQuery,
}

func init() {
	rootCmd.AddCommand(queryCmd)
}

func runQuery(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	g := tool.NewGeminiSearch(runner.NewExec(), cfg.GeminiCommand, cfg.SearchTimeout)

	callArgs, err := json.Marshal(map[string]string{"query": args[0]})
	if err != nil {
		return err
	}

	result, toolErr := g.Call(cmd.Context(), callArgs)
	if toolErr != nil {
		return fmt.Errorf("%s (code %d)", toolErr.Message, toolErr.Code)
	}

	for _, item := range result.Content {
		fmt.Println(item.Text)
	}
	return nil
}
