package main

import (
	"os"

	"github.com/tkingovr/gemini-mcp/cmd/geminimcp/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
