// mock_gemini.go is a stand-in for the gemini CLI for manual end-to-end
// testing of the bridge without API access.
// Usage: go build -o gemini mock_gemini.go && PATH=$PWD:$PATH geminimcp serve
//
// MOCK_GEMINI_FAIL=1 makes it exit non-zero; MOCK_GEMINI_SLEEP=90s makes it
// hang, for exercising the timeout path.
package main

import (
	"fmt"
	"os"
	"time"
)

func main() {
	var prompt string
	args := os.Args[1:]
	for i := 0; i < len(args); i++ {
		if args[i] == "-p" && i+1 < len(args) {
			prompt = args[i+1]
			i++
		}
	}

	if prompt == "" {
		fmt.Fprintln(os.Stderr, "mock_gemini: missing -p <prompt>")
		os.Exit(2)
	}

	if os.Getenv("MOCK_GEMINI_FAIL") != "" {
		fmt.Fprintln(os.Stderr, "mock_gemini: simulated failure")
		os.Exit(1)
	}

	if v := os.Getenv("MOCK_GEMINI_SLEEP"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			fmt.Fprintf(os.Stderr, "mock_gemini: bad MOCK_GEMINI_SLEEP: %v\n", err)
			os.Exit(2)
		}
		time.Sleep(d)
	}

	fmt.Printf("mock answer for prompt: %s\n", prompt)
}
