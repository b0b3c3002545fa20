// Command calc drives the calculator engine from the terminal.
package main

import (
	"fmt"
	"os"

	"go-chi-calculator/internal/cli"
	"go-chi-calculator/internal/observability"
)

func main() {
	defer observability.SyncLogger()

	if err := cli.NewRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}
