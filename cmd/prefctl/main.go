// Package main provides the prefctl CLI.
package main

import (
	"fmt"
	"os"

	"github.com/prefkit/prefkit/internal/cli"
	"github.com/prefkit/prefkit/internal/logging"
)

func main() {
	if err := logging.Initialize(""); err != nil {
		fmt.Fprintln(os.Stderr, "initialize logging:", err)
	}
	code := cli.Execute()
	logging.Sync()
	os.Exit(code)
}
