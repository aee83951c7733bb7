// Package main provides the fluent command.
package main

import (
	"os"

	"github.com/hasbyte1/go-fluent/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
