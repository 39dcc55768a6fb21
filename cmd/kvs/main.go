// Package main is the entry point for the kvs CLI tool.
package main

import (
	"os"

	"github.com/aidanlsb/kvasir/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
