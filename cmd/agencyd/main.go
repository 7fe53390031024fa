package main

import (
	"fmt"
	"os"

	"github.com/sandeepkv93/agencyd/internal/cli"
)

// Set by ldflags at build time.
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	cli.SetVersionInfo(version, commit, date)
	if err := cli.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "agencyd: %v\n", err)
		os.Exit(1)
	}
}
