// Package main is the entry point for the xlkit command.
//
// All functionality lives in internal/cli; version information is injected
// through ldflags at build time.
package main

import (
	"github.com/tsawler/xlkit/internal/cli"
)

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	cli.Version = version
	cli.Commit = commit
	cli.Date = date

	cli.Execute(cli.NewRootCommand())
}
