package main

import (
	"os"

	"github.com/gdtdd/gdtdd/cli"
)

// Version information, set by goreleaser via ldflags
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	c := cli.New()
	c.SetVersion(version, commit, date)
	os.Exit(c.ExitCode(c.Run(os.Args)))
}
