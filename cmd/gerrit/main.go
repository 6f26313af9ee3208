package main

import (
	"os"

	"github.com/sprite-ai/gerrit-cli/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(cli.ExitCode(err))
	}
}
