package main

import (
	"os"

	"github.com/idilsaglam/todotxt/internal/cli"
)

func main() {
	// Hand the args to the CLI runner.
	os.Exit(cli.Run(os.Args[1:], os.Stdout, os.Stderr))
}
