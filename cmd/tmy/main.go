package main

import (
	"os"

	"github.com/termynus/termynus/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
