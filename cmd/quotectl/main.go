package main

import (
	"os"

	"github.com/sangkips/quotedesk-api/internal/cli"
)

func main() {
	if err := cli.NewRootCommand().Execute(); err != nil {
		os.Exit(1)
	}
}
