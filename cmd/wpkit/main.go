package main

import (
	"os"

	"github.com/eddo81/wpkit/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
