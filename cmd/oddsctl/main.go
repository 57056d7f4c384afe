package main

import (
	"os"

	"github.com/SpookyGroup/Spectre-Aegis/cmd/oddsctl/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
