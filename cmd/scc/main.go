package main

import (
	"os"

	"github.com/bnema/sc-console-cli/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
