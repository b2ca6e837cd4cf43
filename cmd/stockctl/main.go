package main

import (
	"os"

	"github.com/jhoicas/stockrest/cmd/stockctl/cmd"
)

func main() {
	if err := cmd.NewRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
