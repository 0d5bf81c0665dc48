package main

import (
	"os"

	"github.com/gridwerk/microgrid/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
