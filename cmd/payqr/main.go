package main

import (
	"os"

	"github.com/cristianadrielbraun/payqr/cmd/payqr/commands"
)

func main() {
	if err := commands.Execute(); err != nil {
		os.Exit(1)
	}
}
