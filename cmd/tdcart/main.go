package main

import (
	"os"

	"github.com/tdpro/backend/cmd/tdcart/commands"
)

func main() {
	if err := commands.Execute(); err != nil {
		os.Exit(1)
	}
}
