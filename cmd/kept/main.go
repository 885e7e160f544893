package main

import (
	"os"

	"github.com/kept-dev/kept/internal/commands"
)

func main() {
	if err := commands.NewRootCommand().Execute(); err != nil {
		os.Exit(1)
	}
}
