package main

import (
	"os"

	"github.com/mikeseventeen/coverflex-downloader/internal/commands"
)

func main() {
	if err := commands.NewRootCommand().Execute(); err != nil {
		os.Exit(1)
	}
}
