package main

import (
	"os"

	"github.com/NefariousNGGA/backend/internal/cli"
)

func main() {
	if err := cli.NewRootCommand().Execute(); err != nil {
		os.Exit(1)
	}
}
