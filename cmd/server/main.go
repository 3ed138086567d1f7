package main

import (
	"os"

	"github.com/Skotchmaster/vogue_nest/internal/cli"
)

func main() {
	if err := cli.NewRootCommand().Execute(); err != nil {
		os.Exit(1)
	}
}
