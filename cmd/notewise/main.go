package main

import (
	"os"

	"github.com/JaimeStill/notewise/cmd/notewise/commands"
)

func main() {
	if err := commands.Execute(); err != nil {
		os.Exit(1)
	}
}
