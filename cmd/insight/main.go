package main

import (
	"os"

	"intelvest/cmd/insight/commands"
)

func main() {
	if err := commands.Execute(); err != nil {
		os.Exit(1)
	}
}
