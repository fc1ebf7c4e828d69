package main

import (
	"os"

	"stockeye/cmd/stockeye/commands"
)

func main() {
	if err := commands.Execute(); err != nil {
		os.Exit(1)
	}
}
