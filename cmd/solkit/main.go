package main

import (
	"os"

	"github.com/canopy-network/canopy/lib/solana/cmd/solkit/commands"
)

func main() {
	if err := commands.Execute(); err != nil {
		os.Exit(1)
	}
}
