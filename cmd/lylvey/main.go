package main

import (
	"os"

	"github.com/Urooyo/lylvey/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
