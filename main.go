package main

import (
	"os"

	"github.com/spigell/placement-insights/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
