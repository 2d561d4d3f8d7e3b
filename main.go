package main

import (
	"os"

	"github.com/davidroeth/podsight/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
