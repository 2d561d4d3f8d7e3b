package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	cfgFile string
	verbose bool
)

var rootCmd = &cobra.Command{
	Use:   "podsight",
	Short: "AI analysis of investment commentary on YouTube",
	Long: `Podsight watches trusted YouTube channels for new investment
commentary, runs each video through an AI model for a timestamped
summary, and caches every analysis locally. It serves a web UI,
exposes the library to AI agents via MCP, and can export the whole
archive as a static site.`,
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", ".podsight.yml", "config file path")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
}

func exitOnError(err error) {
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
