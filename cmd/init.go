package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/davidroeth/podsight/internal/config"
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Create a podsight config file interactively",
	RunE: func(cmd *cobra.Command, args []string) error {
		if _, err := os.Stat(cfgFile); err == nil {
			return fmt.Errorf("config file %s already exists", cfgFile)
		}

		cfg, err := config.RunWizard(cfgFile)
		if err != nil {
			return err
		}

		fmt.Printf("\nWrote %s\n", cfgFile)
		fmt.Printf("Set %s before running `podsight server`.\n", config.APIKeyEnvVar(cfg.Provider))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(initCmd)
}
