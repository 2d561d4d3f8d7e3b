package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/davidroeth/podsight/internal/analysis"
	"github.com/davidroeth/podsight/internal/site"
)

var exportOutput string

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export all cached analyses as a static HTML site",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		database, err := openDatabase(cfg)
		if err != nil {
			return fmt.Errorf("opening database: %w", err)
		}
		defer database.Close()

		analyses, err := analysis.NewStore(database).List(cmd.Context(), "")
		if err != nil {
			return err
		}

		written, err := site.NewGenerator(exportOutput, "Podsight").Generate(analyses)
		if err != nil {
			return err
		}

		fmt.Printf("Exported %d page(s) to %s\n", written, exportOutput)
		return nil
	},
}

func init() {
	exportCmd.Flags().StringVar(&exportOutput, "output", "site", "output directory")
	rootCmd.AddCommand(exportCmd)
}
