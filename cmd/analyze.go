package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/davidroeth/podsight/internal/analysis"
	"github.com/davidroeth/podsight/internal/render"
	"github.com/davidroeth/podsight/internal/youtube"
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze <youtube-url>",
	Short: "Analyze one YouTube video and print the summary",
	Long:  `Runs the AI analysis for a single video. If the video was analyzed before, the cached result is printed without another model call.`,
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		videoURL := args[0]
		if !youtube.ValidURL(videoURL) {
			return fmt.Errorf("not a YouTube URL: %s", videoURL)
		}

		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		database, err := openDatabase(cfg)
		if err != nil {
			return fmt.Errorf("opening database: %w", err)
		}
		defer database.Close()

		an, err := newAnalyzer(cfg)
		if err != nil {
			return err
		}
		yt, err := newYouTubeClient(cfg)
		if err != nil {
			return err
		}

		service := analysis.NewService(analysis.NewStore(database), yt, an, nil, nil)

		a, err := service.AnalyzeURL(cmd.Context(), videoURL)
		if err != nil {
			return err
		}

		fmt.Printf("%s\n", a.Title)
		fmt.Printf("Duration: %s  Timestamps valid: %s  Sponsor excluded: %s\n\n",
			render.Duration(a.VideoDuration),
			render.YesNo(a.TimestampsValid),
			render.YesNo(a.VanEckExcluded))
		if !a.Success {
			return fmt.Errorf("analysis failed: %s", a.Error)
		}
		fmt.Println(a.Analysis)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(analyzeCmd)
}
