package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/davidroeth/podsight/internal/analysis"
	"github.com/davidroeth/podsight/internal/discovery"
	"github.com/davidroeth/podsight/internal/progress"
	"github.com/davidroeth/podsight/internal/render"
	"github.com/davidroeth/podsight/internal/youtube"
)

var discoverAnalyze bool

var discoverCmd = &cobra.Command{
	Use:   "discover",
	Short: "Check watched channels for recent uploads",
	Long:  `Fetches recent uploads from the configured channels and records them. With --analyze, every eligible video that has no cached analysis is analyzed in a concurrent batch.`,
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

		yt, err := newYouTubeClient(cfg)
		if err != nil {
			return err
		}

		discoveryStore := discovery.NewStore(database)
		var discoveryService *discovery.Service

		if discoverAnalyze {
			an, err := newAnalyzer(cfg)
			if err != nil {
				return err
			}
			svc := analysis.NewService(analysis.NewStore(database), yt, an, discoveryStore, nil)
			discoveryService = discovery.NewService(
				discoveryStore, yt, svc,
				watchedChannels(cfg), cfg.DiscoveryDaysBack, cfg.MaxConcurrency,
			)
		} else {
			discoveryService = discovery.NewService(
				discoveryStore, yt, nil,
				watchedChannels(cfg), cfg.DiscoveryDaysBack, cfg.MaxConcurrency,
			)
		}

		videos, err := discoveryService.Discover(cmd.Context(), 0)
		if err != nil {
			return err
		}

		fmt.Printf("%d video(s) in the last %d day(s):\n", len(videos), cfg.DiscoveryDaysBack)
		for _, v := range videos {
			state := "pending"
			switch {
			case v.ExcludedFromAnalysis:
				state = "too short"
			case v.Analyzed:
				state = "analyzed"
			case v.InProgress:
				state = "in progress"
			}
			fmt.Printf("  [%s] %s - %s (%s)\n", state, v.Title, v.ChannelName, render.Duration(v.Duration))
		}

		if !discoverAnalyze {
			return nil
		}

		pending, err := discoveryStore.Unanalyzed(cmd.Context(), cfg.DiscoveryDaysBack)
		if err != nil {
			return err
		}
		if len(pending) == 0 {
			fmt.Println("\nNothing to analyze.")
			return nil
		}

		reporter := progress.NewReporter()
		reporter.Start(len(pending))
		pendingSeen := 0
		status, err := discoveryService.RunBatch(cmd.Context(), func(video youtube.Video, succeeded bool) {
			pendingSeen++
			label := video.Title
			if !succeeded {
				label += " (failed)"
			}
			reporter.Update(pendingSeen, label)
		})
		if err != nil {
			return err
		}

		reporter.Finish()
		fmt.Printf("\nBatch done: %d analyzed, %d failed.\n", status.Completed, status.Failed)
		return nil
	},
}

func init() {
	discoverCmd.Flags().BoolVar(&discoverAnalyze, "analyze", false, "analyze all unanalyzed discoveries")
	rootCmd.AddCommand(discoverCmd)
}
