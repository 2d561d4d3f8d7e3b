package discovery

import (
	"context"
	"fmt"
	"log"
	"sync"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/davidroeth/podsight/internal/analysis"
	"github.com/davidroeth/podsight/internal/youtube"
)

// ChannelSource fetches recent uploads for a set of channels. Satisfied by
// *youtube.Client.
type ChannelSource interface {
	RecentChannelVideos(ctx context.Context, channels []youtube.Channel, daysBack int) ([]youtube.Video, error)
}

// VideoAnalyzer runs one analysis as part of a batch. Satisfied by
// *analysis.Service.
type VideoAnalyzer interface {
	AnalyzeVideo(ctx context.Context, video youtube.Video, batchID string) (*analysis.Analysis, error)
}

// Service discovers recent channel uploads and runs batch analyses over them.
type Service struct {
	store          *Store
	source         ChannelSource
	analyzer       VideoAnalyzer
	channels       []youtube.Channel
	daysBack       int
	maxConcurrency int
	progress       *progressTracker

	// reportMu serializes report callbacks, so callers need no locking.
	reportMu sync.Mutex
}

// NewService creates a discovery Service for the given watched channels.
func NewService(store *Store, source ChannelSource, analyzer VideoAnalyzer, channels []youtube.Channel, daysBack, maxConcurrency int) *Service {
	if daysBack < 1 {
		daysBack = 7
	}
	if maxConcurrency < 1 {
		maxConcurrency = 1
	}
	return &Service{
		store:          store,
		source:         source,
		analyzer:       analyzer,
		channels:       channels,
		daysBack:       daysBack,
		maxConcurrency: maxConcurrency,
		progress:       newProgressTracker(),
	}
}

// Discover fetches recent uploads from the watched channels, records them,
// and returns what is now known for the discovery window. A daysBack of 0
// uses the configured window.
func (s *Service) Discover(ctx context.Context, daysBack int) ([]DiscoveredVideo, error) {
	if len(s.channels) == 0 {
		return nil, fmt.Errorf("no channels configured")
	}
	if daysBack < 1 {
		daysBack = s.daysBack
	}

	videos, err := s.source.RecentChannelVideos(ctx, s.channels, daysBack)
	if err != nil {
		return nil, fmt.Errorf("fetching channel uploads: %w", err)
	}

	if err := s.store.Save(ctx, videos); err != nil {
		return nil, err
	}

	return s.store.Recent(ctx, daysBack)
}

// Recent returns the most recently discovered videos without hitting the
// YouTube API, newest discovery first.
func (s *Service) Recent(ctx context.Context, limit int) ([]DiscoveredVideo, error) {
	if limit < 1 {
		limit = 20
	}
	return s.store.LatestDiscovered(ctx, limit)
}

// StartBatch launches a background batch analysis over the unanalyzed recent
// videos and returns its ID. The second return value is the number of videos
// queued; zero means there was nothing to do and no batch was started. A
// daysBack of 0 uses the configured window.
func (s *Service) StartBatch(ctx context.Context, daysBack int) (string, int, error) {
	if daysBack < 1 {
		daysBack = s.daysBack
	}
	pending, err := s.store.Unanalyzed(ctx, daysBack)
	if err != nil {
		return "", 0, err
	}
	if len(pending) == 0 {
		return "", 0, nil
	}

	batchID := uuid.NewString()
	videoIDs := make([]string, len(pending))
	for i, v := range pending {
		videoIDs[i] = v.VideoID
	}

	if err := s.store.MarkInProgress(ctx, videoIDs, true); err != nil {
		return "", 0, err
	}
	s.progress.start(batchID, videoIDs)

	// The batch outlives the triggering request.
	go s.runBatch(context.WithoutCancel(ctx), batchID, pending)

	return batchID, len(pending), nil
}

// RunBatch runs a batch analysis synchronously, reporting per-video completion
// through report when it is non-nil. Invocations of report never overlap, so
// the callback may touch unsynchronized state. Used by the CLI.
func (s *Service) RunBatch(ctx context.Context, report func(video youtube.Video, succeeded bool)) (BatchStatus, error) {
	pending, err := s.store.Unanalyzed(ctx, s.daysBack)
	if err != nil {
		return BatchStatus{}, err
	}

	batchID := uuid.NewString()
	videoIDs := make([]string, len(pending))
	for i, v := range pending {
		videoIDs[i] = v.VideoID
	}
	s.progress.start(batchID, videoIDs)

	s.analyzeAll(ctx, batchID, pending, report)
	s.progress.finish(batchID)

	status, _ := s.progress.status(batchID)
	return status, nil
}

// BatchStatus returns the current status of a batch, if known.
func (s *Service) BatchStatus(batchID string) (BatchStatus, bool) {
	return s.progress.status(batchID)
}

func (s *Service) runBatch(ctx context.Context, batchID string, videos []DiscoveredVideo) {
	s.analyzeAll(ctx, batchID, videos, nil)
	s.progress.finish(batchID)

	ids := make([]string, len(videos))
	for i, v := range videos {
		ids[i] = v.VideoID
	}
	if err := s.store.MarkInProgress(ctx, ids, false); err != nil {
		log.Printf("clearing in-progress flags for batch %s: %v", batchID, err)
	}
}

func (s *Service) analyzeAll(ctx context.Context, batchID string, videos []DiscoveredVideo, report func(video youtube.Video, succeeded bool)) {
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.maxConcurrency)

	for _, v := range videos {
		video := v.Video
		g.Go(func() error {
			a, err := s.analyzer.AnalyzeVideo(gctx, video, batchID)
			succeeded := err == nil && a != nil && a.Success
			if err != nil {
				log.Printf("batch %s: analyzing %s: %v", batchID, video.VideoID, err)
			}
			s.progress.recordResult(batchID, succeeded)
			if report != nil {
				s.reportMu.Lock()
				report(video, succeeded)
				s.reportMu.Unlock()
			}
			return nil
		})
	}

	g.Wait()
}
