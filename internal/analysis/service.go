package analysis

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/davidroeth/podsight/internal/analyzer"
	"github.com/davidroeth/podsight/internal/youtube"
)

// VideoLookup resolves YouTube video metadata. Satisfied by *youtube.Client.
type VideoLookup interface {
	VideoInfo(ctx context.Context, videoURL string) (*youtube.Video, error)
}

// VideoMarker is notified when an analysis completes so the discovery side
// can flag the video as handled. Optional.
type VideoMarker interface {
	MarkAnalyzed(ctx context.Context, videoID string) error
}

// Indexer receives completed analyses for semantic search. Optional.
type Indexer interface {
	Index(ctx context.Context, a Analysis) error
}

// Service runs analyses end to end: metadata lookup, model call, caching.
type Service struct {
	store    *Store
	videos   VideoLookup
	analyzer *analyzer.Analyzer
	marker   VideoMarker
	indexer  Indexer
}

// NewService creates a Service. marker and indexer may be nil.
func NewService(store *Store, videos VideoLookup, an *analyzer.Analyzer, marker VideoMarker, indexer Indexer) *Service {
	return &Service{
		store:    store,
		videos:   videos,
		analyzer: an,
		marker:   marker,
		indexer:  indexer,
	}
}

// ErrVideoUnresolvable marks a request whose URL does not resolve to a
// video, as opposed to an infrastructure failure.
var ErrVideoUnresolvable = errors.New("video could not be resolved")

// AnalyzeURL analyzes the video at the given URL, returning a cached result
// when one exists. Model failures are recorded and returned as unsuccessful
// analyses rather than errors, so repeat requests see the same outcome.
func (s *Service) AnalyzeURL(ctx context.Context, videoURL string) (*Analysis, error) {
	videoID := youtube.ExtractVideoID(videoURL)
	if videoID == "" {
		return nil, fmt.Errorf("%w: no video ID in %q", ErrVideoUnresolvable, videoURL)
	}

	cached, err := s.store.Get(ctx, videoID)
	if err != nil {
		return nil, err
	}
	if cached != nil {
		log.Printf("analysis cache hit for %s", videoID)
		return cached, nil
	}

	video, err := s.videos.VideoInfo(ctx, videoURL)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrVideoUnresolvable, err)
	}

	return s.analyze(ctx, video, "")
}

// AnalyzeVideo analyzes a video whose metadata is already known, tagging the
// stored row with the given batch ID. Used by batch analysis.
func (s *Service) AnalyzeVideo(ctx context.Context, video youtube.Video, batchID string) (*Analysis, error) {
	cached, err := s.store.Get(ctx, video.VideoID)
	if err != nil {
		return nil, err
	}
	if cached != nil {
		return cached, nil
	}
	return s.analyze(ctx, &video, batchID)
}

func (s *Service) analyze(ctx context.Context, video *youtube.Video, batchID string) (*Analysis, error) {
	a := Analysis{
		VideoID:       video.VideoID,
		VideoURL:      youtube.WatchURL(video.VideoID),
		Title:         video.Title,
		ChannelID:     video.ChannelID,
		ChannelName:   video.ChannelName,
		PublishedAt:   video.PublishedAt,
		VideoDuration: video.Duration,
		BatchID:       batchID,
		CreatedAt:     time.Now(),
	}

	result, err := s.analyzer.Analyze(ctx, a.VideoURL, video.Duration)
	if err != nil {
		a.Success = false
		a.Error = err.Error()
		log.Printf("analysis failed for %s: %v", video.VideoID, err)
	} else {
		a.Success = true
		a.Analysis = result.Analysis
		a.TimestampsValid = result.TimestampsValid
		a.VanEckExcluded = result.VanEckExcluded
		log.Printf("analyzed %s: %d input / %d output tokens, estimated cost $%.4f",
			video.VideoID, result.InputTokens, result.OutputTokens, result.EstimatedCost)
	}

	if err := s.store.Save(ctx, a); err != nil {
		return nil, err
	}

	if a.Success {
		if s.marker != nil {
			if err := s.marker.MarkAnalyzed(ctx, a.VideoID); err != nil {
				log.Printf("marking video %s analyzed: %v", a.VideoID, err)
			}
		}
		if s.indexer != nil {
			if err := s.indexer.Index(ctx, a); err != nil {
				log.Printf("indexing analysis %s: %v", a.VideoID, err)
			}
		}
	}

	return &a, nil
}
