// Package discovery tracks recent uploads from the configured channels and
// drives batch analysis of the ones not yet analyzed.
package discovery

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/davidroeth/podsight/internal/db"
	"github.com/davidroeth/podsight/internal/youtube"
)

// Store persists discovered videos and their analysis state.
type Store struct {
	db *db.DB
}

// NewStore creates a Store backed by the given database.
func NewStore(database *db.DB) *Store {
	return &Store{db: database}
}

// DiscoveredVideo is a video found on a watched channel, with its local
// analysis state.
type DiscoveredVideo struct {
	youtube.Video
	DiscoveredAt time.Time `json:"discovered_at"`
	Analyzed     bool      `json:"analyzed"`
	InProgress   bool      `json:"in_progress"`
}

// Save upserts a batch of discovered videos, preserving the analysis state
// of rows already present.
func (s *Store) Save(ctx context.Context, videos []youtube.Video) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("starting transaction: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO discovered_videos (
			video_id, title, url, channel_name, channel_id, duration,
			published_at, excluded_from_analysis
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(video_id) DO UPDATE SET
			title = excluded.title,
			duration = excluded.duration,
			excluded_from_analysis = excluded.excluded_from_analysis`)
	if err != nil {
		return fmt.Errorf("preparing upsert: %w", err)
	}
	defer stmt.Close()

	for _, v := range videos {
		var publishedAt sql.NullString
		if v.PublishedAt != "" {
			publishedAt = sql.NullString{String: v.PublishedAt, Valid: true}
		}
		if _, err := stmt.ExecContext(ctx,
			v.VideoID, v.Title, v.URL, v.ChannelName, v.ChannelID,
			v.Duration, publishedAt, v.ExcludedFromAnalysis,
		); err != nil {
			return fmt.Errorf("upserting video %s: %w", v.VideoID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing discovered videos: %w", err)
	}
	return nil
}

// Recent returns videos discovered within the last N days, newest published
// first.
func (s *Store) Recent(ctx context.Context, days int) ([]DiscoveredVideo, error) {
	rows, err := s.db.QueryContext(ctx, discoveredColumns+` FROM discovered_videos
		WHERE published_at >= ?
		ORDER BY published_at DESC`,
		time.Now().AddDate(0, 0, -days).UTC().Format(time.RFC3339))
	if err != nil {
		return nil, fmt.Errorf("querying recent videos: %w", err)
	}
	defer rows.Close()

	return scanVideos(rows)
}

// LatestDiscovered returns the most recently discovered videos regardless of
// publish date, so rows without one still surface.
func (s *Store) LatestDiscovered(ctx context.Context, limit int) ([]DiscoveredVideo, error) {
	rows, err := s.db.QueryContext(ctx, discoveredColumns+` FROM discovered_videos
		ORDER BY discovered_at DESC
		LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("querying latest discovered videos: %w", err)
	}
	defer rows.Close()

	return scanVideos(rows)
}

// Unanalyzed returns recent videos that are eligible for analysis and have
// neither been analyzed nor are currently in progress.
func (s *Store) Unanalyzed(ctx context.Context, days int) ([]DiscoveredVideo, error) {
	rows, err := s.db.QueryContext(ctx, discoveredColumns+` FROM discovered_videos
		WHERE published_at >= ?
		  AND analyzed = 0
		  AND in_progress = 0
		  AND excluded_from_analysis = 0
		ORDER BY published_at DESC`,
		time.Now().AddDate(0, 0, -days).UTC().Format(time.RFC3339))
	if err != nil {
		return nil, fmt.Errorf("querying unanalyzed videos: %w", err)
	}
	defer rows.Close()

	return scanVideos(rows)
}

// MarkAnalyzed flags a video as analyzed and clears its in-progress bit.
// A video never discovered is a no-op.
func (s *Store) MarkAnalyzed(ctx context.Context, videoID string) error {
	_, err := s.db.ExecContext(ctx,
		"UPDATE discovered_videos SET analyzed = 1, in_progress = 0 WHERE video_id = ?",
		videoID)
	if err != nil {
		return fmt.Errorf("marking video analyzed: %w", err)
	}
	return nil
}

// MarkInProgress sets or clears the in-progress bit for a set of videos.
func (s *Store) MarkInProgress(ctx context.Context, videoIDs []string, inProgress bool) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("starting transaction: %w", err)
	}
	defer tx.Rollback()

	for _, id := range videoIDs {
		if _, err := tx.ExecContext(ctx,
			"UPDATE discovered_videos SET in_progress = ? WHERE video_id = ?",
			inProgress, id); err != nil {
			return fmt.Errorf("updating video %s: %w", id, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing progress flags: %w", err)
	}
	return nil
}

// Counts returns how many videos have been discovered and how many of them
// are analyzed.
func (s *Store) Counts(ctx context.Context) (discovered, analyzed int, err error) {
	err = s.db.QueryRowContext(ctx,
		"SELECT COUNT(*), COALESCE(SUM(analyzed), 0) FROM discovered_videos").Scan(&discovered, &analyzed)
	if err != nil {
		return 0, 0, fmt.Errorf("counting discovered videos: %w", err)
	}
	return discovered, analyzed, nil
}

const discoveredColumns = `SELECT video_id, title, url, channel_name, channel_id,
	duration, published_at, discovered_at, analyzed, in_progress,
	excluded_from_analysis`

func scanVideos(rows *sql.Rows) ([]DiscoveredVideo, error) {
	var videos []DiscoveredVideo
	for rows.Next() {
		var (
			v                      DiscoveredVideo
			channelID, publishedAt sql.NullString
			discovered             string
		)
		if err := rows.Scan(
			&v.VideoID, &v.Title, &v.URL, &v.ChannelName, &channelID,
			&v.Duration, &publishedAt, &discovered, &v.Analyzed,
			&v.InProgress, &v.ExcludedFromAnalysis,
		); err != nil {
			return nil, fmt.Errorf("scanning discovered video: %w", err)
		}
		v.ChannelID = channelID.String
		v.PublishedAt = publishedAt.String
		if t, err := time.Parse(time.DateTime, discovered); err == nil {
			v.DiscoveredAt = t
		}
		videos = append(videos, v)
	}
	return videos, rows.Err()
}
