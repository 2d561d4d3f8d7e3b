package analysis

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/davidroeth/podsight/internal/db"
)

// Store provides CRUD operations for video analyses.
type Store struct {
	db *db.DB
}

// NewStore creates a Store backed by the given database.
func NewStore(database *db.DB) *Store {
	return &Store{db: database}
}

// Save inserts or replaces the analysis for a video.
func (s *Store) Save(ctx context.Context, a Analysis) error {
	if a.CreatedAt.IsZero() {
		a.CreatedAt = time.Now()
	}

	var channelID, channelName, publishedAt, errText, batchID sql.NullString
	if a.ChannelID != "" {
		channelID = sql.NullString{String: a.ChannelID, Valid: true}
	}
	if a.ChannelName != "" {
		channelName = sql.NullString{String: a.ChannelName, Valid: true}
	}
	if a.PublishedAt != "" {
		publishedAt = sql.NullString{String: a.PublishedAt, Valid: true}
	}
	if a.Error != "" {
		errText = sql.NullString{String: a.Error, Valid: true}
	}
	if a.BatchID != "" {
		batchID = sql.NullString{String: a.BatchID, Valid: true}
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT OR REPLACE INTO video_analyses (
			video_id, video_url, title, analysis, channel_id, channel_name,
			published_at, video_duration, timestamps_valid, vaneck_excluded,
			success, error, batch_analysis_id, created_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		a.VideoID,
		a.VideoURL,
		a.Title,
		a.Analysis,
		channelID,
		channelName,
		publishedAt,
		a.VideoDuration,
		a.TimestampsValid,
		a.VanEckExcluded,
		a.Success,
		errText,
		batchID,
		a.CreatedAt.UTC().Format(time.DateTime),
	)
	if err != nil {
		return fmt.Errorf("saving analysis: %w", err)
	}
	return nil
}

// Get retrieves the analysis for a video. Returns (nil, nil) when none exists.
func (s *Store) Get(ctx context.Context, videoID string) (*Analysis, error) {
	row := s.db.QueryRowContext(ctx, selectColumns+" FROM video_analyses WHERE video_id = ?", videoID)

	a, err := scanInto(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("retrieving analysis: %w", err)
	}
	return a, nil
}

// List returns all analyses, newest published first, optionally filtered by channel.
func (s *Store) List(ctx context.Context, channelID string) ([]Analysis, error) {
	query := selectColumns + " FROM video_analyses"
	var args []any
	if channelID != "" {
		query += " WHERE channel_id = ?"
		args = append(args, channelID)
	}
	query += " ORDER BY published_at DESC"

	return s.queryList(ctx, query, args...)
}

// Recent returns analyses created within the last N days, newest first.
func (s *Store) Recent(ctx context.Context, days int) ([]Analysis, error) {
	query := selectColumns + ` FROM video_analyses
		WHERE datetime(created_at) >= datetime('now', '-' || ? || ' days')
		ORDER BY created_at DESC`
	return s.queryList(ctx, query, days)
}

// Paginated returns one page of analyses with pagination metadata. Rows with
// no published_at sort last so fresh content stays on the first pages.
func (s *Store) Paginated(ctx context.Context, page, pageSize int, channelID string) (*Page, error) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 {
		pageSize = 10
	}
	offset := (page - 1) * pageSize

	var clauses []string
	var args []any
	if channelID != "" {
		clauses = append(clauses, "channel_id = ?")
		args = append(args, channelID)
	}

	where := ""
	if len(clauses) > 0 {
		where = " WHERE " + strings.Join(clauses, " AND ")
	}

	var total int
	if err := s.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM video_analyses"+where, args...).Scan(&total); err != nil {
		return nil, fmt.Errorf("counting analyses: %w", err)
	}

	query := selectColumns + " FROM video_analyses" + where + `
		ORDER BY
			CASE WHEN published_at IS NULL OR published_at = '' THEN 1 ELSE 0 END,
			published_at DESC
		LIMIT ? OFFSET ?`
	args = append(args, pageSize, offset)

	analyses, err := s.queryList(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	if analyses == nil {
		analyses = []Analysis{}
	}

	totalPages := (total + pageSize - 1) / pageSize

	return &Page{
		Analyses:   analyses,
		TotalCount: total,
		Page:       page,
		PageSize:   pageSize,
		TotalPages: totalPages,
		HasNext:    page < totalPages,
		HasPrev:    page > 1,
	}, nil
}

// Counts returns the total number of analyses and how many succeeded.
func (s *Store) Counts(ctx context.Context) (total, successful int, err error) {
	err = s.db.QueryRowContext(ctx,
		"SELECT COUNT(*), COALESCE(SUM(success), 0) FROM video_analyses").Scan(&total, &successful)
	if err != nil {
		return 0, 0, fmt.Errorf("counting analyses: %w", err)
	}
	return total, successful, nil
}

func (s *Store) queryList(ctx context.Context, query string, args ...any) ([]Analysis, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("querying analyses: %w", err)
	}
	defer rows.Close()

	var analyses []Analysis
	for rows.Next() {
		a, err := scanInto(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning analysis: %w", err)
		}
		analyses = append(analyses, *a)
	}
	return analyses, rows.Err()
}

const selectColumns = `SELECT video_id, video_url, title, analysis, channel_id,
	channel_name, published_at, video_duration, timestamps_valid,
	vaneck_excluded, success, error, batch_analysis_id, created_at`

// scanner is implemented by both *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

func scanInto(sc scanner) (*Analysis, error) {
	var (
		a                                   Analysis
		channelID, channelName, publishedAt sql.NullString
		errText, batchID                    sql.NullString
		created                             string
	)

	err := sc.Scan(
		&a.VideoID, &a.VideoURL, &a.Title, &a.Analysis, &channelID,
		&channelName, &publishedAt, &a.VideoDuration, &a.TimestampsValid,
		&a.VanEckExcluded, &a.Success, &errText, &batchID, &created,
	)
	if err != nil {
		return nil, err
	}

	a.ChannelID = channelID.String
	a.ChannelName = channelName.String
	a.PublishedAt = publishedAt.String
	a.Error = errText.String
	a.BatchID = batchID.String

	if t, parseErr := time.Parse(time.DateTime, created); parseErr == nil {
		a.CreatedAt = t
	} else if t, parseErr := time.Parse(time.RFC3339, created); parseErr == nil {
		a.CreatedAt = t
	}

	return &a, nil
}
