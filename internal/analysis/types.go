package analysis

import "time"

// Analysis is a stored investment-commentary analysis of one video. The JSON
// field names are the wire contract consumed by the web pages.
type Analysis struct {
	VideoID         string    `json:"video_id"`
	VideoURL        string    `json:"video_url"`
	Title           string    `json:"title"`
	Analysis        string    `json:"analysis"`
	ChannelID       string    `json:"channel_id,omitempty"`
	ChannelName     string    `json:"channel_name,omitempty"`
	PublishedAt     string    `json:"published_at,omitempty"`
	VideoDuration   int       `json:"video_duration"`
	TimestampsValid bool      `json:"timestamps_valid"`
	VanEckExcluded  bool      `json:"vaneck_excluded"`
	Success         bool      `json:"success"`
	Error           string    `json:"error,omitempty"`
	BatchID         string    `json:"batch_analysis_id,omitempty"`
	CreatedAt       time.Time `json:"created_at"`
}

// Page is one page of analyses plus pagination metadata.
type Page struct {
	Analyses   []Analysis `json:"analyses"`
	TotalCount int        `json:"total_count"`
	Page       int        `json:"page"`
	PageSize   int        `json:"page_size"`
	TotalPages int        `json:"total_pages"`
	HasNext    bool       `json:"has_next"`
	HasPrev    bool       `json:"has_prev"`
}
