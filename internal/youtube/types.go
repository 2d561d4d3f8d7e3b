package youtube

// Video holds the metadata podsight needs about a single YouTube video.
type Video struct {
	VideoID              string `json:"video_id"`
	Title                string `json:"title"`
	URL                  string `json:"url"`
	ChannelName          string `json:"channel_name"`
	ChannelID            string `json:"channel_id,omitempty"`
	Duration             int    `json:"duration"`
	PublishedAt          string `json:"published_at"`
	ExcludedFromAnalysis bool   `json:"excluded_from_analysis"`
}

// Channel identifies a YouTube channel to watch.
type Channel struct {
	Name      string
	ChannelID string
}
