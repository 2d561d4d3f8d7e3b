package site

import (
	"encoding/json"
	"os"

	"github.com/davidroeth/podsight/internal/analysis"
)

// SearchEntry is one record of the client-side search index.
type SearchEntry struct {
	Title   string `json:"title"`
	Page    string `json:"page"`
	Channel string `json:"channel,omitempty"`
	Text    string `json:"text"`
}

// WriteSearchIndex writes a JSON search index over the successful analyses.
func WriteSearchIndex(analyses []analysis.Analysis, path string) error {
	entries := make([]SearchEntry, 0, len(analyses))
	for _, a := range analyses {
		if !a.Success {
			continue
		}
		entries = append(entries, SearchEntry{
			Title:   a.Title,
			Page:    a.VideoID + ".html",
			Channel: a.ChannelName,
			Text:    a.Analysis,
		})
	}

	data, err := json.Marshal(entries)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}
