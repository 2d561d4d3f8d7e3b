package youtube

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"sort"
	"time"
)

const defaultBaseURL = "https://www.googleapis.com/youtube/v3"

// Client talks to the YouTube Data API v3 via direct HTTP.
type Client struct {
	apiKey          string
	baseURL         string
	httpClient      *http.Client
	minVideoSeconds int
}

// NewClient creates a YouTube client. Videos shorter than minVideoSeconds are
// flagged as excluded from analysis.
func NewClient(apiKey string, minVideoSeconds int) *Client {
	return &Client{
		apiKey:          apiKey,
		baseURL:         defaultBaseURL,
		httpClient:      &http.Client{Timeout: 30 * time.Second},
		minVideoSeconds: minVideoSeconds,
	}
}

// API response shapes, reduced to the fields podsight reads.

type videoListResponse struct {
	Items []struct {
		ID      string `json:"id"`
		Snippet struct {
			Title        string `json:"title"`
			ChannelTitle string `json:"channelTitle"`
			ChannelID    string `json:"channelId"`
			PublishedAt  string `json:"publishedAt"`
		} `json:"snippet"`
		ContentDetails struct {
			Duration string `json:"duration"`
		} `json:"contentDetails"`
	} `json:"items"`
	Error *apiError `json:"error,omitempty"`
}

type channelListResponse struct {
	Items []struct {
		ContentDetails struct {
			RelatedPlaylists struct {
				Uploads string `json:"uploads"`
			} `json:"relatedPlaylists"`
		} `json:"contentDetails"`
	} `json:"items"`
	Error *apiError `json:"error,omitempty"`
}

type playlistItemsResponse struct {
	Items []struct {
		Snippet struct {
			ResourceID struct {
				VideoID string `json:"videoId"`
			} `json:"resourceId"`
		} `json:"snippet"`
	} `json:"items"`
	Error *apiError `json:"error,omitempty"`
}

type searchListResponse struct {
	Items []struct {
		ID struct {
			VideoID string `json:"videoId"`
		} `json:"id"`
	} `json:"items"`
	Error *apiError `json:"error,omitempty"`
}

type apiError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
	Status  string `json:"status"`
}

// get performs a GET against the Data API and decodes the response into out.
// out must embed an *apiError field named Error, checked by the caller.
func (c *Client) get(ctx context.Context, path string, params url.Values, out any) error {
	params.Set("key", c.apiKey)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path+"?"+params.Encode(), nil)
	if err != nil {
		return fmt.Errorf("creating request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("youtube request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("reading youtube response: %w", err)
	}

	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("decoding youtube response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("youtube returned status %d: %s", resp.StatusCode, string(body))
	}
	return nil
}

// VideoInfo retrieves title, channel and duration for a video URL or bare ID.
func (c *Client) VideoInfo(ctx context.Context, videoURL string) (*Video, error) {
	videoID := ExtractVideoID(videoURL)

	params := url.Values{}
	params.Set("part", "snippet,contentDetails")
	params.Set("id", videoID)

	var resp videoListResponse
	if err := c.get(ctx, "/videos", params, &resp); err != nil {
		return nil, err
	}
	if resp.Error != nil {
		return nil, fmt.Errorf("youtube API error (%s): %s", resp.Error.Status, resp.Error.Message)
	}
	if len(resp.Items) == 0 {
		return nil, fmt.Errorf("video %s not found", videoID)
	}

	item := resp.Items[0]
	duration := ParseDuration(item.ContentDetails.Duration)

	return &Video{
		VideoID:              videoID,
		Title:                item.Snippet.Title,
		URL:                  videoURL,
		ChannelName:          item.Snippet.ChannelTitle,
		ChannelID:            item.Snippet.ChannelID,
		Duration:             duration,
		PublishedAt:          item.Snippet.PublishedAt,
		ExcludedFromAnalysis: duration < c.minVideoSeconds,
	}, nil
}

// ChannelUploads returns up to maxResults recent uploads from a channel's
// uploads playlist.
func (c *Client) ChannelUploads(ctx context.Context, channelID string, maxResults int) ([]Video, error) {
	params := url.Values{}
	params.Set("part", "contentDetails")
	params.Set("id", channelID)

	var chResp channelListResponse
	if err := c.get(ctx, "/channels", params, &chResp); err != nil {
		return nil, err
	}
	if chResp.Error != nil {
		return nil, fmt.Errorf("youtube API error (%s): %s", chResp.Error.Status, chResp.Error.Message)
	}
	if len(chResp.Items) == 0 {
		return nil, nil
	}

	uploads := chResp.Items[0].ContentDetails.RelatedPlaylists.Uploads

	params = url.Values{}
	params.Set("part", "snippet")
	params.Set("playlistId", uploads)
	params.Set("maxResults", fmt.Sprintf("%d", maxResults))

	var plResp playlistItemsResponse
	if err := c.get(ctx, "/playlistItems", params, &plResp); err != nil {
		return nil, err
	}
	if plResp.Error != nil {
		return nil, fmt.Errorf("youtube API error (%s): %s", plResp.Error.Status, plResp.Error.Message)
	}

	var videos []Video
	for _, item := range plResp.Items {
		info, err := c.VideoInfo(ctx, WatchURL(item.Snippet.ResourceID.VideoID))
		if err != nil {
			log.Printf("youtube: fetching video details: %v", err)
			continue
		}
		videos = append(videos, *info)
	}
	return videos, nil
}

// RecentChannelVideos returns videos published within daysBack days across the
// given channels, newest first. Errors on individual channels are logged and
// skipped so one bad channel does not sink a discovery run.
func (c *Client) RecentChannelVideos(ctx context.Context, channels []Channel, daysBack int) ([]Video, error) {
	publishedAfter := time.Now().AddDate(0, 0, -daysBack).UTC().Format(time.RFC3339)

	var all []Video
	for _, channel := range channels {
		params := url.Values{}
		params.Set("part", "snippet")
		params.Set("channelId", channel.ChannelID)
		params.Set("type", "video")
		params.Set("order", "date")
		params.Set("publishedAfter", publishedAfter)
		params.Set("maxResults", "50")

		var resp searchListResponse
		if err := c.get(ctx, "/search", params, &resp); err != nil {
			log.Printf("youtube: searching channel %s: %v", channel.Name, err)
			continue
		}
		if resp.Error != nil {
			log.Printf("youtube: searching channel %s: %s", channel.Name, resp.Error.Message)
			continue
		}

		for _, item := range resp.Items {
			info, err := c.VideoInfo(ctx, WatchURL(item.ID.VideoID))
			if err != nil {
				log.Printf("youtube: fetching video details: %v", err)
				continue
			}
			// Override with the configured friendly name.
			info.ChannelName = channel.Name
			info.ChannelID = channel.ChannelID
			all = append(all, *info)
		}
	}

	sort.Slice(all, func(i, j int) bool {
		return all[i].PublishedAt > all[j].PublishedAt
	})

	return all, nil
}
