package providers

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"

	"github.com/arsh246/weather-app/internal/config"
	"github.com/arsh246/weather-app/internal/errs"
	"github.com/arsh246/weather-app/internal/models"
)

// maxVideos caps how many related videos a search may carry.
const maxVideos = 3

// VideoClient searches YouTube for videos related to a city.
type VideoClient struct {
	baseURL string
	apiKey  string
	http    *http.Client
}

func NewVideoClient(cfg config.ProviderConfig) *VideoClient {
	return &VideoClient{
		baseURL: cfg.BaseURL,
		apiKey:  cfg.APIKey,
		http:    &http.Client{Timeout: cfg.Timeout},
	}
}

type youtubeSearchResponse struct {
	Items []struct {
		ID struct {
			VideoID string `json:"videoId"`
		} `json:"id"`
		Snippet struct {
			Title       string `json:"title"`
			Description string `json:"description"`
		} `json:"snippet"`
	} `json:"items"`
}

// Search returns up to maxVideos results in the provider's relevance order.
// Zero items map to ErrNotFound.
func (c *VideoClient) Search(ctx context.Context, query string) ([]models.RelatedVideo, error) {
	if query == "" {
		return nil, fmt.Errorf("%w: empty query", errs.ErrInvalid)
	}
	q := url.Values{}
	q.Set("part", "snippet")
	q.Set("type", "video")
	q.Set("maxResults", fmt.Sprintf("%d", maxVideos))
	q.Set("q", query)
	q.Set("key", c.apiKey)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/search?"+q.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", errs.ErrUpstream, err)
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: video search request: %v", errs.ErrUpstream, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: video provider returned %d", errs.ErrUpstream, resp.StatusCode)
	}

	var body youtubeSearchResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, fmt.Errorf("%w: decode video response: %v", errs.ErrUpstream, err)
	}
	if len(body.Items) == 0 {
		return nil, fmt.Errorf("%w: no videos for query", errs.ErrNotFound)
	}

	videos := make([]models.RelatedVideo, 0, maxVideos)
	for _, item := range body.Items {
		if len(videos) == maxVideos {
			break
		}
		videos = append(videos, models.RelatedVideo{
			Title:       item.Snippet.Title,
			URL:         "https://www.youtube.com/watch?v=" + item.ID.VideoID,
			Description: item.Snippet.Description,
		})
	}
	return videos, nil
}
