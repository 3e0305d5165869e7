package research

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"
)

// WebBackend queries DuckDuckGo's instant-answer API. No API key
// required.
type WebBackend struct {
	baseURL string
	client  *http.Client
}

func NewWebBackend(baseURL string, timeout time.Duration) *WebBackend {
	if baseURL == "" {
		baseURL = "https://api.duckduckgo.com"
	}
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	return &WebBackend{baseURL: baseURL, client: &http.Client{Timeout: timeout}}
}

func (b *WebBackend) Name() string { return "web" }

type duckDuckGoResponse struct {
	RelatedTopics []struct {
		Text     string `json:"Text"`
		FirstURL string `json:"FirstURL"`
	} `json:"RelatedTopics"`
}

func (b *WebBackend) Search(ctx context.Context, query string, limit int) ([]Record, error) {
	if limit <= 0 {
		limit = 8
	}

	params := url.Values{}
	params.Set("q", query)
	params.Set("format", "json")
	params.Set("no_redirect", "1")
	params.Set("no_html", "1")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, b.baseURL+"/?"+params.Encode(), nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", userAgent)

	resp, err := b.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("web search: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("web search: status %d", resp.StatusCode)
	}

	var data duckDuckGoResponse
	if err := json.NewDecoder(resp.Body).Decode(&data); err != nil {
		return nil, fmt.Errorf("web search: decode: %w", err)
	}

	var results []Record
	for _, item := range data.RelatedTopics {
		if item.Text == "" {
			continue
		}
		results = append(results, Record{
			Source:  "web",
			Title:   truncate(item.Text, 120),
			URL:     item.FirstURL,
			Snippet: truncate(item.Text, 400),
		})
		if len(results) >= limit {
			break
		}
	}
	return results, nil
}

// truncate shortens to n runes, never splitting a multibyte sequence.
func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n])
}
