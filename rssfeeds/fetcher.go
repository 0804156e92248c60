package rssfeeds

import (
	"context"
	"fmt"
	"io"
	"net/http"

	"newsdigest/config"
)

// Fetcher downloads feed documents over HTTP with a bounded timeout and
// redirect limit. A single Fetcher is shared by all feeds in a run.
type Fetcher struct {
	client *http.Client
}

// NewFetcher creates a fetcher with the standard transport limits
func NewFetcher() *Fetcher {
	return &Fetcher{
		client: &http.Client{
			Timeout: config.FetchTimeout,
			CheckRedirect: func(req *http.Request, via []*http.Request) error {
				if len(via) >= config.MaxRedirects {
					return fmt.Errorf("stopped after %d redirects", config.MaxRedirects)
				}
				return nil
			},
		},
	}
}

// Fetch retrieves the full document at url. Any non-200 final status,
// transport error, or timeout is returned as an error for that feed.
func (f *Fetcher) Fetch(ctx context.Context, url string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", err
	}
	req.Header.Set("User-Agent", config.UserAgent)

	resp, err := f.client.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("HTTP %d %s", resp.StatusCode, http.StatusText(resp.StatusCode))
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("read body: %w", err)
	}
	return string(body), nil
}
