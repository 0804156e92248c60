package digest

import (
	"context"
	"encoding/json"
	"fmt"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"newsdigest/rssfeeds"
	"newsdigest/seencache"
	"newsdigest/types"
)

type fakeFetcher struct {
	docs map[string]string
	errs map[string]error
}

func (f *fakeFetcher) Fetch(ctx context.Context, url string) (string, error) {
	if err, ok := f.errs[url]; ok {
		return "", err
	}
	return f.docs[url], nil
}

func patternExtract(doc, feedName, category string) ([]types.Item, error) {
	return rssfeeds.ExtractItems(doc, feedName, category), nil
}

// runClock pins the pipeline clock so the recency window is deterministic
var runClock = time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC)

func rssItem(title, url string, published time.Time) string {
	return fmt.Sprintf("<item><title>%s</title><link>%s</link><pubDate>%s</pubDate></item>",
		title, url, published.Format(time.RFC1123))
}

func newTestPipeline(f Fetcher) *Pipeline {
	p := New(f, patternExtract)
	p.now = func() time.Time { return runClock }
	return p
}

func TestRunAggregatesFeedErrors(t *testing.T) {
	fetcher := &fakeFetcher{
		docs: map[string]string{
			"http://good/rss": rssItem("Works", "http://good/1", runClock.Add(-time.Hour)),
		},
		errs: map[string]error{
			"http://bad/rss": fmt.Errorf("HTTP 404 Not Found"),
		},
	}

	d, err := newTestPipeline(fetcher).Run(context.Background(), Options{
		Feeds: []rssfeeds.Feed{
			{Name: "Good", URL: "http://good/rss", Category: "tech"},
			{Name: "Bad", URL: "http://bad/rss", Category: "tech"},
		},
	})
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}

	if len(d.Errors) != 1 || d.Errors[0].Feed != "Bad" {
		t.Fatalf("errors = %+v; want one entry for Bad", d.Errors)
	}
	if d.Errors[0].Error != "HTTP 404 Not Found" {
		t.Errorf("error message = %q", d.Errors[0].Error)
	}
	if d.Count != 1 || d.Items[0].Source != "Good" {
		t.Fatalf("items = %+v; want the one item from Good", d.Items)
	}
}

func TestRunDedupesAcrossFeeds(t *testing.T) {
	fetcher := &fakeFetcher{
		docs: map[string]string{
			"http://a/rss": rssItem("From A", "http://dup/1", runClock.Add(-2*time.Hour)),
			"http://b/rss": rssItem("From B", "http://dup/1", runClock.Add(-time.Hour)),
		},
	}

	d, err := newTestPipeline(fetcher).Run(context.Background(), Options{
		Feeds: []rssfeeds.Feed{
			{Name: "A", URL: "http://a/rss"},
			{Name: "B", URL: "http://b/rss"},
		},
	})
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}

	if d.Count != 1 {
		t.Fatalf("got %d items; want 1 after dedup", d.Count)
	}
	// The feed listed first wins, regardless of timestamps
	if d.Items[0].Source != "A" {
		t.Fatalf("keeper came from %q; want A", d.Items[0].Source)
	}
}

func TestRunWindowAndTruncation(t *testing.T) {
	doc := rssItem("new 1", "http://f/1", runClock.Add(-1*time.Hour)) +
		rssItem("new 2", "http://f/2", runClock.Add(-2*time.Hour)) +
		rssItem("new 3", "http://f/3", runClock.Add(-3*time.Hour)) +
		rssItem("stale", "http://f/4", runClock.Add(-48*time.Hour))
	fetcher := &fakeFetcher{docs: map[string]string{"http://f/rss": doc}}

	d, err := newTestPipeline(fetcher).Run(context.Background(), Options{
		Feeds:       []rssfeeds.Feed{{Name: "F", URL: "http://f/rss"}},
		WindowHours: 24,
		MaxItems:    2,
	})
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}

	if d.Count != 2 {
		t.Fatalf("got %d items; want 2 after window+truncation", d.Count)
	}
	// Newest first
	if d.Items[0].Title != "new 1" || d.Items[1].Title != "new 2" {
		t.Fatalf("order = %q, %q", d.Items[0].Title, d.Items[1].Title)
	}
}

func TestRunSeenCacheRoundTrip(t *testing.T) {
	fetcher := &fakeFetcher{
		docs: map[string]string{
			"http://f/rss": rssItem("Once", "http://f/once", runClock.Add(-time.Hour)),
		},
	}
	store := seencache.NewFileStore(filepath.Join(t.TempDir(), "seen.json"))
	opts := Options{
		Feeds: []rssfeeds.Feed{{Name: "F", URL: "http://f/rss"}},
		Cache: store,
	}

	first, err := newTestPipeline(fetcher).Run(context.Background(), opts)
	if err != nil {
		t.Fatalf("first run failed: %v", err)
	}
	if first.Count != 1 {
		t.Fatalf("first run delivered %d items; want 1", first.Count)
	}

	second, err := newTestPipeline(fetcher).Run(context.Background(), opts)
	if err != nil {
		t.Fatalf("second run failed: %v", err)
	}
	if second.Count != 0 {
		t.Fatalf("second run delivered %d items; want 0 (all seen)", second.Count)
	}

	cache, err := store.Load(context.Background())
	if err != nil {
		t.Fatalf("cache load failed: %v", err)
	}
	if !cache.Set()["http://f/once"] {
		t.Fatal("delivered URL missing from persisted cache")
	}
	if cache.Updated.IsZero() {
		t.Fatal("cache timestamp not set")
	}
}

func TestRunEmptyDigestMarshalsArrays(t *testing.T) {
	fetcher := &fakeFetcher{docs: map[string]string{"http://f/rss": "<rss></rss>"}}
	d, err := newTestPipeline(fetcher).Run(context.Background(), Options{
		Feeds: []rssfeeds.Feed{{Name: "F", URL: "http://f/rss"}},
	})
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}

	if d.Items == nil || d.Errors == nil {
		t.Fatalf("items=%v errors=%v; want allocated slices", d.Items, d.Errors)
	}
	out, err := json.Marshal(d)
	if err != nil {
		t.Fatalf("marshal failed: %v", err)
	}
	if !strings.Contains(string(out), `"items":[]`) || !strings.Contains(string(out), `"errors":[]`) {
		t.Fatalf("empty digest marshaled as %s; want [] for items and errors", out)
	}
}

func TestRunDefaultWindow(t *testing.T) {
	fetcher := &fakeFetcher{docs: map[string]string{}}
	d, err := newTestPipeline(fetcher).Run(context.Background(), Options{})
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	if d.WindowHours != 24 {
		t.Fatalf("window = %d; want default 24", d.WindowHours)
	}
}
