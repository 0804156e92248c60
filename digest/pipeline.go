package digest

import (
	"context"
	"log"
	"sync"
	"time"

	"newsdigest/config"
	"newsdigest/rssfeeds"
	"newsdigest/seencache"
	"newsdigest/types"
)

// Fetcher downloads a single feed document
type Fetcher interface {
	Fetch(ctx context.Context, url string) (string, error)
}

// Extractor turns a feed document into items
type Extractor func(doc, feedName, category string) ([]types.Item, error)

// Options configure a single pipeline run
type Options struct {
	Feeds       []rssfeeds.Feed
	WindowHours int
	MaxItems    int             // 0 means no cap
	Cache       seencache.Store // nil disables cross-run dedup
	FullContent bool
}

// Pipeline runs the fetch, extract, filter, dedupe, sort cycle once
type Pipeline struct {
	fetcher Fetcher
	extract Extractor
	now     func() time.Time
}

func New(fetcher Fetcher, extract Extractor) *Pipeline {
	return &Pipeline{fetcher: fetcher, extract: extract, now: time.Now}
}

// Run executes one full cycle and returns the digest. Individual feed
// failures are recorded into the digest's error list and never abort the run;
// the returned error is reserved for run-level faults (cache write failure).
func (p *Pipeline) Run(ctx context.Context, opts Options) (*types.Digest, error) {
	if opts.WindowHours <= 0 {
		opts.WindowHours = config.DefaultWindowHours
	}
	cutoff := p.now().Add(-time.Duration(opts.WindowHours) * time.Hour)

	type feedResult struct {
		items []types.Item
		err   error
	}

	// One goroutine per feed; each writes only its own slot
	results := make([]feedResult, len(opts.Feeds))
	var wg sync.WaitGroup
	for i, feed := range opts.Feeds {
		wg.Add(1)
		go func(i int, feed rssfeeds.Feed) {
			defer wg.Done()
			doc, err := p.fetcher.Fetch(ctx, feed.URL)
			if err != nil {
				results[i].err = err
				return
			}
			items, err := p.extract(doc, feed.Name, feed.Category)
			if err != nil {
				results[i].err = err
				return
			}
			results[i].items = FilterRecent(items, cutoff)
		}(i, feed)
	}
	wg.Wait()

	// Concatenate in feed-list order, so the first listed feed wins URL
	// ties regardless of fetch completion order
	var all []types.Item
	errs := make([]types.FeedError, 0)
	for i, r := range results {
		name := opts.Feeds[i].Name
		if r.err != nil {
			log.Printf("Feed %s failed: %v", name, r.err)
			errs = append(errs, types.FeedError{Feed: name, Error: r.err.Error()})
			continue
		}
		log.Printf("Fetched %d items from %s", len(r.items), name)
		all = append(all, r.items...)
	}

	all = DedupeByURL(all)

	var cache seencache.Cache
	if opts.Cache != nil {
		cache = seencache.LoadOrEmpty(ctx, opts.Cache)
		all = dropSeen(all, cache.Set())
	}

	SortByRecency(all)
	if opts.MaxItems > 0 && len(all) > opts.MaxItems {
		all = all[:opts.MaxItems]
	}

	if opts.FullContent {
		log.Printf("Extracting full content using %d workers...", rssfeeds.ContentWorkers)
		rssfeeds.ExtractFullContent(all)
	}

	if opts.Cache != nil {
		delivered := make([]string, 0, len(all))
		for _, it := range all {
			delivered = append(delivered, it.URL)
		}
		cache.Add(delivered...)
		if err := opts.Cache.Save(ctx, cache); err != nil {
			return nil, err
		}
	}

	return &types.Digest{
		GeneratedAt: p.now().UTC(),
		WindowHours: opts.WindowHours,
		Count:       len(all),
		Errors:      errs,
		Items:       all,
	}, nil
}

// dropSeen removes items whose URL was delivered by a previous run
func dropSeen(items []types.Item, seen map[string]bool) []types.Item {
	kept := make([]types.Item, 0, len(items))
	for _, it := range items {
		if seen[it.URL] {
			continue
		}
		kept = append(kept, it)
	}
	return kept
}
