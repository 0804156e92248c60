package rssfeeds

import (
	"fmt"
	"log"
	"strings"
	"sync"
	"time"

	"newsdigest/config"
	"newsdigest/types"

	readability "github.com/go-shiori/go-readability"
)

const (
	// ContentWorkers is the number of concurrent article-page fetches
	ContentWorkers = 5

	contentTimeout = 30 * time.Second
)

// ExtractFullContent replaces item summaries with readable article text
// fetched from each item's URL, using a worker pool. Items whose pages cannot
// be fetched or parsed keep their feed summaries; failures are per-item and
// never fatal. Workers write only to their own slot, so no locking is needed.
func ExtractFullContent(items []types.Item) {
	var wg sync.WaitGroup
	jobs := make(chan int, len(items))

	for w := 0; w < ContentWorkers; w++ {
		go func(workerID int) {
			for i := range jobs {
				if err := fillContent(&items[i]); err != nil {
					log.Printf("[Worker %d] Failed to extract %s: %v", workerID, items[i].URL, err)
				}
				wg.Done()
			}
		}(w)
	}

	for i := range items {
		wg.Add(1)
		jobs <- i
	}

	wg.Wait()
	close(jobs)
}

// fillContent fetches and extracts readable text for a single item
func fillContent(item *types.Item) error {
	if item.URL == "" {
		return fmt.Errorf("item URL is empty")
	}

	article, err := readability.FromURL(item.URL, contentTimeout)
	if err != nil {
		return fmt.Errorf("readability extraction failed: %w", err)
	}

	text := strings.Join(strings.Fields(article.TextContent), " ")
	if text == "" {
		return nil
	}
	item.Summary = truncate(text, config.MaxSummaryLen)
	return nil
}
