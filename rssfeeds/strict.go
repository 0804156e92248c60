package rssfeeds

import (
	"fmt"
	"strings"
	"time"

	"newsdigest/config"
	"newsdigest/types"

	"github.com/mmcdole/gofeed"
)

// StrictExtract parses a feed document with a real feed parser instead of
// pattern matching. It honors the same item contract as ExtractItems: titles
// are required, summaries are capped, and unknown dates are nil. Unlike the
// pattern extractor a document gofeed cannot parse at all is an error.
func StrictExtract(doc, feedName, category string) ([]types.Item, error) {
	if category == "" {
		category = DefaultCategory
	}

	feed, err := gofeed.NewParser().ParseString(doc)
	if err != nil {
		return nil, fmt.Errorf("parse feed: %w", err)
	}

	items := make([]types.Item, 0, len(feed.Items))
	for _, fi := range feed.Items {
		title := strings.TrimSpace(fi.Title)
		if title == "" {
			continue
		}

		summary := fi.Description
		if summary == "" {
			summary = fi.Content
		}

		var published *time.Time
		if fi.PublishedParsed != nil {
			t := fi.PublishedParsed.UTC()
			published = &t
		} else if fi.UpdatedParsed != nil {
			t := fi.UpdatedParsed.UTC()
			published = &t
		}

		items = append(items, types.Item{
			Source:    feedName,
			Category:  category,
			Title:     title,
			URL:       fi.Link,
			Published: published,
			Summary:   truncate(cleanText(summary), config.MaxSummaryLen),
		})
	}
	return items, nil
}
