// Package rssfeeds fetches RSS/Atom feed documents and extracts normalized
// headline items from them.
package rssfeeds

import (
	"encoding/json"
	"fmt"
	"os"
)

// DefaultCategory is applied to feed sources that do not declare one
const DefaultCategory = "general"

// Feed describes a single feed source
type Feed struct {
	Name     string `json:"name"`
	URL      string `json:"url"`
	Category string `json:"category,omitempty"`
}

// DefaultFeeds is the built-in source list used when no feeds file is given
var DefaultFeeds = []Feed{
	{Name: "Channel News Asia", URL: "https://www.channelnewsasia.com/api/v1/rss-outbound-feed?_format=xml", Category: "world"},
	{Name: "Straits Times", URL: "https://www.straitstimes.com/news/singapore/rss.xml", Category: "general"},
	{Name: "BBC World", URL: "https://feeds.bbci.co.uk/news/world/rss.xml", Category: "world"},
	{Name: "Hacker News", URL: "https://hnrss.org/newest", Category: "tech"},
	{Name: "Technology Review", URL: "https://www.technologyreview.com/feed/", Category: "tech"},
}

// LoadFeeds reads feed sources from a JSON file containing an array of
// {name, url, category} records. Category is optional and defaults to
// DefaultCategory.
func LoadFeeds(path string) ([]Feed, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read feeds file: %w", err)
	}

	var feeds []Feed
	if err := json.Unmarshal(data, &feeds); err != nil {
		return nil, fmt.Errorf("parse feeds file: %w", err)
	}

	for i := range feeds {
		if feeds[i].Name == "" || feeds[i].URL == "" {
			return nil, fmt.Errorf("feed entry %d is missing name or url", i)
		}
		if feeds[i].Category == "" {
			feeds[i].Category = DefaultCategory
		}
	}
	return feeds, nil
}
