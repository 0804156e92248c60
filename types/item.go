package types

import "time"

// Item is a single normalized headline extracted from a feed document
type Item struct {
	Source    string     `json:"source"`
	Category  string     `json:"category"`
	Title     string     `json:"title"`
	URL       string     `json:"url"`
	Published *time.Time `json:"published"`
	Summary   string     `json:"summary"`
}

// FeedError records one feed's failure without aborting the run
type FeedError struct {
	Feed  string `json:"feed"`
	Error string `json:"error"`
}

// Digest is the top-level wrapper for machine-readable output
type Digest struct {
	GeneratedAt time.Time   `json:"generated_at"`
	WindowHours int         `json:"window_hours"`
	Count       int         `json:"count"`
	Errors      []FeedError `json:"errors"`
	Items       []Item      `json:"items"`
}
