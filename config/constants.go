package config

import "time"

// Fetch Constants
const (
	// FetchTimeout bounds the download of a single feed document
	FetchTimeout = 10 * time.Second

	// MaxRedirects caps redirect hops followed per fetch
	MaxRedirects = 5

	// UserAgent identifies the tool to feed servers
	UserAgent = "newsdigest/1.0"
)

// Digest Constants
const (
	// DefaultWindowHours is the recency window applied when none is given
	DefaultWindowHours = 24

	// DefaultCount is the default cap on items in the digest
	DefaultCount = 10

	// MaxSummaryLen is the maximum summary length in runes after extraction
	MaxSummaryLen = 300
)
