package rssfeeds

import (
	"regexp"
	"strings"
	"time"

	"newsdigest/config"
	"newsdigest/types"
)

var (
	rssItemRe   = regexp.MustCompile(`(?is)<item[\s>].*?</item>`)
	atomEntryRe = regexp.MustCompile(`(?is)<entry[\s>].*?</entry>`)

	titleRe   = regexp.MustCompile(`(?is)<title[^>]*>(.*?)</title>`)
	linkRe    = regexp.MustCompile(`(?is)<link[^>]*>(.*?)</link>`)
	pubDateRe = regexp.MustCompile(`(?is)<pubDate[^>]*>(.*?)</pubDate>`)
	descRe    = regexp.MustCompile(`(?is)<description[^>]*>(.*?)</description>`)

	atomLinkRe      = regexp.MustCompile(`(?i)<link[^>]*href=["']([^"']+)["']`)
	atomUpdatedRe   = regexp.MustCompile(`(?is)<updated[^>]*>(.*?)</updated>`)
	atomPublishedRe = regexp.MustCompile(`(?is)<published[^>]*>(.*?)</published>`)
	atomSummaryRe   = regexp.MustCompile(`(?is)<summary[^>]*>(.*?)</summary>`)
	atomContentRe   = regexp.MustCompile(`(?is)<content[^>]*>(.*?)</content>`)
)

// dateLayouts covers the formats feeds use in the wild
var dateLayouts = []string{
	time.RFC1123Z,
	time.RFC1123,
	time.RFC3339,
	"2006-01-02T15:04:05Z0700",
	"Mon, 2 Jan 2006 15:04:05 -0700",
	"Mon, 2 Jan 2006 15:04:05 MST",
	"2006-01-02 15:04:05",
}

// ExtractItems parses a feed document into normalized items. RSS item blocks
// are tried first; documents with none fall back to Atom entries. Real-world
// feeds are frequently malformed, so extraction is best-effort: blocks without
// a readable title are skipped and unparseable dates become nil, never errors.
func ExtractItems(doc, feedName, category string) []types.Item {
	if category == "" {
		category = DefaultCategory
	}
	if blocks := rssItemRe.FindAllString(doc, -1); len(blocks) > 0 {
		return extractRSS(blocks, feedName, category)
	}
	return extractAtom(atomEntryRe.FindAllString(doc, -1), feedName, category)
}

func extractRSS(blocks []string, feedName, category string) []types.Item {
	items := make([]types.Item, 0, len(blocks))
	for _, block := range blocks {
		title := cleanText(firstMatch(titleRe, block))
		if title == "" {
			continue
		}
		items = append(items, types.Item{
			Source:    feedName,
			Category:  category,
			Title:     title,
			URL:       cleanText(firstMatch(linkRe, block)),
			Published: parseDate(firstMatch(pubDateRe, block)),
			Summary:   truncate(cleanText(firstMatch(descRe, block)), config.MaxSummaryLen),
		})
	}
	return items
}

func extractAtom(blocks []string, feedName, category string) []types.Item {
	items := make([]types.Item, 0, len(blocks))
	for _, block := range blocks {
		title := cleanText(firstMatch(titleRe, block))
		if title == "" {
			continue
		}

		// Atom dates prefer updated over published, bodies prefer summary
		// over content
		raw := firstMatch(atomUpdatedRe, block)
		if raw == "" {
			raw = firstMatch(atomPublishedRe, block)
		}
		body := firstMatch(atomSummaryRe, block)
		if body == "" {
			body = firstMatch(atomContentRe, block)
		}

		items = append(items, types.Item{
			Source:    feedName,
			Category:  category,
			Title:     title,
			URL:       DecodeEntities(strings.TrimSpace(firstMatch(atomLinkRe, block))),
			Published: parseDate(raw),
			Summary:   truncate(cleanText(body), config.MaxSummaryLen),
		})
	}
	return items
}

// firstMatch returns the first capture of re in s, or ""
func firstMatch(re *regexp.Regexp, s string) string {
	if m := re.FindStringSubmatch(s); len(m) > 1 {
		return m[1]
	}
	return ""
}

// parseDate converts a raw feed date into a UTC instant, or nil when the
// string matches no known layout
func parseDate(raw string) *time.Time {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, raw); err == nil {
			t = t.UTC()
			return &t
		}
	}
	return nil
}
