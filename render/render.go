// Package render formats a digest for its output target: machine-readable
// JSON, plain text blocks, Markdown grouped by category, or an HTML-annotated
// chat message.
package render

import (
	"encoding/json"
	"fmt"
	"html"
	"strings"

	"newsdigest/types"
)

// Format selects an output rendering
type Format string

const (
	FormatJSON     Format = "json"
	FormatText     Format = "text"
	FormatMarkdown Format = "markdown"
	FormatChat     Format = "chat"
)

// Render produces the digest in the requested format
func Render(d *types.Digest, format Format) (string, error) {
	switch format {
	case FormatJSON:
		return JSON(d)
	case FormatText:
		return Text(d), nil
	case FormatMarkdown:
		return Markdown(d), nil
	case FormatChat:
		return Chat(d), nil
	default:
		return "", fmt.Errorf("unknown format %q", format)
	}
}

// JSON marshals the digest with indentation
func JSON(d *types.Digest) (string, error) {
	data, err := json.MarshalIndent(d, "", "  ")
	if err != nil {
		return "", fmt.Errorf("encode digest: %w", err)
	}
	return string(data) + "\n", nil
}

// Text renders one plain-text block per item
func Text(d *types.Digest) string {
	var b strings.Builder
	fmt.Fprintf(&b, "News digest: %d items, last %d hours\n\n", d.Count, d.WindowHours)

	for _, it := range d.Items {
		fmt.Fprintf(&b, "%s\n", it.Title)
		fmt.Fprintf(&b, "  %s | %s | %s\n", it.Source, it.Category, dateLabel(it))
		if it.URL != "" {
			fmt.Fprintf(&b, "  %s\n", it.URL)
		}
		if it.Summary != "" {
			fmt.Fprintf(&b, "  %s\n", it.Summary)
		}
		b.WriteString("\n")
	}

	writeErrorsText(&b, d.Errors)
	return b.String()
}

// Markdown renders the digest grouped by category, categories in first-seen
// order so groups follow overall recency
func Markdown(d *types.Digest) string {
	var b strings.Builder
	fmt.Fprintf(&b, "# News Digest\n\n")
	fmt.Fprintf(&b, "_Generated %s, last %d hours, %d items_\n",
		d.GeneratedAt.Format("2006-01-02 15:04 UTC"), d.WindowHours, d.Count)

	var order []string
	grouped := make(map[string][]types.Item)
	for _, it := range d.Items {
		if _, ok := grouped[it.Category]; !ok {
			order = append(order, it.Category)
		}
		grouped[it.Category] = append(grouped[it.Category], it)
	}

	for _, category := range order {
		fmt.Fprintf(&b, "\n## %s\n\n", category)
		for _, it := range grouped[category] {
			if it.URL != "" {
				fmt.Fprintf(&b, "- [%s](%s) (%s, %s)\n", it.Title, it.URL, it.Source, dateLabel(it))
			} else {
				fmt.Fprintf(&b, "- %s (%s, %s)\n", it.Title, it.Source, dateLabel(it))
			}
			if it.Summary != "" {
				fmt.Fprintf(&b, "  %s\n", it.Summary)
			}
		}
	}

	if len(d.Errors) > 0 {
		fmt.Fprintf(&b, "\n## Feed errors\n\n")
		for _, e := range d.Errors {
			fmt.Fprintf(&b, "- %s: %s\n", e.Feed, e.Error)
		}
	}
	return b.String()
}

// Chat renders an HTML-annotated message suitable for Telegram: bold
// hyperlinked titles, one item per paragraph
func Chat(d *types.Digest) string {
	var b strings.Builder
	fmt.Fprintf(&b, "<b>News Digest</b> (%d items, last %dh)\n", d.Count, d.WindowHours)

	for _, it := range d.Items {
		title := html.EscapeString(it.Title)
		if it.URL != "" {
			fmt.Fprintf(&b, "\n<b><a href=\"%s\">%s</a></b>\n", html.EscapeString(it.URL), title)
		} else {
			fmt.Fprintf(&b, "\n<b>%s</b>\n", title)
		}
		fmt.Fprintf(&b, "%s, %s\n", html.EscapeString(it.Source), dateLabel(it))
	}

	if len(d.Errors) > 0 {
		fmt.Fprintf(&b, "\n<i>%d feed(s) failed</i>\n", len(d.Errors))
	}
	return b.String()
}

// dateLabel formats an item date for human-readable output
func dateLabel(it types.Item) string {
	if it.Published == nil {
		return "no date"
	}
	return it.Published.Format("2006-01-02 15:04")
}

func writeErrorsText(b *strings.Builder, errs []types.FeedError) {
	if len(errs) == 0 {
		return
	}
	b.WriteString("Feed errors:\n")
	for _, e := range errs {
		fmt.Fprintf(b, "  %s: %s\n", e.Feed, e.Error)
	}
}
