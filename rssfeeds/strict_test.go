package rssfeeds

import (
	"strings"
	"testing"
	"time"
)

const strictRSSDoc = `<?xml version="1.0"?>
<rss version="2.0"><channel>
<title>Example</title>
<item>
  <title>First headline</title>
  <link>http://example.com/1</link>
  <pubDate>Mon, 01 Jan 2024 12:00:00 GMT</pubDate>
  <description>First summary</description>
</item>
<item>
  <title>Bad date</title>
  <link>http://example.com/2</link>
  <pubDate>not a date at all</pubDate>
</item>
<item>
  <link>http://example.com/untitled</link>
  <description>No title, should be dropped</description>
</item>
</channel></rss>`

const strictAtomDoc = `<?xml version="1.0"?>
<feed xmlns="http://www.w3.org/2005/Atom">
<title>Atom Example</title>
<entry>
  <title>Content fallback</title>
  <link href="http://example.com/atom/1"/>
  <updated>2024-02-01T08:30:00Z</updated>
  <content type="html">&lt;p&gt;Body text&lt;/p&gt;</content>
</entry>
</feed>`

func TestStrictExtractRSS(t *testing.T) {
	items, err := StrictExtract(strictRSSDoc, "Example", "tech")
	if err != nil {
		t.Fatalf("StrictExtract failed: %v", err)
	}
	if len(items) != 2 {
		t.Fatalf("got %d items; want 2 (untitled block dropped)", len(items))
	}

	first := items[0]
	if first.Title != "First headline" || first.URL != "http://example.com/1" {
		t.Errorf("item = %+v", first)
	}
	if first.Source != "Example" || first.Category != "tech" {
		t.Errorf("source/category = %q/%q", first.Source, first.Category)
	}
	if first.Summary != "First summary" {
		t.Errorf("summary = %q", first.Summary)
	}
	want := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	if first.Published == nil || !first.Published.Equal(want) {
		t.Errorf("published = %v; want %v", first.Published, want)
	}

	// Same contract as the pattern extractor: bad dates are nil, not errors
	if items[1].Published != nil {
		t.Errorf("invalid date should be nil, got %v", items[1].Published)
	}
}

func TestStrictExtractAtomFallbacks(t *testing.T) {
	items, err := StrictExtract(strictAtomDoc, "AtomFeed", "")
	if err != nil {
		t.Fatalf("StrictExtract failed: %v", err)
	}
	if len(items) != 1 {
		t.Fatalf("got %d items; want 1", len(items))
	}

	it := items[0]
	if it.Category != DefaultCategory {
		t.Errorf("category = %q; want default %q", it.Category, DefaultCategory)
	}
	if it.URL != "http://example.com/atom/1" {
		t.Errorf("url = %q", it.URL)
	}
	// No description, so the body comes from content, with markup stripped
	if it.Summary != "Body text" {
		t.Errorf("summary = %q; want content fallback", it.Summary)
	}
	want := time.Date(2024, 2, 1, 8, 30, 0, 0, time.UTC)
	if it.Published == nil || !it.Published.Equal(want) {
		t.Errorf("published = %v; want updated time %v", it.Published, want)
	}
}

func TestStrictExtractSummaryCapped(t *testing.T) {
	doc := `<rss version="2.0"><channel><item><title>Long</title><link>http://x/long</link><description>` +
		strings.Repeat("a", 500) + `</description></item></channel></rss>`
	items, err := StrictExtract(doc, "f", "c")
	if err != nil {
		t.Fatalf("StrictExtract failed: %v", err)
	}
	if len(items) != 1 {
		t.Fatalf("got %d items", len(items))
	}
	if n := len([]rune(items[0].Summary)); n != 300 {
		t.Fatalf("summary length = %d; want 300", n)
	}
}

func TestStrictExtractRejectsNonFeed(t *testing.T) {
	if _, err := StrictExtract("<html>not a feed</html>", "x", "y"); err == nil {
		t.Fatal("expected error for undetectable feed type")
	}
}
