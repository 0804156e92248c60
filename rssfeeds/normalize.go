package rssfeeds

import (
	"regexp"
	"strconv"
	"strings"
	"unicode/utf8"
)

var (
	cdataRe = regexp.MustCompile(`(?s)<!\[CDATA\[(.*?)\]\]>`)
	tagRe   = regexp.MustCompile(`<[^>]*>`)

	// entityRe matches the references DecodeEntities handles: the common
	// named ones, the hex apostrophe, and generic decimal references
	entityRe = regexp.MustCompile(`&(?:amp|lt|gt|quot|apos|#[xX]27|#\d+);`)
)

// namedEntities covers the named references feeds actually use. Anything
// else passes through untouched; full HTML5 entity coverage is out of scope.
var namedEntities = map[string]string{
	"&amp;":  "&",
	"&lt;":   "<",
	"&gt;":   ">",
	"&quot;": `"`,
	"&apos;": "'",
	"&#x27;": "'",
	"&#X27;": "'",
}

// DecodeEntities replaces the common named character references and decimal
// numeric references with their literal characters. The input is scanned
// once, so a reference assembled by decoding another one is never decoded
// itself ("&amp;#39;" becomes "&#39;", not "'").
func DecodeEntities(s string) string {
	return entityRe.ReplaceAllStringFunc(s, func(m string) string {
		if lit, ok := namedEntities[m]; ok {
			return lit
		}
		n, err := strconv.Atoi(m[2 : len(m)-1])
		if err != nil || n <= 0 || n > 0x10FFFF {
			return m
		}
		return string(rune(n))
	})
}

// UnwrapCDATA strips CDATA wrapper syntax, keeping the enclosed text
func UnwrapCDATA(s string) string {
	return cdataRe.ReplaceAllString(s, "$1")
}

// StripTags removes any remaining markup tags
func StripTags(s string) string {
	return tagRe.ReplaceAllString(s, "")
}

// cleanText runs the full field post-processing chain: CDATA unwrap, tag
// strip, whitespace trim, entity decode
func cleanText(s string) string {
	s = UnwrapCDATA(s)
	s = StripTags(s)
	s = strings.TrimSpace(s)
	return DecodeEntities(s)
}

// truncate caps s at max runes
func truncate(s string, max int) string {
	if utf8.RuneCountInString(s) <= max {
		return s
	}
	return string([]rune(s)[:max])
}
