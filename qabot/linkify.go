package qabot

import (
	"regexp"
	"strings"
)

var (
	urlPattern          = regexp.MustCompile(`https?://[^\s\[\]()]+`)
	markdownLinkPattern = regexp.MustCompile(`\[([^\]]+)\]\(([^)]+)\)`)
	trailingPunctuation = regexp.MustCompile(`[.,;:!?]+$`)
)

// ProcessText converts bare URLs in answer text into markdown hyperlinks
// while leaving existing markdown and HTML links untouched. Trailing
// sentence punctuation is kept outside the link.
func ProcessText(text string) string {
	if text == "" {
		return text
	}

	matches := urlPattern.FindAllStringIndex(text, -1)
	if len(matches) == 0 {
		return text
	}

	var b strings.Builder
	last := 0
	for _, loc := range matches {
		start, end := loc[0], loc[1]
		b.WriteString(text[last:start])
		url := text[start:end]

		if alreadyLinked(text, start, end) {
			b.WriteString(url)
			last = end
			continue
		}

		trailing := trailingPunctuation.FindString(url)
		url = url[:len(url)-len(trailing)]

		b.WriteString("[")
		b.WriteString(url)
		b.WriteString("](")
		b.WriteString(url)
		b.WriteString(")")
		b.WriteString(trailing)
		last = end
	}
	b.WriteString(text[last:])
	return b.String()
}

// alreadyLinked reports whether the URL at [start,end) is part of an
// existing markdown or HTML link.
func alreadyLinked(text string, start, end int) bool {
	prefix := text[:start]
	if strings.HasSuffix(prefix, "](") || strings.HasSuffix(prefix, "[") {
		return true
	}
	if strings.HasSuffix(prefix, `href="`) || strings.HasSuffix(prefix, `href='`) {
		return true
	}
	if end < len(text) && (text[end] == ')' || text[end] == ']') {
		return true
	}
	return false
}

// FixMarkdownLinks rewrites markdown [text](url) links as plain HTML
// anchors. Replaced transcripts bypass the engine's markdown pass, so
// restored messages need their links expanded up front. Cosmetic only.
func FixMarkdownLinks(text string) string {
	if !strings.Contains(text, "](") {
		return text
	}
	return markdownLinkPattern.ReplaceAllString(text,
		`<a href="$2" target="_blank" rel="noopener noreferrer">$1</a>`)
}
