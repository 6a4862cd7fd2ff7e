package pipeline

import (
	"regexp"
	"strings"
)

var (
	// Two or more newlines separate block segments
	segmentBreak = regexp.MustCompile(`\n{2,}`)

	// Opening or closing block-level tag at the start of a segment
	blockTagPattern = regexp.MustCompile(`^</?(?i:address|article|aside|blockquote|div|dl|fieldset|figure|footer|form|h[1-6]|header|hr|nav|ol|p|pre|section|table|ul)\b`)
)

// wrapParagraphs wraps every segment that is not already block-level in <p>.
// Segments are joined without separators; block tags delimit themselves.
func wrapParagraphs(text string, isLiteral func(string) bool) string {
	text = strings.TrimSpace(text)
	if text == "" {
		return ""
	}

	segments := segmentBreak.Split(text, -1)
	var b strings.Builder
	b.Grow(len(text) + 7*len(segments))

	for _, seg := range segments {
		if seg == "" {
			continue
		}
		if isBlockLevel(seg) || (isLiteral != nil && isLiteral(seg)) {
			b.WriteString(seg)
			continue
		}
		b.WriteString("<p>" + seg + "</p>")
	}
	return b.String()
}

// isBlockLevel reports whether seg already starts with a block-level element.
func isBlockLevel(seg string) bool {
	return blockTagPattern.MatchString(seg)
}
