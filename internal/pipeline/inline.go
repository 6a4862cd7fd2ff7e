package pipeline

import (
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"

	"golang.org/x/net/html"
)

// Precompiled inline patterns.
var (
	// An HTML tag or comment; inline rules only rewrite the text between them.
	tagPattern = regexp.MustCompile(`<[A-Za-z/!?][^>]*>`)
	leadingTag = regexp.MustCompile(`^<[A-Za-z/!?][^>]*>`)

	// "label":url, the url never ends with sentence punctuation
	linkPattern = regexp.MustCompile(`"([^"]+)":((?:https?|ftp)://[\w-]+(?:\.[\w-]+)+(?:[\w.,@?^=%&:/~+#-]*[\w@?^=%&/~+#-])?)`)

	// !src! or !src(alt)!
	imagePattern = regexp.MustCompile(`!([^!\s(]+)(?:\(([^)]*)\))?!`)

	quotePattern       = regexp.MustCompile(`(\s)"([^"]+)"`)
	doubleHyphen       = regexp.MustCompile(`[ \t]*--[ \t]*`)
	singleHyphen       = regexp.MustCompile(`(\s)-(\s)`)
	tripleDots         = regexp.MustCompile(`\.{3}`)
	dimensionSign      = regexp.MustCompile(` x `)
	symbolPattern      = regexp.MustCompile(`\((TM|R|C)\)`)
	symbolReplacements = map[string]string{
		"(TM)": "&#8482;",
		"(R)":  "&#174;",
		"(C)":  "&#169;",
	}
)

// Pass rewrites a whole document and returns the result.
type Pass func(string) string

// outsideTags applies fn to each run of text between HTML tags, leaving the
// tags themselves byte-identical.
func outsideTags(fn Pass) Pass {
	return func(s string) string {
		locs := tagPattern.FindAllStringIndex(s, -1)
		if len(locs) == 0 {
			return fn(s)
		}

		var b strings.Builder
		b.Grow(len(s))
		last := 0
		for _, loc := range locs {
			b.WriteString(fn(s[last:loc[0]]))
			b.WriteString(s[loc[0]:loc[1]])
			last = loc[1]
		}
		b.WriteString(fn(s[last:]))
		return b.String()
	}
}

// convertLinks turns "label":url into anchors.
func convertLinks(s string) string {
	return linkPattern.ReplaceAllStringFunc(s, func(m string) string {
		sub := linkPattern.FindStringSubmatch(m)
		return `<a href="` + html.EscapeString(sub[2]) + `">` + sub[1] + `</a>`
	})
}

// convertImages turns !src! and !src(alt)! into img elements.
func convertImages(s string) string {
	return imagePattern.ReplaceAllStringFunc(s, func(m string) string {
		sub := imagePattern.FindStringSubmatch(m)
		return `<img src="` + html.EscapeString(sub[1]) + `" alt="` + html.EscapeString(sub[2]) + `" />`
	})
}

// convertQuotes turns a space-led "run" into curly quote entities.
func convertQuotes(s string) string {
	return quotePattern.ReplaceAllString(s, "$1&#8220;$2&#8221;")
}

// convertDoubleHyphens turns -- and its surrounding spaces into an em dash.
func convertDoubleHyphens(s string) string {
	return doubleHyphen.ReplaceAllString(s, "&#8212;")
}

// convertSingleHyphens turns a spaced hyphen into an en dash, keeping the spaces.
func convertSingleHyphens(s string) string {
	return singleHyphen.ReplaceAllString(s, "$1&#8211;$2")
}

// convertTripleDots turns ... into an ellipsis.
func convertTripleDots(s string) string {
	return tripleDots.ReplaceAllString(s, "&#8230;")
}

// convertDimensions turns " x " into a multiplication sign.
func convertDimensions(s string) string {
	return dimensionSign.ReplaceAllString(s, "&#215;")
}

// convertSymbols turns (TM), (R) and (C) into their entities.
func convertSymbols(s string) string {
	return symbolPattern.ReplaceAllStringFunc(s, func(m string) string {
		return symbolReplacements[m]
	})
}

// phrase is a quick phrase modifier: text between two delimiters wrapped in tag.
// Bounded modifiers only open after, and close before, a non-word character,
// so hyphenated words, snake_case names and email addresses stay literal.
// A lineStart modifier may also open at the start of a line before a space,
// which is how "* Foo Bar*" reads once it is not a list item.
type phrase struct {
	delim     string
	tag       string
	bounded   bool
	lineStart bool
}

var (
	strongPhrase      = phrase{delim: "*", tag: "strong", bounded: true, lineStart: true}
	emphasisPhrase    = phrase{delim: "_", tag: "em", bounded: true}
	citationPhrase    = phrase{delim: "??", tag: "cite"}
	codePhrase        = phrase{delim: "@", tag: "code", bounded: true}
	strikePhrase      = phrase{delim: "-", tag: "del", bounded: true}
	insertPhrase      = phrase{delim: "+", tag: "ins", bounded: true}
	superscriptPhrase = phrase{delim: "^", tag: "sup"}
	subscriptPhrase   = phrase{delim: "~", tag: "sub"}
)

// apply rewrites every matching span left to right. Tags are copied through
// untouched, but a span may enclose them.
func (p phrase) apply(s string) string {
	if !strings.Contains(s, p.delim) {
		return s
	}

	var b strings.Builder
	b.Grow(len(s))
	for i := 0; i < len(s); {
		if end := tagEnd(s, i); end > 0 {
			b.WriteString(s[i:end])
			i = end
			continue
		}
		if strings.HasPrefix(s[i:], p.delim) && p.opensAt(s, i) {
			start := i + len(p.delim)
			if j := p.closeFrom(s, start); j >= 0 {
				b.WriteString("<" + p.tag + ">" + s[start:j] + "</" + p.tag + ">")
				i = j + len(p.delim)
				continue
			}
		}
		b.WriteByte(s[i])
		i++
	}
	return b.String()
}

// opensAt reports whether the delimiter at i can open a span.
func (p phrase) opensAt(s string, i int) bool {
	next := i + len(p.delim)
	if next >= len(s) || s[next] == '\n' || s[next] == p.delim[0] {
		return false
	}
	if isSpace(s[next]) && !(p.lineStart && (i == 0 || s[i-1] == '\n')) {
		return false
	}
	if p.bounded && i > 0 {
		r, _ := utf8.DecodeLastRuneInString(s[:i])
		if isWordRune(r) {
			return false
		}
	}
	return true
}

// closeFrom returns the index of the delimiter closing a span whose content
// starts at start, or -1 when the span is broken by a newline or a stray
// delimiter character.
func (p phrase) closeFrom(s string, start int) int {
	for k := start; k < len(s); {
		if end := tagEnd(s, k); end > 0 {
			k = end
			continue
		}
		switch c := s[k]; {
		case c == '\n':
			return -1
		case c == p.delim[0]:
			if !strings.HasPrefix(s[k:], p.delim) || isSpace(s[k-1]) {
				return -1
			}
			after := k + len(p.delim)
			if p.bounded && after < len(s) {
				r, _ := utf8.DecodeRuneInString(s[after:])
				if isWordRune(r) {
					return -1
				}
			}
			return k
		}
		k++
	}
	return -1
}

// tagEnd returns the index just past an HTML tag starting at i, or 0.
func tagEnd(s string, i int) int {
	if s[i] != '<' {
		return 0
	}
	if loc := leadingTag.FindStringIndex(s[i:]); loc != nil {
		return i + loc[1]
	}
	return 0
}

func isSpace(c byte) bool {
	return c == ' ' || c == '\t' || c == '\n' || c == '\r'
}

func isWordRune(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsDigit(r)
}

// inlinePasses is the fixed order of inline rules. Links and images come
// before quotes so their own quote marks are consumed first; double hyphens
// come before single hyphens and strikethrough so "--" is never split.
var inlinePasses = []Pass{
	outsideTags(convertLinks),
	outsideTags(convertImages),
	outsideTags(convertQuotes),
	outsideTags(convertDoubleHyphens),
	outsideTags(convertSingleHyphens),
	outsideTags(convertTripleDots),
	outsideTags(convertDimensions),
	outsideTags(convertSymbols),
	strongPhrase.apply,
	emphasisPhrase.apply,
	citationPhrase.apply,
	codePhrase.apply,
	strikePhrase.apply,
	insertPhrase.apply,
	superscriptPhrase.apply,
	subscriptPhrase.apply,
}

// rewriteInline runs every inline rule in order.
func rewriteInline(s string) string {
	for _, pass := range inlinePasses {
		s = pass(s)
	}
	return s
}
