package pipeline

import (
	"regexp"
	"strings"
)

var (
	// Heading line: h1. through h6.
	headingPattern = regexp.MustCompile(`^h([1-6])\.[ \t]?(.*)$`)

	// Blockquote line
	blockquotePattern = regexp.MustCompile(`^bq\.[ \t]?(.*)$`)
)

// listKind identifies the container of a list run.
type listKind int

const (
	noList listKind = iota
	orderedList
	unorderedList
)

func (k listKind) tag() string {
	if k == orderedList {
		return "ol"
	}
	return "ul"
}

// listItem reports whether line is a list item and returns its kind and text.
// A marker is '#' or '*' followed by a single space. A '*' line holding
// another '*' is a strong phrase, not an item.
func listItem(line string) (listKind, string, bool) {
	if len(line) < 2 || line[1] != ' ' {
		return noList, "", false
	}
	switch line[0] {
	case '#':
		return orderedList, line[2:], true
	case '*':
		if strings.Contains(line[2:], "*") {
			return noList, "", false
		}
		return unorderedList, line[2:], true
	}
	return noList, "", false
}

// blockWriter accumulates block segments during the line scan.
// Pending paragraph lines and the open list run are flushed as whole segments.
type blockWriter struct {
	segments []string
	para     []string
	list     listKind
	items    strings.Builder
}

func (w *blockWriter) block(s string) {
	w.flush()
	w.segments = append(w.segments, s)
}

func (w *blockWriter) line(s string) {
	w.closeList()
	w.para = append(w.para, s)
}

func (w *blockWriter) item(kind listKind, text string) {
	w.closePara()
	if w.list != kind {
		w.closeList()
		w.list = kind
		w.items.WriteString("<" + kind.tag() + ">")
	}
	w.items.WriteString("<li>" + text + "</li>")
}

func (w *blockWriter) closeList() {
	if w.list == noList {
		return
	}
	w.items.WriteString("</" + w.list.tag() + ">")
	w.segments = append(w.segments, w.items.String())
	w.items.Reset()
	w.list = noList
}

func (w *blockWriter) closePara() {
	if len(w.para) == 0 {
		return
	}
	w.segments = append(w.segments, strings.Join(w.para, "\n"))
	w.para = w.para[:0]
}

func (w *blockWriter) flush() {
	w.closePara()
	w.closeList()
}

// rewriteBlocks converts headings, blockquotes and list runs in a single
// linear scan. Each block becomes its own blank-line separated segment;
// ordinary lines keep their grouping. isLiteral marks placeholder lines,
// which stand alone and are never reinterpreted.
func rewriteBlocks(text string, isLiteral func(string) bool) string {
	w := &blockWriter{}

	for _, line := range strings.Split(text, "\n") {
		if isLiteral != nil && isLiteral(strings.TrimSpace(line)) {
			w.block(strings.TrimSpace(line))
			continue
		}

		if m := headingPattern.FindStringSubmatch(line); m != nil {
			w.block("<h" + m[1] + ">" + m[2] + "</h" + m[1] + ">")
			continue
		}

		if m := blockquotePattern.FindStringSubmatch(line); m != nil {
			w.block("<blockquote><p>" + m[1] + "</p></blockquote>")
			continue
		}

		if kind, text, ok := listItem(line); ok {
			w.item(kind, text)
			continue
		}

		if strings.TrimSpace(line) == "" {
			w.flush()
			continue
		}

		w.line(line)
	}
	w.flush()

	return strings.Join(w.segments, "\n\n")
}
