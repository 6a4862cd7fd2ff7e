package pipeline

import (
	"regexp"
	"strconv"
	"strings"
)

// preBlockPattern matches literal <pre> regions, which no rewrite pass may touch.
var preBlockPattern = regexp.MustCompile(`(?s)<pre[^>]*>.+?</pre>`)

// Sentinel candidates come from the Private Use Area. Renderers never emit
// these runes, so a rune absent from the input can only appear inside tokens.
var sentinelRanges = [][2]rune{
	{0xE000, 0xF8FF},
	{0xF0000, 0xFFFFD},
}

// literalTable records the <pre> blocks lifted out of a document, in
// discovery order. Token i stands for blocks[i].
type literalTable struct {
	sentinel rune
	blocks   []string
}

// extractLiterals replaces every <pre> block with an indexed placeholder
// token and returns the rewritten text with the table needed to restore it.
// Text without <pre> blocks is returned unchanged.
func extractLiterals(text string) (string, *literalTable) {
	table := &literalTable{}
	if !preBlockPattern.MatchString(text) {
		return text, table
	}

	sentinel, ok := freeSentinel(text)
	if !ok {
		return text, table
	}
	table.sentinel = sentinel

	text = preBlockPattern.ReplaceAllStringFunc(text, func(block string) string {
		table.blocks = append(table.blocks, block)
		return table.token(len(table.blocks) - 1)
	})
	return text, table
}

// freeSentinel returns the first candidate rune that does not occur in text.
func freeSentinel(text string) (rune, bool) {
	for _, r := range sentinelRanges {
		for c := r[0]; c <= r[1]; c++ {
			if !strings.ContainsRune(text, c) {
				return c, true
			}
		}
	}
	return 0, false
}

func (t *literalTable) token(i int) string {
	s := string(t.sentinel)
	return s + strconv.Itoa(i) + s
}

// len returns the number of captured blocks.
func (t *literalTable) len() int {
	return len(t.blocks)
}

// isToken reports whether s is exactly one placeholder token.
func (t *literalTable) isToken(s string) bool {
	return t.tokenIndex(s) >= 0
}

// tokenIndex returns the block index encoded by s, or -1.
func (t *literalTable) tokenIndex(s string) int {
	if t.len() == 0 {
		return -1
	}
	sen := string(t.sentinel)
	if len(s) <= 2*len(sen) || !strings.HasPrefix(s, sen) || !strings.HasSuffix(s, sen) {
		return -1
	}
	i, err := strconv.Atoi(s[len(sen) : len(s)-len(sen)])
	if err != nil || i < 0 || i >= t.len() {
		return -1
	}
	return i
}

// restore substitutes every placeholder token with its recorded block.
func (t *literalTable) restore(text string) string {
	if t.len() == 0 {
		return text
	}
	pairs := make([]string, 0, 2*t.len())
	for i, block := range t.blocks {
		pairs = append(pairs, t.token(i), block)
	}
	return strings.NewReplacer(pairs...).Replace(text)
}
