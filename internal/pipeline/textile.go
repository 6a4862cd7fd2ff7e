package pipeline

import (
	"context"
	"regexp"
)

// Line ending normalization
var crlfOrCR = regexp.MustCompile(`\r\n?`)

// TextileRenderer defines the contract for markup to HTML fragment rendering.
type TextileRenderer interface {
	RenderTextile(ctx context.Context, content string) (string, error)
}

// Textile renders the Textile dialect to an HTML fragment.
type Textile struct{}

// RenderTextile renders content, returning early if ctx is already done.
// The rendering itself never fails.
func (t *Textile) RenderTextile(ctx context.Context, content string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	return Render(content), nil
}

// Render converts a Textile document to an HTML fragment.
//
// Stages run in a fixed order: <pre> blocks are lifted out, block structure
// is rewritten, inline rules run, paragraphs are wrapped, and the <pre>
// blocks are put back verbatim. Every call owns its own state.
func Render(content string) string {
	text := normalizeLineEndings(content)

	text, literals := extractLiterals(text)

	for _, pass := range documentPasses(literals) {
		text = pass(text)
	}

	return literals.restore(text)
}

// documentPasses lists the stages that run between extraction and
// restoration. The literal table tells block and paragraph stages which
// segments are placeholders.
func documentPasses(literals *literalTable) []Pass {
	return []Pass{
		func(s string) string { return rewriteBlocks(s, literals.isToken) },
		rewriteInline,
		func(s string) string { return wrapParagraphs(s, literals.isToken) },
	}
}

// normalizeLineEndings converts \r\n and \r to \n.
func normalizeLineEndings(content string) string {
	return crlfOrCR.ReplaceAllString(content, "\n")
}
