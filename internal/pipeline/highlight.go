package pipeline

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/alecthomas/chroma/v2"
	chromahtml "github.com/alecthomas/chroma/v2/formatters/html"
	"github.com/alecthomas/chroma/v2/lexers"
	"github.com/alecthomas/chroma/v2/styles"
	"golang.org/x/net/html"
)

// DefaultTheme is the chroma style used when none is configured.
const DefaultTheme = "github"

// ErrUnknownTheme indicates the requested chroma style does not exist.
var ErrUnknownTheme = errors.New("unknown highlight theme")

// A literal code block tagged with a language: class="language-go" or class="go".
var codeBlockPattern = regexp.MustCompile(`(?s)<pre><code class="(?:language-)?([\w+#.-]+)">(.*?)</code></pre>`)

// Highlighter defines the contract for syntax highlighting of literal blocks.
type Highlighter interface {
	Highlight(ctx context.Context, htmlContent string) (string, error)
	CSS() (string, error)
}

// ChromaHighlighter re-renders tagged <pre><code> blocks with chroma classes.
type ChromaHighlighter struct {
	style     *chroma.Style
	formatter *chromahtml.Formatter
}

// NewChromaHighlighter creates a highlighter for the named chroma style.
// An empty theme selects DefaultTheme.
func NewChromaHighlighter(theme string) (*ChromaHighlighter, error) {
	if theme == "" {
		theme = DefaultTheme
	}
	style, ok := styles.Registry[strings.ToLower(theme)]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownTheme, theme)
	}

	formatter := chromahtml.New(
		chromahtml.WithClasses(true),           // CSS classes so the stylesheet is emitted once
		chromahtml.PreventSurroundingPre(true), // the <pre><code> wrapper is kept from the source
	)
	return &ChromaHighlighter{style: style, formatter: formatter}, nil
}

// Highlight rewrites every tagged code block whose language chroma knows.
// Blocks in unknown languages are left byte-identical.
func (h *ChromaHighlighter) Highlight(ctx context.Context, htmlContent string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	var firstErr error
	out := codeBlockPattern.ReplaceAllStringFunc(htmlContent, func(block string) string {
		if firstErr != nil {
			return block
		}
		m := codeBlockPattern.FindStringSubmatch(block)
		lexer := lexers.Get(m[1])
		if lexer == nil {
			return block
		}

		highlighted, err := h.format(lexer, html.UnescapeString(m[2]))
		if err != nil {
			firstErr = err
			return block
		}
		return `<pre class="chroma"><code class="language-` + m[1] + `">` + highlighted + `</code></pre>`
	})
	if firstErr != nil {
		return "", fmt.Errorf("highlighting code block: %w", firstErr)
	}
	return out, nil
}

func (h *ChromaHighlighter) format(lexer chroma.Lexer, code string) (string, error) {
	iterator, err := chroma.Coalesce(lexer).Tokenise(nil, code)
	if err != nil {
		return "", err
	}
	var sb strings.Builder
	if err := h.formatter.Format(&sb, h.style, iterator); err != nil {
		return "", err
	}
	return sb.String(), nil
}

// CSS returns the stylesheet matching the classes emitted by Highlight.
func (h *ChromaHighlighter) CSS() (string, error) {
	var sb strings.Builder
	if err := h.formatter.WriteCSS(&sb, h.style); err != nil {
		return "", fmt.Errorf("writing highlight CSS: %w", err)
	}
	return sb.String(), nil
}
