package pipeline

import (
	"context"
	"fmt"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// DefaultTitle is used when a document has neither an explicit title nor an <h1>.
const DefaultTitle = "Document"

// htmlTemplate wraps a rendered fragment in a complete HTML5 document.
const htmlTemplate = `<!DOCTYPE html>
<html lang="%s">
<head>
<meta charset="utf-8">
<title>%s</title>
</head>
<body>
%s
</body>
</html>`

// DocumentData describes the standalone page around a fragment.
type DocumentData struct {
	Title string // Empty = first <h1>, then DefaultTitle
	Lang  string
	CSS   string
}

// DocumentWrapper defines the contract for turning a fragment into a page.
type DocumentWrapper interface {
	WrapDocument(ctx context.Context, fragment string, data DocumentData) string
}

// StandaloneDocument builds an HTML5 page and injects CSS into its head.
type StandaloneDocument struct {
	css CSSInjection
}

// WrapDocument returns a full HTML5 document containing fragment.
func (d *StandaloneDocument) WrapDocument(ctx context.Context, fragment string, data DocumentData) string {
	title := data.Title
	if title == "" {
		title = ExtractTitle(fragment)
	}
	lang := data.Lang
	if lang == "" {
		lang = "en"
	}

	doc := fmt.Sprintf(htmlTemplate, html.EscapeString(lang), html.EscapeString(title), fragment)
	return d.css.InjectCSS(ctx, doc, data.CSS)
}

// ExtractTitle returns the text of the first <h1> in fragment, or DefaultTitle.
// Tags are stripped and entities decoded, so the result is plain text.
func ExtractTitle(fragment string) string {
	body := &html.Node{Type: html.ElementNode, Data: "body", DataAtom: atom.Body}
	nodes, err := html.ParseFragment(strings.NewReader(fragment), body)
	if err != nil {
		return DefaultTitle
	}

	for _, n := range nodes {
		if h := findHeading(n); h != nil {
			if title := textContent(h); title != "" {
				return title
			}
			return DefaultTitle
		}
	}
	return DefaultTitle
}

func findHeading(n *html.Node) *html.Node {
	if n.Type == html.ElementNode && n.DataAtom == atom.H1 {
		return n
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if h := findHeading(c); h != nil {
			return h
		}
	}
	return nil
}

func textContent(n *html.Node) string {
	var buf strings.Builder
	var extract func(*html.Node)
	extract = func(n *html.Node) {
		if n.Type == html.TextNode {
			buf.WriteString(n.Data)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			extract(c)
		}
	}
	extract(n)
	return strings.TrimSpace(buf.String())
}

// CSSInjection injects CSS as a <style> block into HTML content.
type CSSInjection struct{}

// InjectCSS inserts a <style> block into HTML content.
// Tries </head> first, then <body>, then prepends to the HTML.
func (s *CSSInjection) InjectCSS(ctx context.Context, htmlContent, cssContent string) string {
	if cssContent == "" || ctx.Err() != nil {
		return htmlContent
	}

	styleBlock := "<style>" + sanitizeCSS(cssContent) + "</style>"
	lowerHTML := strings.ToLower(htmlContent)

	if idx := strings.Index(lowerHTML, "</head>"); idx != -1 {
		return htmlContent[:idx] + styleBlock + "\n" + htmlContent[idx:]
	}

	if idx := strings.Index(lowerHTML, "<body"); idx != -1 {
		if closeIdx := strings.Index(htmlContent[idx:], ">"); closeIdx != -1 {
			insertPos := idx + closeIdx + 1
			return htmlContent[:insertPos] + styleBlock + htmlContent[insertPos:]
		}
	}

	return styleBlock + htmlContent
}

// sanitizeCSS escapes sequences that could close the <style> block early.
func sanitizeCSS(css string) string {
	return strings.ReplaceAll(css, "</", `<\/`)
}
