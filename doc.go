// Package textdown converts Textile-style markup to HTML.
//
// # Quick Start
//
// Render a fragment directly:
//
//	html := textdown.Render("h1. Hello\n\nSome *bold* text.")
//	// <h1>Hello</h1><p>Some <strong>bold</strong> text.</p>
//
// Render never fails and never panics. Unknown or unbalanced markup is
// emitted as text.
//
// # Conversion Pipeline
//
// Render runs a fixed sequence of text rewrites:
//
//  1. <pre> blocks are lifted out behind collision-free placeholders
//  2. block rules: headings (h1. to h6.), blockquotes (bq.), # and * list runs
//  3. inline rules: links, images, typographic punctuation, phrase modifiers
//  4. paragraph wrapping of every remaining text segment
//  5. <pre> blocks are restored verbatim
//
// # Standalone Documents
//
// Converter wraps fragments in a full HTML5 page with an embedded style
// and optional syntax highlighting of literal code blocks:
//
//	conv, err := textdown.NewConverter(
//	    textdown.WithStyle("minimal"),
//	    textdown.WithHighlighting("monokai"),
//	    textdown.WithLang("fr"),
//	)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	result, err := conv.Convert(ctx, textdown.Input{
//	    Textile:    content,
//	    Standalone: true,
//	    CSS:        "body { font-size: 14px; }",
//	})
//
// A Converter holds no per-call state and may be shared between goroutines.
//
// # Custom Assets
//
// WithAssetPath points at a directory whose styles/{name}.css files take
// precedence over the built-in styles. WithStyle also accepts a path to a
// .css file or inline CSS.
package textdown
