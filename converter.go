package textdown

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/alnah/go-textdown/internal/assets"
	"github.com/alnah/go-textdown/internal/fileutil"
	"github.com/alnah/go-textdown/internal/pipeline"
)

// Compile-time interface implementation checks.
var (
	_ pipeline.TextileRenderer = (*pipeline.Textile)(nil)
	_ pipeline.Highlighter     = (*pipeline.ChromaHighlighter)(nil)
	_ pipeline.DocumentWrapper = (*pipeline.StandaloneDocument)(nil)
)

// Converter runs the markup pipeline and, in standalone mode, wraps the
// result in a styled HTML5 document. Create with NewConverter.
type Converter struct {
	cfg          converterConfig
	assetLoader  assets.StyleLoader
	renderer     pipeline.TextileRenderer
	highlighter  pipeline.Highlighter // nil unless WithHighlighting
	highlightCSS string
	document     pipeline.DocumentWrapper
	noStyle      bool
}

// WithoutStyle disables the built-in stylesheet in standalone mode.
// Input.CSS and highlighting CSS are still injected.
func WithoutStyle() Option {
	return func(c *Converter) {
		c.noStyle = true
	}
}

// NewConverter creates a Converter. Styles and highlighting themes are
// resolved here, so a bad name fails once instead of on every Convert.
func NewConverter(opts ...Option) (*Converter, error) {
	c := &Converter{
		assetLoader: assets.NewEmbeddedLoader(),
		renderer:    &pipeline.Textile{},
		document:    &pipeline.StandaloneDocument{},
	}

	for _, opt := range opts {
		opt(c)
	}

	if c.cfg.lang != "" {
		if err := ValidateLang(c.cfg.lang); err != nil {
			return nil, err
		}
	}

	if c.cfg.assetPath != "" {
		resolver, err := assets.NewAssetResolver(c.cfg.assetPath)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidAssetPath, err)
		}
		c.assetLoader = resolver
	}

	if err := c.resolveStyle(); err != nil {
		return nil, err
	}

	if c.cfg.highlight && c.highlighter == nil {
		h, err := pipeline.NewChromaHighlighter(c.cfg.theme)
		if err != nil {
			if errors.Is(err, pipeline.ErrUnknownTheme) {
				return nil, fmt.Errorf("%w: %q", ErrUnknownTheme, c.cfg.theme)
			}
			return nil, err
		}
		c.highlighter = h
	}
	if c.highlighter != nil {
		css, err := c.highlighter.CSS()
		if err != nil {
			return nil, err
		}
		c.highlightCSS = css
	}

	return c, nil
}

// Convert renders input.Textile and, when input.Standalone is set, wraps
// it in a document. Internal panics are recovered into ErrHTMLConversion.
func (c *Converter) Convert(ctx context.Context, input Input) (result *ConvertResult, err error) {
	defer func() {
		if r := recover(); r != nil {
			result = nil
			err = fmt.Errorf("%w: internal error: %v", ErrHTMLConversion, r)
		}
	}()

	fragment, err := c.renderer.RenderTextile(ctx, input.Textile)
	if err != nil {
		return nil, fmt.Errorf("rendering markup: %w", err)
	}

	if c.highlighter != nil {
		fragment, err = c.highlighter.Highlight(ctx, fragment)
		if err != nil {
			if ctx.Err() != nil {
				return nil, ctx.Err()
			}
			return nil, fmt.Errorf("%w: %v", ErrHTMLConversion, err)
		}
	}

	if !input.Standalone {
		return &ConvertResult{HTML: []byte(fragment)}, nil
	}

	title := input.Title
	if title == "" {
		title = pipeline.ExtractTitle(fragment)
	}

	// Base style first so highlighting and caller CSS can override it.
	doc := c.document.WrapDocument(ctx, fragment, pipeline.DocumentData{
		Title: title,
		Lang:  c.cfg.lang,
		CSS:   joinCSS(c.cfg.resolvedStyle, c.highlightCSS, input.CSS),
	})
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	return &ConvertResult{HTML: []byte(doc), Title: title}, nil
}

// HighlightCSS returns the stylesheet for highlighted code blocks, or ""
// when highlighting is off. Fragment callers embed it themselves.
func (c *Converter) HighlightCSS() string {
	return c.highlightCSS
}

// resolveStyle turns the WithStyle input (name, path, or CSS) into CSS.
// Without WithStyle the built-in default style is used.
func (c *Converter) resolveStyle() error {
	if c.noStyle {
		return nil
	}

	input := c.cfg.styleInput
	if input == "" {
		input = DefaultStyle
	}

	if fileutil.IsCSS(input) {
		c.cfg.resolvedStyle = input
		return nil
	}

	if fileutil.IsFilePath(input) {
		content, err := os.ReadFile(input) // #nosec G304 -- user-provided path
		if err != nil {
			return fmt.Errorf("loading style file %q: %w", input, err)
		}
		c.cfg.resolvedStyle = string(content)
		return nil
	}

	css, err := c.assetLoader.LoadStyle(input)
	if err != nil {
		return fmt.Errorf("loading style %q: %w", input, convertAssetError(err))
	}
	c.cfg.resolvedStyle = css
	return nil
}

func joinCSS(parts ...string) string {
	nonEmpty := make([]string, 0, len(parts))
	for _, p := range parts {
		if strings.TrimSpace(p) != "" {
			nonEmpty = append(nonEmpty, p)
		}
	}
	return strings.Join(nonEmpty, "\n")
}
