package textdown

import (
	"fmt"
	"regexp"

	"github.com/alnah/go-textdown/internal/pipeline"
)

// DefaultLang is the document language when none is configured.
const DefaultLang = "en"

// DefaultTheme is the highlighting theme used by WithHighlighting("").
const DefaultTheme = pipeline.DefaultTheme

// BCP 47 shaped: a primary subtag followed by optional subtags.
var langPattern = regexp.MustCompile(`^[A-Za-z]{2,8}(-[A-Za-z0-9]{1,8})*$`)

// Input contains conversion parameters.
type Input struct {
	Textile    string // Markup to convert
	Title      string // Page title in standalone mode (empty = first h1)
	CSS        string // Extra CSS appended after the converter style (standalone only)
	Standalone bool   // Wrap the fragment in a full HTML5 document
}

// ConvertResult holds the output of a conversion.
type ConvertResult struct {
	HTML  []byte
	Title string // Resolved page title; empty in fragment mode
}

// Option configures a Converter.
type Option func(*Converter)

// converterConfig holds the options applied by NewConverter.
type converterConfig struct {
	styleInput    string // name, path, or CSS from WithStyle
	resolvedStyle string
	assetPath     string
	highlight     bool
	theme         string
	lang          string
}

// WithStyle sets the standalone stylesheet: a built-in or custom style
// name, a path to a .css file, or inline CSS.
func WithStyle(nameOrPathOrCSS string) Option {
	return func(c *Converter) {
		c.cfg.styleInput = nameOrPathOrCSS
	}
}

// WithAssetPath sets a directory of custom styles looked up before the
// built-in ones.
func WithAssetPath(dir string) Option {
	return func(c *Converter) {
		c.cfg.assetPath = dir
	}
}

// WithHighlighting enables syntax highlighting of tagged literal blocks
// with the named chroma theme. An empty theme selects the default.
func WithHighlighting(theme string) Option {
	return func(c *Converter) {
		c.cfg.highlight = true
		c.cfg.theme = theme
	}
}

// WithLang sets the lang attribute of standalone documents.
func WithLang(code string) Option {
	return func(c *Converter) {
		c.cfg.lang = code
	}
}

// ValidateLang checks that code looks like a BCP 47 language tag.
func ValidateLang(code string) error {
	if !langPattern.MatchString(code) {
		return fmt.Errorf("%w: %q", ErrInvalidLang, code)
	}
	return nil
}
