package main

import (
	"io"

	flag "github.com/spf13/pflag"
)

// commonFlags holds flags shared across commands.
type commonFlags struct {
	config  string
	quiet   bool
	verbose bool
}

// documentFlags holds standalone document flags.
type documentFlags struct {
	standalone bool
	title      string
	lang       string
}

// styleFlags holds stylesheet flags.
type styleFlags struct {
	style     string // Name, .css path, or inline CSS for the base style
	css       string // Extra CSS file appended after the base style
	noStyle   bool
	assetPath string
}

// highlightFlags holds syntax highlighting flags.
type highlightFlags struct {
	enabled bool
	theme   string
}

// convertFlags holds all flags for the convert command.
type convertFlags struct {
	common    commonFlags
	output    string
	ext       string
	workers   int
	document  documentFlags
	style     styleFlags
	highlight highlightFlags
}

// addCommonFlags adds common flags to a FlagSet.
func addCommonFlags(fs *flag.FlagSet, f *commonFlags) {
	fs.StringVarP(&f.config, "config", "c", "", "config file name or path")
	fs.BoolVarP(&f.quiet, "quiet", "q", false, "only show errors")
	fs.BoolVarP(&f.verbose, "verbose", "v", false, "show timing and debug logs")
}

// addDocumentFlags adds standalone document flags to a FlagSet.
func addDocumentFlags(fs *flag.FlagSet, f *documentFlags) {
	fs.BoolVarP(&f.standalone, "standalone", "s", false, "wrap output in a full HTML document")
	fs.StringVar(&f.title, "title", "", "document title (\"\" = first h1)")
	fs.StringVar(&f.lang, "lang", "", "document language tag (default en)")
}

// addStyleFlags adds stylesheet flags to a FlagSet.
func addStyleFlags(fs *flag.FlagSet, f *styleFlags) {
	fs.StringVar(&f.style, "style", "", "style name, .css path, or inline CSS")
	fs.StringVar(&f.css, "css", "", "extra CSS file appended after the style")
	fs.BoolVar(&f.noStyle, "no-style", false, "disable the base style")
	fs.StringVar(&f.assetPath, "asset-path", "", "directory of custom styles")
}

// addHighlightFlags adds highlighting flags to a FlagSet.
func addHighlightFlags(fs *flag.FlagSet, f *highlightFlags) {
	fs.BoolVar(&f.enabled, "highlight", false, "highlight tagged code blocks")
	fs.StringVar(&f.theme, "theme", "", "highlight theme (implies --highlight)")
}

// parseConvertFlags parses flags for the convert command.
// Returns the parsed flags, the positional arguments, and any error.
func parseConvertFlags(args []string, usageOut io.Writer) (*convertFlags, []string, error) {
	f := &convertFlags{}
	fs := flag.NewFlagSet("convert", flag.ContinueOnError)
	fs.SetOutput(usageOut)
	fs.Usage = func() { printConvertUsage(usageOut) }

	addCommonFlags(fs, &f.common)
	fs.StringVarP(&f.output, "output", "o", "", "output file or directory (\"-\" = stdout)")
	fs.StringVar(&f.ext, "ext", "", "output file extension (default html)")
	fs.IntVarP(&f.workers, "workers", "w", 0, "parallel workers (0 = auto)")
	addDocumentFlags(fs, &f.document)
	addStyleFlags(fs, &f.style)
	addHighlightFlags(fs, &f.highlight)

	if err := fs.Parse(args); err != nil {
		return nil, nil, err
	}
	return f, fs.Args(), nil
}
