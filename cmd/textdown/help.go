package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/alnah/go-textdown"
)

// printUsage prints the main usage message.
func printUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: textdown <command> [flags] [args]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Commands:")
	fmt.Fprintln(w, "  convert    Convert textile files to HTML (default)")
	fmt.Fprintln(w, "  serve      Preview textile files over HTTP")
	fmt.Fprintln(w, "  version    Show version information")
	fmt.Fprintln(w, "  help       Show help for a command")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Run 'textdown help <command>' for details on a specific command.")
}

// printConvertUsage prints usage for the convert command.
func printConvertUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: textdown convert <input> [flags]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Convert textile markup to HTML.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Arguments:")
	fmt.Fprintln(w, "  input    File, directory, or \"-\" for stdin (optional if config has input.defaultDir)")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Input/Output:")
	fmt.Fprintln(w, "  -o, --output <path>       Output file or directory (\"-\" = stdout)")
	fmt.Fprintln(w, "      --ext <s>             Output file extension (default html)")
	fmt.Fprintln(w, "  -c, --config <name>       Config file name or path")
	fmt.Fprintln(w, "  -w, --workers <n>         Parallel workers (0 = auto)")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Document:")
	fmt.Fprintln(w, "  -s, --standalone          Wrap output in a full HTML document")
	fmt.Fprintln(w, "      --title <s>           Document title (\"\" = first h1)")
	fmt.Fprintln(w, "      --lang <s>            Language tag (default en)")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Styling:")
	fmt.Fprintf(w, "      --style <s>           Style name, .css path, or inline CSS (built-in: %s)\n",
		strings.Join(textdown.StyleNames(), ", "))
	fmt.Fprintln(w, "      --css <path>          Extra CSS file appended after the style")
	fmt.Fprintln(w, "      --no-style            Disable the base style")
	fmt.Fprintln(w, "      --asset-path <dir>    Directory of custom styles")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Highlighting:")
	fmt.Fprintln(w, "      --highlight           Highlight <pre><code class=\"language-x\"> blocks")
	fmt.Fprintf(w, "      --theme <s>           Chroma theme (default %s)\n", textdown.DefaultTheme)
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Output:")
	fmt.Fprintln(w, "  -q, --quiet               Only show errors")
	fmt.Fprintln(w, "  -v, --verbose             Show timing and debug logs")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Environment:")
	fmt.Fprintln(w, "  TEXTDOWN_CONFIG, TEXTDOWN_STYLE, TEXTDOWN_INPUT_DIR,")
	fmt.Fprintln(w, "  TEXTDOWN_OUTPUT_DIR, TEXTDOWN_WORKERS")
	fmt.Fprintln(w, "  Precedence: flags > environment > config file > defaults")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Examples:")
	fmt.Fprintln(w, "  textdown notes.textile")
	fmt.Fprintln(w, "  textdown convert docs/ -o site/ --standalone --highlight")
	fmt.Fprintln(w, "  cat notes.textile | textdown - > notes.html")
}

// printServeUsage prints usage for the serve command.
func printServeUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: textdown serve [dir] [flags]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Serve textile files below dir as HTML pages, rendered on each request.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Arguments:")
	fmt.Fprintln(w, "  dir      Directory to serve (default input.defaultDir, then \".\")")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Endpoints:")
	fmt.Fprintln(w, "  GET  /              Index of source files")
	fmt.Fprintln(w, "  GET  /<path>        Rendered page for a source file")
	fmt.Fprintln(w, "  POST /render        Convert the request body (?standalone=true&title=)")
	fmt.Fprintln(w, "  GET  /health        Liveness check")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Flags:")
	fmt.Fprintf(w, "  -a, --addr <host:port>    Listen address (default %s)\n", DefaultAddr)
	fmt.Fprintln(w, "  -c, --config <name>       Config file name or path")
	fmt.Fprintln(w, "      --lang <s>            Language tag (default en)")
	fmt.Fprintln(w, "      --style <s>           Style name, .css path, or inline CSS")
	fmt.Fprintln(w, "      --css <path>          Extra CSS file appended after the style")
	fmt.Fprintln(w, "      --no-style            Disable the base style")
	fmt.Fprintln(w, "      --asset-path <dir>    Directory of custom styles")
	fmt.Fprintln(w, "      --highlight           Highlight tagged code blocks")
	fmt.Fprintln(w, "      --theme <s>           Chroma theme")
	fmt.Fprintln(w, "  -q, --quiet               Only show errors")
	fmt.Fprintln(w, "  -v, --verbose             Log every request")
}

// runHelp prints help for the named command.
func runHelp(args []string, env *Environment) error {
	if len(args) == 0 {
		printUsage(env.Stdout)
		return nil
	}

	switch args[0] {
	case "convert":
		printConvertUsage(env.Stdout)
	case "serve":
		printServeUsage(env.Stdout)
	case "version":
		fmt.Fprintln(env.Stdout, "Usage: textdown version")
		fmt.Fprintln(env.Stdout)
		fmt.Fprintln(env.Stdout, "Show version information.")
	case "help":
		printUsage(env.Stdout)
	default:
		printUsage(env.Stderr)
		return fmt.Errorf("%w: unknown command %q", ErrUsage, args[0])
	}
	return nil
}
