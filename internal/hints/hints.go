// Package hints provides actionable error hints for common failure scenarios.
// Hints are formatted consistently as "\n  hint: <text>" for appending to error messages.
package hints

import (
	"path/filepath"
	"strings"
)

// configDirName is the per-user config directory searched by the CLI.
const configDirName = "go-textdown"

// ForConfigNotFound suggests --config, or creating the user config file
// when one of the searched paths lives in the user config directory.
func ForConfigNotFound(searchedPaths []string) string {
	hint := "use --config /path/to/file.yaml"

	for _, p := range searchedPaths {
		if strings.Contains(filepath.ToSlash(p), "/"+configDirName+"/") {
			hint += " or create " + p
			break
		}
	}
	return format(hint)
}

// ForOutputDirectory returns hints for output directory creation errors.
func ForOutputDirectory() string {
	return format("check parent directory exists and is writable")
}

// ForStyleNotFound lists the available built-in styles.
func ForStyleNotFound(available []string) string {
	if len(available) == 0 {
		return ""
	}
	return format("available: " + strings.Join(available, ", "))
}

// ForUnknownTheme points at a known-good highlight theme.
func ForUnknownTheme(fallback string) string {
	return formatHints([]string{
		"theme names are chroma style names",
		"try --theme " + fallback,
	})
}

// ForNoSources explains which files directory conversion picks up.
func ForNoSources(extensions []string) string {
	return format("directories are scanned for " + strings.Join(extensions, ", ") + " files")
}

func format(hint string) string {
	if hint == "" {
		return ""
	}
	return "\n  hint: " + hint
}

func formatHints(hints []string) string {
	if len(hints) == 0 {
		return ""
	}
	return format(strings.Join(hints, "; "))
}
