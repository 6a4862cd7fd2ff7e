// Package config loads and validates YAML configuration for the CLI.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/alnah/go-textdown/internal/fileutil"
)

// Sentinel errors for config operations.
var (
	ErrConfigNotFound  = errors.New("config file not found")
	ErrEmptyConfigName = errors.New("config name cannot be empty")
	ErrConfigParse     = errors.New("failed to parse config")
	ErrFieldTooLong    = errors.New("field exceeds maximum length")
	ErrInvalidField    = errors.New("invalid config value")
)

// Field length limits.
const (
	MaxPathLength      = 4096
	MaxTitleLength     = 200
	MaxLangLength      = 35 // BCP 47 tags in practice
	MaxStyleLength     = 4096
	MaxThemeLength     = 64
	MaxExtensionLength = 16
)

// DefaultExtension is the output file extension when none is configured.
const DefaultExtension = "html"

// configDirName is the directory searched under the user config dir.
const configDirName = "go-textdown"

// Config holds all configuration for a conversion run.
type Config struct {
	Input     InputConfig     `yaml:"input"`
	Output    OutputConfig    `yaml:"output"`
	Document  DocumentConfig  `yaml:"document"`
	CSS       CSSConfig       `yaml:"css"`
	Highlight HighlightConfig `yaml:"highlight"`
	Assets    AssetsConfig    `yaml:"assets"`
}

// InputConfig defines input source options.
type InputConfig struct {
	DefaultDir string `yaml:"defaultDir"` // Used when no input argument is given
}

// OutputConfig defines output destination options.
type OutputConfig struct {
	DefaultDir string `yaml:"defaultDir"` // Empty = next to the source
	Extension  string `yaml:"extension"`  // Without dot, default "html"
}

// DocumentConfig controls standalone page generation.
type DocumentConfig struct {
	Standalone bool   `yaml:"standalone"`
	Title      string `yaml:"title"` // Empty = first h1
	Lang       string `yaml:"lang"`  // Empty = "en"
}

// CSSConfig defines styling options.
type CSSConfig struct {
	Style string `yaml:"style"` // Style name, .css path, or inline CSS
}

// HighlightConfig controls syntax highlighting of literal blocks.
type HighlightConfig struct {
	Enabled bool   `yaml:"enabled"`
	Theme   string `yaml:"theme"`
}

// AssetsConfig defines asset loading options.
type AssetsConfig struct {
	BasePath string `yaml:"basePath"` // Empty = embedded styles only
}

// Validate checks field lengths and values. LoadConfig calls it; callers
// building a Config by hand can call it directly.
func (c *Config) Validate() error {
	fields := []struct {
		name  string
		value string
		max   int
	}{
		{"input.defaultDir", c.Input.DefaultDir, MaxPathLength},
		{"output.defaultDir", c.Output.DefaultDir, MaxPathLength},
		{"output.extension", c.Output.Extension, MaxExtensionLength},
		{"document.title", c.Document.Title, MaxTitleLength},
		{"document.lang", c.Document.Lang, MaxLangLength},
		{"css.style", c.CSS.Style, MaxStyleLength},
		{"highlight.theme", c.Highlight.Theme, MaxThemeLength},
		{"assets.basePath", c.Assets.BasePath, MaxPathLength},
	}
	for _, f := range fields {
		if err := validateFieldLength(f.name, f.value, f.max); err != nil {
			return err
		}
	}

	if c.Output.Extension != "" {
		ext := strings.TrimPrefix(c.Output.Extension, ".")
		if err := fileutil.ValidateExtension(ext); err != nil {
			return fmt.Errorf("%w: output.extension: %v", ErrInvalidField, err)
		}
	}
	if strings.ContainsAny(c.Document.Lang, " \t\"<>") {
		return fmt.Errorf("%w: document.lang %q", ErrInvalidField, c.Document.Lang)
	}
	return nil
}

// OutputExtension returns the configured extension without a leading dot.
func (c *Config) OutputExtension() string {
	if ext := strings.TrimPrefix(c.Output.Extension, "."); ext != "" {
		return ext
	}
	return DefaultExtension
}

func validateFieldLength(fieldName, value string, maxLength int) error {
	if len(value) > maxLength {
		return fmt.Errorf("%w: %s (%d chars, max %d)", ErrFieldTooLong, fieldName, len(value), maxLength)
	}
	return nil
}

// DefaultConfig returns the configuration used when no file is given.
func DefaultConfig() *Config {
	return &Config{
		Output: OutputConfig{Extension: DefaultExtension},
	}
}

// LoadConfig loads configuration from a file path or config name.
// A value containing a path separator is read as a path; anything else
// is searched by name in SearchPaths. A missing file is an error.
func LoadConfig(nameOrPath string) (*Config, error) {
	if nameOrPath == "" {
		return nil, ErrEmptyConfigName
	}

	configPath := nameOrPath
	if !isFilePath(nameOrPath) {
		var err error
		configPath, err = resolveConfigPath(nameOrPath)
		if err != nil {
			return nil, err
		}
	}

	data, err := os.ReadFile(configPath) // #nosec G304 -- config path is user-provided
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrConfigNotFound, configPath)
		}
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	cfg := DefaultConfig()
	if err := decodeStrict(data, cfg); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrConfigParse, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func isFilePath(s string) bool {
	return strings.ContainsAny(s, "/\\")
}

// SearchPaths lists where a config name is looked up, in order:
// the current directory, then the user config directory.
func SearchPaths(name string) []string {
	extensions := []string{".yaml", ".yml"}
	paths := make([]string, 0, 2*len(extensions))

	for _, ext := range extensions {
		paths = append(paths, name+ext)
	}
	if userConfigDir, err := os.UserConfigDir(); err == nil {
		for _, ext := range extensions {
			paths = append(paths, filepath.Join(userConfigDir, configDirName, name+ext))
		}
	}
	return paths
}

func resolveConfigPath(name string) (string, error) {
	paths := SearchPaths(name)
	for _, p := range paths {
		if fileutil.FileExists(p) {
			return p, nil
		}
	}
	return "", fmt.Errorf("%w: tried %s", ErrConfigNotFound, strings.Join(paths, ", "))
}
