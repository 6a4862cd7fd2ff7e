package config

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestDefaultConfig(t *testing.T) {
	t.Parallel()

	cfg := DefaultConfig()

	if cfg.Input.DefaultDir != "" {
		t.Errorf("Input.DefaultDir = %q, want empty", cfg.Input.DefaultDir)
	}
	if cfg.Output.Extension != DefaultExtension {
		t.Errorf("Output.Extension = %q, want %q", cfg.Output.Extension, DefaultExtension)
	}
	if cfg.Document.Standalone {
		t.Error("Document.Standalone = true, want false")
	}
	if cfg.Highlight.Enabled {
		t.Error("Highlight.Enabled = true, want false")
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("DefaultConfig().Validate() = %v", err)
	}
}

func TestValidateFieldLength(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		value   string
		max     int
		wantErr bool
	}{
		{"empty value", "", 10, false},
		{"at limit", "1234567890", 10, false},
		{"over limit", "12345678901", 10, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			err := validateFieldLength("test.field", tt.value, tt.max)
			if tt.wantErr {
				if !errors.Is(err, ErrFieldTooLong) {
					t.Errorf("error = %v, want ErrFieldTooLong", err)
				}
				if err != nil && !strings.Contains(err.Error(), "test.field") {
					t.Errorf("error %q should name the field", err)
				}
				return
			}
			if err != nil {
				t.Errorf("unexpected error: %v", err)
			}
		})
	}
}

func TestConfig_Validate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr error
	}{
		{"defaults", func(*Config) {}, nil},
		{"extension with dot", func(c *Config) { c.Output.Extension = ".htm" }, nil},
		{"extension with separator", func(c *Config) { c.Output.Extension = "a/b" }, ErrInvalidField},
		{"extension too long", func(c *Config) { c.Output.Extension = strings.Repeat("x", MaxExtensionLength+1) }, ErrFieldTooLong},
		{"title too long", func(c *Config) { c.Document.Title = strings.Repeat("t", MaxTitleLength+1) }, ErrFieldTooLong},
		{"lang with quote", func(c *Config) { c.Document.Lang = `en"x` }, ErrInvalidField},
		{"lang region", func(c *Config) { c.Document.Lang = "pt-BR" }, nil},
		{"theme too long", func(c *Config) { c.Highlight.Theme = strings.Repeat("m", MaxThemeLength+1) }, ErrFieldTooLong},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			cfg := DefaultConfig()
			tt.mutate(cfg)
			err := cfg.Validate()
			if tt.wantErr == nil {
				if err != nil {
					t.Errorf("Validate() = %v, want nil", err)
				}
				return
			}
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("Validate() = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestConfig_OutputExtension(t *testing.T) {
	t.Parallel()

	tests := []struct {
		ext  string
		want string
	}{
		{"", "html"},
		{"htm", "htm"},
		{".xhtml", "xhtml"},
	}

	for _, tt := range tests {
		cfg := &Config{Output: OutputConfig{Extension: tt.ext}}
		if got := cfg.OutputExtension(); got != tt.want {
			t.Errorf("OutputExtension(%q) = %q, want %q", tt.ext, got, tt.want)
		}
	}
}

func TestLoadConfig(t *testing.T) {
	t.Parallel()

	t.Run("empty name returns ErrEmptyConfigName", func(t *testing.T) {
		t.Parallel()

		_, err := LoadConfig("")
		if !errors.Is(err, ErrEmptyConfigName) {
			t.Errorf("error = %v, want ErrEmptyConfigName", err)
		}
	})

	t.Run("valid file path loads config", func(t *testing.T) {
		t.Parallel()

		configPath := writeConfig(t, t.TempDir(), "site.yaml", `input:
  defaultDir: "/src"
output:
  defaultDir: "/out"
  extension: "htm"
document:
  standalone: true
  title: "Handbook"
  lang: "fr"
css:
  style: "minimal"
highlight:
  enabled: true
  theme: "monokai"
assets:
  basePath: "/assets"
`)

		cfg, err := LoadConfig(configPath)
		if err != nil {
			t.Fatalf("LoadConfig() error = %v", err)
		}
		want := Config{
			Input:     InputConfig{DefaultDir: "/src"},
			Output:    OutputConfig{DefaultDir: "/out", Extension: "htm"},
			Document:  DocumentConfig{Standalone: true, Title: "Handbook", Lang: "fr"},
			CSS:       CSSConfig{Style: "minimal"},
			Highlight: HighlightConfig{Enabled: true, Theme: "monokai"},
			Assets:    AssetsConfig{BasePath: "/assets"},
		}
		if *cfg != want {
			t.Errorf("LoadConfig() = %+v, want %+v", *cfg, want)
		}
	})

	t.Run("omitted extension keeps default", func(t *testing.T) {
		t.Parallel()

		configPath := writeConfig(t, t.TempDir(), "partial.yaml", "document:\n  standalone: true\n")
		cfg, err := LoadConfig(configPath)
		if err != nil {
			t.Fatalf("LoadConfig() error = %v", err)
		}
		if cfg.Output.Extension != DefaultExtension {
			t.Errorf("Output.Extension = %q, want %q", cfg.Output.Extension, DefaultExtension)
		}
	})

	t.Run("nonexistent file path returns ErrConfigNotFound", func(t *testing.T) {
		t.Parallel()

		_, err := LoadConfig("/nonexistent/path/config.yaml")
		if !errors.Is(err, ErrConfigNotFound) {
			t.Errorf("error = %v, want ErrConfigNotFound", err)
		}
	})

	t.Run("invalid YAML returns ErrConfigParse", func(t *testing.T) {
		t.Parallel()

		configPath := writeConfig(t, t.TempDir(), "bad.yaml", "css: [unclosed")
		_, err := LoadConfig(configPath)
		if !errors.Is(err, ErrConfigParse) {
			t.Errorf("error = %v, want ErrConfigParse", err)
		}
	})

	t.Run("unknown field returns ErrConfigParse", func(t *testing.T) {
		t.Parallel()

		configPath := writeConfig(t, t.TempDir(), "unknown.yaml", "footer:\n  enabled: true\n")
		_, err := LoadConfig(configPath)
		if !errors.Is(err, ErrConfigParse) {
			t.Errorf("error = %v, want ErrConfigParse", err)
		}
	})

	t.Run("empty file returns ErrConfigParse", func(t *testing.T) {
		t.Parallel()

		configPath := writeConfig(t, t.TempDir(), "empty.yaml", "")
		_, err := LoadConfig(configPath)
		if !errors.Is(err, ErrConfigParse) {
			t.Errorf("error = %v, want ErrConfigParse", err)
		}
	})

	t.Run("validation failure is returned", func(t *testing.T) {
		t.Parallel()

		configPath := writeConfig(t, t.TempDir(), "invalid.yaml", "output:\n  extension: \"../x\"\n")
		_, err := LoadConfig(configPath)
		if !errors.Is(err, ErrInvalidField) {
			t.Errorf("error = %v, want ErrInvalidField", err)
		}
	})
}

func TestLoadConfig_ByName(t *testing.T) {
	dir := t.TempDir()
	writeConfig(t, dir, "team.yml", "css:\n  style: \"minimal\"\n")
	t.Chdir(dir)

	cfg, err := LoadConfig("team")
	if err != nil {
		t.Fatalf("LoadConfig() error = %v", err)
	}
	if cfg.CSS.Style != "minimal" {
		t.Errorf("CSS.Style = %q, want %q", cfg.CSS.Style, "minimal")
	}

	_, err = LoadConfig("absent-config-xyz")
	if !errors.Is(err, ErrConfigNotFound) {
		t.Errorf("error = %v, want ErrConfigNotFound", err)
	}
	if err != nil && !strings.Contains(err.Error(), "absent-config-xyz.yaml") {
		t.Errorf("error %q should list searched paths", err)
	}
}

func TestSearchPaths(t *testing.T) {
	t.Parallel()

	paths := SearchPaths("site")
	if len(paths) < 2 {
		t.Fatalf("SearchPaths() = %v, want at least 2 entries", paths)
	}
	if paths[0] != "site.yaml" || paths[1] != "site.yml" {
		t.Errorf("SearchPaths() starts with %v, want local files first", paths[:2])
	}
	for _, p := range paths[2:] {
		if !strings.Contains(p, configDirName) {
			t.Errorf("user path %q outside %s", p, configDirName)
		}
	}
}

func TestDecodeStrict_SizeLimit(t *testing.T) {
	t.Parallel()

	var cfg Config
	data := []byte("document:\n  title: \"" + strings.Repeat("a", MaxInputSize) + "\"\n")
	if err := decodeStrict(data, &cfg); !errors.Is(err, ErrInputTooLarge) {
		t.Errorf("decodeStrict() error = %v, want ErrInputTooLarge", err)
	}
}

func TestMarshal(t *testing.T) {
	t.Parallel()

	cfg := DefaultConfig()
	cfg.Document.Lang = "de"
	out, err := Marshal(cfg)
	if err != nil {
		t.Fatalf("Marshal() error = %v", err)
	}
	for _, want := range []string{"document:", "lang: de", "extension: html"} {
		if !strings.Contains(string(out), want) {
			t.Errorf("Marshal() output missing %q:\n%s", want, out)
		}
	}
}

func writeConfig(t *testing.T, dir, name, content string) string {
	t.Helper()

	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("setup: %v", err)
	}
	return path
}
