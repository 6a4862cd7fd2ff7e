package main

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"github.com/alnah/go-textdown/internal/config"
)

const envPrefix = "TEXTDOWN_"

// envConfig holds configuration from environment variables.
// Gives CI jobs overrides without a YAML file.
type envConfig struct {
	ConfigPath string // TEXTDOWN_CONFIG: config file name or path
	Style      string // TEXTDOWN_STYLE: style name, path, or CSS
	InputDir   string // TEXTDOWN_INPUT_DIR: default input directory
	OutputDir  string // TEXTDOWN_OUTPUT_DIR: default output directory
	Workers    int    // TEXTDOWN_WORKERS: parallel workers
}

// knownEnvVars lists valid TEXTDOWN_* variables, to catch typos.
var knownEnvVars = map[string]bool{
	"TEXTDOWN_CONFIG":     true,
	"TEXTDOWN_STYLE":      true,
	"TEXTDOWN_INPUT_DIR":  true,
	"TEXTDOWN_OUTPUT_DIR": true,
	"TEXTDOWN_WORKERS":    true,
}

// loadEnvConfig reads the TEXTDOWN_* variables.
func loadEnvConfig() (*envConfig, error) {
	cfg := &envConfig{
		ConfigPath: os.Getenv("TEXTDOWN_CONFIG"),
		Style:      os.Getenv("TEXTDOWN_STYLE"),
		InputDir:   os.Getenv("TEXTDOWN_INPUT_DIR"),
		OutputDir:  os.Getenv("TEXTDOWN_OUTPUT_DIR"),
	}

	if v := os.Getenv("TEXTDOWN_WORKERS"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return nil, fmt.Errorf("%w: TEXTDOWN_WORKERS=%q is not a number", ErrInvalidWorkerCount, v)
		}
		if err := validateWorkers(n); err != nil {
			return nil, fmt.Errorf("TEXTDOWN_WORKERS: %w", err)
		}
		cfg.Workers = n
	}

	return cfg, nil
}

// warnUnknownEnvVars logs a warning for each unrecognized TEXTDOWN_* variable.
func warnUnknownEnvVars(logger *slog.Logger) {
	for _, kv := range os.Environ() {
		name, _, _ := strings.Cut(kv, "=")
		if strings.HasPrefix(name, envPrefix) && !knownEnvVars[name] {
			logger.Warn("unknown environment variable", "name", name)
		}
	}
}

// applyEnvConfig overlays set environment values onto cfg.
// Environment wins over the config file; flags are merged afterwards.
func applyEnvConfig(env *envConfig, cfg *config.Config) {
	if env.Style != "" {
		cfg.CSS.Style = env.Style
	}
	if env.InputDir != "" {
		cfg.Input.DefaultDir = env.InputDir
	}
	if env.OutputDir != "" {
		cfg.Output.DefaultDir = env.OutputDir
	}
}
