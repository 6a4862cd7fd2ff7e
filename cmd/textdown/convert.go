package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/alnah/go-textdown"
	"github.com/alnah/go-textdown/internal/config"
	"github.com/alnah/go-textdown/internal/fileutil"
	"github.com/alnah/go-textdown/internal/hints"
)

// Sentinel errors for CLI operations.
var (
	ErrNoInput          = errors.New("no input specified")
	ErrNoSources        = errors.New("no textile files found")
	ErrReadInput        = errors.New("failed to read input")
	ErrReadCSS          = errors.New("failed to read CSS file")
	ErrWriteOutput      = errors.New("failed to write output")
	ErrConversionFailed = errors.New("conversion failed")
)

// File permission constants.
const (
	dirPermissions  = 0o750 // rwxr-x---: owner full, group read+execute
	filePermissions = 0o644 // rw-r--r--: owner read+write, others read
)

// stdioPath names stdin as input and stdout as output.
const stdioPath = "-"

// runConvert orchestrates the conversion process.
func runConvert(ctx context.Context, args []string, flags *convertFlags, env *Environment, logger *slog.Logger) error {
	if err := validateWorkers(flags.workers); err != nil {
		return err
	}

	envCfg, err := loadEnvConfig()
	if err != nil {
		return err
	}
	warnUnknownEnvVars(logger)

	cfg, err := loadConfig(flags.common.config, envCfg.ConfigPath)
	if err != nil {
		return err
	}
	applyEnvConfig(envCfg, cfg)
	mergeFlags(flags, cfg)
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	conv, err := newConverter(cfg, flags.style.noStyle)
	if err != nil {
		return err
	}

	extraCSS, err := readExtraCSS(flags.style.css)
	if err != nil {
		return err
	}
	params := &conversionParams{
		title:      cfg.Document.Title,
		css:        extraCSS,
		standalone: cfg.Document.Standalone,
	}

	inputPath, err := resolveInputPath(args, cfg)
	if err != nil {
		return err
	}
	outputPath := resolveOutputDir(flags.output, cfg)

	if inputPath == stdioPath {
		return convertStdin(ctx, conv, params, outputPath, cfg.OutputExtension(), env, flags.common.quiet)
	}
	if outputPath == stdioPath {
		return convertToStdout(ctx, conv, params, inputPath, env)
	}

	files, err := discoverFiles(inputPath, outputPath, cfg.OutputExtension())
	if err != nil {
		return fmt.Errorf("discovering files: %w", err)
	}
	if len(files) == 0 {
		return fmt.Errorf("%w in %s%s", ErrNoSources, inputPath, hints.ForNoSources(fileutil.SourceExtensions))
	}

	workers := resolveWorkers(flags.workers, envCfg.Workers)
	logger.Debug("starting batch", "files", len(files), "workers", workers)

	results := convertBatch(ctx, conv, files, params, workers, logger)

	failed := printResults(results, flags.common.quiet, flags.common.verbose, env)
	if failed > 0 {
		return fmt.Errorf("%w: %d of %d file(s)", ErrConversionFailed, failed, len(results))
	}
	return nil
}

// loadConfig loads the config named by the flag, else by TEXTDOWN_CONFIG,
// else returns defaults.
func loadConfig(flagName, envName string) (*config.Config, error) {
	name := flagName
	if name == "" {
		name = envName
	}
	if name == "" {
		return config.DefaultConfig(), nil
	}

	cfg, err := config.LoadConfig(name)
	if err != nil {
		if errors.Is(err, config.ErrConfigNotFound) && !strings.ContainsAny(name, `/\`) {
			return nil, fmt.Errorf("loading config: %w%s", err, hints.ForConfigNotFound(config.SearchPaths(name)))
		}
		return nil, fmt.Errorf("loading config: %w", err)
	}
	return cfg, nil
}

// mergeFlags merges CLI flags into config. CLI values override config values.
func mergeFlags(flags *convertFlags, cfg *config.Config) {
	if flags.ext != "" {
		cfg.Output.Extension = flags.ext
	}

	if flags.document.standalone {
		cfg.Document.Standalone = true
	}
	if flags.document.title != "" {
		cfg.Document.Title = flags.document.title
	}
	if flags.document.lang != "" {
		cfg.Document.Lang = flags.document.lang
	}

	if flags.style.style != "" {
		cfg.CSS.Style = flags.style.style
	}
	if flags.style.assetPath != "" {
		cfg.Assets.BasePath = flags.style.assetPath
	}

	if flags.highlight.enabled {
		cfg.Highlight.Enabled = true
	}
	if flags.highlight.theme != "" {
		cfg.Highlight.Theme = flags.highlight.theme
		cfg.Highlight.Enabled = true
	}
}

// converterOptions translates the merged config into converter options.
func converterOptions(cfg *config.Config, noStyle bool) []textdown.Option {
	var opts []textdown.Option

	if cfg.Assets.BasePath != "" {
		opts = append(opts, textdown.WithAssetPath(cfg.Assets.BasePath))
	}
	if noStyle {
		opts = append(opts, textdown.WithoutStyle())
	} else if cfg.CSS.Style != "" {
		opts = append(opts, textdown.WithStyle(cfg.CSS.Style))
	}
	if cfg.Document.Lang != "" {
		opts = append(opts, textdown.WithLang(cfg.Document.Lang))
	}
	if cfg.Highlight.Enabled {
		opts = append(opts, textdown.WithHighlighting(cfg.Highlight.Theme))
	}
	return opts
}

// newConverter builds the converter shared by all workers, adding hints
// to style and theme errors.
func newConverter(cfg *config.Config, noStyle bool) (*textdown.Converter, error) {
	conv, err := textdown.NewConverter(converterOptions(cfg, noStyle)...)
	if err != nil {
		switch {
		case errors.Is(err, textdown.ErrStyleNotFound):
			return nil, fmt.Errorf("%w%s", err, hints.ForStyleNotFound(textdown.StyleNames()))
		case errors.Is(err, textdown.ErrUnknownTheme):
			return nil, fmt.Errorf("%w%s", err, hints.ForUnknownTheme(textdown.DefaultTheme))
		}
		return nil, err
	}
	return conv, nil
}

// readExtraCSS reads the --css file, if any.
func readExtraCSS(path string) (string, error) {
	if path == "" {
		return "", nil
	}
	content, err := os.ReadFile(path) // #nosec G304 -- user-provided path
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrReadCSS, err)
	}
	return string(content), nil
}

// resolveInputPath determines the input path from args or config.
func resolveInputPath(args []string, cfg *config.Config) (string, error) {
	if len(args) > 1 {
		return "", fmt.Errorf("%w: expected one input, got %d", ErrUsage, len(args))
	}
	if len(args) == 1 {
		return args[0], nil
	}
	if cfg.Input.DefaultDir != "" {
		return cfg.Input.DefaultDir, nil
	}
	return "", ErrNoInput
}

// resolveOutputDir determines the output destination from flag or config.
func resolveOutputDir(flagOutput string, cfg *config.Config) string {
	if flagOutput != "" {
		return flagOutput
	}
	return cfg.Output.DefaultDir
}

// resolveWorkers picks the batch size: flag, then TEXTDOWN_WORKERS, then auto.
func resolveWorkers(flagWorkers, envWorkers int) int {
	n := flagWorkers
	if n == 0 {
		n = envWorkers
	}
	return textdown.ResolvePoolSize(n)
}

// convertStdin converts standard input. Without an output path, or with
// "-", the result goes to standard output.
func convertStdin(ctx context.Context, conv CLIConverter, params *conversionParams, output, ext string, env *Environment, quiet bool) error {
	if output == "" || output == stdioPath {
		return convertStream(ctx, conv, params, env.Stdin, "stdin", env.Stdout)
	}

	if info, err := os.Stat(output); err == nil && info.IsDir() {
		output = filepath.Join(output, "stdin."+ext)
	}

	html, err := convertReader(ctx, conv, params, env.Stdin, "stdin")
	if err != nil {
		return err
	}
	if err := writeOutput(output, html); err != nil {
		return err
	}
	if !quiet {
		fmt.Fprintf(env.Stdout, "Created %s\n", output)
	}
	return nil
}

// convertToStdout converts a single source file to standard output.
func convertToStdout(ctx context.Context, conv CLIConverter, params *conversionParams, inputPath string, env *Environment) error {
	info, err := os.Stat(inputPath)
	if err != nil {
		return err
	}
	if info.IsDir() {
		return fmt.Errorf("%w: cannot write directory %s to stdout", ErrUsage, inputPath)
	}
	if err := validateSourceExtension(inputPath); err != nil {
		return err
	}

	f, err := os.Open(inputPath) // #nosec G304 -- user-provided path
	if err != nil {
		return fmt.Errorf("%w: %v", ErrReadInput, err)
	}
	defer f.Close()

	return convertStream(ctx, conv, params, f, inputPath, env.Stdout)
}

// convertStream converts everything read from r and writes the HTML to w.
func convertStream(ctx context.Context, conv CLIConverter, params *conversionParams, r io.Reader, name string, w io.Writer) error {
	html, err := convertReader(ctx, conv, params, r, name)
	if err != nil {
		return err
	}
	if _, err := w.Write(html); err != nil {
		return fmt.Errorf("%w: %v", ErrWriteOutput, err)
	}
	return nil
}

func convertReader(ctx context.Context, conv CLIConverter, params *conversionParams, r io.Reader, name string) ([]byte, error) {
	content, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrReadInput, name, err)
	}
	result, err := conv.Convert(ctx, params.input(string(content)))
	if err != nil {
		return nil, fmt.Errorf("converting %s: %w", name, err)
	}
	return result.HTML, nil
}

// writeOutput creates the parent directory and writes html atomically.
func writeOutput(path string, html []byte) error {
	if err := os.MkdirAll(filepath.Dir(path), dirPermissions); err != nil {
		return fmt.Errorf("%w: creating output directory: %v%s", ErrWriteOutput, err, hints.ForOutputDirectory())
	}
	if err := fileutil.WriteFileAtomic(path, html, filePermissions); err != nil {
		return fmt.Errorf("%w: %v", ErrWriteOutput, err)
	}
	return nil
}
