package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"time"

	flag "github.com/spf13/pflag"

	"github.com/alnah/go-textdown/internal/preview"
)

// DefaultAddr is where the preview server listens without --addr.
const DefaultAddr = "127.0.0.1:8080"

// Server timeouts.
const (
	readHeaderTimeout = 10 * time.Second
	shutdownTimeout   = 5 * time.Second
)

// ErrServe reports a preview server failure.
var ErrServe = errors.New("preview server failed")

// serveFlags holds all flags for the serve command.
type serveFlags struct {
	convertFlags
	addr string
}

// parseServeFlags parses flags for the serve command.
func parseServeFlags(args []string, usageOut io.Writer) (*serveFlags, []string, error) {
	f := &serveFlags{}
	fs := flag.NewFlagSet("serve", flag.ContinueOnError)
	fs.SetOutput(usageOut)
	fs.Usage = func() { printServeUsage(usageOut) }

	addCommonFlags(fs, &f.common)
	fs.StringVarP(&f.addr, "addr", "a", DefaultAddr, "listen address")
	fs.StringVar(&f.document.lang, "lang", "", "document language tag (default en)")
	addStyleFlags(fs, &f.style)
	addHighlightFlags(fs, &f.highlight)

	if err := fs.Parse(args); err != nil {
		return nil, nil, err
	}
	return f, fs.Args(), nil
}

// runServeCmd parses serve flags and runs the preview server until ctx
// is canceled.
func runServeCmd(ctx context.Context, args []string, env *Environment) error {
	flags, positional, err := parseServeFlags(args, env.Stderr)
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return nil
		}
		return fmt.Errorf("%w: %v", ErrUsage, err)
	}

	logger := newLogger(env.Stderr, flags.common.quiet, flags.common.verbose)
	return runServe(ctx, positional, flags, env, logger)
}

// runServe loads configuration like convert does, then serves the root
// directory. Pages are always standalone.
func runServe(ctx context.Context, args []string, flags *serveFlags, env *Environment, logger *slog.Logger) error {
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
	mergeFlags(&flags.convertFlags, cfg)
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

	root, err := resolveServeRoot(args, cfg.Input.DefaultDir)
	if err != nil {
		return err
	}

	srv := &http.Server{
		Addr:              flags.addr,
		Handler:           preview.NewServer(conv, root, logger, preview.WithExtraCSS(extraCSS)),
		ReadHeaderTimeout: readHeaderTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.ListenAndServe()
	}()
	if !flags.common.quiet {
		fmt.Fprintf(env.Stdout, "Serving %s on http://%s\n", root, flags.addr)
	}

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("%w: %v", ErrServe, err)
	case <-ctx.Done():
		logger.Debug("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("%w: %v", ErrServe, err)
		}
		return nil
	}
}

// resolveServeRoot picks the served directory: argument, config
// input.defaultDir, then the working directory.
func resolveServeRoot(args []string, defaultDir string) (string, error) {
	root := "."
	switch {
	case len(args) > 1:
		return "", fmt.Errorf("%w: expected one directory, got %d", ErrUsage, len(args))
	case len(args) == 1:
		root = args[0]
	case defaultDir != "":
		root = defaultDir
	}

	info, err := os.Stat(root)
	if err != nil {
		return "", err
	}
	if !info.IsDir() {
		return "", fmt.Errorf("%w: %s is not a directory", ErrUsage, root)
	}
	return root, nil
}
