package main

// Notes:
// - runServe: we test startup failures and shutdown on a canceled context.
//   Request handling is covered in internal/preview.
// - resolveServeRoot: we test argument, config, and default roots.

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	flag "github.com/spf13/pflag"
)

func TestParseServeFlags(t *testing.T) {
	t.Parallel()

	f, args, err := parseServeFlags([]string{"site", "-a", ":9000", "--lang", "it", "--theme", "monokai", "--no-style"}, &bytes.Buffer{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(args) != 1 || args[0] != "site" {
		t.Errorf("args = %v, want [site]", args)
	}
	if f.addr != ":9000" || f.document.lang != "it" || f.highlight.theme != "monokai" || !f.style.noStyle {
		t.Errorf("flags = %+v", f)
	}

	f, _, err = parseServeFlags(nil, &bytes.Buffer{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if f.addr != DefaultAddr {
		t.Errorf("addr = %q, want %q", f.addr, DefaultAddr)
	}

	if _, _, err := parseServeFlags([]string{"--help"}, &bytes.Buffer{}); !errors.Is(err, flag.ErrHelp) {
		t.Errorf("--help error = %v, want flag.ErrHelp", err)
	}
}

func TestResolveServeRoot(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	file := filepath.Join(dir, "a.txt")
	writeFile(t, file, "x")

	tests := []struct {
		name       string
		args       []string
		defaultDir string
		want       string
		wantErr    error
	}{
		{"argument", []string{dir}, "", dir, nil},
		{"config default", nil, dir, dir, nil},
		{"working directory", nil, "", ".", nil},
		{"too many", []string{dir, dir}, "", "", ErrUsage},
		{"file", []string{file}, "", "", ErrUsage},
		{"missing", []string{filepath.Join(dir, "none")}, "", "", os.ErrNotExist},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := resolveServeRoot(tt.args, tt.defaultDir)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Errorf("error = %v, want %v", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.want {
				t.Errorf("root = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestRunServe_ListenError(t *testing.T) {
	t.Parallel()

	env := newTestEnv("")
	err := run(context.Background(), []string{"textdown", "serve", t.TempDir(), "--addr", "127.0.0.1:-1", "-q"}, env.Environment)
	if !errors.Is(err, ErrServe) {
		t.Fatalf("error = %v, want ErrServe", err)
	}
	if exitCodeFor(err) != ExitGeneral {
		t.Errorf("exit code = %d, want %d", exitCodeFor(err), ExitGeneral)
	}
}

func TestRunServe_CanceledContext(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	env := newTestEnv("")
	err := run(ctx, []string{"textdown", "serve", t.TempDir(), "--addr", "127.0.0.1:0"}, env.Environment)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestRunServe_BadStyle(t *testing.T) {
	t.Parallel()

	err := run(context.Background(), []string{"textdown", "serve", t.TempDir(), "--style", "nope"}, newTestEnv("").Environment)
	if exitCodeFor(err) != ExitUsage {
		t.Errorf("error = %v (exit %d), want exit %d", err, exitCodeFor(err), ExitUsage)
	}
}
