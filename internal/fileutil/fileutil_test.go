package fileutil_test

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/alnah/go-textdown/internal/fileutil"
)

func TestValidateExtension(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		extension string
		wantErr   error
	}{
		{"html", "html", nil},
		{"compound", "fragment.html", nil},
		{"empty", "", fileutil.ErrExtensionEmpty},
		{"forward slash", "a/b", fileutil.ErrExtensionPathTraversal},
		{"backslash", `a\b`, fileutil.ErrExtensionPathTraversal},
		{"null byte", "ht\x00ml", fileutil.ErrExtensionPathTraversal},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			err := fileutil.ValidateExtension(tt.extension)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("ValidateExtension(%q) = %v, want %v", tt.extension, err, tt.wantErr)
			}
		})
	}
}

func TestWriteFileAtomic(t *testing.T) {
	t.Parallel()

	t.Run("creates file", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), "out.html")
		if err := fileutil.WriteFileAtomic(path, []byte("<p>x</p>"), 0o644); err != nil {
			t.Fatalf("WriteFileAtomic() error = %v", err)
		}
		got, err := os.ReadFile(path)
		if err != nil {
			t.Fatalf("ReadFile() error = %v", err)
		}
		if string(got) != "<p>x</p>" {
			t.Errorf("content = %q", got)
		}
	})

	t.Run("replaces existing file and leaves no temp files", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		path := filepath.Join(dir, "out.html")
		if err := os.WriteFile(path, []byte("old"), 0o644); err != nil {
			t.Fatalf("WriteFile() error = %v", err)
		}
		if err := fileutil.WriteFileAtomic(path, []byte("new"), 0o644); err != nil {
			t.Fatalf("WriteFileAtomic() error = %v", err)
		}

		entries, err := os.ReadDir(dir)
		if err != nil {
			t.Fatalf("ReadDir() error = %v", err)
		}
		if len(entries) != 1 {
			t.Errorf("directory holds %d entries, want 1", len(entries))
		}
		got, _ := os.ReadFile(path)
		if string(got) != "new" {
			t.Errorf("content = %q, want %q", got, "new")
		}
	})

	t.Run("missing directory", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), "missing", "out.html")
		if err := fileutil.WriteFileAtomic(path, []byte("x"), 0o644); err == nil {
			t.Error("WriteFileAtomic() expected error for missing directory")
		}
	})
}

func TestFileExists(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	file := filepath.Join(dir, "a.textile")
	if err := os.WriteFile(file, []byte("x"), 0o644); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}

	if !fileutil.FileExists(file) {
		t.Error("FileExists(file) = false")
	}
	if fileutil.FileExists(dir) {
		t.Error("FileExists(dir) = true")
	}
	if fileutil.FileExists(filepath.Join(dir, "nope")) {
		t.Error("FileExists(missing) = true")
	}
}

func TestIsFilePath(t *testing.T) {
	t.Parallel()

	tests := []struct {
		input string
		want  bool
	}{
		{"minimal", false},
		{"my-style", false},
		{"./custom.css", true},
		{"/abs/path.css", true},
		{"print.css", true},
		{"PRINT.CSS", true},
		{"sub/dir", true},
		{`C:\styles\print`, true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			t.Parallel()

			if got := fileutil.IsFilePath(tt.input); got != tt.want {
				t.Errorf("IsFilePath(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestIsCSS(t *testing.T) {
	t.Parallel()

	if !fileutil.IsCSS("body { margin: 0 }") {
		t.Error("IsCSS(rule) = false")
	}
	if fileutil.IsCSS("minimal") {
		t.Error("IsCSS(name) = true")
	}
}

func TestIsSourceFile(t *testing.T) {
	t.Parallel()

	tests := []struct {
		path string
		want bool
	}{
		{"notes.textile", true},
		{"README.TXT", true},
		{"dir/page.txt", true},
		{"page.md", false},
		{"textile", false},
		{"page.html", false},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			t.Parallel()

			if got := fileutil.IsSourceFile(tt.path); got != tt.want {
				t.Errorf("IsSourceFile(%q) = %v, want %v", tt.path, got, tt.want)
			}
		})
	}
}

func TestReplaceExtension(t *testing.T) {
	t.Parallel()

	tests := []struct {
		path, ext, want string
	}{
		{"doc.textile", "html", "doc.html"},
		{"dir/doc.txt", "html", "dir/doc.html"},
		{"noext", "html", "noext.html"},
		{"a.b.textile", "htm", "a.b.htm"},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			t.Parallel()

			if got := fileutil.ReplaceExtension(tt.path, tt.ext); got != tt.want {
				t.Errorf("ReplaceExtension(%q, %q) = %q, want %q", tt.path, tt.ext, got, tt.want)
			}
		})
	}
}
