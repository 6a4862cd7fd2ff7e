package assets

import (
	"errors"
	"testing"
)

func TestNewAssetResolver(t *testing.T) {
	t.Parallel()

	t.Run("empty path uses embedded only", func(t *testing.T) {
		t.Parallel()

		resolver, err := NewAssetResolver("")
		if err != nil {
			t.Fatalf("NewAssetResolver(\"\") error = %v", err)
		}
		if resolver.HasCustomLoader() {
			t.Error("expected no custom loader for empty path")
		}
	})

	t.Run("valid custom path", func(t *testing.T) {
		t.Parallel()

		resolver, err := NewAssetResolver(t.TempDir())
		if err != nil {
			t.Fatalf("NewAssetResolver() error = %v", err)
		}
		if !resolver.HasCustomLoader() {
			t.Error("expected custom loader for valid path")
		}
	})

	t.Run("invalid custom path returns error", func(t *testing.T) {
		t.Parallel()

		_, err := NewAssetResolver("/nonexistent/path/abc123xyz")
		if !errors.Is(err, ErrInvalidBasePath) {
			t.Errorf("NewAssetResolver() error = %v, want ErrInvalidBasePath", err)
		}
	})
}

func TestAssetResolver_LoadStyle(t *testing.T) {
	t.Parallel()

	base := t.TempDir()
	writeStyle(t, base, "default", "body { color: navy; }")
	writeStyle(t, base, "house", "body { color: olive; }")

	resolver, err := NewAssetResolver(base)
	if err != nil {
		t.Fatalf("NewAssetResolver() error = %v", err)
	}

	tests := []struct {
		name    string
		style   string
		want    string
		wantErr error
	}{
		{name: "custom overrides embedded", style: "default", want: "body { color: navy; }"},
		{name: "custom only", style: "house", want: "body { color: olive; }"},
		{name: "falls back to embedded", style: "minimal"},
		{name: "missing everywhere", style: "nonexistent-xyz", wantErr: ErrStyleNotFound},
		{name: "invalid name is not retried", style: "a.b", wantErr: ErrInvalidAssetName},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := resolver.LoadStyle(tt.style)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Errorf("LoadStyle() error = %v, want %v", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("LoadStyle() error = %v", err)
			}
			if tt.want != "" && got != tt.want {
				t.Errorf("LoadStyle() = %q, want %q", got, tt.want)
			}
			if got == "" {
				t.Error("LoadStyle() returned empty content")
			}
		})
	}
}
