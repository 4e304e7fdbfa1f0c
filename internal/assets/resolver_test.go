package assets

import (
	"os"
	"path/filepath"
	"testing"
)

func TestNewResolverPrefersDevDir(t *testing.T) {
	devDir := t.TempDir()

	r, err := NewResolver(devDir)
	if err != nil {
		t.Fatalf("NewResolver() error: %v", err)
	}
	if r.BaseDir() != devDir {
		t.Errorf("BaseDir() = %q, want %q", r.BaseDir(), devDir)
	}
}

func TestNewResolverFallsBackToExecutableDir(t *testing.T) {
	r, err := NewResolver(filepath.Join(t.TempDir(), "does-not-exist"))
	if err != nil {
		t.Fatalf("NewResolver() error: %v", err)
	}
	if filepath.Base(r.BaseDir()) != "assets" {
		t.Errorf("BaseDir() = %q, want an assets dir next to the executable", r.BaseDir())
	}
}

func TestResolverLoad(t *testing.T) {
	dir := t.TempDir()
	assetDir := filepath.Join(dir, "assets")
	if err := os.MkdirAll(assetDir, 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(assetDir, "index.js"), []byte("js"), 0o644); err != nil {
		t.Fatal(err)
	}

	r := NewResolverAt(dir)

	data, err := r.Load("assets/index.js")
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if string(data) != "js" {
		t.Errorf("Load() = %q", data)
	}

	if _, err := r.Load("../escape.js"); err == nil {
		t.Error("Load() accepted a traversal path")
	}
	if _, err := r.Load("missing.js"); err == nil {
		t.Error("Load() succeeded for a missing file")
	}
}

func TestResolveURL(t *testing.T) {
	tests := []struct {
		name    string
		url     string
		want    string
		wantErr bool
	}{
		{name: "scheme URL", url: "assets://assets/index.js", want: "assets/index.js"},
		{name: "absolute path", url: "/assets/style.css", want: "assets/style.css"},
		{name: "relative path", url: "assets/logo.png", want: "assets/logo.png"},
		{name: "traversal rejected", url: "assets://../secret", wantErr: true},
		{name: "query rejected", url: "/assets/x.js?v=1", wantErr: true},
		{name: "empty rejected", url: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ResolveURL(tt.url)
			if tt.wantErr {
				if err == nil {
					t.Errorf("ResolveURL(%q) expected error, got %q", tt.url, got)
				}
				return
			}
			if err != nil {
				t.Fatalf("ResolveURL(%q) error: %v", tt.url, err)
			}
			if got != tt.want {
				t.Errorf("ResolveURL(%q) = %q, want %q", tt.url, got, tt.want)
			}
		})
	}
}
