package assets

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/tuffi-studio/tuffi/internal/core"
)

// Scheme is the custom URL scheme the HTML post-processor rewrites /assets/
// references to. The webview shell registers a protocol handler for it; the
// dev server resolves it back to files.
const Scheme = "assets://"

// Resolver locates bundle files on disk. During development it reads from
// the frontend dist directory; in packaged builds it reads from an assets
// directory next to the executable.
type Resolver struct {
	baseDir string
}

func NewResolver(devDir string) (*Resolver, error) {
	if info, err := os.Stat(devDir); err == nil && info.IsDir() {
		return &Resolver{baseDir: devDir}, nil
	}

	exe, err := os.Executable()
	if err != nil {
		return nil, fmt.Errorf("failed to locate executable: %w", err)
	}
	return &Resolver{baseDir: filepath.Join(filepath.Dir(exe), "assets")}, nil
}

func NewResolverAt(baseDir string) *Resolver {
	return &Resolver{baseDir: baseDir}
}

func (r *Resolver) BaseDir() string {
	return r.baseDir
}

func (r *Resolver) Load(rel string) ([]byte, error) {
	if err := core.ValidateAssetPath(rel); err != nil {
		return nil, err
	}
	return os.ReadFile(filepath.Join(r.baseDir, filepath.FromSlash(rel)))
}

// ResolveURL maps an assets:// URL (or a plain absolute path) to a path
// relative to the resolver base.
func ResolveURL(url string) (string, error) {
	path := strings.TrimPrefix(url, Scheme)
	path = strings.TrimPrefix(path, "/")
	if err := core.ValidateAssetPath(path); err != nil {
		return "", err
	}
	return path, nil
}
