package assets

import (
	"io/fs"
	"net/http"
	"strings"

	"github.com/tuffi-studio/tuffi/internal/core"
)

// isolationHeaders is the header set the webview shell exposes on every
// asset response: permissive CORS plus cross-origin isolation so the page
// stays eligible for SharedArrayBuffer and friends.
var isolationHeaders = [...][2]string{
	{"Access-Control-Allow-Origin", "*"},
	{"Access-Control-Allow-Methods", "GET, POST, OPTIONS"},
	{"Access-Control-Allow-Headers", "Content-Type"},
	{"Cross-Origin-Opener-Policy", "same-origin"},
	{"Cross-Origin-Embedder-Policy", "require-corp"},
}

func ApplyIsolationHeaders(h http.Header) {
	for _, kv := range isolationHeaders {
		h.Set(kv[0], kv[1])
	}
}

// Handler serves resolver-backed files with the isolation header set.
func Handler(r *Resolver) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		rel, err := ResolveURL(req.URL.Path)
		if err != nil || rel == "" {
			http.NotFound(w, req)
			return
		}

		data, err := r.Load(rel)
		if err != nil {
			http.NotFound(w, req)
			return
		}

		ApplyIsolationHeaders(w.Header())
		w.Header().Set("Content-Type", core.GetContentType(rel))
		_, _ = w.Write(data)
	})
}

// EmbeddedHandler serves files from an embedded filesystem rooted at root,
// used when the frontend ships inside the binary.
func EmbeddedHandler(fsys fs.FS, root string) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		rel, err := ResolveURL(req.URL.Path)
		if err != nil || rel == "" {
			http.NotFound(w, req)
			return
		}

		path := rel
		if root != "" {
			path = strings.TrimSuffix(root, "/") + "/" + rel
		}

		data, err := fs.ReadFile(fsys, path)
		if err != nil {
			http.NotFound(w, req)
			return
		}

		ApplyIsolationHeaders(w.Header())
		w.Header().Set("Content-Type", core.GetContentType(rel))
		_, _ = w.Write(data)
	})
}
