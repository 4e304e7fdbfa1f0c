package devserver

import (
	"bufio"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tuffi-studio/tuffi/internal/assets"
	"github.com/tuffi-studio/tuffi/internal/bridge"
	"github.com/tuffi-studio/tuffi/internal/config"
)

func newTestServer(t *testing.T) *Server {
	t.Helper()

	dir := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "assets"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "index.html"),
		[]byte(`<html><head></head><body><script src="assets://assets/index.js"></script></body></html>`), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "assets", "index.js"),
		[]byte(`console.log("hi");`), 0o644))

	cfg := config.Default()
	cfg.Server.ExtraHeaders = map[string]string{"X-Demo": "1"}

	return New(cfg, assets.NewResolverAt(dir), bridge.NewRegistry(), nil)
}

func TestServeIndex(t *testing.T) {
	s := newTestServer(t)

	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "text/html; charset=utf-8", rec.Header().Get("Content-Type"))

	body := rec.Body.String()
	// Custom-scheme URLs must be mapped back to server paths for the browser.
	assert.Contains(t, body, `src="/assets/index.js"`)
	assert.NotContains(t, body, assets.Scheme)
	assert.Contains(t, body, reloadPath)
}

func TestServeIndexMissing(t *testing.T) {
	s := New(config.Default(), assets.NewResolverAt(t.TempDir()), nil, nil)

	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestServeAsset(t *testing.T) {
	s := newTestServer(t)

	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/assets/index.js", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/javascript", rec.Header().Get("Content-Type"))
	assert.Equal(t, `console.log("hi");`, rec.Body.String())
}

func TestServeAssetMissing(t *testing.T) {
	s := newTestServer(t)

	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/assets/nope.js", nil))

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestIsolationAndExtraHeaders(t *testing.T) {
	s := newTestServer(t)

	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	want := map[string]string{
		"Access-Control-Allow-Origin":  "*",
		"Access-Control-Allow-Methods": "GET, POST, OPTIONS",
		"Access-Control-Allow-Headers": "Content-Type",
		"Cross-Origin-Opener-Policy":   "same-origin",
		"Cross-Origin-Embedder-Policy": "require-corp",
		"X-Demo":                       "1",
	}
	for key, value := range want {
		assert.Equal(t, value, rec.Header().Get(key), key)
	}
}

func TestPreflightRequest(t *testing.T) {
	s := newTestServer(t)

	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodOptions, "/ipc", nil))

	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Equal(t, "*", rec.Header().Get("Access-Control-Allow-Origin"))
}

func TestIPCEndpoint(t *testing.T) {
	s := newTestServer(t)

	req := httptest.NewRequest(http.MethodPost, "/ipc",
		strings.NewReader(`{"function":"add","args":["20","22"]}`))
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var resp bridge.Response
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.True(t, resp.Success)
	assert.Equal(t, "Sum: 42", *resp.Data)
}

func TestReloadStream(t *testing.T) {
	s := newTestServer(t)

	ts := httptest.NewServer(s.Handler())
	defer ts.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, ts.URL+reloadPath, nil)
	require.NoError(t, err)

	resp, err := ts.Client().Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, "text/event-stream", resp.Header.Get("Content-Type"))

	reader := bufio.NewReader(resp.Body)
	line, err := reader.ReadString('\n')
	require.NoError(t, err)
	assert.Equal(t, "event: ready\n", line)

	// The subscription registers just after the ready event is written, so
	// keep signalling until the stream delivers.
	go func() {
		for ctx.Err() == nil {
			s.Reload()
			time.Sleep(20 * time.Millisecond)
		}
	}()

	for {
		line, err = reader.ReadString('\n')
		require.NoError(t, err)
		if line == "event: reload\n" {
			break
		}
	}
}
