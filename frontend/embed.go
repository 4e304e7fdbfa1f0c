// Package frontend embeds a prebuilt demo bundle so packaged binaries can
// serve a page without a dist directory on disk.
//
// The dist/ tree here is the packaged form of the counter demo: timestamp
// already stamped, asset references already on the assets:// scheme.
package frontend

import (
	"embed"
	"net/http"

	"github.com/tuffi-studio/tuffi/internal/assets"
)

//go:embed all:dist
var Assets embed.FS

// Handler serves the embedded bundle with the isolation header set.
func Handler() http.Handler {
	return assets.EmbeddedHandler(Assets, "dist")
}
