package core

import (
	"fmt"
	"regexp"
	"strings"
	"time"
)

// TimestampLayout renders times the way Date.prototype.toISOString does:
// UTC, millisecond precision, trailing Z.
const TimestampLayout = "2006-01-02T15:04:05.000Z"

var (
	headTagPattern   = regexp.MustCompile(`(?i)<head>`)
	assetAttrPattern = regexp.MustCompile(`(?i)\b(src|href)="([^"]*)"`)
)

func FormatTimestamp(now time.Time) string {
	return now.UTC().Format(TimestampLayout)
}

// InjectTimestamp inserts a build-timestamp fragment immediately after the
// first case-insensitive occurrence of the literal "<head>". Documents
// without a <head> tag are returned unchanged.
func InjectTimestamp(html string, now time.Time) string {
	loc := headTagPattern.FindStringIndex(html)
	if loc == nil {
		return html
	}

	ts := FormatTimestamp(now)
	fragment := fmt.Sprintf(
		`<script>console.log("Build timestamp: %s");</script><meta name="build-timestamp" content="%s">`,
		ts, ts,
	)

	return html[:loc[1]] + fragment + html[loc[1]:]
}

// RewriteAssetURLs rewrites every src/href attribute whose value contains
// "/assets/" to use the assets:// scheme, stripping a single leading slash.
// The match is global and purely textual; values without "/assets/" are left
// as they are.
func RewriteAssetURLs(html string) string {
	return assetAttrPattern.ReplaceAllStringFunc(html, func(match string) string {
		parts := assetAttrPattern.FindStringSubmatch(match)
		attr, value := parts[1], parts[2]
		if !strings.Contains(value, "/assets/") {
			return match
		}
		return attr + `="assets://` + strings.TrimPrefix(value, "/") + `"`
	})
}

// PostProcessHTML applies the two transformations in order: timestamp
// injection first, then the asset URL rewrite over the injected text.
func PostProcessHTML(html string, now time.Time) string {
	return RewriteAssetURLs(InjectTimestamp(html, now))
}
