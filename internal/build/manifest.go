package build

import "encoding/json"

// Manifest records what a build produced, keyed by staging-relative source
// paths. It is written next to the outputs so the webview shell and the dev
// server can locate the fixed entry, stylesheet and renamed assets.
type Manifest struct {
	BuildID   string            `json:"buildId"`
	CreatedAt string            `json:"createdAt"`
	Entry     string            `json:"entry,omitempty"`
	Style     string            `json:"style,omitempty"`
	HTML      []string          `json:"html,omitempty"`
	Chunks    map[string]string `json:"chunks,omitempty"`
	Assets    map[string]string `json:"assets,omitempty"`
}

func ParseManifest(data []byte) (*Manifest, error) {
	var m Manifest
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, err
	}
	return &m, nil
}
