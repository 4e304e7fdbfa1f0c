package core

import (
	"path/filepath"
	"strings"
)

// Naming holds the output file naming configuration. Fixed names and
// patterns mirror the bundler options the webview shell expects: a fixed
// entry script, a fixed combined stylesheet, and token patterns for chunks
// and other assets. Patterns support [name], [hash], [ext] and [extname].
type Naming struct {
	EntryFileNames string `yaml:"entry_file_names"`
	ChunkFileNames string `yaml:"chunk_file_names"`
	StyleFileName  string `yaml:"style_file_name"`
	AssetFileNames string `yaml:"asset_file_names"`
}

func DefaultNaming() Naming {
	return Naming{
		EntryFileNames: "assets/index.js",
		ChunkFileNames: "assets/chunk-[hash].js",
		StyleFileName:  "assets/style.css",
		AssetFileNames: "assets/[name]-[hash][extname]",
	}
}

func (n Naming) ChunkName(source []byte) string {
	return expandPattern(n.ChunkFileNames, "chunk", HashContent(source), ".js")
}

func (n Naming) AssetName(original string, source []byte) string {
	ext := filepath.Ext(original)
	name := strings.TrimSuffix(filepath.Base(original), ext)
	return expandPattern(n.AssetFileNames, name, HashContent(source), ext)
}

func expandPattern(pattern, name, hash, ext string) string {
	out := strings.ReplaceAll(pattern, "[name]", name)
	out = strings.ReplaceAll(out, "[hash]", hash)
	out = strings.ReplaceAll(out, "[extname]", ext)
	out = strings.ReplaceAll(out, "[ext]", strings.TrimPrefix(ext, "."))
	return out
}
