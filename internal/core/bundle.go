package core

import (
	"sort"
	"strings"
	"time"
)

type OutputKind int

const (
	KindAsset OutputKind = iota
	KindChunk
)

// OutputFile is a single generated build output held in memory before the
// bundle is flushed to disk.
type OutputFile struct {
	Kind   OutputKind
	Source []byte
}

// Bundle maps output file names to their records. It is created fresh for
// every build invocation and mutated in place by plugins.
type Bundle map[string]*OutputFile

func (b Bundle) Names() []string {
	names := make([]string, 0, len(b))
	for name := range b {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// IsHTML reports whether the named entry is eligible for HTML
// post-processing: an asset whose file name ends in ".html".
func (b Bundle) IsHTML(name string) bool {
	file, ok := b[name]
	if !ok {
		return false
	}
	return file.Kind == KindAsset && strings.HasSuffix(name, ".html")
}

// PostProcess rewrites every HTML asset in place with PostProcessHTML.
// Non-HTML entries are left untouched.
func (b Bundle) PostProcess(now time.Time) {
	for name, file := range b {
		if !b.IsHTML(name) {
			continue
		}
		file.Source = []byte(PostProcessHTML(string(file.Source), now))
	}
}
