package build

import (
	"context"
	"encoding/json"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/tuffi-studio/tuffi/internal/core"
)

const (
	TuffiDir     = ".tuffi"
	ManifestFile = "manifest.json"
	MetafileName = "metafile.json"
)

// Output is the progress reporting port the CLI adapter implements.
type Output interface {
	PrintStep(emoji, msg string, args ...any)
	PrintSuccess(msg string, args ...any)
	PrintWarning(msg string, args ...any)
	PrintFile(path string)
}

type discardOutput struct{}

func (discardOutput) PrintStep(string, string, ...any) {}
func (discardOutput) PrintSuccess(string, ...any)      {}
func (discardOutput) PrintWarning(string, ...any)      {}
func (discardOutput) PrintFile(string)                 {}

type Options struct {
	// StagingDir holds the compiled frontend outputs before packaging.
	StagingDir string
	// OutDir is where the final bundle is flushed.
	OutDir string
	Naming core.Naming
	Clock  func() time.Time
	// Plugins run against the in-memory bundle; the HTML post-processor is
	// always appended in the post phase.
	Plugins []Plugin
	Out     Output
}

type Result struct {
	BuildID  string
	OutDir   string
	Files    []string
	Manifest *Manifest
	Duration time.Duration
}

type Engine struct {
	opts Options
}

func NewEngine(opts Options) *Engine {
	if opts.Clock == nil {
		opts.Clock = time.Now
	}
	if opts.Naming == (core.Naming{}) {
		opts.Naming = core.DefaultNaming()
	}
	if opts.Out == nil {
		opts.Out = discardOutput{}
	}
	return &Engine{opts: opts}
}

// Run executes one build: collect the staging directory into an in-memory
// bundle with output naming applied, run the plugin phases, then flush the
// mutated bundle to disk together with the manifest and metafile.
func (e *Engine) Run(ctx context.Context) (*Result, error) {
	start := time.Now()
	out := e.opts.Out

	out.PrintStep("🔍", "Collecting outputs from %s...", e.opts.StagingDir)
	col, err := e.collect()
	if err != nil {
		return nil, err
	}
	if len(col.bundle) == 0 {
		return nil, fmt.Errorf("no build outputs found in %s", e.opts.StagingDir)
	}
	out.PrintSuccess("Collected %d file(s)", len(col.bundle))
	if col.man.Entry == "" {
		out.PrintWarning("No entry script found in %s", e.opts.StagingDir)
	}

	plugins := append([]Plugin{}, e.opts.Plugins...)
	plugins = append(plugins, NewHTMLPostProcessor(e.opts.Clock))
	pipeline := NewPipeline(plugins...)

	out.PrintStep("⚡", "Running %d plugin(s)...", len(plugins))
	if err := pipeline.Run(ctx, col.bundle); err != nil {
		return nil, err
	}

	out.PrintStep("📦", "Writing bundle to %s...", e.opts.OutDir)
	files, err := e.flush(col.bundle)
	if err != nil {
		return nil, err
	}
	for _, f := range files {
		out.PrintFile(f)
	}

	if err := e.writeReports(col); err != nil {
		return nil, err
	}
	out.PrintSuccess("Build %s complete", col.man.BuildID)

	return &Result{
		BuildID:  col.man.BuildID,
		OutDir:   e.opts.OutDir,
		Files:    files,
		Manifest: col.man,
		Duration: time.Since(start),
	}, nil
}

type collected struct {
	bundle        core.Bundle
	man           *Manifest
	inputToOutput map[string]string
	inputBytes    map[string]int
	entryInput    string
}

func (e *Engine) collect() (*collected, error) {
	type sourceFile struct {
		rel  string
		data []byte
	}

	var sources []sourceFile
	err := filepath.WalkDir(e.opts.StagingDir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		// Source maps are disabled for packaged builds.
		if strings.HasSuffix(d.Name(), ".map") {
			return nil
		}
		rel, err := filepath.Rel(e.opts.StagingDir, path)
		if err != nil {
			return err
		}
		data, err := os.ReadFile(path)
		if err != nil {
			return fmt.Errorf("failed to read %s: %w", path, err)
		}
		sources = append(sources, sourceFile{rel: filepath.ToSlash(rel), data: data})
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to scan staging dir: %w", err)
	}

	sort.Slice(sources, func(i, j int) bool { return sources[i].rel < sources[j].rel })

	col := &collected{
		bundle: make(core.Bundle),
		man: &Manifest{
			BuildID:   uuid.NewString(),
			CreatedAt: core.FormatTimestamp(e.opts.Clock()),
			Chunks:    make(map[string]string),
			Assets:    make(map[string]string),
		},
		inputToOutput: make(map[string]string),
		inputBytes:    make(map[string]int),
	}
	naming := e.opts.Naming

	// The entry script keeps a fixed name. Prefer index/main; otherwise the
	// first script wins.
	entry := ""
	for _, src := range sources {
		if filepath.Ext(src.rel) != ".js" {
			continue
		}
		base := strings.TrimSuffix(filepath.Base(src.rel), ".js")
		if base == "index" || base == "main" {
			entry = src.rel
			break
		}
		if entry == "" {
			entry = src.rel
		}
	}

	var cssInputs []sourceFile

	for _, src := range sources {
		col.inputBytes[src.rel] = len(src.data)

		switch filepath.Ext(src.rel) {
		case ".html":
			col.bundle[src.rel] = &core.OutputFile{Kind: core.KindAsset, Source: src.data}
			col.man.HTML = append(col.man.HTML, src.rel)
			col.inputToOutput[src.rel] = src.rel
		case ".js":
			if src.rel == entry {
				col.bundle[naming.EntryFileNames] = &core.OutputFile{Kind: core.KindChunk, Source: src.data}
				col.man.Entry = naming.EntryFileNames
				col.inputToOutput[src.rel] = naming.EntryFileNames
				col.entryInput = src.rel
			} else {
				name := naming.ChunkName(src.data)
				col.bundle[name] = &core.OutputFile{Kind: core.KindChunk, Source: src.data}
				col.man.Chunks[src.rel] = name
				col.inputToOutput[src.rel] = name
			}
		case ".css":
			cssInputs = append(cssInputs, src)
		default:
			name := naming.AssetName(src.rel, src.data)
			col.bundle[name] = &core.OutputFile{Kind: core.KindAsset, Source: src.data}
			col.man.Assets[src.rel] = name
			col.inputToOutput[src.rel] = name
		}
	}

	// All stylesheets are combined into the single fixed-name file.
	if len(cssInputs) > 0 {
		var combined []byte
		for i, src := range cssInputs {
			if i > 0 {
				combined = append(combined, '\n')
			}
			combined = append(combined, src.data...)
			col.inputToOutput[src.rel] = naming.StyleFileName
		}
		col.bundle[naming.StyleFileName] = &core.OutputFile{Kind: core.KindAsset, Source: combined}
		col.man.Style = naming.StyleFileName
	}

	return col, nil
}

func (e *Engine) flush(bundle core.Bundle) ([]string, error) {
	names := bundle.Names()
	files := make([]string, 0, len(names))

	for _, name := range names {
		path := filepath.Join(e.opts.OutDir, filepath.FromSlash(name))
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return nil, fmt.Errorf("failed to create output dir for %s: %w", name, err)
		}
		if err := os.WriteFile(path, bundle[name].Source, 0o644); err != nil {
			return nil, fmt.Errorf("failed to write %s: %w", name, err)
		}
		files = append(files, path)
	}

	return files, nil
}

func (e *Engine) writeReports(col *collected) error {
	meta := newMetafile()
	for input, output := range col.inputToOutput {
		outputBytes := 0
		if file, ok := col.bundle[output]; ok {
			outputBytes = len(file.Source)
		}
		meta.record(input, col.inputBytes[input], output, outputBytes, input == col.entryInput)
	}

	reportDir := filepath.Join(e.opts.OutDir, TuffiDir)
	if err := os.MkdirAll(reportDir, 0o755); err != nil {
		return fmt.Errorf("failed to create report dir: %w", err)
	}

	manData, err := json.MarshalIndent(col.man, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal manifest: %w", err)
	}
	if err := os.WriteFile(filepath.Join(reportDir, ManifestFile), manData, 0o644); err != nil {
		return fmt.Errorf("failed to write manifest: %w", err)
	}

	metaData, err := json.MarshalIndent(meta, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal metafile: %w", err)
	}
	if err := os.WriteFile(filepath.Join(reportDir, MetafileName), metaData, 0o644); err != nil {
		return fmt.Errorf("failed to write metafile: %w", err)
	}

	return nil
}
