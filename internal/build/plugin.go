package build

import (
	"context"
	"fmt"
	"sort"

	"github.com/tuffi-studio/tuffi/internal/core"
)

// Phase controls where a plugin runs relative to the rest of the pipeline.
// PhasePost plugins see final output names and finalized sources; nothing
// runs after them before the bundle is flushed to disk.
type Phase int

const (
	PhasePre Phase = iota
	PhaseNormal
	PhasePost
)

func (p Phase) String() string {
	switch p {
	case PhasePre:
		return "pre"
	case PhasePost:
		return "post"
	default:
		return "normal"
	}
}

// Plugin is the bundle-generated extension point: it receives the complete
// in-memory bundle once per build, after all outputs are finalized and
// before disk writes, and may mutate it in place.
type Plugin interface {
	Name() string
	Phase() Phase
	GenerateBundle(ctx context.Context, bundle core.Bundle) error
}

// Pipeline runs plugins grouped by phase: pre, then normal, then post.
// Registration order is preserved within a phase.
type Pipeline struct {
	plugins []Plugin
}

func NewPipeline(plugins ...Plugin) *Pipeline {
	ordered := make([]Plugin, len(plugins))
	copy(ordered, plugins)
	sort.SliceStable(ordered, func(i, j int) bool {
		return ordered[i].Phase() < ordered[j].Phase()
	})
	return &Pipeline{plugins: ordered}
}

func (p *Pipeline) Run(ctx context.Context, bundle core.Bundle) error {
	for _, plugin := range p.plugins {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := plugin.GenerateBundle(ctx, bundle); err != nil {
			return fmt.Errorf("plugin %s: %w", plugin.Name(), err)
		}
	}
	return nil
}
