package build

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/tuffi-studio/tuffi/internal/core"
)

type recordingPlugin struct {
	name  string
	phase Phase
	log   *[]string
	err   error
}

func (p *recordingPlugin) Name() string { return p.name }
func (p *recordingPlugin) Phase() Phase { return p.phase }
func (p *recordingPlugin) GenerateBundle(context.Context, core.Bundle) error {
	*p.log = append(*p.log, p.name)
	return p.err
}

func TestPipelinePhaseOrdering(t *testing.T) {
	var log []string

	pipeline := NewPipeline(
		&recordingPlugin{name: "post-a", phase: PhasePost, log: &log},
		&recordingPlugin{name: "normal-a", phase: PhaseNormal, log: &log},
		&recordingPlugin{name: "pre-a", phase: PhasePre, log: &log},
		&recordingPlugin{name: "normal-b", phase: PhaseNormal, log: &log},
		&recordingPlugin{name: "post-b", phase: PhasePost, log: &log},
	)

	if err := pipeline.Run(context.Background(), core.Bundle{}); err != nil {
		t.Fatalf("Run() error: %v", err)
	}

	want := []string{"pre-a", "normal-a", "normal-b", "post-a", "post-b"}
	if len(log) != len(want) {
		t.Fatalf("ran %v, want %v", log, want)
	}
	for i := range want {
		if log[i] != want[i] {
			t.Fatalf("ran %v, want %v", log, want)
		}
	}
}

func TestPipelinePluginErrorIsNamed(t *testing.T) {
	var log []string
	boom := errors.New("boom")

	pipeline := NewPipeline(
		&recordingPlugin{name: "broken", phase: PhaseNormal, log: &log, err: boom},
		&recordingPlugin{name: "after", phase: PhasePost, log: &log},
	)

	err := pipeline.Run(context.Background(), core.Bundle{})
	if err == nil {
		t.Fatal("expected error")
	}
	if !errors.Is(err, boom) {
		t.Errorf("error does not wrap plugin error: %v", err)
	}
	if !strings.Contains(err.Error(), "broken") {
		t.Errorf("error does not name the plugin: %v", err)
	}
	if len(log) != 1 {
		t.Errorf("plugins after a failure still ran: %v", log)
	}
}

func TestPipelineHonorsCancellation(t *testing.T) {
	var log []string
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	pipeline := NewPipeline(&recordingPlugin{name: "never", phase: PhaseNormal, log: &log})

	if err := pipeline.Run(ctx, core.Bundle{}); err == nil {
		t.Fatal("expected context error")
	}
	if len(log) != 0 {
		t.Errorf("plugin ran despite cancelled context")
	}
}

func TestHTMLPostProcessorRunsInPostPhase(t *testing.T) {
	plugin := NewHTMLPostProcessor(nil)
	if plugin.Phase() != PhasePost {
		t.Errorf("Phase() = %v, want PhasePost", plugin.Phase())
	}
}

func TestHTMLPostProcessorTransformsBundle(t *testing.T) {
	clock := func() time.Time {
		return time.Date(2024, 3, 15, 10, 30, 0, 0, time.UTC)
	}
	plugin := NewHTMLPostProcessor(clock)

	bundle := core.Bundle{
		"index.html": {
			Kind:   core.KindAsset,
			Source: []byte(`<html><head></head><body><img src="/assets/logo.png"></body></html>`),
		},
	}

	if err := plugin.GenerateBundle(context.Background(), bundle); err != nil {
		t.Fatalf("GenerateBundle() error: %v", err)
	}

	html := string(bundle["index.html"].Source)
	if !strings.Contains(html, `assets://assets/logo.png`) {
		t.Errorf("asset URL not rewritten: %s", html)
	}
	if !strings.Contains(html, `build-timestamp`) {
		t.Errorf("timestamp not injected: %s", html)
	}
}
