package build

import (
	"context"
	"time"

	"github.com/tuffi-studio/tuffi/internal/core"
)

// htmlPostProcessor injects the build timestamp and rewrites /assets/ URLs
// to the assets:// scheme in every HTML asset. It runs in the post phase so
// the rewrites see final file names and cannot be undone by later steps.
type htmlPostProcessor struct {
	clock func() time.Time
}

func NewHTMLPostProcessor(clock func() time.Time) Plugin {
	if clock == nil {
		clock = time.Now
	}
	return &htmlPostProcessor{clock: clock}
}

func (p *htmlPostProcessor) Name() string {
	return "html-post-process"
}

func (p *htmlPostProcessor) Phase() Phase {
	return PhasePost
}

func (p *htmlPostProcessor) GenerateBundle(_ context.Context, bundle core.Bundle) error {
	bundle.PostProcess(p.clock())
	return nil
}
