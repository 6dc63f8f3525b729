package analyzer

import (
	"context"

	"golang.org/x/sync/errgroup"

	"github.com/arwiki-tools/qualscan/internal/document"
	"github.com/arwiki-tools/qualscan/internal/model"
)

// Runner fans the analyzers out over one document and collects their
// typed results.
//
// Design decision: We run analyzers through a coordinator rather than
// letting callers invoke them directly because:
//  1. The result set has one typed slot per analyzer and the
//     coordinator guarantees every slot is filled
//  2. Consistent context and cancellation handling
//  3. The fan-out is an optimization detail callers should not own
type Runner struct{}

// NewRunner creates a Runner.
func NewRunner() *Runner {
	return &Runner{}
}

// Run executes all analyzers concurrently and returns the complete
// result set. Analyzers are pure functions over the immutable document,
// so the only failure mode is context cancellation.
func (r *Runner) Run(ctx context.Context, doc *document.Document) (*model.AnalysisSet, error) {
	set := &model.AnalysisSet{}

	g, ctx := errgroup.WithContext(ctx)

	run := func(fill func()) {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			fill()
			return nil
		})
	}

	run(func() { set.Structure = AnalyzeStructure(doc) })
	run(func() { set.References = AnalyzeReferences(doc) })
	run(func() { set.Media = AnalyzeMedia(doc) })
	run(func() { set.Links = AnalyzeLinks(doc) })
	run(func() { set.Grammar = AnalyzeGrammar(doc) })
	run(func() { set.Maintenance = AnalyzeMaintenance(doc) })
	run(func() { set.Language = AnalyzeLanguage(doc) })
	run(func() { set.Revision = AnalyzeRevision(doc) })
	run(func() { set.Integration = AnalyzeIntegration(doc) })

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return set, nil
}
