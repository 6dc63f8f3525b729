package pipeline

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"
)

// BatchProcessor handles concurrent assessment of multiple articles.
// It uses errgroup to manage goroutines and respect concurrency limits.
//
// Design decision: We use a separate BatchProcessor rather than adding
// batch functionality to Pipeline because:
// 1. It keeps the Pipeline focused on single-article execution
// 2. It allows different batch strategies (e.g., rate limiting, retries)
// 3. It provides cleaner separation of concerns
type BatchProcessor struct {
	// pipelineFactory creates a new pipeline for each assessment.
	// We use a factory to ensure each assessment gets a fresh pipeline
	// instance.
	pipelineFactory func() *Pipeline

	// concurrency is the maximum number of concurrent assessments.
	concurrency int

	// logger is used for batch-level logging.
	logger *slog.Logger

	// results stores completed assessments.
	// Access is synchronized via mutex.
	results []*Assessment
	mu      sync.Mutex
}

// BatchOption configures a BatchProcessor.
type BatchOption func(*BatchProcessor)

// WithBatchLogger sets a custom logger for batch processing.
func WithBatchLogger(logger *slog.Logger) BatchOption {
	return func(b *BatchProcessor) {
		b.logger = logger
	}
}

// WithConcurrency sets the maximum number of concurrent assessments.
// Default is 4 if not specified.
func WithConcurrency(n int) BatchOption {
	return func(b *BatchProcessor) {
		if n > 0 {
			b.concurrency = n
		}
	}
}

// NewBatchProcessor creates a new BatchProcessor.
//
// The pipelineFactory function is called for each assessment to create
// a fresh pipeline instance. This ensures that pipeline state doesn't
// leak between assessments and allows for per-article customization if
// needed.
func NewBatchProcessor(pipelineFactory func() *Pipeline, opts ...BatchOption) *BatchProcessor {
	bp := &BatchProcessor{
		pipelineFactory: pipelineFactory,
		concurrency:     4,
		results:         make([]*Assessment, 0),
	}

	for _, opt := range opts {
		opt(bp)
	}

	if bp.logger == nil {
		bp.logger = slog.Default()
	}

	return bp
}

// ProcessBatch assesses multiple articles concurrently.
// It respects the configured concurrency limit and context cancellation.
//
// Design decision: We use errgroup.SetLimit rather than a worker pool
// because it's simpler and errgroup handles the concurrency correctly.
// Each article gets its own goroutine, but only 'concurrency' goroutines
// run simultaneously.
//
// Returns all assessments collected, even for articles that failed.
// The error return indicates if the batch was cancelled.
func (bp *BatchProcessor) ProcessBatch(ctx context.Context, titles []string) ([]*Assessment, error) {
	bp.logger.Info("starting batch processing",
		"total_articles", len(titles),
		"concurrency", bp.concurrency,
	)

	startTime := time.Now()

	// Pre-allocate results slice to maintain order
	bp.results = make([]*Assessment, len(titles))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(bp.concurrency)

	for i, title := range titles {
		g.Go(func() error {
			select {
			case <-ctx.Done():
				return ctx.Err()
			default:
			}

			bp.logger.Info("assessing article",
				"article", title,
				"index", i+1,
				"total", len(titles),
			)

			a := NewAssessment(title)

			p := bp.pipelineFactory()
			err := p.Execute(ctx, a)

			// Store the assessment regardless of error; it carries the
			// error information when the run failed.
			if err != nil && a.Error == nil {
				a.Error = err
				a.ErrorMessage = err.Error()
			}

			bp.mu.Lock()
			bp.results[i] = a
			bp.mu.Unlock()

			if err != nil {
				bp.logger.Warn("assessment failed",
					"article", title,
					"error", err,
				)
				// Don't return the error to errgroup - we want the other
				// assessments to continue.
				return nil
			}

			total := 0
			if a.Result != nil {
				total = a.Result.Total
			}
			bp.logger.Info("assessment completed",
				"article", title,
				"total_score", total,
			)

			return nil
		})
	}

	err := g.Wait()

	elapsed := time.Since(startTime)
	bp.logger.Info("batch processing complete",
		"total_articles", len(titles),
		"elapsed", elapsed,
	)

	return bp.results, err
}

// ProcessBatchWithCallback assesses multiple articles and calls a
// callback for each completed assessment. This is useful for streaming
// results.
//
// The callback receives the assessment and the index of the title in
// the original slice. The callback is called from the goroutine that
// completed the assessment, so it should be thread-safe if it accesses
// shared state.
func (bp *BatchProcessor) ProcessBatchWithCallback(
	ctx context.Context,
	titles []string,
	callback func(a *Assessment, index int),
) error {
	bp.logger.Info("starting batch processing with callback",
		"total_articles", len(titles),
		"concurrency", bp.concurrency,
	)

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(bp.concurrency)

	for i, title := range titles {
		g.Go(func() error {
			select {
			case <-ctx.Done():
				return ctx.Err()
			default:
			}

			a := NewAssessment(title)
			p := bp.pipelineFactory()
			if err := p.Execute(ctx, a); err != nil && a.Error == nil {
				a.Error = err
				a.ErrorMessage = err.Error()
			}

			callback(a, i)

			return nil
		})
	}

	return g.Wait()
}
