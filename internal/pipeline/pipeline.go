package pipeline

import (
	"context"
	"log/slog"

	"github.com/arwiki-tools/qualscan/internal/document"
	"github.com/arwiki-tools/qualscan/internal/model"
)

// Assessment is the accumulated state of one article moving through the
// pipeline. Steps fill it in order: the fetch step sets Input, the
// build step sets Document, the analyze step sets Set, and the score
// step sets Result.
type Assessment struct {
	// Title is the article being assessed.
	Title string

	// Input is the raw fetch output.
	Input *document.Input

	// Document is the built document model.
	Document *document.Document

	// Set holds the analyzer results.
	Set *model.AnalysisSet

	// Result is the final aggregated assessment.
	Result *model.FinalResult

	// Error holds the first step failure, when the pipeline was
	// configured to continue past it.
	Error error

	// ErrorMessage is the human-readable form of Error.
	ErrorMessage string

	// PerformedSteps lists the names of executed steps in order.
	PerformedSteps []string

	// TimedOut reports whether the pipeline was cancelled.
	TimedOut bool
}

// NewAssessment creates the pipeline state for one article.
func NewAssessment(title string) *Assessment {
	return &Assessment{Title: title}
}

// Step defines the interface that all pipeline steps must implement.
// Steps are executed in sequence, with each step receiving the
// accumulated assessment from previous steps.
//
// Design decision: We use an interface rather than function types because:
// 1. It allows steps to carry configuration state
// 2. It provides a Name() method for logging and debugging
// 3. It's more extensible for future features (e.g., priority, dependencies)
type Step interface {
	// Do executes the pipeline step.
	// It receives the context for cancellation, and the assessment to modify.
	// Returns an error if the step fails critically; non-critical errors
	// should be recorded in the assessment and return nil.
	Do(ctx context.Context, a *Assessment) error

	// Name returns the step's name for logging purposes.
	Name() string
}

// Pipeline orchestrates the execution of multiple steps.
// It maintains a list of steps and executes them in order.
type Pipeline struct {
	// steps contains the ordered list of steps to execute.
	steps []Step

	// logger is used for structured logging during execution.
	logger *slog.Logger

	// continueOnError determines whether to continue executing steps
	// after one fails. If false, the pipeline stops on first error.
	continueOnError bool
}

// Option is a function that configures a Pipeline.
// This follows the functional options pattern for clean API design.
type Option func(*Pipeline)

// WithLogger sets a custom logger for the pipeline.
// If not set, the default logger is used.
func WithLogger(logger *slog.Logger) Option {
	return func(p *Pipeline) {
		p.logger = logger
	}
}

// WithContinueOnError configures the pipeline to continue execution
// even when a step fails. Failed steps are logged and their errors
// are recorded in the assessment, but subsequent steps still execute.
//
// Design decision: The default is to stop on error because the steps
// form a dependency chain; an article that failed to fetch has nothing
// to analyze. Continue-on-error exists for steps with side effects
// only, like persistence.
func WithContinueOnError(continueOnError bool) Option {
	return func(p *Pipeline) {
		p.continueOnError = continueOnError
	}
}

// New creates a new Pipeline with the given options.
// Steps should be added using AddStep after creation.
func New(opts ...Option) *Pipeline {
	p := &Pipeline{
		steps:           make([]Step, 0),
		continueOnError: false,
	}

	for _, opt := range opts {
		opt(p)
	}

	if p.logger == nil {
		p.logger = slog.Default()
	}

	return p
}

// AddStep appends a step to the pipeline.
// Steps are executed in the order they are added.
func (p *Pipeline) AddStep(step Step) {
	p.steps = append(p.steps, step)
}

// AddSteps appends multiple steps to the pipeline.
func (p *Pipeline) AddSteps(steps ...Step) {
	p.steps = append(p.steps, steps...)
}

// Execute runs all pipeline steps in sequence.
// It respects context cancellation and logs each step's execution.
//
// Design decision: We check context.Done() before each step rather than
// during, because steps should handle their own timeouts. This allows
// graceful cleanup between steps while still respecting cancellation.
//
// Returns the first error encountered if continueOnError is false,
// or nil if all steps complete (errors are recorded in the assessment).
func (p *Pipeline) Execute(ctx context.Context, a *Assessment) error {
	for _, step := range p.steps {
		select {
		case <-ctx.Done():
			p.logger.Warn("pipeline cancelled",
				"step", step.Name(),
				"reason", ctx.Err(),
			)
			a.TimedOut = true
			return ctx.Err()
		default:
		}

		p.logger.Info("executing step",
			"step", step.Name(),
			"article", a.Title,
		)

		if err := step.Do(ctx, a); err != nil {
			p.logger.Error("step failed",
				"step", step.Name(),
				"article", a.Title,
				"error", err,
			)

			a.Error = err
			a.ErrorMessage = err.Error()

			if !p.continueOnError {
				return err
			}
		} else {
			p.logger.Debug("step completed",
				"step", step.Name(),
				"article", a.Title,
			)
		}

		a.PerformedSteps = append(a.PerformedSteps, step.Name())
	}

	return nil
}

// StepCount returns the number of steps in the pipeline.
func (p *Pipeline) StepCount() int {
	return len(p.steps)
}

// StepNames returns the names of all steps in execution order.
func (p *Pipeline) StepNames() []string {
	names := make([]string, len(p.steps))
	for i, step := range p.steps {
		names[i] = step.Name()
	}
	return names
}
