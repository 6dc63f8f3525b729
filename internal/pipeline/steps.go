package pipeline

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/arwiki-tools/qualscan/internal/analyzer"
	"github.com/arwiki-tools/qualscan/internal/document"
	"github.com/arwiki-tools/qualscan/internal/fetch"
	"github.com/arwiki-tools/qualscan/internal/history"
	"github.com/arwiki-tools/qualscan/internal/report"
	"github.com/arwiki-tools/qualscan/internal/score"
)

// FetchStep retrieves the article and the grammar rule set from the
// wiki API.
//
// Design decision: Grammar rules ride along with the article fetch
// because:
// 1. Both come from the same API endpoint and client
// 2. A missing or broken rule page must not fail the assessment;
//    the built-in rules take over
// 3. Later steps see one complete Input and stay offline
type FetchStep struct {
	// client is the API client.
	client *fetch.Client

	// skipRulePage disables the on-wiki rule fetch.
	skipRulePage bool

	// logger for structured logging.
	logger *slog.Logger
}

// FetchStepOption configures a FetchStep.
type FetchStepOption func(*FetchStep)

// WithSkipRulePage disables fetching the on-wiki grammar rule page.
func WithSkipRulePage(skip bool) FetchStepOption {
	return func(s *FetchStep) {
		s.skipRulePage = skip
	}
}

// WithFetchLogger sets a custom logger for the fetch step.
func WithFetchLogger(logger *slog.Logger) FetchStepOption {
	return func(s *FetchStep) {
		s.logger = logger
	}
}

// NewFetchStep creates a new article fetch step.
func NewFetchStep(client *fetch.Client, opts ...FetchStepOption) *FetchStep {
	s := &FetchStep{
		client: client,
		logger: slog.Default(),
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

// Name returns the step name.
func (s *FetchStep) Name() string {
	return "fetch"
}

// Do executes the fetch step.
func (s *FetchStep) Do(ctx context.Context, a *Assessment) error {
	input, err := s.client.FetchArticle(ctx, a.Title)
	if err != nil {
		return fmt.Errorf("fetching %q: %w", a.Title, err)
	}

	if !s.skipRulePage {
		rules, err := s.client.FetchGrammarRules(ctx)
		switch {
		case errors.Is(err, fetch.ErrRulePageMissing):
			s.logger.Debug("no on-wiki grammar rule page, using built-in rules")
		case err != nil:
			// Non-fatal: the built-in rules take over.
			s.logger.Warn("grammar rule fetch failed, using built-in rules", "error", err)
		default:
			input.GrammarRules = rules
		}
	}

	a.Input = input
	return nil
}

// BuildStep constructs the document model from the fetched input.
type BuildStep struct {
	// logger for structured logging.
	logger *slog.Logger
}

// BuildStepOption configures a BuildStep.
type BuildStepOption func(*BuildStep)

// WithBuildLogger sets a custom logger for the build step.
func WithBuildLogger(logger *slog.Logger) BuildStepOption {
	return func(s *BuildStep) {
		s.logger = logger
	}
}

// NewBuildStep creates a new document build step.
func NewBuildStep(opts ...BuildStepOption) *BuildStep {
	s := &BuildStep{
		logger: slog.Default(),
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

// Name returns the step name.
func (s *BuildStep) Name() string {
	return "build"
}

// Do executes the build step.
func (s *BuildStep) Do(_ context.Context, a *Assessment) error {
	doc, err := document.Build(a.Input)
	if err != nil {
		return fmt.Errorf("building document for %q: %w", a.Title, err)
	}

	s.logger.Debug("document built",
		"article", a.Title,
		"sections", len(doc.Sections),
		"length", doc.ArticleLength,
	)

	a.Document = doc
	return nil
}

// AnalyzeStep runs all analyzers over the document.
type AnalyzeStep struct {
	// runner coordinates the analyzer fan-out.
	runner *analyzer.Runner

	// logger for structured logging.
	logger *slog.Logger
}

// AnalyzeStepOption configures an AnalyzeStep.
type AnalyzeStepOption func(*AnalyzeStep)

// WithAnalyzeLogger sets a custom logger for the analyze step.
func WithAnalyzeLogger(logger *slog.Logger) AnalyzeStepOption {
	return func(s *AnalyzeStep) {
		s.logger = logger
	}
}

// NewAnalyzeStep creates a new analysis step.
func NewAnalyzeStep(opts ...AnalyzeStepOption) *AnalyzeStep {
	s := &AnalyzeStep{
		runner: analyzer.NewRunner(),
		logger: slog.Default(),
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

// Name returns the step name.
func (s *AnalyzeStep) Name() string {
	return "analyze"
}

// Do executes the analysis step.
func (s *AnalyzeStep) Do(ctx context.Context, a *Assessment) error {
	set, err := s.runner.Run(ctx, a.Document)
	if err != nil {
		return fmt.Errorf("analyzing %q: %w", a.Title, err)
	}

	a.Set = set
	return nil
}

// ScoreStep aggregates the analyzer results into the final assessment.
type ScoreStep struct{}

// NewScoreStep creates a new aggregation step.
func NewScoreStep() *ScoreStep {
	return &ScoreStep{}
}

// Name returns the step name.
func (s *ScoreStep) Name() string {
	return "score"
}

// Do executes the aggregation step.
func (s *ScoreStep) Do(_ context.Context, a *Assessment) error {
	a.Result = score.Aggregate(a.Title, a.Set)
	return nil
}

// SaveStep persists the final assessment to the history store.
//
// Design decision: Persistence is a separate step rather than part of
// scoring because:
// 1. It's optional; runs without --db-dir skip it entirely
// 2. A storage failure must not lose the rendered report
// 3. It keeps the scoring step free of I/O
type SaveStep struct {
	// store is the history database. A nil store turns the step into a
	// no-op.
	store *history.Store

	// logger for structured logging.
	logger *slog.Logger
}

// SaveStepOption configures a SaveStep.
type SaveStepOption func(*SaveStep)

// WithSaveLogger sets a custom logger for the save step.
func WithSaveLogger(logger *slog.Logger) SaveStepOption {
	return func(s *SaveStep) {
		s.logger = logger
	}
}

// NewSaveStep creates a new persistence step.
func NewSaveStep(store *history.Store, opts ...SaveStepOption) *SaveStep {
	s := &SaveStep{
		store:  store,
		logger: slog.Default(),
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

// Name returns the step name.
func (s *SaveStep) Name() string {
	return "save"
}

// Do executes the persistence step.
func (s *SaveStep) Do(ctx context.Context, a *Assessment) error {
	if s.store == nil || a.Result == nil {
		return nil
	}

	if err := s.store.SaveAssessment(ctx, a.Result); err != nil {
		// Non-fatal: the report still reaches the user.
		s.logger.Warn("failed to save assessment", "article", a.Title, "error", err)
		return nil
	}

	s.logger.Debug("assessment saved", "article", a.Title, "total", a.Result.Total)
	return nil
}

// ReportStep renders the final assessment through a report writer.
type ReportStep struct {
	// writer renders the assessment.
	writer report.Writer
}

// NewReportStep creates a new report step.
func NewReportStep(writer report.Writer) *ReportStep {
	return &ReportStep{writer: writer}
}

// Name returns the step name.
func (s *ReportStep) Name() string {
	return "report"
}

// Do executes the report step.
func (s *ReportStep) Do(_ context.Context, a *Assessment) error {
	if a.Result == nil {
		return nil
	}

	if _, err := s.writer.Write(a.Result); err != nil {
		return fmt.Errorf("writing report for %q: %w", a.Title, err)
	}
	return nil
}

// DefaultPipelineConfig holds configuration for the default pipeline.
type DefaultPipelineConfig struct {
	// SkipRulePage disables the on-wiki grammar rule fetch.
	SkipRulePage bool

	// Store is the optional history database.
	Store *history.Store

	// Writer renders the final assessment. When nil, the report step
	// is omitted and callers read Assessment.Result themselves.
	Writer report.Writer
}

// DefaultPipelineOption configures a DefaultPipelineConfig.
type DefaultPipelineOption func(*DefaultPipelineConfig)

// WithPipelineSkipRulePage disables the on-wiki grammar rule fetch.
func WithPipelineSkipRulePage(skip bool) DefaultPipelineOption {
	return func(c *DefaultPipelineConfig) {
		c.SkipRulePage = skip
	}
}

// WithPipelineStore sets the history database for persistence.
func WithPipelineStore(store *history.Store) DefaultPipelineOption {
	return func(c *DefaultPipelineConfig) {
		c.Store = store
	}
}

// WithPipelineWriter sets the report writer.
func WithPipelineWriter(writer report.Writer) DefaultPipelineOption {
	return func(c *DefaultPipelineConfig) {
		c.Writer = writer
	}
}

// DefaultPipeline creates a pipeline with all default steps configured.
// This is the standard flow for a full article assessment.
//
// Design decision: We provide a default pipeline because:
// 1. Most users want the full assessment
// 2. Reduces boilerplate in CLI
// 3. Ensures consistent ordering
//
// The first variadic parameter accepts pipeline options (WithLogger, etc).
// The second accepts pipeline config options (WithPipelineStore, etc).
func DefaultPipeline(client *fetch.Client, pipelineOpts []Option, configOpts ...DefaultPipelineOption) *Pipeline {
	p := New(pipelineOpts...)

	cfg := &DefaultPipelineConfig{}
	for _, opt := range configOpts {
		opt(cfg)
	}

	p.AddSteps(
		NewFetchStep(client, WithSkipRulePage(cfg.SkipRulePage)),
		NewBuildStep(),
		NewAnalyzeStep(),
		NewScoreStep(),
	)
	if cfg.Store != nil {
		p.AddStep(NewSaveStep(cfg.Store))
	}
	if cfg.Writer != nil {
		p.AddStep(NewReportStep(cfg.Writer))
	}

	return p
}
