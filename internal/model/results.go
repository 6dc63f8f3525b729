package model

import "time"

// AnalysisSet groups the outputs of every analyzer for one run.
// The aggregator consumes the full set; report writers read it through
// FinalResult.Details.
//
// Design decision: We use one typed field per analyzer rather than a
// map keyed by criterion because:
//  1. Each analyzer produces a differently shaped details struct
//  2. The compiler catches a missing or misrouted result
//  3. The aggregator's layered adjustments need typed access anyway
type AnalysisSet struct {
	Structure   *StructureResult   `json:"structure,omitempty"`
	References  *ReferenceResult   `json:"references,omitempty"`
	Media       *MediaResult       `json:"media,omitempty"`
	Links       *LinkResult        `json:"links,omitempty"`
	Grammar     *GrammarResult     `json:"grammar,omitempty"`
	Maintenance *MaintenanceResult `json:"maintenance,omitempty"`
	Language    *LanguageResult    `json:"language,omitempty"`
	Revision    *RevisionResult    `json:"revision,omitempty"`
	Integration *IntegrationResult `json:"integration,omitempty"`
}

// StructureResult is the structure analyzer's output (raw max 30).
type StructureResult struct {
	Score   float64          `json:"score"`
	Details StructureDetails `json:"details"`
	Notes   []string         `json:"notes"`
}

// ReferenceResult is the reference analyzer's output (max 25 after the
// aggregator's layered adjustments).
type ReferenceResult struct {
	Score   float64          `json:"score"`
	Details ReferenceDetails `json:"details"`
	Notes   []string         `json:"notes"`
}

// MediaResult is the media analyzer's output (max 10).
type MediaResult struct {
	Score   float64      `json:"score"`
	Details MediaDetails `json:"details"`
	Notes   []string     `json:"notes"`
}

// LinkResult is the link analyzer's output (max 15).
type LinkResult struct {
	Score   float64     `json:"score"`
	Details LinkDetails `json:"details"`
	Notes   []string    `json:"notes"`
}

// GrammarResult is the grammar analyzer's output (max 5, reported in
// details only; the weighted language score is derived from the
// language record).
type GrammarResult struct {
	Score   float64        `json:"score"`
	Details GrammarDetails `json:"details"`
	Notes   []string       `json:"notes"`
}

// MaintenanceResult is the maintenance analyzer's output (max 20).
type MaintenanceResult struct {
	Score   float64            `json:"score"`
	Details MaintenanceDetails `json:"details"`
	Notes   []string           `json:"notes"`
}

// LanguageResult is the language analyzer's output. It carries no score
// of its own; the aggregator derives the 0-10 language subscore from the
// record via an explicit penalty function.
type LanguageResult struct {
	Details LanguageRecord `json:"details"`
	Notes   []string       `json:"notes"`
}

// RevisionResult is the revision analyzer's output (max 10,
// informational).
type RevisionResult struct {
	Score   float64         `json:"score"`
	Details RevisionDetails `json:"details"`
	Notes   []string        `json:"notes"`
}

// IntegrationResult is the integration analyzer's output (max 10,
// informational).
type IntegrationResult struct {
	Score   float64            `json:"score"`
	Details IntegrationDetails `json:"details"`
	Notes   []string           `json:"notes"`
}

// FinalResult is the aggregated outcome of one analysis run.
type FinalResult struct {
	// Title is the analyzed article's title.
	Title string `json:"title"`

	// Total is the weighted score, rounded and clamped to [0,100].
	Total int `json:"total"`

	// Tier is the quality label mapped from Total.
	Tier Tier `json:"tier"`

	// Scores holds the rescaled per-criterion subscores, including the
	// informational revision and integration subscores.
	Scores map[Criterion]float64 `json:"scores"`

	// Details holds every analyzer's full result.
	Details AnalysisSet `json:"details"`

	// Notes is the consolidated finding list, concatenated in the fixed
	// criterion order so two runs over the same document produce
	// identical sequences.
	Notes []string `json:"notes"`

	// Timestamp records when the aggregation happened. It is the only
	// non-deterministic field of the result.
	Timestamp time.Time `json:"timestamp"`
}
