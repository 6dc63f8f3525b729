package model

// LeadInfo describes the article's introductory section.
type LeadInfo struct {
	// Length is the character length of the cleaned lead text.
	Length int `json:"length"`

	// SentenceCount is the number of sentences in the lead.
	SentenceCount int `json:"sentence_count"`

	// MaxSentenceLength is the longest lead sentence in characters.
	MaxSentenceLength int `json:"max_sentence_length"`

	// LongSentences counts lead sentences over 200 characters.
	LongSentences int `json:"long_sentences"`

	// OptimalLength is true when the lead falls in the ideal 10-20%
	// band of the article length.
	OptimalLength bool `json:"optimal_length"`

	// PercentOfArticle is the lead length as a percentage of the
	// article length.
	PercentOfArticle float64 `json:"percent_of_article"`
}

// SectionStats summarizes the article's heading hierarchy.
type SectionStats struct {
	// Total is the number of sections.
	Total int `json:"total"`

	// LevelCounts maps heading level (2-6) to the number of headings
	// at that level.
	LevelCounts map[int]int `json:"level_counts"`

	// StructuralDepth counts how many of the levels 2-4 are present
	// (0-3).
	StructuralDepth int `json:"structural_depth"`
}

// StructureDetails is the structure analyzer's findings object.
type StructureDetails struct {
	Lead     LeadInfo     `json:"lead"`
	Sections SectionStats `json:"sections"`

	// MissingSections lists canonical sections the article lacks.
	MissingSections []string `json:"missing_sections"`

	// EmptySections lists headings whose body runs under 50 characters.
	EmptySections []string `json:"empty_sections"`

	// Balanced is false when section count and article length disagree.
	Balanced bool `json:"balanced"`

	// BalanceIssue describes the imbalance when Balanced is false.
	BalanceIssue string `json:"balance_issue,omitempty"`

	// IsStub marks an article with at most one section and under 1500
	// characters of body text.
	IsStub bool `json:"is_stub"`
}

// ReferenceTypes buckets citations by source kind. The buckets plus
// Unknown always sum to the canonical total citation count.
type ReferenceTypes struct {
	Book     int `json:"book"`
	Journal  int `json:"journal"`
	News     int `json:"news"`
	Web      int `json:"web"`
	Archive  int `json:"archive"`
	Wikidata int `json:"wikidata"`
	Unknown  int `json:"unknown"`
}

// Classified returns the sum of all buckets except Unknown.
func (t ReferenceTypes) Classified() int {
	return t.Book + t.Journal + t.News + t.Web + t.Archive + t.Wikidata
}

// ReferenceLanguages counts citations per detected source language.
type ReferenceLanguages struct {
	Arabic  int `json:"ar"`
	English int `json:"en"`
	Other   int `json:"other"`
}

// Distinct returns how many language buckets are non-empty.
func (l ReferenceLanguages) Distinct() int {
	n := 0
	if l.Arabic > 0 {
		n++
	}
	if l.English > 0 {
		n++
	}
	if l.Other > 0 {
		n++
	}
	return n
}

// CountBucket classifies the total citation count.
type CountBucket string

// Citation count buckets.
const (
	BucketUnder10        CountBucket = "under10"
	BucketBetween10And20 CountBucket = "between10and20"
	BucketBetween20And50 CountBucket = "between20and50"
	BucketAbove50        CountBucket = "above50"
)

// IncompleteCitation is one example of a citation template missing two
// or more essential fields.
type IncompleteCitation struct {
	// Type is the citation template kind (web, book, ...).
	Type string `json:"type"`

	// Missing lists the absent essential fields.
	Missing []string `json:"missing"`

	// Snippet is a truncated excerpt of the template invocation.
	Snippet string `json:"snippet"`
}

// ReferenceDetails is the reference analyzer's findings object.
type ReferenceDetails struct {
	// TotalRefs is the canonical citation count: the larger of the
	// citation-tag count and the visible references-list item count.
	TotalRefs int `json:"total_refs"`

	// NamedRefs counts citations declared with a name attribute.
	NamedRefs int `json:"named_refs"`

	// RepeatedRefs counts self-closing reuses of named citations.
	RepeatedRefs int `json:"repeated_refs"`

	// BareURLs counts raw links outside citation markup and
	// navigational regions.
	BareURLs int `json:"bare_urls"`

	// CompleteCitations counts templates with at least two of
	// title/author/date.
	CompleteCitations int `json:"complete_citations"`

	// IncompleteCitations counts templates failing that bar.
	IncompleteCitations int `json:"incomplete_citations"`

	// AllYears counts extracted publication years in 1900-2025.
	AllYears int `json:"all_years"`

	// RecentYears counts publication years in the last decade.
	RecentYears int `json:"recent_years"`

	// HasReferencesSection is true when a references-like heading exists.
	HasReferencesSection bool `json:"has_references_section"`

	// ReliableSources counts matches against the reliable-domain
	// allow-list.
	ReliableSources int `json:"reliable_sources"`

	Types     ReferenceTypes     `json:"types"`
	Languages ReferenceLanguages `json:"languages"`

	// Bucket classifies TotalRefs.
	Bucket CountBucket `json:"bucket"`

	// WikidataCitations counts structured-data citation templates.
	WikidataCitations int `json:"wikidata_citations"`

	// FlaggedIncomplete counts citations missing two or more of
	// title/publisher/date/url.
	FlaggedIncomplete int `json:"flagged_incomplete"`

	// IncompleteExamples holds up to three flagged citations.
	IncompleteExamples []IncompleteCitation `json:"incomplete_examples,omitempty"`
}

// FilteredImage is one image excluded as non-informational.
type FilteredImage struct {
	Filename string `json:"filename"`
	Reason   string `json:"reason"`
}

// BadAltImage is one image with a missing or too-short alt text.
type BadAltImage struct {
	Filename string `json:"filename"`
	Alt      string `json:"alt"`
	Issue    string `json:"issue"`
}

// MediaExamples carries curated sample findings for media notes.
type MediaExamples struct {
	FilteredOut        []FilteredImage `json:"filtered_out,omitempty"`
	NonFree            []string        `json:"non_free,omitempty"`
	NotFromRegistry    []string        `json:"not_from_registry,omitempty"`
	NoLocalDescription []string        `json:"no_local_description,omitempty"`
	BadAltText         []BadAltImage   `json:"bad_alt_text,omitempty"`
}

// MediaDetails is the media analyzer's findings object.
type MediaDetails struct {
	// InfoboxImages counts images inside the infobox.
	InfoboxImages int `json:"infobox_images"`

	// ArticleImages is the total body image count.
	ArticleImages int `json:"article_images"`

	// DecorativeImages counts small icons, flags, and logos.
	DecorativeImages int `json:"decorative_images"`

	// InformativeImages counts the remaining body images.
	InformativeImages int `json:"informative_images"`

	Videos int `json:"videos"`
	Audios int `json:"audios"`

	// ImagesWithoutAlt counts body images lacking alt text entirely.
	ImagesWithoutAlt int `json:"images_without_alt"`

	// HasLeadImage is true when an image appears in the first three
	// body paragraphs or the infobox.
	HasLeadImage bool `json:"has_lead_image"`

	// FilteredOut counts images excluded by keyword or size.
	FilteredOut int `json:"filtered_out"`

	// NonFreeCount counts images matching non-free-license keywords.
	NonFreeCount int `json:"non_free_count"`

	// RegistryLikely counts images that appear to come from the shared
	// media repository.
	RegistryLikely int `json:"registry_likely"`

	// LocalDescriptionLikely counts registry images whose filename or
	// alt text carries Arabic script, a proxy for a localized
	// description.
	LocalDescriptionLikely int `json:"local_description_likely"`

	// BadAltCount counts images with missing or under-5-character alt
	// text.
	BadAltCount int `json:"bad_alt_count"`

	// CorrectedCount is the media count excluding navigational and
	// decorative matches; the basis for Density.
	CorrectedCount int `json:"corrected_count"`

	// Density is CorrectedCount per 100 words.
	Density float64 `json:"density"`

	Examples MediaExamples `json:"examples"`
}

// LinkDetails is the link analyzer's findings object.
type LinkDetails struct {
	InternalLinks int `json:"internal_links"`
	RedLinks      int `json:"red_links"`
	ExternalLinks int `json:"external_links"`
	WordCount     int `json:"word_count"`

	// Density is internal links per 100 words.
	Density float64 `json:"density"`
}

// GrammarHit is one grammar-rule match in the sampled lead paragraphs.
type GrammarHit struct {
	Match       string `json:"match"`
	Description string `json:"description"`
	Suggestion  string `json:"suggestion,omitempty"`
}

// GrammarDetails is the grammar analyzer's findings object.
type GrammarDetails struct {
	ErrorCount int          `json:"error_count"`
	Errors     []GrammarHit `json:"errors,omitempty"`

	// HasTranslationTemplate is true when a machine-translation notice
	// template is present on the article.
	HasTranslationTemplate bool `json:"has_translation_template"`
}

// MaintenanceDetails is the maintenance analyzer's findings object.
type MaintenanceDetails struct {
	// Banners counts maintenance and cleanup banner regions.
	Banners int `json:"banners"`

	// Categories is the article's category count.
	Categories int `json:"categories"`

	HasOrphanTemplate  bool `json:"has_orphan_template"`
	HasStubTemplate    bool `json:"has_stub_template"`
	HasCleanupTemplate bool `json:"has_cleanup_template"`
}

// SectionIssue is one oversized or undersized section.
type SectionIssue struct {
	Section string `json:"section"`
	Issue   string `json:"issue"`
	Length  int    `json:"length"`
}

// RevisionDetails is the revision analyzer's findings object. All edit
// and editor figures are surface-evidence estimates, not revision
// history ground truth.
type RevisionDetails struct {
	// EstimatedRecentEdits approximates edit volume over the last 90
	// days from page surface cues.
	EstimatedRecentEdits int `json:"estimated_recent_edits"`

	// EstimatedUniqueEditors approximates the distinct editor count.
	EstimatedUniqueEditors int `json:"estimated_unique_editors"`

	// UnbalancedSections counts sections over 4000 or under 80
	// characters.
	UnbalancedSections int `json:"unbalanced_sections"`

	HasEditWars   bool `json:"has_edit_wars"`
	HasProtection bool `json:"has_protection"`

	// InstabilitySignals lists the triggered instability indicators.
	InstabilitySignals []string `json:"instability_signals,omitempty"`

	// UnbalancedExamples holds up to three unbalanced sections.
	UnbalancedExamples []SectionIssue `json:"unbalanced_examples,omitempty"`
}

// IntegrationDetails is the integration analyzer's findings object.
type IntegrationDetails struct {
	// LinkedToRegistry is true when the article links to the external
	// structured-data registry.
	LinkedToRegistry bool `json:"linked_to_registry"`

	// EntityID is the extracted registry entity identifier, if any.
	EntityID string `json:"entity_id,omitempty"`

	// InterwikiLinks counts cross-language-link template invocations.
	InterwikiLinks int `json:"interwiki_links"`

	// SisterBoxes counts sibling-repository box templates and direct
	// sibling-domain links.
	SisterBoxes int `json:"sister_boxes"`

	// MissingSisterLinks is true when neither interwiki links nor
	// sister boxes exist.
	MissingSisterLinks bool `json:"missing_sister_links"`

	// CrossProjectSignals counts the positive integration indicators.
	CrossProjectSignals int `json:"cross_project_signals"`

	// TemplateHints lists the registry template names that matched.
	TemplateHints []string `json:"template_hints,omitempty"`
}
