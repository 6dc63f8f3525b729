package model

// LongSentenceExample is one over-long sentence excerpt.
type LongSentenceExample struct {
	Text   string `json:"text"`
	Length int    `json:"length"`
}

// RuleHitExample summarizes matches for one grammar rule across the
// whole text.
type RuleHitExample struct {
	Description string   `json:"description"`
	Count       int      `json:"count"`
	Examples    []string `json:"examples,omitempty"`
}

// RedundantPair is one near-duplicate sentence pair.
type RedundantPair struct {
	First  string `json:"first"`
	Second string `json:"second"`

	// Similarity is the rounded similarity percentage (85-100).
	Similarity int `json:"similarity"`
}

// LanguageExamples carries curated sample findings for the language
// record. Every list is capped at a small fixed size; the counts in
// LanguageRecord are not.
type LanguageExamples struct {
	LongSentences             []LongSentenceExample `json:"long_sentences,omitempty"`
	MachineTranslationPhrases []string              `json:"machine_translation_phrases,omitempty"`
	GrammarRuleHits           []RuleHitExample      `json:"grammar_rule_hits,omitempty"`
	PrepositionStarts         []string              `json:"preposition_starts,omitempty"`
	NarrativeWeakness         []string              `json:"narrative_weakness,omitempty"`
	RedundantSentences        []RedundantPair       `json:"redundant_sentences,omitempty"`
}

// LanguageRecord is the language analyzer's flat output record. The
// aggregator turns it into the 0-10 language subscore through an
// explicit penalty function; the record itself carries raw counts only.
type LanguageRecord struct {
	// MachineTranslationSignals counts calque-phrase matches plus
	// sentences opening with a weak construction.
	MachineTranslationSignals int `json:"machine_translation_signals"`

	// WeakStyleSignals counts filler phrases, excessive word
	// repetition, and long comma-free sentences.
	WeakStyleSignals int `json:"weak_style_signals"`

	// GrammarViolations counts grammar-rule matches over the full text.
	GrammarViolations int `json:"grammar_violations"`

	// LongSentences counts sentences over 200 characters.
	LongSentences int `json:"long_sentences"`

	// ShortSentences counts sentences under 20 characters.
	ShortSentences int `json:"short_sentences"`

	// AvgSentenceLength is the mean sentence length in characters.
	AvgSentenceLength int `json:"avg_sentence_length"`

	// SentenceCount is the number of segmented sentences.
	SentenceCount int `json:"sentence_count"`

	// ParagraphCount is the number of blank-line-separated paragraphs.
	ParagraphCount int `json:"paragraph_count"`

	// EmptyParagraphs counts paragraphs under 50 characters.
	EmptyParagraphs int `json:"empty_paragraphs"`

	// NonStandardParagraphs counts paragraphs opening with a weak
	// construction.
	NonStandardParagraphs int `json:"non_standard_paragraphs"`

	// PunctuationScore is the native-punctuation convention score, one
	// of 100, 75, 50, or 25 (0 for empty text).
	PunctuationScore int `json:"punctuation_score"`

	// FillerWords counts filler-phrase occurrences.
	FillerWords int `json:"filler_words"`

	// PrepositionStarts counts sentences opening with a preposition.
	PrepositionStarts int `json:"preposition_starts"`

	// NarrativeWeakness counts storytelling-opener and hedging-phrase
	// occurrences.
	NarrativeWeakness int `json:"narrative_weakness"`

	// RedundantSentences counts near-duplicate sentence pairs at or
	// above the 0.85 similarity cutoff.
	RedundantSentences int `json:"redundant_sentences"`

	Examples LanguageExamples `json:"examples"`
}
