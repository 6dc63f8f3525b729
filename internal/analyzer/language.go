package analyzer

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/arwiki-tools/qualscan/internal/document"
	"github.com/arwiki-tools/qualscan/internal/model"
)

// Sentence and paragraph thresholds. These are fixed engineering
// constants, not learned parameters; keeping them named keeps the
// behavior auditable.
const (
	sentenceTooShort = 20
	sentenceTooLong  = 200

	// unsegmentedSentenceMin flags sentences this long with no comma at
	// all as weak style.
	unsegmentedSentenceMin = 250

	paragraphMinLength = 50

	// wordRepetitionMax is the occurrence count above which a single
	// word (4+ Arabic letters) counts as excessive repetition.
	wordRepetitionMax = 15

	redundancyCutoff     = 0.85
	redundancyMinLength  = 30
	redundancyExampleCap = 3
)

// machineTranslationPatterns are calque and translationese phrase
// shapes common in machine-translated Arabic.
var machineTranslationPatterns = []*regexp.Regexp{
	regexp.MustCompile(`تم\s+\p{L}+`),
	regexp.MustCompile(`قام\s+ب`),
	regexp.MustCompile(`حوالي\s+\d+`),
	regexp.MustCompile(`وفقًا\s+ل`),
	regexp.MustCompile(`وفقاً\s+ل`),
	regexp.MustCompile(`في\s+سنة\s+\d+`),
	regexp.MustCompile(`في\s+عام\s+\d+`),
	regexp.MustCompile(`يُذكر\s+أن`),
	regexp.MustCompile(`يذكر\s+أن`),
	regexp.MustCompile(`كما\s+يلي`),
	regexp.MustCompile(`الجدير\s+بالذكر`),
	regexp.MustCompile(`من\s+الجدير\s+بالذكر`),
	regexp.MustCompile(`على\s+سبيل\s+المثال`),
	regexp.MustCompile(`بشكل\s+خاص`),
	regexp.MustCompile(`بصفة\s+خاصة`),
}

// fillerPatterns are throat-clearing phrases that add no content.
var fillerPatterns = []*regexp.Regexp{
	regexp.MustCompile(`بشكل\s+عام`),
	regexp.MustCompile(`بصورة\s+عامة`),
	regexp.MustCompile(`بصفة\s+عامة`),
	regexp.MustCompile(`من\s+ناحية\s+أخرى`),
	regexp.MustCompile(`من\s+جهة\s+أخرى`),
	regexp.MustCompile(`في\s+الواقع`),
	regexp.MustCompile(`في\s+الحقيقة`),
	regexp.MustCompile(`بطبيعة\s+الحال`),
	regexp.MustCompile(`في\s+نهاية\s+المطاف`),
	regexp.MustCompile(`في\s+نهاية\s+الأمر`),
	regexp.MustCompile(`كما\s+هو\s+معروف`),
	regexp.MustCompile(`كما\s+هو\s+واضح`),
}

// weakConstructionPatterns match paragraph or sentence openings that
// bury the subject.
var weakConstructionPatterns = []*regexp.Regexp{
	regexp.MustCompile(`^في\s+\p{L}+`),
	regexp.MustCompile(`^على\s+\p{L}+`),
	regexp.MustCompile(`^من\s+\p{L}+`),
	regexp.MustCompile(`^عند\s+\p{L}+`),
	regexp.MustCompile(`^وفقًا\s+`),
	regexp.MustCompile(`^وفقاً\s+`),
	regexp.MustCompile(`^حسب\s+`),
	regexp.MustCompile(`^بحسب\s+`),
}

// prepositionStartPatterns is the dedicated list for sentence-opening
// prepositions, wider than weakConstructionPatterns.
var prepositionStartPatterns = []*regexp.Regexp{
	regexp.MustCompile(`^في\s+`),
	regexp.MustCompile(`^من\s+`),
	regexp.MustCompile(`^على\s+`),
	regexp.MustCompile(`^إلى\s+`),
	regexp.MustCompile(`^عن\s+`),
	regexp.MustCompile(`^حتى\s+`),
	regexp.MustCompile(`^لدى\s+`),
	regexp.MustCompile(`^عند\s+`),
	regexp.MustCompile(`^نحو\s+`),
	regexp.MustCompile(`^حسب\s+`),
	regexp.MustCompile(`^بحسب\s+`),
	regexp.MustCompile(`^وفقًا\s+لـ`),
	regexp.MustCompile(`^وفقاً\s+لـ`),
	regexp.MustCompile(`^بناءً\s+على`),
	regexp.MustCompile(`^بناء\s+على`),
	regexp.MustCompile(`^في\s+عام\s+`),
	regexp.MustCompile(`^في\s+سنة\s+`),
}

// narrativeWeaknessPatterns mix storytelling openers, padded style, and
// filler constructions.
var narrativeWeaknessPatterns = []*regexp.Regexp{
	regexp.MustCompile(`تدور\s+القصة\s+حول`),
	regexp.MustCompile(`وتبدأ\s+الأحداث`),
	regexp.MustCompile(`وتدور\s+أحداث`),
	regexp.MustCompile(`كان\s+يا\s+ما\s+كان`),
	regexp.MustCompile(`في\s+قديم\s+الزمان`),
	regexp.MustCompile(`من\s+الجدير\s+بالذكر`),
	regexp.MustCompile(`يجدر\s+بالذكر`),
	regexp.MustCompile(`كما\s+يلي`),
	regexp.MustCompile(`يمكن\s+القول\s+بأن`),
	regexp.MustCompile(`يُذكر\s+أن`),
	regexp.MustCompile(`يذكر\s+أن`),
	regexp.MustCompile(`من\s+المعروف\s+أن`),
	regexp.MustCompile(`كما\s+هو\s+معروف`),
	regexp.MustCompile(`بشكل\s+عام`),
	regexp.MustCompile(`بصورة\s+عامة`),
	regexp.MustCompile(`من\s+ناحية\s+أخرى`),
	regexp.MustCompile(`من\s+جهة\s+أخرى`),
	regexp.MustCompile(`بالإضافة\s+إلى\s+ذلك`),
	regexp.MustCompile(`بالإضافة\s+لذلك`),
	regexp.MustCompile(`علاوة\s+على\s+ذلك`),
	regexp.MustCompile(`فضلاً\s+عن\s+ذلك`),
	regexp.MustCompile(`في\s+الواقع`),
	regexp.MustCompile(`في\s+الحقيقة`),
	regexp.MustCompile(`بطبيعة\s+الحال`),
}

// Markup-stripping patterns for sentence segmentation.
var (
	markupTemplate     = regexp.MustCompile(`\{\{[^}]*\}\}`)
	markupInternalLink = regexp.MustCompile(`\[\[(?:[^|\]]*\|)?([^\]]+)\]\]`)
	markupExternalLink = regexp.MustCompile(`\[https?://[^\s\]]+\s*([^\]]*)\]`)
	markupRefPair      = regexp.MustCompile(`(?is)<ref[^>]*>.*?</ref>`)
	markupRefSelfClose = regexp.MustCompile(`(?i)<ref[^>]*/>`)
	markupHeading      = regexp.MustCompile(`(?m)^=+.*=+$`)
	markupListMarker   = regexp.MustCompile(`(?m)^[*#:;]+`)
	markupHTMLTag      = regexp.MustCompile(`<[^>]+>`)
	markupWhitespace   = regexp.MustCompile(`\s+`)

	fullSentenceSplit = regexp.MustCompile(`[.!؟?]+(?:\s+|\z)`)
	paragraphSplit    = regexp.MustCompile(`\n\s*\n`)

	arabicPunctuationMark = regexp.MustCompile(`[،؛؟]`)
	latinPunctuationMark  = regexp.MustCompile(`[,;?!.]`)

	nonArabicRune       = regexp.MustCompile(`[^\x{0600}-\x{06FF}\s]`)
	conjunctionSentence = regexp.MustCompile(`^و\s+\p{L}+`)
)

// AnalyzeLanguage runs the deep prose-quality pass over the full
// markup: sentence and paragraph segmentation, machine-translation and
// weak-style signals, full-text grammar violations, punctuation
// conventions, and near-duplicate sentence detection. It emits a flat
// count record; the aggregator derives the weighted 0-10 subscore.
func AnalyzeLanguage(doc *document.Document) *model.LanguageResult {
	text := doc.Wikitext
	if strings.TrimSpace(text) == "" {
		return &model.LanguageResult{Notes: []string{}}
	}

	record := model.LanguageRecord{}
	sentences := segmentSentences(text)
	record.SentenceCount = len(sentences)

	analyzeSentenceLengths(sentences, &record)
	analyzeParagraphs(text, &record)
	detectMachineTranslation(text, sentences, &record)
	detectWeakStyle(text, sentences, &record)
	applyGrammarRules(text, doc.GrammarRules, &record)
	record.PunctuationScore = punctuationScore(text)
	detectPrepositionStarts(sentences, &record)
	detectNarrativeWeakness(text, &record)
	detectRedundancy(sentences, &record)

	return &model.LanguageResult{
		Details: record,
		Notes:   languageNotes(record),
	}
}

// segmentSentences strips wiki markup and splits on terminal
// punctuation, filtering out list items, citation fragments, and
// template or tag fragments.
func segmentSentences(text string) []string {
	clean := markupTemplate.ReplaceAllString(text, "")
	clean = markupInternalLink.ReplaceAllString(clean, "$1")
	clean = markupExternalLink.ReplaceAllString(clean, "$1")
	clean = markupRefPair.ReplaceAllString(clean, "")
	clean = markupRefSelfClose.ReplaceAllString(clean, "")
	clean = markupHeading.ReplaceAllString(clean, "")
	clean = markupListMarker.ReplaceAllString(clean, "")
	clean = markupHTMLTag.ReplaceAllString(clean, "")
	clean = markupWhitespace.ReplaceAllString(clean, " ")
	clean = strings.TrimSpace(clean)

	parts := fullSentenceSplit.Split(clean, -1)
	sentences := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p == "" || isListFragment(p) || isCitationFragment(p) || isMarkupFragment(p) {
			continue
		}
		sentences = append(sentences, p)
	}
	return sentences
}

func isListFragment(s string) bool {
	switch s[0] {
	case '*', '#', ':', ';':
		return true
	}
	return false
}

func isCitationFragment(s string) bool {
	if strings.Contains(strings.ToLower(s), "<ref") {
		return true
	}
	return strings.HasPrefix(s, "[") && strings.HasSuffix(s, "]")
}

func isMarkupFragment(s string) bool {
	return strings.HasPrefix(s, "{{") || strings.HasPrefix(s, "<") || strings.HasPrefix(s, "|")
}

func analyzeSentenceLengths(sentences []string, record *model.LanguageRecord) {
	if len(sentences) == 0 {
		return
	}

	total := 0
	for _, s := range sentences {
		length := runeLen(s)
		total += length

		if length > sentenceTooLong {
			record.LongSentences++
			if len(record.Examples.LongSentences) < redundancyExampleCap {
				record.Examples.LongSentences = append(record.Examples.LongSentences,
					model.LongSentenceExample{Text: truncateRunes(s, 150), Length: length})
			}
		} else if length < sentenceTooShort {
			record.ShortSentences++
		}
	}
	record.AvgSentenceLength = int(float64(total)/float64(len(sentences)) + 0.5)
}

func analyzeParagraphs(text string, record *model.LanguageRecord) {
	for _, p := range paragraphSplit.Split(text, -1) {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		record.ParagraphCount++

		if runeLen(p) < paragraphMinLength {
			record.EmptyParagraphs++
		}
		for _, pattern := range weakConstructionPatterns {
			if pattern.MatchString(p) {
				record.NonStandardParagraphs++
				break
			}
		}
	}
}

func detectMachineTranslation(text string, sentences []string, record *model.LanguageRecord) {
	seen := make(map[string]bool)
	for _, pattern := range machineTranslationPatterns {
		matches := pattern.FindAllString(text, -1)
		record.MachineTranslationSignals += len(matches)

		for _, m := range matches {
			if len(record.Examples.MachineTranslationPhrases) >= 8 {
				break
			}
			if !seen[m] {
				seen[m] = true
				record.Examples.MachineTranslationPhrases = append(
					record.Examples.MachineTranslationPhrases, m)
			}
		}
	}

	// Weak sentence openings also count as translation signals.
	for _, s := range sentences {
		for _, pattern := range weakConstructionPatterns {
			if pattern.MatchString(s) {
				record.MachineTranslationSignals++
			}
		}
	}
}

func detectWeakStyle(text string, sentences []string, record *model.LanguageRecord) {
	weak := 0.0

	for _, pattern := range fillerPatterns {
		n := len(pattern.FindAllString(text, -1))
		record.FillerWords += n
		weak += float64(n)
	}

	// Excessive repetition of any single word (4+ Arabic letters).
	words := strings.Fields(nonArabicRune.ReplaceAllString(text, ""))
	counts := make(map[string]int)
	for _, w := range words {
		if runeLen(w) > 3 {
			counts[w]++
		}
	}
	for _, n := range counts {
		if n > wordRepetitionMax {
			weak += 2
		}
	}

	for _, s := range sentences {
		if runeLen(s) > unsegmentedSentenceMin &&
			!strings.Contains(s, "،") && !strings.Contains(s, ",") {
			weak++
		}
		if conjunctionSentence.MatchString(s) {
			weak += 0.5
		}
	}

	record.WeakStyleSignals = int(weak + 0.5)
}

func applyGrammarRules(text string, rules []document.GrammarRule, record *model.LanguageRecord) {
	for _, rule := range rules {
		matches := rule.FindAll(text, -1)
		if len(matches) == 0 {
			continue
		}
		record.GrammarViolations += len(matches)

		if len(record.Examples.GrammarRuleHits) < 5 {
			examples := matches
			if len(examples) > 2 {
				examples = examples[:2]
			}
			record.Examples.GrammarRuleHits = append(record.Examples.GrammarRuleHits,
				model.RuleHitExample{
					Description: rule.Description,
					Count:       len(matches),
					Examples:    examples,
				})
		}
	}
}

// punctuationScore bands the share of native Arabic punctuation among
// all punctuation into 100, 75, 50, or 25.
func punctuationScore(text string) int {
	arabic := len(arabicPunctuationMark.FindAllString(text, -1))
	latin := len(latinPunctuationMark.FindAllString(text, -1))
	total := arabic + latin
	if total == 0 {
		return 0
	}

	ratio := float64(arabic) / float64(total) * 100
	switch {
	case ratio > 70:
		return 100
	case ratio > 50:
		return 75
	case ratio > 30:
		return 50
	default:
		return 25
	}
}

func detectPrepositionStarts(sentences []string, record *model.LanguageRecord) {
	for _, s := range sentences {
		for _, pattern := range prepositionStartPatterns {
			if pattern.MatchString(s) {
				record.PrepositionStarts++
				if len(record.Examples.PrepositionStarts) < 3 {
					record.Examples.PrepositionStarts = append(
						record.Examples.PrepositionStarts, truncateRunes(s, 80))
				}
				break
			}
		}
	}
}

func detectNarrativeWeakness(text string, record *model.LanguageRecord) {
	runes := []rune(text)
	for _, pattern := range narrativeWeaknessPatterns {
		matches := pattern.FindAllStringIndex(text, -1)
		record.NarrativeWeakness += len(matches)

		for _, idx := range matches {
			if len(record.Examples.NarrativeWeakness) >= 3 {
				break
			}
			// Surrounding context, 20 runes before and 60 after.
			start := len([]rune(text[:idx[0]]))
			end := len([]rune(text[:idx[1]]))
			from := max(0, start-20)
			to := min(len(runes), end+60)
			record.Examples.NarrativeWeakness = append(record.Examples.NarrativeWeakness,
				strings.TrimSpace(string(runes[from:to]))+"...")
		}
	}
}

// detectRedundancy flags near-duplicate sentence pairs in one forward
// pass. Collection stops once enough examples are found, which bounds
// the pairwise cost on pathological inputs.
func detectRedundancy(sentences []string, record *model.LanguageRecord) {
	valid := make([]string, 0, len(sentences))
	for _, s := range sentences {
		if runeLen(s) >= redundancyMinLength {
			valid = append(valid, s)
		}
	}
	if len(valid) < 2 {
		return
	}

	normalized := make([]string, len(valid))
	for i, s := range valid {
		normalized[i] = normalizeSentence(s)
	}

	for i := 0; i < len(valid)-1 && len(record.Examples.RedundantSentences) < redundancyExampleCap; i++ {
		for j := i + 1; j < len(valid) && len(record.Examples.RedundantSentences) < redundancyExampleCap; j++ {
			sim := similarity(normalized[i], normalized[j])
			if sim < redundancyCutoff {
				continue
			}
			record.RedundantSentences++
			record.Examples.RedundantSentences = append(record.Examples.RedundantSentences,
				model.RedundantPair{
					First:      truncateRunes(valid[i], 70),
					Second:     truncateRunes(valid[j], 70),
					Similarity: int(sim*100 + 0.5),
				})
		}
	}
}

func languageNotes(record model.LanguageRecord) []string {
	notes := make([]string, 0)

	if record.MachineTranslationSignals > 5 {
		notes = append(notes, fmt.Sprintf(
			"%d machine-translation signals in the prose; rewrite the stiff constructions",
			record.MachineTranslationSignals))
	}

	if record.LongSentences > 5 {
		notes = append(notes, fmt.Sprintf(
			"%d sentences exceed %d characters; split them for readability",
			record.LongSentences, sentenceTooLong))
	}

	if record.RedundantSentences > 0 {
		notes = append(notes, fmt.Sprintf(
			"%d near-duplicate sentence pairs found; merge or remove the repetition",
			record.RedundantSentences))
	}

	if record.PunctuationScore > 0 && record.PunctuationScore <= 50 {
		notes = append(notes, "Latin punctuation dominates; prefer Arabic punctuation marks")
	}

	return notes
}
