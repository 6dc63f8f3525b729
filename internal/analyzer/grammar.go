package analyzer

import (
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/arwiki-tools/qualscan/internal/document"
	"github.com/arwiki-tools/qualscan/internal/model"
)

const (
	// grammarSampleParagraphs is how many substantial paragraphs the
	// rule set is applied to. Errors cluster early in weak articles, so
	// the sample keeps the check cheap without losing much signal.
	grammarSampleParagraphs = 3

	// grammarParagraphMin filters out caption and list fragments.
	grammarParagraphMin = 30

	grammarMaxScore   = 5
	grammarMaxReports = 10
)

// AnalyzeGrammar applies the loaded rule set to the first substantial
// paragraphs and scores the result on a 0-5 scale. The score is
// reported in the details only; the weighted language criterion already
// counts rule violations over the full text.
func AnalyzeGrammar(doc *document.Document) *model.GrammarResult {
	sample := firstParagraphs(doc, grammarSampleParagraphs)

	hits := make([]model.GrammarHit, 0)
	for _, rule := range doc.GrammarRules {
		for _, match := range rule.FindAll(sample, -1) {
			hits = append(hits, model.GrammarHit{
				Match:       match,
				Description: rule.Description,
				Suggestion:  rule.Suggestion,
			})
		}
	}

	hasTranslationTemplate := false
	for _, t := range doc.Templates {
		if strings.Contains(t, "ترجمة آلية") || strings.Contains(t, "Translated") {
			hasTranslationTemplate = true
			break
		}
	}

	details := model.GrammarDetails{
		ErrorCount:             len(hits),
		Errors:                 hits,
		HasTranslationTemplate: hasTranslationTemplate,
	}
	if len(details.Errors) > grammarMaxReports {
		details.Errors = details.Errors[:grammarMaxReports]
	}

	score := float64(grammarMaxScore)
	switch n := len(hits); {
	case n == 0:
	case n <= 2:
		score = 3
	case n <= 5:
		score = 2
	case n <= 10:
		score = 1
	default:
		score = 0
	}
	if hasTranslationTemplate {
		score -= 2
	}

	notes := make([]string, 0)
	if len(hits) > 0 {
		notes = append(notes, fmt.Sprintf(
			"%d possible language errors detected at the start of the article; a copyedit is recommended",
			len(hits)))
	}
	if hasTranslationTemplate {
		notes = append(notes, "article carries a machine-translation notice; review and improve the wording")
	}

	return &model.GrammarResult{
		Score:   clamp(score, 0, grammarMaxScore),
		Details: details,
		Notes:   notes,
	}
}

// firstParagraphs concatenates the first count paragraphs of at least
// grammarParagraphMin characters from the rendered tree.
func firstParagraphs(doc *document.Document, count int) string {
	var b strings.Builder
	found := 0

	doc.Root().Find("p").EachWithBreak(func(_ int, p *goquery.Selection) bool {
		text := strings.TrimSpace(p.Text())
		if runeLen(text) >= grammarParagraphMin {
			b.WriteString(" ")
			b.WriteString(text)
			found++
		}
		return found < count
	})

	return b.String()
}
