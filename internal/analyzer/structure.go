package analyzer

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/arwiki-tools/qualscan/internal/document"
	"github.com/arwiki-tools/qualscan/internal/model"
)

// Structure thresholds. The 10-20% band is the community guideline for
// lead sizing; the character bands below it grade leads of articles too
// short for the ratio to be meaningful.
const (
	leadIdealMinRatio = 0.10
	leadIdealMaxRatio = 0.20
	leadLongSentence  = 200

	emptySectionMax  = 50
	stubSectionMax   = 1
	stubLengthMax    = 1500
	shortArticleBody = 2500
)

// Canonical sections every developed article is expected to carry. The
// names stay Arabic because they are matched against and reported as
// actual Arabic section headings.
const (
	sectionReferences    = "مراجع"
	sectionExternalLinks = "وصلات خارجية"
	sectionSeeAlso       = "انظر أيضاً"
	sectionEarlyLife     = "قسم الحياة المبكرة"
)

var (
	referencesSection    = regexp.MustCompile(`(?i)مراجع|references|مصادر`)
	externalLinksSection = regexp.MustCompile(`(?i)وصلات خارجية|external links|روابط خارجية`)
	seeAlsoSection       = regexp.MustCompile(`(?i)انظر أيضا|see also`)
	earlyLifeSection     = regexp.MustCompile(`(?i)حياته|نشأته|سيرته|early life|biography`)
)

// AnalyzeStructure scores lead sizing, section hierarchy, missing and
// empty sections, and length balance on a 0-30 scale.
func AnalyzeStructure(doc *document.Document) *model.StructureResult {
	details := model.StructureDetails{
		Lead:            analyzeLead(doc),
		Sections:        analyzeSectionStats(doc),
		MissingSections: detectMissingSections(doc),
		EmptySections:   detectEmptySections(doc),
		IsStub:          len(doc.Sections) <= stubSectionMax && doc.ArticleLength < stubLengthMax,
	}
	details.Balanced, details.BalanceIssue = assessBalance(doc)

	return &model.StructureResult{
		Score:   structureScore(details, doc),
		Details: details,
		Notes:   structureNotes(details),
	}
}

func analyzeLead(doc *document.Document) model.LeadInfo {
	leadLen := runeLen(doc.CleanLead)
	articleLen := doc.ArticleLength

	info := model.LeadInfo{Length: leadLen}
	if articleLen > 0 {
		info.PercentOfArticle = float64(leadLen) / float64(articleLen) * 100
		idealMin := float64(articleLen) * leadIdealMinRatio
		idealMax := float64(articleLen) * leadIdealMaxRatio
		info.OptimalLength = leadLen > 0 &&
			float64(leadLen) >= idealMin && float64(leadLen) <= idealMax
	}

	for _, sentence := range splitSentences(doc.CleanLead) {
		info.SentenceCount++
		length := runeLen(sentence)
		if length > info.MaxSentenceLength {
			info.MaxSentenceLength = length
		}
		if length > leadLongSentence {
			info.LongSentences++
		}
	}
	return info
}

func analyzeSectionStats(doc *document.Document) model.SectionStats {
	stats := model.SectionStats{
		Total:       len(doc.Sections),
		LevelCounts: make(map[int]int),
	}
	for _, s := range doc.Sections {
		stats.LevelCounts[s.Level]++
	}
	for level := 2; level <= 4; level++ {
		if stats.LevelCounts[level] > 0 {
			stats.StructuralDepth++
		}
	}
	return stats
}

func detectMissingSections(doc *document.Document) []string {
	missing := make([]string, 0)

	if !doc.HasSectionMatching(referencesSection) {
		missing = append(missing, sectionReferences)
	}
	if doc.ArticleLength > 3000 && !doc.HasSectionMatching(externalLinksSection) {
		missing = append(missing, sectionExternalLinks)
	}
	if doc.ArticleLength > 5000 && !doc.HasSectionMatching(seeAlsoSection) {
		missing = append(missing, sectionSeeAlso)
	}
	if doc.HasType(document.TypeBiography) && !doc.HasSectionMatching(earlyLifeSection) {
		missing = append(missing, sectionEarlyLife)
	}
	return missing
}

func detectEmptySections(doc *document.Document) []string {
	empty := make([]string, 0)
	for _, s := range doc.Sections {
		if s.Level <= 4 && s.Length < emptySectionMax {
			empty = append(empty, s.Heading)
		}
	}
	return empty
}

func assessBalance(doc *document.Document) (bool, string) {
	h2 := 0
	for _, s := range doc.Sections {
		if s.Level == 2 {
			h2++
		}
	}

	if doc.ArticleLength > 3000 && h2 < 2 {
		return false, "long article with too few sections"
	}
	if doc.ArticleLength < 2000 && h2 > 5 {
		return false, "too many sections for a short article"
	}
	return true, ""
}

func structureScore(details model.StructureDetails, doc *document.Document) float64 {
	score := 0.0

	// Lead (0-10).
	switch {
	case details.Lead.OptimalLength:
		score += 10
	case details.Lead.Length >= 400:
		score += 8
	case details.Lead.Length >= 300:
		score += 6
	case details.Lead.Length >= 200:
		score += 4
	case details.Lead.Length >= 150:
		score += 2
	}

	// Body structure (0-12).
	switch {
	case details.IsStub:
	case doc.ArticleLength < shortArticleBody:
		score += 6
	default:
		switch h2 := details.Sections.LevelCounts[2]; {
		case h2 >= 4:
			score += 10
		case h2 >= 3:
			score += 8
		case h2 >= 2:
			score += 6
		case h2 == 1:
			score += 3
		}
		switch {
		case details.Sections.StructuralDepth >= 3:
			score += 2
		case details.Sections.StructuralDepth == 2:
			score += 1
		}
	}

	// Canonical sections present (0-3).
	for _, name := range []string{sectionReferences, sectionExternalLinks, sectionSeeAlso} {
		present := true
		for _, m := range details.MissingSections {
			if m == name {
				present = false
				break
			}
		}
		if present {
			score++
		}
	}

	if details.Balanced {
		score += 3
	}

	if n := len(details.EmptySections); n > 0 {
		score -= min(3.0, float64(n))
	}

	// Medical prose commonly runs long clinical sentences; exempt it.
	if details.Lead.LongSentences > 0 && !doc.HasType(document.TypeMedical) {
		score -= min(2.0, float64(details.Lead.LongSentences))
	}

	return clamp(score, 0, 30)
}

func structureNotes(details model.StructureDetails) []string {
	notes := make([]string, 0)

	if details.IsStub {
		notes = append(notes, "article is at the stub stage; expand it and add organized sections")
	}

	if !details.Lead.OptimalLength {
		switch {
		case details.Lead.Length < 150:
			notes = append(notes, fmt.Sprintf(
				"lead is very short (%d characters); expand it to summarize the whole article",
				details.Lead.Length))
		case details.Lead.PercentOfArticle < 10:
			notes = append(notes, fmt.Sprintf(
				"lead is relatively short (%.1f%% of the article); the ideal is 10-20%%",
				details.Lead.PercentOfArticle))
		case details.Lead.PercentOfArticle > 20:
			notes = append(notes, fmt.Sprintf(
				"lead is relatively long (%.1f%% of the article); consider trimming it",
				details.Lead.PercentOfArticle))
		}
	}

	if !details.Balanced {
		notes = append(notes, details.BalanceIssue+"; consider reorganizing the structure")
	}

	if len(details.MissingSections) > 0 {
		notes = append(notes, "missing important sections: "+
			strings.Join(details.MissingSections, ", "))
	}

	if len(details.EmptySections) > 0 {
		examples := details.EmptySections
		if len(examples) > 3 {
			examples = examples[:3]
		}
		notes = append(notes, "empty or very short sections: "+strings.Join(examples, ", "))
	}

	if details.Lead.LongSentences > 0 {
		notes = append(notes, fmt.Sprintf(
			"%d overly long sentences in the lead (over %d characters); consider splitting them",
			details.Lead.LongSentences, leadLongSentence))
	}

	return notes
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
