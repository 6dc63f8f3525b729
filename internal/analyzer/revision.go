package analyzer

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/arwiki-tools/qualscan/internal/document"
	"github.com/arwiki-tools/qualscan/internal/model"
)

// Section balance thresholds.
const (
	oversizedSectionMin  = 4000
	undersizedSectionMax = 80
)

// lowQualityTemplates suggest few reviewers have touched the article.
var lowQualityTemplates = []string{
	"غير مراجعة", "يتيمة", "تنظيف", "بذرة", "مصدر", "لا مصدر", "مراجع", "توضيح",
}

// editWarTemplates mark active editorial disputes.
var editWarTemplates = []string{
	"تعارض تحرير", "خلاف تحريري", "نزاع محايد",
}

// revertKeywords appear in pages that carry revert traces.
var revertKeywords = []string{
	"Reverted", "استرجاع", "تراجع", "تراجع عن تعديل", "Undid", "Revert",
}

// protectionKeywords mark protected pages.
var protectionKeywords = []string{
	"هذه الصفحة محمية", "صفحة محمية", "محمية كلياً", "محمية جزئياً", "padlock", "قفل",
}

// lastEditDatePatterns match last-edited date strings in the rendered
// page.
var lastEditDatePatterns = []*regexp.Regexp{
	regexp.MustCompile(`آخر تعديل.*?\d{1,2}\s+(يناير|فبراير|مارس|أبريل|مايو|يونيو|يوليو|أغسطس|سبتمبر|أكتوبر|نوفمبر|ديسمبر)\s+\d{4}`),
	regexp.MustCompile(`Last edited.*?\d{1,2}\s+(January|February|March|April|May|June|July|August|September|October|November|December)\s+\d{4}`),
	regexp.MustCompile(`تم التعديل.*?\d{4}-\d{2}-\d{2}`),
}

var balanceExemptSection = regexp.MustCompile(`مراجع|References|وصلات خارجية`)

// AnalyzeRevision estimates edit-activity stability from page surface
// cues on a 0-10 scale. There is no access to the real revision
// history; every figure here is an approximation and the notes carry
// that caveat.
func AnalyzeRevision(doc *document.Document) *model.RevisionResult {
	pageText := doc.PlainText

	details := model.RevisionDetails{
		EstimatedRecentEdits:   estimateRecentEdits(doc, pageText),
		EstimatedUniqueEditors: estimateUniqueEditors(doc),
		HasEditWars:            detectEditWars(doc, pageText),
		HasProtection:          detectProtection(doc, pageText),
	}
	details.UnbalancedSections, details.UnbalancedExamples = detectUnbalancedSections(doc)
	details.InstabilitySignals = instabilitySignals(details)

	score := 10.0
	if details.EstimatedRecentEdits > 40 {
		score -= 2
	}
	if details.EstimatedUniqueEditors < 2 {
		score -= 1
	}
	if details.UnbalancedSections > 3 {
		score -= 2
	}
	if details.HasEditWars {
		score -= 3
	}
	if details.HasProtection {
		score -= 1
	}
	score = clamp(score, 0, 10)

	return &model.RevisionResult{
		Score:   score,
		Details: details,
		Notes:   revisionNotes(details, score),
	}
}

// estimateRecentEdits approximates the 90-day edit volume. A visible
// last-edited date plus length and sourcing act as activity proxies.
func estimateRecentEdits(doc *document.Document, pageText string) int {
	dateFound := false
	for _, pattern := range lastEditDatePatterns {
		if pattern.MatchString(pageText) {
			dateFound = true
			break
		}
	}

	hasReferences := doc.HasSectionMatching(referencesSection)

	if dateFound {
		switch {
		case doc.ArticleLength > 5000 && hasReferences:
			return 30
		case doc.ArticleLength > 2000:
			return 20
		default:
			return 10
		}
	}

	if doc.ArticleLength > 3000 {
		return 15
	}
	return 5
}

// estimateUniqueEditors approximates the distinct editor count. Heavy
// maintenance tagging points at an unreviewed single-editor article;
// developed, sourced articles tend to have more hands on them.
func estimateUniqueEditors(doc *document.Document) int {
	maintenanceCount := 0
	for _, name := range lowQualityTemplates {
		if strings.Contains(doc.Wikitext, name) {
			maintenanceCount++
		}
	}

	if maintenanceCount > 3 {
		return 1
	}
	if maintenanceCount > 1 {
		return 2
	}

	hasReferences := doc.HasSectionMatching(referencesSection)
	sectionCount := len(doc.Sections)

	switch {
	case doc.ArticleLength > 5000 && hasReferences && sectionCount >= 5:
		return 5
	case doc.ArticleLength > 3000 && sectionCount >= 3:
		return 4
	case doc.ArticleLength > 1500:
		return 3
	default:
		return 2
	}
}

func detectUnbalancedSections(doc *document.Document) (int, []model.SectionIssue) {
	count := 0
	examples := make([]model.SectionIssue, 0, 3)

	record := func(s document.Section, issue string) {
		count++
		if len(examples) < 3 {
			examples = append(examples, model.SectionIssue{
				Section: s.Heading,
				Issue:   issue,
				Length:  s.Length,
			})
		}
	}

	for _, s := range doc.Sections {
		switch {
		case s.Length > oversizedSectionMin:
			record(s, "section too large")
		case s.Length > 0 && s.Length < undersizedSectionMax &&
			!balanceExemptSection.MatchString(s.Heading):
			record(s, "section too small")
		}
	}
	return count, examples
}

func detectEditWars(doc *document.Document, pageText string) bool {
	for _, name := range editWarTemplates {
		if strings.Contains(doc.Wikitext, name) {
			return true
		}
	}
	for _, keyword := range revertKeywords {
		if strings.Contains(pageText, keyword) {
			return true
		}
	}
	return false
}

func detectProtection(doc *document.Document, pageText string) bool {
	for _, keyword := range protectionKeywords {
		if strings.Contains(pageText, keyword) || strings.Contains(doc.Wikitext, keyword) {
			return true
		}
	}
	return doc.Root().Find(".mw-indicators-protection").Length() > 0
}

func instabilitySignals(details model.RevisionDetails) []string {
	signals := make([]string, 0)

	if details.EstimatedRecentEdits > 40 {
		signals = append(signals, "high recent edit volume (over 40)")
	}
	if details.EstimatedUniqueEditors < 2 {
		signals = append(signals, "very few editors (fewer than 2)")
	}
	if details.UnbalancedSections > 3 {
		signals = append(signals, fmt.Sprintf("many unbalanced sections (%d)", details.UnbalancedSections))
	}
	if details.HasEditWars {
		signals = append(signals, "edit-war indicators present")
	}
	if details.HasProtection {
		signals = append(signals, "page is protected")
	}
	return signals
}

func revisionNotes(details model.RevisionDetails, score float64) []string {
	notes := make([]string, 0)

	if details.EstimatedRecentEdits > 40 {
		notes = append(notes, fmt.Sprintf(
			"heavy editing activity (estimate: %d edits in the last 90 days); the article may be active or unstable",
			details.EstimatedRecentEdits))
	} else if details.EstimatedRecentEdits < 10 {
		notes = append(notes, "little editing activity (estimate); the article may need further development")
	}

	if details.EstimatedUniqueEditors < 2 {
		notes = append(notes, "article appears to have one or very few editors (estimate); collaboration improves quality")
	} else if details.EstimatedUniqueEditors >= 5 {
		notes = append(notes, "article appears to be developed by several editors (estimate), suggesting good review coverage")
	}

	if details.UnbalancedSections > 3 {
		notes = append(notes, fmt.Sprintf(
			"%d unbalanced sections (too large or too small); review the content distribution",
			details.UnbalancedSections))
	}

	if details.HasEditWars {
		notes = append(notes, "edit-war or dispute indicators detected; the article may need neutral review")
	}

	if details.HasProtection {
		notes = append(notes, "page is protected, which may indicate past disputes or sensitive content")
	}

	if score >= 8 && !details.HasEditWars {
		notes = append(notes, "article appears stable with good editorial quality")
	}

	return notes
}
