package analyzer

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/arwiki-tools/qualscan/internal/document"
	"github.com/arwiki-tools/qualscan/internal/model"
)

// wikidataTemplates link the article to the central structured-data
// registry.
var wikidataTemplates = []string{
	"ويكي بيانات", "Wikidata", "استشهاد بويكي بيانات", "Cite Q",
}

// interwikiTemplates point at articles in other language editions.
var interwikiTemplates = []string{
	"وإو", "Interlanguage link", "Ill", "Ill-wd", "Interlang", "وصلة بين لغوية",
}

// sisterProjectTemplates render sister-project boxes (commons,
// wikisource, wiktionary and friends).
var sisterProjectTemplates = []string{
	"شقيقات ويكيميديا", "روابط شقيقة",
	"Commons", "Wikisource", "Wiktionary", "Wikiquote",
	"Wikibooks", "Wikinews", "Wikiversity", "Wikivoyage",
	"كومنز", "ويكي مصدر", "ويكاموس", "ويكي الاقتباس",
}

// wikidataKeywords appear in the rendered page when the registry link
// is present.
var wikidataKeywords = []string{
	"wikibase", "wikidata.org", "wikidata", "p-wikibase-otherprojects",
}

// sisterDomains count direct cross-project links in the page.
var sisterDomains = []string{
	"commons.wikimedia.org", "wikidata.org", "wikisource.org",
	"wiktionary.org", "wikiquote.org", "wikibooks.org", "wikinews.org",
}

// entityIDPatterns extract the registry entity identifier. Ordered from
// most to least specific.
var entityIDPatterns = []*regexp.Regexp{
	regexp.MustCompile(`wikidata\.org/entity/(Q\d+)`),
	regexp.MustCompile(`wikidata\.org/wiki/(Q\d+)`),
	regexp.MustCompile(`\b(Q\d{3,})\b`),
}

// AnalyzeIntegration scores cross-project connectivity on a 0-10 scale:
// the structured-data registry link, interwiki templates, and
// sister-project boxes and links.
func AnalyzeIntegration(doc *document.Document) *model.IntegrationResult {
	pageHTML, err := doc.Root().Html()
	if err != nil {
		pageHTML = ""
	}
	haystack := doc.Wikitext + "\n" + pageHTML

	details := model.IntegrationDetails{
		EntityID:       extractEntityID(haystack),
		InterwikiLinks: countTemplateUses(doc, interwikiTemplates),
		SisterBoxes:    countTemplateUses(doc, sisterProjectTemplates),
		TemplateHints:  matchedTemplates(doc, wikidataTemplates),
	}

	details.LinkedToRegistry = len(details.TemplateHints) > 0 || details.EntityID != ""
	if !details.LinkedToRegistry {
		for _, keyword := range wikidataKeywords {
			if strings.Contains(pageHTML, keyword) {
				details.LinkedToRegistry = true
				break
			}
		}
	}

	for _, domain := range sisterDomains {
		if strings.Contains(pageHTML, domain) {
			details.CrossProjectSignals++
		}
	}

	details.MissingSisterLinks = details.InterwikiLinks == 0 && details.SisterBoxes == 0

	return &model.IntegrationResult{
		Score:   integrationScore(details),
		Details: details,
		Notes:   integrationNotes(details),
	}
}

func extractEntityID(haystack string) string {
	for _, pattern := range entityIDPatterns {
		if m := pattern.FindStringSubmatch(haystack); m != nil {
			return m[1]
		}
	}
	return ""
}

// countTemplateUses counts transclusions of any of the named templates,
// combining wikitext occurrences with the parsed template list.
func countTemplateUses(doc *document.Document, names []string) int {
	count := 0
	for _, name := range names {
		pattern := regexp.MustCompile(`(?i)\{\{\s*` + regexp.QuoteMeta(name) + `\s*[|}]`)
		count += len(pattern.FindAllString(doc.Wikitext, -1))
	}
	if count > 0 {
		return count
	}
	for _, t := range doc.Templates {
		for _, name := range names {
			if strings.EqualFold(strings.TrimSpace(t), name) {
				count++
			}
		}
	}
	return count
}

func matchedTemplates(doc *document.Document, names []string) []string {
	matched := make([]string, 0)
	for _, name := range names {
		pattern := regexp.MustCompile(`(?i)\{\{\s*` + regexp.QuoteMeta(name) + `\s*[|}]`)
		if pattern.MatchString(doc.Wikitext) {
			matched = append(matched, name)
			continue
		}
		for _, t := range doc.Templates {
			if strings.EqualFold(strings.TrimSpace(t), name) {
				matched = append(matched, name)
				break
			}
		}
	}
	return matched
}

func integrationScore(details model.IntegrationDetails) float64 {
	score := 10.0

	if !details.LinkedToRegistry {
		score -= 4
	}
	if details.MissingSisterLinks {
		score -= 2
	}
	if details.SisterBoxes == 0 {
		score -= 1
	}
	if details.EntityID != "" {
		score += 1
	}
	if details.InterwikiLinks >= 3 {
		score += 1
	}
	if details.SisterBoxes >= 2 {
		score += 1
	}

	return clamp(score, 0, 10)
}

func integrationNotes(details model.IntegrationDetails) []string {
	notes := make([]string, 0)

	if !details.LinkedToRegistry {
		notes = append(notes, "article is not linked to the structured-data registry; link it to improve cross-project visibility")
	} else if details.EntityID != "" {
		notes = append(notes, fmt.Sprintf("article is linked to the structured-data registry (entity %s)", details.EntityID))
	}

	switch {
	case details.InterwikiLinks == 0:
		notes = append(notes, "no interwiki link templates; connect related terms to other language editions")
	case details.InterwikiLinks >= 3:
		notes = append(notes, fmt.Sprintf("good interwiki coverage (%d link templates)", details.InterwikiLinks))
	default:
		notes = append(notes, fmt.Sprintf("few interwiki link templates (%d); more connections help readers", details.InterwikiLinks))
	}

	switch {
	case details.SisterBoxes == 0:
		notes = append(notes, "no sister-project boxes; add links to related media, texts, or definitions")
	case details.SisterBoxes >= 2:
		notes = append(notes, fmt.Sprintf("good sister-project coverage (%d boxes)", details.SisterBoxes))
	default:
		notes = append(notes, fmt.Sprintf("few sister-project boxes (%d)", details.SisterBoxes))
	}

	score := integrationScore(details)
	switch {
	case score >= 8:
		notes = append(notes, "excellent cross-project integration")
	case score >= 5:
		notes = append(notes, "acceptable cross-project integration with room to improve")
	default:
		notes = append(notes, "weak cross-project integration; the article is poorly connected")
	}

	return notes
}
