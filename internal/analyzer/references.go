package analyzer

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/arwiki-tools/qualscan/internal/document"
	"github.com/arwiki-tools/qualscan/internal/model"
)

// Reference recency window. Years outside the accepted range are
// discarded as noise (OCR artifacts, page numbers).
const (
	publicationYearMin = 1900
	publicationYearMax = 2025
	recentYearMin      = 2015
)

// referenceTypePatterns classify citations by source kind. Unmatched
// citations fall into the unknown bucket so the buckets always sum to
// the canonical total.
var referenceTypePatterns = map[string][]*regexp.Regexp{
	"book": {
		regexp.MustCompile(`(?i)\{\{\s*استشهاد\s+بكتاب`),
		regexp.MustCompile(`(?i)\{\{\s*cite\s+book`),
		regexp.MustCompile(`(?i)ISBN[\s:-]*\d{9,13}`),
	},
	"journal": {
		regexp.MustCompile(`(?i)\{\{\s*استشهاد\s+بدورية`),
		regexp.MustCompile(`(?i)\{\{\s*استشهاد\s+بمجلة`),
		regexp.MustCompile(`(?i)\{\{\s*cite\s+journal`),
		regexp.MustCompile(`(?i)DOI\s*[:=]\s*10\.\d+`),
		regexp.MustCompile(`(?i)ISSN[\s:-]*\d{4}-?\d{3}[\dXx]`),
	},
	"news": {
		regexp.MustCompile(`(?i)\{\{\s*استشهاد\s+بخبر`),
		regexp.MustCompile(`(?i)\{\{\s*cite\s+news`),
		regexp.MustCompile(`(?i)bbc\.com|cnn\.com|reuters\.com|aljazeera\.|france24\.|dw\.com`),
	},
	"web": {
		regexp.MustCompile(`(?i)\{\{\s*استشهاد\s+ويب`),
		regexp.MustCompile(`(?i)\{\{\s*cite\s+web`),
	},
	"archive": {
		regexp.MustCompile(`(?i)\{\{\s*استشهاد\s+أرشيف`),
		regexp.MustCompile(`(?i)archive\.org|web\.archive\.org`),
	},
	"wikidata": {
		regexp.MustCompile(`(?i)\{\{\s*استشهاد\s+بويكي\s+بيانات`),
		regexp.MustCompile(`(?i)\{\{\s*cite\s+Q\d+`),
	},
}

// Country-code TLD lists for source-language estimation. A URL is
// classified at most once, in priority order ar, en, other.
var (
	arabicTLDs = []string{
		".sa", ".eg", ".ae", ".sy", ".jo", ".iq", ".kw", ".qa", ".bh", ".om",
		".ye", ".lb", ".ps", ".ma", ".tn", ".dz", ".ly", ".sd", ".mr",
	}
	englishTLDs = []string{".uk", ".us", ".au", ".nz", ".ca", ".ie"}
	otherTLDs   = []string{
		".fr", ".be", ".ch", ".de", ".at", ".es", ".mx", ".ar", ".co", ".cl", ".pe",
	}
)

// Publisher name lists for source-language estimation.
var (
	arabicPublishers = []string{
		"الجزيرة", "العربية", "bbc عربي", "سكاي نيوز عربية",
		"الشرق الأوسط", "الأهرام", "اليوم السابع", "الحياة",
		"العرب", "الخليج", "البيان", "الاتحاد", "الرياض",
	}
	englishPublishers = []string{
		"BBC", "CNN", "Reuters", "Guardian", "Telegraph",
		"Times", "Washington Post", "New York Times",
		"Nature", "Science", "Britannica",
	}
)

// reliableDomains is the fixed allow-list used for the reliability
// subscore.
var reliableDomains = []string{
	"britannica.com", "nature.com", "science.org", "nejm.org", "who.int",
	"archive.org", "jstor.org", "springer.com", "cambridge.org", "oxford",
	"bbc.com", "aljazeera.net",
}

var (
	refTag         = regexp.MustCompile(`(?i)<ref[\s>]`)
	namedRefTag    = regexp.MustCompile(`(?i)<ref\s+name\s*=\s*["'][^"']+["']`)
	repeatedRefTag = regexp.MustCompile(`(?i)<ref\s+name\s*=\s*["'][^"']+["']\s*/>`)

	citationTemplate = regexp.MustCompile(`(?i)\{\{\s*(cite|استشهاد)\s+([^}]+)\}\}`)
	citationTypeName = regexp.MustCompile(`(?i)\{\{\s*(?:cite|استشهاد)\s+(\S+)`)

	publicationYear = regexp.MustCompile(`(?i)(year|سنة|date|تاريخ)\s*=\s*[^|}]*?(\d{4})`)
	languageField   = regexp.MustCompile(`(?i)(language|لغة)\s*=\s*([^|}\n]+)`)
	rawURL          = regexp.MustCompile(`(?i)https?://[^\s<\]"']+`)

	referencesSectionName = regexp.MustCompile(`(?i)مراجع|references|مصادر|ملاحظات|الهوامش`)

	citeTitleField     = regexp.MustCompile(`(?i)(title|عنوان)\s*=`)
	citeAuthorField    = regexp.MustCompile(`(?i)(author|مؤلف|last|الأخير)\s*=`)
	citeDateField      = regexp.MustCompile(`(?i)(date|تاريخ|year|سنة)\s*=`)
	citeURLField       = regexp.MustCompile(`(?i)(url|مسار)\s*=`)
	citePublisherField = regexp.MustCompile(`(?i)(publisher|ناشر|work|عمل)\s*=`)

	// citationStructures strips every citation construct before bare
	// URLs are counted.
	citationStructures = []*regexp.Regexp{
		regexp.MustCompile(`(?is)<ref[^>]*>.*?</ref>`),
		regexp.MustCompile(`(?i)<ref[^>]*/>`),
		regexp.MustCompile(`(?i)\{\{\s*reflist[^}]*\}\}`),
		regexp.MustCompile(`\{\{\s*مراجع[^}]*\}\}`),
		regexp.MustCompile(`(?i)<references\s*/?>`),
		regexp.MustCompile(`(?i)\{\{\s*cite[^}]*\}\}`),
		regexp.MustCompile(`\{\{\s*استشهاد[^}]*\}\}`),
		regexp.MustCompile(`(?i)\{\{\s*web\s+citation[^}]*\}\}`),
	}
)

// AnalyzeReferences scores sourcing on a 0-25 scale: citation count,
// completeness, recency, and reliability, with penalties for bare URLs
// and a missing references section. The type, language, and bucket
// classifications feed the aggregator's layered adjustments.
func AnalyzeReferences(doc *document.Document) *model.ReferenceResult {
	details := collectReferenceDetails(doc)

	return &model.ReferenceResult{
		Score:   referenceScore(details),
		Details: details,
		Notes:   referenceNotes(details),
	}
}

func collectReferenceDetails(doc *document.Document) model.ReferenceDetails {
	wikitext := doc.Wikitext

	// Cross-check the citation-tag count against the visible list and
	// take the larger; unclosed markup undercounts tags, missing
	// reflist markup undercounts items.
	tagCount := len(refTag.FindAllString(wikitext, -1))
	listCount := doc.ReferencesList().Find("li").Length()

	details := model.ReferenceDetails{
		TotalRefs:            max(tagCount, listCount),
		NamedRefs:            len(namedRefTag.FindAllString(wikitext, -1)),
		RepeatedRefs:         len(repeatedRefTag.FindAllString(wikitext, -1)),
		BareURLs:             countBareURLs(wikitext),
		HasReferencesSection: doc.HasSectionMatching(referencesSectionName),
		ReliableSources:      countReliableSources(wikitext),
		WikidataCitations:    countWikidataCitations(wikitext),
	}

	citations := citationTemplate.FindAllString(wikitext, -1)
	for _, cite := range citations {
		essential := 0
		for _, field := range []*regexp.Regexp{citeTitleField, citeAuthorField, citeDateField} {
			if field.MatchString(cite) {
				essential++
			}
		}
		if essential >= 2 {
			details.CompleteCitations++
		} else {
			details.IncompleteCitations++
		}

		missing := missingCitationFields(cite)
		if len(missing) >= 2 {
			details.FlaggedIncomplete++
			if len(details.IncompleteExamples) < 3 {
				details.IncompleteExamples = append(details.IncompleteExamples,
					model.IncompleteCitation{
						Type:    citationType(cite),
						Missing: missing,
						Snippet: truncateRunes(cite, 80),
					})
			}
		}
	}

	details.AllYears, details.RecentYears = extractPublicationYears(wikitext)
	details.Types = classifyReferenceTypes(wikitext, details.TotalRefs)
	details.Languages = detectReferenceLanguages(wikitext)
	details.Bucket = bucketReferenceCount(details.TotalRefs)

	return details
}

func countBareURLs(wikitext string) int {
	stripped := wikitext
	for _, pattern := range citationStructures {
		stripped = pattern.ReplaceAllString(stripped, "")
	}
	return len(rawURL.FindAllString(stripped, -1))
}

func countReliableSources(wikitext string) int {
	count := 0
	lower := strings.ToLower(wikitext)
	for _, domain := range reliableDomains {
		count += strings.Count(lower, domain)
	}
	return count
}

func countWikidataCitations(wikitext string) int {
	count := 0
	for _, pattern := range referenceTypePatterns["wikidata"] {
		count += len(pattern.FindAllString(wikitext, -1))
	}
	return count
}

func missingCitationFields(cite string) []string {
	missing := make([]string, 0, 4)
	if !citeTitleField.MatchString(cite) {
		missing = append(missing, "title")
	}
	if !citePublisherField.MatchString(cite) {
		missing = append(missing, "publisher")
	}
	if !citeDateField.MatchString(cite) {
		missing = append(missing, "date")
	}
	if !citeURLField.MatchString(cite) {
		missing = append(missing, "url")
	}
	return missing
}

func citationType(cite string) string {
	if m := citationTypeName.FindStringSubmatch(cite); m != nil {
		return m[1]
	}
	return "unknown"
}

func extractPublicationYears(wikitext string) (all, recent int) {
	for _, m := range publicationYear.FindAllStringSubmatch(wikitext, -1) {
		year, err := strconv.Atoi(m[2])
		if err != nil || year < publicationYearMin || year > publicationYearMax {
			continue
		}
		all++
		if year >= recentYearMin {
			recent++
		}
	}
	return all, recent
}

func classifyReferenceTypes(wikitext string, totalRefs int) model.ReferenceTypes {
	counts := make(map[string]int, len(referenceTypePatterns))
	for kind, patterns := range referenceTypePatterns {
		for _, pattern := range patterns {
			counts[kind] += len(pattern.FindAllString(wikitext, -1))
		}
	}

	types := model.ReferenceTypes{
		Book:     counts["book"],
		Journal:  counts["journal"],
		News:     counts["news"],
		Web:      counts["web"],
		Archive:  counts["archive"],
		Wikidata: counts["wikidata"],
	}
	types.Unknown = max(0, totalRefs-types.Classified())
	return types
}

func detectReferenceLanguages(wikitext string) model.ReferenceLanguages {
	var langs model.ReferenceLanguages

	for _, m := range languageField.FindAllStringSubmatch(wikitext, -1) {
		value := strings.ToLower(strings.TrimSpace(m[2]))
		switch {
		case strings.Contains(value, "arabic") || strings.Contains(value, "عرب") || value == "ar":
			langs.Arabic++
		case strings.Contains(value, "english") || strings.Contains(value, "إنجليزي") || value == "en":
			langs.English++
		default:
			langs.Other++
		}
	}

	for _, publisher := range arabicPublishers {
		langs.Arabic += strings.Count(wikitext, publisher)
	}
	for _, publisher := range englishPublishers {
		langs.English += strings.Count(wikitext, publisher)
	}

	for _, url := range rawURL.FindAllString(wikitext, -1) {
		switch {
		case containsAnyTLD(url, arabicTLDs):
			langs.Arabic++
		case containsAnyTLD(url, englishTLDs):
			langs.English++
		case containsAnyTLD(url, otherTLDs):
			langs.Other++
		}
	}

	return langs
}

func containsAnyTLD(url string, tlds []string) bool {
	for _, tld := range tlds {
		if strings.Contains(url, tld) {
			return true
		}
	}
	return false
}

func bucketReferenceCount(total int) model.CountBucket {
	switch {
	case total < 10:
		return model.BucketUnder10
	case total <= 20:
		return model.BucketBetween10And20
	case total <= 50:
		return model.BucketBetween20And50
	default:
		return model.BucketAbove50
	}
}

func referenceScore(details model.ReferenceDetails) float64 {
	score := 0.0

	// Citation count (0-15).
	switch {
	case details.TotalRefs == 0:
	case details.TotalRefs == 1:
		score += 3
	case details.TotalRefs <= 3:
		score += 7
	case details.TotalRefs <= 7:
		score += 11
	case details.TotalRefs <= 15:
		score += 14
	default:
		score += 15
	}

	// Completeness ratio (0-4).
	if total := details.CompleteCitations + details.IncompleteCitations; total > 0 {
		switch ratio := float64(details.CompleteCitations) / float64(total); {
		case ratio >= 0.8:
			score += 4
		case ratio >= 0.6:
			score += 3
		case ratio >= 0.4:
			score += 2
		default:
			score += 1
		}
	}

	// Recency (0-3).
	switch {
	case details.RecentYears >= 5:
		score += 3
	case details.RecentYears >= 3:
		score += 2
	case details.RecentYears >= 1:
		score += 1
	}

	// Reliability (0-3).
	switch {
	case details.ReliableSources >= 5:
		score += 3
	case details.ReliableSources >= 2:
		score += 2
	case details.ReliableSources >= 1:
		score += 1
	}

	if details.BareURLs > 0 {
		score -= min(6.0, float64(details.BareURLs)*2)
	}

	if !details.HasReferencesSection && details.TotalRefs > 0 {
		score -= 2
	}

	return clamp(score, 0, 25)
}

func referenceNotes(details model.ReferenceDetails) []string {
	notes := make([]string, 0)

	switch {
	case details.TotalRefs == 0:
		notes = append(notes, "article has no references; add reliable sources to support the content")
	case details.TotalRefs < 3:
		notes = append(notes, "very few references; add more reliable sources")
	case details.TotalRefs < 7:
		notes = append(notes, "reference count is acceptable but could be improved with additional sources")
	}

	if details.BareURLs > 0 {
		notes = append(notes, fmt.Sprintf(
			"%d bare external links; convert them into full citations", details.BareURLs))
	}

	if details.IncompleteCitations > 0 {
		notes = append(notes, fmt.Sprintf(
			"%d incomplete citation templates; fill in the essential fields (title, author, date)",
			details.IncompleteCitations))
	}

	if !details.HasReferencesSection && details.TotalRefs > 0 {
		notes = append(notes, `create a dedicated references section named "مراجع" or "مصادر"`)
	}

	if details.RecentYears == 0 && details.TotalRefs > 0 {
		notes = append(notes, fmt.Sprintf(
			"no recent sources (%d-%d); update the sources where possible",
			recentYearMin, publicationYearMax))
	}

	return notes
}
