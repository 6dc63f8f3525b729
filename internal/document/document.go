package document

import (
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/PuerkitoBio/goquery"
)

// ArticleType classifies an article by subject, driving type-specific
// checks such as the biography early-life section or the medical
// long-sentence exemption.
type ArticleType string

// Recognized article types.
const (
	TypeMedical    ArticleType = "medical"
	TypeGeographic ArticleType = "geographic"
	TypeBiography  ArticleType = "biography"
)

// Section is one article section in document order.
type Section struct {
	// Heading is the section heading text.
	Heading string

	// Level is the heading depth (2-6). Levels are not necessarily
	// contiguous.
	Level int

	// Length approximates the rune length of the section body, up to
	// the next heading of equal or higher level.
	Length int
}

// GrammarRule is one compiled error-detection rule.
type GrammarRule struct {
	// Pattern is the compiled detection pattern.
	Pattern *regexp.Regexp

	// Exclude suppresses a hit when it also matches at the same offset.
	// It stands in for negative lookahead, which the regexp engine does
	// not support.
	Exclude *regexp.Regexp

	// Description explains what the match indicates.
	Description string

	// Suggestion is the proposed correction, when the rule has one.
	Suggestion string
}

// FindAll returns up to limit substrings of text matched by the rule,
// honoring the exclusion pattern. A negative limit returns all matches.
func (r GrammarRule) FindAll(text string, limit int) []string {
	indexes := r.Pattern.FindAllStringIndex(text, -1)
	if len(indexes) == 0 {
		return nil
	}

	matches := make([]string, 0, len(indexes))
	for _, idx := range indexes {
		if r.Exclude != nil {
			if loc := r.Exclude.FindStringIndex(text[idx[0]:]); loc != nil && loc[0] == 0 {
				continue
			}
		}
		matches = append(matches, text[idx[0]:idx[1]])
		if limit >= 0 && len(matches) >= limit {
			break
		}
	}
	return matches
}

// Count returns the number of rule hits in text.
func (r GrammarRule) Count(text string) int {
	return len(r.FindAll(text, -1))
}

// Document is the normalized, queryable representation of one article.
// It is built once per analysis run and read-only afterwards; the
// rendered tree is owned exclusively by the Document and analyzers only
// query it.
type Document struct {
	// Title is the article title.
	Title string

	// LeadWikitext is the raw markup of the introductory section.
	LeadWikitext string

	// Wikitext is the raw markup of the whole article.
	Wikitext string

	// PlainText is the text projection of the full rendered tree.
	PlainText string

	// CleanLead is the lead text with templates, links, citations,
	// tags, and emphasis markers stripped and whitespace collapsed.
	CleanLead string

	// ArticleLength is the rune length of the body tree's text
	// projection. Every length-based threshold uses this value, not
	// the raw markup length.
	ArticleLength int

	// Sections lists the article sections in document order.
	Sections []Section

	// Images lists the article's image filenames.
	Images []string

	// ExternalLinks lists the article's external link targets.
	ExternalLinks []string

	// Categories lists the article's category names.
	Categories []string

	// Templates lists the template names invoked by the article.
	Templates []string

	// GrammarRules is the loaded rule set, compiled and validated.
	GrammarRules []GrammarRule

	root    *goquery.Selection
	body    *goquery.Selection
	refs    *goquery.Selection
	infobox *goquery.Selection

	internalLinks []string
	redLinks      []string
	types         []ArticleType
	wordCount     int
}

// Root returns the full rendered content tree.
func (d *Document) Root() *goquery.Selection {
	return d.root
}

// Body returns the filtered body tree: the rendered content with
// infoboxes, navigation boxes, sidebars, metadata boxes, the table of
// contents, hat-notes, and everything after the first references-like
// heading removed. Analyzers must count "article content" against this
// tree.
func (d *Document) Body() *goquery.Selection {
	return d.body
}

// ReferencesList returns the ordered-list region holding the rendered
// citations. The selection may be empty.
func (d *Document) ReferencesList() *goquery.Selection {
	return d.refs
}

// Infobox returns the first infobox region. The selection may be empty.
func (d *Document) Infobox() *goquery.Selection {
	return d.infobox
}

// InternalLinks returns the deduplicated internal article links found
// in the body tree. Links into non-article namespaces (files,
// categories, templates, help, portals) and unresolved targets are
// excluded.
func (d *Document) InternalLinks() []string {
	return d.internalLinks
}

// RedLinks returns the body links explicitly marked as pointing to
// pages that do not exist yet.
func (d *Document) RedLinks() []string {
	return d.redLinks
}

// WordCount returns the whitespace-separated word count of the plain
// text projection.
func (d *Document) WordCount() int {
	return d.wordCount
}

// Types returns the detected article types.
func (d *Document) Types() []ArticleType {
	return d.types
}

// HasType reports whether the article was classified as the given type.
func (d *Document) HasType(t ArticleType) bool {
	for _, have := range d.types {
		if have == t {
			return true
		}
	}
	return false
}

// HasTemplate reports whether any invoked template name matches the
// given pattern.
func (d *Document) HasTemplate(pattern *regexp.Regexp) bool {
	for _, t := range d.Templates {
		if pattern.MatchString(t) {
			return true
		}
	}
	return false
}

// HasSectionMatching reports whether any section heading matches the
// given pattern.
func (d *Document) HasSectionMatching(pattern *regexp.Regexp) bool {
	for _, s := range d.Sections {
		if pattern.MatchString(s.Heading) {
			return true
		}
	}
	return false
}

// BodyText returns the trimmed text projection of the body tree.
func (d *Document) BodyText() string {
	return strings.TrimSpace(d.body.Text())
}

// runeLen returns the rune count of s. Article text is Arabic, so byte
// lengths would overcount threefold.
func runeLen(s string) int {
	return utf8.RuneCountInString(s)
}
