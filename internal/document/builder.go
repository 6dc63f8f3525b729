package document

import (
	"errors"
	"net/url"
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"
)

// ErrNoDocument is returned when Build is called without article data.
// The fetch collaborator guarantees a rendered document; a nil input
// means the caller skipped it, and analyzing an empty shell would
// silently produce a meaningless score.
var ErrNoDocument = errors.New("document: no article data to analyze")

// SectionInfo is the section metadata delivered by the fetch layer,
// used as a fallback when the rendered tree carries no headings.
type SectionInfo struct {
	Heading string
	Level   int
}

// Input is the raw fetch output the builder consumes.
type Input struct {
	Title         string
	LeadWikitext  string
	HTML          string
	Wikitext      string
	Sections      []SectionInfo
	Images        []string
	ExternalLinks []string
	Categories    []string
	Templates     []string

	// GrammarRules is the compiled rule set. When empty, the built-in
	// default rules are used.
	GrammarRules []GrammarRule
}

// nonArticleSelectors matches the navigational, decorative, and
// metadata regions that never count as article content. The body tree
// is the rendered tree with these removed.
const nonArticleSelectors = ".infobox, .navbox, .vertical-navbox, .sidebar, " +
	".sistersitebox, .mbox-small, .metadata, .ambox, .tmbox, .catlinks, " +
	".noprint, .mw-authority-control, .navbox-styles, " +
	`table[role="navigation"], table[role="presentation"], .toc, .hatnote, ` +
	".dablink, .reflist, #coordinates"

// headingSelectors matches every section heading element.
const headingSelectors = "h2, h3, h4, h5, h6"

var (
	// referencesHeading matches headings that end the article body:
	// references, notes, and external links sections.
	referencesHeading = regexp.MustCompile(`(?i)مراجع|references|مصادر|ملاحظات|الهوامش|وصلات خارجية|external links`)

	// nonArticleNamespace matches link paths into namespaces that are
	// not articles: files, categories, project pages, templates, help,
	// and portals.
	nonArticleNamespace = regexp.MustCompile(`(?i)/(ملف|صورة|File|Image|تصنيف|Category|ويكيبيديا|Wikipedia|قالب|Template|مساعدة|Help|بوابة|Portal):`)

	// personTemplate matches biography infobox template names.
	personTemplate = regexp.MustCompile(`(?i)صندوق معلومات شخص|معلومات شخصية|Infobox person`)

	// Lead-cleaning patterns, applied in order.
	leadComment       = regexp.MustCompile(`(?s)<!--.*?-->`)
	leadTemplate      = regexp.MustCompile(`\{\{[^{}]*\}\}`)
	leadExternalLink  = regexp.MustCompile(`\[https?://[^\]]+\]`)
	leadInternalLink  = regexp.MustCompile(`\[\[(?:[^|\]]*\|)?([^\]]+)\]\]`)
	leadRefPair       = regexp.MustCompile(`(?is)<ref[^>]*>.*?</ref>`)
	leadRefSelfClose  = regexp.MustCompile(`(?i)<ref[^>]*/>`)
	leadHTMLTag       = regexp.MustCompile(`<[^>]+>`)
	leadEmphasis      = regexp.MustCompile(`'{2,5}([^']+)'{2,5}`)
	leadMagicWord     = regexp.MustCompile(`__[A-Z]+__`)
	collapseWhitespace = regexp.MustCompile(`\s+`)
)

// medicalKeywords classify an article as medical when any appears in
// the plain text. Medical prose commonly runs long clinical sentences,
// which exempts it from the long-sentence penalty.
var medicalKeywords = []string{"طب", "طبي", "مرض", "علاج", "دواء", "جراحة"}

// Build constructs the Document from one fetch result.
func Build(input *Input) (*Document, error) {
	if input == nil {
		return nil, ErrNoDocument
	}

	root, err := normalizeContent(input.HTML)
	if err != nil {
		return nil, err
	}

	d := &Document{
		Title:         input.Title,
		LeadWikitext:  input.LeadWikitext,
		Wikitext:      input.Wikitext,
		Images:        input.Images,
		ExternalLinks: input.ExternalLinks,
		Categories:    input.Categories,
		Templates:     input.Templates,
		GrammarRules:  input.GrammarRules,
		root:          root,
	}
	if len(d.GrammarRules) == 0 {
		d.GrammarRules = DefaultGrammarRules()
	}

	d.infobox = root.Find(".infobox").First()
	d.refs = root.Find("ol.references")
	d.body = buildBodyTree(root)

	d.PlainText = strings.TrimSpace(root.Text())
	d.ArticleLength = runeLen(d.BodyText())
	d.wordCount = len(strings.Fields(d.PlainText))

	d.CleanLead = cleanLeadWikitext(input.LeadWikitext)
	if d.CleanLead == "" {
		// Markup lead missing: fall back to the first body paragraph.
		d.CleanLead = strings.TrimSpace(d.body.Find("p").First().Text())
	}

	d.Sections = extractSections(root, input.Sections)
	d.internalLinks, d.redLinks = extractLinks(d.body)
	d.types = detectTypes(d)

	return d, nil
}

// normalizeContent parses the rendered HTML and returns the content
// root. MediaWiki wraps parser output in a .mw-parser-output div; when
// it is absent (fragments, tests) the whole body element serves as the
// root.
func normalizeContent(rawHTML string) (*goquery.Selection, error) {
	node, err := html.Parse(strings.NewReader(rawHTML))
	if err != nil {
		return nil, err
	}
	doc := goquery.NewDocumentFromNode(node)

	root := doc.Find(".mw-parser-output").First()
	if root.Length() == 0 {
		root = doc.Find("body").First()
	}
	return root, nil
}

// buildBodyTree clones the content root, strips non-article regions,
// and drops everything from the first references-like level-2 heading
// onward.
func buildBodyTree(root *goquery.Selection) *goquery.Selection {
	body := root.Clone()
	body.Find(nonArticleSelectors).Remove()

	refsHeading := body.Find("h2").FilterFunction(func(_ int, s *goquery.Selection) bool {
		return referencesHeading.MatchString(s.Text())
	}).First()

	if refsHeading.Length() > 0 {
		// Modern parser output wraps headings in .mw-heading divs;
		// removal must start at the wrapper or the following siblings
		// survive.
		target := refsHeading
		if parent := refsHeading.Parent(); parent.HasClass("mw-heading") {
			target = parent
		}
		target.NextAll().Remove()
		target.Remove()
	}

	return body
}

// cleanLeadWikitext strips wiki markup from the lead: comments, nested
// templates, link brackets (internal links keep their visible label),
// citation tags, remaining HTML tags, emphasis markers, and magic
// words, with whitespace collapsed.
func cleanLeadWikitext(wikitext string) string {
	if wikitext == "" {
		return ""
	}

	text := leadComment.ReplaceAllString(wikitext, "")

	// Templates nest; strip innermost-first until a fixed point.
	for {
		stripped := leadTemplate.ReplaceAllString(text, "")
		if stripped == text {
			break
		}
		text = stripped
	}

	text = leadExternalLink.ReplaceAllString(text, "")
	text = leadInternalLink.ReplaceAllString(text, "$1")
	text = leadRefPair.ReplaceAllString(text, "")
	text = leadRefSelfClose.ReplaceAllString(text, "")
	text = leadHTMLTag.ReplaceAllString(text, "")
	text = leadEmphasis.ReplaceAllString(text, "$1")
	text = leadMagicWord.ReplaceAllString(text, "")
	text = collapseWhitespace.ReplaceAllString(text, " ")

	return strings.TrimSpace(text)
}

// contentItem is one top-level region of the rendered tree during the
// section walk: either a heading or a run of content with its text
// length.
type contentItem struct {
	isHeading bool
	level     int
	heading   string
	textLen   int
}

// extractSections walks the rendered tree's top-level children and
// derives the ordered section list with approximate body lengths. A
// section's length runs to the next heading of equal or higher level,
// so parent sections include their subsections' text. When the tree
// carries no headings, the fetch metadata is used with zero lengths.
func extractSections(root *goquery.Selection, fallback []SectionInfo) []Section {
	items := make([]contentItem, 0)

	root.Children().Each(func(_ int, s *goquery.Selection) {
		if heading, level, ok := asHeading(s); ok {
			items = append(items, contentItem{isHeading: true, level: level, heading: heading})
			return
		}
		items = append(items, contentItem{textLen: runeLen(strings.TrimSpace(s.Text()))})
	})

	sections := make([]Section, 0)
	for i, item := range items {
		if !item.isHeading {
			continue
		}
		length := 0
		for _, rest := range items[i+1:] {
			if rest.isHeading && rest.level <= item.level {
				break
			}
			length += rest.textLen
		}
		sections = append(sections, Section{
			Heading: item.heading,
			Level:   item.level,
			Length:  length,
		})
	}

	if len(sections) == 0 && len(fallback) > 0 {
		for _, info := range fallback {
			sections = append(sections, Section{Heading: info.Heading, Level: info.Level})
		}
	}
	return sections
}

// asHeading reports whether the selection is a section heading, either
// directly or through a .mw-heading wrapper, and returns its text and
// level.
func asHeading(s *goquery.Selection) (string, int, bool) {
	h := s
	if !s.Is(headingSelectors) {
		if !s.HasClass("mw-heading") {
			return "", 0, false
		}
		h = s.Find(headingSelectors).First()
		if h.Length() == 0 {
			return "", 0, false
		}
	}

	tag := goquery.NodeName(h)
	if len(tag) != 2 || tag[0] != 'h' {
		return "", 0, false
	}
	level := int(tag[1] - '0')
	if level < 2 || level > 6 {
		return "", 0, false
	}
	return strings.TrimSpace(h.Text()), level, true
}

// extractLinks collects the deduplicated internal article links and the
// red (unresolved-target) links from the body tree.
func extractLinks(body *goquery.Selection) (internal, red []string) {
	seen := make(map[string]bool)
	internal = make([]string, 0)
	red = make([]string, 0)

	body.Find("a").Each(func(_ int, a *goquery.Selection) {
		href, ok := a.Attr("href")
		if !ok || href == "" {
			return
		}

		if a.HasClass("new") {
			red = append(red, href)
			return
		}

		isWikiLink := strings.HasPrefix(href, "/wiki/") ||
			strings.HasPrefix(href, "./") ||
			strings.Contains(href, "/w/index.php?title=")
		if !isWikiLink {
			return
		}

		// Arabic namespace prefixes arrive percent-encoded in hrefs;
		// decode before matching or the filter only catches Latin ones.
		decoded := href
		if unescaped, err := url.PathUnescape(href); err == nil {
			decoded = unescaped
		}
		if strings.Contains(decoded, ":") && nonArticleNamespace.MatchString(decoded) {
			return
		}

		if !seen[href] {
			seen[href] = true
			internal = append(internal, href)
		}
	})

	return internal, red
}

// detectTypes classifies the article by subject heuristics.
func detectTypes(d *Document) []ArticleType {
	types := make([]ArticleType, 0, 3)

	for _, keyword := range medicalKeywords {
		if strings.Contains(d.PlainText, keyword) {
			types = append(types, TypeMedical)
			break
		}
	}

	if d.infobox.Length() > 0 && strings.Contains(d.infobox.Text(), "إحداثيات") {
		types = append(types, TypeGeographic)
	}

	if d.HasTemplate(personTemplate) {
		types = append(types, TypeBiography)
	}

	return types
}
