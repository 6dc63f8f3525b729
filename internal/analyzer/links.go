package analyzer

import (
	"fmt"

	"github.com/arwiki-tools/qualscan/internal/document"
	"github.com/arwiki-tools/qualscan/internal/model"
)

// AnalyzeLinks scores internal linking, external links, link density,
// and the red-link ratio on a 0-15 scale.
func AnalyzeLinks(doc *document.Document) *model.LinkResult {
	details := model.LinkDetails{
		InternalLinks: len(doc.InternalLinks()),
		RedLinks:      len(doc.RedLinks()),
		ExternalLinks: doc.Body().Find("a.external").Length(),
		WordCount:     doc.WordCount(),
	}
	if details.WordCount > 0 {
		details.Density = float64(details.InternalLinks) / float64(details.WordCount) * 100
	}

	score := 0.0
	switch {
	case details.InternalLinks >= 30:
		score += 10
	case details.InternalLinks >= 20:
		score += 8
	case details.InternalLinks >= 10:
		score += 6
	case details.InternalLinks >= 5:
		score += 4
	case details.InternalLinks >= 2:
		score += 2
	}

	if details.ExternalLinks >= 1 {
		score += 2
	}

	switch {
	case details.Density >= 1.5 && details.Density <= 5:
		score += 3
	case details.Density >= 0.5 && details.Density < 1.5:
		score += 2
	case details.Density >= 0.2:
		score += 1
	}

	totalLinks := details.InternalLinks + details.RedLinks
	redRatio := 0.0
	if totalLinks > 0 {
		redRatio = float64(details.RedLinks) / float64(totalLinks)
		switch {
		case redRatio > 0.4:
			score -= 4
		case redRatio > 0.2:
			score -= 2
		}
	}

	notes := make([]string, 0)
	if details.InternalLinks < 5 {
		notes = append(notes, "very few internal links; link the important terms")
	} else if details.InternalLinks < 10 && doc.ArticleLength >= 2000 {
		notes = append(notes, "fewer internal links than expected for an article this size")
	}

	if totalLinks > 0 && redRatio > 0.3 {
		notes = append(notes, fmt.Sprintf(
			"high red-link ratio (%.0f%%); create those pages or remove the links",
			redRatio*100))
	}

	if details.Density < 0.5 {
		notes = append(notes, "low link density; add more internal links")
	} else if details.Density > 7 {
		notes = append(notes, "very high link density; the article may be overlinked")
	}

	return &model.LinkResult{
		Score:   clamp(score, 0, 15),
		Details: details,
		Notes:   notes,
	}
}
