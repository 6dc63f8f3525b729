package analyzer

import (
	"fmt"
	"regexp"

	"github.com/arwiki-tools/qualscan/internal/document"
	"github.com/arwiki-tools/qualscan/internal/model"
)

// maintenanceBannerSelectors matches rendered maintenance and cleanup
// banner regions.
const maintenanceBannerSelectors = ".ambox, .cleanup, .mw-maintenance, .metadata"

var (
	orphanTemplate  = regexp.MustCompile(`(?i)يتيم|orphan`)
	stubTemplate    = regexp.MustCompile(`(?i)بذرة|stub`)
	cleanupTemplate = regexp.MustCompile(`(?i)تنظيف|cleanup`)
)

// AnalyzeMaintenance scores maintenance banner load and category
// coverage on a 0-20 scale.
func AnalyzeMaintenance(doc *document.Document) *model.MaintenanceResult {
	details := model.MaintenanceDetails{
		Banners:            doc.Root().Find(maintenanceBannerSelectors).Length(),
		Categories:         len(doc.Categories),
		HasOrphanTemplate:  doc.HasTemplate(orphanTemplate),
		HasStubTemplate:    doc.HasTemplate(stubTemplate),
		HasCleanupTemplate: doc.HasTemplate(cleanupTemplate),
	}

	score := 0.0

	// Banner load (0-12).
	switch {
	case details.Banners == 0:
		score += 12
	case details.Banners == 1:
		score += 8
	case details.Banners == 2:
		score += 5
	case details.Banners <= 4:
		score += 2
	}

	// Categories (0-8).
	switch {
	case details.Categories >= 5:
		score += 8
	case details.Categories >= 3:
		score += 6
	case details.Categories >= 1:
		score += 4
	}

	notes := make([]string, 0)
	if details.Banners > 0 {
		notes = append(notes, fmt.Sprintf(
			"article carries %d maintenance banners; address the issues they describe",
			details.Banners))
	}

	if details.Categories == 0 {
		notes = append(notes, "article is uncategorized; add appropriate categories")
	} else if details.Categories < 3 {
		notes = append(notes, "few categories; add more specific ones")
	}

	if details.HasOrphanTemplate {
		notes = append(notes, "article is orphaned (no articles link to it); link it from related articles")
	}

	if details.HasStubTemplate {
		notes = append(notes, "article is tagged as a stub; consider expanding it")
	}

	return &model.MaintenanceResult{
		Score:   clamp(score, 0, 20),
		Details: details,
		Notes:   notes,
	}
}
