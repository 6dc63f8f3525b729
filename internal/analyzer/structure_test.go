package analyzer

import (
	"strings"
	"testing"

	"github.com/arwiki-tools/qualscan/internal/document"
)

func TestAnalyzeStructure(t *testing.T) {
	t.Parallel()

	t.Run("stub article", func(t *testing.T) {
		t.Parallel()

		doc := mustBuild(t, &document.Input{
			Title:        "بذرة",
			LeadWikitext: "جملة واحدة قصيرة عن الموضوع.",
			HTML:         "<p>جملة واحدة قصيرة عن الموضوع.</p>",
		})

		got := AnalyzeStructure(doc)

		if !got.Details.IsStub {
			t.Error("IsStub = false, want true for a one-paragraph article")
		}
		if got.Score > 10 {
			t.Errorf("Score = %v, want at most 10 for a stub", got.Score)
		}
	})

	t.Run("developed article reaches the top section band", func(t *testing.T) {
		t.Parallel()

		lead, html := developedArticleHTML()
		doc := mustBuild(t, &document.Input{
			Title:        "مدينة",
			LeadWikitext: lead,
			HTML:         html,
		})

		got := AnalyzeStructure(doc)

		if h2 := got.Details.Sections.LevelCounts[2]; h2 != 9 {
			t.Errorf("LevelCounts[2] = %d, want 9", h2)
		}
		if !got.Details.Lead.OptimalLength {
			t.Errorf("Lead.OptimalLength = false, want true (lead is %.1f%% of the article)",
				got.Details.Lead.PercentOfArticle)
		}
		if !got.Details.Balanced {
			t.Errorf("Balanced = false: %s", got.Details.BalanceIssue)
		}
		if len(got.Details.MissingSections) != 0 {
			t.Errorf("MissingSections = %v, want none", got.Details.MissingSections)
		}
		if got.Score < 24 || got.Score > 30 {
			t.Errorf("Score = %v, want in [24,30]", got.Score)
		}
	})

	t.Run("empty document earns no lead points", func(t *testing.T) {
		t.Parallel()

		doc := mustBuild(t, &document.Input{Title: "فارغة", HTML: "<p></p>"})

		got := AnalyzeStructure(doc)

		if got.Details.Lead.OptimalLength {
			t.Error("Lead.OptimalLength = true for an empty document")
		}
		if got.Score > 6 {
			t.Errorf("Score = %v, want at most 6 for an empty document", got.Score)
		}
	})

	t.Run("empty sections are penalized", func(t *testing.T) {
		t.Parallel()

		body := strings.Repeat("نص طويل بما يكفي ليتجاوز عتبة المقالة القصيرة في هذا الاختبار. ", 45)
		html := "<p>" + body + "</p>" +
			"<h2>التاريخ</h2><p>" + body + "</p>" +
			"<h2>قسم فارغ</h2><p>نص</p>" +
			"<h2>قسم فارغ آخر</h2><p>نص</p>"

		doc := mustBuild(t, &document.Input{Title: "مقالة", HTML: html})

		got := AnalyzeStructure(doc)

		if n := len(got.Details.EmptySections); n != 2 {
			t.Errorf("EmptySections = %v, want 2 entries", got.Details.EmptySections)
		}
	})

	t.Run("score stays within bounds", func(t *testing.T) {
		t.Parallel()

		// A document engineered to trip every penalty at once.
		longSentence := strings.Repeat("كلمة ", 60)
		html := "<p>" + longSentence + "</p>" +
			"<h2>أ</h2><p>ن</p><h2>ب</h2><p>ن</p><h2>ج</h2><p>ن</p>" +
			"<h2>د</h2><p>ن</p><h2>ه</h2><p>ن</p><h2>و</h2><p>ن</p>"

		doc := mustBuild(t, &document.Input{
			Title:        "مقالة",
			LeadWikitext: longSentence,
			HTML:         html,
		})

		got := AnalyzeStructure(doc)

		if got.Score < 0 || got.Score > 30 {
			t.Errorf("Score = %v, want in [0,30]", got.Score)
		}
	})
}
