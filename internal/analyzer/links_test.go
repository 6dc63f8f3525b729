package analyzer

import (
	"fmt"
	"strings"
	"testing"

	"github.com/PuerkitoBio/goquery"

	"github.com/arwiki-tools/qualscan/internal/document"
)

func TestAnalyzeLinks(t *testing.T) {
	t.Parallel()

	t.Run("well linked article", func(t *testing.T) {
		t.Parallel()

		var b strings.Builder
		b.WriteString("<p>" + strings.Repeat("كلمة ", 300))
		for i := 0; i < 12; i++ {
			fmt.Fprintf(&b, `<a href="/wiki/%d">وصلة</a> `, i)
		}
		b.WriteString(`<a href="/wiki/غير_موجودة" class="new">حمراء</a>`)
		b.WriteString(`<a href="https://example.com" class="external">خارجية</a>`)
		b.WriteString("</p>")

		doc := mustBuild(t, &document.Input{Title: "مقالة", HTML: b.String()})

		got := AnalyzeLinks(doc)

		if got.Details.InternalLinks != 12 {
			t.Errorf("InternalLinks = %d, want 12", got.Details.InternalLinks)
		}
		if got.Details.RedLinks != 1 {
			t.Errorf("RedLinks = %d, want 1", got.Details.RedLinks)
		}
		if got.Details.ExternalLinks != 1 {
			t.Errorf("ExternalLinks = %d, want 1", got.Details.ExternalLinks)
		}
		if got.Score != 11 {
			t.Errorf("Score = %v, want 11", got.Score)
		}
	})

	t.Run("unlinked article", func(t *testing.T) {
		t.Parallel()

		doc := mustBuild(t, &document.Input{Title: "مقالة", HTML: "<p>نص بلا وصلات داخلية</p>"})

		got := AnalyzeLinks(doc)

		if got.Score != 0 {
			t.Errorf("Score = %v, want 0", got.Score)
		}
		if len(got.Notes) == 0 {
			t.Error("Notes is empty, want a few-links note")
		}
	})

	t.Run("high red-link ratio is penalized", func(t *testing.T) {
		t.Parallel()

		var b strings.Builder
		b.WriteString("<p>" + strings.Repeat("كلمة ", 300))
		for i := 0; i < 10; i++ {
			fmt.Fprintf(&b, `<a href="/wiki/أ%d">وصلة</a> `, i)
		}
		for i := 0; i < 8; i++ {
			fmt.Fprintf(&b, `<a href="/wiki/ب%d" class="new">حمراء</a> `, i)
		}
		b.WriteString("</p>")

		withRed := AnalyzeLinks(mustBuild(t, &document.Input{Title: "أ", HTML: b.String()}))

		if ratio := float64(withRed.Details.RedLinks) /
			float64(withRed.Details.RedLinks+withRed.Details.InternalLinks); ratio <= 0.4 {
			t.Fatalf("test fixture red ratio = %v, want above 0.4", ratio)
		}
		noteFound := false
		for _, n := range withRed.Notes {
			if strings.Contains(n, "red-link") {
				noteFound = true
			}
		}
		if !noteFound {
			t.Errorf("Notes = %v, want a red-link note", withRed.Notes)
		}
	})

	t.Run("density uses the goquery word count", func(t *testing.T) {
		t.Parallel()

		doc := mustBuild(t, &document.Input{
			Title: "مقالة",
			HTML:  `<p>` + strings.Repeat("كلمة ", 100) + `<a href="/wiki/مثال">وصلة</a></p>`,
		})

		got := AnalyzeLinks(doc)

		if got.Details.WordCount < 100 {
			t.Errorf("WordCount = %d, want at least 100", got.Details.WordCount)
		}
		if got.Details.Density <= 0 {
			t.Errorf("Density = %v, want positive", got.Details.Density)
		}
	})

	t.Run("score stays within bounds", func(t *testing.T) {
		t.Parallel()

		var b strings.Builder
		b.WriteString("<p>قليل من الكلمات ")
		for i := 0; i < 60; i++ {
			fmt.Fprintf(&b, `<a href="/wiki/ج%d">وصلة</a> `, i)
		}
		b.WriteString(`<a href="https://example.com" class="external">خارجية</a></p>`)

		got := AnalyzeLinks(mustBuild(t, &document.Input{Title: "مقالة", HTML: b.String()}))

		if got.Score < 0 || got.Score > 15 {
			t.Errorf("Score = %v, want in [0,15]", got.Score)
		}
	})
}

// Exercising goquery directly documents the selector the analyzer
// relies on for external links.
func TestExternalLinkSelector(t *testing.T) {
	t.Parallel()

	sel, err := goquery.NewDocumentFromReader(strings.NewReader(
		`<p><a class="external" href="https://a.example">أ</a><a href="/wiki/ب">ب</a></p>`))
	if err != nil {
		t.Fatalf("NewDocumentFromReader() error = %v", err)
	}
	if n := sel.Find("a.external").Length(); n != 1 {
		t.Errorf("a.external matches = %d, want 1", n)
	}
}
