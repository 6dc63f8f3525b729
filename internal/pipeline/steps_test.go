package pipeline

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/arwiki-tools/qualscan/internal/fetch"
	"github.com/arwiki-tools/qualscan/internal/history"
	"github.com/arwiki-tools/qualscan/internal/report"
)

// testArticleHTML is a small rendered article with a heading and a
// reference list.
const testArticleHTML = `<div class="mw-parser-output">
<p>القاهرة هي عاصمة جمهورية مصر العربية وأكبر مدنها، وتقع على ضفاف نهر النيل.</p>
<h2>التاريخ</h2>
<p>أسست المدينة في العصر الفاطمي وتطورت عبر القرون حتى أصبحت مركزاً سياسياً وثقافياً كبيراً في المنطقة العربية بأكملها.</p>
<h2>مراجع</h2>
<ol class="references"><li id="cite_note-1">مرجع أول</li></ol>
</div>`

// newArticleServer starts a server answering action=parse calls with a
// small article.
func newArticleServer(t *testing.T) *httptest.Server {
	t.Helper()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		payload := map[string]any{
			"title":    "القاهرة",
			"wikitext": "'''القاهرة''' عاصمة [[مصر]].",
		}
		if r.URL.Query().Get("section") != "0" {
			payload["text"] = testArticleHTML
			payload["sections"] = []map[string]any{
				{"line": "التاريخ", "level": "2"},
				{"line": "مراجع", "level": "2"},
			}
		}

		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(map[string]any{"parse": payload}); err != nil {
			t.Errorf("failed to encode response: %v", err)
		}
	}))
	t.Cleanup(server.Close)

	return server
}

// newTestFetchClient returns a fetch client pointed at the test server.
func newTestFetchClient(t *testing.T) *fetch.Client {
	t.Helper()

	server := newArticleServer(t)
	return fetch.NewClient(server.Client(), fetch.WithAPIURL(server.URL))
}

// TestDefaultPipeline tests the full assessment flow end to end.
func TestDefaultPipeline(t *testing.T) {
	t.Parallel()

	t.Run("produces a final result", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		p := DefaultPipeline(
			newTestFetchClient(t),
			nil,
			WithPipelineSkipRulePage(true),
			WithPipelineWriter(report.NewJSONWriter(&buf)),
		)

		a := NewAssessment("القاهرة")
		if err := p.Execute(context.Background(), a); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if a.Result == nil {
			t.Fatal("expected a final result")
		}
		if a.Result.Title != "القاهرة" {
			t.Errorf("Title = %q, want القاهرة", a.Result.Title)
		}
		if a.Result.Total < 0 || a.Result.Total > 100 {
			t.Errorf("Total = %d, want within [0, 100]", a.Result.Total)
		}
		if buf.Len() == 0 {
			t.Error("expected the report written")
		}
	})

	t.Run("step ordering", func(t *testing.T) {
		t.Parallel()

		p := DefaultPipeline(newTestFetchClient(t), nil, WithPipelineSkipRulePage(true))

		want := []string{"fetch", "build", "analyze", "score"}
		names := p.StepNames()
		if len(names) != len(want) {
			t.Fatalf("StepNames() = %v, want %v", names, want)
		}
		for i, name := range want {
			if names[i] != name {
				t.Errorf("StepNames()[%d] = %q, want %q", i, names[i], name)
			}
		}
	})

	t.Run("save step persists the assessment", func(t *testing.T) {
		t.Parallel()

		store, err := history.Open(t.TempDir(), history.DefaultOptions())
		if err != nil {
			t.Fatalf("failed to open store: %v", err)
		}
		t.Cleanup(func() {
			if err := store.Close(); err != nil {
				t.Errorf("failed to close store: %v", err)
			}
		})

		p := DefaultPipeline(
			newTestFetchClient(t),
			nil,
			WithPipelineSkipRulePage(true),
			WithPipelineStore(store),
		)

		a := NewAssessment("القاهرة")
		if err := p.Execute(context.Background(), a); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		saved, err := store.GetLatestAssessment(context.Background(), "القاهرة")
		if err != nil {
			t.Fatalf("failed to read back assessment: %v", err)
		}
		if saved == nil || saved.Total != a.Result.Total {
			t.Errorf("saved = %+v, want total %d", saved, a.Result.Total)
		}
	})
}

// TestFetchStep tests fetch failure propagation.
func TestFetchStep(t *testing.T) {
	t.Parallel()

	t.Run("missing article fails the pipeline", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			w.Write([]byte(`{"error": {"code": "missingtitle", "info": "missing"}}`))
		}))
		t.Cleanup(server.Close)

		client := fetch.NewClient(server.Client(), fetch.WithAPIURL(server.URL))
		step := NewFetchStep(client, WithSkipRulePage(true))

		a := NewAssessment("لا وجود")
		if err := step.Do(context.Background(), a); !errors.Is(err, fetch.ErrArticleNotFound) {
			t.Errorf("Do() = %v, want ErrArticleNotFound", err)
		}
	})
}

// TestSaveStep tests the persistence step edge cases.
func TestSaveStep(t *testing.T) {
	t.Parallel()

	t.Run("nil store is a no-op", func(t *testing.T) {
		t.Parallel()

		step := NewSaveStep(nil)

		a := NewAssessment("القاهرة")
		if err := step.Do(context.Background(), a); err != nil {
			t.Errorf("Do() = %v, want nil", err)
		}
	})

	t.Run("nil result is a no-op", func(t *testing.T) {
		t.Parallel()

		store, err := history.Open(t.TempDir(), history.DefaultOptions())
		if err != nil {
			t.Fatalf("failed to open store: %v", err)
		}
		t.Cleanup(func() {
			if err := store.Close(); err != nil {
				t.Errorf("failed to close store: %v", err)
			}
		})

		step := NewSaveStep(store)

		a := NewAssessment("القاهرة")
		if err := step.Do(context.Background(), a); err != nil {
			t.Errorf("Do() = %v, want nil", err)
		}
	})
}

// TestReportStep tests report rendering edge cases.
func TestReportStep(t *testing.T) {
	t.Parallel()

	t.Run("nil result writes nothing", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		step := NewReportStep(report.NewTextWriter(&buf))

		a := NewAssessment("القاهرة")
		if err := step.Do(context.Background(), a); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if buf.Len() != 0 {
			t.Error("expected no output without a result")
		}
	})
}
