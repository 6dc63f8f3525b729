package report

import (
	"bytes"
	"encoding/json"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/arwiki-tools/qualscan/internal/model"
)

// createTestResult creates an assessment with sample data for testing.
func createTestResult() *model.FinalResult {
	return &model.FinalResult{
		Title: "القاهرة",
		Total: 78,
		Tier:  model.TierAdvanced,
		Scores: map[model.Criterion]float64{
			model.CriterionStructure:   20,
			model.CriterionReferences:  19.5,
			model.CriterionMaintenance: 12,
			model.CriterionLinks:       11,
			model.CriterionMedia:       6,
			model.CriterionLanguage:    9.5,
			model.CriterionRevision:    9,
			model.CriterionIntegration: 7,
		},
		Notes: []string{
			"missing important sections: وصلات خارجية",
			"2 bare external links; convert them into full citations",
		},
		Timestamp: time.Date(2026, 8, 30, 12, 0, 0, 0, time.UTC),
	}
}

// TestTextWriter tests the human-readable report writer.
func TestTextWriter(t *testing.T) {
	t.Parallel()

	t.Run("writes report header", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		w := NewTextWriter(&buf)

		if _, err := w.Write(createTestResult()); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		output := buf.String()
		if !strings.Contains(output, "ARTICLE QUALITY REPORT") {
			t.Error("expected output to contain header")
		}
		if !strings.Contains(output, "القاهرة") {
			t.Error("expected output to contain the article title")
		}
		if !strings.Contains(output, "78/100") {
			t.Error("expected output to contain the total score")
		}
		if !strings.Contains(output, "Advanced article") {
			t.Error("expected output to contain the tier label")
		}
	})

	t.Run("writes criterion breakdown", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		w := NewTextWriter(&buf)

		if _, err := w.Write(createTestResult()); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		output := buf.String()
		for _, label := range []string{"Structure:", "References:", "Maintenance:", "Links:", "Media:", "Language:"} {
			if !strings.Contains(output, label) {
				t.Errorf("expected output to contain %q", label)
			}
		}
		if !strings.Contains(output, "(80%)") {
			t.Error("expected output to contain the structure percentage")
		}
	})

	t.Run("hides informational subscores unless verbose", func(t *testing.T) {
		t.Parallel()

		var quiet, verbose bytes.Buffer
		if _, err := NewTextWriter(&quiet).Write(createTestResult()); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if _, err := NewTextWriter(&verbose, WithVerbose(true)).Write(createTestResult()); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if strings.Contains(quiet.String(), "Revision:") {
			t.Error("expected quiet output to omit the revision subscore")
		}
		if !strings.Contains(verbose.String(), "Revision:") {
			t.Error("expected verbose output to contain the revision subscore")
		}
	})

	t.Run("writes numbered notes", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		if _, err := NewTextWriter(&buf).Write(createTestResult()); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		output := buf.String()
		if !strings.Contains(output, "1. missing important sections") {
			t.Error("expected output to contain the first numbered note")
		}
		if !strings.Contains(output, "2. 2 bare external links") {
			t.Error("expected output to contain the second numbered note")
		}
	})

	t.Run("no notes", func(t *testing.T) {
		t.Parallel()

		result := createTestResult()
		result.Notes = nil

		var buf bytes.Buffer
		if _, err := NewTextWriter(&buf).Write(result); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if !strings.Contains(buf.String(), "No major notes") {
			t.Error("expected output to contain the no-notes line")
		}
	})

	t.Run("trims long note lists unless verbose", func(t *testing.T) {
		t.Parallel()

		result := createTestResult()
		result.Notes = make([]string, 14)
		for i := range result.Notes {
			result.Notes[i] = "note"
		}

		var buf bytes.Buffer
		if _, err := NewTextWriter(&buf).Write(result); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if !strings.Contains(buf.String(), "and 4 more") {
			t.Error("expected output to mention the trimmed notes")
		}
	})
}

// TestJSONWriter tests the JSON report writer.
func TestJSONWriter(t *testing.T) {
	t.Parallel()

	t.Run("writes valid JSON", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		if _, err := NewJSONWriter(&buf).Write(createTestResult()); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		var decoded model.FinalResult
		if err := json.Unmarshal(buf.Bytes(), &decoded); err != nil {
			t.Fatalf("output is not valid JSON: %v", err)
		}
		if decoded.Title != "القاهرة" || decoded.Total != 78 {
			t.Errorf("decoded = (%q, %d), want (القاهرة, 78)", decoded.Title, decoded.Total)
		}
	})

	t.Run("pretty print indents output", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		if _, err := NewJSONWriter(&buf, WithPrettyPrint()).Write(createTestResult()); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if !strings.Contains(buf.String(), "\n  \"") {
			t.Error("expected indented JSON output")
		}
	})

	t.Run("full writer wraps with version", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		if _, err := NewFullJSONWriter(&buf, "1.2.3").Write(createTestResult()); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		var wrapped JSONReport
		if err := json.Unmarshal(buf.Bytes(), &wrapped); err != nil {
			t.Fatalf("output is not valid JSON: %v", err)
		}
		if wrapped.Version != "1.2.3" {
			t.Errorf("Version = %q, want %q", wrapped.Version, "1.2.3")
		}
		if wrapped.Result == nil || wrapped.Result.Total != 78 {
			t.Errorf("Result = %+v, want total 78", wrapped.Result)
		}
	})

	t.Run("tier serializes as its label", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		if _, err := NewJSONWriter(&buf).Write(createTestResult()); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if !strings.Contains(buf.String(), `"tier":"advanced"`) {
			t.Error("expected tier to serialize as its string label")
		}
	})
}

// TestMarkdownWriter tests the Markdown report writer.
func TestMarkdownWriter(t *testing.T) {
	t.Parallel()

	t.Run("writes header and tables", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		if _, err := NewMarkdownWriter(&buf).Write(createTestResult()); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		output := buf.String()
		if !strings.Contains(output, "# Article Quality Report") {
			t.Error("expected output to contain the H1 header")
		}
		if !strings.Contains(output, "القاهرة") {
			t.Error("expected output to contain the article title")
		}
		if !strings.Contains(output, "Structure") {
			t.Error("expected output to contain the criteria table")
		}
		if !strings.Contains(output, "mermaid") {
			t.Error("expected output to contain the score pie chart")
		}
	})

	t.Run("zero score skips the chart", func(t *testing.T) {
		t.Parallel()

		result := createTestResult()
		result.Total = 0
		result.Tier = model.TierStub
		for k := range result.Scores {
			result.Scores[k] = 0
		}

		var buf bytes.Buffer
		if _, err := NewMarkdownWriter(&buf).Write(result); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if strings.Contains(buf.String(), "mermaid") {
			t.Error("expected no pie chart for a zero score")
		}
	})
}

// errWriter always fails, for MultiWriter error propagation tests.
type errWriter struct{}

func (errWriter) Write(*model.FinalResult) (int, error) {
	return 0, errors.New("write failed")
}

// TestMultiWriter tests the fan-out writer.
func TestMultiWriter(t *testing.T) {
	t.Parallel()

	t.Run("writes to all writers", func(t *testing.T) {
		t.Parallel()

		var text, jsonBuf bytes.Buffer
		mw := NewMultiWriter(NewTextWriter(&text), NewJSONWriter(&jsonBuf))

		if _, err := mw.Write(createTestResult()); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if text.Len() == 0 || jsonBuf.Len() == 0 {
			t.Error("expected both writers to receive output")
		}
	})

	t.Run("stops on first error", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		mw := NewMultiWriter(errWriter{}, NewTextWriter(&buf))

		if _, err := mw.Write(createTestResult()); err == nil {
			t.Error("expected an error from the failing writer")
		}
		if buf.Len() != 0 {
			t.Error("expected no output after the failing writer")
		}
	})
}
