package history

import (
	"context"
	"testing"
	"time"

	"github.com/arwiki-tools/qualscan/internal/model"
)

// openTestStore creates a store in a temporary directory.
func openTestStore(t *testing.T) *Store {
	t.Helper()

	store, err := Open(t.TempDir(), DefaultOptions())
	if err != nil {
		t.Fatalf("failed to open store: %v", err)
	}
	t.Cleanup(func() {
		if err := store.Close(); err != nil {
			t.Errorf("failed to close store: %v", err)
		}
	})

	return store
}

// testAssessment builds a result with the given title and total.
func testAssessment(title string, total int) *model.FinalResult {
	return &model.FinalResult{
		Title: title,
		Total: total,
		Tier:  model.TierFor(total),
		Scores: map[model.Criterion]float64{
			model.CriterionStructure: 20,
		},
		Notes:     []string{"missing important sections: مراجع"},
		Timestamp: time.Date(2026, 8, 30, 12, 0, 0, 0, time.UTC),
	}
}

// TestOpen tests store creation behavior.
func TestOpen(t *testing.T) {
	t.Parallel()

	t.Run("creates the database", func(t *testing.T) {
		t.Parallel()

		store := openTestStore(t)
		if store.dbPath == "" {
			t.Error("expected a database path")
		}
	})

	t.Run("missing database without create", func(t *testing.T) {
		t.Parallel()

		opts := DefaultOptions()
		opts.CreateIfNotExists = false

		if _, err := Open(t.TempDir(), opts); err == nil {
			t.Error("expected an error for a missing database")
		}
	})
}

// TestSaveAndGetAssessment tests the save and latest-retrieval round trip.
func TestSaveAndGetAssessment(t *testing.T) {
	t.Parallel()

	t.Run("round trip", func(t *testing.T) {
		t.Parallel()

		store := openTestStore(t)
		ctx := context.Background()

		want := testAssessment("القاهرة", 78)
		if err := store.SaveAssessment(ctx, want); err != nil {
			t.Fatalf("failed to save assessment: %v", err)
		}

		got, err := store.GetLatestAssessment(ctx, "القاهرة")
		if err != nil {
			t.Fatalf("failed to get assessment: %v", err)
		}
		if got == nil {
			t.Fatal("expected an assessment, got nil")
		}
		if got.Title != want.Title || got.Total != want.Total || got.Tier != want.Tier {
			t.Errorf("got = (%q, %d, %v), want (%q, %d, %v)",
				got.Title, got.Total, got.Tier, want.Title, want.Total, want.Tier)
		}
		if len(got.Notes) != 1 || got.Notes[0] != want.Notes[0] {
			t.Errorf("Notes = %v, want %v", got.Notes, want.Notes)
		}
	})

	t.Run("latest wins", func(t *testing.T) {
		t.Parallel()

		store := openTestStore(t)
		ctx := context.Background()

		if err := store.SaveAssessment(ctx, testAssessment("دمشق", 45)); err != nil {
			t.Fatalf("failed to save assessment: %v", err)
		}
		if err := store.SaveAssessment(ctx, testAssessment("دمشق", 62)); err != nil {
			t.Fatalf("failed to save assessment: %v", err)
		}

		got, err := store.GetLatestAssessment(ctx, "دمشق")
		if err != nil {
			t.Fatalf("failed to get assessment: %v", err)
		}
		if got == nil || got.Total != 62 {
			t.Errorf("got = %+v, want total 62", got)
		}
	})

	t.Run("never assessed", func(t *testing.T) {
		t.Parallel()

		store := openTestStore(t)

		got, err := store.GetLatestAssessment(context.Background(), "لا وجود")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if got != nil {
			t.Errorf("got = %+v, want nil", got)
		}
	})
}

// TestGetAssessmentHistory tests full-history retrieval.
func TestGetAssessmentHistory(t *testing.T) {
	t.Parallel()

	store := openTestStore(t)
	ctx := context.Background()

	for _, total := range []int{30, 55, 70} {
		if err := store.SaveAssessment(ctx, testAssessment("حلب", total)); err != nil {
			t.Fatalf("failed to save assessment: %v", err)
		}
	}
	if err := store.SaveAssessment(ctx, testAssessment("بغداد", 80)); err != nil {
		t.Fatalf("failed to save assessment: %v", err)
	}

	history, err := store.GetAssessmentHistory(ctx, "حلب")
	if err != nil {
		t.Fatalf("failed to get history: %v", err)
	}
	if len(history) != 3 {
		t.Fatalf("len(history) = %d, want 3", len(history))
	}
	if history[0].Total != 70 {
		t.Errorf("history[0].Total = %d, want 70 (newest first)", history[0].Total)
	}
}

// TestListAssessedArticles tests the distinct title listing.
func TestListAssessedArticles(t *testing.T) {
	t.Parallel()

	store := openTestStore(t)
	ctx := context.Background()

	for _, title := range []string{"بغداد", "حلب", "بغداد"} {
		if err := store.SaveAssessment(ctx, testAssessment(title, 50)); err != nil {
			t.Fatalf("failed to save assessment: %v", err)
		}
	}

	titles, err := store.ListAssessedArticles(ctx)
	if err != nil {
		t.Fatalf("failed to list articles: %v", err)
	}
	if len(titles) != 2 {
		t.Fatalf("len(titles) = %d, want 2", len(titles))
	}
	if titles[0] != "بغداد" || titles[1] != "حلب" {
		t.Errorf("titles = %v, want sorted distinct titles", titles)
	}
}

// TestGetHistoryMetadata tests the summary listing.
func TestGetHistoryMetadata(t *testing.T) {
	t.Parallel()

	store := openTestStore(t)
	ctx := context.Background()

	if err := store.SaveAssessment(ctx, testAssessment("عمان", 85)); err != nil {
		t.Fatalf("failed to save assessment: %v", err)
	}

	metas, err := store.GetHistoryMetadata(ctx, "عمان")
	if err != nil {
		t.Fatalf("failed to get metadata: %v", err)
	}
	if len(metas) != 1 {
		t.Fatalf("len(metas) = %d, want 1", len(metas))
	}

	meta := metas[0]
	if meta.Title != "عمان" || meta.Total != 85 || meta.Tier != "good" {
		t.Errorf("meta = %+v, want (عمان, 85, good)", meta)
	}
	if meta.Timestamp.IsZero() {
		t.Error("expected a parsed timestamp")
	}
}
