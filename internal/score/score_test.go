package score

import (
	"testing"

	"github.com/arwiki-tools/qualscan/internal/model"
)

// fullSet builds an analysis set with every slot filled and
// mid-range scores, used as the mutation base in the tests below.
func fullSet() *model.AnalysisSet {
	return &model.AnalysisSet{
		Structure: &model.StructureResult{
			Score: 24,
			Notes: []string{"structure note"},
		},
		References: &model.ReferenceResult{
			Score: 18,
			Details: model.ReferenceDetails{
				TotalRefs: 25,
				Types:     model.ReferenceTypes{Book: 5, Journal: 3, Web: 10, News: 2, Unknown: 5},
				Languages: model.ReferenceLanguages{Arabic: 20, English: 5},
				Bucket:    model.BucketBetween20And50,
			},
			Notes: []string{"reference note"},
		},
		Media:       &model.MediaResult{Score: 6, Notes: []string{"media note"}},
		Links:       &model.LinkResult{Score: 11, Notes: []string{"link note"}},
		Grammar:     &model.GrammarResult{Score: 4, Notes: []string{"grammar note"}},
		Maintenance: &model.MaintenanceResult{Score: 16, Notes: []string{"maintenance note"}},
		Language: &model.LanguageResult{
			Details: model.LanguageRecord{PunctuationScore: 100},
			Notes:   []string{"language note"},
		},
		Revision:    &model.RevisionResult{Score: 9, Notes: []string{"revision note"}},
		Integration: &model.IntegrationResult{Score: 7, Notes: []string{"integration note"}},
	}
}

func TestAggregate(t *testing.T) {
	t.Parallel()

	t.Run("weighted criteria sum to the total", func(t *testing.T) {
		t.Parallel()

		got := Aggregate("مقالة", fullSet())

		sum := 0.0
		for _, criterion := range model.WeightedCriteria {
			sum += got.Scores[criterion]
		}
		if rounded := int(sum + 0.5); rounded != got.Total {
			t.Errorf("sum of weighted subscores = %v, rounds to %d, Total = %d", sum, rounded, got.Total)
		}
	})

	t.Run("informational subscores stay outside the total", func(t *testing.T) {
		t.Parallel()

		base := Aggregate("مقالة", fullSet())

		boosted := fullSet()
		boosted.Revision.Score = 0
		boosted.Integration.Score = 0

		if got := Aggregate("مقالة", boosted); got.Total != base.Total {
			t.Errorf("Total changed from %d to %d when only informational scores moved",
				base.Total, got.Total)
		}
	})

	t.Run("aggregation is idempotent", func(t *testing.T) {
		t.Parallel()

		first := Aggregate("مقالة", fullSet())
		second := Aggregate("مقالة", fullSet())

		if first.Total != second.Total || first.Tier != second.Tier {
			t.Errorf("results differ: (%d, %v) vs (%d, %v)",
				first.Total, first.Tier, second.Total, second.Tier)
		}
		if len(first.Notes) != len(second.Notes) {
			t.Errorf("note counts differ: %d vs %d", len(first.Notes), len(second.Notes))
		}
		for i := range first.Notes {
			if first.Notes[i] != second.Notes[i] {
				t.Errorf("note %d differs: %q vs %q", i, first.Notes[i], second.Notes[i])
			}
		}
	})

	t.Run("total is clamped to the valid range", func(t *testing.T) {
		t.Parallel()

		maxed := fullSet()
		maxed.Structure.Score = 1000
		maxed.References.Score = 1000
		maxed.Maintenance.Score = 1000
		maxed.Links.Score = 1000
		maxed.Media.Score = 1000

		got := Aggregate("مقالة", maxed)
		if got.Total < 0 || got.Total > 100 {
			t.Errorf("Total = %d, want in [0,100]", got.Total)
		}
		for criterion, score := range got.Scores {
			if score < 0 || score > criterion.Weight() {
				t.Errorf("Scores[%s] = %v, want in [0,%v]", criterion, score, criterion.Weight())
			}
		}
	})

	t.Run("more raw points never lower the total", func(t *testing.T) {
		t.Parallel()

		base := Aggregate("مقالة", fullSet())

		improved := fullSet()
		improved.Structure.Score = 30
		improved.Maintenance.Score = 20

		if got := Aggregate("مقالة", improved); got.Total < base.Total {
			t.Errorf("Total dropped from %d to %d after raising raw scores", base.Total, got.Total)
		}
	})

	t.Run("nil slots contribute zero", func(t *testing.T) {
		t.Parallel()

		got := Aggregate("مقالة", &model.AnalysisSet{})

		if got.Total != 0 {
			t.Errorf("Total = %d, want 0 for an empty set", got.Total)
		}
		if got.Tier != model.TierStub {
			t.Errorf("Tier = %v, want %v", got.Tier, model.TierStub)
		}
		if len(got.Notes) != 0 {
			t.Errorf("Notes = %v, want none", got.Notes)
		}
	})

	t.Run("notes keep the fixed criterion order", func(t *testing.T) {
		t.Parallel()

		got := Aggregate("مقالة", fullSet())

		want := []string{
			"structure note", "reference note", "media note", "link note",
			"grammar note", "maintenance note", "language note",
			"revision note", "integration note",
		}
		if len(got.Notes) != len(want) {
			t.Fatalf("Notes = %v, want %v", got.Notes, want)
		}
		for i := range want {
			if got.Notes[i] != want[i] {
				t.Errorf("Notes[%d] = %q, want %q", i, got.Notes[i], want[i])
			}
		}
	})
}

func TestReferenceAdjusted(t *testing.T) {
	t.Parallel()

	t.Run("web-dominant middle bucket", func(t *testing.T) {
		t.Parallel()

		// Twelve web-only citations: one point off for the bucket, half a
		// point for web dominance, no type bonuses.
		result := &model.ReferenceResult{
			Score: 19,
			Details: model.ReferenceDetails{
				TotalRefs: 12,
				Types:     model.ReferenceTypes{Web: 12},
				Bucket:    model.BucketBetween10And20,
			},
		}

		if got := referenceAdjusted(result); got != 17.5 {
			t.Errorf("referenceAdjusted() = %v, want 17.5", got)
		}
	})

	t.Run("book and journal mix earns bonuses", func(t *testing.T) {
		t.Parallel()

		result := &model.ReferenceResult{
			Score: 20,
			Details: model.ReferenceDetails{
				TotalRefs: 30,
				Types:     model.ReferenceTypes{Book: 10, Journal: 8, Web: 5, News: 7},
				Languages: model.ReferenceLanguages{Arabic: 20, English: 10},
				Bucket:    model.BucketBetween20And50,
			},
		}

		// +1 book (capped), +1 journal (capped), +0.5 two languages.
		if got := referenceAdjusted(result); got != 22.5 {
			t.Errorf("referenceAdjusted() = %v, want 22.5", got)
		}
	})

	t.Run("incomplete citations are penalized with a cap", func(t *testing.T) {
		t.Parallel()

		result := &model.ReferenceResult{
			Score: 20,
			Details: model.ReferenceDetails{
				TotalRefs:         60,
				FlaggedIncomplete: 40,
				Types:             model.ReferenceTypes{Unknown: 60},
				Bucket:            model.BucketAbove50,
			},
		}

		// -2 incomplete (capped from 6), +0.5 large bucket.
		if got := referenceAdjusted(result); got != 18.5 {
			t.Errorf("referenceAdjusted() = %v, want 18.5", got)
		}
	})

	t.Run("wikidata citations add up to one point", func(t *testing.T) {
		t.Parallel()

		result := &model.ReferenceResult{
			Score: 15,
			Details: model.ReferenceDetails{
				TotalRefs:         25,
				WikidataCitations: 10,
				Types:             model.ReferenceTypes{Wikidata: 10, Unknown: 15},
				Bucket:            model.BucketBetween20And50,
			},
		}

		if got := referenceAdjusted(result); got != 16 {
			t.Errorf("referenceAdjusted() = %v, want 16", got)
		}
	})

	t.Run("result clamps to the scale", func(t *testing.T) {
		t.Parallel()

		result := &model.ReferenceResult{
			Score: 1,
			Details: model.ReferenceDetails{
				TotalRefs: 2,
				Types:     model.ReferenceTypes{Web: 2},
				Bucket:    model.BucketUnder10,
			},
		}

		if got := referenceAdjusted(result); got != 0 {
			t.Errorf("referenceAdjusted() = %v, want 0", got)
		}
	})
}

func TestLanguageScore(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		record model.LanguageRecord
		want   float64
	}{
		{
			name:   "clean prose with native punctuation",
			record: model.LanguageRecord{PunctuationScore: 100},
			want:   10,
		},
		{
			name: "machine translation deduction is capped",
			record: model.LanguageRecord{
				MachineTranslationSignals: 50,
				PunctuationScore:          100,
			},
			want: 8.5,
		},
		{
			name: "long sentences only penalized past five",
			record: model.LanguageRecord{
				LongSentences:    8,
				PunctuationScore: 100,
			},
			want: 9.9,
		},
		{
			name: "redundancy deduction",
			record: model.LanguageRecord{
				RedundantSentences: 4,
				PunctuationScore:   100,
			},
			want: 9.5,
		},
		{
			name: "everything at once clamps at zero",
			record: model.LanguageRecord{
				MachineTranslationSignals: 100,
				WeakStyleSignals:          100,
				GrammarViolations:         100,
				LongSentences:             100,
				EmptyParagraphs:           100,
				FillerWords:               100,
				PrepositionStarts:         100,
				NarrativeWeakness:         100,
				RedundantSentences:        100,
				PunctuationScore:          25,
			},
			want: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got := languageScore(&model.LanguageResult{Details: tt.record})
			if diff := got - tt.want; diff > 0.0001 || diff < -0.0001 {
				t.Errorf("languageScore() = %v, want %v", got, tt.want)
			}
		})
	}

	t.Run("nil result scores zero", func(t *testing.T) {
		t.Parallel()

		if got := languageScore(nil); got != 0 {
			t.Errorf("languageScore(nil) = %v, want 0", got)
		}
	})
}
