package pipeline

import (
	"context"
	"errors"
	"sync"
	"testing"
)

// titleStep records the title it saw and optionally fails for one
// specific article.
type titleStep struct {
	failTitle string

	mu     sync.Mutex
	titles []string
}

func (s *titleStep) Do(_ context.Context, a *Assessment) error {
	s.mu.Lock()
	s.titles = append(s.titles, a.Title)
	s.mu.Unlock()

	if a.Title == s.failTitle {
		return errors.New("assessment broke")
	}
	return nil
}

func (s *titleStep) Name() string { return "title" }

// TestProcessBatch tests concurrent batch assessment.
func TestProcessBatch(t *testing.T) {
	t.Parallel()

	t.Run("assesses all articles in order", func(t *testing.T) {
		t.Parallel()

		step := &titleStep{}
		bp := NewBatchProcessor(func() *Pipeline {
			p := New()
			p.AddSteps(step, NewScoreStep())
			return p
		}, WithConcurrency(2))

		titles := []string{"القاهرة", "دمشق", "بغداد"}
		results, err := bp.ProcessBatch(context.Background(), titles)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if len(results) != len(titles) {
			t.Fatalf("len(results) = %d, want %d", len(results), len(titles))
		}
		for i, title := range titles {
			if results[i] == nil || results[i].Title != title {
				t.Errorf("results[%d] = %+v, want title %q", i, results[i], title)
			}
		}

		step.mu.Lock()
		seen := len(step.titles)
		step.mu.Unlock()
		if seen != len(titles) {
			t.Errorf("step saw %d articles, want %d", seen, len(titles))
		}
	})

	t.Run("failed assessments do not stop the batch", func(t *testing.T) {
		t.Parallel()

		step := &titleStep{failTitle: "دمشق"}
		bp := NewBatchProcessor(func() *Pipeline {
			p := New()
			p.AddStep(step)
			return p
		})

		results, err := bp.ProcessBatch(context.Background(), []string{"القاهرة", "دمشق", "بغداد"})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if results[1].Error == nil {
			t.Error("expected the failing article to carry its error")
		}
		if results[0].Error != nil || results[2].Error != nil {
			t.Error("expected the other articles unaffected")
		}
	})

	t.Run("cancelled context stops the batch", func(t *testing.T) {
		t.Parallel()

		bp := NewBatchProcessor(func() *Pipeline { return New() })

		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		if _, err := bp.ProcessBatch(ctx, []string{"القاهرة"}); err == nil {
			t.Error("expected an error from a cancelled context")
		}
	})
}

// TestProcessBatchWithCallback tests the streaming variant.
func TestProcessBatchWithCallback(t *testing.T) {
	t.Parallel()

	step := &titleStep{}
	bp := NewBatchProcessor(func() *Pipeline {
		p := New()
		p.AddStep(step)
		return p
	}, WithConcurrency(2))

	var mu sync.Mutex
	got := make(map[int]string)

	err := bp.ProcessBatchWithCallback(context.Background(), []string{"القاهرة", "دمشق"},
		func(a *Assessment, index int) {
			mu.Lock()
			got[index] = a.Title
			mu.Unlock()
		})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if got[0] != "القاهرة" || got[1] != "دمشق" {
		t.Errorf("callbacks = %v, want both articles with their indices", got)
	}
}
