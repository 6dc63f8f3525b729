package pipeline

import (
	"context"
	"errors"
	"testing"
)

// recordStep appends its name to a shared log when executed.
type recordStep struct {
	name string
	log  *[]string
}

func (s *recordStep) Do(_ context.Context, _ *Assessment) error {
	*s.log = append(*s.log, s.name)
	return nil
}

func (s *recordStep) Name() string { return s.name }

// failStep always fails.
type failStep struct {
	err error
}

func (s *failStep) Do(_ context.Context, _ *Assessment) error { return s.err }

func (s *failStep) Name() string { return "fail" }

// TestPipelineExecute tests step orchestration.
func TestPipelineExecute(t *testing.T) {
	t.Parallel()

	t.Run("executes steps in order", func(t *testing.T) {
		t.Parallel()

		var log []string
		p := New()
		p.AddSteps(
			&recordStep{name: "first", log: &log},
			&recordStep{name: "second", log: &log},
			&recordStep{name: "third", log: &log},
		)

		a := NewAssessment("القاهرة")
		if err := p.Execute(context.Background(), a); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		want := []string{"first", "second", "third"}
		if len(log) != len(want) {
			t.Fatalf("executed %v, want %v", log, want)
		}
		for i, name := range want {
			if log[i] != name {
				t.Errorf("log[%d] = %q, want %q", i, log[i], name)
			}
		}
		if len(a.PerformedSteps) != 3 {
			t.Errorf("PerformedSteps = %v, want 3 entries", a.PerformedSteps)
		}
	})

	t.Run("stops on first error by default", func(t *testing.T) {
		t.Parallel()

		var log []string
		wantErr := errors.New("step broke")

		p := New()
		p.AddSteps(
			&recordStep{name: "first", log: &log},
			&failStep{err: wantErr},
			&recordStep{name: "after", log: &log},
		)

		a := NewAssessment("القاهرة")
		if err := p.Execute(context.Background(), a); !errors.Is(err, wantErr) {
			t.Errorf("Execute() = %v, want %v", err, wantErr)
		}
		if len(log) != 1 {
			t.Errorf("executed %v, want only the first step", log)
		}
		if !errors.Is(a.Error, wantErr) {
			t.Errorf("a.Error = %v, want the step error recorded", a.Error)
		}
	})

	t.Run("continue on error runs remaining steps", func(t *testing.T) {
		t.Parallel()

		var log []string
		p := New(WithContinueOnError(true))
		p.AddSteps(
			&failStep{err: errors.New("step broke")},
			&recordStep{name: "after", log: &log},
		)

		a := NewAssessment("القاهرة")
		if err := p.Execute(context.Background(), a); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(log) != 1 || log[0] != "after" {
			t.Errorf("executed %v, want the step after the failure", log)
		}
	})

	t.Run("cancelled context marks the assessment", func(t *testing.T) {
		t.Parallel()

		p := New()
		p.AddStep(&failStep{err: errors.New("unreached")})

		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		a := NewAssessment("القاهرة")
		if err := p.Execute(ctx, a); !errors.Is(err, context.Canceled) {
			t.Errorf("Execute() = %v, want context.Canceled", err)
		}
		if !a.TimedOut {
			t.Error("expected TimedOut set on cancellation")
		}
	})

	t.Run("step names and count", func(t *testing.T) {
		t.Parallel()

		var log []string
		p := New()
		p.AddSteps(
			&recordStep{name: "first", log: &log},
			&recordStep{name: "second", log: &log},
		)

		if p.StepCount() != 2 {
			t.Errorf("StepCount() = %d, want 2", p.StepCount())
		}
		names := p.StepNames()
		if len(names) != 2 || names[0] != "first" || names[1] != "second" {
			t.Errorf("StepNames() = %v", names)
		}
	})
}
