package session

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"
)

func TestSessionAddDrain(t *testing.T) {
	s := New()

	if err := s.Add("apple"); err != nil {
		t.Fatalf("Add: %v", err)
	}
	if err := s.AddBatch([]string{"banana", "cherry"}); err != nil {
		t.Fatalf("AddBatch: %v", err)
	}
	if err := s.SetGlobalStatus(Ready("done")); err != nil {
		t.Fatalf("SetGlobalStatus: %v", err)
	}

	cmds := s.Drain(0)
	if len(cmds) != 3 {
		t.Fatalf("expected 3 commands, got %d", len(cmds))
	}
	if cmds[0].Kind != CommandAddItem || cmds[0].Text != "apple" {
		t.Errorf("command 0 = %+v", cmds[0])
	}
	if cmds[1].Kind != CommandAddBatch || len(cmds[1].Batch) != 2 {
		t.Errorf("command 1 = %+v", cmds[1])
	}
	if cmds[2].Kind != CommandSetStatus || cmds[2].Status.Kind != StatusReady {
		t.Errorf("command 2 = %+v", cmds[2])
	}

	if s.Pending() != 0 {
		t.Errorf("expected empty queue, got %d", s.Pending())
	}
}

func TestSessionDrainBounded(t *testing.T) {
	s := New()
	for i := 0; i < 10; i++ {
		if err := s.Add(fmt.Sprintf("item%d", i)); err != nil {
			t.Fatalf("Add: %v", err)
		}
	}

	first := s.Drain(4)
	if len(first) != 4 {
		t.Fatalf("expected 4 commands, got %d", len(first))
	}
	if first[0].Text != "item0" || first[3].Text != "item3" {
		t.Errorf("FIFO order broken: %q..%q", first[0].Text, first[3].Text)
	}

	rest := s.Drain(0)
	if len(rest) != 6 {
		t.Fatalf("expected 6 remaining, got %d", len(rest))
	}
	if rest[0].Text != "item4" {
		t.Errorf("expected item4 next, got %q", rest[0].Text)
	}
}

func TestSessionClosedRejectsProducers(t *testing.T) {
	s := New()
	s.Resolve(Outcome{Selected: []string{"apple"}})

	if err := s.Add("late"); !errors.Is(err, ErrClosed) {
		t.Errorf("Add after resolve = %v, want ErrClosed", err)
	}
	if err := s.AddBatch([]string{"late"}); !errors.Is(err, ErrClosed) {
		t.Errorf("AddBatch after resolve = %v, want ErrClosed", err)
	}
	if err := s.SetIndicator("apple", SuccessIndicator()); !errors.Is(err, ErrClosed) {
		t.Errorf("SetIndicator after resolve = %v, want ErrClosed", err)
	}
	if err := s.SetGlobalStatus(Ready("")); !errors.Is(err, ErrClosed) {
		t.Errorf("SetGlobalStatus after resolve = %v, want ErrClosed", err)
	}
}

func TestSessionEmptyBatch(t *testing.T) {
	s := New()
	if err := s.AddBatch(nil); !errors.Is(err, ErrEmptyBatch) {
		t.Errorf("AddBatch(nil) = %v, want ErrEmptyBatch", err)
	}
}

func TestSessionResolveOnce(t *testing.T) {
	s := New()
	s.Resolve(Outcome{Selected: []string{"first"}})
	s.Resolve(Outcome{Cancelled: true}) // no-op

	outcome, err := s.Wait(context.Background())
	if err != nil {
		t.Fatalf("Wait: %v", err)
	}
	if outcome.Cancelled || len(outcome.Selected) != 1 || outcome.Selected[0] != "first" {
		t.Errorf("outcome = %+v, want first resolution", outcome)
	}
}

func TestSessionWaitBlocks(t *testing.T) {
	s := New()

	go func() {
		time.Sleep(10 * time.Millisecond)
		s.Resolve(Outcome{Cancelled: true})
	}()

	outcome, err := s.Wait(context.Background())
	if err != nil {
		t.Fatalf("Wait: %v", err)
	}
	if !outcome.Cancelled {
		t.Error("expected cancelled outcome")
	}
}

func TestSessionWaitContext(t *testing.T) {
	s := New()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()

	_, err := s.Wait(ctx)
	if !errors.Is(err, context.DeadlineExceeded) {
		t.Errorf("Wait = %v, want deadline exceeded", err)
	}
}

func TestSessionConcurrentProducers(t *testing.T) {
	s := New()

	var wg sync.WaitGroup
	const producers = 8
	const perProducer = 50
	for p := 0; p < producers; p++ {
		wg.Add(1)
		go func(p int) {
			defer wg.Done()
			for i := 0; i < perProducer; i++ {
				_ = s.Add(fmt.Sprintf("p%d-i%d", p, i))
			}
		}(p)
	}
	wg.Wait()

	total := 0
	for {
		cmds := s.Drain(100)
		if len(cmds) == 0 {
			break
		}
		total += len(cmds)
	}
	if total != producers*perProducer {
		t.Errorf("expected %d commands, got %d", producers*perProducer, total)
	}
}

func TestIndicatorConstructors(t *testing.T) {
	tests := []struct {
		name string
		ind  Indicator
		kind IndicatorKind
	}{
		{"spinner", SpinnerIndicator(), IndicatorSpinner},
		{"text", TextIndicator("42%"), IndicatorText},
		{"colored", ColoredTextIndicator("hot", "red"), IndicatorText},
		{"success", SuccessIndicator(), IndicatorSuccess},
		{"error", ErrorIndicator(), IndicatorError},
		{"warning", WarningIndicator(), IndicatorWarning},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.ind.Kind != tt.kind {
				t.Errorf("kind = %d, want %d", tt.ind.Kind, tt.kind)
			}
		})
	}
	if c := ColoredTextIndicator("hot", "red"); c.Color != "red" {
		t.Errorf("color = %q, want red", c.Color)
	}
}
