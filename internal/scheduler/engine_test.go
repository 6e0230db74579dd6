package scheduler

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"
)

func TestEngineEmitsInTriggerOrder(t *testing.T) {
	engine := NewEngine(8)
	engine.Start()
	defer engine.Stop()

	now := time.Now()
	if err := engine.Schedule(Event{ID: "later", At: now.Add(80 * time.Millisecond)}); err != nil {
		t.Fatalf("schedule later: %v", err)
	}
	if err := engine.Schedule(Event{ID: "sooner", At: now.Add(20 * time.Millisecond)}); err != nil {
		t.Fatalf("schedule sooner: %v", err)
	}

	first := waitEvent(t, engine.C(), time.Second)
	second := waitEvent(t, engine.C(), time.Second)
	if first.ID != "sooner" || second.ID != "later" {
		t.Fatalf("unexpected order: first=%s second=%s", first.ID, second.ID)
	}
	if engine.Pending() != 0 {
		t.Fatalf("expected empty queue, got %d", engine.Pending())
	}
}

func TestEngineDropsWhenConsumerIsSlow(t *testing.T) {
	engine := NewEngine(1)
	engine.Start()
	defer engine.Stop()

	at := time.Now().Add(20 * time.Millisecond)
	for i := 0; i < 25; i++ {
		if err := engine.Schedule(Event{ID: fmt.Sprintf("evt-%02d", i), At: at}); err != nil {
			t.Fatalf("schedule event: %v", err)
		}
	}

	time.Sleep(120 * time.Millisecond)
	if engine.Dropped() == 0 {
		t.Fatalf("expected dropped events > 0, got %d", engine.Dropped())
	}
}

func TestScheduleValidation(t *testing.T) {
	engine := NewEngine(1)
	if err := engine.Schedule(Event{ID: "bad"}); err != ErrInvalidTriggerTime {
		t.Fatalf("expected ErrInvalidTriggerTime, got %v", err)
	}
	engine.Start()
	engine.Stop()
	engine.Stop()
	if err := engine.Schedule(Event{ID: "late", At: time.Now()}); err != ErrStopped {
		t.Fatalf("expected ErrStopped, got %v", err)
	}
}

func TestEngineConcurrentSchedule(t *testing.T) {
	engine := NewEngine(1024)
	engine.Start()
	defer engine.Stop()

	const workers = 8
	const perWorker = 100
	now := time.Now()

	var wg sync.WaitGroup
	wg.Add(workers)
	for w := 0; w < workers; w++ {
		w := w
		go func() {
			defer wg.Done()
			for i := 0; i < perWorker; i++ {
				ev := Event{ID: fmt.Sprintf("w%d-%d", w, i), At: now.Add(time.Duration(i%20+5) * time.Millisecond)}
				if err := engine.Schedule(ev); err != nil {
					t.Errorf("schedule failed: %v", err)
					return
				}
			}
		}()
	}
	wg.Wait()

	deadline := time.After(5 * time.Second)
	seen := make(map[string]bool, workers*perWorker)
	for len(seen) < workers*perWorker {
		select {
		case <-deadline:
			t.Fatalf("timeout: received=%d dropped=%d", len(seen), engine.Dropped())
		case ev := <-engine.C():
			if seen[ev.ID] {
				t.Fatalf("event %s delivered twice", ev.ID)
			}
			seen[ev.ID] = true
		}
	}
	if engine.Dropped() != 0 {
		t.Fatalf("expected zero drops with active consumer, got=%d", engine.Dropped())
	}
}

func TestNextMidnight(t *testing.T) {
	cases := []struct {
		in   time.Time
		want time.Time
	}{
		{time.Date(2024, 2, 28, 13, 0, 0, 0, time.UTC), time.Date(2024, 2, 29, 0, 0, 0, 0, time.UTC)},
		{time.Date(2024, 12, 31, 23, 59, 59, 0, time.UTC), time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)},
		{time.Date(2024, 5, 10, 0, 0, 0, 0, time.UTC), time.Date(2024, 5, 11, 0, 0, 0, 0, time.UTC)},
	}
	for _, tc := range cases {
		if got := NextMidnight(tc.in); !got.Equal(tc.want) {
			t.Fatalf("NextMidnight(%s) = %s, want %s", tc.in, got, tc.want)
		}
	}
}

func TestRolloverFiresAtMidnight(t *testing.T) {
	base := time.Date(2024, 5, 10, 23, 59, 59, 900_000_000, time.UTC)
	started := time.Now()
	clock := func() time.Time { return base.Add(time.Since(started)) }

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	var (
		mu   sync.Mutex
		days []string
	)
	err := Rollover(ctx, clock, func(_ context.Context, at time.Time) {
		mu.Lock()
		defer mu.Unlock()
		days = append(days, at.Format("2006-01-02"))
		if len(days) == 2 {
			cancel()
		}
	})
	if err != nil {
		t.Fatalf("rollover: %v", err)
	}
	mu.Lock()
	defer mu.Unlock()
	if len(days) != 2 || days[0] != "2024-05-10" || days[1] != "2024-05-11" {
		t.Fatalf("unexpected days: %v", days)
	}
}

func waitEvent(t *testing.T, ch <-chan Event, timeout time.Duration) Event {
	t.Helper()
	select {
	case ev := <-ch:
		return ev
	case <-time.After(timeout):
		t.Fatalf("timed out waiting for event")
		return Event{}
	}
}
