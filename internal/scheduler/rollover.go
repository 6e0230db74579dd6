package scheduler

import (
	"context"
	"time"
)

const midnightEvent = "midnight"

// Rollover calls fn once for the current instant and then at every midnight
// in now's location until ctx is done. fn receives the instant the new day
// began, not the moment the timer fired.
func Rollover(ctx context.Context, now func() time.Time, fn func(context.Context, time.Time)) error {
	if now == nil {
		now = time.Now
	}
	e := NewEngine(1)
	e.now = now
	e.Start()
	defer e.Stop()

	start := now()
	fn(ctx, start)
	if err := e.Schedule(Event{ID: midnightEvent, At: NextMidnight(start)}); err != nil {
		return err
	}
	for {
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-e.C():
			if !ok {
				return nil
			}
			fn(ctx, ev.At)
			if err := e.Schedule(Event{ID: midnightEvent, At: NextMidnight(ev.At)}); err != nil {
				return err
			}
		}
	}
}
