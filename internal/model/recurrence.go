package model

import (
	"errors"
	"fmt"
	"strings"
)

type Cycle string

const (
	CycleOnce    Cycle = "once"
	CycleDaily   Cycle = "daily"
	CycleWeekly  Cycle = "weekly"
	CycleMonthly Cycle = "monthly"
	CycleYearly  Cycle = "yearly"
)

// MaxPreviewCount bounds Preview; a year of daily occurrences.
const MaxPreviewCount = 366

var (
	ErrNonRecurring   = errors.New("model: reminder is not recurrent")
	ErrUnknownCycle   = errors.New("model: unknown recurrence cycle")
	ErrPreviewTooLong = errors.New("model: preview count too large")
)

func Cycles() []Cycle {
	return []Cycle{CycleOnce, CycleDaily, CycleWeekly, CycleMonthly, CycleYearly}
}

func (c Cycle) IsValid() bool {
	switch c {
	case CycleOnce, CycleDaily, CycleWeekly, CycleMonthly, CycleYearly:
		return true
	default:
		return false
	}
}

func (c Cycle) IsRecurring() bool {
	return c.IsValid() && c != CycleOnce
}

// ParseCycle accepts any letter case and surrounding spaces.
func ParseCycle(raw string) (Cycle, error) {
	c := Cycle(strings.ToLower(strings.TrimSpace(raw)))
	if !c.IsValid() {
		return "", fmt.Errorf("%w: %q", ErrUnknownCycle, raw)
	}
	return c, nil
}

// Next returns the occurrence that follows current. Month and year steps are
// calendar steps: Jan 31 monthly gives the last day of February. A result
// past MaxYear is ErrDateOutOfRange since it could not be stored and parsed
// back.
func (c Cycle) Next(current Date) (Date, error) {
	var next Date
	switch c {
	case CycleOnce:
		return Date{}, ErrNonRecurring
	case CycleDaily:
		next = current.AddDays(1)
	case CycleWeekly:
		next = current.AddDays(7)
	case CycleMonthly:
		next = current.AddMonths(1)
	case CycleYearly:
		next = current.AddYears(1)
	default:
		return Date{}, fmt.Errorf("%w: %q", ErrUnknownCycle, c)
	}
	if next.Year() > MaxYear {
		return Date{}, fmt.Errorf("%w: %s after %s", ErrDateOutOfRange, c, current)
	}
	return next, nil
}

func Advance(cycle Cycle, current Date) (Date, error) {
	return cycle.Next(current)
}

// Preview lists the next count occurrences after from. Each step starts from
// the previous result, so a clamped day stays clamped.
func (c Cycle) Preview(from Date, count int) ([]Date, error) {
	if count <= 0 {
		return []Date{}, nil
	}
	if count > MaxPreviewCount {
		return nil, fmt.Errorf("%w: %d > %d", ErrPreviewTooLong, count, MaxPreviewCount)
	}
	out := make([]Date, 0, count)
	cursor := from
	for i := 0; i < count; i++ {
		next, err := c.Next(cursor)
		if err != nil {
			return nil, err
		}
		out = append(out, next)
		cursor = next
	}
	return out, nil
}
