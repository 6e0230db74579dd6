package model

import (
	"errors"
	"testing"
	"time"
)

func TestReminderValidateSuccess(t *testing.T) {
	rem := Reminder{
		ID:         "rem-1",
		Content:    "pay rent",
		Cycle:      CycleMonthly,
		TargetDate: "2026-02-01",
		CreatedAt:  time.Date(2026, 1, 9, 13, 0, 0, 0, time.UTC),
	}
	if err := rem.Validate(); err != nil {
		t.Fatalf("expected valid reminder, got error: %v", err)
	}
}

func TestReminderValidateErrors(t *testing.T) {
	base := Reminder{
		ID:         "rem-1",
		Content:    "pay rent",
		Cycle:      CycleMonthly,
		TargetDate: "2026-02-01",
		CreatedAt:  time.Date(2026, 1, 9, 13, 0, 0, 0, time.UTC),
	}

	rem := base
	rem.Cycle = Cycle("hourly")
	if err := rem.Validate(); !errors.Is(err, ErrUnknownCycle) {
		t.Fatalf("expected ErrUnknownCycle, got: %v", err)
	}

	rem = base
	rem.TargetDate = "01/02/2026"
	if err := rem.Validate(); !errors.Is(err, ErrInvalidDateFormat) {
		t.Fatalf("expected ErrInvalidDateFormat, got: %v", err)
	}

	rem = base
	rem.Content = "   "
	if err := rem.Validate(); !errors.Is(err, ErrEmptyContent) {
		t.Fatalf("expected ErrEmptyContent, got: %v", err)
	}
}
