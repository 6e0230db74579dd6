package model

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

var ErrEmptyContent = errors.New("model: content is required")

// Reminder keeps TargetDate as the stored string. Parsing happens at the
// point of use so a damaged row is reported instead of silently defaulted.
type Reminder struct {
	ID         string    `json:"id"`
	Content    string    `json:"content"`
	Cycle      Cycle     `json:"cycle"`
	TargetDate string    `json:"target_date"`
	CreatedAt  time.Time `json:"created_at"`
}

func (r Reminder) Target() (Date, error) {
	return ParseDate(r.TargetDate)
}

func (r Reminder) Validate() error {
	if strings.TrimSpace(r.ID) == "" {
		return errors.New("model: reminder id is required")
	}
	if strings.TrimSpace(r.Content) == "" {
		return fmt.Errorf("%w: reminder", ErrEmptyContent)
	}
	if !r.Cycle.IsValid() {
		return fmt.Errorf("%w: %q", ErrUnknownCycle, r.Cycle)
	}
	if _, err := r.Target(); err != nil {
		return err
	}
	if r.CreatedAt.IsZero() {
		return errors.New("model: reminder created_at is required")
	}
	return nil
}
