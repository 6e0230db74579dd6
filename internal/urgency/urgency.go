// Package urgency ranks reminders by how many calendar days remain until
// their target date. Every function takes "now" explicitly and never reads
// the wall clock.
package urgency

import (
	"encoding/json"
	"errors"
	"fmt"
	"sort"

	"github.com/sandeepkv93/daybook/internal/model"
)

// DefaultCloseThreshold is the number of remaining days at or below which a
// reminder shows up as close on the dashboard.
const DefaultCloseThreshold = 2

// Urgency pairs a reminder with its parsed target and remaining days.
// Negative RemainingDays means overdue, zero means due today.
type Urgency struct {
	Reminder      model.Reminder `json:"reminder"`
	Target        model.Date     `json:"target"`
	RemainingDays int            `json:"remaining_days"`
}

// ItemError reports one reminder that could not be ranked. In JSON the
// cause is flattened to a message string.
type ItemError struct {
	Index      int    `json:"index"`
	ReminderID string `json:"reminder_id"`
	Value      string `json:"value"`
	Err        error  `json:"-"`
}

func (e *ItemError) Error() string {
	return fmt.Sprintf("urgency: reminder %q at index %d: %v", e.ReminderID, e.Index, e.Err)
}

func (e *ItemError) Unwrap() error { return e.Err }

func (e *ItemError) MarshalJSON() ([]byte, error) {
	type plain ItemError
	var msg string
	if e.Err != nil {
		msg = e.Err.Error()
	}
	return json.Marshal(struct {
		*plain
		Message string `json:"message"`
	}{plain: (*plain)(e), Message: msg})
}

// Result holds the ranked reminders and the ones that were skipped.
type Result struct {
	Items  []Urgency    `json:"items"`
	Errors []*ItemError `json:"errors"`
}

// Err joins the per-item errors, nil when every reminder was ranked.
func (r Result) Err() error {
	if len(r.Errors) == 0 {
		return nil
	}
	errs := make([]error, 0, len(r.Errors))
	for _, e := range r.Errors {
		errs = append(errs, e)
	}
	return errors.Join(errs...)
}

func (r Result) Reminders() []model.Reminder {
	out := make([]model.Reminder, 0, len(r.Items))
	for _, item := range r.Items {
		out = append(out, item.Reminder)
	}
	return out
}

func RemainingDays(target, now model.Date) int {
	return target.DaysSince(now)
}

// Evaluate computes the urgency of each reminder in input order.
func Evaluate(reminders []model.Reminder, now model.Date) Result {
	out := Result{Items: make([]Urgency, 0, len(reminders)), Errors: []*ItemError{}}
	for i, rem := range reminders {
		target, err := rem.Target()
		if err != nil {
			out.Errors = append(out.Errors, &ItemError{
				Index:      i,
				ReminderID: rem.ID,
				Value:      rem.TargetDate,
				Err:        err,
			})
			continue
		}
		out.Items = append(out.Items, Urgency{
			Reminder:      rem,
			Target:        target,
			RemainingDays: RemainingDays(target, now),
		})
	}
	return out
}

// OrderByUrgency sorts most overdue first. Equal remaining days keep their
// input order.
func OrderByUrgency(reminders []model.Reminder, now model.Date) Result {
	out := Evaluate(reminders, now)
	sort.SliceStable(out.Items, func(i, j int) bool {
		return out.Items[i].RemainingDays < out.Items[j].RemainingDays
	})
	return out
}

// CloseReminders keeps reminders with RemainingDays <= threshold, in input order.
func CloseReminders(reminders []model.Reminder, now model.Date, threshold int) Result {
	all := Evaluate(reminders, now)
	out := Result{Items: make([]Urgency, 0, len(all.Items)), Errors: all.Errors}
	for _, item := range all.Items {
		if item.RemainingDays <= threshold {
			out.Items = append(out.Items, item)
		}
	}
	return out
}
