package stats

import (
	"fmt"
	"time"

	"github.com/sandeepkv93/daybook/internal/model"
	"github.com/sandeepkv93/daybook/internal/urgency"
)

type Snapshot struct {
	Today           model.Date           `json:"today"`
	OpenTasks       int                  `json:"open_tasks"`
	CompletedTasks  int                  `json:"completed_tasks"`
	CompletionRatio float64              `json:"completion_ratio"`
	Reminders       int                  `json:"reminders"`
	Bookmarks       int                  `json:"bookmarks"`
	Notes           int                  `json:"notes"`
	CloseThreshold  int                  `json:"close_threshold"`
	CloseReminders  []urgency.Urgency    `json:"close_reminders"`
	ReminderErrors  []*urgency.ItemError `json:"reminder_errors"`
}

// CompletionPercent rounds the ratio to a whole percentage for display.
func (s Snapshot) CompletionPercent() int {
	return int(s.CompletionRatio*100 + 0.5)
}

type Aggregator struct {
	CloseThreshold int
}

func NewAggregator(threshold int) Aggregator {
	return Aggregator{CloseThreshold: threshold}
}

// Summarize is Aggregator.Summarize with the default close threshold and
// no notes, for callers that only track tasks, reminders and bookmarks.
func Summarize(tasks []model.Task, reminders []model.Reminder, bookmarks []model.Bookmark, now model.Date) Snapshot {
	return NewAggregator(urgency.DefaultCloseThreshold).Summarize(tasks, reminders, bookmarks, nil, now)
}

func (a Aggregator) Summarize(tasks []model.Task, reminders []model.Reminder, bookmarks []model.Bookmark, notes []model.Note, now model.Date) Snapshot {
	open, done := CountTasks(tasks)
	closeRes := urgency.CloseReminders(reminders, now, a.CloseThreshold)
	return Snapshot{
		Today:           now,
		OpenTasks:       open,
		CompletedTasks:  done,
		CompletionRatio: CompletionRatio(open, done),
		Reminders:       len(reminders),
		Bookmarks:       len(bookmarks),
		Notes:           len(notes),
		CloseThreshold:  a.CloseThreshold,
		CloseReminders:  closeRes.Items,
		ReminderErrors:  closeRes.Errors,
	}
}

func CountTasks(tasks []model.Task) (open, done int) {
	for _, t := range tasks {
		if t.Done {
			done++
			continue
		}
		open++
	}
	return open, done
}

// CompletionRatio is done/(open+done), 0 when there are no tasks at all.
func CompletionRatio(open, done int) float64 {
	total := open + done
	if total <= 0 {
		return 0
	}
	return float64(done) / float64(total)
}

// Elapsed renders the age between then and now as "H hr M min".
// A then after now renders as zero.
func Elapsed(then, now time.Time) string {
	d := now.Sub(then)
	if d < 0 {
		d = 0
	}
	hours := int(d / time.Hour)
	minutes := int((d % time.Hour) / time.Minute)
	return fmt.Sprintf("%d hr %d min", hours, minutes)
}
