// Package update holds the bubbletea model behind `daybook dashboard`.
package update

import (
	"context"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/viewport"

	"github.com/sandeepkv93/daybook/internal/model"
	"github.com/sandeepkv93/daybook/internal/stats"
	"github.com/sandeepkv93/daybook/internal/urgency"
)

type View string

const (
	ViewDashboard View = "Dashboard"
	ViewReminders View = "Reminders"
	ViewTasks     View = "Tasks"
	ViewBookmarks View = "Bookmarks"
	ViewNotes     View = "Notes"
)

var viewOrder = []View{ViewDashboard, ViewReminders, ViewTasks, ViewBookmarks, ViewNotes}

// Source is the slice of the service the dashboard reads and mutates.
type Source interface {
	Dashboard(ctx context.Context, now model.Date) (stats.Snapshot, error)
	ListReminders(ctx context.Context, now model.Date) (urgency.Result, error)
	ListTasks(ctx context.Context, done *bool) ([]model.Task, error)
	ListBookmarks(ctx context.Context) ([]model.Bookmark, error)
	ListNotes(ctx context.Context) ([]model.Note, error)
	AdvanceReminder(ctx context.Context, id string) (model.Reminder, error)
	CompleteTask(ctx context.Context, id string) (model.Task, error)
	ReopenTask(ctx context.Context, id string) (model.Task, error)
}

type StatusBar struct {
	Text    string
	IsError bool
}

type Options struct {
	// Now is read on every refresh, so a dashboard left open past midnight
	// recomputes remaining days for the new day.
	Now     func() time.Time
	Refresh time.Duration
	Timeout time.Duration
}

type Model struct {
	CurrentView View
	Cursors     map[View]int
	Today       model.Date
	Snapshot    stats.Snapshot
	Reminders   urgency.Result
	Tasks       []model.Task
	Bookmarks   []model.Bookmark
	Notes       []model.Note
	HelpVisible bool
	Status      StatusBar
	Keys        KeyMap
	Loaded      bool
	Quitting    bool
	LastError   error

	source       Source
	now          func() time.Time
	refresh      time.Duration
	timeout      time.Duration
	helpModel    help.Model
	noteViewport viewport.Model
	renderedNote string
}

func NewModel(source Source, opts Options) Model {
	m := Model{
		CurrentView:  ViewDashboard,
		Cursors:      make(map[View]int, len(viewOrder)),
		Keys:         DefaultKeyMap(),
		source:       source,
		now:          opts.Now,
		refresh:      opts.Refresh,
		timeout:      opts.Timeout,
		helpModel:    help.New(),
		noteViewport: viewport.New(46, 16),
	}
	if m.now == nil {
		m.now = time.Now
	}
	if m.refresh <= 0 {
		m.refresh = time.Minute
	}
	if m.timeout <= 0 {
		m.timeout = 5 * time.Second
	}
	return m
}

// snapshot is everything one refresh reads, taken against a single "today".
type snapshot struct {
	today     model.Date
	stats     stats.Snapshot
	reminders urgency.Result
	tasks     []model.Task
	bookmarks []model.Bookmark
	notes     []model.Note
}

type DataLoadedMsg struct {
	data snapshot
}

type RefreshTickMsg struct{}

type SetStatusMsg struct {
	Text    string
	IsError bool
}

type AppErrorMsg struct {
	Err error
}

type ReminderAdvancedMsg struct {
	Reminder model.Reminder
}

type TaskToggledMsg struct {
	Task model.Task
}
