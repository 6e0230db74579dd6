package update

import (
	"context"
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/sandeepkv93/daybook/internal/model"
)

// loadCmd reads the clock when the command runs, not when it is built.
func (m Model) loadCmd() tea.Cmd {
	source, now, timeout := m.source, m.now, m.timeout
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()

		today := model.DateOf(now())
		data := snapshot{today: today}
		var err error
		if data.stats, err = source.Dashboard(ctx, today); err != nil {
			return AppErrorMsg{Err: fmt.Errorf("load dashboard: %w", err)}
		}
		if data.reminders, err = source.ListReminders(ctx, today); err != nil {
			return AppErrorMsg{Err: fmt.Errorf("load reminders: %w", err)}
		}
		if data.tasks, err = source.ListTasks(ctx, nil); err != nil {
			return AppErrorMsg{Err: fmt.Errorf("load tasks: %w", err)}
		}
		if data.bookmarks, err = source.ListBookmarks(ctx); err != nil {
			return AppErrorMsg{Err: fmt.Errorf("load bookmarks: %w", err)}
		}
		if data.notes, err = source.ListNotes(ctx); err != nil {
			return AppErrorMsg{Err: fmt.Errorf("load notes: %w", err)}
		}
		return DataLoadedMsg{data: data}
	}
}

func (m Model) tickCmd() tea.Cmd {
	return tea.Tick(m.refresh, func(time.Time) tea.Msg { return RefreshTickMsg{} })
}

func (m Model) advanceCmd(id string) tea.Cmd {
	source, timeout := m.source, m.timeout
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()
		rem, err := source.AdvanceReminder(ctx, id)
		if err != nil {
			return AppErrorMsg{Err: fmt.Errorf("advance: %w", err)}
		}
		return ReminderAdvancedMsg{Reminder: rem}
	}
}

func (m Model) toggleCmd(task model.Task) tea.Cmd {
	source, timeout := m.source, m.timeout
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()
		var (
			out model.Task
			err error
		)
		if task.Done {
			out, err = source.ReopenTask(ctx, task.ID)
		} else {
			out, err = source.CompleteTask(ctx, task.ID)
		}
		if err != nil {
			return AppErrorMsg{Err: fmt.Errorf("toggle task: %w", err)}
		}
		return TaskToggledMsg{Task: out}
	}
}
