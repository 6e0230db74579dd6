package update

import (
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/sandeepkv93/daybook/internal/stats"
	"github.com/sandeepkv93/daybook/internal/urgency"
	"github.com/sandeepkv93/daybook/internal/views"
)

func (m Model) Init() tea.Cmd {
	return tea.Batch(m.loadCmd(), m.tickCmd())
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch typed := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(typed)
	case tea.WindowSizeMsg:
		if typed.Width > 70 {
			m.noteViewport.Width = typed.Width - 70
		}
		if typed.Height > 10 {
			m.noteViewport.Height = typed.Height - 10
		}
		return m, nil
	case RefreshTickMsg:
		return m, tea.Batch(m.loadCmd(), m.tickCmd())
	case DataLoadedMsg:
		m.apply(typed.data)
		return m, nil
	case ReminderAdvancedMsg:
		m.Status = StatusBar{Text: fmt.Sprintf("%q moved to %s", typed.Reminder.Content, typed.Reminder.TargetDate)}
		return m, m.loadCmd()
	case TaskToggledMsg:
		state := "reopened"
		if typed.Task.Done {
			state = "done"
		}
		m.Status = StatusBar{Text: fmt.Sprintf("%q %s", typed.Task.Content, state)}
		return m, m.loadCmd()
	case SetStatusMsg:
		m.Status = StatusBar{Text: typed.Text, IsError: typed.IsError}
		return m, nil
	case AppErrorMsg:
		m.LastError = typed.Err
		if typed.Err != nil {
			m.Status = StatusBar{Text: typed.Err.Error(), IsError: true}
		}
		return m, nil
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.Keys.Quit):
		m.Quitting = true
		return m, tea.Quit
	case key.Matches(msg, m.Keys.Help):
		m.HelpVisible = !m.HelpVisible
		return m, nil
	case key.Matches(msg, m.Keys.Refresh):
		m.Status = StatusBar{Text: "refreshing"}
		return m, m.loadCmd()
	case key.Matches(msg, m.Keys.NextView):
		m.CurrentView = viewOrder[(m.viewIndex()+1)%len(viewOrder)]
		m.refreshNote()
		return m, nil
	case key.Matches(msg, m.Keys.Jump):
		idx := int(msg.Runes[0] - '1')
		if idx >= 0 && idx < len(viewOrder) {
			m.CurrentView = viewOrder[idx]
			m.refreshNote()
		}
		return m, nil
	case key.Matches(msg, m.Keys.Up):
		m.moveCursor(-1)
		return m, nil
	case key.Matches(msg, m.Keys.Down):
		m.moveCursor(1)
		return m, nil
	case key.Matches(msg, m.Keys.Advance):
		if m.CurrentView != ViewReminders {
			return m, nil
		}
		items := m.Reminders.Items
		if len(items) == 0 {
			return m, nil
		}
		return m, m.advanceCmd(items[m.Cursors[ViewReminders]].Reminder.ID)
	case key.Matches(msg, m.Keys.Toggle):
		if m.CurrentView != ViewTasks || len(m.Tasks) == 0 {
			return m, nil
		}
		return m, m.toggleCmd(m.Tasks[m.Cursors[ViewTasks]])
	}

	if m.CurrentView == ViewNotes {
		var cmd tea.Cmd
		m.noteViewport, cmd = m.noteViewport.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m *Model) apply(data snapshot) {
	m.Today = data.today
	m.Snapshot = data.stats
	m.Reminders = data.reminders
	m.Tasks = data.tasks
	m.Bookmarks = data.bookmarks
	m.Notes = data.notes
	m.Loaded = true
	for _, v := range viewOrder {
		m.clampCursor(v)
	}
	if n := len(data.reminders.Errors); n > 0 {
		m.Status = StatusBar{Text: fmt.Sprintf("%d reminder(s) skipped: unreadable target date", n), IsError: true}
	}
	m.refreshNote()
}

func (m Model) viewIndex() int {
	for i, v := range viewOrder {
		if v == m.CurrentView {
			return i
		}
	}
	return 0
}

func (m Model) itemCount(v View) int {
	switch v {
	case ViewReminders:
		return len(m.Reminders.Items)
	case ViewTasks:
		return len(m.Tasks)
	case ViewBookmarks:
		return len(m.Bookmarks)
	case ViewNotes:
		return len(m.Notes)
	default:
		return 0
	}
}

func (m *Model) clampCursor(v View) {
	n := m.itemCount(v)
	c := m.Cursors[v]
	if c >= n {
		c = n - 1
	}
	if c < 0 {
		c = 0
	}
	m.Cursors[v] = c
}

func (m *Model) moveCursor(delta int) {
	m.Cursors[m.CurrentView] += delta
	m.clampCursor(m.CurrentView)
	m.refreshNote()
}

func (m *Model) refreshNote() {
	if m.CurrentView != ViewNotes || len(m.Notes) == 0 {
		return
	}
	note := m.Notes[m.Cursors[ViewNotes]]
	md := note.Body
	if md == "" {
		md = "_empty note_"
	}
	m.renderedNote = views.RenderMarkdown("# " + note.Title + "\n\n" + md)
	m.noteViewport.SetContent(m.renderedNote)
	m.noteViewport.GotoTop()
}

func (m Model) View() string {
	if m.Quitting {
		return ""
	}
	body := "loading..."
	side := ""
	if m.Loaded {
		switch m.CurrentView {
		case ViewDashboard:
			body = views.RenderDashboard(dashboardData(m.Snapshot))
		case ViewReminders:
			body = views.RenderReminders(reminderRows(m.Reminders.Items), m.Cursors[ViewReminders], m.Snapshot.CloseThreshold)
		case ViewTasks:
			rows := make([]views.TaskRow, 0, len(m.Tasks))
			now := m.now()
			for _, t := range m.Tasks {
				row := views.TaskRow{ID: t.ID, Content: t.Content, Done: t.Done}
				if !t.Done {
					row.Age = stats.Elapsed(t.CreatedAt, now)
				}
				rows = append(rows, row)
			}
			body = views.RenderTasks(rows, m.Cursors[ViewTasks])
		case ViewBookmarks:
			rows := make([]views.BookmarkRow, 0, len(m.Bookmarks))
			for _, b := range m.Bookmarks {
				rows = append(rows, views.BookmarkRow{Content: b.Content, Comment: b.Comment})
			}
			body = views.RenderBookmarks(rows, m.Cursors[ViewBookmarks])
		case ViewNotes:
			titles := make([]string, 0, len(m.Notes))
			for _, n := range m.Notes {
				titles = append(titles, n.Title)
			}
			body = views.RenderNoteTitles(titles, m.Cursors[ViewNotes])
			if len(m.Notes) > 0 {
				side = m.noteViewport.View()
			}
		}
	}
	if help := m.renderHelpIfVisible(); help != "" {
		side = help
	}

	tabs := make([]string, 0, len(viewOrder))
	for i, v := range viewOrder {
		tabs = append(tabs, fmt.Sprintf("%d %s", i+1, v))
	}
	header := "daybook"
	if m.Loaded {
		header = fmt.Sprintf("daybook | today: %s | refresh: %s", m.Today, m.refresh.Round(time.Second))
	}
	return views.RenderApp(views.AppData{
		Tabs:       tabs,
		ActiveTab:  m.viewIndex(),
		Header:     header,
		Body:       body,
		Side:       side,
		StatusLine: m.Status.Text,
		IsError:    m.Status.IsError,
		Footer:     m.helpModel.View(m.Keys),
	})
}

func reminderRows(items []urgency.Urgency) []views.ReminderRow {
	rows := make([]views.ReminderRow, 0, len(items))
	for _, u := range items {
		rows = append(rows, views.ReminderRow{
			ID:            u.Reminder.ID,
			Content:       u.Reminder.Content,
			Cycle:         string(u.Reminder.Cycle),
			Target:        u.Target.String(),
			RemainingDays: u.RemainingDays,
		})
	}
	return rows
}

func dashboardData(s stats.Snapshot) views.DashboardData {
	return views.DashboardData{
		Today:          s.Today.String(),
		OpenTasks:      s.OpenTasks,
		CompletedTasks: s.CompletedTasks,
		CompletionPct:  s.CompletionPercent(),
		Reminders:      s.Reminders,
		Bookmarks:      s.Bookmarks,
		Notes:          s.Notes,
		CloseThreshold: s.CloseThreshold,
		CloseReminders: reminderRows(s.CloseReminders),
		InvalidTargets: len(s.ReminderErrors),
	}
}
