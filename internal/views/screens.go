package views

import (
	"fmt"
	"strings"
)

type ReminderRow struct {
	ID            string
	Content       string
	Cycle         string
	Target        string
	RemainingDays int
}

type TaskRow struct {
	ID      string
	Content string
	Done    bool
	Age     string
}

type BookmarkRow struct {
	Content string
	Comment string
}

type DashboardData struct {
	Today          string
	OpenTasks      int
	CompletedTasks int
	CompletionPct  int
	Reminders      int
	Bookmarks      int
	Notes          int
	CloseThreshold int
	CloseReminders []ReminderRow
	InvalidTargets int
}

// Remaining describes a remaining-day count the way the dashboard shows it.
func Remaining(days int) string {
	switch {
	case days < 0:
		return fmt.Sprintf("%dd overdue", -days)
	case days == 0:
		return "today"
	case days == 1:
		return "tomorrow"
	default:
		return fmt.Sprintf("in %dd", days)
	}
}

func remainingStyled(days, threshold int) string {
	label := Remaining(days)
	switch {
	case days < 0:
		return overdueStyle.Render(label)
	case days <= threshold:
		return dueSoonStyle.Render(label)
	default:
		return label
	}
}

func cursorLine(selected bool, line string) string {
	if selected {
		return selectedStyle.Render("> " + line)
	}
	return "  " + line
}

func RenderDashboard(data DashboardData) string {
	var b strings.Builder
	fmt.Fprintf(&b, "today: %s\n\n", data.Today)
	fmt.Fprintf(&b, "tasks: %d open, %d done (%d%% complete)\n", data.OpenTasks, data.CompletedTasks, data.CompletionPct)
	fmt.Fprintf(&b, "reminders: %d  bookmarks: %d  notes: %d\n\n", data.Reminders, data.Bookmarks, data.Notes)
	fmt.Fprintf(&b, "close reminders (<= %d days):\n", data.CloseThreshold)
	if len(data.CloseReminders) == 0 {
		b.WriteString(mutedStyle.Render("  nothing due soon") + "\n")
	}
	for _, r := range data.CloseReminders {
		fmt.Fprintf(&b, "  %s  %s  %s\n", r.Target, r.Content, remainingStyled(r.RemainingDays, data.CloseThreshold))
	}
	if data.InvalidTargets > 0 {
		b.WriteString(overdueStyle.Render(fmt.Sprintf("\n%d reminder(s) have an unreadable target date", data.InvalidTargets)))
	}
	return strings.TrimSpace(b.String())
}

func RenderReminders(rows []ReminderRow, cursor, threshold int) string {
	var b strings.Builder
	b.WriteString("reminders (most urgent first):\n")
	if len(rows) == 0 {
		b.WriteString(mutedStyle.Render("  no reminders"))
		return b.String()
	}
	for i, r := range rows {
		line := fmt.Sprintf("%s  %-8s %s  %s", r.Target, r.Cycle, r.Content, remainingStyled(r.RemainingDays, threshold))
		b.WriteString(cursorLine(i == cursor, line) + "\n")
	}
	return strings.TrimRight(b.String(), "\n")
}

func RenderTasks(rows []TaskRow, cursor int) string {
	var b strings.Builder
	b.WriteString("tasks:\n")
	if len(rows) == 0 {
		b.WriteString(mutedStyle.Render("  no tasks"))
		return b.String()
	}
	for i, t := range rows {
		box := "[ ]"
		if t.Done {
			box = "[x]"
		}
		line := fmt.Sprintf("%s %s", box, t.Content)
		if t.Age != "" {
			line += mutedStyle.Render("  (" + t.Age + ")")
		}
		b.WriteString(cursorLine(i == cursor, line) + "\n")
	}
	return strings.TrimRight(b.String(), "\n")
}

func RenderBookmarks(rows []BookmarkRow, cursor int) string {
	var b strings.Builder
	b.WriteString("bookmarks:\n")
	if len(rows) == 0 {
		b.WriteString(mutedStyle.Render("  no bookmarks"))
		return b.String()
	}
	for i, r := range rows {
		line := r.Content
		if r.Comment != "" {
			line += mutedStyle.Render("  " + r.Comment)
		}
		b.WriteString(cursorLine(i == cursor, line) + "\n")
	}
	return strings.TrimRight(b.String(), "\n")
}

func RenderNoteTitles(titles []string, cursor int) string {
	var b strings.Builder
	b.WriteString("notes:\n")
	if len(titles) == 0 {
		b.WriteString(mutedStyle.Render("  no notes"))
		return b.String()
	}
	for i, t := range titles {
		b.WriteString(cursorLine(i == cursor, t) + "\n")
	}
	return strings.TrimRight(b.String(), "\n")
}

type HelpPanelData struct {
	CurrentView string
	HelpView    string
}

func RenderHelpPanel(data HelpPanelData) string {
	return strings.TrimSpace(fmt.Sprintf("help (%s):\n%s", data.CurrentView, data.HelpView))
}
