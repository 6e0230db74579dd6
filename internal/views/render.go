package views

import (
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"
)

type AppData struct {
	Tabs       []string
	ActiveTab  int
	Header     string
	Body       string
	Side       string
	StatusLine string
	IsError    bool
	Footer     string
}

var (
	headerStyle    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12"))
	statusStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
	errorStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
	panelStyle     = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1)
	footerStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	tabStyle       = lipgloss.NewStyle().Padding(0, 1).Foreground(lipgloss.Color("7"))
	activeTabStyle = tabStyle.Bold(true).Foreground(lipgloss.Color("0")).Background(lipgloss.Color("12"))
	selectedStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("14"))
	overdueStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
	dueSoonStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("11"))
	mutedStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
)

func RenderTabs(tabs []string, active int) string {
	out := make([]string, 0, len(tabs))
	for i, t := range tabs {
		if i == active {
			out = append(out, activeTabStyle.Render(t))
			continue
		}
		out = append(out, tabStyle.Render(t))
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, out...)
}

func RenderApp(data AppData) string {
	body := panelStyle.Width(62).Render(data.Body)
	row := body
	if strings.TrimSpace(data.Side) != "" {
		row = lipgloss.JoinHorizontal(lipgloss.Top, body, panelStyle.Width(48).Render(data.Side))
	}

	lines := []string{
		headerStyle.Render(data.Header),
		RenderTabs(data.Tabs, data.ActiveTab),
		row,
	}
	if data.StatusLine != "" {
		if data.IsError {
			lines = append(lines, errorStyle.Render("error: "+data.StatusLine))
		} else {
			lines = append(lines, statusStyle.Render(data.StatusLine))
		}
	}
	if data.Footer != "" {
		lines = append(lines, footerStyle.Render(data.Footer))
	}
	return strings.Join(lines, "\n")
}

func RenderMarkdown(md string) string {
	if strings.TrimSpace(md) == "" {
		return ""
	}
	out, err := glamour.Render(md, "dark")
	if err != nil {
		return md
	}
	return strings.TrimSpace(out)
}
