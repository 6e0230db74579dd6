package update

import (
	"github.com/charmbracelet/bubbles/key"

	"github.com/sandeepkv93/daybook/internal/views"
)

type KeyMap struct {
	Advance  key.Binding
	Toggle   key.Binding
	Refresh  key.Binding
	NextView key.Binding
	Jump     key.Binding
	Up       key.Binding
	Down     key.Binding
	Help     key.Binding
	Quit     key.Binding
}

func DefaultKeyMap() KeyMap {
	return KeyMap{
		Advance:  key.NewBinding(key.WithKeys("a"), key.WithHelp("a", "advance reminder")),
		Toggle:   key.NewBinding(key.WithKeys("d"), key.WithHelp("d", "toggle task done")),
		Refresh:  key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "refresh")),
		NextView: key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "next view")),
		Jump:     key.NewBinding(key.WithKeys("1", "2", "3", "4", "5"), key.WithHelp("1-5", "jump to view")),
		Up:       key.NewBinding(key.WithKeys("k", "up"), key.WithHelp("k/up", "move up")),
		Down:     key.NewBinding(key.WithKeys("j", "down"), key.WithHelp("j/down", "move down")),
		Help:     key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "toggle help")),
		Quit:     key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.NextView, k.Refresh, k.Help, k.Quit}
}

func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.NextView, k.Jump, k.Up, k.Down},
		{k.Advance, k.Toggle, k.Refresh},
		{k.Help, k.Quit},
	}
}

func (m Model) renderHelpIfVisible() string {
	if !m.HelpVisible {
		return ""
	}
	h := m.helpModel
	h.ShowAll = true
	return views.RenderHelpPanel(views.HelpPanelData{
		CurrentView: string(m.CurrentView),
		HelpView:    h.View(m.Keys),
	})
}
