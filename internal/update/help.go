package update

import (
	"github.com/charmbracelet/bubbles/key"

	"github.com/sandeepkv93/agencyd/internal/views"
)

type helpKeyMap struct {
	short []key.Binding
	full  [][]key.Binding
}

func (k helpKeyMap) ShortHelp() []key.Binding  { return k.short }
func (k helpKeyMap) FullHelp() [][]key.Binding { return k.full }

// globalKeys is the footer: bindings that work on every screen.
func (m Model) globalKeys() []key.Binding {
	return []key.Binding{m.Keys.Palette, m.Keys.Notifications, m.Keys.Presence, m.Keys.Help, m.Keys.Quit}
}

func (m Model) renderHelpView() string {
	k := m.Keys
	nav := []key.Binding{k.Dashboard, k.Clients, k.Tasks, k.Calendar, k.Workspaces}
	alerts := []key.Binding{k.Notifications, k.ClearAlerts, k.DismissToast}
	session := []key.Binding{k.Presence, k.Logout, k.Palette, k.Help, k.Quit}

	local := m.viewKeys()
	plain := make([]string, 0, len(local))
	for _, b := range local {
		h := b.Help()
		plain = append(plain, "- "+h.Key+": "+h.Desc)
	}
	if len(plain) == 0 {
		plain = append(plain, "- no contextual bindings")
	}

	hm := m.helpModel
	hm.ShowAll = true
	return views.RenderHelpPanel(views.HelpPanelData{
		CurrentView: string(m.CurrentView),
		Bindings:    plain,
		HelpView: hm.View(helpKeyMap{
			short: m.globalKeys(),
			full:  [][]key.Binding{nav, alerts, session},
		}),
	})
}

func (m Model) viewKeys() []key.Binding {
	switch m.CurrentView {
	case ViewClients:
		if m.Clients.DetailID != "" {
			return []key.Binding{
				binding("j/k", "scroll"),
				binding("esc", "back to clients"),
			}
		}
		return []key.Binding{
			binding("j/k", "move cursor"),
			binding("enter", "open client"),
		}
	case ViewTasks:
		keys := []key.Binding{
			binding("v", "board / list"),
			binding("[ ]", "previous / next status"),
			binding("n", "new task"),
		}
		if m.Tasks.Board {
			keys = append(keys, binding("h/l", "column"), binding("j/k", "task"))
		} else {
			keys = append(keys, binding("j/k", "row"))
		}
		return keys
	case ViewCalendar:
		return []key.Binding{
			binding("h/l", "previous / next day"),
			binding("j/k", "next / previous week"),
			binding("< >", "previous / next month"),
			binding("t", "today"),
			binding("f", "cycle filter"),
		}
	default:
		return nil
	}
}

func binding(keys, desc string) key.Binding {
	return key.NewBinding(key.WithKeys(keys), key.WithHelp(keys, desc))
}
