package update

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/sandeepkv93/agencyd/internal/insights"
	"github.com/sandeepkv93/agencyd/internal/views"
)

func (m Model) handleClientsKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.Clients.DetailID != "" {
		switch msg.String() {
		case "esc", "backspace":
			m.Clients.DetailID = ""
			m.clientDesc = ""
			return m, nil
		}
		var cmd tea.Cmd
		m.detailViewport, cmd = m.detailViewport.Update(msg)
		return m, cmd
	}

	switch msg.String() {
	case "k", "up":
		if m.Clients.Cursor > 0 {
			m.Clients.Cursor--
		}
	case "j", "down":
		if m.Clients.Cursor < len(m.state.Clients)-1 {
			m.Clients.Cursor++
		}
	case "enter":
		if m.Clients.Cursor < len(m.state.Clients) {
			m.openClient(m.state.Clients[m.Clients.Cursor].ID)
		}
	}
	return m, nil
}

func (m *Model) openClient(id string) {
	view, ok := insights.ClientDetail(m.dataset(), id)
	if !ok {
		m.Status = StatusBar{Text: "client not found: " + id, IsError: true}
		return
	}
	m.Clients.DetailID = id
	m.clientDesc = views.RenderMarkdown(view.Client.Description)
	m.detailViewport.SetContent(m.renderClientDetail(view))
	m.detailViewport.GotoTop()
}

// syncClients keeps the list cursor in range and redraws an open detail
// page, whose timeline follows task changes.
func (m *Model) syncClients() {
	m.Clients.Cursor = clamp(m.Clients.Cursor, len(m.state.Clients))
	if m.Clients.DetailID == "" {
		return
	}
	view, ok := insights.ClientDetail(m.dataset(), m.Clients.DetailID)
	if !ok {
		m.Clients.DetailID = ""
		m.clientDesc = ""
		return
	}
	m.detailViewport.SetContent(m.renderClientDetail(view))
}

func (m Model) renderClientDetail(view insights.ClientView) string {
	rows := make([]views.ProjectRow, len(view.Projects))
	for i, p := range view.Projects {
		rows[i] = views.ProjectRow{Project: p, Bar: m.bar.ViewAs(float64(p.Progress) / 100)}
	}
	return views.RenderClientDetail(views.ClientDetailData{
		View:        view,
		Projects:    rows,
		Description: m.clientDesc,
		Now:         m.clock.Now(),
	})
}
