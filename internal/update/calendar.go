package update

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/sandeepkv93/agencyd/internal/insights"
	"github.com/sandeepkv93/agencyd/internal/views"
)

func (m Model) handleCalendarKey(msg tea.KeyMsg) Model {
	sel := m.Calendar.Selected
	switch msg.String() {
	case "h", "left":
		sel = sel.AddDate(0, 0, -1)
	case "l", "right":
		sel = sel.AddDate(0, 0, 1)
	case "k", "up":
		sel = sel.AddDate(0, 0, -7)
	case "j", "down":
		sel = sel.AddDate(0, 0, 7)
	case "<":
		sel = addMonths(sel, -1)
	case ">":
		sel = addMonths(sel, 1)
	case "t":
		sel = m.clock.Now()
	case "f":
		m.Calendar.Filter = m.Calendar.Filter.Next()
		m.Status = StatusBar{Text: "calendar filter: " + string(m.Calendar.Filter)}
	}
	m.Calendar.Selected = sel
	return m
}

// addMonths moves by whole months, pinning the day to the target month's
// last day instead of overflowing into the next one.
func addMonths(t time.Time, n int) time.Time {
	first := time.Date(t.Year(), t.Month(), 1, t.Hour(), t.Minute(), 0, 0, t.Location()).AddDate(0, n, 0)
	last := first.AddDate(0, 1, -1).Day()
	return first.AddDate(0, 0, min(t.Day(), last)-1)
}

func (m Model) renderCalendar(now time.Time) string {
	data := m.dataset()
	return views.RenderCalendar(views.CalendarData{
		Grid:     insights.Month(data, m.Calendar.Selected, m.Calendar.Filter),
		Today:    now,
		Selected: m.Calendar.Selected,
		Filter:   m.Calendar.Filter,
		Agenda:   insights.Agenda(data, m.Calendar.Selected, m.Calendar.Filter),
	})
}
