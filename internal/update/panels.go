package update

import (
	"github.com/sandeepkv93/agencyd/internal/views"
)

// renderSidePane shows at most one panel, in priority order: the command
// palette, the notifications drawer, help, then the selected task.
func (m Model) renderSidePane() string {
	switch {
	case m.Palette.Active:
		return m.renderCommandPalette()
	case m.NotificationsOpen:
		return views.RenderNotificationsPanel(m.state.Notifications)
	case m.HelpVisible:
		return m.renderHelpView()
	case m.CurrentView == ViewTasks && m.taskForm == nil:
		return m.renderTaskDetail()
	}
	return ""
}
