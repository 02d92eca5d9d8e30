package ui

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
)

// Modal is the interface for modal dialogs. Update returns the updated
// modal, a command, and whether the modal should close.
type Modal interface {
	Update(msg tea.Msg, keys keyMap) (Modal, tea.Cmd, bool)
	View(width int) string
}

var _ Modal = (*confirmModal)(nil)

// confirmModal asks a yes/no question before a destructive action.
type confirmModal struct {
	title   string
	prompt  string
	confirm func() tea.Cmd
}

func newConfirmModal(title, prompt string, confirm func() tea.Cmd) *confirmModal {
	return &confirmModal{title: title, prompt: prompt, confirm: confirm}
}

func (m *confirmModal) Update(msg tea.Msg, keys keyMap) (Modal, tea.Cmd, bool) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil, false
	}

	switch keyMsg.String() {
	case "y", "Y":
		return m, m.confirm(), true
	case "n", "N", "esc", "q":
		return m, nil, true
	}
	return m, nil, false
}

func (m *confirmModal) View(width int) string {
	body := fmt.Sprintf("%s\n\n%s\n\n%s",
		styles.title.Render(m.title),
		m.prompt,
		styles.help.Render("y confirm • n cancel"),
	)
	return styles.modal.Width(min(width-4, 60)).Render(body)
}
