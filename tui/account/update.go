package account

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
)

// Update handles messages for the account view.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case spinner.TickMsg:
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case FavoritesLoadedMsg:
		if msg.ReqSeq != m.reqSeq {
			return m, nil
		}
		m.loading = false
		if msg.Err != nil {
			m.err = msg.Err
			return m, nil
		}
		m.favorites = msg.Fossils
		m.err = nil
		if m.active == tabFavorites && m.cursor >= len(m.favorites) {
			m.cursor = 0
		}
		return m, nil

	case HistoryLoadedMsg:
		if msg.ReqSeq != m.reqSeq {
			return m, nil
		}
		if msg.Err != nil {
			m.err = msg.Err
			return m, nil
		}
		m.history = msg.Records
		if m.active == tabHistory && m.cursor >= len(m.history) {
			m.cursor = 0
		}
		return m, nil

	case PasswordChangedMsg:
		m.form.saving = false
		if msg.Err != nil {
			m.err = msg.Err
			return m, nil
		}
		m.err = nil
		m.form.saved = true
		m.form.oldPassword.Reset()
		m.form.newPassword.Reset()
		return m, nil

	case tea.KeyMsg:
		if m.active == tabPassword {
			return m.handlePasswordKey(msg)
		}
		return m.handleListKey(msg)
	}

	return m, nil
}

func (m Model) handleListKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Back):
		return m, func() tea.Msg { return CloseMsg{} }

	case key.Matches(msg, m.keys.Tab):
		m.switchTab()
		return m, nil

	case key.Matches(msg, m.keys.Refresh):
		m.loading = true
		m.reqSeq++
		return m, tea.Batch(m.fetchFavorites(m.reqSeq), m.fetchHistory(m.reqSeq))

	case key.Matches(msg, m.keys.Up):
		if m.cursor > 0 {
			m.cursor--
		}
		return m, nil

	case key.Matches(msg, m.keys.Down):
		if m.cursor < m.activeListLen()-1 {
			m.cursor++
		}
		return m, nil

	case key.Matches(msg, m.keys.Enter):
		fossilID := ""
		switch m.active {
		case tabFavorites:
			if m.cursor < len(m.favorites) {
				fossilID = m.favorites[m.cursor].FossilID
			}
		case tabHistory:
			if m.cursor < len(m.history) {
				fossilID = m.history[m.cursor].FossilID
			}
		}
		if fossilID == "" {
			return m, nil
		}
		return m, func() tea.Msg { return OpenFossilMsg{FossilID: fossilID} }

	case msg.String() == "ctrl+d":
		return m, func() tea.Msg { return LogoutMsg{} }
	}
	return m, nil
}

func (m Model) handlePasswordKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	if m.form.saving {
		return m, nil
	}

	switch {
	case key.Matches(msg, m.keys.Back):
		return m, func() tea.Msg { return CloseMsg{} }

	case key.Matches(msg, m.keys.Tab):
		// Tab walks old password, new password, then the next tab.
		if m.form.focus == 0 {
			m.form.focus = 1
			m.form.oldPassword.Blur()
			m.form.newPassword.Focus()
			return m, nil
		}
		m.switchTab()
		return m, nil

	case key.Matches(msg, m.keys.Enter):
		oldPassword := m.form.oldPassword.Value()
		newPassword := m.form.newPassword.Value()
		if strings.TrimSpace(oldPassword) == "" || strings.TrimSpace(newPassword) == "" {
			return m, nil
		}
		m.form.saving = true
		m.form.saved = false
		return m, m.changePassword(oldPassword, newPassword)

	case msg.String() == "ctrl+d":
		return m, func() tea.Msg { return LogoutMsg{} }
	}

	var cmd tea.Cmd
	if m.form.focus == 1 {
		m.form.newPassword, cmd = m.form.newPassword.Update(msg)
	} else {
		m.form.oldPassword, cmd = m.form.oldPassword.Update(msg)
	}
	return m, cmd
}

func (m *Model) switchTab() {
	m.active = (m.active + 1) % tabCount
	m.cursor = 0
	m.form.saved = false
	if m.active == tabPassword {
		m.form.focus = 0
		m.form.oldPassword.Focus()
	} else {
		m.form.oldPassword.Blur()
		m.form.newPassword.Blur()
	}
}
