package browse

import (
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
)

// Update handles messages for the browse view.
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

	case FossilsLoadedMsg:
		if msg.ReqSeq != m.reqSeq {
			return m, nil
		}
		m.loading = false
		if msg.Err != nil {
			m.err = msg.Err
			return m, nil
		}
		m.err = nil
		m.fossils = msg.Page.Fossils
		m.total = msg.Page.Total
		m.totalPage = msg.Page.TotalPages
		if m.cursor >= len(m.fossils) {
			m.cursor = 0
		}
		return m, nil

	case tea.KeyMsg:
		if m.searching {
			return m.handleSearchKey(msg)
		}
		return m.handleListKey(msg)
	}

	return m, nil
}

func (m Model) handleSearchKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Back):
		m.searching = false
		m.blurAll()
		return m, nil

	case key.Matches(msg, m.keys.Tab):
		m.focus = (m.focus + 1) % fieldCount
		m.focusCurrent()
		return m, nil

	case key.Matches(msg, m.keys.Enter):
		m.searching = false
		m.blurAll()
		m.page = 0
		m.cursor = 0
		m.loading = true
		m.reqSeq++
		return m, m.search(m.reqSeq)
	}

	var cmd tea.Cmd
	switch m.focus {
	case fieldQuery:
		m.query, cmd = m.query.Update(msg)
	case fieldPeriod:
		m.period, cmd = m.period.Update(msg)
	case fieldOrigin:
		m.origin, cmd = m.origin.Update(msg)
	}
	return m, cmd
}

func (m Model) handleListKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Search):
		m.searching = true
		m.focus = fieldQuery
		m.focusCurrent()
		return m, nil

	case key.Matches(msg, m.keys.Refresh):
		m.loading = true
		m.reqSeq++
		return m, m.search(m.reqSeq)

	case key.Matches(msg, m.keys.Up):
		if m.cursor > 0 {
			m.cursor--
		}
		return m, nil

	case key.Matches(msg, m.keys.Down):
		if m.cursor < len(m.fossils)-1 {
			m.cursor++
		}
		return m, nil

	case key.Matches(msg, m.keys.NextPage):
		if m.totalPage > 0 && m.page >= m.totalPage-1 {
			return m, nil
		}
		m.page++
		m.cursor = 0
		m.loading = true
		m.reqSeq++
		return m, m.search(m.reqSeq)

	case key.Matches(msg, m.keys.PrevPage):
		if m.page == 0 {
			return m, nil
		}
		m.page--
		m.cursor = 0
		m.loading = true
		m.reqSeq++
		return m, m.search(m.reqSeq)

	case key.Matches(msg, m.keys.Enter):
		f, ok := m.SelectedFossil()
		if !ok {
			return m, nil
		}
		return m, func() tea.Msg { return OpenDetailMsg{FossilID: f.FossilID} }
	}
	return m, nil
}

func (m *Model) focusCurrent() {
	m.blurAll()
	switch m.focus {
	case fieldQuery:
		m.query.Focus()
	case fieldPeriod:
		m.period.Focus()
	case fieldOrigin:
		m.origin.Focus()
	}
}

func (m *Model) blurAll() {
	m.query.Blur()
	m.period.Blur()
	m.origin.Blur()
}
