package account

import (
	"context"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vuminhle/fossildeck/app"
	"github.com/vuminhle/fossildeck/domain"
	"github.com/vuminhle/fossildeck/tui/common"
)

// FavoritesLoadedMsg is sent when the favorites fetch completes.
type FavoritesLoadedMsg struct {
	Fossils []domain.FossilSummary
	Err     error
	ReqSeq  int
}

// HistoryLoadedMsg is sent when the comment history fetch completes.
type HistoryLoadedMsg struct {
	Records []domain.CommentRecord
	Err     error
	ReqSeq  int
}

// PasswordChangedMsg is sent after a change-password attempt.
type PasswordChangedMsg struct {
	Err error
}

// OpenFossilMsg asks the root model to open a favorited specimen.
type OpenFossilMsg struct {
	FossilID string
}

// LogoutMsg asks the root model to clear the session.
type LogoutMsg struct{}

// CloseMsg asks the root model to leave the account view.
type CloseMsg struct{}

type tab int

const (
	tabFavorites tab = iota
	tabHistory
	tabPassword
	tabCount
)

type passwordForm struct {
	oldPassword textinput.Model
	newPassword textinput.Model
	focus       int
	saving      bool
	saved       bool
}

// Model holds the state for the account view.
type Model struct {
	account app.AccountService
	thread  app.CommentService

	active    tab
	favorites []domain.FossilSummary
	history   []domain.CommentRecord
	cursor    int
	loading   bool
	err       error
	reqSeq    int

	form passwordForm

	keys    common.KeyMap
	spinner spinner.Model
	width   int
	height  int
}

// New creates the account model.
func New(account app.AccountService, thread app.CommentService) Model {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("#C6A15B"))

	newSecret := func(placeholder string) textinput.Model {
		ti := textinput.New()
		ti.Placeholder = placeholder
		ti.Width = 32
		ti.EchoMode = textinput.EchoPassword
		ti.EchoCharacter = '•'
		return ti
	}

	return Model{
		account: account,
		thread:  thread,
		loading: true,
		form: passwordForm{
			oldPassword: newSecret("current password"),
			newPassword: newSecret("new password"),
		},
		keys:    common.DefaultKeyMap(),
		spinner: s,
	}
}

// Init starts both account fetches.
func (m Model) Init() tea.Cmd {
	return tea.Batch(
		m.fetchFavorites(m.reqSeq),
		m.fetchHistory(m.reqSeq),
		m.spinner.Tick,
	)
}

func (m Model) fetchFavorites(reqSeq int) tea.Cmd {
	account := m.account
	return func() tea.Msg {
		fossils, err := account.Favorites(context.Background())
		return FavoritesLoadedMsg{Fossils: fossils, Err: err, ReqSeq: reqSeq}
	}
}

func (m Model) fetchHistory(reqSeq int) tea.Cmd {
	thread := m.thread
	return func() tea.Msg {
		records, err := thread.History(context.Background())
		return HistoryLoadedMsg{Records: records, Err: err, ReqSeq: reqSeq}
	}
}

func (m Model) changePassword(oldPassword, newPassword string) tea.Cmd {
	account := m.account
	return func() tea.Msg {
		err := account.ChangePassword(context.Background(), oldPassword, newPassword)
		return PasswordChangedMsg{Err: err}
	}
}

// activeListLen returns the row count of the focused list tab.
func (m Model) activeListLen() int {
	switch m.active {
	case tabFavorites:
		return len(m.favorites)
	case tabHistory:
		return len(m.history)
	}
	return 0
}

// Favorites returns the loaded favorites list.
func (m Model) Favorites() []domain.FossilSummary {
	return m.favorites
}

// History returns the loaded comment history.
func (m Model) History() []domain.CommentRecord {
	return m.history
}

// Err returns the current error, if any.
func (m Model) Err() error {
	return m.err
}
