package login

import (
	"context"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vuminhle/fossildeck/app"
	"github.com/vuminhle/fossildeck/tui/common"
)

// LoggedInMsg is sent to the root model after a successful login.
type LoggedInMsg struct {
	Result app.LoginResult
}

// CancelledMsg is sent when the user backs out of the login screen.
type CancelledMsg struct{}

type loginResultMsg struct {
	result app.LoginResult
	err    error
}

type registerResultMsg struct {
	err error
}

type mode int

const (
	modeLogin mode = iota
	modeRegister
)

// Model holds the state for the login and registration forms.
type Model struct {
	account app.AccountService

	mode     mode
	username textinput.Model
	email    textinput.Model
	password textinput.Model
	focus    int
	busy     bool
	err      error
	notice   string

	keys    common.KeyMap
	spinner spinner.Model
}

// New creates the login model.
func New(account app.AccountService) Model {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("#C6A15B"))

	username := textinput.New()
	username.Placeholder = "username"
	username.Width = 32
	username.Focus()

	email := textinput.New()
	email.Placeholder = "email"
	email.Width = 32

	password := textinput.New()
	password.Placeholder = "password"
	password.Width = 32
	password.EchoMode = textinput.EchoPassword
	password.EchoCharacter = '•'

	return Model{
		account:  account,
		username: username,
		email:    email,
		password: password,
		keys:     common.DefaultKeyMap(),
		spinner:  s,
	}
}

// Init starts the spinner.
func (m Model) Init() tea.Cmd {
	return m.spinner.Tick
}

// fields returns the focusable inputs for the active mode, in tab order.
func (m *Model) fields() []*textinput.Model {
	if m.mode == modeRegister {
		return []*textinput.Model{&m.username, &m.email, &m.password}
	}
	return []*textinput.Model{&m.username, &m.password}
}

func (m *Model) focusField(i int) {
	fields := m.fields()
	if i >= len(fields) {
		i = 0
	}
	m.focus = i
	for j, f := range fields {
		if j == i {
			f.Focus()
		} else {
			f.Blur()
		}
	}
}

// Update handles messages for the login view.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case spinner.TickMsg:
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case loginResultMsg:
		m.busy = false
		if msg.err != nil {
			m.err = msg.err
			return m, nil
		}
		return m, func() tea.Msg { return LoggedInMsg{Result: msg.result} }

	case registerResultMsg:
		m.busy = false
		if msg.err != nil {
			m.err = msg.err
			return m, nil
		}
		// Registration succeeded; drop back to the login form so the new
		// account signs in through the normal path.
		m.mode = modeLogin
		m.notice = "Account created. Log in to continue."
		m.password.Reset()
		m.focusField(0)
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	if m.busy {
		return m, nil
	}

	switch {
	case key.Matches(msg, m.keys.Back):
		return m, func() tea.Msg { return CancelledMsg{} }

	case key.Matches(msg, m.keys.Tab):
		m.focusField(m.focus + 1)
		return m, nil

	case msg.String() == "ctrl+r":
		if m.mode == modeLogin {
			m.mode = modeRegister
		} else {
			m.mode = modeLogin
		}
		m.err = nil
		m.notice = ""
		m.focusField(0)
		return m, nil

	case key.Matches(msg, m.keys.Enter):
		return m.submit()
	}

	var cmd tea.Cmd
	fields := m.fields()
	if m.focus < len(fields) {
		*fields[m.focus], cmd = fields[m.focus].Update(msg)
	}
	return m, cmd
}

func (m Model) submit() (Model, tea.Cmd) {
	username := strings.TrimSpace(m.username.Value())
	password := m.password.Value()
	if username == "" || password == "" {
		m.notice = "Username and password are required."
		return m, nil
	}

	m.busy = true
	m.err = nil
	m.notice = ""
	account := m.account

	if m.mode == modeRegister {
		email := strings.TrimSpace(m.email.Value())
		if email == "" {
			m.busy = false
			m.notice = "Email is required."
			return m, nil
		}
		reg := app.Registration{Username: username, Email: email, Password: password}
		return m, func() tea.Msg {
			err := account.Register(context.Background(), reg)
			return registerResultMsg{err: err}
		}
	}

	creds := app.Credentials{Username: username, Password: password}
	return m, func() tea.Msg {
		result, err := account.Login(context.Background(), creds)
		return loginResultMsg{result: result, err: err}
	}
}
