package tui

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/vuminhle/fossildeck/app"
	"github.com/vuminhle/fossildeck/infra/editor"
	"github.com/vuminhle/fossildeck/infra/session"
	"github.com/vuminhle/fossildeck/tui/account"
	"github.com/vuminhle/fossildeck/tui/browse"
	"github.com/vuminhle/fossildeck/tui/common"
	"github.com/vuminhle/fossildeck/tui/detail"
	"github.com/vuminhle/fossildeck/tui/login"
)

// Deps holds all dependencies the TUI needs. Plain struct, not a DI container.
type Deps struct {
	Catalog   app.CatalogService
	Comments  app.CommentService
	Reactions app.ReactionService
	Account   app.AccountService
	Favorites *app.FavoriteToggler
	Session   *session.Store
	Editor    *editor.EnvEditor

	// StartFossilID opens the detail view directly, e.g. from a scanned
	// QR code passed on the command line.
	StartFossilID string
}

type activeView int

const (
	browseView activeView = iota
	detailView
	loginView
	accountView
)

// App is the root Bubble Tea model. It routes between sub-views.
type App struct {
	deps   Deps
	active activeView

	browse  browse.Model
	detail  detail.Model
	login   login.Model
	account account.Model

	// returnTo is where a finished or cancelled login sends the user back.
	returnTo activeView

	keys   common.KeyMap
	status string
	width  int
	height int
}

// NewApp creates the root model with all dependencies wired.
func NewApp(deps Deps) App {
	a := App{
		deps:   deps,
		active: browseView,
		browse: browse.New(deps.Catalog),
		keys:   common.DefaultKeyMap(),
	}
	if deps.StartFossilID != "" {
		a.active = detailView
		a.detail = detail.New(deps.Catalog, deps.Comments, deps.Reactions, deps.Favorites, deps.Session, deps.Editor, deps.StartFossilID)
	}
	return a
}

// Init delegates to the starting sub-model.
func (a App) Init() tea.Cmd {
	if a.active == detailView {
		return a.detail.Init()
	}
	return a.browse.Init()
}

// Update handles messages and routes to the active sub-model.
func (a App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		// Every live sub-model gets the new size so a later switch does not
		// render with a stale layout.
		a.browse, _ = a.browse.Update(msg)
		a.detail, _ = a.detail.Update(msg)
		a.account, _ = a.account.Update(msg)
		return a, nil

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return a, tea.Quit
		}
		if a.active == browseView && !a.browse.Searching() {
			switch {
			case key.Matches(msg, a.keys.Quit):
				return a, tea.Quit
			case key.Matches(msg, a.keys.Account):
				if !a.deps.Session.Authenticated() {
					return a.openLogin(browseView)
				}
				return a.openAccount()
			case key.Matches(msg, a.keys.Login):
				return a.openLogin(browseView)
			}
		}

	case browse.OpenDetailMsg:
		return a.openDetail(msg.FossilID)

	case detail.CloseMsg:
		a.active = browseView
		a.status = ""
		return a, nil

	case detail.RequestLoginMsg:
		return a.openLogin(detailView)

	case login.LoggedInMsg:
		a.deps.Session.Set(msg.Result.Token, msg.Result.UserID)
		a.status = "Logged in as " + msg.Result.Username + "."
		a.active = a.returnTo
		// Reload whatever the user came from so user-scoped fields
		// (favorite flag, own reactions) appear. The detail model is
		// refreshed in place so an open composer draft is not lost.
		switch a.active {
		case detailView:
			var cmd tea.Cmd
			a.detail, cmd = a.detail.Refresh()
			return a, cmd
		default:
			return a, a.browse.Refresh()
		}

	case login.CancelledMsg:
		a.active = a.returnTo
		return a, nil

	case account.OpenFossilMsg:
		return a.openDetail(msg.FossilID)

	case account.LogoutMsg:
		a.deps.Session.Clear()
		a.status = "Logged out."
		a.active = browseView
		return a, a.browse.Refresh()

	case account.CloseMsg:
		a.active = browseView
		a.status = ""
		return a, nil
	}

	// Delegate to the active sub-model.
	var cmd tea.Cmd
	switch a.active {
	case browseView:
		a.browse, cmd = a.browse.Update(msg)
	case detailView:
		a.detail, cmd = a.detail.Update(msg)
	case loginView:
		a.login, cmd = a.login.Update(msg)
	case accountView:
		a.account, cmd = a.account.Update(msg)
	}
	return a, cmd
}

func (a App) openDetail(fossilID string) (tea.Model, tea.Cmd) {
	a.active = detailView
	a.status = ""
	a.detail = detail.New(a.deps.Catalog, a.deps.Comments, a.deps.Reactions, a.deps.Favorites, a.deps.Session, a.deps.Editor, fossilID)
	return a, a.resized(a.detail.Init())
}

func (a App) openLogin(returnTo activeView) (tea.Model, tea.Cmd) {
	a.returnTo = returnTo
	a.active = loginView
	a.status = ""
	a.login = login.New(a.deps.Account)
	return a, a.login.Init()
}

func (a App) openAccount() (tea.Model, tea.Cmd) {
	a.active = accountView
	a.status = ""
	a.account = account.New(a.deps.Account, a.deps.Comments)
	return a, a.resized(a.account.Init())
}

// resized batches a sub-model's init with a size replay so fresh views lay
// out against the current terminal dimensions.
func (a App) resized(cmd tea.Cmd) tea.Cmd {
	if a.width == 0 {
		return cmd
	}
	width, height := a.width, a.height
	return tea.Batch(cmd, func() tea.Msg {
		return tea.WindowSizeMsg{Width: width, Height: height}
	})
}

// View renders the active sub-model.
func (a App) View() string {
	var s string

	switch a.active {
	case browseView:
		s = a.browse.View()
	case detailView:
		s = a.detail.View()
	case loginView:
		s = a.login.View()
	case accountView:
		s = a.account.View()
	}

	if a.status != "" {
		s += "\n" + common.StatusBarStyle.Render("  "+a.status)
	}
	return s
}
