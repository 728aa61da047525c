package browse

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

const pageSize = 20

// FossilsLoadedMsg is sent when a catalog search completes.
type FossilsLoadedMsg struct {
	Page   domain.SearchPage
	Err    error
	ReqSeq int
}

// OpenDetailMsg asks the root model to open a specimen's detail view.
type OpenDetailMsg struct {
	FossilID string
}

// searchField indexes the focusable filter inputs.
type searchField int

const (
	fieldQuery searchField = iota
	fieldPeriod
	fieldOrigin
	fieldCount
)

type browseState struct {
	fossils   []domain.FossilSummary
	total     int
	page      int // zero-based
	totalPage int
	cursor    int
	loading   bool
	err       error
	reqSeq    int
}

type searchState struct {
	query     textinput.Model
	period    textinput.Model
	origin    textinput.Model
	searching bool // filter form focused
	focus     searchField
}

// Model holds the state for the catalog browse view.
type Model struct {
	catalog app.CatalogService
	browseState
	searchState
	keys    common.KeyMap
	spinner spinner.Model
	width   int
	height  int
}

// New creates a browse model with an injected catalog service.
func New(catalog app.CatalogService) Model {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("#C6A15B"))

	newInput := func(placeholder string, width int) textinput.Model {
		ti := textinput.New()
		ti.Placeholder = placeholder
		ti.Width = width
		return ti
	}

	return Model{
		catalog: catalog,
		browseState: browseState{
			loading: true,
		},
		searchState: searchState{
			query:  newInput("search the catalog...", 40),
			period: newInput("period", 16),
			origin: newInput("origin", 16),
		},
		keys:    common.DefaultKeyMap(),
		spinner: s,
	}
}

// Init starts the initial catalog fetch.
func (m Model) Init() tea.Cmd {
	return tea.Batch(
		m.search(m.reqSeq),
		m.spinner.Tick,
	)
}

// Refresh returns a Cmd that re-runs the current search.
func (m Model) Refresh() tea.Cmd {
	return m.search(m.reqSeq)
}

func (m Model) currentQuery() domain.SearchQuery {
	return domain.SearchQuery{
		Q:      m.query.Value(),
		Period: m.period.Value(),
		Origin: m.origin.Value(),
		Limit:  pageSize,
		Offset: m.page * pageSize,
	}
}

func (m Model) search(reqSeq int) tea.Cmd {
	catalog := m.catalog
	q := m.currentQuery()
	return func() tea.Msg {
		page, err := catalog.Search(context.Background(), q)
		return FossilsLoadedMsg{Page: page, Err: err, ReqSeq: reqSeq}
	}
}

// Fossils returns the current page of results.
func (m Model) Fossils() []domain.FossilSummary {
	return m.fossils
}

// Err returns the current error, if any.
func (m Model) Err() error {
	return m.err
}

// Loading reports whether a search is in flight.
func (m Model) Loading() bool {
	return m.loading
}

// Searching reports whether the filter form has focus.
func (m Model) Searching() bool {
	return m.searching
}

// SelectedFossil returns the highlighted result, if any.
func (m Model) SelectedFossil() (domain.FossilSummary, bool) {
	if len(m.fossils) == 0 || m.cursor >= len(m.fossils) {
		return domain.FossilSummary{}, false
	}
	return m.fossils[m.cursor], true
}
