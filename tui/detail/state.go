package detail

import (
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vuminhle/fossildeck/app"
	"github.com/vuminhle/fossildeck/domain"
	"github.com/vuminhle/fossildeck/infra/editor"
	"github.com/vuminhle/fossildeck/infra/session"
	"github.com/vuminhle/fossildeck/tui/common"
)

const maxCommentLen = 500

// DetailLoadedMsg is sent when the specimen fetch completes.
type DetailLoadedMsg struct {
	Fossil domain.FossilDetail
	Err    error
	ReqSeq int
}

// CommentsLoadedMsg is sent when the comment tree fetch completes.
type CommentsLoadedMsg struct {
	Comments []domain.Comment
	Err      error
	ReqSeq   int
}

// CommentPostedMsg is sent after a comment submission attempt.
type CommentPostedMsg struct {
	Comment domain.Comment
	Err     error
}

// CommentDeletedMsg is sent after a comment deletion attempt.
type CommentDeletedMsg struct {
	CommentID int
	Err       error
}

// ReactionDoneMsg is sent after a reaction mutation completes.
type ReactionDoneMsg struct {
	CommentID int
	Err       error
}

// FavoriteToggledMsg is sent after a favorite toggle attempt.
type FavoriteToggledMsg struct {
	Fossil domain.FossilDetail
	Err    error
}

// CloseMsg asks the root model to leave the detail view.
type CloseMsg struct{}

// RequestLoginMsg asks the root model to open the login screen.
type RequestLoginMsg struct{}

// SessionState is the slice of session data the detail view reads.
// *session.Store satisfies it.
type SessionState interface {
	Authenticated() bool
	Current() session.Snapshot
}

type modelServices struct {
	catalog   app.CatalogService
	thread    app.CommentService
	reactions app.ReactionService
	favorites *app.FavoriteToggler
	session   SessionState
	editor    *editor.EnvEditor
}

type fossilState struct {
	fossilID     string
	fossil       domain.FossilDetail
	hasFossil    bool
	loading      bool
	togglingFav  bool
	err          error
	fossilReqSeq int
}

// commentRow is one line of the flattened tree, depth for indentation.
type commentRow struct {
	comment domain.Comment
	depth   int
}

type commentState struct {
	comments       []domain.Comment
	rows           []commentRow
	cursor         int // 0 selects the fossil card, 1..n the comment rows
	loadingTree    bool
	posting        bool
	deleting       bool
	confirmDelete  bool
	commentsReqSeq int
}

type composerState struct {
	input          textinput.Model
	composing      bool
	replyTo        *domain.Comment
	showReactions  bool
	reactionCursor int
}

type uiState struct {
	keys        common.KeyMap
	spinner     spinner.Model
	width       int
	height      int
	start       int // first visible line of the scrolled view
	promptLogin bool
	notice      string
}

// Model holds the state for the specimen detail view.
type Model struct {
	modelServices
	fossilState
	commentState
	composerState
	uiState
}

// New creates a detail model for one specimen.
func New(catalog app.CatalogService, thread app.CommentService, reactions app.ReactionService, favorites *app.FavoriteToggler, sess SessionState, ed *editor.EnvEditor, fossilID string) Model {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("#C6A15B"))

	ti := textinput.New()
	ti.Placeholder = "Share your thoughts on this specimen..."
	ti.CharLimit = maxCommentLen
	ti.Width = 60

	return Model{
		modelServices: modelServices{
			catalog:   catalog,
			thread:    thread,
			reactions: reactions,
			favorites: favorites,
			session:   sess,
			editor:    ed,
		},
		fossilState: fossilState{
			fossilID: fossilID,
			loading:  true,
		},
		composerState: composerState{
			input: ti,
		},
		uiState: uiState{
			keys:    common.DefaultKeyMap(),
			spinner: s,
		},
	}
}

// Init starts the initial specimen fetch.
func (m Model) Init() tea.Cmd {
	return tea.Batch(
		m.fetchDetail(m.fossilReqSeq),
		m.spinner.Tick,
	)
}

// Update handles messages for the detail view.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	return m.update(msg)
}

// Refresh reloads the specimen and its comments under fresh sequence numbers.
// Composer state is kept, so a draft survives a login round trip.
func (m Model) Refresh() (Model, tea.Cmd) {
	m.loading = true
	m.err = nil
	m.notice = ""
	m.fossilReqSeq++
	return m, tea.Batch(
		m.fetchDetail(m.fossilReqSeq),
		m.spinner.Tick,
	)
}

// rebuildRows flattens the comment tree for cursor navigation and rendering.
func (m *Model) rebuildRows() {
	m.rows = m.rows[:0]
	m.appendRows(m.comments, 0)
	if m.cursor > len(m.rows) {
		m.cursor = len(m.rows)
	}
}

func (m *Model) appendRows(comments []domain.Comment, depth int) {
	for _, c := range comments {
		m.rows = append(m.rows, commentRow{comment: c, depth: depth})
		m.appendRows(c.Replies, depth+1)
	}
}

// ensureCursorVisible keeps the selected row inside the viewport. Rows render
// at roughly four lines each below the fossil card.
func (m *Model) ensureCursorVisible() {
	if m.height <= 0 || m.cursor == 0 {
		m.start = 0
		return
	}
	const headerLines = 14
	const rowLines = 4
	line := headerLines + (m.cursor-1)*rowLines
	if line < m.start {
		m.start = line
	}
	if bottom := m.start + m.height - rowLines; line > bottom {
		m.start = line - (m.height - rowLines)
	}
}

// selectedComment returns the comment under the cursor, if any.
func (m Model) selectedComment() (domain.Comment, bool) {
	if m.cursor == 0 || m.cursor > len(m.rows) {
		return domain.Comment{}, false
	}
	return m.rows[m.cursor-1].comment, true
}

// ownsComment reports whether the logged-in user wrote the comment.
func (m Model) ownsComment(c domain.Comment) bool {
	snap := m.session.Current()
	return snap.LoggedIn() && snap.UserID == c.Author.UserID
}

// FossilID returns the specimen this view is showing.
func (m Model) FossilID() string {
	return m.fossilID
}

// Fossil returns the loaded specimen record, if any.
func (m Model) Fossil() (domain.FossilDetail, bool) {
	return m.fossil, m.hasFossil
}

// Comments returns the current visible comment tree.
func (m Model) Comments() []domain.Comment {
	return m.comments
}

// Err returns the current error, if any.
func (m Model) Err() error {
	return m.err
}

// Loading reports whether the specimen is still being fetched.
func (m Model) Loading() bool {
	return m.loading
}

// Composing reports whether the comment composer is open.
func (m Model) Composing() bool {
	return m.composing
}

// Draft returns the composer's current text.
func (m Model) Draft() string {
	return m.input.Value()
}

// ReplyTarget returns the comment being replied to, if any.
func (m Model) ReplyTarget() (domain.Comment, bool) {
	if m.replyTo == nil {
		return domain.Comment{}, false
	}
	return *m.replyTo, true
}

// PromptingLogin reports whether the login prompt overlay is showing.
func (m Model) PromptingLogin() bool {
	return m.promptLogin
}
