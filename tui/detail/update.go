package detail

import (
	"errors"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/vuminhle/fossildeck/domain"
)

func (m Model) update(msg tea.Msg) (Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case spinner.TickMsg:
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case DetailLoadedMsg:
		if msg.ReqSeq != m.fossilReqSeq {
			return m, nil
		}
		m.loading = false
		if msg.Err != nil {
			m.err = msg.Err
			return m, nil
		}
		m.fossil = msg.Fossil
		m.hasFossil = true
		m.err = nil
		m.loadingTree = true
		m.commentsReqSeq++
		return m, m.fetchComments(m.commentsReqSeq)

	case CommentsLoadedMsg:
		if msg.ReqSeq != m.commentsReqSeq {
			return m, nil
		}
		m.loadingTree = false
		if msg.Err != nil {
			m.err = msg.Err
			return m, nil
		}
		m.comments = msg.Comments
		m.err = nil
		m.rebuildRows()
		return m, nil

	case CommentPostedMsg:
		m.posting = false
		if msg.Err != nil {
			// A moderated comment was stored server-side but hidden. The
			// draft stays in the composer so the user can rework it.
			if errors.Is(msg.Err, domain.ErrModerated) {
				m.notice = domain.UserMessage(msg.Err)
				return m, nil
			}
			if errors.Is(msg.Err, domain.ErrLoginRequired) {
				m.promptLogin = true
				return m, nil
			}
			m.err = msg.Err
			return m, nil
		}
		m.input.Reset()
		m.composing = false
		m.replyTo = nil
		m.notice = "Comment posted."
		m.err = nil
		m.commentsReqSeq++
		m.loadingTree = true
		return m, m.fetchComments(m.commentsReqSeq)

	case CommentDeletedMsg:
		m.deleting = false
		if msg.Err != nil {
			m.err = msg.Err
			return m, nil
		}
		m.notice = "Comment deleted."
		m.err = nil
		m.commentsReqSeq++
		m.loadingTree = true
		return m, m.fetchComments(m.commentsReqSeq)

	case ReactionDoneMsg:
		if msg.Err != nil {
			if errors.Is(msg.Err, domain.ErrLoginRequired) {
				m.promptLogin = true
				return m, nil
			}
			m.err = msg.Err
			return m, nil
		}
		// Counts are server-authoritative; refetch instead of merging.
		m.err = nil
		m.commentsReqSeq++
		m.loadingTree = true
		return m, m.fetchComments(m.commentsReqSeq)

	case FavoriteToggledMsg:
		m.togglingFav = false
		if msg.Err != nil {
			if errors.Is(msg.Err, domain.ErrLoginRequired) {
				m.promptLogin = true
				return m, nil
			}
			if errors.Is(msg.Err, domain.ErrToggleInFlight) {
				return m, nil
			}
			m.err = msg.Err
			return m, nil
		}
		m.fossil = msg.Fossil
		m.err = nil
		return m, nil

	case editorFinishedMsg:
		if msg.err != nil {
			m.err = msg.err
			return m, nil
		}
		content, err := m.editor.ReadContent(msg.tmpPath)
		if err != nil {
			m.err = err
			return m, nil
		}
		if content != "" {
			m.input.SetValue(content)
		}
		return m, nil

	case tea.KeyMsg:
		return m.handleKeyMsg(msg)
	}

	return m, nil
}

func (m Model) handleKeyMsg(msg tea.KeyMsg) (Model, tea.Cmd) {
	if m.promptLogin {
		return m.handleLoginPromptKey(msg)
	}
	if m.showReactions {
		return m.handleReactionPickerKey(msg)
	}
	if m.confirmDelete {
		return m.handleDeleteConfirmKey(msg)
	}
	if m.composing {
		return m.handleComposerKey(msg)
	}
	return m.handleBrowseKey(msg)
}

func (m Model) handleLoginPromptKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Enter), key.Matches(msg, m.keys.Login):
		m.promptLogin = false
		return m, func() tea.Msg { return RequestLoginMsg{} }
	default:
		m.promptLogin = false
		return m, nil
	}
}

func (m Model) handleReactionPickerKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Back):
		m.showReactions = false
		return m, nil

	case msg.String() == "left" || msg.String() == "h":
		if m.reactionCursor > 0 {
			m.reactionCursor--
		}
		return m, nil

	case msg.String() == "right" || msg.String() == "l":
		if m.reactionCursor < len(domain.ReactionTypes())-1 {
			m.reactionCursor++
		}
		return m, nil

	case key.Matches(msg, m.keys.Enter):
		m.showReactions = false
		c, ok := m.selectedComment()
		if !ok {
			return m, nil
		}
		t := domain.ReactionTypes()[m.reactionCursor]
		action := domain.ResolveReaction(m.comments, c.ID, t)
		return m, m.runReaction(action)
	}
	return m, nil
}

func (m Model) handleDeleteConfirmKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch msg.String() {
	case "y":
		m.confirmDelete = false
		c, ok := m.selectedComment()
		if !ok {
			return m, nil
		}
		m.deleting = true
		return m, m.deleteComment(c.ID)
	case "n", "esc":
		m.confirmDelete = false
	}
	return m, nil
}

func (m Model) handleComposerKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Back):
		// First esc cancels the reply (target and draft both reset),
		// second closes the composer.
		if m.replyTo != nil {
			m.replyTo = nil
			m.input.Reset()
			return m, nil
		}
		m.composing = false
		m.input.Blur()
		return m, nil

	case msg.String() == "ctrl+e":
		return m, m.launchEditor()

	case key.Matches(msg, m.keys.Enter):
		if m.posting {
			return m, nil
		}
		content := strings.TrimSpace(m.input.Value())
		if content == "" {
			m.notice = domain.UserMessage(domain.ErrEmptyComment)
			return m, nil
		}
		if !m.session.Authenticated() {
			m.promptLogin = true
			return m, nil
		}
		parentID := 0
		if m.replyTo != nil {
			parentID = m.replyTo.ID
		}
		m.posting = true
		m.notice = ""
		return m, m.submitComment(content, parentID)
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m Model) handleBrowseKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Back):
		return m, func() tea.Msg { return CloseMsg{} }

	case key.Matches(msg, m.keys.Refresh):
		m.loading = true
		m.err = nil
		m.notice = ""
		m.fossilReqSeq++
		return m, m.fetchDetail(m.fossilReqSeq)

	case key.Matches(msg, m.keys.Up):
		if m.cursor > 0 {
			m.cursor--
		}
		m.ensureCursorVisible()
		return m, nil

	case key.Matches(msg, m.keys.Down):
		if m.cursor < len(m.rows) {
			m.cursor++
		}
		m.ensureCursorVisible()
		return m, nil

	case key.Matches(msg, m.keys.Comment):
		m.composing = true
		m.replyTo = nil
		m.notice = ""
		m.input.Focus()
		return m, nil

	case key.Matches(msg, m.keys.Reply):
		c, ok := m.selectedComment()
		if !ok {
			return m, nil
		}
		m.composing = true
		m.replyTo = &c
		m.notice = ""
		m.input.Reset()
		m.input.Focus()
		return m, nil

	case key.Matches(msg, m.keys.React):
		if _, ok := m.selectedComment(); !ok {
			return m, nil
		}
		if !m.session.Authenticated() {
			m.promptLogin = true
			return m, nil
		}
		m.showReactions = true
		m.reactionCursor = 0
		return m, nil

	case key.Matches(msg, m.keys.Delete):
		c, ok := m.selectedComment()
		if !ok || m.deleting || !m.ownsComment(c) {
			return m, nil
		}
		m.confirmDelete = true
		return m, nil

	case key.Matches(msg, m.keys.Favorite):
		if !m.hasFossil || m.togglingFav {
			return m, nil
		}
		if !m.session.Authenticated() {
			m.promptLogin = true
			return m, nil
		}
		m.togglingFav = true
		return m, m.toggleFavorite()

	case key.Matches(msg, m.keys.Open):
		if !m.hasFossil || m.fossil.Model3DURL == "" {
			return m, nil
		}
		return m, openModelURL(m.fossil.Model3DURL)
	}
	return m, nil
}
