package detail

import (
	"context"
	"net/url"
	"os/exec"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vuminhle/fossildeck/app"
	"github.com/vuminhle/fossildeck/domain"
)

func (m Model) fetchDetail(reqSeq int) tea.Cmd {
	catalog := m.catalog
	fossilID := m.fossilID
	return func() tea.Msg {
		fossil, err := catalog.Detail(context.Background(), fossilID)
		return DetailLoadedMsg{Fossil: fossil, Err: err, ReqSeq: reqSeq}
	}
}

func (m Model) fetchComments(reqSeq int) tea.Cmd {
	thread := m.thread
	fossilID := m.fossilID
	return func() tea.Msg {
		comments, err := thread.FetchTree(context.Background(), fossilID)
		return CommentsLoadedMsg{Comments: comments, Err: err, ReqSeq: reqSeq}
	}
}

func (m Model) submitComment(content string, parentID int) tea.Cmd {
	thread := m.thread
	fossilID := m.fossilID
	return func() tea.Msg {
		comment, err := thread.Submit(context.Background(), fossilID, content, parentID)
		return CommentPostedMsg{Comment: comment, Err: err}
	}
}

func (m Model) deleteComment(commentID int) tea.Cmd {
	thread := m.thread
	return func() tea.Msg {
		err := thread.Delete(context.Background(), commentID)
		return CommentDeletedMsg{CommentID: commentID, Err: err}
	}
}

func (m Model) runReaction(action domain.ReactionAction) tea.Cmd {
	if action.Op == domain.ReactionNoop {
		return nil
	}
	reactions := m.reactions
	return func() tea.Msg {
		err := app.ExecuteReaction(context.Background(), reactions, action)
		return ReactionDoneMsg{CommentID: action.CommentID, Err: err}
	}
}

func (m Model) toggleFavorite() tea.Cmd {
	favorites := m.favorites
	fossil := m.fossil
	return func() tea.Msg {
		updated, err := favorites.Toggle(context.Background(), fossil)
		return FavoriteToggledMsg{Fossil: updated, Err: err}
	}
}

type editorFinishedMsg struct {
	tmpPath string
	err     error
}

// launchEditor opens $EDITOR seeded with the current draft. Bubble Tea is
// suspended while the editor runs.
func (m Model) launchEditor() tea.Cmd {
	if m.editor == nil {
		return nil
	}
	cmd, tmpPath, err := m.editor.Cmd(m.input.Value())
	if err != nil {
		return func() tea.Msg { return editorFinishedMsg{err: err} }
	}
	return tea.ExecProcess(cmd, func(err error) tea.Msg {
		return editorFinishedMsg{tmpPath: tmpPath, err: err}
	})
}

// openModelURL opens the specimen's 3D model in the default browser.
func openModelURL(rawURL string) tea.Cmd {
	parsed, err := url.Parse(rawURL)
	if err != nil || parsed.Host == "" {
		return nil
	}
	switch strings.ToLower(parsed.Scheme) {
	case "http", "https":
	default:
		return nil
	}
	return func() tea.Msg {
		_ = exec.Command("open", rawURL).Start()
		return nil
	}
}
