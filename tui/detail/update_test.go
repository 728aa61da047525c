package detail

import (
	"errors"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vuminhle/fossildeck/domain"
)

func keyRune(r rune) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}}
}

func TestUpdate_DetailLoaded_ChainsCommentFetch(t *testing.T) {
	m, deps := newTestModel(loggedOut())
	deps.thread.tree = []domain.Comment{makeComment(1, "ada", 10)}

	m, cmd := m.Update(DetailLoadedMsg{
		Fossil: domain.FossilDetail{FossilID: "FOSSIL-1", Name: "Trilobite"},
		ReqSeq: 0,
	})
	if m.loading {
		t.Fatalf("expected loading cleared")
	}
	if !m.hasFossil || m.fossil.Name != "Trilobite" {
		t.Fatalf("expected fossil installed, got %+v", m.fossil)
	}
	if cmd == nil {
		t.Fatalf("expected comment fetch command")
	}

	msg, ok := cmd().(CommentsLoadedMsg)
	if !ok {
		t.Fatalf("expected CommentsLoadedMsg, got %T", msg)
	}
	m, _ = m.Update(msg)
	if len(m.comments) != 1 || m.comments[0].ID != 1 {
		t.Fatalf("expected comment tree installed, got %+v", m.comments)
	}
	if len(m.rows) != 1 {
		t.Fatalf("expected one flattened row, got %d", len(m.rows))
	}
}

func TestUpdate_StaleCommentsLoaded_IgnoredByReqSeq(t *testing.T) {
	m, _ := newTestModel(loggedOut())
	m.comments = []domain.Comment{makeComment(1, "ada", 10)}
	m.rebuildRows()
	m.commentsReqSeq = 3
	m.loadingTree = true

	m, cmd := m.Update(CommentsLoadedMsg{
		Comments: []domain.Comment{makeComment(99, "late", 11)},
		ReqSeq:   2,
	})
	if cmd != nil {
		t.Fatalf("expected nil cmd for stale response")
	}
	if len(m.comments) != 1 || m.comments[0].ID != 1 {
		t.Fatalf("stale response should not replace the tree")
	}
	if !m.loadingTree {
		t.Fatalf("stale response should not clear loading state")
	}
}

func TestUpdate_StaleDetailLoaded_IgnoredByReqSeq(t *testing.T) {
	m, _ := newTestModel(loggedOut())
	m.fossilReqSeq = 2
	m.loading = true

	m, cmd := m.Update(DetailLoadedMsg{
		Fossil: domain.FossilDetail{Name: "Old"},
		ReqSeq: 1,
	})
	if cmd != nil || m.hasFossil || !m.loading {
		t.Fatalf("stale detail response should be dropped")
	}
}

func TestUpdate_RefreshedDetail_DropsEarlierCommentFetch(t *testing.T) {
	m, _ := newTestModel(loggedOut())

	m, _ = m.Update(DetailLoadedMsg{
		Fossil: domain.FossilDetail{FossilID: "FOSSIL-1"},
		ReqSeq: 0,
	})
	firstSeq := m.commentsReqSeq

	// Refresh the detail while the first comment fetch is still in flight.
	m, _ = m.Update(keyRune('r'))
	m, _ = m.Update(DetailLoadedMsg{
		Fossil: domain.FossilDetail{FossilID: "FOSSIL-1"},
		ReqSeq: m.fossilReqSeq,
	})
	if m.commentsReqSeq == firstSeq {
		t.Fatalf("refreshed detail must issue its comment fetch under a new sequence")
	}

	m, _ = m.Update(CommentsLoadedMsg{
		Comments: []domain.Comment{makeComment(2, "fresh", 11)},
		ReqSeq:   m.commentsReqSeq,
	})
	m, _ = m.Update(CommentsLoadedMsg{
		Comments: []domain.Comment{makeComment(1, "stale", 12)},
		ReqSeq:   firstSeq,
	})
	if len(m.comments) != 1 || m.comments[0].ID != 2 {
		t.Fatalf("earlier comment fetch should not overwrite the refreshed tree, got %+v", m.comments)
	}
}

func TestUpdate_ModeratedSubmit_KeepsDraftAndComposer(t *testing.T) {
	m, _ := newTestModel(loggedIn(10))
	m.composing = true
	m.input.SetValue("spicy take")
	m.posting = true

	m, cmd := m.Update(CommentPostedMsg{
		Comment: makeComment(5, "me", 10),
		Err:     domain.ErrModerated,
	})
	if cmd != nil {
		t.Fatalf("moderated submit should not trigger a refetch")
	}
	if !m.composing {
		t.Fatalf("composer should stay open after moderation")
	}
	if m.Draft() != "spicy take" {
		t.Fatalf("draft should survive moderation, got %q", m.Draft())
	}
	if m.notice == "" {
		t.Fatalf("expected a moderation notice")
	}
}

func TestUpdate_SuccessfulSubmit_ClearsDraftAndRefetches(t *testing.T) {
	m, _ := newTestModel(loggedIn(10))
	m.composing = true
	target := makeComment(3, "ada", 11)
	m.replyTo = &target
	m.input.SetValue("agreed")
	m.posting = true
	prevSeq := m.commentsReqSeq

	m, cmd := m.Update(CommentPostedMsg{Comment: makeComment(7, "me", 10)})
	if m.composing {
		t.Fatalf("composer should close on success")
	}
	if m.Draft() != "" {
		t.Fatalf("draft should be cleared on success, got %q", m.Draft())
	}
	if m.replyTo != nil {
		t.Fatalf("reply target should be cleared on success")
	}
	if m.commentsReqSeq != prevSeq+1 {
		t.Fatalf("expected comment seq bump, got %d", m.commentsReqSeq)
	}
	if cmd == nil {
		t.Fatalf("expected refetch command after successful submit")
	}
	msg, ok := cmd().(CommentsLoadedMsg)
	if !ok || msg.ReqSeq != m.commentsReqSeq {
		t.Fatalf("refetch should carry the new seq, got %+v", msg)
	}
}

func TestUpdate_SubmitWhileLoggedOut_PromptsLogin(t *testing.T) {
	m, deps := newTestModel(loggedOut())
	m.composing = true
	m.input.Focus()
	m.input.SetValue("hello")

	m, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	if cmd != nil {
		t.Fatalf("logged-out submit should not reach the network")
	}
	if deps.thread.lastContent != "" {
		t.Fatalf("logged-out submit should not call the service")
	}
	if !m.promptLogin {
		t.Fatalf("expected login prompt")
	}
	if m.Draft() != "hello" {
		t.Fatalf("draft should survive the login prompt, got %q", m.Draft())
	}
}

func TestUpdate_BlankSubmit_RejectedLocally(t *testing.T) {
	m, deps := newTestModel(loggedIn(10))
	m.composing = true
	m.input.SetValue("   ")

	m, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	if cmd != nil || deps.thread.lastContent != "" {
		t.Fatalf("blank submit should be rejected without a service call")
	}
	if m.notice == "" {
		t.Fatalf("expected an empty-comment notice")
	}
}

func TestUpdate_ReplyKey_SetsTargetAndEscClearsIt(t *testing.T) {
	m, _ := newTestModel(loggedIn(10))
	m.comments = []domain.Comment{makeComment(4, "ada", 11)}
	m.rebuildRows()
	m.cursor = 1

	m, _ = m.Update(keyRune('R'))
	if !m.composing || m.replyTo == nil || m.replyTo.ID != 4 {
		t.Fatalf("expected composer open with reply target 4")
	}

	m.input.SetValue("draft in progress")
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	if m.replyTo != nil {
		t.Fatalf("esc should drop the reply target")
	}
	if !m.composing {
		t.Fatalf("cancelling a reply should keep the composer open")
	}
	if m.Draft() != "" {
		t.Fatalf("cancelling a reply should reset the draft, got %q", m.Draft())
	}

	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	if m.composing {
		t.Fatalf("second esc should close the composer")
	}
}

func TestUpdate_ReplyToModeratedSubmit_TargetSurvives(t *testing.T) {
	m, _ := newTestModel(loggedIn(10))
	m.comments = []domain.Comment{makeComment(4, "ada", 11)}
	m.rebuildRows()
	m.cursor = 1
	m, _ = m.Update(keyRune('R'))
	m.input.SetValue("rejected reply")

	m, _ = m.Update(CommentPostedMsg{Err: domain.ErrModerated})
	if m.replyTo == nil || m.replyTo.ID != 4 {
		t.Fatalf("reply target should survive moderation")
	}
}

func TestUpdate_FavoriteWhileLoggedOut_PromptsWithoutNetwork(t *testing.T) {
	m, deps := newTestModel(loggedOut())
	m.hasFossil = true
	m.fossil = domain.FossilDetail{FossilID: "FOSSIL-1", LikedCount: 2}

	m, cmd := m.Update(keyRune('f'))
	if cmd != nil {
		t.Fatalf("logged-out favorite should not produce a command")
	}
	if !m.promptLogin {
		t.Fatalf("expected login prompt")
	}
	if len(deps.favorites.addCalls)+len(deps.favorites.removeCalls) != 0 {
		t.Fatalf("favorite service should not be called while logged out")
	}
}

func TestUpdate_FavoriteToggle_InstallsUpdatedRecord(t *testing.T) {
	m, deps := newTestModel(loggedIn(10))
	m.hasFossil = true
	m.fossil = domain.FossilDetail{FossilID: "FOSSIL-1", LikedCount: 2}

	m, cmd := m.Update(keyRune('f'))
	if !m.togglingFav || cmd == nil {
		t.Fatalf("expected toggle in flight")
	}
	msg, ok := cmd().(FavoriteToggledMsg)
	if !ok || msg.Err != nil {
		t.Fatalf("expected successful toggle, got %+v", msg)
	}
	if len(deps.favorites.addCalls) != 1 || deps.favorites.addCalls[0] != "FOSSIL-1" {
		t.Fatalf("expected one add call, got %+v", deps.favorites.addCalls)
	}
	m, _ = m.Update(msg)
	if m.togglingFav {
		t.Fatalf("toggle flag should clear")
	}
	if !m.fossil.IsFavorited || m.fossil.LikedCount != 3 {
		t.Fatalf("expected favorited record with bumped counter, got %+v", m.fossil)
	}
}

func TestUpdate_FavoriteFailure_KeepsPreviousRecord(t *testing.T) {
	m, deps := newTestModel(loggedIn(10))
	m.hasFossil = true
	m.fossil = domain.FossilDetail{FossilID: "FOSSIL-1", LikedCount: 2}
	deps.favorites.err = domain.ErrNetwork

	m, cmd := m.Update(keyRune('f'))
	msg := cmd().(FavoriteToggledMsg)
	if !errors.Is(msg.Err, domain.ErrNetwork) {
		t.Fatalf("expected network error, got %v", msg.Err)
	}
	m, _ = m.Update(msg)
	if m.fossil.IsFavorited || m.fossil.LikedCount != 2 {
		t.Fatalf("failed toggle should leave the record untouched, got %+v", m.fossil)
	}
	if !errors.Is(m.err, domain.ErrNetwork) {
		t.Fatalf("expected error surfaced, got %v", m.err)
	}
}

func TestUpdate_ReactionPicker_TogglesOffOwnReaction(t *testing.T) {
	m, deps := newTestModel(loggedIn(10))
	c := makeComment(7, "ada", 11)
	c.UserReaction = domain.ReactionLike
	m.comments = []domain.Comment{c}
	m.rebuildRows()
	m.cursor = 1

	m, _ = m.Update(keyRune('e'))
	if !m.showReactions {
		t.Fatalf("expected reaction picker open")
	}
	// Cursor starts on Like, which the user already holds.
	m, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	if m.showReactions {
		t.Fatalf("picker should close on selection")
	}
	if cmd == nil {
		t.Fatalf("expected reaction command")
	}
	msg := cmd().(ReactionDoneMsg)
	if msg.Err != nil {
		t.Fatalf("unexpected reaction error: %v", msg.Err)
	}
	if len(deps.reactions.clearCalls) != 1 || deps.reactions.clearCalls[0] != 7 {
		t.Fatalf("expected clear of comment 7, got %+v", deps.reactions.clearCalls)
	}
	if len(deps.reactions.setCalls) != 0 {
		t.Fatalf("toggle-off should not set, got %+v", deps.reactions.setCalls)
	}

	prevSeq := m.commentsReqSeq
	m, refetch := m.Update(msg)
	if refetch == nil || m.commentsReqSeq != prevSeq+1 {
		t.Fatalf("successful reaction should refetch the tree")
	}
}

func TestUpdate_ReactionPicker_SetsDifferentReaction(t *testing.T) {
	m, deps := newTestModel(loggedIn(10))
	c := makeComment(7, "ada", 11)
	c.UserReaction = domain.ReactionLike
	m.comments = []domain.Comment{c}
	m.rebuildRows()
	m.cursor = 1

	m, _ = m.Update(keyRune('e'))
	m, _ = m.Update(keyRune('l')) // move to Heart
	m, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	if cmd == nil {
		t.Fatalf("expected reaction command")
	}
	cmd()
	if len(deps.reactions.setCalls) != 1 || deps.reactions.setCalls[0] != domain.ReactionHeart {
		t.Fatalf("expected Heart set, got %+v", deps.reactions.setCalls)
	}
}

func TestUpdate_ReactionWhileLoggedOut_Prompts(t *testing.T) {
	m, _ := newTestModel(loggedOut())
	m.comments = []domain.Comment{makeComment(7, "ada", 11)}
	m.rebuildRows()
	m.cursor = 1

	m, _ = m.Update(keyRune('e'))
	if m.showReactions {
		t.Fatalf("picker should not open while logged out")
	}
	if !m.promptLogin {
		t.Fatalf("expected login prompt")
	}
}

func TestUpdate_DeleteRequiresOwnership(t *testing.T) {
	m, _ := newTestModel(loggedIn(10))
	m.comments = []domain.Comment{makeComment(9, "someone", 99)}
	m.rebuildRows()
	m.cursor = 1

	m, _ = m.Update(keyRune('d'))
	if m.confirmDelete {
		t.Fatalf("delete should be refused for another user's comment")
	}
}

func TestUpdate_DeleteOwnComment_ConfirmAndRefetch(t *testing.T) {
	m, deps := newTestModel(loggedIn(10))
	m.comments = []domain.Comment{makeComment(9, "me", 10)}
	m.rebuildRows()
	m.cursor = 1

	m, _ = m.Update(keyRune('d'))
	if !m.confirmDelete {
		t.Fatalf("expected delete confirmation")
	}
	m, cmd := m.Update(keyRune('y'))
	if cmd == nil {
		t.Fatalf("expected delete command")
	}
	msg := cmd().(CommentDeletedMsg)
	if len(deps.thread.deletedComments) != 1 || deps.thread.deletedComments[0] != 9 {
		t.Fatalf("expected delete of comment 9, got %+v", deps.thread.deletedComments)
	}
	prevSeq := m.commentsReqSeq
	m, refetch := m.Update(msg)
	if refetch == nil || m.commentsReqSeq != prevSeq+1 {
		t.Fatalf("successful delete should refetch the tree")
	}
}

func TestUpdate_DeleteWhileDeleteInFlight_Refused(t *testing.T) {
	m, deps := newTestModel(loggedIn(10))
	m.comments = []domain.Comment{makeComment(9, "me", 10)}
	m.rebuildRows()
	m.cursor = 1

	m, _ = m.Update(keyRune('d'))
	m, cmd := m.Update(keyRune('y'))
	if cmd == nil || !m.deleting {
		t.Fatalf("expected a delete in flight")
	}
	done := cmd().(CommentDeletedMsg)

	m, _ = m.Update(keyRune('d'))
	if m.confirmDelete {
		t.Fatalf("second delete must wait for the first to finish")
	}

	m, _ = m.Update(done)
	if m.deleting {
		t.Fatalf("delete flag should clear when the call completes")
	}
	if len(deps.thread.deletedComments) != 1 {
		t.Fatalf("expected a single delete call, got %+v", deps.thread.deletedComments)
	}
}

func TestUpdate_LoginPrompt_EnterRequestsLogin(t *testing.T) {
	m, _ := newTestModel(loggedOut())
	m.promptLogin = true

	m, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	if m.promptLogin {
		t.Fatalf("prompt should dismiss")
	}
	if cmd == nil {
		t.Fatalf("expected login request command")
	}
	if _, ok := cmd().(RequestLoginMsg); !ok {
		t.Fatalf("expected RequestLoginMsg")
	}
}

func TestUpdate_LoginPrompt_OtherKeyDismisses(t *testing.T) {
	m, _ := newTestModel(loggedOut())
	m.promptLogin = true

	m, cmd := m.Update(keyRune('x'))
	if m.promptLogin || cmd != nil {
		t.Fatalf("any other key should just dismiss the prompt")
	}
}

func TestUpdate_EscFromBrowse_EmitsClose(t *testing.T) {
	m, _ := newTestModel(loggedOut())
	m.loading = false
	m.hasFossil = true

	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	if cmd == nil {
		t.Fatalf("expected close command")
	}
	if _, ok := cmd().(CloseMsg); !ok {
		t.Fatalf("expected CloseMsg")
	}
}
