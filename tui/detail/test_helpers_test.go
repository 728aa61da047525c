package detail

import (
	"context"
	"time"

	"github.com/vuminhle/fossildeck/app"
	"github.com/vuminhle/fossildeck/domain"
	"github.com/vuminhle/fossildeck/infra/session"
)

type stubCatalog struct {
	detail domain.FossilDetail
	err    error
}

func (s *stubCatalog) Search(context.Context, domain.SearchQuery) (domain.SearchPage, error) {
	return domain.SearchPage{}, nil
}

func (s *stubCatalog) Detail(context.Context, string) (domain.FossilDetail, error) {
	return s.detail, s.err
}

type stubThread struct {
	tree       []domain.Comment
	fetchErr   error
	fetchCalls int

	submitted       domain.Comment
	submitErr       error
	lastContent     string
	lastParentID    int
	deletedComments []int
}

func (s *stubThread) FetchTree(context.Context, string) ([]domain.Comment, error) {
	s.fetchCalls++
	return s.tree, s.fetchErr
}

func (s *stubThread) Submit(_ context.Context, _, content string, parentID int) (domain.Comment, error) {
	s.lastContent = content
	s.lastParentID = parentID
	return s.submitted, s.submitErr
}

func (s *stubThread) Delete(_ context.Context, commentID int) error {
	s.deletedComments = append(s.deletedComments, commentID)
	return nil
}

func (s *stubThread) History(context.Context) ([]domain.CommentRecord, error) {
	return nil, nil
}

type stubReactions struct {
	setCalls   []domain.ReactionType
	clearCalls []int
	err        error
}

func (s *stubReactions) Set(_ context.Context, _ int, t domain.ReactionType) error {
	s.setCalls = append(s.setCalls, t)
	return s.err
}

func (s *stubReactions) Clear(_ context.Context, commentID int) error {
	s.clearCalls = append(s.clearCalls, commentID)
	return s.err
}

type stubFavorites struct {
	addCalls    []string
	removeCalls []string
	err         error
}

func (s *stubFavorites) Add(_ context.Context, fossilID string) error {
	s.addCalls = append(s.addCalls, fossilID)
	return s.err
}

func (s *stubFavorites) Remove(_ context.Context, fossilID string) error {
	s.removeCalls = append(s.removeCalls, fossilID)
	return s.err
}

type stubSession struct {
	snap session.Snapshot
}

func (s *stubSession) Authenticated() bool {
	return s.snap.LoggedIn()
}

func (s *stubSession) Current() session.Snapshot {
	return s.snap
}

func loggedIn(userID int) *stubSession {
	return &stubSession{snap: session.Snapshot{Token: "tok", UserID: userID}}
}

func loggedOut() *stubSession {
	return &stubSession{}
}

type testDeps struct {
	catalog   *stubCatalog
	thread    *stubThread
	reactions *stubReactions
	favorites *stubFavorites
	session   *stubSession
}

func newTestModel(sess *stubSession) (Model, *testDeps) {
	deps := &testDeps{
		catalog:   &stubCatalog{},
		thread:    &stubThread{},
		reactions: &stubReactions{},
		favorites: &stubFavorites{},
		session:   sess,
	}
	toggler := app.NewFavoriteToggler(deps.favorites, sess)
	m := New(deps.catalog, deps.thread, deps.reactions, toggler, sess, nil, "FOSSIL-1")
	return m, deps
}

func makeComment(id int, author string, authorID int) domain.Comment {
	return domain.Comment{
		ID:        id,
		Content:   "comment " + author,
		CreatedAt: time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC),
		FossilID:  "FOSSIL-1",
		Author:    domain.CommentAuthor{UserID: authorID, Username: author},
	}
}
