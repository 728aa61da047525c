package app

import (
	"context"

	"github.com/vuminhle/fossildeck/domain"
)

// CommentService manages the threaded discussion attached to one fossil.
type CommentService interface {
	// FetchTree returns the visible comment tree for a fossil. Nodes hidden
	// by moderation are already filtered out at every depth.
	FetchTree(ctx context.Context, fossilID string) ([]domain.Comment, error)

	// Submit posts a comment, or a reply when parentID is non-zero. When the
	// server accepts the comment but hides it immediately (content filter),
	// the created comment is returned together with domain.ErrModerated.
	Submit(ctx context.Context, fossilID, content string, parentID int) (domain.Comment, error)

	// Delete removes the user's own comment. Requires authentication; the
	// caller checks the session before calling.
	Delete(ctx context.Context, commentID int) error

	// History returns the authenticated user's flat comment history,
	// hidden entries included.
	History(ctx context.Context) ([]domain.CommentRecord, error)
}
