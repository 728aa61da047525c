package app

import (
	"context"

	"github.com/vuminhle/fossildeck/domain"
)

// ReactionService executes reaction mutations against the backend.
type ReactionService interface {
	// Set adds the user's reaction to a comment, replacing any existing one.
	Set(ctx context.Context, commentID int, t domain.ReactionType) error

	// Clear removes the user's reaction from a comment.
	Clear(ctx context.Context, commentID int) error
}

// ExecuteReaction runs a resolved reaction decision. A noop returns nil
// without touching the network.
func ExecuteReaction(ctx context.Context, svc ReactionService, action domain.ReactionAction) error {
	switch action.Op {
	case domain.ReactionSet:
		return svc.Set(ctx, action.CommentID, action.Type)
	case domain.ReactionClear:
		return svc.Clear(ctx, action.CommentID)
	}
	return nil
}
