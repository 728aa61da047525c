package museum

import (
	"context"
	"fmt"

	"github.com/vuminhle/fossildeck/domain"
)

// reactionService implements app.ReactionService against the museum API.
type reactionService struct {
	client *Client
}

// NewReactionService creates a ReactionService backed by the museum API.
func NewReactionService(client *Client) *reactionService {
	return &reactionService{client: client}
}

type addReactionRequest struct {
	CommentID int    `json:"comment_id"`
	Type      string `json:"type"`
}

type deleteReactionRequest struct {
	CommentID int `json:"comment_id"`
}

func (s *reactionService) Set(ctx context.Context, commentID int, t domain.ReactionType) error {
	raw, err := s.client.post(ctx, "/reactions", addReactionRequest{CommentID: commentID, Type: string(t)})
	if err != nil {
		return fmt.Errorf("setting reaction on comment %d: %w", commentID, err)
	}
	// The response carries the reaction record; counts come from the next
	// tree refetch, so only the envelope status matters here.
	if err := unwrap(raw, nil); err != nil {
		return fmt.Errorf("setting reaction on comment %d: %w", commentID, err)
	}
	return nil
}

func (s *reactionService) Clear(ctx context.Context, commentID int) error {
	raw, err := s.client.delete(ctx, "/reactions/delete-reaction", deleteReactionRequest{CommentID: commentID})
	if err != nil {
		return fmt.Errorf("clearing reaction on comment %d: %w", commentID, err)
	}
	if err := unwrap(raw, nil); err != nil {
		return fmt.Errorf("clearing reaction on comment %d: %w", commentID, err)
	}
	return nil
}
