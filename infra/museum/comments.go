package museum

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"github.com/vuminhle/fossildeck/domain"
)

// commentService implements app.CommentService against the museum API.
type commentService struct {
	client *Client
}

// NewCommentService creates a CommentService backed by the museum API.
func NewCommentService(client *Client) *commentService {
	return &commentService{client: client}
}

type commentUserDTO struct {
	UserID   int    `json:"user_id"`
	Username string `json:"username"`
}

type commentDTO struct {
	CommentID       int            `json:"comment_id"`
	Content         string         `json:"content"`
	CreatedAt       string         `json:"created_at"`
	FossilID        string         `json:"fossil_id"`
	ParentCommentID *int           `json:"parent_comment_id"`
	User            commentUserDTO `json:"user"`
	Reactions       map[string]int `json:"reactions"`
	UserReaction    *string        `json:"user_reaction"`
	Replies         []commentDTO   `json:"replies"`
	IsHidden        bool           `json:"is_hidden"`
}

func (d commentDTO) toDomain() domain.Comment {
	parentID := 0
	if d.ParentCommentID != nil {
		parentID = *d.ParentCommentID
	}
	var userReaction domain.ReactionType
	if d.UserReaction != nil {
		userReaction = domain.ReactionType(*d.UserReaction)
	}
	reactions := make(map[domain.ReactionType]int, len(d.Reactions))
	for name, count := range d.Reactions {
		reactions[domain.ReactionType(name)] = count
	}
	replies := make([]domain.Comment, 0, len(d.Replies))
	for _, r := range d.Replies {
		replies = append(replies, r.toDomain())
	}
	return domain.Comment{
		ID:           d.CommentID,
		Content:      d.Content,
		CreatedAt:    parseTime(d.CreatedAt),
		FossilID:     d.FossilID,
		ParentID:     parentID,
		Author:       domain.CommentAuthor{UserID: d.User.UserID, Username: d.User.Username},
		Reactions:    reactions,
		UserReaction: userReaction,
		Replies:      replies,
		Hidden:       d.IsHidden,
	}
}

type createCommentRequest struct {
	FossilID        string `json:"fossil_id"`
	Content         string `json:"content"`
	ParentCommentID *int   `json:"parent_comment_id,omitempty"`
}

type deleteCommentRequest struct {
	CommentID int `json:"comment_id"`
}

type commentHistoryDTO struct {
	CommentID       int    `json:"comment_id"`
	FossilID        string `json:"fossil_id"`
	AuthorID        int    `json:"author_id"`
	ParentCommentID *int   `json:"parent_comment_id"`
	Content         string `json:"content"`
	IsHidden        bool   `json:"is_hidden"`
	CreatedAt       string `json:"created_at"`
	UpdatedAt       string `json:"updated_at"`
}

func (s *commentService) FetchTree(ctx context.Context, fossilID string) ([]domain.Comment, error) {
	raw, err := s.client.get(ctx, "/comments/getAllComments/"+url.PathEscape(fossilID))
	if err != nil {
		return nil, fmt.Errorf("fetching comments for %s: %w", fossilID, err)
	}

	var dtos []commentDTO
	if err := unwrap(raw, &dtos); err != nil {
		return nil, fmt.Errorf("fetching comments for %s: %w", fossilID, err)
	}

	comments := make([]domain.Comment, 0, len(dtos))
	for _, d := range dtos {
		comments = append(comments, d.toDomain())
	}
	return domain.FilterHidden(comments), nil
}

func (s *commentService) Submit(ctx context.Context, fossilID, content string, parentID int) (domain.Comment, error) {
	content = strings.TrimSpace(content)
	if content == "" {
		return domain.Comment{}, domain.ErrEmptyComment
	}

	req := createCommentRequest{FossilID: fossilID, Content: content}
	if parentID != 0 {
		req.ParentCommentID = &parentID
	}

	raw, err := s.client.post(ctx, "/comments/create-comment", req)
	if err != nil {
		return domain.Comment{}, fmt.Errorf("posting comment: %w", err)
	}

	var dto commentDTO
	if err := unwrap(raw, &dto); err != nil {
		return domain.Comment{}, fmt.Errorf("posting comment: %w", err)
	}

	created := dto.toDomain()
	if created.Hidden {
		// The server accepted the comment but its content filter hid it.
		// Soft failure: the caller keeps the draft for editing.
		return created, domain.ErrModerated
	}
	return created, nil
}

func (s *commentService) Delete(ctx context.Context, commentID int) error {
	raw, err := s.client.delete(ctx, "/comments/delete-comment", deleteCommentRequest{CommentID: commentID})
	if err != nil {
		return fmt.Errorf("deleting comment %d: %w", commentID, err)
	}
	if err := unwrap(raw, nil); err != nil {
		return fmt.Errorf("deleting comment %d: %w", commentID, err)
	}
	return nil
}

func (s *commentService) History(ctx context.Context) ([]domain.CommentRecord, error) {
	raw, err := s.client.get(ctx, "/comments/history")
	if err != nil {
		return nil, fmt.Errorf("fetching comment history: %w", err)
	}

	var dtos []commentHistoryDTO
	if err := unwrap(raw, &dtos); err != nil {
		return nil, fmt.Errorf("fetching comment history: %w", err)
	}

	records := make([]domain.CommentRecord, 0, len(dtos))
	for _, d := range dtos {
		parentID := 0
		if d.ParentCommentID != nil {
			parentID = *d.ParentCommentID
		}
		records = append(records, domain.CommentRecord{
			ID:        d.CommentID,
			FossilID:  d.FossilID,
			AuthorID:  d.AuthorID,
			ParentID:  parentID,
			Content:   d.Content,
			Hidden:    d.IsHidden,
			CreatedAt: parseTime(d.CreatedAt),
			UpdatedAt: parseTime(d.UpdatedAt),
		})
	}
	return records, nil
}
