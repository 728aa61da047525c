package museum

import (
	"context"
	"fmt"
)

// favoriteService implements app.FavoriteService against the museum API.
type favoriteService struct {
	client *Client
}

// NewFavoriteService creates a FavoriteService backed by the museum API.
func NewFavoriteService(client *Client) *favoriteService {
	return &favoriteService{client: client}
}

type favoriteRequest struct {
	FossilID string `json:"fossil_id"`
}

func (s *favoriteService) Add(ctx context.Context, fossilID string) error {
	raw, err := s.client.post(ctx, "/users/add-fossil-to-favorite", favoriteRequest{FossilID: fossilID})
	if err != nil {
		return fmt.Errorf("adding favorite %s: %w", fossilID, err)
	}
	if err := unwrap(raw, nil); err != nil {
		return fmt.Errorf("adding favorite %s: %w", fossilID, err)
	}
	return nil
}

func (s *favoriteService) Remove(ctx context.Context, fossilID string) error {
	raw, err := s.client.delete(ctx, "/users/remove-fossil-from-favorite", favoriteRequest{FossilID: fossilID})
	if err != nil {
		return fmt.Errorf("removing favorite %s: %w", fossilID, err)
	}
	if err := unwrap(raw, nil); err != nil {
		return fmt.Errorf("removing favorite %s: %w", fossilID, err)
	}
	return nil
}
