package museum

import (
	"context"
	"fmt"

	"github.com/vuminhle/fossildeck/app"
	"github.com/vuminhle/fossildeck/domain"
)

// accountService implements app.AccountService against the museum API.
type accountService struct {
	client *Client
}

// NewAccountService creates an AccountService backed by the museum API.
func NewAccountService(client *Client) *accountService {
	return &accountService{client: client}
}

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type registerRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type changePasswordRequest struct {
	OldPassword string `json:"oldPassword"`
	NewPassword string `json:"newPassword"`
}

type userDTO struct {
	UserID   int    `json:"user_id"`
	Username string `json:"username"`
	Email    string `json:"email"`
	Role     string `json:"role"`
}

type loginData struct {
	Token     string  `json:"token"`
	User      userDTO `json:"user"`
	ExpiresIn int     `json:"expires_in"`
}

func (s *accountService) Login(ctx context.Context, c app.Credentials) (app.LoginResult, error) {
	raw, err := s.client.post(ctx, "/users/login", loginRequest{Username: c.Username, Password: c.Password})
	if err != nil {
		return app.LoginResult{}, fmt.Errorf("logging in: %w", err)
	}

	var data loginData
	if err := unwrap(raw, &data); err != nil {
		return app.LoginResult{}, fmt.Errorf("logging in: %w", err)
	}
	return app.LoginResult{
		Token:     data.Token,
		UserID:    data.User.UserID,
		Username:  data.User.Username,
		Email:     data.User.Email,
		Role:      data.User.Role,
		ExpiresIn: data.ExpiresIn,
	}, nil
}

func (s *accountService) Register(ctx context.Context, r app.Registration) error {
	raw, err := s.client.post(ctx, "/users/register", registerRequest{
		Username: r.Username,
		Email:    r.Email,
		Password: r.Password,
	})
	if err != nil {
		return fmt.Errorf("registering: %w", err)
	}
	if err := unwrap(raw, nil); err != nil {
		return fmt.Errorf("registering: %w", err)
	}
	return nil
}

func (s *accountService) ChangePassword(ctx context.Context, oldPassword, newPassword string) error {
	raw, err := s.client.post(ctx, "/users/change-password", changePasswordRequest{
		OldPassword: oldPassword,
		NewPassword: newPassword,
	})
	if err != nil {
		return fmt.Errorf("changing password: %w", err)
	}
	if err := unwrap(raw, nil); err != nil {
		return fmt.Errorf("changing password: %w", err)
	}
	return nil
}

func (s *accountService) Favorites(ctx context.Context) ([]domain.FossilSummary, error) {
	raw, err := s.client.get(ctx, "/users/favorites")
	if err != nil {
		return nil, fmt.Errorf("fetching favorites: %w", err)
	}

	var dtos []fossilSummaryDTO
	if err := unwrap(raw, &dtos); err != nil {
		return nil, fmt.Errorf("fetching favorites: %w", err)
	}

	fossils := make([]domain.FossilSummary, 0, len(dtos))
	for _, d := range dtos {
		fossils = append(fossils, d.toDomain())
	}
	return fossils, nil
}
