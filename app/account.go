package app

import (
	"context"

	"github.com/vuminhle/fossildeck/domain"
)

// Credentials are the login form fields.
type Credentials struct {
	Username string
	Password string
}

// Registration are the sign-up form fields.
type Registration struct {
	Username string
	Email    string
	Password string
}

// LoginResult is what a successful login yields: the bearer token plus the
// identity the session store keeps alongside it.
type LoginResult struct {
	Token     string
	UserID    int
	Username  string
	Email     string
	Role      string
	ExpiresIn int // seconds until the token expires
}

// AccountService covers authentication and the user-scoped account endpoints.
type AccountService interface {
	Login(ctx context.Context, c Credentials) (LoginResult, error)

	Register(ctx context.Context, r Registration) error

	// ChangePassword requires authentication.
	ChangePassword(ctx context.Context, oldPassword, newPassword string) error

	// Favorites returns the authenticated user's bookmarked fossils.
	Favorites(ctx context.Context) ([]domain.FossilSummary, error)
}
