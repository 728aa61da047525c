package app

import (
	"context"
	"sync"

	"github.com/vuminhle/fossildeck/domain"
)

// FavoriteService adds and removes catalog bookmarks for the logged-in user.
type FavoriteService interface {
	Add(ctx context.Context, fossilID string) error
	Remove(ctx context.Context, fossilID string) error
}

// SessionReader is the slice of session state the toggler needs.
type SessionReader interface {
	Authenticated() bool
}

// FavoriteToggler flips a fossil's favorite state. The like counter is
// adjusted locally instead of refetching the detail record: the counter is
// not safety-critical, and the small drift risk buys responsiveness.
type FavoriteToggler struct {
	favorites FavoriteService
	session   SessionReader

	mu   sync.Mutex
	busy bool
}

// NewFavoriteToggler creates the toggle controller for one screen.
func NewFavoriteToggler(favorites FavoriteService, session SessionReader) *FavoriteToggler {
	return &FavoriteToggler{favorites: favorites, session: session}
}

// Busy reports whether a toggle is currently in flight.
func (t *FavoriteToggler) Busy() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.busy
}

// Toggle removes the favorite when the fossil is favorited, adds it
// otherwise, and returns an updated copy with the flag flipped and the like
// counter adjusted by one, floored at zero. The input is never mutated; on
// failure the caller keeps its previous record untouched.
//
// Requires authentication (domain.ErrLoginRequired without network contact
// otherwise). A second toggle while one is in flight is refused with
// domain.ErrToggleInFlight so a double-tap cannot double-submit.
func (t *FavoriteToggler) Toggle(ctx context.Context, fossil domain.FossilDetail) (domain.FossilDetail, error) {
	if !t.session.Authenticated() {
		return domain.FossilDetail{}, domain.ErrLoginRequired
	}

	t.mu.Lock()
	if t.busy {
		t.mu.Unlock()
		return domain.FossilDetail{}, domain.ErrToggleInFlight
	}
	t.busy = true
	t.mu.Unlock()
	defer func() {
		t.mu.Lock()
		t.busy = false
		t.mu.Unlock()
	}()

	var err error
	if fossil.IsFavorited {
		err = t.favorites.Remove(ctx, fossil.FossilID)
	} else {
		err = t.favorites.Add(ctx, fossil.FossilID)
	}
	if err != nil {
		return domain.FossilDetail{}, err
	}

	updated := fossil
	if fossil.IsFavorited {
		updated.IsFavorited = false
		if updated.LikedCount > 0 {
			updated.LikedCount--
		}
	} else {
		updated.IsFavorited = true
		updated.LikedCount++
	}
	return updated, nil
}
