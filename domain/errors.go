package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrNetwork indicates the backend could not be reached at all.
	ErrNetwork = errors.New("network unavailable")

	// ErrMalformedResponse indicates the backend answered with a body the
	// client could not decode.
	ErrMalformedResponse = errors.New("malformed response")

	// ErrModerated indicates a submitted comment was accepted but immediately
	// hidden by the server's content filter. The draft must survive so the
	// user can edit and resubmit.
	ErrModerated = errors.New("comment hidden by moderation")

	// ErrLoginRequired routes the user to authentication. It is a control-flow
	// signal, not a backend failure.
	ErrLoginRequired = errors.New("login required")

	// ErrToggleInFlight refuses a favorite toggle while one is still running.
	ErrToggleInFlight = errors.New("favorite toggle already in flight")

	// ErrEmptyComment indicates the user submitted a blank comment.
	ErrEmptyComment = errors.New("comment cannot be empty")
)

// ServerError carries a rejection from the backend: an HTTP error status or a
// response envelope with success=false. The server's message is surfaced
// verbatim when it supplies one.
type ServerError struct {
	Status  int
	Message string
}

func (e *ServerError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return fmt.Sprintf("server rejected request (status %d)", e.Status)
}

// UserMessage converts any client error into text fit for the status line.
func UserMessage(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrNetwork):
		return "Cannot reach the museum. Check your connection."
	case errors.Is(err, ErrModerated):
		return "Your comment was hidden for inappropriate content. Edit it and try again."
	case errors.Is(err, ErrLoginRequired):
		return "Please log in first."
	case errors.Is(err, ErrEmptyComment):
		return "Comment cannot be empty."
	case errors.Is(err, ErrMalformedResponse):
		return "The museum sent an unexpected response."
	}
	var srv *ServerError
	if errors.As(err, &srv) {
		return srv.Error()
	}
	return err.Error()
}
