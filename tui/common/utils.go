package common

import (
	"fmt"
	"time"

	"github.com/charmbracelet/x/ansi"
)

// Truncate cuts text to the given display width, appending an ellipsis when
// something was dropped. Width-aware, so wide runes and ANSI sequences do not
// break alignment.
func Truncate(text string, width int) string {
	if width <= 1 {
		return text
	}
	if ansi.StringWidth(text) <= width {
		return text
	}
	return ansi.Cut(text, 0, width-1) + "…"
}

// RelativeTime formats a timestamp the way feeds do: "just now", "5m", "3h",
// "2d", falling back to a date for anything older than a month.
func RelativeTime(t time.Time, now time.Time) string {
	if t.IsZero() {
		return ""
	}
	d := now.Sub(t)
	switch {
	case d < time.Minute:
		return "just now"
	case d < time.Hour:
		return fmt.Sprintf("%dm", int(d.Minutes()))
	case d < 24*time.Hour:
		return fmt.Sprintf("%dh", int(d.Hours()))
	case d < 30*24*time.Hour:
		return fmt.Sprintf("%dd", int(d.Hours()/24))
	default:
		return t.Format("Jan 2, 2006")
	}
}
