package viewstate

import (
	"strconv"
	"time"
)

// FormatAge renders a timestamp the way the board displays it:
// relative for recent activity, a plain date beyond two days. A zero
// timestamp means the backend has not stamped the document yet.
func FormatAge(t, now time.Time) string {
	if t.IsZero() {
		return "just now"
	}

	diff := now.Sub(t)
	switch {
	case diff < time.Minute:
		return "just now"
	case diff < time.Hour:
		return strconv.Itoa(int(diff.Minutes())) + "m ago"
	case diff < 24*time.Hour:
		return strconv.Itoa(int(diff.Hours())) + "h ago"
	case diff < 48*time.Hour:
		return "yesterday"
	default:
		return t.Format("Jan 2, 2006")
	}
}
