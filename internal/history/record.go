package history

import (
	"strings"
	"time"
	"unicode"
)

// Record is a single row of the viewing-history export. Immutable once loaded.
// Duplicates are legal (repeat views) and flow through the pipeline intact.
type Record struct {
	Title     string
	WatchedOn time.Time
}

// WatchedDate renders the watch date in the ISO form Letterboxd expects.
func (r Record) WatchedDate() string {
	return r.WatchedOn.Format("2006-01-02")
}

// Window bounds which records enter the pipeline. A zero Start or End leaves
// that side unbounded. Both bounds are inclusive.
type Window struct {
	Start time.Time
	End   time.Time
}

// Contains reports whether t falls inside the window.
func (w Window) Contains(t time.Time) bool {
	if !w.Start.IsZero() && t.Before(w.Start) {
		return false
	}
	if !w.End.IsZero() && t.After(w.End) {
		return false
	}
	return true
}

// Bounded reports whether either side of the window is set.
func (w Window) Bounded() bool {
	return !w.Start.IsZero() || !w.End.IsZero()
}

// NormalizeTitle trims a title and collapses internal whitespace runs into
// single spaces, matching how the export renders titles inconsistently.
func NormalizeTitle(title string) string {
	var b strings.Builder
	b.Grow(len(title))
	prevSpace := false
	for _, r := range strings.TrimSpace(title) {
		if unicode.IsSpace(r) {
			if !prevSpace {
				b.WriteByte(' ')
				prevSpace = true
			}
			continue
		}
		b.WriteRune(r)
		prevSpace = false
	}
	return b.String()
}
