package classify

import (
	"regexp"
	"strings"

	"golang.org/x/text/cases"
)

// Kind discriminates the classification sum type.
type Kind int

const (
	// FilmCandidate is the fail-open default: anything not matching a TV
	// pattern routes to individual film approval.
	FilmCandidate Kind = iota
	// TVCandidate marks a title that looks like an episode of a show.
	TVCandidate
)

// Classification is the result of classifying one title. ShowKey and
// EpisodeLabel are populated only for TVCandidate. ShowKey is a normalized
// grouping key, never a canonical external identifier; EpisodeLabel is the
// verbatim remainder, display only.
type Classification struct {
	Kind         Kind
	ShowKey      string
	EpisodeLabel string
}

// IsTV reports whether the classification is a TV candidate.
func (c Classification) IsTV() bool { return c.Kind == TVCandidate }

// Episode-marker keywords as Netflix renders them across UI locales.
const markerWords = `temporada|season|episodio|episode|cap[ií]tulo|chapter|seizoen|aflevering|serie|series|parte|part|deel`

var (
	// "S1: E2", "S01E02", "T1: E3" style compact codes.
	compactCode = regexp.MustCompile(`(?i)\b[st]\d+\s*:?\s*e\d+\b`)
	// "Serie 2", "Season 3" runs that appear without a colon.
	numberedRun = regexp.MustCompile(`(?i)\b(` + markerWords + `)\s+\d+\b`)

	keyFolder = cases.Fold()
)

// Classify labels a title as film-like or TV-episode-like. It is a pure
// function of the title: same input, same result.
//
// The heuristic is deliberately conservative in the over-grouping direction:
// a film with a colon in its name becomes a TV candidate and gets corrected
// by the operator during group review, whereas a mis-dropped film would be
// lost silently.
func Classify(title string) Classification {
	t := strings.TrimSpace(title)
	if t == "" {
		return Classification{Kind: FilmCandidate}
	}

	// Compact episode codes win even without a colon ("Friends S01E02").
	if loc := compactCode.FindStringIndex(t); loc != nil {
		if c, ok := tvCandidate(t[:loc[0]], t[loc[0]:]); ok {
			return c
		}
	}

	// "<Show>: <suffix>" splits on the first colon.
	if idx := strings.Index(t, ":"); idx >= 0 {
		if c, ok := tvCandidate(t[:idx], t[idx+1:]); ok {
			return c
		}
	}

	// Numbered marker runs without a colon ("The Office Serie 2").
	if loc := numberedRun.FindStringIndex(t); loc != nil {
		if c, ok := tvCandidate(t[:loc[0]], t[loc[0]:]); ok {
			return c
		}
	}

	return Classification{Kind: FilmCandidate}
}

func tvCandidate(prefix, suffix string) (Classification, bool) {
	key := FoldKey(prefix)
	label := strings.TrimSpace(suffix)
	if key == "" || label == "" {
		return Classification{}, false
	}
	return Classification{Kind: TVCandidate, ShowKey: key, EpisodeLabel: label}, true
}

// FoldKey normalizes a show-name prefix into a grouping key: trimmed of
// surrounding space and punctuation, then case-folded.
func FoldKey(prefix string) string {
	trimmed := strings.Trim(strings.TrimSpace(prefix), ":-–")
	return keyFolder.String(strings.TrimSpace(trimmed))
}
