package grouping

import (
	"sort"

	"reelsift/internal/classify"
	"reelsift/internal/history"
)

// Decision is the operator's verdict on a show group.
type Decision int

const (
	// Undecided groups have not been reviewed. They are excluded from every
	// output when a session quits early.
	Undecided Decision = iota
	// ConfirmedTV groups route to the discarded-TV audit file.
	ConfirmedTV
	// RejectedToFilms groups were false positives; their episodes re-enter
	// film review individually.
	RejectedToFilms
)

// String renders the decision for journals and audit output.
func (d Decision) String() string {
	switch d {
	case ConfirmedTV:
		return "confirmed_tv"
	case RejectedToFilms:
		return "rejected_to_films"
	default:
		return "undecided"
	}
}

// Episode pairs a watch record with the display label the classifier split
// off its title.
type Episode struct {
	Record history.Record
	Label  string
}

// ShowGroup collects the episodes of one show key. Created during grouping,
// mutated only by the review session's TV phase, immutable afterward.
type ShowGroup struct {
	Key      string
	Episodes []Episode
	Decision Decision
}

// Result is the grouper output: show groups in first-sighted order plus the
// film candidates that passed through unmatched, in input order.
type Result struct {
	Groups []*ShowGroup
	Films  []history.Record
}

// Group classifies records and aggregates the TV candidates into per-show
// groups. Group order is the order each show key was first sighted, so
// repeated runs over the same input present groups identically. Episodes
// within a group are sorted by watch date ascending (stable, so same-day
// repeat views keep input order).
func Group(records []history.Record) Result {
	var result Result
	index := make(map[string]*ShowGroup)

	for _, record := range records {
		c := classify.Classify(record.Title)
		if !c.IsTV() {
			result.Films = append(result.Films, record)
			continue
		}
		group, ok := index[c.ShowKey]
		if !ok {
			group = &ShowGroup{Key: c.ShowKey}
			index[c.ShowKey] = group
			result.Groups = append(result.Groups, group)
		}
		group.Episodes = append(group.Episodes, Episode{Record: record, Label: c.EpisodeLabel})
	}

	for _, group := range result.Groups {
		episodes := group.Episodes
		sort.SliceStable(episodes, func(i, j int) bool {
			return episodes[i].Record.WatchedOn.Before(episodes[j].Record.WatchedOn)
		})
	}
	return result
}
