package journal

import (
	"context"
	"log/slog"

	"reelsift/internal/grouping"
	"reelsift/internal/logging"
	"reelsift/internal/review"
)

// Recorder adapts the journal store to the review session's observer hook.
// Writes are best effort: a journal failure is logged, never surfaced to the
// operator mid-session.
type Recorder struct {
	store     *Store
	sessionID string
	seq       int64
	logger    *slog.Logger
}

// NewRecorder builds a recorder for one session.
func NewRecorder(store *Store, sessionID string, logger *slog.Logger) *Recorder {
	return &Recorder{
		store:     store,
		sessionID: sessionID,
		logger:    logging.NewComponentLogger(logger, "journal"),
	}
}

// GroupDecided journals a TV-phase verdict, one row per group.
func (r *Recorder) GroupDecided(group *grouping.ShowGroup) {
	r.append(Entry{
		Phase:    review.PhaseTV.String(),
		ShowKey:  group.Key,
		Decision: group.Decision.String(),
	})
}

// FilmDecided journals a film-phase verdict, one row per candidate.
func (r *Recorder) FilmDecided(decision review.FilmDecision) {
	verdict := "rejected"
	if decision.Approved {
		verdict = "approved"
	}
	if decision.Reason != "" {
		verdict += ":" + decision.Reason
	}
	r.append(Entry{
		Phase:       review.PhaseFilm.String(),
		ShowKey:     decision.Candidate.FromShow,
		Title:       decision.Candidate.Record.Title,
		WatchedDate: decision.Candidate.Record.WatchedDate(),
		Decision:    verdict,
	})
}

func (r *Recorder) append(entry Entry) {
	r.seq++
	entry.SessionID = r.sessionID
	entry.Seq = r.seq
	if err := r.store.Append(context.Background(), entry); err != nil {
		r.logger.Warn("journal write failed",
			logging.String(logging.FieldSessionID, r.sessionID),
			logging.Error(err),
		)
	}
}
