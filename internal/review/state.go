package review

import (
	"errors"

	"reelsift/internal/grouping"
	"reelsift/internal/history"
)

// Phase is the session's position in the TV_REVIEW -> FILM_REVIEW -> DONE
// machine.
type Phase int

const (
	PhaseTV Phase = iota
	PhaseFilm
	PhaseDone
)

func (p Phase) String() string {
	switch p {
	case PhaseTV:
		return "tv"
	case PhaseFilm:
		return "film"
	default:
		return "done"
	}
}

// ErrUnknownToken marks input outside the recognized set. The state is
// unchanged; the shell re-prompts.
var ErrUnknownToken = errors.New("unknown input token")

// Effect tells the I/O shell what to render after a transition.
type Effect int

const (
	// EffectNone: show the next prompt.
	EffectNone Effect = iota
	// EffectList: enumerate the current group's episodes, then re-prompt it.
	EffectList
)

// Candidate is one film awaiting individual approval. FromShow is set when
// the candidate re-entered film review from a rejected TV group.
type Candidate struct {
	Record   history.Record
	FromShow string
}

// FilmDecision records the operator's verdict on one candidate. Immutable
// once the session produces output.
type FilmDecision struct {
	Candidate Candidate
	Approved  bool
	Reason    string
}

// ReasonNotReviewed marks candidates auto-rejected by a film-phase quit.
const ReasonNotReviewed = "not reviewed"

// State is the whole review session as a single passable value: the ordered
// group list, the pending film candidates, and a cursor into each. It lives
// only for the session; quitting means "stop folding input and export what
// exists", never resuming from disk.
type State struct {
	phase Phase

	groups      []*grouping.ShowGroup
	groupCursor int

	films      []Candidate
	filmCursor int
	decisions  []FilmDecision
}

// NewState builds session state from grouper output. Film candidates start
// as the ungrouped records in input order; rejected groups append theirs
// later.
func NewState(result grouping.Result) *State {
	s := &State{groups: result.Groups}
	for _, record := range result.Films {
		s.films = append(s.films, Candidate{Record: record})
	}
	if len(s.groups) == 0 {
		s.enterFilmPhase()
	}
	return s
}

// Phase returns the current phase.
func (s *State) Phase() Phase { return s.phase }

// CurrentGroup returns the group awaiting a decision, or nil outside the TV
// phase.
func (s *State) CurrentGroup() *grouping.ShowGroup {
	if s.phase != PhaseTV || s.groupCursor >= len(s.groups) {
		return nil
	}
	return s.groups[s.groupCursor]
}

// GroupProgress returns the 1-based position and total for the TV phase.
func (s *State) GroupProgress() (int, int) {
	return s.groupCursor + 1, len(s.groups)
}

// CurrentCandidate returns the candidate awaiting a decision, or false
// outside the film phase.
func (s *State) CurrentCandidate() (Candidate, bool) {
	if s.phase != PhaseFilm || s.filmCursor >= len(s.films) {
		return Candidate{}, false
	}
	return s.films[s.filmCursor], true
}

// FilmProgress returns the 1-based position and total for the film phase.
func (s *State) FilmProgress() (int, int) {
	return s.filmCursor + 1, len(s.films)
}

// Apply advances the machine by one input token. Unknown tokens leave the
// state untouched and return ErrUnknownToken so the shell re-prompts.
func (s *State) Apply(token Token) (Effect, error) {
	switch s.phase {
	case PhaseTV:
		return s.applyTV(token)
	case PhaseFilm:
		return s.applyFilm(token)
	default:
		return EffectNone, errors.New("session already done")
	}
}

func (s *State) applyTV(token Token) (Effect, error) {
	group := s.groups[s.groupCursor]
	switch token {
	case TokenConfirm:
		group.Decision = grouping.ConfirmedTV
	case TokenReject:
		group.Decision = grouping.RejectedToFilms
		// Rejected episodes are appended after the existing candidates,
		// keeping the group's own date order.
		for _, episode := range group.Episodes {
			s.films = append(s.films, Candidate{Record: episode.Record, FromShow: group.Key})
		}
	case TokenList:
		return EffectList, nil
	case TokenQuit:
		// Unvisited groups stay Undecided and their episodes are excluded
		// from every output; pending film candidates were never presented,
		// so they are excluded too.
		s.phase = PhaseDone
		return EffectNone, nil
	default:
		return EffectNone, ErrUnknownToken
	}

	s.groupCursor++
	if s.groupCursor >= len(s.groups) {
		s.enterFilmPhase()
	}
	return EffectNone, nil
}

func (s *State) applyFilm(token Token) (Effect, error) {
	candidate := s.films[s.filmCursor]
	switch token {
	case TokenConfirm:
		s.decisions = append(s.decisions, FilmDecision{Candidate: candidate, Approved: true})
	case TokenReject:
		s.decisions = append(s.decisions, FilmDecision{Candidate: candidate, Approved: false})
	case TokenQuit:
		for _, remaining := range s.films[s.filmCursor:] {
			s.decisions = append(s.decisions, FilmDecision{
				Candidate: remaining,
				Approved:  false,
				Reason:    ReasonNotReviewed,
			})
		}
		s.phase = PhaseDone
		return EffectNone, nil
	default:
		return EffectNone, ErrUnknownToken
	}

	s.filmCursor++
	if s.filmCursor >= len(s.films) {
		s.phase = PhaseDone
	}
	return EffectNone, nil
}

func (s *State) enterFilmPhase() {
	if len(s.films) == 0 {
		s.phase = PhaseDone
		return
	}
	s.phase = PhaseFilm
}

// Outcome snapshots the session's terminal (or current) decision sets.
type Outcome struct {
	// ConfirmedTV groups route to the discarded-TV audit file.
	ConfirmedTV []*grouping.ShowGroup
	// UndecidedGroups were never visited before a quit; excluded entirely.
	UndecidedGroups []*grouping.ShowGroup
	// Films holds every decision made, including not-reviewed auto-rejects.
	Films []FilmDecision
	// UnvisitedFilms are candidates excluded by a TV-phase quit: film review
	// never started, so they carry no decision at all.
	UnvisitedFilms []Candidate
}

// Outcome derives the output contract from the current state. Valid at any
// point; partial sessions are a supported terminal condition, not an error.
func (s *State) Outcome() Outcome {
	var out Outcome
	for _, group := range s.groups {
		switch group.Decision {
		case grouping.ConfirmedTV:
			out.ConfirmedTV = append(out.ConfirmedTV, group)
		case grouping.Undecided:
			out.UndecidedGroups = append(out.UndecidedGroups, group)
		}
	}
	out.Films = append(out.Films, s.decisions...)
	if s.phase == PhaseDone && len(s.decisions) == 0 && s.filmCursor == 0 {
		// TV-phase quit: pending candidates were never presented.
		out.UnvisitedFilms = append(out.UnvisitedFilms, s.films...)
	}
	return out
}

// Approved returns the import rows: decisions the operator said yes to.
func (o Outcome) Approved() []FilmDecision {
	var approved []FilmDecision
	for _, d := range o.Films {
		if d.Approved {
			approved = append(approved, d)
		}
	}
	return approved
}
