package review

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"reelsift/internal/grouping"
	"reelsift/internal/logging"
)

// Presenter renders prompts and feedback. It owns all writes to the terminal;
// no other pipeline component performs interactive I/O.
type Presenter interface {
	GroupPrompt(group *grouping.ShowGroup, index, total int)
	FilmPrompt(candidate Candidate, index, total int)
	Episodes(group *grouping.ShowGroup)
	Invalid(raw string)
}

// Observer is notified as decisions land. The decision journal hangs off
// this; a nil observer is fine.
type Observer interface {
	GroupDecided(group *grouping.ShowGroup)
	FilmDecided(decision FilmDecision)
}

// Runner is the I/O shell around the pure transition core: it reads operator
// lines, maps them to tokens, and feeds State.Apply until the session is
// done. All blocking happens on the line reader.
type Runner struct {
	state     *State
	input     *bufio.Scanner
	presenter Presenter
	observer  Observer
	logger    *slog.Logger
}

// NewRunner wires a runner over state. input is typically os.Stdin; tests
// feed a strings.Reader of scripted lines.
func NewRunner(state *State, input io.Reader, presenter Presenter, observer Observer, logger *slog.Logger) *Runner {
	return &Runner{
		state:     state,
		input:     bufio.NewScanner(input),
		presenter: presenter,
		observer:  observer,
		logger:    logging.NewComponentLogger(logger, "review"),
	}
}

// Run drives the session to DONE and returns the outcome. Input exhaustion
// (EOF) is treated as a quit so a truncated script still yields valid
// partial output.
func (r *Runner) Run(ctx context.Context) (Outcome, error) {
	for r.state.Phase() != PhaseDone {
		if err := ctx.Err(); err != nil {
			return r.state.Outcome(), err
		}

		r.prompt()
		line, ok := r.readLine()
		if !ok {
			r.logger.Debug("input exhausted, quitting session")
			r.applyDecided(TokenQuit)
			break
		}

		token, ok := ParseToken(line)
		if !ok {
			r.presenter.Invalid(line)
			continue
		}

		effect, err := r.applyDecided(token)
		if errors.Is(err, ErrUnknownToken) {
			// Tokens can be phase-bound (list is TV-only); the state refuses
			// them the same way as garbage input, so re-prompt.
			r.presenter.Invalid(line)
			continue
		}
		if err != nil {
			return r.state.Outcome(), fmt.Errorf("apply token: %w", err)
		}
		if effect == EffectList {
			r.presenter.Episodes(r.state.CurrentGroup())
		}
	}

	outcome := r.state.Outcome()
	r.logger.Info("session finished",
		logging.Int("confirmed_groups", len(outcome.ConfirmedTV)),
		logging.Int("undecided_groups", len(outcome.UndecidedGroups)),
		logging.Int("film_decisions", len(outcome.Films)),
		logging.Int("unvisited_films", len(outcome.UnvisitedFilms)),
	)
	return outcome, nil
}

func (r *Runner) prompt() {
	switch r.state.Phase() {
	case PhaseTV:
		index, total := r.state.GroupProgress()
		r.presenter.GroupPrompt(r.state.CurrentGroup(), index, total)
	case PhaseFilm:
		candidate, _ := r.state.CurrentCandidate()
		index, total := r.state.FilmProgress()
		r.presenter.FilmPrompt(candidate, index, total)
	}
}

// applyDecided applies a token and reports finalized decisions to the
// observer.
func (r *Runner) applyDecided(token Token) (Effect, error) {
	phase := r.state.Phase()
	group := r.state.CurrentGroup()
	decisionsBefore := len(r.state.decisions)

	effect, err := r.state.Apply(token)
	if err != nil || effect == EffectList {
		return effect, err
	}

	if r.observer == nil {
		return effect, nil
	}
	if phase == PhaseTV && group != nil && group.Decision != grouping.Undecided {
		r.observer.GroupDecided(group)
	}
	for _, decision := range r.state.decisions[decisionsBefore:] {
		r.observer.FilmDecided(decision)
	}
	return effect, nil
}

func (r *Runner) readLine() (string, bool) {
	if !r.input.Scan() {
		return "", false
	}
	return r.input.Text(), true
}
