package review_test

import (
	"context"
	"strings"
	"testing"

	"reelsift/internal/grouping"
	"reelsift/internal/logging"
	"reelsift/internal/review"
)

// recordingPresenter captures every render call for assertions.
type recordingPresenter struct {
	groupPrompts []string
	filmPrompts  []string
	listed       []string
	invalid      []string
}

func (p *recordingPresenter) GroupPrompt(group *grouping.ShowGroup, index, total int) {
	p.groupPrompts = append(p.groupPrompts, group.Key)
}

func (p *recordingPresenter) FilmPrompt(candidate review.Candidate, index, total int) {
	p.filmPrompts = append(p.filmPrompts, candidate.Record.Title)
}

func (p *recordingPresenter) Episodes(group *grouping.ShowGroup) {
	p.listed = append(p.listed, group.Key)
}

func (p *recordingPresenter) Invalid(raw string) {
	p.invalid = append(p.invalid, raw)
}

type recordingObserver struct {
	groups []string
	films  []string
}

func (o *recordingObserver) GroupDecided(group *grouping.ShowGroup) {
	o.groups = append(o.groups, group.Key+":"+group.Decision.String())
}

func (o *recordingObserver) FilmDecided(decision review.FilmDecision) {
	o.films = append(o.films, decision.Candidate.Record.Title)
}

func runScript(t *testing.T, script string) (review.Outcome, *recordingPresenter, *recordingObserver) {
	t.Helper()
	state := newState(sampleRecords())
	presenter := &recordingPresenter{}
	observer := &recordingObserver{}
	runner := review.NewRunner(state, strings.NewReader(script), presenter, observer, logging.NewNop())
	outcome, err := runner.Run(context.Background())
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	return outcome, presenter, observer
}

func TestRunConfirmAllScript(t *testing.T) {
	// Two groups then two films, all Enter.
	outcome, presenter, observer := runScript(t, "\n\n\n\n")

	if len(outcome.ConfirmedTV) != 2 || len(outcome.Approved()) != 2 {
		t.Fatalf("unexpected outcome: %+v", outcome)
	}
	if len(presenter.groupPrompts) != 2 || len(presenter.filmPrompts) != 2 {
		t.Fatalf("unexpected prompt counts: %+v", presenter)
	}
	if len(observer.groups) != 2 || len(observer.films) != 2 {
		t.Fatalf("observer missed decisions: %+v", observer)
	}
}

func TestRunListRepromptsSameGroup(t *testing.T) {
	_, presenter, _ := runScript(t, "l\n\n\n\n\n")

	if len(presenter.listed) != 1 || presenter.listed[0] != "friends" {
		t.Fatalf("expected friends listed once, got %v", presenter.listed)
	}
	// friends is prompted twice: before and after the listing.
	if len(presenter.groupPrompts) != 3 || presenter.groupPrompts[0] != presenter.groupPrompts[1] {
		t.Fatalf("unexpected group prompts: %v", presenter.groupPrompts)
	}
}

func TestRunInvalidInputReprompts(t *testing.T) {
	outcome, presenter, _ := runScript(t, "zzz\n\n\n\n\n")

	if len(presenter.invalid) != 1 || presenter.invalid[0] != "zzz" {
		t.Fatalf("expected one invalid input, got %v", presenter.invalid)
	}
	if len(outcome.ConfirmedTV) != 2 {
		t.Fatalf("session should have completed after re-prompt: %+v", outcome)
	}
}

func TestRunListDuringFilmPhaseReprompts(t *testing.T) {
	// Confirm both groups, then try to list at the first film prompt. The
	// session must survive and keep every later decision.
	outcome, presenter, _ := runScript(t, "\n\nl\n\n\n")

	if len(presenter.invalid) != 1 || presenter.invalid[0] != "l" {
		t.Fatalf("expected list rejected in film phase, got %v", presenter.invalid)
	}
	if len(presenter.listed) != 0 {
		t.Fatalf("nothing should be listed in film phase, got %v", presenter.listed)
	}
	if len(outcome.Approved()) != 2 {
		t.Fatalf("expected both films approved after re-prompt, got %+v", outcome.Films)
	}
	// The first film is prompted again after the rejected token.
	if len(presenter.filmPrompts) != 3 || presenter.filmPrompts[0] != presenter.filmPrompts[1] {
		t.Fatalf("unexpected film prompts: %v", presenter.filmPrompts)
	}
}

func TestRunQuitAtFirstPromptExcludesEverything(t *testing.T) {
	outcome, _, observer := runScript(t, "q\n")

	if len(outcome.ConfirmedTV) != 0 || len(outcome.Films) != 0 {
		t.Fatalf("expected empty decision sets, got %+v", outcome)
	}
	if len(outcome.UndecidedGroups) != 2 || len(outcome.UnvisitedFilms) != 2 {
		t.Fatalf("expected everything excluded, got %+v", outcome)
	}
	if len(observer.groups) != 0 || len(observer.films) != 0 {
		t.Fatalf("observer must see no decisions on immediate quit: %+v", observer)
	}
}

func TestRunTreatsEOFAsQuit(t *testing.T) {
	// Script ends after the TV phase: EOF during film review.
	outcome, _, _ := runScript(t, "\n\n")

	if len(outcome.ConfirmedTV) != 2 {
		t.Fatalf("expected both groups confirmed, got %+v", outcome)
	}
	if len(outcome.Films) != 2 {
		t.Fatalf("expected remaining films auto-decided, got %+v", outcome.Films)
	}
	for _, d := range outcome.Films {
		if d.Approved || d.Reason != review.ReasonNotReviewed {
			t.Fatalf("expected not-reviewed rejects at EOF, got %+v", d)
		}
	}
}

func TestRunRejectObserverSeesGroupAndLaterFilms(t *testing.T) {
	// Reject friends, confirm crown, approve all three candidates.
	outcome, _, observer := runScript(t, "n\n\n\n\n\n")

	if len(outcome.Approved()) != 3 {
		t.Fatalf("expected 3 approvals, got %d", len(outcome.Approved()))
	}
	if observer.groups[0] != "friends:rejected_to_films" {
		t.Fatalf("unexpected first group decision: %v", observer.groups)
	}
}

func TestRunHonorsContextCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	state := newState(sampleRecords())
	runner := review.NewRunner(state, strings.NewReader("\n\n\n\n"), &recordingPresenter{}, nil, logging.NewNop())
	if _, err := runner.Run(ctx); err == nil {
		t.Fatal("expected context error")
	}
}
