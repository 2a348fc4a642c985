package main

import (
	"fmt"
	"io"

	"reelsift/internal/grouping"
	"reelsift/internal/review"
)

// prompter renders review prompts on the terminal. It is the only writer to
// out during a session.
type prompter struct {
	out       io.Writer
	listLimit int
}

func newPrompter(out io.Writer, listLimit int) *prompter {
	return &prompter{out: out, listLimit: listLimit}
}

func (p *prompter) GroupPrompt(group *grouping.ShowGroup, index, total int) {
	fmt.Fprintf(p.out, "\n[%d/%d] %q (%d episodes)\n", index, total, group.Key, len(group.Episodes))
	fmt.Fprint(p.out, "TV show? [Enter=yes  n=no, review as films  l=list episodes  q=quit] ")
}

func (p *prompter) FilmPrompt(candidate review.Candidate, index, total int) {
	fmt.Fprintf(p.out, "\n[%d/%d] %s (watched %s)", index, total, candidate.Record.Title, candidate.Record.WatchedDate())
	if candidate.FromShow != "" {
		fmt.Fprintf(p.out, " [from %q]", candidate.FromShow)
	}
	fmt.Fprintln(p.out)
	fmt.Fprint(p.out, "Keep for import? [Enter=yes  n=no  q=quit] ")
}

func (p *prompter) Episodes(group *grouping.ShowGroup) {
	episodes := group.Episodes
	truncated := 0
	if p.listLimit > 0 && len(episodes) > p.listLimit {
		truncated = len(episodes) - p.listLimit
		episodes = episodes[:p.listLimit]
	}

	rows := make([][]string, 0, len(episodes))
	for _, episode := range episodes {
		rows = append(rows, []string{episode.Record.WatchedDate(), episode.Label})
	}
	fmt.Fprintln(p.out)
	fmt.Fprintln(p.out, renderTable([]string{"Watched", "Episode"}, rows))
	if truncated > 0 {
		fmt.Fprintf(p.out, "... and %d more\n", truncated)
	}
}

func (p *prompter) Invalid(raw string) {
	fmt.Fprintf(p.out, "Unrecognized input %q\n", raw)
}
