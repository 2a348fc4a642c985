// Package review drives the interactive confirmation session.
//
// The session is a two-phase state machine: TV group confirmation, then
// film-by-film approval, with quit reachable from any prompt. The transition
// logic lives in State.Apply as a pure function of state and input token;
// Runner is the blocking I/O shell around it, which is what makes scripted
// tests possible without a terminal.
//
// The one sharp edge is deliberate and documented: quitting during the TV
// phase excludes every not-yet-visited group and candidate from all output.
// They are neither confirmed TV nor film candidates, so the operator must
// re-run over the same window to finish the job.
package review
