// Package logging builds slog loggers with console and JSON handlers.
//
// The console handler renders compact "ts LEVEL component: msg key=value"
// lines on stderr so structured output never interleaves with the interactive
// prompt loop on stdout. Standardized field keys (component, session_id,
// phase, show_key) keep log lines greppable across the pipeline.
package logging
