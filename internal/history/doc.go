// Package history loads Netflix viewing-history exports into typed records.
//
// The export is a two-column Title,Date CSV. Loading normalizes title
// whitespace, parses dates against a configurable layout, applies an inclusive
// date window, and counts (rather than fails on) malformed rows so a single
// bad line never aborts a run.
package history
