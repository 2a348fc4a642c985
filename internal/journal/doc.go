// Package journal records operator decisions in an append-only SQLite table.
//
// The journal is an audit artifact, like the output CSVs: it captures what
// was decided and when, keyed by session ID. It is deliberately not resume
// state; sessions never read it back, and deleting the database loses
// nothing but history.
package journal
