// Package classify labels viewing-history titles as film-like or
// TV-episode-like.
//
// TV detection covers the "<Show>: <episode suffix>" colon pattern, compact
// S01E02 codes, and numbered season/series markers in the locales Netflix
// uses for its UI strings. Classification is an explicit sum type rather than
// string sniffing so the over-group-and-let-the-human-correct policy stays
// auditable in isolation from any I/O.
package classify
