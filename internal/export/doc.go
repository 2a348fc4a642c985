// Package export serializes session outcomes into the three output CSVs:
// the prelist review audit, the discarded-TV audit, and the Letterboxd
// import file.
//
// The import file's column set and order are a third-party contract and must
// not change. The audit files keep repeat views; only the import file
// collapses exact (Title, WatchedDate) duplicates. The package also reads an
// operator-edited prelist back so the import can be rebuilt offline.
package export
