// Package sift wires the pipeline end to end: load, classify, group, review,
// export. It also owns the error taxonomy the CLI reports and the session
// lock that keeps runs single-operator.
package sift
