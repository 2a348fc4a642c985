// Package grouping aggregates TV-candidate records into per-show groups.
//
// Groups appear in the order their show key was first sighted and episodes
// are date-sorted within each group. A show key with a single episode is
// still a group: the classifier already saw a show pattern, so it routes
// through TV confirmation rather than film approval.
package grouping
