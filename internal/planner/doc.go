// Package planner turns a parsed edit batch into an ordered, non-overlapping
// application plan, or rejects the whole batch.
//
// Planning is the fail-fast heart of the system: every anchor is verified
// against one immutable snapshot before anything is applied, so an agent that
// gets a batch error can re-read and retry knowing nothing was half-applied.
// Batch order of anchor-based operations never affects validation, only the
// relative order of inserts at the same point.
//
// Overlap detection is plain interval scheduling: convert each operation to
// a consumed line range, sort by start, and scan adjacent pairs.
package planner
