// Package applier executes a validated application plan against a file
// snapshot.
//
// Application is a single forward walk: original lines outside any consumed
// range are copied verbatim, replacement lines are emitted at each splice
// point, and the anchor-free replace operations run last against the joined
// text. Because the planner already verified anchors, ranges, and overlap,
// application cannot fail; the returned snapshot is new and the input is
// never mutated, so preview and commit compute byte-identical content.
package applier
