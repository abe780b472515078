// Package reader formats an anchor index for display: the read half of the
// read/edit round trip. Every rendered LINE:HASH prefix is an anchor the
// caller can echo back in a subsequent edit.
package reader
