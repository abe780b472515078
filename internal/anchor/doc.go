// Package anchor derives per-line content hashes and verifies caller-supplied
// anchors against a file snapshot.
//
// The hash is a pure function of a line's text: identical text at different
// positions yields identical hashes, which is what makes an anchor a content
// check rather than a position check. Position never mixes into the digest.
//
// # Verification
//
//	ix := anchor.NewIndex(doc)
//	line, mismatch := ix.Verify(a)
//	if mismatch != nil {
//	    // mismatch.Kind tells "file got shorter" apart from "content changed"
//	}
package anchor
