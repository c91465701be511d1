// Package document owns one editable shader graph: its nodes, the stage
// output they feed, and the source text generated from them.
//
// A Document is not safe for concurrent use. Hosts call it from one goroutine
// per interaction, the way an editor reacts to one input event at a time.
package document
