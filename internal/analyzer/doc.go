// Package analyzer implements the nine independent quality checks that
// inspect one built document: structure, references, media, links,
// grammar, maintenance, language, revision, and integration.
//
// Every analyzer is a pure function from the immutable document to a
// typed result. Analyzers share no state and have no ordering
// dependency, so the Runner fans them out concurrently; results are
// identical regardless of execution order.
//
// The revision and integration analyzers work from page surface cues
// only. Their figures are estimates, not revision history ground truth,
// and their notes say so.
package analyzer
