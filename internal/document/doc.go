// Package document builds the normalized article model that every
// analyzer consumes.
//
// The builder takes one fetch result (lead wikitext, rendered HTML,
// section metadata, extracted collections, grammar rules) and produces
// an immutable Document: a queryable rendered tree, a filtered body
// tree with navigational regions removed, the references list, a
// markup-stripped lead text, and derived projections such as the
// canonical article length.
//
// Missing inputs are never errors here: an absent lead falls back to
// the first body paragraph, absent sections become an empty slice, and
// malformed grammar rules are skipped one by one.
package document
