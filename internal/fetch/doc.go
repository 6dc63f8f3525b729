// Package fetch retrieves article data from a MediaWiki installation.
//
// The client speaks the action API: one parse call delivers the
// rendered HTML, the raw wikitext, and the page metadata (sections,
// images, external links, categories, templates), and a second call
// fetches the lead section's wikitext. The community-maintained
// grammar rule page is fetched separately and compiled into the rule
// set the analyzers run.
//
// Responses are memoized per title for the lifetime of the client, so
// repeated assessments of the same article within one run hit the
// network once.
package fetch
