// Package main provides the entry point for the qualscan CLI.
//
// qualscan assesses the editorial quality of Arabic Wikipedia articles.
// It fetches an article through the MediaWiki API, analyzes its
// structure, sourcing, language, and maintenance state, and produces a
// 0-100 quality score with actionable notes.
//
// Usage:
//
//	qualscan assess <article-title>
//	qualscan assess --list <file>
//
// See --help for all available options.
package main

// main is the entry point for qualscan.
func main() {
	Execute()
}
