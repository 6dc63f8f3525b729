package fetch

import "errors"

var (
	// ErrEmptyTitle is returned when an article fetch is attempted
	// without a title.
	ErrEmptyTitle = errors.New("fetch: article title is empty")

	// ErrArticleNotFound is returned when the wiki has no article with
	// the requested title.
	ErrArticleNotFound = errors.New("fetch: article not found")

	// ErrUnexpectedStatus is returned when the API answers with a
	// non-200 HTTP status.
	ErrUnexpectedStatus = errors.New("fetch: unexpected HTTP status")

	// ErrAPIResponse is returned when the API answers 200 but reports
	// an application-level error in the payload.
	ErrAPIResponse = errors.New("fetch: API error response")

	// ErrRulePageMissing is returned when the on-wiki grammar rule page
	// does not exist. Callers fall back to the built-in rules.
	ErrRulePageMissing = errors.New("fetch: grammar rule page missing")
)
