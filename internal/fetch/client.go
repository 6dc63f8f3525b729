package fetch

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"sync"

	"github.com/arwiki-tools/qualscan/internal/document"
)

const (
	// defaultAPIURL is the action API endpoint of the Arabic Wikipedia.
	defaultAPIURL = "https://ar.wikipedia.org/w/api.php"

	// defaultUserAgent identifies qualscan per the Wikimedia API policy.
	defaultUserAgent = "qualscan/1.0 (article quality assessment)"

	// defaultMaxBodySize limits how much of a response body is read.
	// Rendered article HTML for very large pages stays well under this.
	defaultMaxBodySize = 20 * 1024 * 1024 // 20MB

	// grammarRulePage is the community-maintained rule page. Its content
	// is a JSON array of pattern specs.
	grammarRulePage = "MediaWiki:Ar_gram_errors.json"
)

// Client fetches article data through the MediaWiki action API.
type Client struct {
	// httpClient is the HTTP client used for all requests.
	//
	// Design decision: We require an external client rather than
	// creating our own because:
	// 1. Allows for different configurations in tests (httptest servers)
	// 2. The caller controls timeouts and proxying in one place
	// 3. Connection pooling is shared across fetches
	httpClient *http.Client

	// apiURL is the action API endpoint.
	apiURL string

	// userAgent is sent with every request.
	userAgent string

	// maxBodySize limits response body reads.
	maxBodySize int64

	// mu guards cache.
	mu sync.Mutex

	// cache memoizes fetched inputs per title.
	cache map[string]*document.Input
}

// ClientOption configures a Client.
type ClientOption func(*Client)

// WithAPIURL sets the action API endpoint. Any MediaWiki installation
// works; the default is the Arabic Wikipedia.
func WithAPIURL(apiURL string) ClientOption {
	return func(c *Client) {
		c.apiURL = apiURL
	}
}

// WithUserAgent sets the User-Agent header sent with every request.
func WithUserAgent(userAgent string) ClientOption {
	return func(c *Client) {
		c.userAgent = userAgent
	}
}

// WithMaxBodySize limits how many bytes of a response body are read.
func WithMaxBodySize(size int64) ClientOption {
	return func(c *Client) {
		c.maxBodySize = size
	}
}

// NewClient creates a Client that talks to the action API with the
// given HTTP client.
func NewClient(httpClient *http.Client, opts ...ClientOption) *Client {
	c := &Client{
		httpClient:  httpClient,
		apiURL:      defaultAPIURL,
		userAgent:   defaultUserAgent,
		maxBodySize: defaultMaxBodySize,
		cache:       make(map[string]*document.Input),
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

// apiError is the application-level error block of an API response.
type apiError struct {
	Code string `json:"code"`
	Info string `json:"info"`
}

// parseResponse is the envelope of an action=parse response
// (formatversion=2).
type parseResponse struct {
	Parse *parsePayload `json:"parse"`
	Error *apiError     `json:"error"`
}

type parsePayload struct {
	Title         string            `json:"title"`
	Text          string            `json:"text"`
	Wikitext      string            `json:"wikitext"`
	Sections      []sectionPayload  `json:"sections"`
	Images        []string          `json:"images"`
	ExternalLinks []string          `json:"externallinks"`
	Categories    []categoryPayload `json:"categories"`
	Templates     []templatePayload `json:"templates"`
}

// sectionPayload carries section metadata. The API delivers the heading
// level as a string.
type sectionPayload struct {
	Line  string `json:"line"`
	Level string `json:"level"`
}

type categoryPayload struct {
	Category string `json:"category"`
}

type templatePayload struct {
	Title string `json:"title"`
}

// queryResponse is the envelope of an action=query revisions response
// (formatversion=2).
type queryResponse struct {
	Query *struct {
		Pages []struct {
			Missing   bool `json:"missing"`
			Revisions []struct {
				Slots struct {
					Main struct {
						Content string `json:"content"`
					} `json:"main"`
				} `json:"slots"`
			} `json:"revisions"`
		} `json:"pages"`
	} `json:"query"`
	Error *apiError `json:"error"`
}

// FetchArticle retrieves everything the document builder needs for one
// article: the rendered HTML, full and lead wikitext, and the page
// metadata. Results are memoized per title.
func (c *Client) FetchArticle(ctx context.Context, title string) (*document.Input, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return nil, ErrEmptyTitle
	}

	c.mu.Lock()
	cached, ok := c.cache[title]
	c.mu.Unlock()
	if ok {
		return cached, nil
	}

	page, err := c.parsePage(ctx, title)
	if err != nil {
		return nil, err
	}

	lead, err := c.parseLead(ctx, title)
	if err != nil {
		return nil, err
	}

	input := &document.Input{
		Title:         page.Title,
		LeadWikitext:  lead,
		HTML:          page.Text,
		Wikitext:      page.Wikitext,
		Sections:      convertSections(page.Sections),
		Images:        page.Images,
		ExternalLinks: page.ExternalLinks,
		Categories:    convertCategories(page.Categories),
		Templates:     convertTemplates(page.Templates),
	}

	c.mu.Lock()
	c.cache[title] = input
	c.mu.Unlock()

	return input, nil
}

// FetchGrammarRules retrieves and compiles the on-wiki grammar rule
// page. ErrRulePageMissing means the wiki carries no rule page and the
// caller should use the built-in rules instead.
func (c *Client) FetchGrammarRules(ctx context.Context) ([]document.GrammarRule, error) {
	params := url.Values{
		"action":        {"query"},
		"titles":        {grammarRulePage},
		"prop":          {"revisions"},
		"rvprop":        {"content"},
		"rvslots":       {"main"},
		"format":        {"json"},
		"formatversion": {"2"},
	}

	body, err := c.get(ctx, params)
	if err != nil {
		return nil, err
	}

	var resp queryResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("fetch: decoding rule page response: %w", err)
	}
	if resp.Error != nil {
		return nil, fmt.Errorf("%w: %s (%s)", ErrAPIResponse, resp.Error.Info, resp.Error.Code)
	}
	if resp.Query == nil || len(resp.Query.Pages) == 0 || resp.Query.Pages[0].Missing {
		return nil, ErrRulePageMissing
	}

	revisions := resp.Query.Pages[0].Revisions
	if len(revisions) == 0 {
		return nil, ErrRulePageMissing
	}

	rules, err := document.ParseGrammarRules([]byte(revisions[0].Slots.Main.Content))
	if err != nil {
		return nil, fmt.Errorf("fetch: parsing rule page: %w", err)
	}
	return rules, nil
}

// parsePage fetches the full parse of one article.
func (c *Client) parsePage(ctx context.Context, title string) (*parsePayload, error) {
	params := url.Values{
		"action":        {"parse"},
		"page":          {title},
		"prop":          {"text|wikitext|sections|images|externallinks|categories|templates"},
		"redirects":     {"1"},
		"format":        {"json"},
		"formatversion": {"2"},
	}
	return c.parse(ctx, title, params)
}

// parseLead fetches the wikitext of the lead section only.
func (c *Client) parseLead(ctx context.Context, title string) (string, error) {
	params := url.Values{
		"action":        {"parse"},
		"page":          {title},
		"prop":          {"wikitext"},
		"section":       {"0"},
		"redirects":     {"1"},
		"format":        {"json"},
		"formatversion": {"2"},
	}

	page, err := c.parse(ctx, title, params)
	if err != nil {
		return "", err
	}
	return page.Wikitext, nil
}

// parse performs one action=parse call and unwraps its payload.
func (c *Client) parse(ctx context.Context, title string, params url.Values) (*parsePayload, error) {
	body, err := c.get(ctx, params)
	if err != nil {
		return nil, err
	}

	var resp parseResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("fetch: decoding parse response: %w", err)
	}

	if resp.Error != nil {
		if resp.Error.Code == "missingtitle" || resp.Error.Code == "pagecannotexist" {
			return nil, fmt.Errorf("%w: %s", ErrArticleNotFound, title)
		}
		return nil, fmt.Errorf("%w: %s (%s)", ErrAPIResponse, resp.Error.Info, resp.Error.Code)
	}
	if resp.Parse == nil {
		return nil, fmt.Errorf("%w: empty parse payload", ErrAPIResponse)
	}

	return resp.Parse, nil
}

// get performs one GET request against the API and returns the body.
func (c *Client) get(ctx context.Context, params url.Values) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.apiURL+"?"+params.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("fetch: creating request: %w", err)
	}
	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch: executing request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: %d", ErrUnexpectedStatus, resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, c.maxBodySize))
	if err != nil {
		return nil, fmt.Errorf("fetch: reading response body: %w", err)
	}
	return body, nil
}

// convertSections translates the API section metadata, dropping entries
// whose level does not parse.
func convertSections(payload []sectionPayload) []document.SectionInfo {
	sections := make([]document.SectionInfo, 0, len(payload))
	for _, s := range payload {
		level, err := strconv.Atoi(s.Level)
		if err != nil {
			continue
		}
		sections = append(sections, document.SectionInfo{Heading: s.Line, Level: level})
	}
	return sections
}

func convertCategories(payload []categoryPayload) []string {
	categories := make([]string, 0, len(payload))
	for _, c := range payload {
		categories = append(categories, c.Category)
	}
	return categories
}

// convertTemplates strips the namespace prefix from template titles so
// that analyzers can match bare template names.
func convertTemplates(payload []templatePayload) []string {
	templates := make([]string, 0, len(payload))
	for _, t := range payload {
		name := t.Title
		if _, after, found := strings.Cut(name, ":"); found {
			name = after
		}
		templates = append(templates, name)
	}
	return templates
}
