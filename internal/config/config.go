package config

import (
	"path/filepath"
	"time"

	"github.com/adrg/xdg"
)

// Default configuration values.
// These values are chosen for the Wikimedia API etiquette and typical
// article sizes on the Arabic Wikipedia.
const (
	// DefaultAPIURL is the action API endpoint of the Arabic Wikipedia.
	// Any MediaWiki installation works; the assessment heuristics are
	// tuned for Arabic article conventions.
	DefaultAPIURL = "https://ar.wikipedia.org/w/api.php"

	// DefaultTimeout is generous because a full article fetch involves
	// the rendered HTML of potentially very large pages.
	DefaultTimeout = 30 * time.Second

	// DefaultBatchSize of 4 concurrent assessments keeps the request
	// rate polite toward the API while still speeding up list runs.
	DefaultBatchSize = 4

	// DefaultUserAgent identifies qualscan per the Wikimedia API policy,
	// which requires a descriptive User-Agent with a contact point.
	DefaultUserAgent = "qualscan/1.0 (+https://github.com/arwiki-tools/qualscan)"

	// DefaultMaxBodySize limits the maximum response body size to read.
	// 20MB covers the rendered HTML of the largest articles while
	// preventing memory exhaustion from unexpected responses.
	DefaultMaxBodySize = 20 * 1024 * 1024 // 20MB

	// AppName is the application name used for XDG directory paths.
	AppName = "qualscan"
)

// Config holds all configuration options for qualscan.
// This struct is designed to be populated from CLI flags and passed through
// the application via dependency injection rather than global state.
//
// Design decision: We use a single flat struct instead of nested structs
// for simplicity. The number of options is manageable, and nesting would
// add complexity without significant benefit.
type Config struct {
	// APIURL is the MediaWiki action API endpoint to fetch articles from.
	APIURL string

	// Timeout is the HTTP timeout for each API request.
	Timeout time.Duration

	// Verbose enables detailed log output using slog.LevelDebug, the
	// informational subscores, and untrimmed note lists in text reports.
	Verbose bool

	// BatchSize is the number of concurrent assessments when processing
	// multiple articles. Higher values increase throughput but may hit
	// API rate limits.
	BatchSize int

	// ConfigFilePath is the path to the configuration file.
	// If empty, the tool searches for .qualscan in the current directory
	// and then in the user's home directory.
	ConfigFilePath string

	// WikiProfiles holds named wiki endpoints loaded from the config
	// file. This is populated by LoadConfigFile.
	WikiProfiles *File

	// JSONReport enables JSON report output instead of human-readable format.
	// Mutually exclusive with MarkdownReport.
	JSONReport bool

	// MarkdownReport enables Markdown report output instead of
	// human-readable format. Mutually exclusive with JSONReport.
	MarkdownReport bool

	// ReportFile is the output file path for the report.
	// When set, the report is written to this file instead of stdout.
	// Directories are created automatically if they don't exist.
	ReportFile string

	// Titles is the list of article titles to assess.
	// Must contain at least one title.
	Titles []string

	// SkipRulePage disables fetching the on-wiki grammar rule page and
	// uses only the built-in rules. Useful offline and in tests.
	SkipRulePage bool

	// DBDir is the directory path for storing the SQLite database.
	// When set, assessments are saved for historical comparison.
	// When empty, assessments are not persisted.
	// Defaults to XDG data directory (~/.local/share/qualscan on Linux).
	DBDir string

	// SaveToDB indicates whether to save assessments to the database.
	// This is automatically set to true when DBDir is configured.
	SaveToDB bool

	// UserAgent is the User-Agent header sent with API requests.
	UserAgent string

	// MaxBodySize is the maximum response body size in bytes to read.
	// Responses larger than this are truncated to prevent memory
	// exhaustion. Set to 0 to use the default (20MB).
	MaxBodySize int64
}

// NewConfig creates a new Config with default values.
// All fields are set to safe, sensible defaults that work for most use cases.
// Users can override specific values after creation.
//
// Design decision: We use a constructor function instead of relying on
// zero values because many defaults are non-zero (e.g., timeout, API URL).
// This also serves as documentation of what the defaults are.
func NewConfig() *Config {
	return &Config{
		APIURL:      DefaultAPIURL,
		Timeout:     DefaultTimeout,
		BatchSize:   DefaultBatchSize,
		UserAgent:   DefaultUserAgent,
		MaxBodySize: DefaultMaxBodySize,
	}
}

// XDGDataDir returns the XDG data directory for qualscan.
// This follows the XDG Base Directory Specification.
// On Linux: ~/.local/share/qualscan
// On macOS: ~/Library/Application Support/qualscan
// On Windows: %LOCALAPPDATA%\qualscan
func XDGDataDir() string {
	return filepath.Join(xdg.DataHome, AppName)
}

// XDGConfigDir returns the XDG config directory for qualscan.
func XDGConfigDir() string {
	return filepath.Join(xdg.ConfigHome, AppName)
}

// ApplyWikiProfile overrides the API endpoint and User-Agent from a
// named profile in the loaded config file. Unknown names are ignored so
// that a profile flag without a config file stays harmless.
func (c *Config) ApplyWikiProfile(name string) {
	if c.WikiProfiles == nil || name == "" {
		return
	}

	profile, ok := c.WikiProfiles.Wikis[name]
	if !ok {
		return
	}
	if profile.APIURL != "" {
		c.APIURL = profile.APIURL
	}
	if profile.UserAgent != "" {
		c.UserAgent = profile.UserAgent
	}
}

// Validate checks if the configuration is valid.
// It returns a specific error describing what is invalid.
//
// Design decision: We validate at the config level rather than at each
// point of use to fail fast and provide clear error messages upfront.
// This is called once after CLI parsing, before any assessment begins.
//
// We chose to return the first error found rather than collecting all
// errors because fixing one error often makes others irrelevant.
func (c *Config) Validate() error {
	// We must have at least one article to assess
	if len(c.Titles) == 0 {
		return ErrNoTitle
	}

	if c.APIURL == "" {
		return ErrNoAPIURL
	}

	// Timeout must be positive; zero timeout would cause immediate failures
	if c.Timeout <= 0 {
		return ErrInvalidTimeout
	}

	// BatchSize must be positive; zero would mean no assessments
	if c.BatchSize <= 0 {
		return ErrInvalidBatchSize
	}

	// JSONReport and MarkdownReport are mutually exclusive
	if c.JSONReport && c.MarkdownReport {
		return ErrConflictingReportFormats
	}

	// MaxBodySize must be non-negative; 0 means use the default
	if c.MaxBodySize < 0 {
		return ErrInvalidMaxBodySize
	}

	return nil
}
