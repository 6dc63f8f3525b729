package history

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/adrg/xdg"
	_ "modernc.org/sqlite" // SQLite driver

	"github.com/arwiki-tools/qualscan/internal/model"
)

// Store provides SQLite-based storage for assessment history.
//
// Design decision: We store one row per assessment rather than keeping
// only the latest per article. History is the point of the store, and
// the full result JSON rides along so a past report can be re-rendered
// without re-fetching the article.
type Store struct {
	// db is the underlying SQL database connection.
	db *sql.DB

	// dbPath is the path to the SQLite database file.
	dbPath string
}

// Options configures Store behavior.
type Options struct {
	// CreateIfNotExists creates the database file if it doesn't exist.
	CreateIfNotExists bool

	// EnableWAL enables Write-Ahead Logging for better concurrent performance.
	// This is recommended for most use cases.
	EnableWAL bool
}

// DefaultOptions returns the default store options.
func DefaultOptions() Options {
	return Options{
		CreateIfNotExists: true,
		EnableWAL:         true,
	}
}

// DefaultDir returns the XDG data directory for the assessment store.
func DefaultDir() string {
	return filepath.Join(xdg.DataHome, "qualscan")
}

// Open opens or creates a Store at the specified directory.
// If CreateIfNotExists is true, the directory and database file are created.
// If CreateIfNotExists is false and the database doesn't exist, an error is returned.
func Open(dbDir string, opts Options) (*Store, error) {
	dbPath := filepath.Join(dbDir, "qualscan.db")

	if !opts.CreateIfNotExists {
		if _, err := os.Stat(dbPath); os.IsNotExist(err) {
			return nil, fmt.Errorf("database not found at %s (use CreateIfNotExists option to create)", dbPath)
		} else if err != nil {
			return nil, fmt.Errorf("failed to check database path: %w", err)
		}
	} else {
		if err := os.MkdirAll(dbDir, 0750); err != nil {
			return nil, fmt.Errorf("failed to create database directory: %w", err)
		}
	}

	// modernc.org/sqlite connection string: mode=rw prevents creating
	// new files, mode=rwc allows creation.
	var dsn string
	if opts.CreateIfNotExists {
		dsn = dbPath + "?mode=rwc"
	} else {
		dsn = dbPath + "?mode=rw"
	}

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// SQLite only supports one writer
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(time.Hour)

	s := &Store{
		db:     db,
		dbPath: dbPath,
	}

	if opts.EnableWAL {
		if _, err := db.ExecContext(context.Background(), "PRAGMA journal_mode=WAL"); err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("failed to enable WAL mode: %w", err)
		}
	}

	if err := s.createTables(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to create tables: %w", err)
	}

	return s, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// createTables creates the database schema if it doesn't exist.
func (s *Store) createTables() error {
	schema := `
	-- Assessments store complete article quality results as JSON,
	-- with the headline numbers broken out for querying.
	CREATE TABLE IF NOT EXISTS assessments (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		title TEXT NOT NULL,
		total INTEGER NOT NULL,
		tier TEXT NOT NULL,
		timestamp DATETIME DEFAULT CURRENT_TIMESTAMP,
		result_json TEXT NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_assessments_title ON assessments(title);
	CREATE INDEX IF NOT EXISTS idx_assessments_timestamp ON assessments(timestamp);
	`

	_, err := s.db.ExecContext(context.Background(), schema)
	return err
}

// SaveAssessment saves a completed assessment.
func (s *Store) SaveAssessment(ctx context.Context, result *model.FinalResult) error {
	resultJSON, err := json.Marshal(result)
	if err != nil {
		return fmt.Errorf("failed to serialize assessment: %w", err)
	}

	query := `
	INSERT INTO assessments (title, total, tier, timestamp, result_json)
	VALUES (?, ?, ?, ?, ?)
	`

	_, err = s.db.ExecContext(ctx, query,
		result.Title,
		result.Total,
		result.Tier.String(),
		result.Timestamp.UTC().Format("2006-01-02 15:04:05"),
		string(resultJSON),
	)
	if err != nil {
		return fmt.Errorf("failed to save assessment: %w", err)
	}

	return nil
}

// GetLatestAssessment retrieves the most recent assessment of an article.
// It returns nil without error when the article was never assessed.
func (s *Store) GetLatestAssessment(ctx context.Context, title string) (*model.FinalResult, error) {
	query := `
	SELECT result_json FROM assessments
	WHERE title = ?
	ORDER BY timestamp DESC, id DESC
	LIMIT 1
	`

	var resultJSON string
	err := s.db.QueryRowContext(ctx, query, title).Scan(&resultJSON)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get assessment: %w", err)
	}

	var result model.FinalResult
	if err := json.Unmarshal([]byte(resultJSON), &result); err != nil {
		return nil, fmt.Errorf("failed to parse assessment: %w", err)
	}

	return &result, nil
}

// GetAssessmentHistory retrieves all assessments of an article, newest
// first.
func (s *Store) GetAssessmentHistory(ctx context.Context, title string) ([]*model.FinalResult, error) {
	query := `
	SELECT result_json FROM assessments
	WHERE title = ?
	ORDER BY timestamp DESC, id DESC
	`

	rows, err := s.db.QueryContext(ctx, query, title)
	if err != nil {
		return nil, fmt.Errorf("failed to get assessment history: %w", err)
	}
	defer rows.Close()

	var results []*model.FinalResult
	for rows.Next() {
		var resultJSON string
		if err := rows.Scan(&resultJSON); err != nil {
			return nil, fmt.Errorf("failed to scan assessment: %w", err)
		}

		var result model.FinalResult
		if err := json.Unmarshal([]byte(resultJSON), &result); err != nil {
			continue // Skip malformed rows
		}
		results = append(results, &result)
	}

	return results, rows.Err()
}

// ListAssessedArticles returns the titles of all assessed articles.
func (s *Store) ListAssessedArticles(ctx context.Context) ([]string, error) {
	query := `
	SELECT DISTINCT title FROM assessments
	ORDER BY title
	`

	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list articles: %w", err)
	}
	defer rows.Close()

	var titles []string
	for rows.Next() {
		var title string
		if err := rows.Scan(&title); err != nil {
			return nil, fmt.Errorf("failed to scan title: %w", err)
		}
		titles = append(titles, title)
	}

	return titles, rows.Err()
}

// AssessmentMetadata contains summary information about one stored
// assessment, for listing history without loading full results.
type AssessmentMetadata struct {
	// ID is the unique identifier of the assessment in the database.
	ID int64

	// Title is the assessed article.
	Title string

	// Total is the overall score out of 100.
	Total int

	// Tier is the quality tier label.
	Tier string

	// Timestamp is when the assessment was performed.
	Timestamp time.Time
}

// GetHistoryMetadata retrieves assessment metadata for an article,
// newest first. This is more efficient than GetAssessmentHistory when
// only the headline numbers are needed.
func (s *Store) GetHistoryMetadata(ctx context.Context, title string) ([]AssessmentMetadata, error) {
	query := `
	SELECT id, title, total, tier, timestamp
	FROM assessments
	WHERE title = ?
	ORDER BY timestamp DESC, id DESC
	`

	rows, err := s.db.QueryContext(ctx, query, title)
	if err != nil {
		return nil, fmt.Errorf("failed to get history metadata: %w", err)
	}
	defer rows.Close()

	var results []AssessmentMetadata
	for rows.Next() {
		var meta AssessmentMetadata
		var timestamp string

		if err := rows.Scan(&meta.ID, &meta.Title, &meta.Total, &meta.Tier, &timestamp); err != nil {
			return nil, fmt.Errorf("failed to scan metadata: %w", err)
		}

		meta.Timestamp = parseTimestamp(timestamp)
		results = append(results, meta)
	}

	return results, rows.Err()
}

// timestampFormats contains the timestamp formats that SQLite may return.
// The order matters: more specific formats should come first.
var timestampFormats = []string{
	"2006-01-02 15:04:05",     // SQLite default datetime format
	"2006-01-02T15:04:05Z",    // ISO 8601 with Z suffix
	"2006-01-02T15:04:05",     // ISO 8601 without timezone
	time.RFC3339,              // Full RFC3339 format
	time.RFC3339Nano,          // RFC3339 with nanoseconds
	"2006-01-02 15:04:05.999", // SQLite with milliseconds
}

// parseTimestamp attempts to parse a timestamp string using multiple formats.
// SQLite may return timestamps in different formats depending on configuration.
// If parsing fails with all formats, returns zero time.
func parseTimestamp(s string) time.Time {
	for _, format := range timestampFormats {
		if t, err := time.Parse(format, s); err == nil {
			return t
		}
	}
	return time.Time{}
}
