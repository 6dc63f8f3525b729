// Package config provides configuration structures and utilities for
// qualscan. It defines the options for fetching articles, running the
// assessment, persisting history, and rendering reports.
package config
