// Package history provides SQLite-based storage for past assessments.
//
// Every completed assessment can be saved, which enables tracking an
// article's quality over time: list the assessed articles, pull the
// latest score for one, or walk its full assessment history.
//
// Design decision: We use SQLite (via modernc.org/sqlite) instead of
// other databases because:
// 1. No external dependencies - the database is a single file
// 2. CGO-free implementation allows easy cross-compilation
// 3. Sufficient performance for our use case
// 4. WAL mode provides good concurrent read performance
package history
