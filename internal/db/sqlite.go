package db

import (
	"database/sql"
	"fmt"

	_ "modernc.org/sqlite" // sqlite driver
)

// NewSQLiteDB opens (creating if needed) the local fallback database and
// initializes its schema. Column names match the original platform layout:
// jobs are flat with skillsRequired comma-joined, applications live in their
// own table keyed by uid with no enforced foreign keys.
func NewSQLiteDB(dbPath string) (*sql.DB, error) {
	sqlDB, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// enable WAL mode for better concurrency
	if _, err := sqlDB.Exec("PRAGMA journal_mode=WAL"); err != nil {
		if closeErr := sqlDB.Close(); closeErr != nil {
			return nil, fmt.Errorf("failed to set WAL mode: %w (also failed to close db: %v)", err, closeErr)
		}
		return nil, fmt.Errorf("failed to set WAL mode: %w", err)
	}

	if err := initSchema(sqlDB); err != nil {
		if closeErr := sqlDB.Close(); closeErr != nil {
			return nil, fmt.Errorf("%w (also failed to close db: %v)", err, closeErr)
		}
		return nil, err
	}

	return sqlDB, nil
}

// initSchema creates the database schema
func initSchema(sqlDB *sql.DB) error {
	queries := []string{
		`CREATE TABLE IF NOT EXISTS jobs (
			id TEXT PRIMARY KEY,
			title TEXT,
			company TEXT,
			location TEXT,
			salary TEXT,
			type TEXT,
			description TEXT,
			matchScore INTEGER,
			recruiterId TEXT,
			skillsRequired TEXT,
			experienceLevel TEXT,
			benefits TEXT,
			deadline TEXT,
			postedAt TEXT
		)`,
		`CREATE TABLE IF NOT EXISTS users (
			uid TEXT PRIMARY KEY,
			email TEXT,
			name TEXT,
			role TEXT,
			profileStrength INTEGER,
			collegeId TEXT,
			skills TEXT,
			bio TEXT,
			createdAt TEXT
		)`,
		`CREATE TABLE IF NOT EXISTS applications (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			jobId TEXT,
			uid TEXT,
			status TEXT,
			appliedAt TEXT
		)`,
		`CREATE INDEX IF NOT EXISTS idx_applications_uid ON applications(uid)`,
		`CREATE INDEX IF NOT EXISTS idx_users_collegeId ON users(collegeId)`,
	}

	for _, query := range queries {
		if _, err := sqlDB.Exec(query); err != nil {
			return fmt.Errorf("failed to execute query: %w", err)
		}
	}

	return nil
}
