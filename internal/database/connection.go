package database

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	_ "github.com/mattn/go-sqlite3"
)

// DB is the global database connection
var DB *sqlx.DB

// Connect establishes the database connection. dbType is "sqlite" or
// "postgres"; dsn is the file path for sqlite or the connection URL for
// postgres.
func Connect(dbType, dsn string) error {
	var db *sqlx.DB
	var err error

	switch dbType {
	case "postgres":
		db, err = sqlx.Connect("postgres", dsn)
		if err != nil {
			return fmt.Errorf("failed to connect to postgres: %v", err)
		}
	default:
		// Create the data directory if it doesn't exist
		if dir := filepath.Dir(dsn); dir != "." {
			if err := os.MkdirAll(dir, 0755); err != nil {
				return fmt.Errorf("failed to create data directory: %v", err)
			}
		}

		db, err = sqlx.Connect("sqlite3", dsn)
		if err != nil {
			return fmt.Errorf("failed to connect to database: %v", err)
		}

		// Enable foreign keys
		if _, err := db.Exec("PRAGMA foreign_keys = ON"); err != nil {
			return fmt.Errorf("failed to enable foreign keys: %v", err)
		}

		// SQLite doesn't support multiple writers
		db.SetMaxOpenConns(1)
		db.SetMaxIdleConns(1)
	}

	DB = db

	// Initialize schema
	return initializeSchema()
}

// Close closes the database connection
func Close() error {
	if DB != nil {
		return DB.Close()
	}
	return nil
}

// initializeSchema creates necessary tables if they don't exist
func initializeSchema() error {
	statements := []struct {
		name  string
		query string
	}{
		{"users", `
			CREATE TABLE IF NOT EXISTS users (
				id INTEGER PRIMARY KEY AUTOINCREMENT,
				username TEXT UNIQUE NOT NULL,
				total_points INTEGER DEFAULT 0,
				level INTEGER DEFAULT 1,
				streak INTEGER DEFAULT 0,
				created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
			)
		`},
		{"study_sessions", `
			CREATE TABLE IF NOT EXISTS study_sessions (
				id INTEGER PRIMARY KEY AUTOINCREMENT,
				username TEXT NOT NULL,
				subject TEXT NOT NULL,
				topic TEXT,
				duration_minutes INTEGER NOT NULL,
				session_date DATE NOT NULL,
				created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
				FOREIGN KEY (username) REFERENCES users(username)
			)
		`},
		{"question_attempts", `
			CREATE TABLE IF NOT EXISTS question_attempts (
				id INTEGER PRIMARY KEY AUTOINCREMENT,
				username TEXT NOT NULL,
				subject TEXT NOT NULL,
				topic TEXT NOT NULL,
				question_id TEXT NOT NULL,
				user_answer TEXT,
				correct_answer TEXT,
				is_correct BOOLEAN NOT NULL,
				attempt_date TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
				FOREIGN KEY (username) REFERENCES users(username)
			)
		`},
		{"mistakes", `
			CREATE TABLE IF NOT EXISTS mistakes (
				id INTEGER PRIMARY KEY AUTOINCREMENT,
				username TEXT NOT NULL,
				subject TEXT NOT NULL,
				topic TEXT NOT NULL,
				question_id TEXT NOT NULL,
				mistake_date TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
				reviewed BOOLEAN DEFAULT FALSE,
				FOREIGN KEY (username) REFERENCES users(username)
			)
		`},
		{"spaced_repetition", `
			CREATE TABLE IF NOT EXISTS spaced_repetition (
				id INTEGER PRIMARY KEY AUTOINCREMENT,
				username TEXT NOT NULL,
				subject TEXT NOT NULL,
				topic TEXT NOT NULL,
				next_review_date DATE NOT NULL,
				review_count INTEGER DEFAULT 0,
				difficulty INTEGER DEFAULT 1,
				created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
				FOREIGN KEY (username) REFERENCES users(username),
				UNIQUE(username, subject, topic)
			)
		`},
		{"achievements", `
			CREATE TABLE IF NOT EXISTS achievements (
				id INTEGER PRIMARY KEY AUTOINCREMENT,
				username TEXT NOT NULL,
				achievement_name TEXT NOT NULL,
				achievement_description TEXT,
				points_awarded INTEGER DEFAULT 0,
				achieved_date TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
				FOREIGN KEY (username) REFERENCES users(username)
			)
		`},
		{"daily_goals", `
			CREATE TABLE IF NOT EXISTS daily_goals (
				id INTEGER PRIMARY KEY AUTOINCREMENT,
				username TEXT NOT NULL,
				goal_date DATE NOT NULL,
				subject TEXT NOT NULL,
				target_minutes INTEGER NOT NULL,
				completed_minutes INTEGER DEFAULT 0,
				completed BOOLEAN DEFAULT FALSE,
				FOREIGN KEY (username) REFERENCES users(username),
				UNIQUE(username, goal_date, subject)
			)
		`},
		{"future_lessons", `
			CREATE TABLE IF NOT EXISTS future_lessons (
				id INTEGER PRIMARY KEY AUTOINCREMENT,
				username TEXT NOT NULL,
				lesson_title TEXT NOT NULL,
				lesson_type TEXT NOT NULL,
				completion_date TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
				FOREIGN KEY (username) REFERENCES users(username)
			)
		`},
	}

	for _, stmt := range statements {
		query := stmt.query
		if DB.DriverName() == "postgres" {
			query = strings.Replace(query, "INTEGER PRIMARY KEY AUTOINCREMENT", "SERIAL PRIMARY KEY", 1)
		}
		if _, err := DB.Exec(query); err != nil {
			return fmt.Errorf("failed to create %s table: %v", stmt.name, err)
		}
	}

	return nil
}
