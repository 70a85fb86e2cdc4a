package database

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	_ "github.com/mattn/go-sqlite3"
)

// DB is the global database connection
var DB *sqlx.DB

// Connect establishes a connection to the database. DB_TYPE selects the
// driver: "postgres" connects to DATABASE_URL, anything else opens a local
// SQLite file under the data directory.
func Connect() error {
	dbType := os.Getenv("DB_TYPE")

	if dbType == "postgres" {
		db, err := sqlx.Connect("postgres", os.Getenv("DATABASE_URL"))
		if err != nil {
			return fmt.Errorf("failed to connect to database: %v", err)
		}
		DB = db
		return initializeSchema()
	}

	// Create data directory if it doesn't exist
	dataDir := os.Getenv("DATA_DIR")
	if dataDir == "" {
		dataDir = "data"
	}
	if err := os.MkdirAll(dataDir, 0755); err != nil {
		return fmt.Errorf("failed to create data directory: %v", err)
	}

	dbPath := filepath.Join(dataDir, "vocabbot.db")
	db, err := sqlx.Connect("sqlite3", dbPath)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %v", err)
	}

	// SQLite doesn't support multiple writers
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	DB = db
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
	// Create words table
	_, err := DB.Exec(`
		CREATE TABLE IF NOT EXISTS words (
			id TEXT PRIMARY KEY,
			word TEXT NOT NULL UNIQUE,
			definition TEXT NOT NULL,
			pronunciation TEXT NOT NULL DEFAULT '',
			add_reason TEXT NOT NULL,
			proficiency_level INTEGER NOT NULL DEFAULT 0,
			review_count INTEGER NOT NULL DEFAULT 0,
			easiness_factor REAL NOT NULL DEFAULT 2.5,
			interval INTEGER NOT NULL DEFAULT 0,
			repetitions INTEGER NOT NULL DEFAULT 0,
			last_review_at TIMESTAMP,
			next_review_at TIMESTAMP,
			created_at TIMESTAMP NOT NULL
		)
	`)
	if err != nil {
		return fmt.Errorf("failed to create words table: %v", err)
	}

	// Разные автоинкременты для разных СУБД
	idColumn := "INTEGER PRIMARY KEY AUTOINCREMENT"
	if DB.DriverName() == "postgres" {
		idColumn = "BIGSERIAL PRIMARY KEY"
	}

	// Create activity_log table
	_, err = DB.Exec(fmt.Sprintf(`
		CREATE TABLE IF NOT EXISTS activity_log (
			id %s,
			activity_type TEXT NOT NULL,
			word_id TEXT NOT NULL DEFAULT '',
			accuracy_score REAL NOT NULL DEFAULT 0,
			time_spent_seconds INTEGER NOT NULL DEFAULT 0,
			created_at TIMESTAMP NOT NULL
		)
	`, idColumn))
	if err != nil {
		return fmt.Errorf("failed to create activity_log table: %v", err)
	}

	return nil
}
