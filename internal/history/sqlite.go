package history

import (
	"context"
	"database/sql"
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/sqlite"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	_ "modernc.org/sqlite" // SQLite driver
)

//go:embed migrations/*.sql
var migrationsFS embed.FS

// SQLiteStore persists records in a SQLite database file.
type SQLiteStore struct {
	db *sql.DB
}

// OpenSQLite opens (creating if needed) the database at path and applies
// pending schema migrations.
func OpenSQLite(path string) (*SQLiteStore, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("create database directory: %w", err)
	}
	if err := migrateUp(path); err != nil {
		return nil, err
	}

	db, err := sql.Open("sqlite", path+"?_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)")
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}
	return &SQLiteStore{db: db}, nil
}

func migrateUp(path string) error {
	dir, err := fs.Sub(migrationsFS, "migrations")
	if err != nil {
		return fmt.Errorf("access migrations: %w", err)
	}
	src, err := iofs.New(dir, ".")
	if err != nil {
		return fmt.Errorf("create migration source: %w", err)
	}

	m, err := migrate.NewWithSourceInstance("iofs", src, "sqlite://"+filepath.ToSlash(path))
	if err != nil {
		return fmt.Errorf("create migration instance: %w", err)
	}
	defer m.Close()

	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("apply migrations: %w", err)
	}
	return nil
}

func (s *SQLiteStore) Append(ctx context.Context, rec Record) error {
	var winner sql.NullString
	if rec.Winner != nil {
		winner = sql.NullString{String: *rec.Winner, Valid: true}
	}
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO battles (id, fought_at, player1, player2, winner, turns, player1_health, player2_health)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		rec.ID, rec.Timestamp.UTC().Format(time.RFC3339Nano), rec.Player1, rec.Player2,
		winner, rec.Turns, rec.Player1Health, rec.Player2Health,
	)
	if err != nil {
		return fmt.Errorf("insert battle %s: %w", rec.ID, err)
	}
	return nil
}

func (s *SQLiteStore) QueryByUsername(ctx context.Context, username string) ([]Record, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, fought_at, player1, player2, winner, turns, player1_health, player2_health
		FROM battles
		WHERE player1 = ? OR player2 = ?
		ORDER BY rowid`,
		username, username,
	)
	if err != nil {
		return nil, fmt.Errorf("query battles for %s: %w", username, err)
	}
	defer rows.Close()

	result := make([]Record, 0)
	for rows.Next() {
		var (
			rec    Record
			ts     string
			winner sql.NullString
		)
		if err := rows.Scan(&rec.ID, &ts, &rec.Player1, &rec.Player2, &winner,
			&rec.Turns, &rec.Player1Health, &rec.Player2Health); err != nil {
			return nil, fmt.Errorf("scan battle: %w", err)
		}
		if rec.Timestamp, err = time.Parse(time.RFC3339Nano, ts); err != nil {
			return nil, fmt.Errorf("parse timestamp of battle %s: %w", rec.ID, err)
		}
		if winner.Valid {
			w := winner.String
			rec.Winner = &w
		}
		result = append(result, rec)
	}
	return result, rows.Err()
}

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}
