package stats

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/naekun/naebot/pkg/db/migrations"
	"github.com/naekun/naebot/pkg/entities"
	_ "github.com/mattn/go-sqlite3"
)

const recordColumns = `win, lose, draw, streak, max_streak,
	lose_streak, max_lose_streak, draw_streak, max_draw_streak`

// SQLiteRepository implements Repository using SQLite
type SQLiteRepository struct {
	db *sql.DB
	// SQLite allows one writer; serializing here avoids SQLITE_BUSY on upgrade
	writeMu sync.Mutex
}

// NewSQLiteRepository opens the database at dbPath and applies migrations
func NewSQLiteRepository(dbPath string) (*SQLiteRepository, error) {
	dbDir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dbDir, 0755); err != nil {
		return nil, fmt.Errorf("error creating database directory: %w", err)
	}

	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return nil, fmt.Errorf("error opening database: %w", err)
	}

	migrator := migrations.NewMigrator(db, migrations.SQLite())
	if err := migrator.MigrateUp(); err != nil {
		db.Close()
		return nil, fmt.Errorf("error applying migrations: %w", err)
	}

	return &SQLiteRepository{db: db}, nil
}

// GetOrCreate returns the user's record or a zero record
func (r *SQLiteRepository) GetOrCreate(ctx context.Context, userID string) (*entities.StatsRecord, error) {
	record, err := scanRecord(r.db.QueryRowContext(ctx,
		`SELECT `+recordColumns+` FROM janken_stats WHERE user_id = ?`, userID))
	if errors.Is(err, sql.ErrNoRows) {
		return &entities.StatsRecord{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get stats for %s: %w", userID, err)
	}
	return record, nil
}

// Update reads, mutates and writes the user's record in one transaction
func (r *SQLiteRepository) Update(ctx context.Context, userID string, fn func(*entities.StatsRecord)) (*entities.StatsRecord, error) {
	r.writeMu.Lock()
	defer r.writeMu.Unlock()

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	record, err := scanRecord(tx.QueryRowContext(ctx,
		`SELECT `+recordColumns+` FROM janken_stats WHERE user_id = ?`, userID))
	if errors.Is(err, sql.ErrNoRows) {
		record = &entities.StatsRecord{}
	} else if err != nil {
		return nil, fmt.Errorf("failed to get stats for %s: %w", userID, err)
	}

	fn(record)

	_, err = tx.ExecContext(ctx, `
		INSERT INTO janken_stats (user_id, `+recordColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(user_id) DO UPDATE SET
			win = excluded.win,
			lose = excluded.lose,
			draw = excluded.draw,
			streak = excluded.streak,
			max_streak = excluded.max_streak,
			lose_streak = excluded.lose_streak,
			max_lose_streak = excluded.max_lose_streak,
			draw_streak = excluded.draw_streak,
			max_draw_streak = excluded.max_draw_streak,
			updated_at = CURRENT_TIMESTAMP`,
		append([]any{userID}, recordValues(record)...)...,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to save stats for %s: %w", userID, err)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit stats for %s: %w", userID, err)
	}

	return record, nil
}

// All returns every record ordered by first insertion
func (r *SQLiteRepository) All(ctx context.Context) ([]*entities.UserStats, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT user_id, `+recordColumns+` FROM janken_stats ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("failed to query stats: %w", err)
	}
	defer rows.Close()

	var all []*entities.UserStats
	for rows.Next() {
		stats := &entities.UserStats{}
		dest := append([]any{&stats.UserID}, recordPointers(&stats.Record)...)
		if err := rows.Scan(dest...); err != nil {
			return nil, fmt.Errorf("failed to scan stats: %w", err)
		}
		all = append(all, stats)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating stats: %w", err)
	}

	return all, nil
}

// Close closes the database connection
func (r *SQLiteRepository) Close() error {
	return r.db.Close()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanRecord(row rowScanner) (*entities.StatsRecord, error) {
	record := &entities.StatsRecord{}
	if err := row.Scan(recordPointers(record)...); err != nil {
		return nil, err
	}
	return record, nil
}

// recordPointers lists the record fields in recordColumns order
func recordPointers(r *entities.StatsRecord) []any {
	return []any{
		&r.Win, &r.Lose, &r.Draw,
		&r.Streak, &r.MaxStreak,
		&r.LoseStreak, &r.MaxLoseStreak,
		&r.DrawStreak, &r.MaxDrawStreak,
	}
}

// recordValues lists the record values in recordColumns order
func recordValues(r *entities.StatsRecord) []any {
	return []any{
		r.Win, r.Lose, r.Draw,
		r.Streak, r.MaxStreak,
		r.LoseStreak, r.MaxLoseStreak,
		r.DrawStreak, r.MaxDrawStreak,
	}
}
