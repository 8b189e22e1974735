package stats

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/naekun/naebot/pkg/entities"
)

const createPostgresStatsTableSQL = `
CREATE TABLE IF NOT EXISTS janken_stats (
	seq BIGSERIAL UNIQUE,
	user_id TEXT PRIMARY KEY,
	win INTEGER NOT NULL DEFAULT 0,
	lose INTEGER NOT NULL DEFAULT 0,
	draw INTEGER NOT NULL DEFAULT 0,
	streak INTEGER NOT NULL DEFAULT 0,
	max_streak INTEGER NOT NULL DEFAULT 0,
	lose_streak INTEGER NOT NULL DEFAULT 0,
	max_lose_streak INTEGER NOT NULL DEFAULT 0,
	draw_streak INTEGER NOT NULL DEFAULT 0,
	max_draw_streak INTEGER NOT NULL DEFAULT 0,
	updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
)`

// PostgresRepository implements Repository using a pgx connection pool
type PostgresRepository struct {
	pool *pgxpool.Pool
}

// NewPostgresRepository connects to databaseURL and ensures the stats table exists
func NewPostgresRepository(ctx context.Context, databaseURL string) (*PostgresRepository, error) {
	config, err := pgxpool.ParseConfig(databaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse database URL: %w", err)
	}

	config.MaxConns = 10
	config.MinConns = 1
	config.MaxConnLifetime = 45 * time.Minute
	config.MaxConnIdleTime = 5 * time.Minute
	config.ConnConfig.RuntimeParams["application_name"] = "naebot"

	pool, err := pgxpool.NewWithConfig(ctx, config)
	if err != nil {
		return nil, fmt.Errorf("failed to create connection pool: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to reach database: %w", err)
	}

	if _, err := pool.Exec(ctx, createPostgresStatsTableSQL); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to create janken_stats table: %w", err)
	}

	return &PostgresRepository{pool: pool}, nil
}

// GetOrCreate returns the user's record or a zero record
func (r *PostgresRepository) GetOrCreate(ctx context.Context, userID string) (*entities.StatsRecord, error) {
	record, err := scanRecord(r.pool.QueryRow(ctx,
		`SELECT `+recordColumns+` FROM janken_stats WHERE user_id = $1`, userID))
	if errors.Is(err, pgx.ErrNoRows) {
		return &entities.StatsRecord{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get stats for %s: %w", userID, err)
	}
	return record, nil
}

// Update locks the user's row for the duration of the read-modify-write
func (r *PostgresRepository) Update(ctx context.Context, userID string, fn func(*entities.StatsRecord)) (*entities.StatsRecord, error) {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	// Make sure a row exists so FOR UPDATE has something to lock
	if _, err := tx.Exec(ctx,
		`INSERT INTO janken_stats (user_id) VALUES ($1) ON CONFLICT (user_id) DO NOTHING`, userID); err != nil {
		return nil, fmt.Errorf("failed to create stats row for %s: %w", userID, err)
	}

	record, err := scanRecord(tx.QueryRow(ctx,
		`SELECT `+recordColumns+` FROM janken_stats WHERE user_id = $1 FOR UPDATE`, userID))
	if err != nil {
		return nil, fmt.Errorf("failed to get stats for %s: %w", userID, err)
	}

	fn(record)

	_, err = tx.Exec(ctx, `
		UPDATE janken_stats SET
			win = $2, lose = $3, draw = $4,
			streak = $5, max_streak = $6,
			lose_streak = $7, max_lose_streak = $8,
			draw_streak = $9, max_draw_streak = $10,
			updated_at = NOW()
		WHERE user_id = $1`,
		append([]any{userID}, recordValues(record)...)...,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to save stats for %s: %w", userID, err)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("failed to commit stats for %s: %w", userID, err)
	}

	return record, nil
}

// All returns every record ordered by first insertion
func (r *PostgresRepository) All(ctx context.Context) ([]*entities.UserStats, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT user_id, `+recordColumns+` FROM janken_stats ORDER BY seq`)
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

// Close closes the connection pool
func (r *PostgresRepository) Close() error {
	r.pool.Close()
	return nil
}
