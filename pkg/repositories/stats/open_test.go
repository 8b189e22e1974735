package stats

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/naekun/naebot/pkg/entities"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOpen(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()

	repo, err := Open(ctx, BackendJSON, filepath.Join(dir, "stats.json"))
	require.NoError(t, err)
	assert.IsType(t, &FileRepository{}, repo)
	require.NoError(t, repo.Close())

	repo, err = Open(ctx, BackendSQLite, filepath.Join(dir, "naebot.db"))
	require.NoError(t, err)
	assert.IsType(t, &SQLiteRepository{}, repo)
	require.NoError(t, repo.Close())

	_, err = Open(ctx, "redis", "")
	assert.Error(t, err)
}

func TestCopy(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()

	src, err := NewFileRepository(filepath.Join(dir, "stats.json"))
	require.NoError(t, err)
	dst, err := NewSQLiteRepository(filepath.Join(dir, "naebot.db"))
	require.NoError(t, err)
	defer dst.Close()

	records := map[string]entities.StatsRecord{
		"300": {Win: 4, Streak: 2, MaxStreak: 3},
		"100": {Lose: 2, LoseStreak: 2, MaxLoseStreak: 2},
		"200": {Draw: 1, DrawStreak: 1, MaxDrawStreak: 1},
	}
	for _, id := range []string{"300", "100", "200"} {
		record := records[id]
		_, err := src.Update(ctx, id, func(r *entities.StatsRecord) { *r = record })
		require.NoError(t, err)
	}

	n, err := Copy(ctx, dst, src)
	require.NoError(t, err)
	assert.Equal(t, 3, n)

	all, err := dst.All(ctx)
	require.NoError(t, err)
	require.Len(t, all, 3)
	for i, id := range []string{"300", "100", "200"} {
		assert.Equal(t, id, all[i].UserID)
		assert.Equal(t, records[id], all[i].Record)
	}
}
