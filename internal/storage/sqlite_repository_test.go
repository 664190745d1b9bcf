package storage

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func setupRepo(t *testing.T) *SQLiteRepository {
	t.Helper()
	repo, err := OpenSQLite(filepath.Join(t.TempDir(), "tarefa-test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = repo.Close() })
	return repo
}

func sampleTasks() []Task {
	created := time.Date(2026, 2, 9, 12, 0, 0, 0, time.UTC)
	return []Task{
		{ID: "1", Name: "Buy milk", CreatedAt: created, Deadline: created.Add(7 * 24 * time.Hour)},
		{ID: "2", Name: "Walk dog", Done: true, CreatedAt: created.Add(time.Hour), Deadline: created.Add(7*24*time.Hour + time.Hour)},
	}
}

func TestSQLiteLoadMissingKey(t *testing.T) {
	repo := setupRepo(t)
	_, err := repo.LoadTasks(context.Background())
	require.ErrorIs(t, err, ErrNotFound)
}

func TestSQLiteSaveAndLoadTasks(t *testing.T) {
	repo := setupRepo(t)
	ctx := context.Background()
	want := sampleTasks()

	require.NoError(t, repo.SaveTasks(ctx, want, 3))
	got, err := repo.LoadTasks(ctx)
	require.NoError(t, err)
	require.Len(t, got, 2)
	for i := range want {
		require.Equal(t, want[i].ID, got[i].ID)
		require.Equal(t, want[i].Name, got[i].Name)
		require.Equal(t, want[i].Done, got[i].Done)
		require.True(t, want[i].CreatedAt.Equal(got[i].CreatedAt))
		require.True(t, want[i].Deadline.Equal(got[i].Deadline))
	}

	require.NoError(t, repo.SaveTasks(ctx, want[:1], 3))
	got, err = repo.LoadTasks(ctx)
	require.NoError(t, err)
	require.Len(t, got, 1)
}

func TestSQLiteStoresJSONArrayUnderTasksKey(t *testing.T) {
	repo := setupRepo(t)
	ctx := context.Background()
	fixed := time.Date(2026, 3, 1, 8, 0, 0, 0, time.UTC)
	repo.now = func() time.Time { return fixed }

	require.NoError(t, repo.SaveTasks(ctx, nil, 0))
	item, err := repo.GetItem(ctx, TasksKey)
	require.NoError(t, err)
	require.Equal(t, "[]", item.Value)
	require.True(t, item.UpdatedAt.Equal(fixed))

	require.NoError(t, repo.SaveTasks(ctx, sampleTasks()[:1], 0))
	item, err = repo.GetItem(ctx, TasksKey)
	require.NoError(t, err)
	require.Contains(t, item.Value, `"createdAt":"2026-02-09T12:00:00Z"`)
	require.Contains(t, item.Value, `"deadline":"2026-02-16T12:00:00Z"`)
}

func TestSQLiteMalformedPayload(t *testing.T) {
	repo := setupRepo(t)
	ctx := context.Background()
	require.NoError(t, repo.SetItem(ctx, TasksKey, "{not json"))

	_, err := repo.LoadTasks(ctx)
	require.True(t, errors.Is(err, ErrMalformed), "expected ErrMalformed, got %v", err)
}

func TestSQLiteNextIDSavedWithTasks(t *testing.T) {
	repo := setupRepo(t)
	ctx := context.Background()

	_, err := repo.LoadNextID(ctx)
	require.ErrorIs(t, err, ErrNotFound)

	require.NoError(t, repo.SaveTasks(ctx, sampleTasks(), 5))
	n, err := repo.LoadNextID(ctx)
	require.NoError(t, err)
	require.Equal(t, 5, n)

	require.NoError(t, repo.SaveTasks(ctx, nil, 0))
	n, err = repo.LoadNextID(ctx)
	require.NoError(t, err)
	require.Equal(t, 5, n, "a zero counter must keep the stored one")

	item, err := repo.GetItem(ctx, NextIDKey)
	require.NoError(t, err)
	require.Equal(t, "5", item.Value)
}

func TestSQLiteMalformedNextID(t *testing.T) {
	repo := setupRepo(t)
	ctx := context.Background()
	require.NoError(t, repo.SetItem(ctx, NextIDKey, "-3"))

	_, err := repo.LoadNextID(ctx)
	require.ErrorIs(t, err, ErrMalformed)
}
