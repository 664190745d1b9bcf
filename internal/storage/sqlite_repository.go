package storage

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"time"

	_ "github.com/mattn/go-sqlite3"
)

const sqliteTimeLayout = time.RFC3339Nano

// SQLiteRepository keeps string values in a kv_store table, one row per
// key. The task list lives under TasksKey as a JSON array.
type SQLiteRepository struct {
	db  *sql.DB
	now func() time.Time
}

func NewSQLiteRepository(db *sql.DB) (*SQLiteRepository, error) {
	if db == nil {
		return nil, errors.New("storage: nil db")
	}
	return &SQLiteRepository{db: db, now: time.Now}, nil
}

func OpenSQLite(path string) (*SQLiteRepository, error) {
	if path == "" {
		return nil, errors.New("storage: sqlite path is required")
	}
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	if err := MigrateUp(db); err != nil {
		_ = db.Close()
		return nil, err
	}
	repo, err := NewSQLiteRepository(db)
	if err != nil {
		_ = db.Close()
		return nil, err
	}
	return repo, nil
}

func (r *SQLiteRepository) Close() error {
	return r.db.Close()
}

func (r *SQLiteRepository) GetItem(ctx context.Context, key string) (Item, error) {
	row := r.db.QueryRowContext(ctx, `SELECT key, value, updated_at FROM kv_store WHERE key = ?`, key)
	var out Item
	var updated string
	if err := row.Scan(&out.Key, &out.Value, &updated); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Item{}, ErrNotFound
		}
		return Item{}, err
	}
	updatedAt, err := time.Parse(sqliteTimeLayout, updated)
	if err != nil {
		return Item{}, fmt.Errorf("parse updated_at for %s: %w", key, err)
	}
	out.UpdatedAt = updatedAt
	return out, nil
}

// execer is satisfied by both *sql.DB and *sql.Tx.
type execer interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}

func (r *SQLiteRepository) SetItem(ctx context.Context, key, value string) error {
	return r.setItem(ctx, r.db, key, value)
}

func (r *SQLiteRepository) setItem(ctx context.Context, db execer, key, value string) error {
	_, err := db.ExecContext(ctx, `
		INSERT INTO kv_store (key, value, updated_at)
		VALUES (?, ?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at`,
		key, value, r.now().UTC().Format(sqliteTimeLayout),
	)
	return err
}

func (r *SQLiteRepository) LoadTasks(ctx context.Context) ([]Task, error) {
	item, err := r.GetItem(ctx, TasksKey)
	if err != nil {
		return nil, err
	}
	var out []Task
	if err := json.Unmarshal([]byte(item.Value), &out); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrMalformed, TasksKey, err)
	}
	return out, nil
}

func (r *SQLiteRepository) LoadNextID(ctx context.Context) (int, error) {
	item, err := r.GetItem(ctx, NextIDKey)
	if err != nil {
		return 0, err
	}
	n, err := strconv.Atoi(item.Value)
	if err != nil || n < 1 {
		return 0, fmt.Errorf("%w: %s: %q", ErrMalformed, NextIDKey, item.Value)
	}
	return n, nil
}

// SaveTasks writes the task list and the id counter in one transaction.
func (r *SQLiteRepository) SaveTasks(ctx context.Context, tasks []Task, nextID int) error {
	if tasks == nil {
		tasks = []Task{}
	}
	payload, err := json.Marshal(tasks)
	if err != nil {
		return fmt.Errorf("encode %s: %w", TasksKey, err)
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin save: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if err := r.setItem(ctx, tx, TasksKey, string(payload)); err != nil {
		return fmt.Errorf("save %s: %w", TasksKey, err)
	}
	if nextID > 0 {
		if err := r.setItem(ctx, tx, NextIDKey, strconv.Itoa(nextID)); err != nil {
			return fmt.Errorf("save %s: %w", NextIDKey, err)
		}
	}
	return tx.Commit()
}
