package storage

import (
	"context"
	"errors"
	"fmt"
	"strings"
)

var (
	ErrNotFound       = errors.New("storage: not found")
	ErrMalformed      = errors.New("storage: malformed payload")
	ErrUnknownBackend = errors.New("storage: unknown backend")
)

// Repository persists the task list under TasksKey and the id counter
// under NextIDKey. Both loaders return ErrNotFound when nothing has been
// stored yet. SaveTasks writes the list and the counter together; a
// nextID below 1 leaves the stored counter as it is.
type Repository interface {
	LoadTasks(ctx context.Context) ([]Task, error)
	LoadNextID(ctx context.Context) (int, error)
	SaveTasks(ctx context.Context, tasks []Task, nextID int) error
	Close() error
}

type Backend string

const (
	BackendSQLite Backend = "sqlite"
	BackendFile   Backend = "file"
	BackendMemory Backend = "memory"
)

func (b Backend) IsValid() bool {
	switch b {
	case BackendSQLite, BackendFile, BackendMemory:
		return true
	default:
		return false
	}
}

type OpenOptions struct {
	Backend Backend
	Path    string
	Format  FileFormat
}

// Open builds the repository selected by opts. SQLite databases are
// migrated before they are returned.
func Open(opts OpenOptions) (Repository, error) {
	switch Backend(strings.ToLower(string(opts.Backend))) {
	case BackendSQLite:
		return OpenSQLite(opts.Path)
	case BackendFile:
		return NewFileRepository(opts.Path, opts.Format)
	case BackendMemory:
		return NewMemoryRepository(), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownBackend, opts.Backend)
	}
}
