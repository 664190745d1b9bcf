package storage

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/gofrs/flock"
	yaml "gopkg.in/yaml.v3"
)

type FileFormat string

const (
	FormatJSON FileFormat = "json"
	FormatYAML FileFormat = "yaml"
	FormatTOML FileFormat = "toml"
)

var ErrUnsupportedFormat = errors.New("storage: unsupported file format")

const lockRetryDelay = 25 * time.Millisecond

// ParseFileFormat accepts a format name or a file extension ("yml", ".toml").
func ParseFileFormat(raw string) (FileFormat, error) {
	switch strings.TrimPrefix(strings.ToLower(strings.TrimSpace(raw)), ".") {
	case "json":
		return FormatJSON, nil
	case "yaml", "yml":
		return FormatYAML, nil
	case "toml":
		return FormatTOML, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnsupportedFormat, raw)
	}
}

type fileDocument struct {
	NextID int    `json:"nextId,omitempty" yaml:"nextId,omitempty" toml:"nextId,omitempty"`
	Tasks  []Task `json:"tasks" yaml:"tasks" toml:"tasks"`
}

// FileRepository stores the task list as a single document. Reads take a
// shared lock and writes an exclusive one on path+".lock", so several
// processes can point at the same file.
type FileRepository struct {
	path   string
	format FileFormat
	flk    *flock.Flock
}

// NewFileRepository creates the parent directory of path. An empty format
// is inferred from the extension of path.
func NewFileRepository(path string, format FileFormat) (*FileRepository, error) {
	if strings.TrimSpace(path) == "" {
		return nil, errors.New("storage: file path is required")
	}
	if format == "" {
		inferred, err := ParseFileFormat(filepath.Ext(path))
		if err != nil {
			return nil, err
		}
		format = inferred
	} else if _, err := ParseFileFormat(string(format)); err != nil {
		return nil, err
	}
	dir := filepath.Dir(path)
	if dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create data dir %s: %w", dir, err)
		}
	}
	return &FileRepository{
		path:   path,
		format: format,
		flk:    flock.New(path + ".lock"),
	}, nil
}

func (r *FileRepository) Path() string       { return r.path }
func (r *FileRepository) Format() FileFormat { return r.format }

func (r *FileRepository) Close() error {
	return r.flk.Close()
}

func (r *FileRepository) LoadTasks(ctx context.Context) ([]Task, error) {
	doc, err := r.read(ctx)
	if err != nil {
		return nil, err
	}
	return doc.Tasks, nil
}

func (r *FileRepository) LoadNextID(ctx context.Context) (int, error) {
	doc, err := r.read(ctx)
	if err != nil {
		return 0, err
	}
	if doc.NextID < 1 {
		return 0, ErrNotFound
	}
	return doc.NextID, nil
}

// SaveTasks rewrites the whole document. A nextID below 1 carries over
// the counter already on disk.
func (r *FileRepository) SaveTasks(ctx context.Context, tasks []Task, nextID int) error {
	if tasks == nil {
		tasks = []Task{}
	}

	locked, err := r.flk.TryLockContext(ctx, lockRetryDelay)
	if err != nil {
		return fmt.Errorf("lock %s: %w", r.path, err)
	}
	if !locked {
		return fmt.Errorf("lock %s: not acquired", r.path)
	}
	defer func() { _ = r.flk.Unlock() }()

	if nextID < 1 {
		if current, err := r.readUnlocked(); err == nil {
			nextID = current.NextID
		}
	}
	payload, err := encodeDocument(fileDocument{NextID: nextID, Tasks: tasks}, r.format)
	if err != nil {
		return fmt.Errorf("encode %s: %w", r.path, err)
	}

	tmp := r.path + ".tmp"
	if err := os.WriteFile(tmp, payload, 0o644); err != nil {
		return err
	}
	return os.Rename(tmp, r.path)
}

func (r *FileRepository) read(ctx context.Context) (fileDocument, error) {
	locked, err := r.flk.TryRLockContext(ctx, lockRetryDelay)
	if err != nil {
		return fileDocument{}, fmt.Errorf("lock %s: %w", r.path, err)
	}
	if !locked {
		return fileDocument{}, fmt.Errorf("lock %s: not acquired", r.path)
	}
	defer func() { _ = r.flk.Unlock() }()
	return r.readUnlocked()
}

func (r *FileRepository) readUnlocked() (fileDocument, error) {
	raw, err := os.ReadFile(r.path)
	if err != nil {
		if os.IsNotExist(err) {
			return fileDocument{}, ErrNotFound
		}
		return fileDocument{}, err
	}
	if len(bytes.TrimSpace(raw)) == 0 {
		return fileDocument{}, ErrNotFound
	}
	doc, err := decodeDocument(raw, r.format)
	if err != nil {
		return fileDocument{}, fmt.Errorf("%w: %s: %v", ErrMalformed, r.path, err)
	}
	return doc, nil
}

func decodeDocument(raw []byte, format FileFormat) (fileDocument, error) {
	var doc fileDocument
	var err error
	switch format {
	case FormatJSON:
		err = json.Unmarshal(raw, &doc)
	case FormatYAML:
		err = yaml.Unmarshal(raw, &doc)
	case FormatTOML:
		err = toml.Unmarshal(raw, &doc)
	default:
		err = fmt.Errorf("%w: %q", ErrUnsupportedFormat, format)
	}
	return doc, err
}

func encodeDocument(doc fileDocument, format FileFormat) ([]byte, error) {
	switch format {
	case FormatJSON:
		payload, err := json.MarshalIndent(doc, "", "  ")
		if err != nil {
			return nil, err
		}
		return append(payload, '\n'), nil
	case FormatYAML:
		return yaml.Marshal(doc)
	case FormatTOML:
		var buf bytes.Buffer
		if err := toml.NewEncoder(&buf).Encode(doc); err != nil {
			return nil, err
		}
		return buf.Bytes(), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, format)
	}
}
