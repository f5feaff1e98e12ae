// Package jsonfile stores users and tasks as whole-file JSON snapshots.
//
// Every read loads the entire collection and every write rewrites the entire
// file. No lock is held across a load/save pair, so two requests that
// interleave can both read the same snapshot and the later save wins. IDs are
// assigned as len(collection)+1, which can collide after a delete or under
// concurrent writers. Use the sqlite or postgres backend when either
// matters.
package jsonfile

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/msomdec/tareas/internal/domain"
)

// DB groups the user and task snapshot files.
type DB struct {
	usersPath string
	tasksPath string
	users     *UserRepository
	tasks     *TaskRepository
}

// New creates a DB backed by the given files. The files need not exist;
// a missing file reads as an empty collection.
func New(usersPath, tasksPath string) (*DB, error) {
	if usersPath == "" || tasksPath == "" {
		return nil, errors.New("users and tasks file paths are required")
	}
	db := &DB{usersPath: usersPath, tasksPath: tasksPath}
	db.users = &UserRepository{path: usersPath}
	db.tasks = &TaskRepository{path: tasksPath}
	return db, nil
}

func (db *DB) Users() domain.UserRepository { return db.users }
func (db *DB) Tasks() domain.TaskRepository { return db.tasks }

// Migrate creates the parent directories of both files.
func (db *DB) Migrate(ctx context.Context) error {
	for _, p := range []string{db.usersPath, db.tasksPath} {
		if err := os.MkdirAll(filepath.Dir(p), 0o755); err != nil {
			return fmt.Errorf("create directory for %s: %w", p, err)
		}
	}
	return nil
}

func (db *DB) Close() error { return nil }

// load reads the whole collection stored at path.
func load[T any](ctx context.Context, path string) ([]T, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return []T{}, nil
		}
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	if len(data) == 0 {
		return []T{}, nil
	}

	var items []T
	if err := json.Unmarshal(data, &items); err != nil {
		return nil, fmt.Errorf("decode %s: %w", path, err)
	}
	if items == nil {
		items = []T{}
	}
	return items, nil
}

// save overwrites the file at path with the whole collection.
func save[T any](ctx context.Context, path string, items []T) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	data, err := json.MarshalIndent(items, "", "  ")
	if err != nil {
		return fmt.Errorf("encode %s: %w", path, err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}
