package domain

import "context"

// Store is the persistence backend behind the services. Each
// implementation (JSON file snapshots, SQLite, Postgres) owns its own
// schema or file layout, so the backend is swappable from configuration.
type Store interface {
	Users() UserRepository
	Tasks() TaskRepository
	Migrate(ctx context.Context) error
	Close() error
}
