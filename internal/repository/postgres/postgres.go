// Package postgres implements the stores on PostgreSQL through the pgx
// database/sql driver, with schema managed by goose.
package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/msomdec/tareas/internal/domain"
	"github.com/msomdec/tareas/internal/repository/postgres/migrations"
	"github.com/pressly/goose/v3"
)

const uniqueViolation = "23505"

// DB wraps a Postgres connection pool and the repositories built on it.
type DB struct {
	db    *sql.DB
	users *UserRepository
	tasks *TaskRepository
}

// New opens a pool for dsn and checks connectivity.
func New(ctx context.Context, dsn string) (*DB, error) {
	sqlDB, err := sql.Open("pgx", dsn)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	if err := sqlDB.PingContext(ctx); err != nil {
		sqlDB.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}
	return NewWithDB(sqlDB), nil
}

// NewWithDB builds a DB on an already opened handle.
func NewWithDB(sqlDB *sql.DB) *DB {
	return &DB{
		db:    sqlDB,
		users: NewUserRepository(sqlDB),
		tasks: NewTaskRepository(sqlDB),
	}
}

func (d *DB) Users() domain.UserRepository { return d.users }
func (d *DB) Tasks() domain.TaskRepository { return d.tasks }

// Migrate brings the schema up to date with goose.
func (d *DB) Migrate(ctx context.Context) error {
	goose.SetBaseFS(migrations.FS)
	if err := goose.SetDialect("postgres"); err != nil {
		return fmt.Errorf("set goose dialect: %w", err)
	}
	if err := goose.UpContext(ctx, d.db, "."); err != nil {
		return fmt.Errorf("goose up: %w", err)
	}
	return nil
}

func (d *DB) Close() error {
	return d.db.Close()
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == uniqueViolation
}
