package migrations

import "embed"

// FS holds the goose migrations for the SQLite backend.
//
//go:embed *.sql
var FS embed.FS
