package domain

import "context"

// User represents a registered account. PasswordHash is a bcrypt digest,
// never the plaintext password.
type User struct {
	ID           int64
	Email        string
	PasswordHash string
}

// UserRepository defines persistence operations for users.
//
// Create assigns the next ID and rejects an email that is already
// registered with ErrDuplicateEmail. GetByEmail returns ErrNotFound when no
// user matches; email comparison is case-sensitive.
type UserRepository interface {
	Create(ctx context.Context, user *User) error
	GetByEmail(ctx context.Context, email string) (*User, error)
}
