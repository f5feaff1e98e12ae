package jsonfile

import (
	"context"

	"github.com/msomdec/tareas/internal/domain"
)

// userRecord is the on-disk shape of a user. The hash lives under
// "password" to stay readable by existing users.json files.
type userRecord struct {
	ID       int64  `json:"id"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// UserRepository implements domain.UserRepository over a JSON file.
type UserRepository struct {
	path string
}

func (r *UserRepository) Create(ctx context.Context, user *domain.User) error {
	records, err := load[userRecord](ctx, r.path)
	if err != nil {
		return err
	}

	for _, rec := range records {
		if rec.Email == user.Email {
			return domain.ErrDuplicateEmail
		}
	}

	user.ID = int64(len(records)) + 1
	records = append(records, userRecord{
		ID:       user.ID,
		Email:    user.Email,
		Password: user.PasswordHash,
	})

	return save(ctx, r.path, records)
}

func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	records, err := load[userRecord](ctx, r.path)
	if err != nil {
		return nil, err
	}

	for _, rec := range records {
		if rec.Email == email {
			return &domain.User{ID: rec.ID, Email: rec.Email, PasswordHash: rec.Password}, nil
		}
	}
	return nil, domain.ErrNotFound
}
