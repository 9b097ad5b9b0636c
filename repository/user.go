package repository

import (
	"context"

	"github.com/rekamjejak/backend/domain"
)

type UserRepository interface {
	// Create persists a new user. A duplicate username fails with
	// domain.ErrUsernameTaken; the row is never overwritten.
	Create(ctx context.Context, user *domain.User) error

	// GetByCredentials returns the user matching the exact
	// (username, passwordHash) pair, or domain.ErrUserNotFound. A hash
	// mismatch on an existing username is indistinguishable from an
	// unknown username.
	GetByCredentials(ctx context.Context, username, passwordHash string) (*domain.User, error)
}
