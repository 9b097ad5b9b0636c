package sqlite

import (
	"context"

	sqlitelib "zombiezen.com/go/sqlite"
	"zombiezen.com/go/sqlite/sqlitex"

	"github.com/rekamjejak/backend/domain"
	infra "github.com/rekamjejak/backend/internal/infrastructure/sqlite"
	"github.com/rekamjejak/backend/repository"
)

type userRepository struct {
	pool *infra.Pool
}

// NewUserRepository instantiates a SQLite-backed user repository.
func NewUserRepository(pool *infra.Pool) repository.UserRepository {
	return &userRepository{pool: pool}
}

func (r *userRepository) Create(ctx context.Context, user *domain.User) error {
	if user == nil || user.Username == "" {
		return domain.ErrInvalidPayload
	}

	conn, err := r.pool.Take(ctx)
	if err != nil {
		return err
	}
	defer r.pool.Put(conn)

	err = sqlitex.Execute(conn, `INSERT INTO users (username, password) VALUES (?, ?)`, &sqlitex.ExecOptions{
		Args: []any{user.Username, user.PasswordHash},
	})
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrUsernameTaken
		}
		return err
	}
	return nil
}

func (r *userRepository) GetByCredentials(ctx context.Context, username, passwordHash string) (*domain.User, error) {
	conn, err := r.pool.Take(ctx)
	if err != nil {
		return nil, err
	}
	defer r.pool.Put(conn)

	var user *domain.User
	err = sqlitex.Execute(conn, `SELECT username, password FROM users WHERE username = ? AND password = ?`, &sqlitex.ExecOptions{
		Args: []any{username, passwordHash},
		ResultFunc: func(stmt *sqlitelib.Stmt) error {
			user = &domain.User{
				Username:     stmt.ColumnText(0),
				PasswordHash: stmt.ColumnText(1),
			}
			return nil
		},
	})
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrUserNotFound
	}
	return user, nil
}

// isUniqueViolation reports whether err is a primary-key or unique
// constraint failure from the engine.
func isUniqueViolation(err error) bool {
	switch sqlitelib.ErrCode(err) {
	case sqlitelib.ResultConstraintPrimaryKey, sqlitelib.ResultConstraintUnique:
		return true
	default:
		return false
	}
}
