package auth

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/rekamjejak/backend/domain"
	"github.com/rekamjejak/backend/repository"
)

// UseCase implements registration and login over the credential store.
//
// Passwords are stored as unsalted SHA-256 hex digests, matched by exact
// equality. That keeps the persisted layout compatible but is weak
// against offline dictionary attacks; treat the database file as secret.
type UseCase struct {
	users    repository.UserRepository
	sessions repository.SessionRepository
	secret   []byte
	issuer   string
	logger   *zap.Logger
}

func New(users repository.UserRepository, sessions repository.SessionRepository, secret, issuer string, logger *zap.Logger) *UseCase {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &UseCase{
		users:    users,
		sessions: sessions,
		secret:   []byte(secret),
		issuer:   issuer,
		logger:   logger,
	}
}

// Register creates a new account. A duplicate username fails with
// domain.ErrUsernameTaken rather than overwriting the existing row.
func (uc *UseCase) Register(ctx context.Context, username, password string) error {
	username = strings.TrimSpace(username)
	if username == "" || password == "" {
		return domain.NewError(domain.ErrCodeInvalid, "username and password are required")
	}

	user := &domain.User{
		Username:     username,
		PasswordHash: HashPassword(password),
	}
	if err := uc.users.Create(ctx, user); err != nil {
		return err
	}

	uc.logger.Info("user registered", zap.String("username", username))
	return nil
}

// LoginResult carries the signed token alongside its session.
type LoginResult struct {
	Token   string          `json:"token"`
	Session *domain.Session `json:"session"`
}

// Login verifies the credentials and opens a session. Wrong password and
// unknown username both surface as domain.ErrInvalidCredentials; callers
// cannot enumerate usernames through this path.
func (uc *UseCase) Login(ctx context.Context, username, password string) (*LoginResult, error) {
	user, err := uc.users.GetByCredentials(ctx, username, HashPassword(password))
	if err != nil {
		if domain.IsDomainError(err, domain.ErrCodeNotFound) {
			return nil, domain.ErrInvalidCredentials
		}
		return nil, err
	}

	session := &domain.Session{
		ID:        uuid.NewString(),
		Username:  user.Username,
		CreatedAt: time.Now(),
	}
	if err := uc.sessions.Save(ctx, session); err != nil {
		return nil, err
	}

	token, err := uc.signToken(session)
	if err != nil {
		return nil, err
	}

	uc.logger.Info("user logged in", zap.String("username", user.Username))
	return &LoginResult{Token: token, Session: session}, nil
}

// Logout revokes the session behind the token.
func (uc *UseCase) Logout(ctx context.Context, sessionID string) error {
	return uc.sessions.Delete(ctx, sessionID)
}

func (uc *UseCase) signToken(session *domain.Session) (string, error) {
	claims := jwt.MapClaims{
		"username":   session.Username,
		"session_id": session.ID,
		"iss":        uc.issuer,
		"iat":        session.CreatedAt.Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(uc.secret)
}

// HashPassword computes the hex-encoded SHA-256 digest stored in the
// users table.
func HashPassword(password string) string {
	sum := sha256.Sum256([]byte(password))
	return hex.EncodeToString(sum[:])
}
