package auth

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/user/recipebox-go/apperror"
	"github.com/user/recipebox-go/i18n"
	"github.com/user/recipebox-go/logging"
	"github.com/user/recipebox-go/users"
)

// tokenBytes is the entropy of a token key; hex-encoded it yields 40 characters.
const tokenBytes = 20

const pgUniqueViolation = "23505"

// Service issues and resolves session tokens.
type Service interface {
	// IssueToken exchanges valid credentials for the user's token key,
	// creating one on first issue and reusing it afterwards. Credential
	// failures are reported with one generic message.
	IssueToken(ctx context.Context, email, password string) (string, error)

	// ResolveToken returns the active user bound to key.
	ResolveToken(ctx context.Context, key string) (*users.User, error)

	// RevokeToken deletes the user's token, returning it to the absent state.
	RevokeToken(ctx context.Context, userID int) error
}

type tokenService struct {
	db        *pgxpool.Pool
	directory users.Service
	catalog   *i18n.Catalog
	log       logging.Logger
}

// NewService creates the token service.
func NewService(db *pgxpool.Pool, directory users.Service, catalog *i18n.Catalog, log logging.Logger) Service {
	return &tokenService{db: db, directory: directory, catalog: catalog, log: log.With("component", "auth")}
}

// generateKey returns a new random token key.
func generateKey() (string, error) {
	buf := make([]byte, tokenBytes)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return hex.EncodeToString(buf), nil
}

func (s *tokenService) IssueToken(ctx context.Context, email, password string) (string, error) {
	if email == "" || password == "" {
		return "", apperror.NewValidationError(s.catalog.Text("auth_fields_required"), nil)
	}

	user, err := s.directory.Authenticate(ctx, email, password)
	if err != nil {
		return "", err
	}
	if user == nil {
		// Uniform rejection: the response never reveals whether the email
		// exists or the password was wrong.
		return "", apperror.NewBadRequestError(s.catalog.Text("auth_invalid_credentials"), nil)
	}

	key, err := s.getOrCreateToken(ctx, user.ID)
	if err != nil {
		return "", err
	}

	s.log.Info(ctx, "token issued", "user_id", user.ID)
	return key, nil
}

// getOrCreateToken returns the user's existing token key, inserting a fresh
// one when none exists. A concurrent first issue loses the insert race on the
// user_id unique constraint and falls back to reading the winner's key.
func (s *tokenService) getOrCreateToken(ctx context.Context, userID int) (string, error) {
	var key string
	err := s.db.QueryRow(ctx, `SELECT key FROM auth_tokens WHERE user_id = $1`, userID).Scan(&key)
	if err == nil {
		return key, nil
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return "", apperror.NewDatabaseError("failed to look up token", err)
	}

	key, err = generateKey()
	if err != nil {
		return "", apperror.NewInternalError("failed to generate token", err)
	}

	_, err = s.db.Exec(ctx, `INSERT INTO auth_tokens (key, user_id) VALUES ($1, $2)`, key, userID)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation {
			err = s.db.QueryRow(ctx, `SELECT key FROM auth_tokens WHERE user_id = $1`, userID).Scan(&key)
			if err != nil {
				return "", apperror.NewDatabaseError("failed to look up token after insert race", err)
			}
			return key, nil
		}
		return "", apperror.NewDatabaseError("failed to store token", err)
	}
	return key, nil
}

func (s *tokenService) ResolveToken(ctx context.Context, key string) (*users.User, error) {
	query := `
		SELECT u.id, u.email, u.name, u.password_hash, u.is_active, u.is_staff, u.is_superuser, u.created_at
		FROM auth_tokens t
		JOIN users u ON u.id = t.user_id
		WHERE t.key = $1
	`
	var user users.User
	err := s.db.QueryRow(ctx, query, key).Scan(
		&user.ID, &user.Email, &user.Name, &user.PasswordHash,
		&user.IsActive, &user.IsStaff, &user.IsSuperuser, &user.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperror.NewAuthError(s.catalog.Text("auth_invalid_token"), nil)
		}
		return nil, apperror.NewDatabaseError("failed to resolve token", err)
	}

	if !user.IsAuthenticated() {
		return nil, apperror.NewAuthError(s.catalog.Text("auth_user_inactive"), nil)
	}
	return &user, nil
}

func (s *tokenService) RevokeToken(ctx context.Context, userID int) error {
	if _, err := s.db.Exec(ctx, `DELETE FROM auth_tokens WHERE user_id = $1`, userID); err != nil {
		return apperror.NewDatabaseError("failed to revoke token", err)
	}
	s.log.Info(ctx, "token revoked", "user_id", userID)
	return nil
}
