package users

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/user/recipebox-go/apperror"
	"github.com/user/recipebox-go/credential"
	"github.com/user/recipebox-go/i18n"
	"github.com/user/recipebox-go/logging"
)

// pgUniqueViolation is the PostgreSQL error code for unique constraint violations.
const pgUniqueViolation = "23505"

// Service is the user directory. Authenticate returns (nil, nil) on any
// credential mismatch so callers emit one generic rejection that never
// reveals which field was wrong.
type Service interface {
	Create(ctx context.Context, email, password, name string) (*User, error)
	CreateSuperuser(ctx context.Context, email, password string) (*User, error)
	Authenticate(ctx context.Context, email, password string) (*User, error)
	GetByID(ctx context.Context, userID int) (*User, error)
	UpdateProfile(ctx context.Context, userID int, req *UpdateProfileRequest) (*User, error)
}

type userService struct {
	db      *pgxpool.Pool
	catalog *i18n.Catalog
	log     logging.Logger
}

// NewService creates the directory service backed by the given pool.
func NewService(db *pgxpool.Pool, catalog *i18n.Catalog, log logging.Logger) Service {
	return &userService{db: db, catalog: catalog, log: log.With("component", "users")}
}

// Create persists a new active, non-staff user. The email is normalized
// before storage and must be unique; duplicates are reported as validation
// failures, matching the signup endpoint's 400 contract.
func (s *userService) Create(ctx context.Context, email, password, name string) (*User, error) {
	if email == "" {
		return nil, apperror.NewValidationError(s.catalog.Text("user_no_email"), nil)
	}

	hash, err := credential.HashPassword(password)
	if err != nil {
		return nil, apperror.NewInternalError("failed to hash password", err)
	}

	user := &User{
		Email:        credential.NormalizeEmail(email),
		Name:         name,
		PasswordHash: hash,
		IsActive:     true,
	}

	query := `
		INSERT INTO users (email, name, password_hash, is_active, is_staff, is_superuser)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, created_at
	`
	err = s.db.QueryRow(ctx, query,
		user.Email, user.Name, user.PasswordHash, user.IsActive, user.IsStaff, user.IsSuperuser,
	).Scan(&user.ID, &user.CreatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation {
			return nil, apperror.NewValidationError(s.catalog.Text("user_email_exists"), nil)
		}
		return nil, apperror.NewDatabaseError("failed to create user", err)
	}

	s.log.Info(ctx, "user created", "user_id", user.ID)
	return user, nil
}

// CreateSuperuser creates a user and elevates the staff and superuser flags.
func (s *userService) CreateSuperuser(ctx context.Context, email, password string) (*User, error) {
	user, err := s.Create(ctx, email, password, "")
	if err != nil {
		return nil, err
	}

	query := `UPDATE users SET is_staff = TRUE, is_superuser = TRUE WHERE id = $1`
	if _, err := s.db.Exec(ctx, query, user.ID); err != nil {
		return nil, apperror.NewDatabaseError("failed to elevate superuser", err)
	}
	user.IsStaff = true
	user.IsSuperuser = true

	s.log.Info(ctx, "superuser created", "user_id", user.ID)
	return user, nil
}

// Authenticate looks up the user by normalized email and verifies the
// password. Unknown email, wrong password, and inactive accounts all return
// (nil, nil).
func (s *userService) Authenticate(ctx context.Context, email, password string) (*User, error) {
	user, err := s.getByEmail(ctx, credential.NormalizeEmail(email))
	if err != nil {
		if apperror.IsNotFound(err) {
			return nil, nil
		}
		return nil, err
	}

	if !credential.CheckPassword(password, user.PasswordHash) {
		return nil, nil
	}
	if !user.IsAuthenticated() {
		return nil, nil
	}
	return user, nil
}

// GetByID fetches a single user row.
func (s *userService) GetByID(ctx context.Context, userID int) (*User, error) {
	query := `
		SELECT id, email, name, password_hash, is_active, is_staff, is_superuser, created_at
		FROM users
		WHERE id = $1
	`
	return s.scanUser(s.db.QueryRow(ctx, query, userID), fmt.Sprintf("user with ID %d", userID))
}

func (s *userService) getByEmail(ctx context.Context, email string) (*User, error) {
	query := `
		SELECT id, email, name, password_hash, is_active, is_staff, is_superuser, created_at
		FROM users
		WHERE email = $1
	`
	return s.scanUser(s.db.QueryRow(ctx, query, email), fmt.Sprintf("user %s", email))
}

func (s *userService) scanUser(row pgx.Row, what string) (*User, error) {
	var user User
	err := row.Scan(
		&user.ID, &user.Email, &user.Name, &user.PasswordHash,
		&user.IsActive, &user.IsStaff, &user.IsSuperuser, &user.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperror.NewNotFoundError(s.catalog.Text("user_not_found"), nil)
		}
		return nil, apperror.NewDatabaseError(fmt.Sprintf("failed to load %s", what), err)
	}
	return &user, nil
}

// UpdateProfile applies a partial update to name and/or password. A supplied
// password is re-hashed; nil fields are untouched.
func (s *userService) UpdateProfile(ctx context.Context, userID int, req *UpdateProfileRequest) (*User, error) {
	var setClauses []string
	var args []any
	argID := 1

	if req.Name != nil {
		setClauses = append(setClauses, fmt.Sprintf("name = $%d", argID))
		args = append(args, *req.Name)
		argID++
	}
	if req.Password != nil {
		hash, err := credential.HashPassword(*req.Password)
		if err != nil {
			return nil, apperror.NewInternalError("failed to hash password", err)
		}
		setClauses = append(setClauses, fmt.Sprintf("password_hash = $%d", argID))
		args = append(args, hash)
		argID++
	}

	if len(setClauses) == 0 {
		return s.GetByID(ctx, userID)
	}

	args = append(args, userID)
	query := fmt.Sprintf(`
		UPDATE users
		SET %s
		WHERE id = $%d
		RETURNING id, email, name, password_hash, is_active, is_staff, is_superuser, created_at
	`, strings.Join(setClauses, ", "), argID)

	user, err := s.scanUser(s.db.QueryRow(ctx, query, args...), fmt.Sprintf("user with ID %d", userID))
	if err != nil {
		return nil, err
	}

	s.log.Info(ctx, "profile updated", "user_id", userID)
	return user, nil
}
