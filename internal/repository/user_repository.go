package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/lib/pq"

	"taskflow-be/internal/entities"
)

const uniqueViolation = "23505"

// UserRepository defines the interface for user database operations
type UserRepository interface {
	Create(ctx context.Context, email, passwordHash, fullName string) (*entities.User, error)
	FindByEmail(ctx context.Context, email string) (*entities.User, error)
	FindByID(ctx context.Context, id int64) (*entities.User, error)
	Update(ctx context.Context, id int64, changes Fields) (*entities.User, error)
}

type userRepository struct {
	db      *sql.DB
	timeout time.Duration
}

// NewUserRepository creates a new user repository
func NewUserRepository(db *sql.DB, timeout time.Duration) UserRepository {
	return &userRepository{db: db, timeout: timeout}
}

const userColumns = "id, email, password_hash, full_name, created_at, updated_at"

func scanUser(row RowScanner) (*entities.User, error) {
	var user entities.User
	err := row.Scan(
		&user.ID,
		&user.Email,
		&user.PasswordHash,
		&user.FullName,
		&user.CreatedAt,
		&user.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func isUniqueViolation(err error) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && string(pqErr.Code) == uniqueViolation
}

// Create inserts a new user. A duplicate email surfaces as ErrDuplicateEmail,
// detected from the unique constraint rather than a separate lookup.
func (r *userRepository) Create(ctx context.Context, email, passwordHash, fullName string) (*entities.User, error) {
	query := fmt.Sprintf(`
		INSERT INTO users (email, password_hash, full_name)
		VALUES ($1, $2, $3)
		RETURNING %s
	`, userColumns)

	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	user, err := scanUser(r.db.QueryRowContext(ctx, query, email, passwordHash, fullName))
	if isUniqueViolation(err) {
		return nil, ErrDuplicateEmail
	}
	if err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}
	return user, nil
}

// FindByEmail finds a user by email
func (r *userRepository) FindByEmail(ctx context.Context, email string) (*entities.User, error) {
	query := fmt.Sprintf("SELECT %s FROM users WHERE email = $1", userColumns)

	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	user, err := scanUser(r.db.QueryRowContext(ctx, query, email))
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find user: %w", err)
	}
	return user, nil
}

// FindByID finds a user by ID
func (r *userRepository) FindByID(ctx context.Context, id int64) (*entities.User, error) {
	query := fmt.Sprintf("SELECT %s FROM users WHERE id = $1", userColumns)

	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	user, err := scanUser(r.db.QueryRowContext(ctx, query, id))
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find user: %w", err)
	}
	return user, nil
}

// Update applies a partial profile update. An empty change set returns the
// current row without writing.
func (r *userRepository) Update(ctx context.Context, id int64, changes Fields) (*entities.User, error) {
	if len(changes) == 0 {
		return r.FindByID(ctx, id)
	}

	assignments := make([]string, 0, len(changes)+1)
	args := make([]interface{}, 0, len(changes)+1)
	for _, f := range changes {
		args = append(args, f.Value)
		assignments = append(assignments, fmt.Sprintf("%s = $%d", f.Column, len(args)))
	}
	assignments = append(assignments, "updated_at = NOW()")
	args = append(args, id)

	query := fmt.Sprintf(
		"UPDATE users SET %s WHERE id = $%d RETURNING %s",
		strings.Join(assignments, ", "), len(args), userColumns,
	)

	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	user, err := scanUser(r.db.QueryRowContext(ctx, query, args...))
	if isUniqueViolation(err) {
		return nil, ErrDuplicateEmail
	}
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to update user: %w", err)
	}
	return user, nil
}
