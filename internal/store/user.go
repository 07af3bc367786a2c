package store

import (
	"context"
	"fmt"
	"strings"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"penblog/internal/models"
)

// UserStore handles all user-related database operations.
type UserStore struct {
	db *DB
}

// NewUserStore creates a new UserStore with the given database handle.
func NewUserStore(db *DB) *UserStore {
	return &UserStore{db: db}
}

var userColumns = []string{"id", "email", "password_hash", "display_name", "created_at", "updated_at"}

// FindByEmail retrieves a user by email address, ignoring case. Returns nil
// if not found.
func (s *UserStore) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	return s.findOne(ctx, "find user by email", sq.Expr("LOWER(email) = ?", strings.ToLower(email)))
}

// FindByID retrieves a user by their UUID. Returns nil if not found.
func (s *UserStore) FindByID(ctx context.Context, id uuid.UUID) (*models.User, error) {
	return s.findOne(ctx, "find user by id", sq.Eq{"id": id.String()})
}

func (s *UserStore) findOne(ctx context.Context, op string, where sq.Sqlizer) (*models.User, error) {
	var u models.User
	found, err := get(ctx, s.db.x, &u, s.db.sb.Select(userColumns...).From("users").Where(where))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if !found {
		return nil, nil
	}
	return &u, nil
}

// Create inserts a new user with a bcrypt-hashed password. An email that is
// already registered yields models.ErrConflict.
func (s *UserStore) Create(ctx context.Context, email, password, displayName string) (*models.User, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	u := &models.User{
		ID:           uuid.New(),
		Email:        strings.TrimSpace(email),
		PasswordHash: string(hash),
		Name:         strings.TrimSpace(displayName),
		CreatedAt:    now(),
	}
	u.UpdatedAt = u.CreatedAt

	_, err = exec(ctx, s.db.x, s.db.sb.Insert("users").
		Columns(userColumns...).
		Values(u.ID.String(), u.Email, u.PasswordHash, u.Name, u.CreatedAt, u.UpdatedAt))
	if isUniqueViolation(err) {
		return nil, fmt.Errorf("create user: %w", models.ErrConflict)
	}
	if err != nil {
		return nil, fmt.Errorf("create user: %w", err)
	}
	return u, nil
}

// CheckPassword verifies a plaintext password against the user's stored hash.
func (s *UserStore) CheckPassword(user *models.User, password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) == nil
}
