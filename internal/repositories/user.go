package repositories

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/campusprint/printqueue/internal/logger"
	"github.com/campusprint/printqueue/internal/models"
)

type UserReadRepository struct {
	db *sqlx.DB
}

func NewUserReadRepository(db *sqlx.DB) *UserReadRepository {
	return &UserReadRepository{db: db}
}

// GetByUsername returns the user with the given username, or nil when absent.
func (r *UserReadRepository) GetByUsername(ctx context.Context, username string) (*models.UserDB, error) {
	const query = `
		SELECT user_id, username, password_hash, name, phone, role, created_at, updated_at
		FROM users
		WHERE username = $1
	`

	var user models.UserDB
	err := r.db.GetContext(ctx, &user, query, username)

	logger.Log.Infow("user query",
		"query", strings.Join(strings.Fields(query), " "),
		"username", username,
		"error", err,
	)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// GetByID returns the user with the given id, or nil when absent.
func (r *UserReadRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.UserDB, error) {
	const query = `
		SELECT user_id, username, password_hash, name, phone, role, created_at, updated_at
		FROM users
		WHERE user_id = $1
	`

	var user models.UserDB
	err := r.db.GetContext(ctx, &user, query, id)

	logger.Log.Infow("user query",
		"query", strings.Join(strings.Fields(query), " "),
		"user_id", id,
		"error", err,
	)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

type UserWriteRepository struct {
	db *sqlx.DB
}

func NewUserWriteRepository(db *sqlx.DB) *UserWriteRepository {
	return &UserWriteRepository{db: db}
}

// Create inserts a new user and returns the stored record.
func (r *UserWriteRepository) Create(ctx context.Context, username, passwordHash, name string, phone *string, role string) (*models.UserDB, error) {
	const query = `
		INSERT INTO users (user_id, username, password_hash, name, phone, role, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, NOW(), NOW())
		RETURNING user_id, username, password_hash, name, phone, role, created_at, updated_at
	`

	var user models.UserDB
	err := r.db.GetContext(ctx, &user, query, uuid.New(), username, passwordHash, name, phone, role)

	logger.Log.Infow("user insert",
		"query", strings.Join(strings.Fields(query), " "),
		"username", username,
		"role", role,
		"error", err,
	)

	if err != nil {
		return nil, err
	}
	return &user, nil
}

// Update applies the non-nil fields of upd to the user and returns the
// updated record, or nil when the id is absent.
func (r *UserWriteRepository) Update(ctx context.Context, id uuid.UUID, upd models.UserUpdate) (*models.UserDB, error) {
	const query = `
		UPDATE users
		SET name = COALESCE($2, name),
		    phone = COALESCE($3, phone),
		    password_hash = COALESCE($4, password_hash),
		    updated_at = NOW()
		WHERE user_id = $1
		RETURNING user_id, username, password_hash, name, phone, role, created_at, updated_at
	`

	var user models.UserDB
	err := r.db.GetContext(ctx, &user, query, id, upd.Name, upd.Phone, upd.PasswordHash)

	logger.Log.Infow("user update",
		"query", strings.Join(strings.Fields(query), " "),
		"user_id", id,
		"error", err,
	)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}
