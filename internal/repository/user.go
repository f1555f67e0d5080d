package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/laramoda/storefront-api/internal/model"
)

type UserRepository interface {
	Upsert(ctx context.Context, user *model.User) error
	GetByID(ctx context.Context, id uuid.UUID) (*model.User, error)
}

type pgUserRepo struct{ pool *pgxpool.Pool }

func NewUserRepository(pool *pgxpool.Pool) UserRepository {
	return &pgUserRepo{pool: pool}
}

// Upsert inserts the user or refreshes the profile fields of an existing one.
func (r *pgUserRepo) Upsert(ctx context.Context, user *model.User) error {
	query := `INSERT INTO users (id, email, first_name, last_name, profile_image_url, role, created_at, updated_at)
			  VALUES ($1, NULLIF($2, ''), $3, $4, $5, $6, NOW(), NOW())
			  ON CONFLICT (id) DO UPDATE SET
			      email = EXCLUDED.email,
			      first_name = EXCLUDED.first_name,
			      last_name = EXCLUDED.last_name,
			      profile_image_url = EXCLUDED.profile_image_url,
			      role = EXCLUDED.role,
			      updated_at = NOW()
			  RETURNING created_at, updated_at`
	err := r.pool.QueryRow(ctx, query,
		user.ID, user.Email, user.FirstName, user.LastName, user.ProfileImageURL, user.Role,
	).Scan(&user.CreatedAt, &user.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: email %s already in use", ErrDuplicate, user.Email)
		}
		return fmt.Errorf("upsert user: %w", err)
	}
	return nil
}

func (r *pgUserRepo) GetByID(ctx context.Context, id uuid.UUID) (*model.User, error) {
	query := `SELECT id, COALESCE(email, ''), first_name, last_name, profile_image_url, role, created_at, updated_at
			  FROM users WHERE id = $1`
	user := &model.User{}
	err := r.pool.QueryRow(ctx, query, id).Scan(
		&user.ID, &user.Email, &user.FirstName, &user.LastName, &user.ProfileImageURL,
		&user.Role, &user.CreatedAt, &user.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get user by id: %w", err)
	}
	return user, nil
}
