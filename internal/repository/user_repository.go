package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/conceptlens/conceptlens-backend/internal/model"
)

// UserRepository handles account data access.
type UserRepository struct {
	pool *pgxpool.Pool
}

// NewUserRepository creates a new UserRepository.
func NewUserRepository(pool *pgxpool.Pool) *UserRepository {
	return &UserRepository{pool: pool}
}

// Create inserts a new user account.
func (r *UserRepository) Create(ctx context.Context, u *model.User) error {
	return r.pool.QueryRow(ctx,
		`INSERT INTO users (full_name, email, password_hash, role, institution_id)
		 VALUES ($1, $2, $3, $4, $5)
		 RETURNING id, created_at`,
		u.FullName, u.Email, u.PasswordHash, u.Role, u.InstitutionID,
	).Scan(&u.ID, &u.CreatedAt)
}

// GetByEmail retrieves a user by email.
func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*model.User, error) {
	u := &model.User{}
	err := r.pool.QueryRow(ctx,
		`SELECT id, full_name, email, password_hash, role, institution_id, created_at
		 FROM users WHERE email = $1`, email,
	).Scan(&u.ID, &u.FullName, &u.Email, &u.PasswordHash, &u.Role, &u.InstitutionID, &u.CreatedAt)
	if err != nil {
		return nil, err
	}
	return u, nil
}

// GetByID retrieves a user by id.
func (r *UserRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.User, error) {
	u := &model.User{}
	err := r.pool.QueryRow(ctx,
		`SELECT id, full_name, email, password_hash, role, institution_id, created_at
		 FROM users WHERE id = $1`, id,
	).Scan(&u.ID, &u.FullName, &u.Email, &u.PasswordHash, &u.Role, &u.InstitutionID, &u.CreatedAt)
	if err != nil {
		return nil, err
	}
	return u, nil
}

// ListByIDs retrieves users for an id set.
func (r *UserRepository) ListByIDs(ctx context.Context, ids []uuid.UUID) ([]model.User, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT id, full_name, email, password_hash, role, institution_id, created_at
		 FROM users WHERE id = ANY($1)`, ids)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var users []model.User
	for rows.Next() {
		var u model.User
		if err := rows.Scan(&u.ID, &u.FullName, &u.Email, &u.PasswordHash, &u.Role, &u.InstitutionID, &u.CreatedAt); err != nil {
			return nil, err
		}
		users = append(users, u)
	}
	return users, rows.Err()
}
