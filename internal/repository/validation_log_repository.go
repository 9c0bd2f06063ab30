package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/conceptlens/conceptlens-backend/internal/model"
)

// ValidationLogRepository records professor review actions for audit.
type ValidationLogRepository struct {
	pool *pgxpool.Pool
}

// NewValidationLogRepository creates a new ValidationLogRepository.
func NewValidationLogRepository(pool *pgxpool.Pool) *ValidationLogRepository {
	return &ValidationLogRepository{pool: pool}
}

// Create appends one review action to the audit log.
func (r *ValidationLogRepository) Create(ctx context.Context, l *model.ValidationLog) error {
	return r.pool.QueryRow(ctx,
		`INSERT INTO validation_logs (misconception_id, teacher_id, action)
		 VALUES ($1, $2, $3)
		 RETURNING id, created_at`,
		l.MisconceptionID, l.TeacherID, l.Action,
	).Scan(&l.ID, &l.CreatedAt)
}
