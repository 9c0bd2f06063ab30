package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/conceptlens/conceptlens-backend/internal/model"
)

// JoinRequestRepository handles class join-request data access.
type JoinRequestRepository struct {
	pool *pgxpool.Pool
}

// NewJoinRequestRepository creates a new JoinRequestRepository.
func NewJoinRequestRepository(pool *pgxpool.Pool) *JoinRequestRepository {
	return &JoinRequestRepository{pool: pool}
}

// Create inserts a pending join request.
func (r *JoinRequestRepository) Create(ctx context.Context, req *model.ClassJoinRequest) error {
	return r.pool.QueryRow(ctx,
		`INSERT INTO class_join_requests (class_id, student_id, student_name, status)
		 VALUES ($1, $2, $3, $4)
		 RETURNING id, requested_at`,
		req.ClassID, req.StudentID, req.StudentName, req.Status,
	).Scan(&req.ID, &req.RequestedAt)
}

// GetByID retrieves a join request.
func (r *JoinRequestRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.ClassJoinRequest, error) {
	req := &model.ClassJoinRequest{}
	err := r.pool.QueryRow(ctx,
		`SELECT id, class_id, student_id, student_name, status, requested_at
		 FROM class_join_requests WHERE id = $1`, id,
	).Scan(&req.ID, &req.ClassID, &req.StudentID, &req.StudentName, &req.Status, &req.RequestedAt)
	if err != nil {
		return nil, err
	}
	return req, nil
}

// HasPending reports whether a student already has a pending request for a
// class.
func (r *JoinRequestRepository) HasPending(ctx context.Context, classID, studentID uuid.UUID) (bool, error) {
	var exists bool
	err := r.pool.QueryRow(ctx,
		`SELECT EXISTS(
			SELECT 1 FROM class_join_requests
			WHERE class_id = $1 AND student_id = $2 AND status = $3)`,
		classID, studentID, model.JoinRequestPending).Scan(&exists)
	return exists, err
}

// ListPendingByClass retrieves a class's pending requests.
func (r *JoinRequestRepository) ListPendingByClass(ctx context.Context, classID uuid.UUID) ([]model.ClassJoinRequest, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT id, class_id, student_id, student_name, status, requested_at
		 FROM class_join_requests
		 WHERE class_id = $1 AND status = $2
		 ORDER BY requested_at`, classID, model.JoinRequestPending)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var reqs []model.ClassJoinRequest
	for rows.Next() {
		var req model.ClassJoinRequest
		if err := rows.Scan(&req.ID, &req.ClassID, &req.StudentID, &req.StudentName, &req.Status, &req.RequestedAt); err != nil {
			return nil, err
		}
		reqs = append(reqs, req)
	}
	return reqs, rows.Err()
}

// UpdateStatus transitions a join request's workflow state.
func (r *JoinRequestRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status model.JoinRequestStatus) error {
	tag, err := r.pool.Exec(ctx,
		`UPDATE class_join_requests SET status = $1 WHERE id = $2`, status, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return errNoRows
	}
	return nil
}
