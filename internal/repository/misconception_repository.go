package repository

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/conceptlens/conceptlens-backend/internal/model"
)

// MaxMisconceptionRows caps misconception listing queries.
const MaxMisconceptionRows = 1000

// MisconceptionRepository handles detected-cluster data access.
type MisconceptionRepository struct {
	pool *pgxpool.Pool
}

// NewMisconceptionRepository creates a new MisconceptionRepository.
func NewMisconceptionRepository(pool *pgxpool.Pool) *MisconceptionRepository {
	return &MisconceptionRepository{pool: pool}
}

const misconceptionColumns = `m.id, m.assessment_id, m.question_id, m.cluster_label,
	m.student_count, m.confidence_score, m.status, m.example_ids, m.last_updated`

func collectMisconceptions(rows pgx.Rows) ([]model.Misconception, error) {
	var out []model.Misconception
	for rows.Next() {
		var m model.Misconception
		if err := rows.Scan(&m.ID, &m.AssessmentID, &m.QuestionID, &m.ClusterLabel,
			&m.StudentCount, &m.ConfidenceScore, &m.Status, &m.ExampleIDs, &m.LastUpdated); err != nil {
			return nil, err
		}
		out = append(out, m)
	}
	return out, rows.Err()
}

// Insert stores one detected cluster. Used by ingestion tooling and tests;
// the API surface itself never creates clusters.
func (r *MisconceptionRepository) Insert(ctx context.Context, m *model.Misconception) error {
	if m.ExampleIDs == nil {
		m.ExampleIDs = []uuid.UUID{}
	}
	return r.pool.QueryRow(ctx,
		`INSERT INTO misconceptions (assessment_id, question_id, cluster_label, student_count, confidence_score, status, example_ids)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)
		 RETURNING id`,
		m.AssessmentID, m.QuestionID, m.ClusterLabel, m.StudentCount, m.ConfidenceScore, m.Status, m.ExampleIDs,
	).Scan(&m.ID)
}

// ListOwned retrieves misconceptions belonging to exams owned by the given
// professor, optionally filtered by status. The ownership restriction is
// applied at the query level so unrelated clusters never reach application
// memory. Pass an empty status to skip the status filter.
func (r *MisconceptionRepository) ListOwned(ctx context.Context, professorID uuid.UUID, status model.MisconceptionStatus) ([]model.Misconception, error) {
	query := `SELECT ` + misconceptionColumns + `
		 FROM misconceptions m
		 JOIN exams e ON e.id = m.assessment_id
		 WHERE e.professor_id = $1`
	args := []any{professorID}

	if status != "" {
		query += ` AND m.status = $2`
		args = append(args, status)
	}
	query += fmt.Sprintf(` ORDER BY m.student_count DESC LIMIT $%d`, len(args)+1)
	args = append(args, MaxMisconceptionRows)

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectMisconceptions(rows)
}

// ListByStatus retrieves misconceptions in a review state across all exams.
func (r *MisconceptionRepository) ListByStatus(ctx context.Context, status model.MisconceptionStatus) ([]model.Misconception, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT `+misconceptionColumns+`
		 FROM misconceptions m
		 WHERE m.status = $1
		 ORDER BY m.student_count DESC
		 LIMIT $2`, status, MaxMisconceptionRows)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectMisconceptions(rows)
}

// GetByID retrieves one misconception.
func (r *MisconceptionRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Misconception, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT `+misconceptionColumns+` FROM misconceptions m WHERE m.id = $1`, id)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	list, err := collectMisconceptions(rows)
	if err != nil {
		return nil, err
	}
	if len(list) == 0 {
		return nil, pgx.ErrNoRows
	}
	return &list[0], nil
}

// UpdateStatus transitions one misconception's review state. A single
// conditional write keyed by id; concurrent updates are last-write-wins.
func (r *MisconceptionRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status model.MisconceptionStatus) error {
	tag, err := r.pool.Exec(ctx,
		`UPDATE misconceptions SET status = $1, last_updated = NOW() WHERE id = $2`,
		status, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return errNoRows
	}
	return nil
}

// UpdateStatusAndLabel transitions the review state and renames the cluster
// in one write.
func (r *MisconceptionRepository) UpdateStatusAndLabel(ctx context.Context, id uuid.UUID, status model.MisconceptionStatus, label string) error {
	tag, err := r.pool.Exec(ctx,
		`UPDATE misconceptions SET status = $1, cluster_label = $2, last_updated = NOW() WHERE id = $3`,
		status, label, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return errNoRows
	}
	return nil
}

// CountByStatus returns the number of misconceptions in a review state.
func (r *MisconceptionRepository) CountByStatus(ctx context.Context, status model.MisconceptionStatus) (int, error) {
	var n int
	err := r.pool.QueryRow(ctx,
		`SELECT COUNT(*) FROM misconceptions WHERE status = $1`, status).Scan(&n)
	return n, err
}
