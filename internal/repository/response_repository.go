package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/conceptlens/conceptlens-backend/internal/model"
)

// Result-size caps for response queries. Larger collections are silently
// truncated, not paginated.
const (
	MaxResponsesPerExam = 10000
	MaxEvidenceRows     = 1000
)

// ResponseRepository handles student response data access.
type ResponseRepository struct {
	pool *pgxpool.Pool
}

// NewResponseRepository creates a new ResponseRepository.
func NewResponseRepository(pool *pgxpool.Pool) *ResponseRepository {
	return &ResponseRepository{pool: pool}
}

// BulkInsert stores a batch of graded responses in one round trip.
func (r *ResponseRepository) BulkInsert(ctx context.Context, responses []model.StudentResponse) error {
	if len(responses) == 0 {
		return nil
	}
	_, err := r.pool.CopyFrom(ctx,
		pgx.Identifier{"student_responses"},
		[]string{"assessment_id", "student_id", "question_id", "response_text", "is_correct"},
		pgx.CopyFromSlice(len(responses), func(i int) ([]any, error) {
			resp := responses[i]
			return []any{resp.AssessmentID, resp.StudentID, resp.QuestionID, resp.ResponseText, resp.IsCorrect}, nil
		}),
	)
	return err
}

// ListByAssessment retrieves all responses to one exam.
func (r *ResponseRepository) ListByAssessment(ctx context.Context, assessmentID uuid.UUID) ([]model.StudentResponse, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT id, assessment_id, student_id, question_id, response_text, is_correct, submitted_at
		 FROM student_responses WHERE assessment_id = $1
		 LIMIT $2`, assessmentID, MaxResponsesPerExam)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectResponses(rows)
}

// TextByIDs resolves evidence snippets: response id (canonical string) to
// response text, for the given id set.
func (r *ResponseRepository) TextByIDs(ctx context.Context, ids []uuid.UUID) (map[string]string, error) {
	texts := make(map[string]string, len(ids))
	if len(ids) == 0 {
		return texts, nil
	}

	rows, err := r.pool.Query(ctx,
		`SELECT id, response_text FROM student_responses
		 WHERE id = ANY($1) LIMIT $2`, ids, MaxEvidenceRows)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var id uuid.UUID
		var text string
		if err := rows.Scan(&id, &text); err != nil {
			return nil, err
		}
		texts[id.String()] = text
	}
	return texts, rows.Err()
}

// CountDistinctStudents aggregates the distinct submitting-student count per
// exam for the given exam set in one grouped query.
func (r *ResponseRepository) CountDistinctStudents(ctx context.Context, assessmentIDs []uuid.UUID) (map[uuid.UUID]int, error) {
	counts := make(map[uuid.UUID]int, len(assessmentIDs))
	if len(assessmentIDs) == 0 {
		return counts, nil
	}

	rows, err := r.pool.Query(ctx,
		`SELECT assessment_id, COUNT(DISTINCT student_id)
		 FROM student_responses
		 WHERE assessment_id = ANY($1)
		 GROUP BY assessment_id`, assessmentIDs)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var id uuid.UUID
		var n int
		if err := rows.Scan(&id, &n); err != nil {
			return nil, err
		}
		counts[id] = n
	}
	return counts, rows.Err()
}

// AttemptedAssessments returns the subset of the given exams that the
// student has submitted at least one response to.
func (r *ResponseRepository) AttemptedAssessments(ctx context.Context, studentID uuid.UUID, assessmentIDs []uuid.UUID) (map[uuid.UUID]bool, error) {
	attempted := make(map[uuid.UUID]bool)
	if len(assessmentIDs) == 0 {
		return attempted, nil
	}

	rows, err := r.pool.Query(ctx,
		`SELECT DISTINCT assessment_id FROM student_responses
		 WHERE student_id = $1 AND assessment_id = ANY($2)`, studentID, assessmentIDs)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var id uuid.UUID
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		attempted[id] = true
	}
	return attempted, rows.Err()
}

// DistinctStudentIDs returns the distinct students who responded to an exam.
func (r *ResponseRepository) DistinctStudentIDs(ctx context.Context, assessmentID uuid.UUID) ([]uuid.UUID, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT DISTINCT student_id FROM student_responses WHERE assessment_id = $1`,
		assessmentID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var ids []uuid.UUID
	for rows.Next() {
		var id uuid.UUID
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

// CountAll returns the total number of stored responses.
func (r *ResponseRepository) CountAll(ctx context.Context) (int, error) {
	var n int
	err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM student_responses`).Scan(&n)
	return n, err
}

func collectResponses(rows pgx.Rows) ([]model.StudentResponse, error) {
	var responses []model.StudentResponse
	for rows.Next() {
		var resp model.StudentResponse
		if err := rows.Scan(&resp.ID, &resp.AssessmentID, &resp.StudentID, &resp.QuestionID,
			&resp.ResponseText, &resp.IsCorrect, &resp.SubmittedAt); err != nil {
			return nil, err
		}
		responses = append(responses, resp)
	}
	return responses, rows.Err()
}
