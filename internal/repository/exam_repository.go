package repository

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/conceptlens/conceptlens-backend/internal/model"
)

// MaxExamRows caps exam listing queries. Collections beyond the cap are
// truncated, not paginated.
const MaxExamRows = 100

// ExamRepository handles exam and embedded-question data access.
type ExamRepository struct {
	pool *pgxpool.Pool
}

// NewExamRepository creates a new ExamRepository.
func NewExamRepository(pool *pgxpool.Pool) *ExamRepository {
	return &ExamRepository{pool: pool}
}

const examColumns = `id, professor_id, subject_id, title, is_validated, class_ids, created_at`

func scanExam(row interface{ Scan(...any) error }) (model.Exam, error) {
	var e model.Exam
	err := row.Scan(&e.ID, &e.ProfessorID, &e.SubjectID, &e.Title, &e.IsValidated, &e.ClassIDs, &e.CreatedAt)
	return e, err
}

// Create inserts a new exam together with its questions.
func (r *ExamRepository) Create(ctx context.Context, e *model.Exam) error {
	if e.ClassIDs == nil {
		e.ClassIDs = []uuid.UUID{}
	}
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	defer tx.Rollback(ctx)

	err = tx.QueryRow(ctx,
		`INSERT INTO exams (professor_id, subject_id, title, is_validated, class_ids)
		 VALUES ($1, $2, $3, $4, $5)
		 RETURNING id, created_at`,
		e.ProfessorID, e.SubjectID, e.Title, e.IsValidated, e.ClassIDs,
	).Scan(&e.ID, &e.CreatedAt)
	if err != nil {
		return fmt.Errorf("insert exam: %w", err)
	}

	for i := range e.Questions {
		q := &e.Questions[i]
		q.ExamID = e.ID
		if q.TopicID == "" {
			q.TopicID = model.DefaultTopicID
		}
		err = tx.QueryRow(ctx,
			`INSERT INTO questions (exam_id, text, options, correct_option, topic_id, order_num)
			 VALUES ($1, $2, $3, $4, $5, $6)
			 RETURNING id`,
			q.ExamID, q.Text, q.Options, q.CorrectOption, q.TopicID, q.OrderNum,
		).Scan(&q.ID)
		if err != nil {
			return fmt.Errorf("insert question: %w", err)
		}
	}

	return tx.Commit(ctx)
}

// Replace updates an exam's fields and swaps its question set.
func (r *ExamRepository) Replace(ctx context.Context, e *model.Exam) error {
	if e.ClassIDs == nil {
		e.ClassIDs = []uuid.UUID{}
	}
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx,
		`UPDATE exams SET subject_id = $1, title = $2, class_ids = $3 WHERE id = $4`,
		e.SubjectID, e.Title, e.ClassIDs, e.ID,
	); err != nil {
		return fmt.Errorf("update exam: %w", err)
	}

	if _, err := tx.Exec(ctx, `DELETE FROM questions WHERE exam_id = $1`, e.ID); err != nil {
		return fmt.Errorf("delete questions: %w", err)
	}

	for i := range e.Questions {
		q := &e.Questions[i]
		q.ExamID = e.ID
		if q.TopicID == "" {
			q.TopicID = model.DefaultTopicID
		}
		err = tx.QueryRow(ctx,
			`INSERT INTO questions (exam_id, text, options, correct_option, topic_id, order_num)
			 VALUES ($1, $2, $3, $4, $5, $6)
			 RETURNING id`,
			q.ExamID, q.Text, q.Options, q.CorrectOption, q.TopicID, q.OrderNum,
		).Scan(&q.ID)
		if err != nil {
			return fmt.Errorf("insert question: %w", err)
		}
	}

	return tx.Commit(ctx)
}

// GetByID retrieves an exam with its questions.
func (r *ExamRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Exam, error) {
	e, err := scanExam(r.pool.QueryRow(ctx,
		`SELECT `+examColumns+` FROM exams WHERE id = $1`, id))
	if err != nil {
		return nil, err
	}

	exams := []model.Exam{e}
	if err := r.loadQuestions(ctx, exams); err != nil {
		return nil, err
	}
	return &exams[0], nil
}

// ListByProfessor retrieves a professor's exams with questions loaded.
// Chronological ascending order is the x-axis of the trend matrix; listings
// use descending order.
func (r *ExamRepository) ListByProfessor(ctx context.Context, professorID uuid.UUID, ascending bool) ([]model.Exam, error) {
	order := "DESC"
	if ascending {
		order = "ASC"
	}
	rows, err := r.pool.Query(ctx,
		`SELECT `+examColumns+` FROM exams
		 WHERE professor_id = $1
		 ORDER BY created_at `+order+`
		 LIMIT $2`, professorID, MaxExamRows)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var exams []model.Exam
	for rows.Next() {
		e, err := scanExam(rows)
		if err != nil {
			return nil, err
		}
		exams = append(exams, e)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	if err := r.loadQuestions(ctx, exams); err != nil {
		return nil, err
	}
	return exams, nil
}

// ListValidatedForClasses retrieves validated exams visible to a student
// enrolled in the given classes, newest first.
func (r *ExamRepository) ListValidatedForClasses(ctx context.Context, classIDs []uuid.UUID) ([]model.Exam, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT `+examColumns+` FROM exams
		 WHERE is_validated AND class_ids && $1
		 ORDER BY created_at DESC
		 LIMIT $2`, classIDs, MaxExamRows)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var exams []model.Exam
	for rows.Next() {
		e, err := scanExam(rows)
		if err != nil {
			return nil, err
		}
		exams = append(exams, e)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	if err := r.loadQuestions(ctx, exams); err != nil {
		return nil, err
	}
	return exams, nil
}

// SetValidated toggles an exam's validation flag.
func (r *ExamRepository) SetValidated(ctx context.Context, id uuid.UUID, validated bool) error {
	tag, err := r.pool.Exec(ctx,
		`UPDATE exams SET is_validated = $1 WHERE id = $2`, validated, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return errNoRows
	}
	return nil
}

// Delete removes an exam. Questions cascade at the schema level.
func (r *ExamRepository) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM exams WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return errNoRows
	}
	return nil
}

// loadQuestions attaches question rows to the given exams in one query.
func (r *ExamRepository) loadQuestions(ctx context.Context, exams []model.Exam) error {
	if len(exams) == 0 {
		return nil
	}

	ids := make([]uuid.UUID, 0, len(exams))
	index := make(map[uuid.UUID]*model.Exam, len(exams))
	for i := range exams {
		ids = append(ids, exams[i].ID)
		index[exams[i].ID] = &exams[i]
	}

	rows, err := r.pool.Query(ctx,
		`SELECT id, exam_id, text, options, correct_option, topic_id, order_num
		 FROM questions WHERE exam_id = ANY($1)
		 ORDER BY order_num`, ids)
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var q model.Question
		if err := rows.Scan(&q.ID, &q.ExamID, &q.Text, &q.Options, &q.CorrectOption, &q.TopicID, &q.OrderNum); err != nil {
			return err
		}
		if e, ok := index[q.ExamID]; ok {
			e.Questions = append(e.Questions, q)
		}
	}
	return rows.Err()
}
