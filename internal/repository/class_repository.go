package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/conceptlens/conceptlens-backend/internal/model"
)

// ClassRepository handles class and enrollment data access.
type ClassRepository struct {
	pool *pgxpool.Pool
}

// NewClassRepository creates a new ClassRepository.
func NewClassRepository(pool *pgxpool.Pool) *ClassRepository {
	return &ClassRepository{pool: pool}
}

const classColumns = `id, name, subject_id, institution_id, professor_id, class_code, created_at`

// Create inserts a new class.
func (r *ClassRepository) Create(ctx context.Context, c *model.Class) error {
	return r.pool.QueryRow(ctx,
		`INSERT INTO classes (name, subject_id, institution_id, professor_id, class_code)
		 VALUES ($1, $2, $3, $4, $5)
		 RETURNING id, created_at`,
		c.Name, c.SubjectID, c.InstitutionID, c.ProfessorID, c.ClassCode,
	).Scan(&c.ID, &c.CreatedAt)
}

// GetByID retrieves a class by id.
func (r *ClassRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Class, error) {
	c := &model.Class{}
	err := r.pool.QueryRow(ctx,
		`SELECT `+classColumns+` FROM classes WHERE id = $1`, id,
	).Scan(&c.ID, &c.Name, &c.SubjectID, &c.InstitutionID, &c.ProfessorID, &c.ClassCode, &c.CreatedAt)
	if err != nil {
		return nil, err
	}
	return c, nil
}

// GetByCode retrieves a class by its join code.
func (r *ClassRepository) GetByCode(ctx context.Context, code string) (*model.Class, error) {
	c := &model.Class{}
	err := r.pool.QueryRow(ctx,
		`SELECT `+classColumns+` FROM classes WHERE class_code = $1`, code,
	).Scan(&c.ID, &c.Name, &c.SubjectID, &c.InstitutionID, &c.ProfessorID, &c.ClassCode, &c.CreatedAt)
	if err != nil {
		return nil, err
	}
	return c, nil
}

// CodeExists reports whether a join code is already taken.
func (r *ClassRepository) CodeExists(ctx context.Context, code string) (bool, error) {
	var exists bool
	err := r.pool.QueryRow(ctx,
		`SELECT EXISTS(SELECT 1 FROM classes WHERE class_code = $1)`, code).Scan(&exists)
	return exists, err
}

// ListByProfessor retrieves a professor's classes.
func (r *ClassRepository) ListByProfessor(ctx context.Context, professorID uuid.UUID) ([]model.Class, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT `+classColumns+` FROM classes
		 WHERE professor_id = $1 ORDER BY created_at DESC`, professorID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var classes []model.Class
	for rows.Next() {
		var c model.Class
		if err := rows.Scan(&c.ID, &c.Name, &c.SubjectID, &c.InstitutionID, &c.ProfessorID, &c.ClassCode, &c.CreatedAt); err != nil {
			return nil, err
		}
		classes = append(classes, c)
	}
	return classes, rows.Err()
}

// ListByStudent retrieves the classes a student is enrolled in.
func (r *ClassRepository) ListByStudent(ctx context.Context, studentID uuid.UUID) ([]model.Class, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT c.id, c.name, c.subject_id, c.institution_id, c.professor_id, c.class_code, c.created_at
		 FROM classes c
		 JOIN class_students cs ON cs.class_id = c.id
		 WHERE cs.student_id = $1
		 ORDER BY c.created_at DESC`, studentID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var classes []model.Class
	for rows.Next() {
		var c model.Class
		if err := rows.Scan(&c.ID, &c.Name, &c.SubjectID, &c.InstitutionID, &c.ProfessorID, &c.ClassCode, &c.CreatedAt); err != nil {
			return nil, err
		}
		classes = append(classes, c)
	}
	return classes, rows.Err()
}

// EnrolledClassIDs returns the ids of the classes a student belongs to.
func (r *ClassRepository) EnrolledClassIDs(ctx context.Context, studentID uuid.UUID) ([]uuid.UUID, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT class_id FROM class_students WHERE student_id = $1`, studentID)
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

// IsEnrolled reports whether a student is enrolled in a class.
func (r *ClassRepository) IsEnrolled(ctx context.Context, classID, studentID uuid.UUID) (bool, error) {
	var exists bool
	err := r.pool.QueryRow(ctx,
		`SELECT EXISTS(SELECT 1 FROM class_students WHERE class_id = $1 AND student_id = $2)`,
		classID, studentID).Scan(&exists)
	return exists, err
}

// AddStudent enrolls a student in a class. Idempotent.
func (r *ClassRepository) AddStudent(ctx context.Context, classID, studentID uuid.UUID) error {
	_, err := r.pool.Exec(ctx,
		`INSERT INTO class_students (class_id, student_id)
		 VALUES ($1, $2) ON CONFLICT DO NOTHING`, classID, studentID)
	return err
}

// ListStudents retrieves a class roster with account details.
func (r *ClassRepository) ListStudents(ctx context.Context, classID uuid.UUID) ([]model.ClassStudent, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT u.id, u.full_name, u.email, cs.joined_at
		 FROM class_students cs
		 JOIN users u ON u.id = cs.student_id
		 WHERE cs.class_id = $1
		 ORDER BY cs.joined_at`, classID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var students []model.ClassStudent
	for rows.Next() {
		var s model.ClassStudent
		if err := rows.Scan(&s.ID, &s.FullName, &s.Email, &s.JoinedAt); err != nil {
			return nil, err
		}
		students = append(students, s)
	}
	return students, rows.Err()
}

// Delete removes a class. Enrollments and join requests cascade at the
// schema level.
func (r *ClassRepository) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM classes WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return errNoRows
	}
	return nil
}
