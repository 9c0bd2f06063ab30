package service

import (
	"context"
	"errors"
	"fmt"
	"math"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/conceptlens/conceptlens-backend/internal/model"
	"github.com/conceptlens/conceptlens-backend/internal/repository"
)

// AttemptedStatus marks a student who submitted at least one response.
const AttemptedStatus = "completed"

// SubmissionResult is the immediate grading feedback after an exam
// submission.
type SubmissionResult struct {
	Total   int     `json:"total"`
	Correct int     `json:"correct"`
	Score   float64 `json:"score"`
}

// ExamService handles exam lifecycle, student visibility, and submission
// grading.
type ExamService struct {
	examRepo     *repository.ExamRepository
	responseRepo *repository.ResponseRepository
	classRepo    *repository.ClassRepository
	userRepo     *repository.UserRepository
	logger       zerolog.Logger
}

// NewExamService creates a new ExamService.
func NewExamService(
	examRepo *repository.ExamRepository,
	responseRepo *repository.ResponseRepository,
	classRepo *repository.ClassRepository,
	userRepo *repository.UserRepository,
) *ExamService {
	return &ExamService{
		examRepo:     examRepo,
		responseRepo: responseRepo,
		classRepo:    classRepo,
		userRepo:     userRepo,
		logger:       log.With().Str("component", "exam_service").Logger(),
	}
}

func buildQuestions(reqs []model.CreateQuestionRequest) []model.Question {
	questions := make([]model.Question, 0, len(reqs))
	for i, q := range reqs {
		orderNum := q.OrderNum
		if orderNum == 0 {
			orderNum = i
		}
		questions = append(questions, model.Question{
			Text:          q.Text,
			Options:       q.Options,
			CorrectOption: q.CorrectOption,
			TopicID:       q.TopicID,
			OrderNum:      orderNum,
		})
	}
	return questions
}

// Create stores a new exam. Exams start unvalidated and invisible to
// students.
func (s *ExamService) Create(ctx context.Context, professorID uuid.UUID, req model.CreateExamRequest) (*model.Exam, error) {
	exam := &model.Exam{
		ProfessorID: professorID,
		SubjectID:   req.SubjectID,
		Title:       req.Title,
		ClassIDs:    req.ClassIDs,
		Questions:   buildQuestions(req.Questions),
	}
	if err := s.examRepo.Create(ctx, exam); err != nil {
		return nil, fmt.Errorf("create exam: %w", err)
	}
	return exam, nil
}

// GetOwned retrieves an exam the professor owns.
func (s *ExamService) GetOwned(ctx context.Context, examID, professorID uuid.UUID) (*model.Exam, error) {
	exam, err := s.examRepo.GetByID(ctx, examID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if exam.ProfessorID != professorID {
		return nil, ErrAccessDenied
	}
	return exam, nil
}

// Update replaces an owned exam's fields and question set.
func (s *ExamService) Update(ctx context.Context, examID, professorID uuid.UUID, req model.CreateExamRequest) (*model.Exam, error) {
	exam, err := s.GetOwned(ctx, examID, professorID)
	if err != nil {
		return nil, err
	}

	exam.SubjectID = req.SubjectID
	exam.Title = req.Title
	exam.ClassIDs = req.ClassIDs
	exam.Questions = buildQuestions(req.Questions)
	if err := s.examRepo.Replace(ctx, exam); err != nil {
		return nil, fmt.Errorf("replace exam: %w", err)
	}
	return exam, nil
}

// Delete removes an owned exam.
func (s *ExamService) Delete(ctx context.Context, examID, professorID uuid.UUID) error {
	if _, err := s.GetOwned(ctx, examID, professorID); err != nil {
		return err
	}
	return s.examRepo.Delete(ctx, examID)
}

// SetValidated toggles an owned exam's validation flag. Only validated exams
// are visible to enrolled students.
func (s *ExamService) SetValidated(ctx context.Context, examID, professorID uuid.UUID, validated bool) error {
	if _, err := s.GetOwned(ctx, examID, professorID); err != nil {
		return err
	}
	return s.examRepo.SetValidated(ctx, examID, validated)
}

// ListForProfessor retrieves a professor's exams, newest first.
func (s *ExamService) ListForProfessor(ctx context.Context, professorID uuid.UUID) ([]model.Exam, error) {
	return s.examRepo.ListByProfessor(ctx, professorID, false)
}

// ListForStudent retrieves the validated exams assigned to the student's
// classes, each flagged with whether the student already attempted it.
func (s *ExamService) ListForStudent(ctx context.Context, studentID uuid.UUID) ([]model.Exam, error) {
	classIDs, err := s.classRepo.EnrolledClassIDs(ctx, studentID)
	if err != nil {
		return nil, err
	}
	if len(classIDs) == 0 {
		return nil, nil
	}

	exams, err := s.examRepo.ListValidatedForClasses(ctx, classIDs)
	if err != nil {
		return nil, err
	}

	examIDs := make([]uuid.UUID, 0, len(exams))
	for _, e := range exams {
		examIDs = append(examIDs, e.ID)
	}
	attempted, err := s.responseRepo.AttemptedAssessments(ctx, studentID, examIDs)
	if err != nil {
		return nil, err
	}
	for i := range exams {
		exams[i].Attempted = attempted[exams[i].ID]
	}
	return exams, nil
}

// AttemptedStudents returns the roster of students who submitted responses
// to an owned exam.
func (s *ExamService) AttemptedStudents(ctx context.Context, examID, professorID uuid.UUID) ([]model.AttemptedStudent, error) {
	if _, err := s.GetOwned(ctx, examID, professorID); err != nil {
		return nil, err
	}

	studentIDs, err := s.responseRepo.DistinctStudentIDs(ctx, examID)
	if err != nil {
		return nil, err
	}

	users, err := s.userRepo.ListByIDs(ctx, studentIDs)
	if err != nil {
		return nil, err
	}

	roster := make([]model.AttemptedStudent, 0, len(users))
	for _, u := range users {
		roster = append(roster, model.AttemptedStudent{
			ID:     u.ID.String(),
			Name:   u.FullName,
			Email:  u.Email,
			Status: AttemptedStatus,
		})
	}
	return roster, nil
}

// SubmitResponses grades a student's answers against the exam key and stores
// them. The exam must be validated and assigned to one of the student's
// classes. Answers to unknown question ids are graded incorrect rather than
// rejected.
func (s *ExamService) SubmitResponses(ctx context.Context, examID, studentID uuid.UUID, req model.SubmitResponsesRequest) (*SubmissionResult, error) {
	exam, err := s.examRepo.GetByID(ctx, examID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if !exam.IsValidated {
		return nil, ErrNotFound
	}

	visible, err := s.enrolledInAny(ctx, studentID, exam.ClassIDs)
	if err != nil {
		return nil, err
	}
	if !visible {
		return nil, ErrAccessDenied
	}

	responses := make([]model.StudentResponse, 0, len(req.Answers))
	correct := 0
	for _, ans := range req.Answers {
		isCorrect := false
		if q := exam.QuestionByID(ans.QuestionID.String()); q != nil {
			isCorrect = q.CorrectOption == ans.ResponseText
		}
		if isCorrect {
			correct++
		}
		responses = append(responses, model.StudentResponse{
			AssessmentID: examID,
			StudentID:    studentID,
			QuestionID:   ans.QuestionID,
			ResponseText: ans.ResponseText,
			IsCorrect:    isCorrect,
		})
	}

	if err := s.responseRepo.BulkInsert(ctx, responses); err != nil {
		return nil, fmt.Errorf("store responses: %w", err)
	}

	s.logger.Info().
		Str("exam_id", examID.String()).
		Str("student_id", studentID.String()).
		Int("answers", len(responses)).
		Msg("exam submission graded")

	score := 0.0
	if len(responses) > 0 {
		score = math.Round(float64(correct)/float64(len(responses))*1000) / 10
	}
	return &SubmissionResult{Total: len(responses), Correct: correct, Score: score}, nil
}

func (s *ExamService) enrolledInAny(ctx context.Context, studentID uuid.UUID, classIDs []uuid.UUID) (bool, error) {
	for _, classID := range classIDs {
		enrolled, err := s.classRepo.IsEnrolled(ctx, classID, studentID)
		if err != nil {
			return false, err
		}
		if enrolled {
			return true, nil
		}
	}
	return false, nil
}
