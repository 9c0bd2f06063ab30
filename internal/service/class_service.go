package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/conceptlens/conceptlens-backend/internal/model"
	"github.com/conceptlens/conceptlens-backend/internal/repository"
)

// codeGenAttempts bounds join-code collision retries before giving up.
const codeGenAttempts = 5

// ClassService handles class lifecycle and the student join workflow.
type ClassService struct {
	classRepo *repository.ClassRepository
	joinRepo  *repository.JoinRequestRepository
	userRepo  *repository.UserRepository
	notifier  *NotificationService
	logger    zerolog.Logger
}

// NewClassService creates a new ClassService.
func NewClassService(
	classRepo *repository.ClassRepository,
	joinRepo *repository.JoinRequestRepository,
	userRepo *repository.UserRepository,
	notifier *NotificationService,
) *ClassService {
	return &ClassService{
		classRepo: classRepo,
		joinRepo:  joinRepo,
		userRepo:  userRepo,
		notifier:  notifier,
		logger:    log.With().Str("component", "class_service").Logger(),
	}
}

// Create opens a new class with a fresh unique join code.
func (s *ClassService) Create(ctx context.Context, professorID uuid.UUID, institutionID string, req model.CreateClassRequest) (*model.Class, error) {
	code, err := s.uniqueCode(ctx)
	if err != nil {
		return nil, err
	}

	class := &model.Class{
		Name:          req.Name,
		SubjectID:     req.SubjectID,
		InstitutionID: institutionID,
		ProfessorID:   professorID,
		ClassCode:     code,
	}
	if err := s.classRepo.Create(ctx, class); err != nil {
		return nil, fmt.Errorf("create class: %w", err)
	}
	return class, nil
}

// uniqueCode draws join codes until one is unused. The keyspace is large
// enough that more than one retry is already unlikely.
func (s *ClassService) uniqueCode(ctx context.Context) (string, error) {
	for i := 0; i < codeGenAttempts; i++ {
		code, err := GenerateClassCode()
		if err != nil {
			return "", err
		}
		taken, err := s.classRepo.CodeExists(ctx, code)
		if err != nil {
			return "", err
		}
		if !taken {
			return code, nil
		}
	}
	return "", errors.New("could not allocate a unique class code")
}

// ListForProfessor retrieves the classes a professor owns.
func (s *ClassService) ListForProfessor(ctx context.Context, professorID uuid.UUID) ([]model.Class, error) {
	return s.classRepo.ListByProfessor(ctx, professorID)
}

// ListForStudent retrieves the classes a student is enrolled in.
func (s *ClassService) ListForStudent(ctx context.Context, studentID uuid.UUID) ([]model.Class, error) {
	return s.classRepo.ListByStudent(ctx, studentID)
}

// GetOwned retrieves a class the professor owns.
func (s *ClassService) GetOwned(ctx context.Context, classID, professorID uuid.UUID) (*model.Class, error) {
	class, err := s.classRepo.GetByID(ctx, classID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if class.ProfessorID != professorID {
		return nil, ErrAccessDenied
	}
	return class, nil
}

// Delete removes a class the professor owns.
func (s *ClassService) Delete(ctx context.Context, classID, professorID uuid.UUID) error {
	if _, err := s.GetOwned(ctx, classID, professorID); err != nil {
		return err
	}
	return s.classRepo.Delete(ctx, classID)
}

// Roster retrieves the enrolled students of a class the professor owns.
func (s *ClassService) Roster(ctx context.Context, classID, professorID uuid.UUID) ([]model.ClassStudent, error) {
	if _, err := s.GetOwned(ctx, classID, professorID); err != nil {
		return nil, err
	}
	return s.classRepo.ListStudents(ctx, classID)
}

// Join files a student's request to join a class by its code. The owning
// professor is notified for review.
func (s *ClassService) Join(ctx context.Context, studentID uuid.UUID, code string) (*model.ClassJoinRequest, error) {
	class, err := s.classRepo.GetByCode(ctx, code)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	enrolled, err := s.classRepo.IsEnrolled(ctx, class.ID, studentID)
	if err != nil {
		return nil, err
	}
	if enrolled {
		return nil, ErrAlreadyEnrolled
	}

	pending, err := s.joinRepo.HasPending(ctx, class.ID, studentID)
	if err != nil {
		return nil, err
	}
	if pending {
		return nil, ErrRequestPending
	}

	student, err := s.userRepo.GetByID(ctx, studentID)
	if err != nil {
		return nil, err
	}

	req := &model.ClassJoinRequest{
		ClassID:     class.ID,
		StudentID:   studentID,
		StudentName: student.FullName,
		Status:      model.JoinRequestPending,
	}
	if err := s.joinRepo.Create(ctx, req); err != nil {
		return nil, fmt.Errorf("create join request: %w", err)
	}

	if err := s.notifier.Notify(ctx, &model.Notification{
		RecipientID: class.ProfessorID,
		Type:        model.NotificationJoinRequest,
		Title:       "New join request",
		Message:     fmt.Sprintf("%s requested to join %s.", student.FullName, class.Name),
		Link:        fmt.Sprintf("/classes/%s/requests", class.ID),
	}); err != nil {
		s.logger.Warn().Err(err).Msg("failed to notify professor of join request")
	}
	return req, nil
}

// PendingRequests retrieves the open join requests of a class the professor
// owns.
func (s *ClassService) PendingRequests(ctx context.Context, classID, professorID uuid.UUID) ([]model.ClassJoinRequest, error) {
	if _, err := s.GetOwned(ctx, classID, professorID); err != nil {
		return nil, err
	}
	return s.joinRepo.ListPendingByClass(ctx, classID)
}

// Review approves or rejects a pending join request. Approval enrolls the
// student; either outcome notifies them.
func (s *ClassService) Review(ctx context.Context, requestID, professorID uuid.UUID, approve bool) error {
	req, err := s.joinRepo.GetByID(ctx, requestID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return ErrNotFound
		}
		return err
	}
	if req.Status != model.JoinRequestPending {
		return ErrInvalidAction
	}

	class, err := s.GetOwned(ctx, req.ClassID, professorID)
	if err != nil {
		return err
	}

	status := model.JoinRequestRejected
	outcome := "rejected"
	if approve {
		status = model.JoinRequestApproved
		outcome = "approved"
		if err := s.classRepo.AddStudent(ctx, class.ID, req.StudentID); err != nil {
			return fmt.Errorf("enroll student: %w", err)
		}
	}
	if err := s.joinRepo.UpdateStatus(ctx, requestID, status); err != nil {
		return err
	}

	if err := s.notifier.Notify(ctx, &model.Notification{
		RecipientID: req.StudentID,
		Type:        model.NotificationStatusUpdate,
		Title:       "Join request " + outcome,
		Message:     fmt.Sprintf("Your request to join %s was %s.", class.Name, outcome),
	}); err != nil {
		s.logger.Warn().Err(err).Msg("failed to notify student of review outcome")
	}
	return nil
}
