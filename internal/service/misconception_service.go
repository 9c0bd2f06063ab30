package service

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/conceptlens/conceptlens-backend/internal/insight"
	"github.com/conceptlens/conceptlens-backend/internal/model"
	"github.com/conceptlens/conceptlens-backend/internal/repository"
)

// Review actions accepted by Validate.
const (
	ActionApprove = "approve"
	ActionReject  = "reject"
	ActionRename  = "rename"
)

// MisconceptionService handles listing, enrichment, and the professor review
// workflow for detected misconception clusters.
type MisconceptionService struct {
	misRepo      *repository.MisconceptionRepository
	examRepo     *repository.ExamRepository
	responseRepo *repository.ResponseRepository
	logRepo      *repository.ValidationLogRepository
	logger       zerolog.Logger
}

// NewMisconceptionService creates a new MisconceptionService.
func NewMisconceptionService(
	misRepo *repository.MisconceptionRepository,
	examRepo *repository.ExamRepository,
	responseRepo *repository.ResponseRepository,
	logRepo *repository.ValidationLogRepository,
) *MisconceptionService {
	return &MisconceptionService{
		misRepo:      misRepo,
		examRepo:     examRepo,
		responseRepo: responseRepo,
		logRepo:      logRepo,
		logger:       log.With().Str("component", "misconception_service").Logger(),
	}
}

// List retrieves the professor's misconceptions, enriched with exam context,
// ordered by affected-student count. Pass an empty status for all states.
func (s *MisconceptionService) List(ctx context.Context, professorID uuid.UUID, status model.MisconceptionStatus) ([]model.EnrichedMisconception, error) {
	misconceptions, err := s.misRepo.ListOwned(ctx, professorID, status)
	if err != nil {
		return nil, err
	}

	exams, err := s.examRepo.ListByProfessor(ctx, professorID, false)
	if err != nil {
		return nil, err
	}
	examsByID := make(map[uuid.UUID]*model.Exam, len(exams))
	for i := range exams {
		examsByID[exams[i].ID] = &exams[i]
	}

	evidence, err := s.evidenceFor(ctx, misconceptions)
	if err != nil {
		return nil, err
	}

	enriched := make([]model.EnrichedMisconception, 0, len(misconceptions))
	for _, m := range misconceptions {
		enriched = append(enriched, insight.Enrich(m, examsByID[m.AssessmentID], evidence))
	}
	return enriched, nil
}

// GetEnriched retrieves one misconception with full enrichment. The caller
// must own the exam it belongs to.
func (s *MisconceptionService) GetEnriched(ctx context.Context, id, professorID uuid.UUID) (*model.EnrichedMisconception, error) {
	m, exam, err := s.getOwned(ctx, id, professorID)
	if err != nil {
		return nil, err
	}

	evidence, err := s.responseRepo.TextByIDs(ctx, m.ExampleIDs)
	if err != nil {
		return nil, err
	}

	enriched := insight.Enrich(*m, exam, evidence)
	return &enriched, nil
}

// UpdateStatus transitions an owned misconception's review state directly.
func (s *MisconceptionService) UpdateStatus(ctx context.Context, id, professorID uuid.UUID, status model.MisconceptionStatus) error {
	if _, _, err := s.getOwned(ctx, id, professorID); err != nil {
		return err
	}
	return s.misRepo.UpdateStatus(ctx, id, status)
}

// Validate applies a review action. Approve and rename both mark the cluster
// valid; rename additionally replaces its label. Every action is recorded in
// the audit log.
func (s *MisconceptionService) Validate(ctx context.Context, id, professorID uuid.UUID, req model.ValidateRequest) (model.MisconceptionStatus, error) {
	if _, _, err := s.getOwned(ctx, id, professorID); err != nil {
		return "", err
	}

	var status model.MisconceptionStatus
	var err error
	switch req.Action {
	case ActionApprove:
		status = model.MisconceptionValid
		err = s.misRepo.UpdateStatus(ctx, id, status)
	case ActionReject:
		status = model.MisconceptionRejected
		err = s.misRepo.UpdateStatus(ctx, id, status)
	case ActionRename:
		if req.NewLabel == "" {
			return "", ErrInvalidAction
		}
		status = model.MisconceptionValid
		err = s.misRepo.UpdateStatusAndLabel(ctx, id, status, req.NewLabel)
	default:
		return "", ErrInvalidAction
	}
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return "", ErrNotFound
		}
		return "", err
	}

	if err := s.logRepo.Create(ctx, &model.ValidationLog{
		MisconceptionID: id,
		TeacherID:       professorID,
		Action:          req.Action,
	}); err != nil {
		s.logger.Warn().Err(err).Str("misconception_id", id.String()).Msg("failed to write validation log")
	}
	return status, nil
}

// getOwned fetches a misconception and its exam, enforcing exam ownership.
func (s *MisconceptionService) getOwned(ctx context.Context, id, professorID uuid.UUID) (*model.Misconception, *model.Exam, error) {
	m, err := s.misRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil, ErrNotFound
		}
		return nil, nil, err
	}

	exam, err := s.examRepo.GetByID(ctx, m.AssessmentID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			// Orphaned cluster; treat as unreachable rather than leaking it.
			return nil, nil, ErrNotFound
		}
		return nil, nil, err
	}
	if exam.ProfessorID != professorID {
		return nil, nil, ErrAccessDenied
	}
	return m, exam, nil
}

// evidenceFor resolves the example response texts referenced by a batch of
// misconceptions in one query.
func (s *MisconceptionService) evidenceFor(ctx context.Context, misconceptions []model.Misconception) (map[string]string, error) {
	var ids []uuid.UUID
	for _, m := range misconceptions {
		ids = append(ids, m.ExampleIDs...)
	}
	return s.responseRepo.TextByIDs(ctx, ids)
}
