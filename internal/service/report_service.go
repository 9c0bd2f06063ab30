package service

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/conceptlens/conceptlens-backend/internal/config"
	"github.com/conceptlens/conceptlens-backend/internal/insight"
	"github.com/conceptlens/conceptlens-backend/internal/model"
	"github.com/conceptlens/conceptlens-backend/internal/repository"
)

// ReportService assembles the analytics read models: grouped misconception
// reports, the topic trend matrix, assessment summaries, and dashboard stats.
type ReportService struct {
	misRepo      *repository.MisconceptionRepository
	examRepo     *repository.ExamRepository
	responseRepo *repository.ResponseRepository
	cfg          *config.Config
	rdb          *redis.Client
	logger       zerolog.Logger
}

// NewReportService creates a new ReportService.
func NewReportService(
	misRepo *repository.MisconceptionRepository,
	examRepo *repository.ExamRepository,
	responseRepo *repository.ResponseRepository,
	cfg *config.Config,
	rdb *redis.Client,
) *ReportService {
	return &ReportService{
		misRepo:      misRepo,
		examRepo:     examRepo,
		responseRepo: responseRepo,
		cfg:          cfg,
		rdb:          rdb,
		logger:       log.With().Str("component", "report_service").Logger(),
	}
}

// GroupedMisconceptions builds the per-exam misconception report for a
// professor, optionally filtered by review status. Exams without any matching
// cluster are omitted.
func (s *ReportService) GroupedMisconceptions(ctx context.Context, professorID uuid.UUID, status model.MisconceptionStatus) ([]model.ExamMisconceptionReport, error) {
	misconceptions, err := s.misRepo.ListOwned(ctx, professorID, status)
	if err != nil {
		return nil, err
	}

	exams, err := s.examRepo.ListByProfessor(ctx, professorID, false)
	if err != nil {
		return nil, err
	}

	examIDs := make([]uuid.UUID, 0, len(exams))
	for _, e := range exams {
		examIDs = append(examIDs, e.ID)
	}
	attempted, err := s.responseRepo.CountDistinctStudents(ctx, examIDs)
	if err != nil {
		return nil, err
	}

	var exampleIDs []uuid.UUID
	for _, m := range misconceptions {
		exampleIDs = append(exampleIDs, m.ExampleIDs...)
	}
	evidence, err := s.responseRepo.TextByIDs(ctx, exampleIDs)
	if err != nil {
		return nil, err
	}

	return insight.BuildExamReports(exams, misconceptions, attempted, evidence), nil
}

// Trends builds the professor's topic trend matrix over their exams in
// chronological order. Only professor-confirmed clusters feed the matrix.
func (s *ReportService) Trends(ctx context.Context, professorID uuid.UUID) (model.TrendReport, error) {
	exams, err := s.examRepo.ListByProfessor(ctx, professorID, true)
	if err != nil {
		return model.TrendReport{}, err
	}

	misconceptions, err := s.misRepo.ListOwned(ctx, professorID, model.MisconceptionValid)
	if err != nil {
		return model.TrendReport{}, err
	}

	return insight.BuildTrendReport(exams, misconceptions), nil
}

// AssessmentSummaries computes participation/score statistics for each of
// the professor's exams, newest first.
func (s *ReportService) AssessmentSummaries(ctx context.Context, professorID uuid.UUID) ([]model.ExamSummary, error) {
	exams, err := s.examRepo.ListByProfessor(ctx, professorID, false)
	if err != nil {
		return nil, err
	}

	summaries := make([]model.ExamSummary, 0, len(exams))
	for _, exam := range exams {
		responses, err := s.responseRepo.ListByAssessment(ctx, exam.ID)
		if err != nil {
			return nil, err
		}
		summaries = append(summaries, insight.BuildExamSummary(exam, responses))
	}
	return summaries, nil
}

// DashboardStats returns the headline review-queue numbers, served from the
// Redis cache when fresh. Cache failures fall through to a direct compute.
func (s *ReportService) DashboardStats(ctx context.Context) (*model.DashboardStats, error) {
	key := config.CacheKey.DashboardStatsKey()

	cached, err := s.rdb.Get(ctx, key).Bytes()
	if err == nil {
		stats := &model.DashboardStats{}
		if err := json.Unmarshal(cached, stats); err == nil {
			return stats, nil
		}
		s.logger.Warn().Msg("discarding malformed cached dashboard stats")
	} else if !errors.Is(err, redis.Nil) {
		s.logger.Warn().Err(err).Msg("dashboard stats cache read failed")
	}

	return s.RefreshStats(ctx)
}

// RefreshStats recomputes the dashboard stats and rewrites the cache entry.
// Also called periodically by the background stats worker.
func (s *ReportService) RefreshStats(ctx context.Context) (*model.DashboardStats, error) {
	pending, err := s.misRepo.CountByStatus(ctx, model.MisconceptionPending)
	if err != nil {
		return nil, err
	}
	valid, err := s.misRepo.CountByStatus(ctx, model.MisconceptionValid)
	if err != nil {
		return nil, err
	}
	processed, err := s.responseRepo.CountAll(ctx)
	if err != nil {
		return nil, err
	}

	stats := &model.DashboardStats{
		PendingMisconceptions: pending,
		ValidMisconceptions:   valid,
		ProcessedResponses:    processed,
	}

	if payload, err := json.Marshal(stats); err == nil {
		if err := s.rdb.Set(ctx, config.CacheKey.DashboardStatsKey(), payload, s.cfg.StatsCacheTTL).Err(); err != nil {
			s.logger.Warn().Err(err).Msg("dashboard stats cache write failed")
		}
	}
	return stats, nil
}
