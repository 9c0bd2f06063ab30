package service

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/conceptlens/conceptlens-backend/internal/config"
	"github.com/conceptlens/conceptlens-backend/internal/model"
	"github.com/conceptlens/conceptlens-backend/internal/repository"
)

// NotificationService stores inbox entries and fans them out over Redis
// Pub/Sub for live delivery.
type NotificationService struct {
	repo   *repository.NotificationRepository
	rdb    *redis.Client
	logger zerolog.Logger
}

// NewNotificationService creates a new NotificationService.
func NewNotificationService(repo *repository.NotificationRepository, rdb *redis.Client) *NotificationService {
	return &NotificationService{
		repo:   repo,
		rdb:    rdb,
		logger: log.With().Str("component", "notification_service").Logger(),
	}
}

// Notify persists a notification and publishes it to the recipient's live
// channel. Publish failures are logged and swallowed; the inbox row is the
// source of truth.
func (s *NotificationService) Notify(ctx context.Context, n *model.Notification) error {
	if err := s.repo.Create(ctx, n); err != nil {
		return err
	}

	payload, err := json.Marshal(n)
	if err != nil {
		s.logger.Warn().Err(err).Msg("failed to marshal notification payload")
		return nil
	}

	channel := config.CacheKey.NotificationChannel(n.RecipientID.String())
	if err := s.rdb.Publish(ctx, channel, payload).Err(); err != nil {
		s.logger.Warn().Err(err).Str("channel", channel).Msg("failed to publish notification")
	}
	return nil
}

// List retrieves a user's inbox, newest first.
func (s *NotificationService) List(ctx context.Context, recipientID uuid.UUID) ([]model.Notification, error) {
	return s.repo.ListByRecipient(ctx, recipientID)
}

// UnreadCount returns a user's unread notification count.
func (s *NotificationService) UnreadCount(ctx context.Context, recipientID uuid.UUID) (int, error) {
	return s.repo.CountUnread(ctx, recipientID)
}

// MarkRead flags one of the user's notifications as read.
func (s *NotificationService) MarkRead(ctx context.Context, id, recipientID uuid.UUID) error {
	err := s.repo.MarkRead(ctx, id, recipientID)
	if errors.Is(err, pgx.ErrNoRows) {
		return ErrNotFound
	}
	return err
}
