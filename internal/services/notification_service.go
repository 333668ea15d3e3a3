package services

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"museworks_backend/database"
	"museworks_backend/internal/email"
	"museworks_backend/internal/logger"
	"museworks_backend/internal/metrics"
	"museworks_backend/internal/models"
	"museworks_backend/internal/repositories"
	"museworks_backend/pkg/apperrors"
)

// NotificationService уведомляет дизайнера о решении модерации.
// Уведомление best-effort: ошибки логируются и не возвращаются вызывающему.
type NotificationService interface {
	NotifyReviewDecision(ctx context.Context, work *models.Work, comment *string)
}

type notificationService struct {
	db       *gorm.DB
	guard    *database.Guard
	userRepo repositories.UserRepository
	provider email.Provider
	renderer email.TemplateRenderer
}

func NewNotificationService(
	db *gorm.DB,
	guard *database.Guard,
	userRepo repositories.UserRepository,
	provider email.Provider,
	renderer email.TemplateRenderer,
) NotificationService {
	return &notificationService{
		db:       db,
		guard:    guard,
		userRepo: userRepo,
		provider: provider,
		renderer: renderer,
	}
}

func (s *notificationService) NotifyReviewDecision(ctx context.Context, work *models.Work, comment *string) {
	if s.provider == nil {
		metrics.EmailNotifications.WithLabelValues("skipped").Inc()
		return
	}

	designer, err := database.Query(ctx, s.guard, "user.get", func(ctx context.Context) (*models.User, error) {
		designer, err := s.userRepo.FindByID(s.db.WithContext(ctx), work.DesignerID)
		if errors.Is(err, repositories.ErrUserNotFound) {
			return nil, apperrors.ErrDesignerNotFound
		}
		return designer, err
	})
	if err != nil {
		metrics.EmailNotifications.WithLabelValues("skipped").Inc()
		logger.CtxWarn(ctx, "review notification skipped: designer not resolved",
			"work_id", work.ID,
			"designer_id", work.DesignerID,
			"error", err.Error(),
		)
		return
	}

	data := email.TemplateData{
		"DesignerName": designer.DisplayName,
		"WorkTitle":    work.Title,
		"Status":       string(work.Status),
	}
	if comment != nil {
		data["Comment"] = *comment
	}

	html, err := s.renderer.Render(email.TemplateReviewDecision, data)
	if err != nil {
		metrics.EmailNotifications.WithLabelValues("failed").Inc()
		logger.CtxWithError(ctx, "failed to render review notification", err, "work_id", work.ID)
		return
	}

	msg := &email.Email{
		To:       []string{designer.Email},
		Subject:  fmt.Sprintf("Your work \"%s\" was %s", work.Title, work.Status),
		Body:     fmt.Sprintf("Your work \"%s\" was %s.", work.Title, work.Status),
		HTMLBody: html,
	}
	if err := s.provider.Send(msg); err != nil {
		metrics.EmailNotifications.WithLabelValues("failed").Inc()
		logger.CtxWithError(ctx, "failed to send review notification", err,
			"work_id", work.ID,
			"designer_id", designer.ID,
		)
		return
	}

	metrics.EmailNotifications.WithLabelValues("sent").Inc()
	logger.CtxInfo(ctx, "review notification sent", "work_id", work.ID, "designer_id", designer.ID)
}
