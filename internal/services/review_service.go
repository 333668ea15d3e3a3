package services

import (
	"context"
	"errors"
	"strings"

	"gorm.io/gorm"

	"museworks_backend/database"
	"museworks_backend/internal/authz"
	"museworks_backend/internal/logger"
	"museworks_backend/internal/metrics"
	"museworks_backend/internal/models"
	"museworks_backend/internal/repositories"
	"museworks_backend/internal/services/dto"
	"museworks_backend/pkg/apperrors"
)

// ReviewService - журнал модерации (append-only).
type ReviewService interface {
	Append(ctx context.Context, workID, reviewerID string, action models.ReviewAction, comment *string) (*dto.ReviewRecordResponse, error)
	History(ctx context.Context, workID string) ([]dto.ReviewRecordResponse, error)
}

type reviewService struct {
	db         *gorm.DB
	guard      *database.Guard
	reviewRepo repositories.ReviewRepository
	workRepo   repositories.WorkRepository
	roles      RoleResolver
	authorizer authz.Authorizer
}

func NewReviewService(
	db *gorm.DB,
	guard *database.Guard,
	reviewRepo repositories.ReviewRepository,
	workRepo repositories.WorkRepository,
	roles RoleResolver,
	authorizer authz.Authorizer,
) ReviewService {
	return &reviewService{
		db:         db,
		guard:      guard,
		reviewRepo: reviewRepo,
		workRepo:   workRepo,
		roles:      roles,
		authorizer: authorizer,
	}
}

// Append добавляет запись в журнал. Статус работы не меняется.
func (s *reviewService) Append(ctx context.Context, workID, reviewerID string, action models.ReviewAction, comment *string) (*dto.ReviewRecordResponse, error) {
	policyAction := authz.ActionReview
	switch action {
	case models.ReviewActionApprove, models.ReviewActionReject:
	case models.ReviewActionComment:
		policyAction = authz.ActionComment
		if comment == nil || strings.TrimSpace(*comment) == "" {
			return nil, apperrors.ErrEmptyComment
		}
	default:
		return nil, apperrors.ErrInvalidInput("review", "Action must be one of approve, reject, comment")
	}

	if _, err := authorize(ctx, s.roles, s.authorizer, reviewerID, authz.ObjectWork, policyAction, apperrors.ErrReviewerForbidden); err != nil {
		return nil, err
	}

	record := &models.ReviewRecord{
		WorkID:     workID,
		ReviewerID: reviewerID,
		Action:     action,
		Comment:    normalizeComment(comment),
	}
	err := s.guard.Do(ctx, "review.append", func(ctx context.Context) error {
		return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
			exists, err := s.workRepo.Exists(tx, workID)
			if err != nil {
				return err
			}
			if !exists {
				return apperrors.ErrWorkNotFound
			}
			return s.reviewRepo.Append(tx, record)
		})
	})
	if err != nil {
		return nil, err
	}

	metrics.ReviewRecordsAppended.WithLabelValues(string(action)).Inc()
	logger.CtxInfo(ctx, "review record appended",
		"work_id", workID,
		"record_id", record.ID,
		"action", action,
	)

	resp := dto.NewReviewRecordResponse(record, "")
	return &resp, nil
}

// History возвращает записи по работе от новых к старым.
// Для неизвестной работы - пустой список.
func (s *reviewService) History(ctx context.Context, workID string) ([]dto.ReviewRecordResponse, error) {
	return database.Query(ctx, s.guard, "review.history", func(ctx context.Context) ([]dto.ReviewRecordResponse, error) {
		rows, err := s.reviewRepo.FindHistory(s.db.WithContext(ctx), workID)
		if err != nil {
			return nil, err
		}
		out := make([]dto.ReviewRecordResponse, 0, len(rows))
		for i := range rows {
			out = append(out, dto.NewReviewRecordResponse(&rows[i].ReviewRecord, rows[i].ReviewerName))
		}
		return out, nil
	})
}

// normalizeComment отбрасывает пустые комментарии, чтобы в журнале не было "".
func normalizeComment(comment *string) *string {
	if comment == nil {
		return nil
	}
	trimmed := strings.TrimSpace(*comment)
	if trimmed == "" {
		return nil
	}
	return &trimmed
}

// mapWorkNotFound переводит ошибку репозитория в доменную
func mapWorkNotFound(err error) error {
	if errors.Is(err, repositories.ErrWorkNotFound) {
		return apperrors.ErrWorkNotFound
	}
	return err
}
