package services

import (
	"context"
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

// ModerationService переводит работы между статусами по решениям рецензентов.
// Смена статуса и запись в журнал выполняются в одной транзакции.
type ModerationService interface {
	ReviewOne(ctx context.Context, workID, reviewerID string, decision models.ReviewDecision, comment *string) (*dto.ReviewResult, error)
	ReviewBatch(ctx context.Context, workIDs []string, reviewerID string, decision models.ReviewDecision, comment *string) (*dto.BatchReviewResult, error)
	AddComment(ctx context.Context, workID, reviewerID, comment string) (*dto.ReviewRecordResponse, error)
}

type moderationService struct {
	db         *gorm.DB
	guard      *database.Guard
	workRepo   repositories.WorkRepository
	reviewRepo repositories.ReviewRepository
	ledger     ReviewService
	roles      RoleResolver
	authorizer authz.Authorizer
	notifier   NotificationService
}

func NewModerationService(
	db *gorm.DB,
	guard *database.Guard,
	workRepo repositories.WorkRepository,
	reviewRepo repositories.ReviewRepository,
	ledger ReviewService,
	roles RoleResolver,
	authorizer authz.Authorizer,
	notifier NotificationService,
) ModerationService {
	return &moderationService{
		db:         db,
		guard:      guard,
		workRepo:   workRepo,
		reviewRepo: reviewRepo,
		ledger:     ledger,
		roles:      roles,
		authorizer: authorizer,
		notifier:   notifier,
	}
}

// NextStatus - таблица переходов. approve и reject допустимы из любого статуса,
// award только для уже одобренной работы (или победителя, повторно).
// award пишется в журнал как approve.
func NextStatus(current models.WorkStatus, decision models.ReviewDecision) (models.WorkStatus, models.ReviewAction, error) {
	switch decision {
	case models.DecisionApprove:
		return models.WorkStatusApproved, models.ReviewActionApprove, nil
	case models.DecisionReject:
		return models.WorkStatusRejected, models.ReviewActionReject, nil
	case models.DecisionAward:
		if current == models.WorkStatusApproved || current == models.WorkStatusWinner {
			return models.WorkStatusWinner, models.ReviewActionApprove, nil
		}
		return "", "", apperrors.ErrInvalidTransition.WithDetails(map[string]string{
			"from":     string(current),
			"decision": string(decision),
		})
	default:
		return "", "", apperrors.ErrInvalidDecision
	}
}

func (s *moderationService) ReviewOne(ctx context.Context, workID, reviewerID string, decision models.ReviewDecision, comment *string) (*dto.ReviewResult, error) {
	if !decision.IsValid() {
		return nil, apperrors.ErrInvalidDecision
	}
	if _, err := authorize(ctx, s.roles, s.authorizer, reviewerID, authz.ObjectWork, authz.ActionReview, apperrors.ErrReviewerForbidden); err != nil {
		logger.CtxWarn(ctx, "review denied", "work_id", workID, "reviewer_id", reviewerID, "error", err.Error())
		return nil, err
	}

	work, record, err := s.apply(ctx, workID, reviewerID, decision, normalizeComment(comment))
	if err != nil {
		metrics.ModerationDecisions.WithLabelValues(string(decision), "failed").Inc()
		return nil, err
	}

	metrics.ModerationDecisions.WithLabelValues(string(decision), "applied").Inc()
	s.notifier.NotifyReviewDecision(ctx, work, record.Comment)

	return &dto.ReviewResult{
		WorkID: work.ID,
		Status: string(work.Status),
		Record: dto.NewReviewRecordResponse(record, ""),
	}, nil
}

// ReviewBatch применяет решение к каждой работе отдельно (best-effort).
// Каждая работа обновляется в своей транзакции, сбой одной не откатывает остальные.
// Права проверяются один раз до обработки.
func (s *moderationService) ReviewBatch(ctx context.Context, workIDs []string, reviewerID string, decision models.ReviewDecision, comment *string) (*dto.BatchReviewResult, error) {
	if len(workIDs) == 0 {
		return nil, apperrors.ErrEmptyBatch
	}
	if !decision.IsValid() {
		return nil, apperrors.ErrInvalidDecision
	}
	if _, err := authorize(ctx, s.roles, s.authorizer, reviewerID, authz.ObjectWork, authz.ActionReview, apperrors.ErrReviewerForbidden); err != nil {
		logger.CtxWarn(ctx, "batch review denied", "reviewer_id", reviewerID, "error", err.Error())
		return nil, err
	}

	normalized := normalizeComment(comment)
	result := &dto.BatchReviewResult{Failed: []dto.BatchFailure{}}

	for _, workID := range uniqueIDs(workIDs) {
		work, record, err := s.apply(ctx, workID, reviewerID, decision, normalized)
		if err != nil {
			metrics.ModerationDecisions.WithLabelValues(string(decision), "failed").Inc()
			result.Failed = append(result.Failed, batchFailure(workID, err))
			continue
		}
		metrics.ModerationDecisions.WithLabelValues(string(decision), "applied").Inc()
		result.Updated++
		s.notifier.NotifyReviewDecision(ctx, work, record.Comment)
	}

	logger.CtxInfo(ctx, "batch review completed",
		"decision", decision,
		"requested", len(workIDs),
		"updated", result.Updated,
		"failed", len(result.Failed),
	)
	return result, nil
}

// AddComment добавляет комментарий в журнал, не меняя статус
func (s *moderationService) AddComment(ctx context.Context, workID, reviewerID, comment string) (*dto.ReviewRecordResponse, error) {
	if strings.TrimSpace(comment) == "" {
		return nil, apperrors.ErrEmptyComment
	}
	return s.ledger.Append(ctx, workID, reviewerID, models.ReviewActionComment, &comment)
}

// apply меняет статус и пишет запись журнала атомарно
func (s *moderationService) apply(ctx context.Context, workID, reviewerID string, decision models.ReviewDecision, comment *string) (*models.Work, *models.ReviewRecord, error) {
	var (
		work   *models.Work
		record *models.ReviewRecord
	)

	err := s.guard.Do(ctx, "moderation.review", func(ctx context.Context) error {
		return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
			current, err := s.workRepo.FindByID(tx, workID)
			if err != nil {
				return mapWorkNotFound(err)
			}

			status, action, err := NextStatus(current.Status, decision)
			if err != nil {
				return err
			}

			if err := s.workRepo.UpdateStatus(tx, workID, status); err != nil {
				return mapWorkNotFound(err)
			}

			rec := &models.ReviewRecord{
				WorkID:     workID,
				ReviewerID: reviewerID,
				Action:     action,
				Comment:    comment,
			}
			if err := s.reviewRepo.Append(tx, rec); err != nil {
				return err
			}

			current.Status = status
			work, record = current, rec
			return nil
		})
	})
	if err != nil {
		return nil, nil, err
	}

	metrics.ReviewRecordsAppended.WithLabelValues(string(record.Action)).Inc()
	logger.CtxInfo(ctx, "work reviewed",
		"work_id", workID,
		"decision", decision,
		"status", work.Status,
		"record_id", record.ID,
	)
	return work, record, nil
}

func uniqueIDs(ids []string) []string {
	seen := make(map[string]struct{}, len(ids))
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}

func batchFailure(workID string, err error) dto.BatchFailure {
	appErr, ok := apperrors.AsAppError(err)
	if !ok {
		appErr = apperrors.InternalError(err)
	}
	return dto.BatchFailure{
		WorkID:  workID,
		Code:    string(appErr.Code),
		Message: appErr.Message,
	}
}
