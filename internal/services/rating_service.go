package services

import (
	"context"
	"errors"
	"math"

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

const (
	MinScore = 1
	MaxScore = 5
)

type RatingService interface {
	UpsertRating(ctx context.Context, raterID string, req *dto.UpsertRatingRequest) (*dto.RatingResponse, error)
	GetRatingsForTarget(ctx context.Context, targetType models.TargetType, targetID string) (*dto.TargetRatingsResponse, error)
	ComputeAverage(ctx context.Context, targetType models.TargetType, targetID string) (float64, error)
	ComputeCount(ctx context.Context, targetType models.TargetType, targetID string) (int64, error)
	GetRatingSummary(ctx context.Context, targetType models.TargetType, targetID string) (*dto.RatingSummaryResponse, error)
	DeleteRating(ctx context.Context, ratingID, requestorID string) error
}

type ratingService struct {
	db             *gorm.DB
	guard          *database.Guard
	ratingRepo     repositories.RatingRepository
	workRepo       repositories.WorkRepository
	collectionRepo repositories.CollectionRepository
	roles          RoleResolver
	authorizer     authz.Authorizer
}

func NewRatingService(
	db *gorm.DB,
	guard *database.Guard,
	ratingRepo repositories.RatingRepository,
	workRepo repositories.WorkRepository,
	collectionRepo repositories.CollectionRepository,
	roles RoleResolver,
	authorizer authz.Authorizer,
) RatingService {
	return &ratingService{
		db:             db,
		guard:          guard,
		ratingRepo:     ratingRepo,
		workRepo:       workRepo,
		collectionRepo: collectionRepo,
		roles:          roles,
		authorizer:     authorizer,
	}
}

// UpsertRating создает оценку или перезаписывает score существующей.
// На (rater, targetType, targetId) в хранилище всегда не больше одной строки.
func (s *ratingService) UpsertRating(ctx context.Context, raterID string, req *dto.UpsertRatingRequest) (*dto.RatingResponse, error) {
	targetType := models.TargetType(req.TargetType)
	if !targetType.IsValid() {
		return nil, apperrors.ErrInvalidTargetType
	}
	if req.Score < MinScore || req.Score > MaxScore {
		return nil, apperrors.ErrInvalidScore
	}
	if _, err := authorize(ctx, s.roles, s.authorizer, raterID, authz.ObjectRating, authz.ActionWrite, apperrors.ErrRatingForbidden); err != nil {
		return nil, err
	}

	rating, err := database.Query(ctx, s.guard, "rating.upsert", func(ctx context.Context) (*models.Rating, error) {
		var stored *models.Rating
		err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
			if err := s.ensureTargetExists(tx, targetType, req.TargetID); err != nil {
				return err
			}
			var err error
			stored, err = s.ratingRepo.Upsert(tx, &models.Rating{
				RaterID:    raterID,
				TargetType: targetType,
				TargetID:   req.TargetID,
				Score:      req.Score,
			})
			return err
		})
		return stored, err
	})
	if err != nil {
		return nil, err
	}

	metrics.RatingWrites.WithLabelValues(string(targetType), "upsert").Inc()
	logger.CtxInfo(ctx, "rating upserted",
		"rating_id", rating.ID,
		"target_type", targetType,
		"target_id", req.TargetID,
		"score", req.Score,
	)

	resp := dto.NewRatingResponse(rating)
	return &resp, nil
}

func (s *ratingService) ensureTargetExists(tx *gorm.DB, targetType models.TargetType, targetID string) error {
	var (
		exists bool
		err    error
	)
	switch targetType {
	case models.TargetTypeWork:
		exists, err = s.workRepo.Exists(tx, targetID)
	case models.TargetTypeCollection:
		exists, err = s.collectionRepo.Exists(tx, targetID)
	}
	if err != nil {
		return err
	}
	if !exists {
		return apperrors.ErrTargetNotFound
	}
	return nil
}

func (s *ratingService) GetRatingsForTarget(ctx context.Context, targetType models.TargetType, targetID string) (*dto.TargetRatingsResponse, error) {
	if !targetType.IsValid() {
		return nil, apperrors.ErrInvalidTargetType
	}

	return database.Query(ctx, s.guard, "rating.list", func(ctx context.Context) (*dto.TargetRatingsResponse, error) {
		db := s.db.WithContext(ctx)

		ratings, err := s.ratingRepo.FindByTarget(db, targetType, targetID)
		if err != nil {
			return nil, err
		}
		avg, err := s.ratingRepo.Average(db, targetType, targetID)
		if err != nil {
			return nil, err
		}

		resp := &dto.TargetRatingsResponse{
			TargetType: string(targetType),
			TargetID:   targetID,
			Ratings:    make([]dto.RatingResponse, 0, len(ratings)),
			Average:    roundAverage(avg),
			Count:      int64(len(ratings)),
		}
		for i := range ratings {
			resp.Ratings = append(resp.Ratings, dto.NewRatingResponse(&ratings[i]))
		}
		return resp, nil
	})
}

// ComputeAverage - среднее, округленное до одного знака; 0, если оценок нет
func (s *ratingService) ComputeAverage(ctx context.Context, targetType models.TargetType, targetID string) (float64, error) {
	if !targetType.IsValid() {
		return 0, apperrors.ErrInvalidTargetType
	}
	avg, err := database.Query(ctx, s.guard, "rating.average", func(ctx context.Context) (float64, error) {
		return s.ratingRepo.Average(s.db.WithContext(ctx), targetType, targetID)
	})
	if err != nil {
		return 0, err
	}
	return roundAverage(avg), nil
}

func (s *ratingService) ComputeCount(ctx context.Context, targetType models.TargetType, targetID string) (int64, error) {
	if !targetType.IsValid() {
		return 0, apperrors.ErrInvalidTargetType
	}
	return database.Query(ctx, s.guard, "rating.count", func(ctx context.Context) (int64, error) {
		return s.ratingRepo.Count(s.db.WithContext(ctx), targetType, targetID)
	})
}

func (s *ratingService) GetRatingSummary(ctx context.Context, targetType models.TargetType, targetID string) (*dto.RatingSummaryResponse, error) {
	if !targetType.IsValid() {
		return nil, apperrors.ErrInvalidTargetType
	}

	return database.Query(ctx, s.guard, "rating.summary", func(ctx context.Context) (*dto.RatingSummaryResponse, error) {
		db := s.db.WithContext(ctx)

		dist, err := s.ratingRepo.Distribution(db, targetType, targetID)
		if err != nil {
			return nil, err
		}
		avg, err := s.ratingRepo.Average(db, targetType, targetID)
		if err != nil {
			return nil, err
		}

		var count int64
		for _, n := range dist {
			count += n
		}
		return &dto.RatingSummaryResponse{
			TargetType:   string(targetType),
			TargetID:     targetID,
			Average:      roundAverage(avg),
			Count:        count,
			Distribution: dist,
		}, nil
	})
}

// DeleteRating удаляет оценку. Удалить может только автор.
func (s *ratingService) DeleteRating(ctx context.Context, ratingID, requestorID string) error {
	rating, err := database.Query(ctx, s.guard, "rating.get", func(ctx context.Context) (*models.Rating, error) {
		r, err := s.ratingRepo.FindByID(s.db.WithContext(ctx), ratingID)
		if errors.Is(err, repositories.ErrRatingNotFound) {
			return nil, apperrors.ErrRatingNotFound
		}
		return r, err
	})
	if err != nil {
		return err
	}

	if rating.RaterID != requestorID {
		logger.CtxWarn(ctx, "rating delete denied", "rating_id", ratingID, "requestor_id", requestorID)
		return apperrors.ErrNotRatingOwner
	}
	if _, err := authorize(ctx, s.roles, s.authorizer, requestorID, authz.ObjectRating, authz.ActionDelete, apperrors.ErrNotRatingOwner); err != nil {
		return err
	}

	err = s.guard.Do(ctx, "rating.delete", func(ctx context.Context) error {
		err := s.ratingRepo.Delete(s.db.WithContext(ctx), ratingID)
		if errors.Is(err, repositories.ErrRatingNotFound) {
			return apperrors.ErrRatingNotFound
		}
		return err
	})
	if err != nil {
		return err
	}

	metrics.RatingWrites.WithLabelValues(string(rating.TargetType), "delete").Inc()
	logger.CtxInfo(ctx, "rating deleted", "rating_id", ratingID)
	return nil
}

func roundAverage(avg float64) float64 {
	return math.Round(avg*10) / 10
}
