package services

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"museworks_backend/database"
	"museworks_backend/internal/algorithms"
	"museworks_backend/internal/metrics"
	"museworks_backend/internal/models"
	"museworks_backend/internal/repositories"
	"museworks_backend/internal/services/dto"
)

// RelatednessService подбирает похожие работы. Только чтение.
type RelatednessService interface {
	RelatedTo(ctx context.Context, workID string, limit int) ([]dto.WorkResponse, error)
}

type relatednessService struct {
	db       *gorm.DB
	guard    *database.Guard
	workRepo repositories.WorkRepository
}

func NewRelatednessService(db *gorm.DB, guard *database.Guard, workRepo repositories.WorkRepository) RelatednessService {
	return &relatednessService{db: db, guard: guard, workRepo: workRepo}
}

// RelatedTo возвращает до limit работ, наиболее похожих на workID.
// Неизвестная работа или limit <= 0 дают пустой список без ошибки.
func (s *relatednessService) RelatedTo(ctx context.Context, workID string, limit int) ([]dto.WorkResponse, error) {
	if limit <= 0 {
		return []dto.WorkResponse{}, nil
	}

	ranked, err := database.Query(ctx, s.guard, "work.related", func(ctx context.Context) ([]models.Work, error) {
		db := s.db.WithContext(ctx)

		source, err := s.workRepo.FindByID(db, workID)
		if err != nil {
			if errors.Is(err, repositories.ErrWorkNotFound) {
				return []models.Work{}, nil
			}
			return nil, err
		}

		candidates, err := s.workRepo.FindAllExcept(db, workID)
		if err != nil {
			return nil, err
		}
		metrics.RelatednessCandidates.Observe(float64(len(candidates)))

		return algorithms.RankRelated(source, candidates, limit), nil
	})
	if err != nil {
		return nil, err
	}

	return dto.NewWorkResponses(ranked), nil
}
