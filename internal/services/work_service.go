package services

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"museworks_backend/database"
	"museworks_backend/internal/repositories"
	"museworks_backend/internal/services/dto"
)

type WorkService interface {
	GetWork(ctx context.Context, workID string) (*dto.WorkDetailResponse, error)
}

type workService struct {
	db             *gorm.DB
	guard          *database.Guard
	workRepo       repositories.WorkRepository
	collectionRepo repositories.CollectionRepository
	userRepo       repositories.UserRepository
}

func NewWorkService(
	db *gorm.DB,
	guard *database.Guard,
	workRepo repositories.WorkRepository,
	collectionRepo repositories.CollectionRepository,
	userRepo repositories.UserRepository,
) WorkService {
	return &workService{
		db:             db,
		guard:          guard,
		workRepo:       workRepo,
		collectionRepo: collectionRepo,
		userRepo:       userRepo,
	}
}

// GetWork возвращает работу с названием коллекции и именем дизайнера.
// Отсутствующие коллекция или дизайнер не считаются ошибкой.
func (s *workService) GetWork(ctx context.Context, workID string) (*dto.WorkDetailResponse, error) {
	return database.Query(ctx, s.guard, "work.get", func(ctx context.Context) (*dto.WorkDetailResponse, error) {
		db := s.db.WithContext(ctx)

		work, err := s.workRepo.FindByID(db, workID)
		if err != nil {
			return nil, mapWorkNotFound(err)
		}
		resp := &dto.WorkDetailResponse{WorkResponse: dto.NewWorkResponse(work)}

		collection, err := s.collectionRepo.FindByID(db, work.CollectionID)
		switch {
		case err == nil:
			resp.CollectionTitle = collection.Title
		case !errors.Is(err, repositories.ErrCollectionNotFound):
			return nil, err
		}

		designer, err := s.userRepo.FindByID(db, work.DesignerID)
		switch {
		case err == nil:
			resp.DesignerName = designer.DisplayName
		case !errors.Is(err, repositories.ErrUserNotFound):
			return nil, err
		}

		return resp, nil
	})
}
