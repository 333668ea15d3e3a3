package services

import (
	"context"

	"gorm.io/gorm"

	"museworks_backend/database"
	"museworks_backend/internal/models"
	"museworks_backend/internal/repositories"
	"museworks_backend/internal/services/dto"
	"museworks_backend/pkg/apperrors"
)

const (
	DefaultPageSize = 20
	MaxPageSize     = 100
)

type SearchService interface {
	SearchWorks(ctx context.Context, req *dto.SearchWorksRequest) (*dto.PaginatedResponse[dto.WorkResponse], error)
	SearchCollections(ctx context.Context, req *dto.SearchCollectionsRequest) (*dto.PaginatedResponse[dto.CollectionResponse], error)
}

type searchService struct {
	db             *gorm.DB
	guard          *database.Guard
	workRepo       repositories.WorkRepository
	collectionRepo repositories.CollectionRepository
}

func NewSearchService(
	db *gorm.DB,
	guard *database.Guard,
	workRepo repositories.WorkRepository,
	collectionRepo repositories.CollectionRepository,
) SearchService {
	return &searchService{
		db:             db,
		guard:          guard,
		workRepo:       workRepo,
		collectionRepo: collectionRepo,
	}
}

func (s *searchService) SearchWorks(ctx context.Context, req *dto.SearchWorksRequest) (*dto.PaginatedResponse[dto.WorkResponse], error) {
	if err := validatePage(req.Page, req.PageSize); err != nil {
		return nil, err
	}
	status := models.WorkStatus(req.Status)
	if status != "" && !status.IsValid() {
		return nil, apperrors.ErrInvalidInput("search", "Unknown work status: "+req.Status)
	}

	criteria := repositories.WorkSearchCriteria{
		Keyword:       req.Query,
		Status:        status,
		CollectionID:  req.CollectionID,
		DesignerID:    req.DesignerID,
		MuseumID:      req.MuseumID,
		CreatedAfter:  req.CreatedFrom,
		CreatedBefore: req.CreatedTo,
	}

	type page struct {
		works []models.Work
		total int64
	}
	res, err := database.Query(ctx, s.guard, "work.search", func(ctx context.Context) (page, error) {
		works, total, err := s.workRepo.Search(s.db.WithContext(ctx), criteria, req.Page, req.PageSize)
		return page{works: works, total: total}, err
	})
	if err != nil {
		return nil, err
	}

	return buildPaginatedResponse(dto.NewWorkResponses(res.works), res.total, req.Page, req.PageSize), nil
}

func (s *searchService) SearchCollections(ctx context.Context, req *dto.SearchCollectionsRequest) (*dto.PaginatedResponse[dto.CollectionResponse], error) {
	if err := validatePage(req.Page, req.PageSize); err != nil {
		return nil, err
	}
	status := models.CollectionStatus(req.Status)
	if status != "" && !status.IsValid() {
		return nil, apperrors.ErrInvalidInput("search", "Unknown collection status: "+req.Status)
	}
	if req.MinPrize != nil && req.MaxPrize != nil && *req.MinPrize > *req.MaxPrize {
		return nil, apperrors.ErrInvalidInput("search", "minPrize cannot be greater than maxPrize")
	}

	criteria := repositories.CollectionSearchCriteria{
		Keyword:      req.Query,
		Status:       status,
		MuseumID:     req.MuseumID,
		MinPrize:     req.MinPrize,
		MaxPrize:     req.MaxPrize,
		DeadlineFrom: req.DeadlineFrom,
		DeadlineTo:   req.DeadlineTo,
	}

	type page struct {
		collections []models.Collection
		total       int64
	}
	res, err := database.Query(ctx, s.guard, "collection.search", func(ctx context.Context) (page, error) {
		collections, total, err := s.collectionRepo.Search(s.db.WithContext(ctx), criteria, req.Page, req.PageSize)
		return page{collections: collections, total: total}, err
	})
	if err != nil {
		return nil, err
	}

	items := make([]dto.CollectionResponse, 0, len(res.collections))
	for i := range res.collections {
		items = append(items, dto.NewCollectionResponse(&res.collections[i]))
	}
	return buildPaginatedResponse(items, res.total, req.Page, req.PageSize), nil
}

func validatePage(page, pageSize int) error {
	if page < 1 {
		return apperrors.ErrInvalidPage
	}
	if pageSize < 1 || pageSize > MaxPageSize {
		return apperrors.ErrInvalidPageSize
	}
	return nil
}

func buildPaginatedResponse[T any](items []T, total int64, page, pageSize int) *dto.PaginatedResponse[T] {
	totalPages := int((total + int64(pageSize) - 1) / int64(pageSize))
	return &dto.PaginatedResponse[T]{
		Items:      items,
		Total:      total,
		Page:       page,
		PageSize:   pageSize,
		TotalPages: totalPages,
		HasMore:    page < totalPages,
	}
}
