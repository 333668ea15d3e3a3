package repositories

import (
	"errors"
	"strings"
	"time"

	"gorm.io/gorm"

	"museworks_backend/internal/models"
)

var ErrWorkNotFound = errors.New("work not found")

// WorkSearchCriteria - фильтры поиска работ. Пустые поля не фильтруют.
type WorkSearchCriteria struct {
	Keyword       string
	Status        models.WorkStatus
	CollectionID  string
	DesignerID    string
	MuseumID      string
	CreatedAfter  *time.Time
	CreatedBefore *time.Time
}

type WorkRepository interface {
	FindByID(db *gorm.DB, id string) (*models.Work, error)
	FindAllExcept(db *gorm.DB, id string) ([]models.Work, error)
	Exists(db *gorm.DB, id string) (bool, error)
	UpdateStatus(db *gorm.DB, id string, status models.WorkStatus) error
	Search(db *gorm.DB, criteria WorkSearchCriteria, page, pageSize int) ([]models.Work, int64, error)
}

type WorkRepositoryImpl struct{}

func NewWorkRepository() WorkRepository {
	return &WorkRepositoryImpl{}
}

func (r *WorkRepositoryImpl) FindByID(db *gorm.DB, id string) (*models.Work, error) {
	var work models.Work
	err := db.Where("id = ?", id).First(&work).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrWorkNotFound
		}
		return nil, err
	}
	return &work, nil
}

// FindAllExcept возвращает все работы, кроме указанной (кандидаты для relatedness)
func (r *WorkRepositoryImpl) FindAllExcept(db *gorm.DB, id string) ([]models.Work, error) {
	var works []models.Work
	err := db.Where("id <> ?", id).Find(&works).Error
	return works, err
}

func (r *WorkRepositoryImpl) Exists(db *gorm.DB, id string) (bool, error) {
	var count int64
	err := db.Model(&models.Work{}).Where("id = ?", id).Count(&count).Error
	return count > 0, err
}

func (r *WorkRepositoryImpl) UpdateStatus(db *gorm.DB, id string, status models.WorkStatus) error {
	result := db.Model(&models.Work{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"status":     status,
			"updated_at": time.Now().UTC(),
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrWorkNotFound
	}
	return nil
}

func (r *WorkRepositoryImpl) Search(db *gorm.DB, criteria WorkSearchCriteria, page, pageSize int) ([]models.Work, int64, error) {
	query := db.Model(&models.Work{})

	if criteria.Keyword != "" {
		pattern := "%" + strings.ToLower(criteria.Keyword) + "%"
		query = query.Where("(LOWER(works.title) LIKE ? OR LOWER(COALESCE(works.description, '')) LIKE ?)", pattern, pattern)
	}
	if criteria.Status != "" {
		query = query.Where("works.status = ?", criteria.Status)
	}
	if criteria.CollectionID != "" {
		query = query.Where("works.collection_id = ?", criteria.CollectionID)
	}
	if criteria.DesignerID != "" {
		query = query.Where("works.designer_id = ?", criteria.DesignerID)
	}
	if criteria.MuseumID != "" {
		query = query.Joins("JOIN collections ON collections.id = works.collection_id").
			Where("collections.museum_id = ?", criteria.MuseumID)
	}
	if criteria.CreatedAfter != nil {
		query = query.Where("works.created_at >= ?", *criteria.CreatedAfter)
	}
	if criteria.CreatedBefore != nil {
		query = query.Where("works.created_at <= ?", *criteria.CreatedBefore)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var works []models.Work
	offset := (page - 1) * pageSize
	err := query.Select("works.*").
		Order("works.created_at DESC, works.id ASC").
		Offset(offset).
		Limit(pageSize).
		Find(&works).Error

	return works, total, err
}
