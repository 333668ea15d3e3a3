package repositories

import (
	"errors"
	"strings"
	"time"

	"gorm.io/gorm"

	"museworks_backend/internal/models"
)

var ErrCollectionNotFound = errors.New("collection not found")

// CollectionSearchCriteria - фильтры поиска коллекций. Пустые поля не фильтруют.
type CollectionSearchCriteria struct {
	Keyword      string
	Status       models.CollectionStatus
	MuseumID     string
	MinPrize     *float64
	MaxPrize     *float64
	DeadlineFrom *time.Time
	DeadlineTo   *time.Time
}

type CollectionRepository interface {
	FindByID(db *gorm.DB, id string) (*models.Collection, error)
	Exists(db *gorm.DB, id string) (bool, error)
	Search(db *gorm.DB, criteria CollectionSearchCriteria, page, pageSize int) ([]models.Collection, int64, error)
	CloseExpired(db *gorm.DB, now time.Time) (int64, error)
}

type CollectionRepositoryImpl struct{}

func NewCollectionRepository() CollectionRepository {
	return &CollectionRepositoryImpl{}
}

func (r *CollectionRepositoryImpl) FindByID(db *gorm.DB, id string) (*models.Collection, error) {
	var collection models.Collection
	err := db.Where("id = ?", id).First(&collection).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCollectionNotFound
		}
		return nil, err
	}
	return &collection, nil
}

func (r *CollectionRepositoryImpl) Exists(db *gorm.DB, id string) (bool, error) {
	var count int64
	err := db.Model(&models.Collection{}).Where("id = ?", id).Count(&count).Error
	return count > 0, err
}

func (r *CollectionRepositoryImpl) Search(db *gorm.DB, criteria CollectionSearchCriteria, page, pageSize int) ([]models.Collection, int64, error) {
	query := db.Model(&models.Collection{})

	if criteria.Keyword != "" {
		pattern := "%" + strings.ToLower(criteria.Keyword) + "%"
		query = query.Where("(LOWER(title) LIKE ? OR LOWER(COALESCE(description, '')) LIKE ?)", pattern, pattern)
	}
	if criteria.Status != "" {
		query = query.Where("status = ?", criteria.Status)
	}
	if criteria.MuseumID != "" {
		query = query.Where("museum_id = ?", criteria.MuseumID)
	}
	if criteria.MinPrize != nil {
		query = query.Where("prize >= ?", *criteria.MinPrize)
	}
	if criteria.MaxPrize != nil {
		query = query.Where("prize <= ?", *criteria.MaxPrize)
	}
	if criteria.DeadlineFrom != nil {
		query = query.Where("deadline >= ?", *criteria.DeadlineFrom)
	}
	if criteria.DeadlineTo != nil {
		query = query.Where("deadline <= ?", *criteria.DeadlineTo)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var collections []models.Collection
	offset := (page - 1) * pageSize
	err := query.Order("created_at DESC, id ASC").
		Offset(offset).
		Limit(pageSize).
		Find(&collections).Error

	return collections, total, err
}

// CloseExpired закрывает активные коллекции с прошедшим дедлайном
func (r *CollectionRepositoryImpl) CloseExpired(db *gorm.DB, now time.Time) (int64, error) {
	result := db.Model(&models.Collection{}).
		Where("status = ? AND deadline IS NOT NULL AND deadline < ?", models.CollectionStatusActive, now).
		Updates(map[string]interface{}{
			"status":     models.CollectionStatusClosed,
			"updated_at": now,
		})
	return result.RowsAffected, result.Error
}
