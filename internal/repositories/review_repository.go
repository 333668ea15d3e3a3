package repositories

import (
	"gorm.io/gorm"

	"museworks_backend/internal/models"
)

// ReviewRepository - журнал модерации. Только добавление и чтение:
// записи неизменяемы, методов обновления и удаления нет.
type ReviewRepository interface {
	Append(db *gorm.DB, record *models.ReviewRecord) error
	FindHistory(db *gorm.DB, workID string) ([]models.ReviewRecordView, error)
}

type ReviewRepositoryImpl struct{}

func NewReviewRepository() ReviewRepository {
	return &ReviewRepositoryImpl{}
}

func (r *ReviewRepositoryImpl) Append(db *gorm.DB, record *models.ReviewRecord) error {
	return db.Create(record).Error
}

// FindHistory - записи по работе от новых к старым, с именем рецензента
func (r *ReviewRepositoryImpl) FindHistory(db *gorm.DB, workID string) ([]models.ReviewRecordView, error) {
	history := []models.ReviewRecordView{}
	err := db.Table("review_records").
		Select("review_records.*, COALESCE(users.display_name, '') AS reviewer_name").
		Joins("LEFT JOIN users ON users.id = review_records.reviewer_id").
		Where("review_records.work_id = ?", workID).
		Order("review_records.created_at DESC, review_records.id DESC").
		Scan(&history).Error
	return history, err
}
