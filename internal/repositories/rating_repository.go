package repositories

import (
	"errors"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"museworks_backend/internal/models"
)

var ErrRatingNotFound = errors.New("rating not found")

type RatingRepository interface {
	Upsert(db *gorm.DB, rating *models.Rating) (*models.Rating, error)
	FindByID(db *gorm.DB, id string) (*models.Rating, error)
	FindByTarget(db *gorm.DB, targetType models.TargetType, targetID string) ([]models.Rating, error)
	Average(db *gorm.DB, targetType models.TargetType, targetID string) (float64, error)
	Count(db *gorm.DB, targetType models.TargetType, targetID string) (int64, error)
	Distribution(db *gorm.DB, targetType models.TargetType, targetID string) (map[int]int64, error)
	Delete(db *gorm.DB, id string) error
}

type RatingRepositoryImpl struct{}

func NewRatingRepository() RatingRepository {
	return &RatingRepositoryImpl{}
}

// Upsert вставляет оценку или перезаписывает score существующей строки
// с тем же (rater_id, target_type, target_id). Возвращает итоговую строку.
func (r *RatingRepositoryImpl) Upsert(db *gorm.DB, rating *models.Rating) (*models.Rating, error) {
	now := time.Now().UTC()
	err := db.Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "rater_id"}, {Name: "target_type"}, {Name: "target_id"}},
		DoUpdates: clause.Assignments(map[string]interface{}{
			"score":      rating.Score,
			"updated_at": now,
		}),
	}).Create(rating).Error
	if err != nil {
		return nil, err
	}

	// При конфликте ID в rating не соответствует строке в БД, перечитываем по ключу
	var stored models.Rating
	err = db.Where("rater_id = ? AND target_type = ? AND target_id = ?",
		rating.RaterID, rating.TargetType, rating.TargetID).
		First(&stored).Error
	if err != nil {
		return nil, err
	}
	return &stored, nil
}

func (r *RatingRepositoryImpl) FindByID(db *gorm.DB, id string) (*models.Rating, error) {
	var rating models.Rating
	err := db.Where("id = ?", id).First(&rating).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrRatingNotFound
		}
		return nil, err
	}
	return &rating, nil
}

func (r *RatingRepositoryImpl) FindByTarget(db *gorm.DB, targetType models.TargetType, targetID string) ([]models.Rating, error) {
	ratings := []models.Rating{}
	err := db.Where("target_type = ? AND target_id = ?", targetType, targetID).Find(&ratings).Error
	return ratings, err
}

func (r *RatingRepositoryImpl) Average(db *gorm.DB, targetType models.TargetType, targetID string) (float64, error) {
	var avg float64
	err := db.Model(&models.Rating{}).
		Where("target_type = ? AND target_id = ?", targetType, targetID).
		Select("COALESCE(AVG(score), 0)").
		Scan(&avg).Error
	return avg, err
}

func (r *RatingRepositoryImpl) Count(db *gorm.DB, targetType models.TargetType, targetID string) (int64, error) {
	var count int64
	err := db.Model(&models.Rating{}).
		Where("target_type = ? AND target_id = ?", targetType, targetID).
		Count(&count).Error
	return count, err
}

// Distribution возвращает количество оценок по каждому значению 1..5
func (r *RatingRepositoryImpl) Distribution(db *gorm.DB, targetType models.TargetType, targetID string) (map[int]int64, error) {
	var rows []struct {
		Score int
		Count int64
	}
	err := db.Model(&models.Rating{}).
		Where("target_type = ? AND target_id = ?", targetType, targetID).
		Select("score, COUNT(*) AS count").
		Group("score").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	dist := map[int]int64{1: 0, 2: 0, 3: 0, 4: 0, 5: 0}
	for _, row := range rows {
		dist[row.Score] = row.Count
	}
	return dist, nil
}

func (r *RatingRepositoryImpl) Delete(db *gorm.DB, id string) error {
	result := db.Where("id = ?", id).Delete(&models.Rating{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrRatingNotFound
	}
	return nil
}
