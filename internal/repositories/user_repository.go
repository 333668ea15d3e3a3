package repositories

import (
	"errors"

	"gorm.io/gorm"

	"museworks_backend/internal/models"
)

var ErrUserNotFound = errors.New("user not found")

// UserRepository - чтение пользователей. Профили и регистрация вне ядра,
// здесь только то, что нужно для ролей, имен рецензентов и уведомлений.
type UserRepository interface {
	FindByID(db *gorm.DB, id string) (*models.User, error)
	Create(db *gorm.DB, user *models.User) error
	CountByRole(db *gorm.DB, role models.UserRole) (int64, error)
}

type UserRepositoryImpl struct{}

func NewUserRepository() UserRepository {
	return &UserRepositoryImpl{}
}

func (r *UserRepositoryImpl) FindByID(db *gorm.DB, id string) (*models.User, error) {
	var user models.User
	err := db.Where("id = ?", id).First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return &user, nil
}

func (r *UserRepositoryImpl) Create(db *gorm.DB, user *models.User) error {
	return db.Create(user).Error
}

func (r *UserRepositoryImpl) CountByRole(db *gorm.DB, role models.UserRole) (int64, error) {
	var count int64
	err := db.Model(&models.User{}).Where("role = ?", role).Count(&count).Error
	return count, err
}
