package services

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"museworks_backend/database"
	"museworks_backend/internal/authz"
	"museworks_backend/internal/models"
	"museworks_backend/internal/repositories"
	"museworks_backend/pkg/apperrors"
)

// RoleResolver возвращает роль пользователя. Неизвестный пользователь - Forbidden.
type RoleResolver interface {
	RoleOf(ctx context.Context, userID string) (models.UserRole, error)
}

type roleResolver struct {
	db       *gorm.DB
	guard    *database.Guard
	userRepo repositories.UserRepository
}

func NewRoleResolver(db *gorm.DB, guard *database.Guard, userRepo repositories.UserRepository) RoleResolver {
	return &roleResolver{db: db, guard: guard, userRepo: userRepo}
}

func (r *roleResolver) RoleOf(ctx context.Context, userID string) (models.UserRole, error) {
	if userID == "" {
		return "", apperrors.ErrUnknownUser
	}
	return database.Query(ctx, r.guard, "user.role", func(ctx context.Context) (models.UserRole, error) {
		user, err := r.userRepo.FindByID(r.db.WithContext(ctx), userID)
		if err != nil {
			if errors.Is(err, repositories.ErrUserNotFound) {
				return "", apperrors.ErrUnknownUser
			}
			return "", err
		}
		return user.Role, nil
	})
}

// authorize проверяет роль пользователя по политике и возвращает forbidden, если доступа нет.
func authorize(ctx context.Context, roles RoleResolver, authorizer authz.Authorizer, userID, object, action string, forbidden *apperrors.AppError) (models.UserRole, error) {
	role, err := roles.RoleOf(ctx, userID)
	if err != nil {
		return "", err
	}
	allowed, err := authorizer.Can(role, object, action)
	if err != nil {
		return "", apperrors.InternalError(err)
	}
	if !allowed {
		return "", forbidden
	}
	return role, nil
}
