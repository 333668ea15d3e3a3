package handlers

import (
	"errors"
	"strconv"
	"time"

	"museworks_backend/internal/logger"
	"museworks_backend/internal/middleware"
	"museworks_backend/internal/validator"
	"museworks_backend/pkg/apperrors"

	"github.com/gin-gonic/gin"
)

// ============================================================================
// 1. Базовая структура обработчика
// ============================================================================

type BaseHandler struct {
	validator *validator.Validator
}

func NewBaseHandler(v *validator.Validator) *BaseHandler {
	return &BaseHandler{
		validator: v,
	}
}

// ============================================================================
// 2. Методы привязки и валидации (с контекстным логгированием)
// ============================================================================

func (h *BaseHandler) BindAndValidate_JSON(c *gin.Context, obj interface{}) bool {
	ctx := c.Request.Context()

	if err := c.ShouldBindJSON(obj); err != nil {
		logger.CtxWithError(ctx, "Failed to bind JSON body", err, "path", c.Request.URL.Path)
		apperrors.HandleError(c, apperrors.NewBadRequestError("Invalid request body: "+err.Error()))
		return false
	}

	return h.validate(c, obj)
}

func (h *BaseHandler) BindAndValidate_Query(c *gin.Context, obj interface{}) bool {
	ctx := c.Request.Context()

	if err := c.ShouldBindQuery(obj); err != nil {
		logger.CtxWithError(ctx, "Failed to bind query params", err, "path", c.Request.URL.Path)
		apperrors.HandleError(c, apperrors.NewBadRequestError("Invalid query parameters: "+err.Error()))
		return false
	}

	return h.validate(c, obj)
}

func (h *BaseHandler) validate(c *gin.Context, obj interface{}) bool {
	ctx := c.Request.Context()

	if err := h.validator.Validate(obj); err != nil {
		var vErr *validator.ValidationError
		if errors.As(err, &vErr) {
			logger.CtxWarn(ctx, "Validation failed", "errors", vErr.Errors, "path", c.Request.URL.Path)
			apperrors.HandleError(c, apperrors.ValidationError(vErr.Errors))
		} else {
			logger.CtxWithError(ctx, "Internal validator error", err, "path", c.Request.URL.Path)
			apperrors.HandleError(c, apperrors.InternalError(err))
		}
		return false
	}
	return true
}

// ============================================================================
// 3. Обработчики ошибок (с контекстным логгированием)
// ============================================================================

func (h *BaseHandler) HandleServiceError(c *gin.Context, err error) {
	ctx := c.Request.Context()

	var appErr *apperrors.AppError
	if apperrors.As(err, &appErr) {
		logger.CtxWarn(ctx, "Service error",
			"code", appErr.Code,
			"error", appErr.Message,
			"details", appErr.Details,
			"path", c.Request.URL.Path,
		)
		apperrors.HandleError(c, appErr)
	} else {
		logger.CtxWithError(ctx, "Internal server error", err, "path", c.Request.URL.Path)
		apperrors.HandleError(c, apperrors.InternalError(err))
	}
}

// ============================================================================
// 4. Вспомогательные функции
// ============================================================================

func (h *BaseHandler) GetAndAuthorizeUserID(c *gin.Context) (string, bool) {
	ctx := c.Request.Context()

	userID := middleware.GetUserID(c)
	if userID == "" {
		logger.CtxWarn(ctx, "Unauthorized access: userID not found in context",
			"path", c.Request.URL.Path,
			"ip", c.ClientIP(),
		)
		apperrors.HandleError(c, apperrors.NewUnauthorizedError("User not authenticated"))
		return "", false
	}

	return userID, true
}

// ============================================================================
// 5. Функции парсинга
// ============================================================================

// ParseQueryInt возвращает defaultValue, если параметр не передан,
// и invalid, если передано не целое число.
func ParseQueryInt(c *gin.Context, key string, defaultValue int, invalid *apperrors.AppError) (int, error) {
	valueStr := c.Query(key)
	if valueStr == "" {
		return defaultValue, nil
	}
	value, err := strconv.Atoi(valueStr)
	if err != nil {
		return 0, invalid
	}
	return value, nil
}

// ParsePagination читает page и pageSize. Диапазоны проверяет сервис.
func ParsePagination(c *gin.Context) (page int, pageSize int, err error) {
	const defaultPage = 1
	const defaultPageSize = 20

	page, err = ParseQueryInt(c, "page", defaultPage, apperrors.ErrInvalidPage)
	if err != nil {
		return 0, 0, err
	}
	pageSize, err = ParseQueryInt(c, "pageSize", defaultPageSize, apperrors.ErrInvalidPageSize)
	if err != nil {
		return 0, 0, err
	}
	return page, pageSize, nil
}

// ParseQueryTime разбирает необязательный параметр в формате RFC3339
func ParseQueryTime(c *gin.Context, key string) (*time.Time, error) {
	valueStr := c.Query(key)
	if valueStr == "" {
		return nil, nil
	}
	t, err := time.Parse(time.RFC3339, valueStr)
	if err != nil {
		return nil, apperrors.NewBadRequestError("Invalid " + key + " format. Use RFC3339 (YYYY-MM-DDTHH:MM:SSZ)")
	}
	return &t, nil
}

// ParseQueryTimeRange разбирает пару from/to и проверяет, что from не позже to
func ParseQueryTimeRange(c *gin.Context, fromKey, toKey string) (*time.Time, *time.Time, error) {
	from, err := ParseQueryTime(c, fromKey)
	if err != nil {
		return nil, nil, err
	}
	to, err := ParseQueryTime(c, toKey)
	if err != nil {
		return nil, nil, err
	}
	if from != nil && to != nil && from.After(*to) {
		return nil, nil, apperrors.NewBadRequestError(fromKey + " cannot be after " + toKey)
	}
	return from, to, nil
}
