package handlers

import (
	"net/http"

	"museworks_backend/internal/services"
	"museworks_backend/pkg/apperrors"

	"github.com/gin-gonic/gin"
)

type WorkHandler struct {
	*BaseHandler
	workService        services.WorkService
	relatednessService services.RelatednessService
	defaultLimit       int
	maxLimit           int
}

func NewWorkHandler(base *BaseHandler, workService services.WorkService, relatednessService services.RelatednessService, defaultLimit, maxLimit int) *WorkHandler {
	return &WorkHandler{
		BaseHandler:        base,
		workService:        workService,
		relatednessService: relatednessService,
		defaultLimit:       defaultLimit,
		maxLimit:           maxLimit,
	}
}

func (h *WorkHandler) RegisterRoutes(r *gin.RouterGroup) {
	works := r.Group("/works")
	{
		works.GET("/:workId", h.GetWork)
		works.GET("/:workId/related", h.GetRelated)
	}
}

func (h *WorkHandler) GetWork(c *gin.Context) {
	work, err := h.workService.GetWork(c.Request.Context(), c.Param("workId"))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, work)
}

// GetRelated - limit по умолчанию defaultLimit, сверху ограничен maxLimit
func (h *WorkHandler) GetRelated(c *gin.Context) {
	limit, err := ParseQueryInt(c, "limit", h.defaultLimit, apperrors.ErrInvalidLimit)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	if limit > h.maxLimit {
		limit = h.maxLimit
	}

	works, err := h.relatednessService.RelatedTo(c.Request.Context(), c.Param("workId"), limit)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"works": works})
}
