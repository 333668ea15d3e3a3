package handlers

import (
	"net/http"

	"museworks_backend/internal/models"
	"museworks_backend/internal/services"
	"museworks_backend/internal/services/dto"

	"github.com/gin-gonic/gin"
)

type RatingHandler struct {
	*BaseHandler
	ratingService services.RatingService
}

func NewRatingHandler(base *BaseHandler, ratingService services.RatingService) *RatingHandler {
	return &RatingHandler{
		BaseHandler:   base,
		ratingService: ratingService,
	}
}

func (h *RatingHandler) RegisterRoutes(r *gin.RouterGroup, authMiddleware gin.HandlerFunc) {
	// Public routes
	public := r.Group("/ratings")
	{
		public.GET("/:targetType/:targetId", h.GetRatingsForTarget)
		public.GET("/:targetType/:targetId/summary", h.GetRatingSummary)
	}

	// Protected routes
	ratings := r.Group("/ratings")
	ratings.Use(authMiddleware)
	{
		ratings.POST("", h.UpsertRating)
		ratings.DELETE("/:ratingId", h.DeleteRating)
	}
}

// UpsertRating - повторная оценка того же объекта перезаписывает score
func (h *RatingHandler) UpsertRating(c *gin.Context) {
	raterID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	var req dto.UpsertRatingRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	rating, err := h.ratingService.UpsertRating(c.Request.Context(), raterID, &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, rating)
}

func (h *RatingHandler) GetRatingsForTarget(c *gin.Context) {
	targetType := models.TargetType(c.Param("targetType"))
	targetID := c.Param("targetId")

	ratings, err := h.ratingService.GetRatingsForTarget(c.Request.Context(), targetType, targetID)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, ratings)
}

func (h *RatingHandler) GetRatingSummary(c *gin.Context) {
	targetType := models.TargetType(c.Param("targetType"))
	targetID := c.Param("targetId")

	summary, err := h.ratingService.GetRatingSummary(c.Request.Context(), targetType, targetID)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, summary)
}

func (h *RatingHandler) DeleteRating(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	if err := h.ratingService.DeleteRating(c.Request.Context(), c.Param("ratingId"), userID); err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}
