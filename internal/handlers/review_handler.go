package handlers

import (
	"net/http"

	"museworks_backend/internal/models"
	"museworks_backend/internal/services"
	"museworks_backend/internal/services/dto"

	"github.com/gin-gonic/gin"
)

// ReviewHandler - модерация работ и журнал рецензий
type ReviewHandler struct {
	*BaseHandler
	moderationService services.ModerationService
	reviewService     services.ReviewService
}

func NewReviewHandler(base *BaseHandler, moderationService services.ModerationService, reviewService services.ReviewService) *ReviewHandler {
	return &ReviewHandler{
		BaseHandler:       base,
		moderationService: moderationService,
		reviewService:     reviewService,
	}
}

func (h *ReviewHandler) RegisterRoutes(r *gin.RouterGroup, authMiddleware gin.HandlerFunc) {
	r.GET("/works/:workId/reviews", h.GetHistory)

	// Права рецензента проверяет сервис по роли из БД
	works := r.Group("/works")
	works.Use(authMiddleware)
	{
		works.POST("/review-batch", h.ReviewBatch)
		works.POST("/:workId/review", h.ReviewWork)
		works.POST("/:workId/comments", h.AddComment)
	}
}

func (h *ReviewHandler) ReviewWork(c *gin.Context) {
	reviewerID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	var req dto.ReviewWorkRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	result, err := h.moderationService.ReviewOne(c.Request.Context(), c.Param("workId"), reviewerID,
		models.ReviewDecision(req.Decision), req.Comment)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

// ReviewBatch - частичный успех возвращается со статусом 200 и списком failed
func (h *ReviewHandler) ReviewBatch(c *gin.Context) {
	reviewerID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	var req dto.BatchReviewRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	result, err := h.moderationService.ReviewBatch(c.Request.Context(), req.WorkIDs, reviewerID,
		models.ReviewDecision(req.Decision), req.Comment)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

func (h *ReviewHandler) AddComment(c *gin.Context) {
	reviewerID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	var req dto.AddCommentRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	record, err := h.moderationService.AddComment(c.Request.Context(), c.Param("workId"), reviewerID, req.Comment)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, record)
}

func (h *ReviewHandler) GetHistory(c *gin.Context) {
	history, err := h.reviewService.History(c.Request.Context(), c.Param("workId"))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"reviews": history})
}
