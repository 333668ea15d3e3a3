package handlers

import (
	"net/http"

	"museworks_backend/internal/services"
	"museworks_backend/internal/services/dto"

	"github.com/gin-gonic/gin"
)

type SearchHandler struct {
	*BaseHandler
	searchService services.SearchService
}

func NewSearchHandler(base *BaseHandler, searchService services.SearchService) *SearchHandler {
	return &SearchHandler{
		BaseHandler:   base,
		searchService: searchService,
	}
}

func (h *SearchHandler) RegisterRoutes(r *gin.RouterGroup) {
	search := r.Group("/search")
	{
		search.GET("/works", h.SearchWorks)
		search.GET("/collections", h.SearchCollections)
	}
}

func (h *SearchHandler) SearchWorks(c *gin.Context) {
	var req dto.SearchWorksRequest
	if !h.BindAndValidate_Query(c, &req) {
		return
	}

	var err error
	if req.Page, req.PageSize, err = ParsePagination(c); err != nil {
		h.HandleServiceError(c, err)
		return
	}
	if req.CreatedFrom, req.CreatedTo, err = ParseQueryTimeRange(c, "createdFrom", "createdTo"); err != nil {
		h.HandleServiceError(c, err)
		return
	}

	result, err := h.searchService.SearchWorks(c.Request.Context(), &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

func (h *SearchHandler) SearchCollections(c *gin.Context) {
	var req dto.SearchCollectionsRequest
	if !h.BindAndValidate_Query(c, &req) {
		return
	}

	var err error
	if req.Page, req.PageSize, err = ParsePagination(c); err != nil {
		h.HandleServiceError(c, err)
		return
	}
	if req.DeadlineFrom, req.DeadlineTo, err = ParseQueryTimeRange(c, "deadlineFrom", "deadlineTo"); err != nil {
		h.HandleServiceError(c, err)
		return
	}

	result, err := h.searchService.SearchCollections(c.Request.Context(), &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}
