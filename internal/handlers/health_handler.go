package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"museworks_backend/database"
	"museworks_backend/internal/logger"
)

const healthPingTimeout = 2 * time.Second

type HealthHandler struct {
	db    *gorm.DB
	guard *database.Guard
}

func NewHealthHandler(db *gorm.DB, guard *database.Guard) *HealthHandler {
	return &HealthHandler{db: db, guard: guard}
}

func (h *HealthHandler) RegisterRoutes(r gin.IRoutes) {
	r.GET("/health", h.Health)
}

// Health - 503, если БД не отвечает или breaker открыт
func (h *HealthHandler) Health(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), healthPingTimeout)
	defer cancel()

	dbStatus := "up"
	if err := h.ping(ctx); err != nil {
		logger.CtxWithError(ctx, "health check: database ping failed", err)
		dbStatus = "down"
	}

	breaker := h.guard.State()
	status, code := "ok", http.StatusOK
	if dbStatus != "up" || breaker == "open" {
		status, code = "degraded", http.StatusServiceUnavailable
	}

	c.JSON(code, gin.H{
		"status":   status,
		"database": dbStatus,
		"breaker":  breaker,
	})
}

func (h *HealthHandler) ping(ctx context.Context) error {
	sqlDB, err := h.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}
