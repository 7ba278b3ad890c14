package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/jmoiron/sqlx"

	"github.com/trademart/catalog_api/internal/cache"
	"github.com/trademart/catalog_api/internal/utils"
)

// HealthHandler reports service health.
type HealthHandler struct {
	db    *sqlx.DB
	redis *cache.RedisClient
}

// NewHealthHandler constructs a HealthHandler.
func NewHealthHandler(db *sqlx.DB, redis *cache.RedisClient) *HealthHandler {
	return &HealthHandler{db: db, redis: redis}
}

// GetHealth handles GET /v1/health
func (h *HealthHandler) GetHealth(c *gin.Context) {
	ctx := c.Request.Context()

	dbStatus := "ok"
	if err := h.db.PingContext(ctx); err != nil {
		dbStatus = "unreachable"
	}

	redisStatus := "ok"
	if h.redis != nil {
		if err := h.redis.Ping(ctx); err != nil {
			redisStatus = "unreachable"
		}
	}

	if dbStatus != "ok" {
		utils.Error(c, http.StatusServiceUnavailable, "UNHEALTHY", "Database unreachable")
		return
	}

	utils.Success(c, http.StatusOK, "Health check", gin.H{
		"database": dbStatus,
		"redis":    redisStatus,
	})
}
