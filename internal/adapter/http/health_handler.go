package http

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

// Pinger checks one dependency.
type Pinger func(ctx context.Context) error

type HealthHandler struct {
	db    Pinger
	redis Pinger
}

func NewHealthHandler(db, redis Pinger) *HealthHandler {
	return &HealthHandler{db: db, redis: redis}
}

// Check reports per-dependency reachability; 503 if either is down.
func (h *HealthHandler) Check(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
	defer cancel()

	okDB := h.db(ctx) == nil
	okRedis := h.redis(ctx) == nil

	status := http.StatusOK
	if !okDB || !okRedis {
		status = http.StatusServiceUnavailable
	}
	c.JSON(status, gin.H{"db": okDB, "redis": okRedis})
}
