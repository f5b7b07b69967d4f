package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/clubsaas/clubsaas/internal/shared/biztime"
)

type HealthHandler struct {
	now biztime.Clock
}

func NewHealthHandler() *HealthHandler {
	return &HealthHandler{now: biztime.NowUTC}
}

func (h *HealthHandler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"ok":   true,
		"time": h.now().Format(time.RFC3339),
	})
}
