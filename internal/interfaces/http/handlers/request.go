package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/clubsaas/clubsaas/internal/shared/errors"
	"github.com/clubsaas/clubsaas/internal/shared/logger"
	"github.com/clubsaas/clubsaas/internal/shared/utils"
)

const reasonInvalidPayload = "invalid_payload"

// bindJSON answers 400 invalid_payload and returns false when the body does
// not decode or fails its binding tags.
func bindJSON(c *gin.Context, log logger.Interface, req any) bool {
	if err := c.ShouldBindJSON(req); err != nil {
		log.Warnw("invalid request body", "path", c.Request.URL.Path, "error", err)
		utils.ErrorResponseWithError(c, errors.NewValidationError("invalid request body", err.Error()).WithReason(reasonInvalidPayload))
		return false
	}
	return true
}
