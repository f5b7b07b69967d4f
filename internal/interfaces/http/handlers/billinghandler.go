package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/clubsaas/clubsaas/internal/interfaces/http/middleware"
	"github.com/clubsaas/clubsaas/internal/shared/logger"
	"github.com/clubsaas/clubsaas/internal/shared/utils"
)

// BillingHandler serves tenant billing status and the operator dashboard.
// Billing status sits outside the access gate so a blocked tenant can see
// why it is blocked.
type BillingHandler struct {
	billingStatusUC getBillingStatusUseCase
	dashboardUC     getDashboardUseCase
	logger          logger.Interface
}

func NewBillingHandler(billingStatusUC getBillingStatusUseCase, dashboardUC getDashboardUseCase, logger logger.Interface) *BillingHandler {
	return &BillingHandler{
		billingStatusUC: billingStatusUC,
		dashboardUC:     dashboardUC,
		logger:          logger,
	}
}

// Status handles GET /api/billing/status.
func (h *BillingHandler) Status(c *gin.Context) {
	result, err := h.billingStatusUC.Execute(c.Request.Context(), middleware.TenantIDFromContext(c))
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "", result)
}

// Dashboard handles GET /api/saas/dashboard.
func (h *BillingHandler) Dashboard(c *gin.Context) {
	result, err := h.dashboardUC.Execute(c.Request.Context())
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "", result)
}
