package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/clubsaas/clubsaas/internal/application/subscription/usecases"
	"github.com/clubsaas/clubsaas/internal/shared/logger"
	"github.com/clubsaas/clubsaas/internal/shared/utils"
)

type PlanHandler struct {
	createPlanUC createPlanUseCase
	listPlansUC  listPlansUseCase
	logger       logger.Interface
}

func NewPlanHandler(createPlanUC createPlanUseCase, listPlansUC listPlansUseCase, logger logger.Interface) *PlanHandler {
	return &PlanHandler{
		createPlanUC: createPlanUC,
		listPlansUC:  listPlansUC,
		logger:       logger,
	}
}

type CreatePlanRequest struct {
	Name       string `json:"name" binding:"required,min=2,max=120"`
	Interval   string `json:"interval" binding:"required,oneof=monthly yearly"`
	PriceCents int64  `json:"priceCents" binding:"required,gt=0"`
}

func (h *PlanHandler) CreatePlan(c *gin.Context) {
	var req CreatePlanRequest
	if !bindJSON(c, h.logger, &req) {
		return
	}

	result, err := h.createPlanUC.Execute(c.Request.Context(), usecases.CreatePlanCommand{
		Name:       req.Name,
		Interval:   req.Interval,
		PriceCents: req.PriceCents,
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.CreatedResponse(c, result, "Plan created successfully")
}

// ListPlans returns every plan to operators.
func (h *PlanHandler) ListPlans(c *gin.Context) {
	h.list(c, false)
}

// ListPublicPlans returns the plans offered at signup.
func (h *PlanHandler) ListPublicPlans(c *gin.Context) {
	h.list(c, true)
}

func (h *PlanHandler) list(c *gin.Context, activeOnly bool) {
	result, err := h.listPlansUC.Execute(c.Request.Context(), activeOnly)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "", result)
}
