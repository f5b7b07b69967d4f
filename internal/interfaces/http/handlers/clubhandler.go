package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	tenantUsecases "github.com/clubsaas/clubsaas/internal/application/tenant/usecases"
	"github.com/clubsaas/clubsaas/internal/interfaces/http/middleware"
	"github.com/clubsaas/clubsaas/internal/shared/logger"
	"github.com/clubsaas/clubsaas/internal/shared/utils"
)

// ClubHandler serves self-service signup, operator provisioning and the
// tenant profile.
type ClubHandler struct {
	signupUC    signupTenantUseCase
	provisionUC provisionTenantUseCase
	listUC      listTenantsUseCase
	getUC       getTenantUseCase
	logger      logger.Interface
}

func NewClubHandler(
	signupUC signupTenantUseCase,
	provisionUC provisionTenantUseCase,
	listUC listTenantsUseCase,
	getUC getTenantUseCase,
	logger logger.Interface,
) *ClubHandler {
	return &ClubHandler{
		signupUC:    signupUC,
		provisionUC: provisionUC,
		listUC:      listUC,
		getUC:       getUC,
		logger:      logger,
	}
}

type SignupClubRequest struct {
	ClubName      string `json:"clubName" binding:"required,min=2,max=120"`
	Slug          string `json:"slug" binding:"required,min=2,max=64"`
	PlanID        uint   `json:"planId" binding:"required"`
	AdminName     string `json:"adminName" binding:"required,min=2,max=120"`
	AdminEmail    string `json:"adminEmail" binding:"required,email"`
	AdminPassword string `json:"adminPassword" binding:"required,min=6,max=72"`
}

type ClubAdminRequest struct {
	Name     string `json:"name" binding:"required,min=2,max=120"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=6,max=72"`
}

type ProvisionClubRequest struct {
	Name             string           `json:"name" binding:"required,min=2,max=120"`
	Slug             string           `json:"slug" binding:"required,min=2,max=64"`
	PlanID           uint             `json:"planId" binding:"required"`
	CurrentPeriodEnd *time.Time       `json:"currentPeriodEnd" binding:"required"`
	Admin            ClubAdminRequest `json:"admin"`
}

// Signup handles POST /api/public/club-signup.
func (h *ClubHandler) Signup(c *gin.Context) {
	var req SignupClubRequest
	if !bindJSON(c, h.logger, &req) {
		return
	}

	result, err := h.signupUC.Execute(c.Request.Context(), tenantUsecases.SignupTenantCommand{
		ClubName:      req.ClubName,
		Slug:          req.Slug,
		PlanID:        req.PlanID,
		AdminName:     req.AdminName,
		AdminEmail:    req.AdminEmail,
		AdminPassword: req.AdminPassword,
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.CreatedResponse(c, result, "Club registered, complete checkout to activate")
}

// Provision handles POST /api/clubs.
func (h *ClubHandler) Provision(c *gin.Context) {
	var req ProvisionClubRequest
	if !bindJSON(c, h.logger, &req) {
		return
	}

	result, err := h.provisionUC.Execute(c.Request.Context(), tenantUsecases.ProvisionTenantCommand{
		Name:             req.Name,
		Slug:             req.Slug,
		PlanID:           req.PlanID,
		CurrentPeriodEnd: *req.CurrentPeriodEnd,
		AdminName:        req.Admin.Name,
		AdminEmail:       req.Admin.Email,
		AdminPassword:    req.Admin.Password,
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.CreatedResponse(c, result, "Club created successfully")
}

// List handles GET /api/clubs.
func (h *ClubHandler) List(c *gin.Context) {
	result, err := h.listUC.Execute(c.Request.Context())
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "", result)
}

// Profile handles GET /api/club for the caller's own tenant.
func (h *ClubHandler) Profile(c *gin.Context) {
	result, err := h.getUC.Execute(c.Request.Context(), middleware.TenantIDFromContext(c))
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "", result)
}
