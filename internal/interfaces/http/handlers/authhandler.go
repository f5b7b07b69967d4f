package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/clubsaas/clubsaas/internal/application/user/usecases"
	"github.com/clubsaas/clubsaas/internal/shared/logger"
	"github.com/clubsaas/clubsaas/internal/shared/utils"
)

type AuthHandler struct {
	loginUC loginUseCase
	logger  logger.Interface
}

func NewAuthHandler(loginUC loginUseCase, logger logger.Interface) *AuthHandler {
	return &AuthHandler{
		loginUC: loginUC,
		logger:  logger,
	}
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=6"`
}

func (h *AuthHandler) Login(c *gin.Context) {
	var req LoginRequest
	if !bindJSON(c, h.logger, &req) {
		return
	}

	result, err := h.loginUC.Execute(c.Request.Context(), usecases.LoginCommand{
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Login successful", result)
}
