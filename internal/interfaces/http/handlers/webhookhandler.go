package handlers

import (
	stderrors "errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	paymentUsecases "github.com/clubsaas/clubsaas/internal/application/payment/usecases"
	"github.com/clubsaas/clubsaas/internal/shared/constants"
	"github.com/clubsaas/clubsaas/internal/shared/errors"
	"github.com/clubsaas/clubsaas/internal/shared/logger"
)

const maxWebhookBodyBytes = 1 << 20

// PaymentWebhookHandler answers provider notifications. Every response is
// {"ok": bool, "error"?: string} so the provider can tell acknowledged skips
// from rejections.
type PaymentWebhookHandler struct {
	webhookUC paymentWebhookUseCase
	logger    logger.Interface
}

func NewPaymentWebhookHandler(webhookUC paymentWebhookUseCase, logger logger.Interface) *PaymentWebhookHandler {
	return &PaymentWebhookHandler{
		webhookUC: webhookUC,
		logger:    logger,
	}
}

type webhookResponse struct {
	OK    bool   `json:"ok"`
	Error string `json:"error,omitempty"`
}

func (h *PaymentWebhookHandler) HandlePayment(c *gin.Context) {
	body, err := io.ReadAll(http.MaxBytesReader(c.Writer, c.Request.Body, maxWebhookBodyBytes))
	if err != nil {
		var tooLarge *http.MaxBytesError
		status := http.StatusBadRequest
		if stderrors.As(err, &tooLarge) {
			status = http.StatusRequestEntityTooLarge
		}
		h.logger.Warnw("failed to read webhook body", "error", err)
		c.JSON(status, webhookResponse{Error: reasonInvalidPayload})
		return
	}

	result, err := h.webhookUC.Execute(c.Request.Context(), paymentUsecases.WebhookRequest{
		SecretHeader:    c.GetHeader(constants.HeaderWebhookSecret),
		SignatureHeader: c.GetHeader(constants.HeaderWebhookSignature),
		Query:           c.Request.URL.Query(),
		Body:            body,
	})
	if err != nil {
		if appErr := errors.GetAppError(err); appErr != nil && appErr.Reason != "" {
			c.JSON(appErr.Code, webhookResponse{Error: appErr.Reason})
			return
		}
		h.logger.Errorw("webhook processing failed", "error", err)
		c.JSON(http.StatusInternalServerError, webhookResponse{Error: "internal_error"})
		return
	}

	c.JSON(http.StatusOK, webhookResponse{OK: result.OK, Error: result.Error})
}
