package handler

import (
	"io"
	"net/http"

	"github.com/labstack/echo/v4"

	pkgerrors "github.com/danakita/danakita/internal/pkg/errors"
	"github.com/danakita/danakita/internal/utils"
)

// signatureHeaders maps each gateway to the header its signature travels in
var signatureHeaders = map[string]string{
	"midtrans": "X-Midtrans-Signature",
	"xendit":   "X-Callback-Token",
	"doku":     "X-Doku-Signature",
}

// HandleWebhook handles asynchronous gateway callbacks. Stale and duplicate
// deliveries are acknowledged with 200 so gateways do not retry them; only
// signature failures are rejected with an auth error.
func (h *PaymentHandler) HandleWebhook(c echo.Context) error {
	gateway := c.Param("gateway")

	header, ok := signatureHeaders[gateway]
	if !ok {
		return utils.BadRequestResponse(c, "Unknown payment gateway")
	}
	signature := c.Request().Header.Get(header)

	payload, err := io.ReadAll(c.Request().Body)
	if err != nil {
		return utils.BadRequestResponse(c, "Failed to read request body")
	}

	ack, err := h.paymentUC.IngestWebhook(c.Request().Context(), gateway, payload, signature)
	if err != nil {
		switch {
		case pkgerrors.Is(err, pkgerrors.ErrSignatureInvalid):
			return utils.UnauthorizedResponse(c, "Invalid webhook signature")
		case pkgerrors.Is(err, pkgerrors.ErrUnknownGateway):
			return utils.BadRequestResponse(c, "Unknown payment gateway")
		case pkgerrors.Is(err, pkgerrors.ErrNotFound):
			return utils.NotFoundResponse(c, "Transaction not found")
		case pkgerrors.IsValidation(err):
			return utils.BadRequestResponse(c, err.Error())
		default:
			return utils.InternalServerErrorResponse(c, err.Error())
		}
	}

	return utils.SuccessResponse(c, http.StatusOK, "Webhook processed", ack)
}
