package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	pkgerrors "github.com/danakita/danakita/internal/pkg/errors"
	"github.com/danakita/danakita/internal/pkg/models"
	"github.com/danakita/danakita/internal/utils"
)

// CreateDonation handles donation creation requests
func (h *PaymentHandler) CreateDonation(c echo.Context) error {
	var req models.DonationRequest
	if err := c.Bind(&req); err != nil {
		return utils.BadRequestResponse(c, "Invalid request payload")
	}

	resp, err := h.paymentUC.CreateDonation(c.Request().Context(), &req)
	if err != nil {
		if pkgerrors.IsValidation(err) {
			return utils.BadRequestResponse(c, err.Error())
		}
		if pkgerrors.IsGateway(err) {
			return utils.ErrorResponseHandler(c, http.StatusBadGateway, err.Error())
		}
		return utils.InternalServerErrorResponse(c, err.Error())
	}

	return utils.SuccessResponse(c, http.StatusCreated, "Donation created successfully", resp)
}

// GetStatus handles transaction status queries. The response shape is flat so
// the reconciliation poller can consume it directly.
func (h *PaymentHandler) GetStatus(c echo.Context) error {
	id := c.Param("id")

	resp, err := h.paymentUC.GetStatus(c.Request().Context(), id)
	if err != nil {
		if pkgerrors.Is(err, pkgerrors.ErrNotFound) {
			return utils.NotFoundResponse(c, "Transaction not found")
		}
		return utils.InternalServerErrorResponse(c, err.Error())
	}

	return c.JSON(http.StatusOK, resp)
}
