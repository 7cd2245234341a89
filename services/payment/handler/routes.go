package handler

import (
	"github.com/labstack/echo/v4"

	"github.com/danakita/danakita/services/payment"
)

// PaymentHandler handles HTTP requests for donation payments
type PaymentHandler struct {
	paymentUC payment.PaymentUC
}

// NewPaymentHandler creates a new payment handler
func NewPaymentHandler(paymentUC payment.PaymentUC) *PaymentHandler {
	return &PaymentHandler{
		paymentUC: paymentUC,
	}
}

// RegisterRoutes registers the donation payment routes
func (h *PaymentHandler) RegisterRoutes(e *echo.Echo) {
	g := e.Group("/api/v1/donations")

	g.POST("", h.CreateDonation)
	g.GET("/:id/status", h.GetStatus)
	g.POST("/webhook/:gateway", h.HandleWebhook)
}
