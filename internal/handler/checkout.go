package handler

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/laramoda/storefront-api/internal/dto"
	"github.com/laramoda/storefront-api/internal/service"
)

type CheckoutHandler struct {
	checkoutService *service.CheckoutService
	log             *slog.Logger
}

func NewCheckoutHandler(checkoutService *service.CheckoutService, log *slog.Logger) *CheckoutHandler {
	return &CheckoutHandler{checkoutService: checkoutService, log: log}
}

func (h *CheckoutHandler) ProductLink(c *gin.Context) {
	id, ok := parseID(c, "product")
	if !ok {
		return
	}
	var req dto.WhatsAppInquiryRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		respondBindError(c, err)
		return
	}
	resp, err := h.checkoutService.ProductLink(c.Request.Context(), id, req)
	if err != nil {
		respondServiceError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *CheckoutHandler) ContactLink(c *gin.Context) {
	c.JSON(http.StatusOK, h.checkoutService.ContactLink())
}
