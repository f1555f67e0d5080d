package handler

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/laramoda/storefront-api/internal/service"
)

type AdminHandler struct {
	adminService *service.AdminService
	log          *slog.Logger
}

func NewAdminHandler(adminService *service.AdminService, log *slog.Logger) *AdminHandler {
	return &AdminHandler{adminService: adminService, log: log}
}

func (h *AdminHandler) Stats(c *gin.Context) {
	resp, err := h.adminService.Stats(c.Request.Context())
	if err != nil {
		respondServiceError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}
