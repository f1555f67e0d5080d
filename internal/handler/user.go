package handler

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/laramoda/storefront-api/internal/middleware"
	"github.com/laramoda/storefront-api/internal/service"
)

type UserHandler struct {
	userService *service.UserService
	log         *slog.Logger
}

func NewUserHandler(userService *service.UserService, log *slog.Logger) *UserHandler {
	return &UserHandler{userService: userService, log: log}
}

// CurrentUser syncs the token's identity into the users table and returns it.
func (h *UserHandler) CurrentUser(c *gin.Context) {
	resp, err := h.userService.Sync(c.Request.Context(), middleware.GetIdentity(c))
	if err != nil {
		respondServiceError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}
