package main

import (
	"github.com/gin-gonic/gin"

	"github.com/laramoda/storefront-api/internal/handler"
	"github.com/laramoda/storefront-api/internal/middleware"
)

type routes struct {
	user     *handler.UserHandler
	product  *handler.ProductHandler
	cart     *handler.CartHandler
	order    *handler.OrderHandler
	checkout *handler.CheckoutHandler
	admin    *handler.AdminHandler
	health   *handler.HealthHandler
}

func (h routes) register(router *gin.Engine, auth gin.HandlerFunc) {
	adminOnly := middleware.AdminOnly()

	router.GET("/healthz", h.health.Healthz)
	router.GET("/readyz", h.health.Readyz)

	v1 := router.Group("/api/v1")
	v1.GET("/auth/user", auth, h.user.CurrentUser)
	v1.GET("/contact/whatsapp", h.checkout.ContactLink)

	products := v1.Group("/products")
	products.GET("", h.product.List)
	products.GET("/categories", h.product.Categories)
	products.GET("/:id", h.product.GetByID)
	products.GET("/:id/related", h.product.Related)
	products.GET("/:id/whatsapp", h.checkout.ProductLink)

	manage := products.Group("", auth, adminOnly)
	manage.POST("", h.product.Create)
	manage.PATCH("/:id", h.product.Update)
	manage.PUT("/:id", h.product.Update)
	manage.DELETE("/:id", h.product.Delete)

	admin := v1.Group("/admin", auth, adminOnly)
	admin.GET("/products", h.product.AdminList)
	admin.GET("/stats", h.admin.Stats)

	cart := v1.Group("/cart", auth)
	cart.GET("", h.cart.GetCart)
	cart.DELETE("", h.cart.Clear)
	cart.POST("/items", h.cart.AddItem)
	cart.PATCH("/items/:id", h.cart.UpdateItem)
	cart.DELETE("/items/:id", h.cart.DeleteItem)

	orders := v1.Group("/orders", auth)
	orders.POST("", h.order.CreateOrder)
	orders.GET("", h.order.ListOrders)
	orders.GET("/:id", h.order.GetOrder)
	orders.PATCH("/:id/status", adminOnly, h.order.UpdateStatus)
	orders.GET("/:id/history", adminOnly, h.order.History)
}
