package routes

import (
	"github.com/gin-gonic/gin"

	"tsmit_os/internal/adapter/http/handlers"
)

const PathServiceOrders = "/service-orders"

func addServiceOrderRoutes(rg *gin.RouterGroup, h *handlers.ServiceOrderHandler) {
	orders := rg.Group(PathServiceOrders)
	{
		orders.GET("", h.List)
		orders.POST("", h.Create)
		orders.GET("/:id", h.GetByID)
		orders.PUT("/:id", h.Edit)
		orders.PATCH("/:id/status", h.TransitionStatus)
		orders.GET("/:id/history", h.History)
	}
}
