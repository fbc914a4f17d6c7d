package routes

import "github.com/gin-gonic/gin"

const (
	PathStatuses = "/statuses"
	PathRoles    = "/roles"
	PathUsers    = "/users"
	PathClients  = "/clients"
	PathServices = "/services"
)

type crudHandler interface {
	List(c *gin.Context)
	GetByID(c *gin.Context)
	Create(c *gin.Context)
	Update(c *gin.Context)
	Delete(c *gin.Context)
}

func addCatalogRoutes(rg *gin.RouterGroup, app *App) {
	addCRUDRoutes(rg.Group(PathStatuses), app.statusHandler)
	addCRUDRoutes(rg.Group(PathRoles), app.roleHandler)
	addCRUDRoutes(rg.Group(PathUsers), app.userHandler)
	addCRUDRoutes(rg.Group(PathClients), app.clientHandler)
	addCRUDRoutes(rg.Group(PathServices), app.serviceHandler)
}

func addCRUDRoutes(rg *gin.RouterGroup, h crudHandler) {
	rg.GET("", h.List)
	rg.POST("", h.Create)
	rg.GET("/:id", h.GetByID)
	rg.PUT("/:id", h.Update)
	rg.DELETE("/:id", h.Delete)
}
