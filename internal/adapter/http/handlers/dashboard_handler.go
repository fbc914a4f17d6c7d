package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"tsmit_os/internal/adapter/http/dto/response"
	"tsmit_os/internal/usecase"
)

type DashboardHandler struct {
	usecase usecase.IDashboardUseCase
}

func NewDashboardHandler(uc usecase.IDashboardUseCase) *DashboardHandler {
	return &DashboardHandler{usecase: uc}
}

// Stats godoc
// @Summary  Dashboard statistics recomputed from every service order
// @Tags     dashboard
// @Produce  json
// @Success  200 {object} response.DashboardResponse
// @Failure  403 {object} pkg.HTTPError
// @Security Bearer
// @Router   /dashboard [get]
func (h *DashboardHandler) Stats(c *gin.Context) {
	user, ok := actor(c)
	if !ok {
		return
	}
	stats, err := h.usecase.Stats(c.Request.Context(), user)
	if err != nil {
		respondError(c, mapCommonError(err))
		return
	}
	c.JSON(http.StatusOK, response.FromDashboard(stats))
}
