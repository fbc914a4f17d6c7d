package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"tsmit_os/internal/adapter/http/dto/response"
)

// Me godoc
// @Summary  The authenticated user
// @Tags     auth
// @Produce  json
// @Success  200 {object} response.UserResponse
// @Failure  401 {object} pkg.HTTPError
// @Security Bearer
// @Router   /auth/me [get]
func Me(c *gin.Context) {
	user, ok := actor(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, response.FromUser(user))
}

// Ping godoc
// @Summary  Health check
// @Tags     health
// @Produce  json
// @Success  200 {object} map[string]string
// @Router   /ping [get]
func Ping(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"message": "pong"})
}
