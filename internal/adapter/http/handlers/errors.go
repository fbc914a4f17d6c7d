package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"tsmit_os/internal/adapter/http/middleware"
	"tsmit_os/internal/domain/entities"
	"tsmit_os/internal/infrastructure/metrics"
	"tsmit_os/internal/usecase"
	"tsmit_os/pkg"
)

var (
	errInvalidPayload   = pkg.NewDomainErrorSimple("INVALID_REQUEST", "Invalid request payload", http.StatusBadRequest)
	errUnauthenticated  = pkg.NewDomainErrorSimple("UNAUTHORIZED", "Authentication required", http.StatusUnauthorized)
	errForbidden        = pkg.NewDomainErrorSimple("FORBIDDEN", "You do not have permission to perform this action", http.StatusForbidden)
	errInvalidRequestID = pkg.NewDomainErrorSimple("INVALID_REQUEST", "Invalid request", http.StatusBadRequest)
)

// respondError writes appErr and counts it. Server errors are logged with
// their cause, which never reaches the client.
func respondError(c *gin.Context, appErr *pkg.AppError) {
	metrics.RecordDomainError(appErr.Code)
	if appErr.HTTPStatus >= http.StatusInternalServerError {
		logrus.WithFields(logrus.Fields{
			"layer":      "handler",
			"request_id": middleware.RequestID(c),
			"path":       c.Request.URL.Path,
		}).WithError(appErr.Cause).Error(appErr.Message)
	}
	c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
}

// actor returns the authenticated user or writes 401.
func actor(c *gin.Context) (entities.User, bool) {
	user, ok := middleware.Actor(c)
	if !ok {
		respondError(c, errUnauthenticated)
	}
	return user, ok
}

func bindJSON(c *gin.Context, payload any) bool {
	if err := c.ShouldBindJSON(payload); err != nil {
		respondError(c, errInvalidPayload)
		return false
	}
	return true
}

// mapCommonError covers the errors every handler shares.
func mapCommonError(err error) *pkg.AppError {
	switch {
	case errors.Is(err, usecase.ErrForbidden):
		return errForbidden
	case errors.Is(err, usecase.ErrInvalidID):
		return errInvalidRequestID
	default:
		return pkg.NewDomainError("INTERNAL_ERROR", "An internal error occurred", err, http.StatusInternalServerError)
	}
}

// detailed keeps the wrapped error text, which names the offending field.
func detailed(code string, err error, status int) *pkg.AppError {
	return pkg.NewDomainErrorSimple(code, err.Error(), status)
}
