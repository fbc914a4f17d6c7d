package handlers

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"tsmit_os/internal/adapter/http/dto/request"
	"tsmit_os/internal/adapter/http/dto/response"
	"tsmit_os/internal/domain/entities"
	"tsmit_os/internal/usecase"
	"tsmit_os/pkg"
)

// catalogUseCase is the CRUD surface shared by the catalog use cases.
type catalogUseCase[E, I any] interface {
	List(ctx context.Context) ([]E, error)
	GetByID(ctx context.Context, id string) (E, error)
	Create(ctx context.Context, actor entities.User, in I) (E, error)
	Update(ctx context.Context, actor entities.User, id string, in I) (E, error)
	Delete(ctx context.Context, actor entities.User, id string) error
}

type inputRequest[I any] interface {
	ToInput() I
}

// CatalogHandler serves GET/POST/PUT/DELETE for one catalog resource.
// Reads need only an authenticated user; writes are authorized by the use
// case.
type CatalogHandler[E, I any, R inputRequest[I], Resp any] struct {
	usecase    catalogUseCase[E, I]
	toResponse func(E) Resp
	mapError   func(error) *pkg.AppError
}

type (
	StatusHandler  = CatalogHandler[entities.Status, usecase.StatusInput, request.StatusRequest, response.StatusResponse]
	RoleHandler    = CatalogHandler[entities.Role, usecase.RoleInput, request.RoleRequest, response.RoleResponse]
	UserHandler    = CatalogHandler[entities.User, usecase.UserInput, request.UserRequest, response.UserResponse]
	ClientHandler  = CatalogHandler[entities.Client, usecase.ClientInput, request.ClientRequest, response.ClientResponse]
	ServiceHandler = CatalogHandler[entities.Service, usecase.ServiceInput, request.ServiceRequest, response.ServiceResponse]
)

func NewStatusHandler(uc usecase.IStatusUseCase) *StatusHandler {
	return &StatusHandler{usecase: uc, toResponse: response.FromStatus, mapError: mapStatusError}
}

func NewRoleHandler(uc usecase.IRoleUseCase) *RoleHandler {
	return &RoleHandler{usecase: uc, toResponse: response.FromRole, mapError: mapRoleError}
}

func NewUserHandler(uc usecase.IUserUseCase) *UserHandler {
	return &UserHandler{usecase: uc, toResponse: response.FromUser, mapError: mapUserError}
}

func NewClientHandler(uc usecase.IClientUseCase) *ClientHandler {
	return &ClientHandler{usecase: uc, toResponse: response.FromClient, mapError: mapClientError}
}

func NewServiceHandler(uc usecase.IServiceUseCase) *ServiceHandler {
	return &ServiceHandler{usecase: uc, toResponse: response.FromService, mapError: mapServiceError}
}

func (h *CatalogHandler[E, I, R, Resp]) List(c *gin.Context) {
	items, err := h.usecase.List(c.Request.Context())
	if err != nil {
		respondError(c, h.mapError(err))
		return
	}
	c.JSON(http.StatusOK, response.FromList(items, h.toResponse))
}

func (h *CatalogHandler[E, I, R, Resp]) GetByID(c *gin.Context) {
	item, err := h.usecase.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, h.mapError(err))
		return
	}
	c.JSON(http.StatusOK, h.toResponse(item))
}

func (h *CatalogHandler[E, I, R, Resp]) Create(c *gin.Context) {
	user, ok := actor(c)
	if !ok {
		return
	}
	var payload R
	if !bindJSON(c, &payload) {
		return
	}

	item, err := h.usecase.Create(c.Request.Context(), user, payload.ToInput())
	if err != nil {
		respondError(c, h.mapError(err))
		return
	}
	c.JSON(http.StatusCreated, h.toResponse(item))
}

func (h *CatalogHandler[E, I, R, Resp]) Update(c *gin.Context) {
	user, ok := actor(c)
	if !ok {
		return
	}
	var payload R
	if !bindJSON(c, &payload) {
		return
	}

	item, err := h.usecase.Update(c.Request.Context(), user, c.Param("id"), payload.ToInput())
	if err != nil {
		respondError(c, h.mapError(err))
		return
	}
	c.JSON(http.StatusOK, h.toResponse(item))
}

func (h *CatalogHandler[E, I, R, Resp]) Delete(c *gin.Context) {
	user, ok := actor(c)
	if !ok {
		return
	}
	if err := h.usecase.Delete(c.Request.Context(), user, c.Param("id")); err != nil {
		respondError(c, h.mapError(err))
		return
	}
	c.Status(http.StatusNoContent)
}

var errInvalidName = pkg.NewDomainErrorSimple("INVALID_REQUEST", "Name is required", http.StatusBadRequest)

func mapStatusError(err error) *pkg.AppError {
	switch {
	case errors.Is(err, usecase.ErrStatusNotFound):
		return pkg.NewDomainErrorSimple("STATUS_NOT_FOUND", "Status not found", http.StatusNotFound)
	case errors.Is(err, usecase.ErrStatusNameTaken):
		return pkg.NewDomainErrorSimple("STATUS_NAME_TAKEN", "A status with this name already exists", http.StatusConflict)
	case errors.Is(err, usecase.ErrInvalidName):
		return errInvalidName
	default:
		return mapCommonError(err)
	}
}

func mapRoleError(err error) *pkg.AppError {
	switch {
	case errors.Is(err, usecase.ErrRoleNotFound):
		return pkg.NewDomainErrorSimple("ROLE_NOT_FOUND", "Role not found", http.StatusNotFound)
	case errors.Is(err, usecase.ErrInvalidName):
		return errInvalidName
	default:
		return mapCommonError(err)
	}
}

func mapUserError(err error) *pkg.AppError {
	switch {
	case errors.Is(err, usecase.ErrUserNotFound):
		return pkg.NewDomainErrorSimple("USER_NOT_FOUND", "User not found", http.StatusNotFound)
	case errors.Is(err, usecase.ErrRoleNotFound):
		return pkg.NewDomainErrorSimple("ROLE_NOT_FOUND", "Role not found", http.StatusUnprocessableEntity)
	case errors.Is(err, usecase.ErrInvalidName):
		return errInvalidName
	case errors.Is(err, usecase.ErrInvalidEmail):
		return pkg.NewDomainErrorSimple("INVALID_REQUEST", "A valid email is required", http.StatusBadRequest)
	default:
		return mapCommonError(err)
	}
}

func mapClientError(err error) *pkg.AppError {
	switch {
	case errors.Is(err, usecase.ErrClientNotFound):
		return pkg.NewDomainErrorSimple("CLIENT_NOT_FOUND", "Client not found", http.StatusNotFound)
	case errors.Is(err, usecase.ErrServiceNotFound):
		return pkg.NewDomainErrorSimple("SERVICE_NOT_FOUND", "Service not found", http.StatusUnprocessableEntity)
	case errors.Is(err, usecase.ErrInvalidName):
		return errInvalidName
	case errors.Is(err, usecase.ErrInvalidEmail):
		return pkg.NewDomainErrorSimple("INVALID_REQUEST", "Invalid email", http.StatusBadRequest)
	default:
		return mapCommonError(err)
	}
}

func mapServiceError(err error) *pkg.AppError {
	switch {
	case errors.Is(err, usecase.ErrServiceNotFound):
		return pkg.NewDomainErrorSimple("SERVICE_NOT_FOUND", "Service not found", http.StatusNotFound)
	case errors.Is(err, usecase.ErrInvalidName):
		return errInvalidName
	default:
		return mapCommonError(err)
	}
}
