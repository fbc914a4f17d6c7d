package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"tsmit_os/internal/adapter/http/dto/request"
	"tsmit_os/internal/adapter/http/dto/response"
	"tsmit_os/internal/infrastructure/metrics"
	"tsmit_os/internal/usecase"
	"tsmit_os/pkg"
)

// ServiceOrderHandler handles the service order lifecycle endpoints.
type ServiceOrderHandler struct {
	usecase usecase.IServiceOrderUseCase
}

func NewServiceOrderHandler(uc usecase.IServiceOrderUseCase) *ServiceOrderHandler {
	return &ServiceOrderHandler{usecase: uc}
}

// Create godoc
// @Summary  Open a service order
// @Tags     service-orders
// @Accept   json
// @Produce  json
// @Param    body body request.CreateServiceOrderRequest true "order"
// @Success  201 {object} response.ServiceOrderResponse
// @Failure  400,403,422 {object} pkg.HTTPError
// @Security Bearer
// @Router   /service-orders [post]
func (h *ServiceOrderHandler) Create(c *gin.Context) {
	user, ok := actor(c)
	if !ok {
		return
	}
	var payload request.CreateServiceOrderRequest
	if !bindJSON(c, &payload) {
		return
	}

	order, err := h.usecase.Create(c.Request.Context(), user, payload.ToInput())
	if err != nil {
		respondError(c, mapServiceOrderError(err))
		return
	}

	metrics.RecordServiceOrderCreated()
	c.JSON(http.StatusCreated, response.FromServiceOrder(order))
}

// TransitionStatus godoc
// @Summary  Move a service order to another status
// @Tags     service-orders
// @Accept   json
// @Produce  json
// @Param    id   path string true "service order id"
// @Param    body body request.TransitionStatusRequest true "transition"
// @Success  200 {object} response.ServiceOrderResponse
// @Failure  400,403,404,409,422 {object} pkg.HTTPError
// @Security Bearer
// @Router   /service-orders/{id}/status [patch]
func (h *ServiceOrderHandler) TransitionStatus(c *gin.Context) {
	user, ok := actor(c)
	if !ok {
		return
	}
	var payload request.TransitionStatusRequest
	if !bindJSON(c, &payload) {
		return
	}

	order, err := h.usecase.TransitionStatus(c.Request.Context(), user, payload.ToInput(c.Param("id")))
	if err != nil {
		respondError(c, mapServiceOrderError(err))
		return
	}

	metrics.RecordTransition(order.StatusID)
	c.JSON(http.StatusOK, response.FromServiceOrder(order))
}

// Edit godoc
// @Summary  Edit service order fields
// @Tags     service-orders
// @Accept   json
// @Produce  json
// @Param    id   path string true "service order id"
// @Param    body body request.EditServiceOrderRequest true "changes"
// @Success  200 {object} response.ServiceOrderResponse
// @Failure  400,403,404,409,422 {object} pkg.HTTPError
// @Security Bearer
// @Router   /service-orders/{id} [put]
func (h *ServiceOrderHandler) Edit(c *gin.Context) {
	user, ok := actor(c)
	if !ok {
		return
	}
	var payload request.EditServiceOrderRequest
	if !bindJSON(c, &payload) {
		return
	}

	order, err := h.usecase.Edit(c.Request.Context(), user, payload.ToInput(c.Param("id")))
	if err != nil {
		respondError(c, mapServiceOrderError(err))
		return
	}

	c.JSON(http.StatusOK, response.FromServiceOrder(order))
}

// GetByID godoc
// @Summary  Get a service order with both audit trails
// @Tags     service-orders
// @Produce  json
// @Param    id path string true "service order id"
// @Success  200 {object} response.ServiceOrderResponse
// @Failure  404 {object} pkg.HTTPError
// @Security Bearer
// @Router   /service-orders/{id} [get]
func (h *ServiceOrderHandler) GetByID(c *gin.Context) {
	order, err := h.usecase.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, mapServiceOrderError(err))
		return
	}
	c.JSON(http.StatusOK, response.FromServiceOrder(order))
}

// List godoc
// @Summary  List service orders by order number
// @Tags     service-orders
// @Produce  json
// @Success  200 {array} response.ServiceOrderResponse
// @Security Bearer
// @Router   /service-orders [get]
func (h *ServiceOrderHandler) List(c *gin.Context) {
	orders, err := h.usecase.List(c.Request.Context())
	if err != nil {
		respondError(c, mapServiceOrderError(err))
		return
	}
	c.JSON(http.StatusOK, response.FromServiceOrders(orders))
}

// History godoc
// @Summary  Get the status and edit trails of a service order
// @Tags     service-orders
// @Produce  json
// @Param    id path string true "service order id"
// @Success  200 {object} response.ServiceOrderHistoryResponse
// @Failure  404 {object} pkg.HTTPError
// @Security Bearer
// @Router   /service-orders/{id}/history [get]
func (h *ServiceOrderHandler) History(c *gin.Context) {
	history, err := h.usecase.History(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, mapServiceOrderError(err))
		return
	}
	c.JSON(http.StatusOK, response.FromServiceOrderHistory(history))
}

func mapServiceOrderError(err error) *pkg.AppError {
	switch {
	case errors.Is(err, usecase.ErrInvalidStatus):
		return pkg.NewDomainErrorSimple("INVALID_STATUS", "Status does not exist", http.StatusBadRequest)
	case errors.Is(err, usecase.ErrServiceOrderNotFound):
		return pkg.NewDomainErrorSimple("SERVICE_ORDER_NOT_FOUND", "Service order not found", http.StatusNotFound)
	case errors.Is(err, usecase.ErrMissingTechnicalSolution):
		return pkg.NewDomainErrorSimple("MISSING_TECHNICAL_SOLUTION", "A technical solution is required for this status", http.StatusUnprocessableEntity)
	case errors.Is(err, usecase.ErrIncompleteServiceConfirmation):
		return pkg.NewDomainErrorSimple("INCOMPLETE_SERVICE_CONFIRMATION", "Every contracted service must be confirmed for this status", http.StatusUnprocessableEntity)
	case errors.Is(err, usecase.ErrConcurrentModification):
		return pkg.NewDomainErrorSimple("CONCURRENT_MODIFICATION", "Service order was modified by another request, reload and retry", http.StatusConflict)
	case errors.Is(err, usecase.ErrImmutableField):
		return detailed("IMMUTABLE_FIELD", err, http.StatusBadRequest)
	case errors.Is(err, usecase.ErrUnknownField):
		return detailed("UNKNOWN_FIELD", err, http.StatusBadRequest)
	case errors.Is(err, usecase.ErrInvalidFieldValue):
		return detailed("INVALID_FIELD_VALUE", err, http.StatusBadRequest)
	case errors.Is(err, usecase.ErrClientNotFound):
		return pkg.NewDomainErrorSimple("CLIENT_NOT_FOUND", "Client not found", http.StatusUnprocessableEntity)
	case errors.Is(err, usecase.ErrServiceNotFound):
		return pkg.NewDomainErrorSimple("SERVICE_NOT_FOUND", "Service not found", http.StatusUnprocessableEntity)
	case errors.Is(err, usecase.ErrUserNotFound):
		return pkg.NewDomainErrorSimple("USER_NOT_FOUND", "Analyst not found", http.StatusUnprocessableEntity)
	default:
		return mapCommonError(err)
	}
}
