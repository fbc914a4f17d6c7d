package usecase

import (
	"errors"

	"tsmit_os/internal/domain/lifecycle"

	"github.com/sirupsen/logrus"
)

var (
	ErrInvalidStatus                 = errors.New("invalid status")
	ErrForbidden                     = errors.New("forbidden")
	ErrMissingTechnicalSolution      = lifecycle.ErrMissingTechnicalSolution
	ErrIncompleteServiceConfirmation = lifecycle.ErrIncompleteServiceConfirmation
	ErrImmutableField                = lifecycle.ErrImmutableField
	ErrUnknownField                  = lifecycle.ErrUnknownField
	ErrInvalidFieldValue             = lifecycle.ErrInvalidFieldValue
	ErrConcurrentModification        = errors.New("service order was modified concurrently")

	ErrServiceOrderNotFound = errors.New("service order not found")
	ErrStatusNotFound       = errors.New("status not found")
	ErrRoleNotFound         = errors.New("role not found")
	ErrUserNotFound         = errors.New("user not found")
	ErrClientNotFound       = errors.New("client not found")
	ErrServiceNotFound      = errors.New("service not found")

	ErrStatusNameTaken = errors.New("status name already in use")
	ErrInvalidID       = errors.New("invalid id")
	ErrInvalidName     = errors.New("invalid name")
	ErrInvalidEmail    = errors.New("invalid email")
)

var log = logrus.WithField("layer", "usecase")
