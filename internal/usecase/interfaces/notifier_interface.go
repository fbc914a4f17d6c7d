package interfaces

import (
	"context"

	"tsmit_os/internal/domain/entities"
)

// StatusNotification tells the client that its order entered a status that
// triggers an email.
type StatusNotification struct {
	Order  entities.ServiceOrder
	Status entities.Status
	Actor  entities.UserRef
}

// INotifier delivers status notifications. Delivery is best effort: callers
// log failures and never roll back the transition that caused them.
type INotifier interface {
	Notify(ctx context.Context, n StatusNotification) error
}
