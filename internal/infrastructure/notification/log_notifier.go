package notification

import (
	"context"

	"github.com/sirupsen/logrus"

	"tsmit_os/internal/usecase/interfaces"
)

// LogNotifier only logs notifications. Used when no SMTP relay is set.
type LogNotifier struct{}

var _ interfaces.INotifier = LogNotifier{}

func (LogNotifier) Notify(_ context.Context, n interfaces.StatusNotification) error {
	log.WithFields(logrus.Fields{
		"order_id":     n.Order.ID,
		"order_number": n.Order.OrderNumber,
		"status_id":    n.Status.ID,
		"recipient":    Recipient(n),
	}).Info("smtp disabled, notification logged only")
	return nil
}
