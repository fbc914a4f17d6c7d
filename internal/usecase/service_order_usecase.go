package usecase

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"tsmit_os/internal/domain/entities"
	"tsmit_os/internal/domain/lifecycle"
	"tsmit_os/internal/domain/permission"
	"tsmit_os/internal/domain/validation"
	"tsmit_os/internal/usecase/interfaces"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// CreateServiceOrderInput is the command to open a new service order.
// An empty AnalystID assigns the acting user.
type CreateServiceOrderInput struct {
	ClientID        string
	Contact         entities.Contact
	Equipment       entities.Equipment
	ReportedProblem string
	AnalystID       string
	ServiceIDs      []string
	InitialStatusID string
}

// TransitionStatusInput is the command to move an order to another status.
// A zero ExpectedVersion skips the caller-side version check; the write is
// still conditional on the version that was read.
type TransitionStatusInput struct {
	OrderID             string
	StatusID            string
	Note                string
	TechnicalSolution   string
	ConfirmedServiceIDs []string
	ExpectedVersion     int64
}

// EditServiceOrderInput carries field changes keyed by field name.
type EditServiceOrderInput struct {
	OrderID         string
	Changes         map[string]string
	ExpectedVersion int64
}

// ServiceOrderHistory holds both audit trails of an order in insertion order.
type ServiceOrderHistory struct {
	StatusHistory []entities.StatusHistoryEntry
	EditHistory   []entities.EditHistoryEntry
}

// IServiceOrderUseCase exposes the service order lifecycle.
type IServiceOrderUseCase interface {
	Create(ctx context.Context, actor entities.User, in CreateServiceOrderInput) (entities.ServiceOrder, error)
	TransitionStatus(ctx context.Context, actor entities.User, in TransitionStatusInput) (entities.ServiceOrder, error)
	Edit(ctx context.Context, actor entities.User, in EditServiceOrderInput) (entities.ServiceOrder, error)
	GetByID(ctx context.Context, id string) (entities.ServiceOrder, error)
	List(ctx context.Context) ([]entities.ServiceOrder, error)
	History(ctx context.Context, id string) (ServiceOrderHistory, error)
}

type ServiceOrderUseCase struct {
	orders   interfaces.IServiceOrderRepository
	statuses interfaces.IStatusRepository
	clients  interfaces.IClientRepository
	services interfaces.IServiceRepository
	users    interfaces.IUserRepository
	authz    IAuthorizer
	notifier interfaces.INotifier

	updateStatusPermission string
	now                    func() time.Time
}

var _ IServiceOrderUseCase = (*ServiceOrderUseCase)(nil)

type ServiceOrderOption func(*ServiceOrderUseCase)

// WithUpdateStatusPermission replaces the permission required for status
// transitions, e.g. "service-orders.update" for a coarser policy.
func WithUpdateStatusPermission(p string) ServiceOrderOption {
	return func(u *ServiceOrderUseCase) {
		if p = strings.TrimSpace(p); p != "" {
			u.updateStatusPermission = p
		}
	}
}

func WithClock(now func() time.Time) ServiceOrderOption {
	return func(u *ServiceOrderUseCase) { u.now = now }
}

func NewServiceOrderUseCase(
	orders interfaces.IServiceOrderRepository,
	statuses interfaces.IStatusRepository,
	clients interfaces.IClientRepository,
	services interfaces.IServiceRepository,
	users interfaces.IUserRepository,
	authz IAuthorizer,
	notifier interfaces.INotifier,
	opts ...ServiceOrderOption,
) *ServiceOrderUseCase {
	u := &ServiceOrderUseCase{
		orders:                 orders,
		statuses:               statuses,
		clients:                clients,
		services:               services,
		users:                  users,
		authz:                  authz,
		notifier:               notifier,
		updateStatusPermission: permission.ServiceOrdersUpdateStatus,
		now:                    func() time.Time { return time.Now().UTC() },
	}
	for _, opt := range opts {
		opt(u)
	}
	return u
}

func (u *ServiceOrderUseCase) Create(ctx context.Context, actor entities.User, in CreateServiceOrderInput) (entities.ServiceOrder, error) {
	initial, err := u.loadStatus(ctx, in.InitialStatusID)
	if err != nil {
		return entities.ServiceOrder{}, err
	}
	if err := u.authz.Authorize(ctx, actor, permission.ServiceOrdersCreate); err != nil {
		return entities.ServiceOrder{}, err
	}

	problem := strings.TrimSpace(in.ReportedProblem)
	if problem == "" {
		return entities.ServiceOrder{}, fmt.Errorf("%w: reportedProblem is required", ErrInvalidFieldValue)
	}

	contact := trimContact(in.Contact)
	if contact.Email != "" && !validation.Email(contact.Email) {
		return entities.ServiceOrder{}, fmt.Errorf("%w: contactEmail is not a valid email", ErrInvalidFieldValue)
	}

	client, err := u.loadClient(ctx, in.ClientID)
	if err != nil {
		return entities.ServiceOrder{}, err
	}

	contracted, err := u.contractedServices(ctx, client, in.ServiceIDs)
	if err != nil {
		return entities.ServiceOrder{}, err
	}

	analyst := actor.Ref()
	if id := strings.TrimSpace(in.AnalystID); id != "" && id != actor.ID {
		user, err := u.users.GetByID(ctx, id)
		if err != nil {
			return entities.ServiceOrder{}, err
		}
		if user.ID == "" {
			return entities.ServiceOrder{}, ErrUserNotFound
		}
		analyst = user.Ref()
	}

	number, err := u.orders.NextOrderNumber(ctx)
	if err != nil {
		return entities.ServiceOrder{}, err
	}

	now := u.now()
	order := entities.ServiceOrder{
		ID:                 uuid.NewString(),
		OrderNumber:        number,
		ClientID:           client.ID,
		ClientSnapshot:     client.Snapshot(),
		Contact:            contact,
		Equipment:          trimEquipment(in.Equipment),
		ReportedProblem:    problem,
		Analyst:            analyst,
		ContractedServices: contracted,
		StatusID:           initial.ID,
		StatusHistory:      []entities.StatusHistoryEntry{lifecycle.InitialTransition(initial, actor.Ref(), now)},
		EditHistory:        []entities.EditHistoryEntry{},
		CreatedAt:          now,
		UpdatedAt:          now,
		Version:            1,
	}

	created, err := u.orders.Create(ctx, order)
	if err != nil {
		return entities.ServiceOrder{}, err
	}
	log.WithFields(logrus.Fields{
		"order_id":     created.ID,
		"order_number": created.OrderNumber,
		"status_id":    created.StatusID,
		"user_id":      actor.ID,
	}).Info("service order created")
	return created, nil
}

func (u *ServiceOrderUseCase) TransitionStatus(ctx context.Context, actor entities.User, in TransitionStatusInput) (entities.ServiceOrder, error) {
	target, err := u.loadStatus(ctx, in.StatusID)
	if err != nil {
		return entities.ServiceOrder{}, err
	}
	if err := u.authz.Authorize(ctx, actor, u.updateStatusPermission); err != nil {
		return entities.ServiceOrder{}, err
	}
	order, err := u.GetByID(ctx, in.OrderID)
	if err != nil {
		return entities.ServiceOrder{}, err
	}
	if in.ExpectedVersion > 0 && in.ExpectedVersion != order.Version {
		return entities.ServiceOrder{}, ErrConcurrentModification
	}

	var current *entities.Status
	if s, err := u.statuses.GetByID(ctx, order.StatusID); err != nil {
		return entities.ServiceOrder{}, err
	} else if s.ID != "" {
		current = &s
	}

	commit, err := lifecycle.PlanTransition(
		order,
		lifecycle.CurrentStatus(order, current),
		target,
		lifecycle.TransitionRequest{
			Note:                in.Note,
			TechnicalSolution:   in.TechnicalSolution,
			ConfirmedServiceIDs: in.ConfirmedServiceIDs,
		},
		actor.Ref(),
		u.now(),
	)
	if err != nil {
		return entities.ServiceOrder{}, err
	}

	updated, err := u.orders.ApplyTransition(ctx, order.ID, order.Version, commit)
	if err != nil {
		if errors.Is(err, interfaces.ErrVersionConflict) {
			return entities.ServiceOrder{}, ErrConcurrentModification
		}
		return entities.ServiceOrder{}, err
	}
	if updated.ID == "" {
		return entities.ServiceOrder{}, ErrServiceOrderNotFound
	}

	entry := log.WithFields(logrus.Fields{
		"order_id":  updated.ID,
		"from":      commit.Entry.From.Name,
		"to":        target.Name,
		"status_id": target.ID,
		"user_id":   actor.ID,
	})
	entry.Info("service order status changed")

	if target.TriggersEmail && u.notifier != nil {
		n := interfaces.StatusNotification{Order: updated, Status: target, Actor: actor.Ref()}
		if err := u.notifier.Notify(ctx, n); err != nil {
			entry.WithError(err).Warn("status notification not sent")
		}
	}
	return updated, nil
}

func (u *ServiceOrderUseCase) Edit(ctx context.Context, actor entities.User, in EditServiceOrderInput) (entities.ServiceOrder, error) {
	if err := u.authz.Authorize(ctx, actor, permission.ServiceOrdersUpdate); err != nil {
		return entities.ServiceOrder{}, err
	}
	if err := lifecycle.ValidateChanges(in.Changes); err != nil {
		return entities.ServiceOrder{}, err
	}
	order, err := u.GetByID(ctx, in.OrderID)
	if err != nil {
		return entities.ServiceOrder{}, err
	}
	if in.ExpectedVersion > 0 && in.ExpectedVersion != order.Version {
		return entities.ServiceOrder{}, ErrConcurrentModification
	}

	lookup := func(clientID string) (entities.ClientSnapshot, error) {
		c, err := u.loadClient(ctx, clientID)
		if err != nil {
			return entities.ClientSnapshot{}, err
		}
		return c.Snapshot(), nil
	}
	commit, changed, err := lifecycle.PlanEdit(order, in.Changes, actor.Ref(), u.now(), lookup)
	if err != nil {
		return entities.ServiceOrder{}, err
	}
	if !changed {
		return order, nil
	}

	updated, err := u.orders.ApplyEdit(ctx, order.ID, order.Version, commit)
	if err != nil {
		if errors.Is(err, interfaces.ErrVersionConflict) {
			return entities.ServiceOrder{}, ErrConcurrentModification
		}
		return entities.ServiceOrder{}, err
	}
	if updated.ID == "" {
		return entities.ServiceOrder{}, ErrServiceOrderNotFound
	}

	fields := make([]string, 0, len(commit.Entries))
	for _, e := range commit.Entries {
		fields = append(fields, e.Field)
	}
	log.WithFields(logrus.Fields{
		"order_id": updated.ID,
		"fields":   strings.Join(fields, ","),
		"user_id":  actor.ID,
	}).Info("service order edited")
	return updated, nil
}

func (u *ServiceOrderUseCase) GetByID(ctx context.Context, id string) (entities.ServiceOrder, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return entities.ServiceOrder{}, ErrInvalidID
	}
	o, err := u.orders.GetByID(ctx, id)
	if err != nil {
		return entities.ServiceOrder{}, err
	}
	if o.ID == "" {
		return entities.ServiceOrder{}, ErrServiceOrderNotFound
	}
	return o, nil
}

func (u *ServiceOrderUseCase) List(ctx context.Context) ([]entities.ServiceOrder, error) {
	orders, err := u.orders.List(ctx)
	if err != nil {
		return nil, err
	}
	sortByOrderNumber(orders)
	return orders, nil
}

func (u *ServiceOrderUseCase) History(ctx context.Context, id string) (ServiceOrderHistory, error) {
	o, err := u.GetByID(ctx, id)
	if err != nil {
		return ServiceOrderHistory{}, err
	}
	h := ServiceOrderHistory{StatusHistory: o.StatusHistory, EditHistory: o.EditHistory}
	if h.StatusHistory == nil {
		h.StatusHistory = []entities.StatusHistoryEntry{}
	}
	if h.EditHistory == nil {
		h.EditHistory = []entities.EditHistoryEntry{}
	}
	return h, nil
}

func (u *ServiceOrderUseCase) loadStatus(ctx context.Context, id string) (entities.Status, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return entities.Status{}, ErrInvalidStatus
	}
	s, err := u.statuses.GetByID(ctx, id)
	if err != nil {
		return entities.Status{}, err
	}
	if s.ID == "" {
		return entities.Status{}, ErrInvalidStatus
	}
	return s, nil
}

func (u *ServiceOrderUseCase) loadClient(ctx context.Context, id string) (entities.Client, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return entities.Client{}, ErrClientNotFound
	}
	c, err := u.clients.GetByID(ctx, id)
	if err != nil {
		return entities.Client{}, err
	}
	if c.ID == "" {
		return entities.Client{}, ErrClientNotFound
	}
	return c, nil
}

// contractedServices resolves the services an order is opened with. Explicit
// ids must all exist. Without them the client's contracted services are used
// and ids no longer in the catalog are skipped.
func (u *ServiceOrderUseCase) contractedServices(ctx context.Context, client entities.Client, explicit []string) ([]entities.ContractedService, error) {
	ids := lifecycle.NormalizeIDs(explicit)
	fromClient := len(ids) == 0
	if fromClient {
		ids = lifecycle.NormalizeIDs(client.ServiceIDs)
	}
	out := make([]entities.ContractedService, 0, len(ids))
	for _, id := range ids {
		svc, err := u.services.GetByID(ctx, id)
		if err != nil {
			return nil, err
		}
		if svc.ID == "" {
			if fromClient {
				log.WithFields(logrus.Fields{"client_id": client.ID, "service_id": id}).
					Warn("client service missing from catalog, skipped")
				continue
			}
			return nil, ErrServiceNotFound
		}
		out = append(out, svc.Contracted())
	}
	return out, nil
}

func sortByOrderNumber(orders []entities.ServiceOrder) {
	sort.SliceStable(orders, func(i, j int) bool { return orders[i].OrderNumber < orders[j].OrderNumber })
}

func trimContact(c entities.Contact) entities.Contact {
	return entities.Contact{Name: strings.TrimSpace(c.Name), Email: strings.TrimSpace(c.Email)}
}

func trimEquipment(e entities.Equipment) entities.Equipment {
	return entities.Equipment{
		Type:         strings.TrimSpace(e.Type),
		Brand:        strings.TrimSpace(e.Brand),
		Model:        strings.TrimSpace(e.Model),
		SerialNumber: strings.TrimSpace(e.SerialNumber),
	}
}
