package notification

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"tsmit_os/internal/domain/entities"
	"tsmit_os/internal/usecase/interfaces"
	mock_interfaces "tsmit_os/internal/usecase/interfaces/mocks"
)

func notificationFor(id string) interfaces.StatusNotification {
	return interfaces.StatusNotification{
		Order:  entities.ServiceOrder{ID: id, OrderNumber: 7, ClientSnapshot: entities.ClientSnapshot{Name: "ACME", Email: "os@acme.com"}},
		Status: entities.Status{ID: "delivered", Name: "Entregue", TriggersEmail: true},
		Actor:  entities.UserRef{ID: "u1", Name: "Ana"},
	}
}

// blockingNotifier records deliveries and blocks each one until released.
type blockingNotifier struct {
	started chan string
	release chan struct{}

	mu   sync.Mutex
	seen []string
}

func (b *blockingNotifier) Notify(_ context.Context, n interfaces.StatusNotification) error {
	b.started <- n.Order.ID
	<-b.release
	b.mu.Lock()
	b.seen = append(b.seen, n.Order.ID)
	b.mu.Unlock()
	return nil
}

func TestDispatcher_DeliversAndDrainsOnClose(t *testing.T) {
	ctrl := gomock.NewController(t)
	next := mock_interfaces.NewMockINotifier(ctrl)

	var mu sync.Mutex
	var got []string
	next.EXPECT().Notify(gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, n interfaces.StatusNotification) error {
			mu.Lock()
			got = append(got, n.Order.ID)
			mu.Unlock()
			return nil
		}).Times(3)

	d := NewDispatcher(next, 10, time.Second)
	for _, id := range []string{"a", "b", "c"} {
		require.NoError(t, d.Notify(context.Background(), notificationFor(id)))
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	require.NoError(t, d.Close(ctx))

	assert.Equal(t, []string{"a", "b", "c"}, got)
	assert.ErrorIs(t, d.Notify(context.Background(), notificationFor("d")), ErrDispatcherClosed)
	assert.NoError(t, d.Close(ctx))
}

func TestDispatcher_DropsWhenFull(t *testing.T) {
	next := &blockingNotifier{started: make(chan string, 4), release: make(chan struct{})}
	d := NewDispatcher(next, 1, 0)

	require.NoError(t, d.Notify(context.Background(), notificationFor("first")))
	assert.Equal(t, "first", <-next.started)

	require.NoError(t, d.Notify(context.Background(), notificationFor("queued")))
	assert.ErrorIs(t, d.Notify(context.Background(), notificationFor("dropped")), ErrQueueFull)

	close(next.release)
	require.NoError(t, d.Close(context.Background()))

	assert.Equal(t, []string{"first", "queued"}, next.seen)
}

func TestDispatcher_CloseHonorsContext(t *testing.T) {
	next := &blockingNotifier{started: make(chan string, 1), release: make(chan struct{})}
	d := NewDispatcher(next, 1, 0)
	require.NoError(t, d.Notify(context.Background(), notificationFor("stuck")))
	<-next.started

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	assert.ErrorIs(t, d.Close(ctx), context.Canceled)

	close(next.release)
	require.NoError(t, d.Close(context.Background()))
}

func TestDispatcher_FailureDoesNotStopWorker(t *testing.T) {
	ctrl := gomock.NewController(t)
	next := mock_interfaces.NewMockINotifier(ctrl)
	gomock.InOrder(
		next.EXPECT().Notify(gomock.Any(), gomock.Any()).Return(errors.New("smtp down")),
		next.EXPECT().Notify(gomock.Any(), gomock.Any()).Return(nil),
	)

	d := NewDispatcher(next, 2, time.Second)
	require.NoError(t, d.Notify(context.Background(), notificationFor("a")))
	require.NoError(t, d.Notify(context.Background(), notificationFor("b")))
	require.NoError(t, d.Close(context.Background()))
}

func TestDispatcher_CopiesOrder(t *testing.T) {
	ctrl := gomock.NewController(t)
	next := mock_interfaces.NewMockINotifier(ctrl)

	var delivered string
	next.EXPECT().Notify(gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, n interfaces.StatusNotification) error {
			delivered = n.Order.ContractedServices[0].Name
			return nil
		})

	d := NewDispatcher(next, 1, 0)
	n := notificationFor("a")
	n.Order.ContractedServices = []entities.ContractedService{{ServiceID: "s1", Name: "Backup"}}
	require.NoError(t, d.Notify(context.Background(), n))
	n.Order.ContractedServices[0].Name = "mutated"

	require.NoError(t, d.Close(context.Background()))
	assert.Equal(t, "Backup", delivered)
}
