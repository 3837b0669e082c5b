package commands_test

import (
	"testing"
	"time"

	"fueldrop/internal/core/application/usecases/commands"
	"fueldrop/internal/core/domain/model/kernel"
	"fueldrop/internal/core/domain/model/order"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// progressTestFixture wires a handler over a single-order repository.
func progressTestFixture(t *testing.T, o *order.Order) (commands.ProgressOrderCommandHandler, *MockOrderUoW, *MockNotifier) {
	t.Helper()

	repo := new(MockOrderRepository)
	uow := new(MockOrderUoW)
	notifier := new(MockNotifier)

	uow.On("Begin", mock.Anything).Return(nil)
	uow.On("OrderRepository").Return(repo)
	uow.On("Commit", mock.Anything).Return(nil)
	uow.On("Rollback", mock.Anything).Return(nil)
	repo.On("Get", mock.Anything, o.ID()).Return(o, nil)
	repo.On("Update", mock.Anything, o).Return(nil)

	factory := new(MockOrderUoWFactory)
	factory.On("Create").Return(uow)

	return commands.NewProgressOrderCommandHandler(factory, notifier), uow, notifier
}

func TestProgressOrderCommandHandler_Handle(t *testing.T) {
	ctx := t.Context()

	t.Run("accept is a silent status write", func(t *testing.T) {
		o := testOrder(t, nil)
		require.NoError(t, o.Assign(kernel.NewUUID(), time.Now()))
		h, uow, notifier := progressTestFixture(t, o)

		cmd, _ := commands.NewAcceptOrderCommand(o.ID())
		err := h.Handle(ctx, cmd)

		require.NoError(t, err)
		require.Equal(t, order.Accepted, o.Status())
		uow.AssertCalled(t, "Commit", ctx)
		notifier.AssertNotCalled(t, "Push", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("begin route notifies the customer", func(t *testing.T) {
		o := testOrder(t, nil)
		require.NoError(t, o.Assign(kernel.NewUUID(), time.Now()))
		require.NoError(t, o.Progress(order.Accepted, time.Now()))
		h, _, notifier := progressTestFixture(t, o)
		notifier.On("Push", ctx, o.UserID(), "Your courier is on the way!").Return(nil).Once()

		cmd, _ := commands.NewBeginRouteCommand(o.ID())
		err := h.Handle(ctx, cmd)

		require.NoError(t, err)
		require.Equal(t, order.EnRoute, o.Status())
		notifier.AssertExpectations(t)
	})

	t.Run("begin service notifies the customer", func(t *testing.T) {
		o := testOrder(t, nil)
		require.NoError(t, o.Assign(kernel.NewUUID(), time.Now()))
		require.NoError(t, o.Progress(order.Accepted, time.Now()))
		require.NoError(t, o.Progress(order.EnRoute, time.Now()))
		h, _, notifier := progressTestFixture(t, o)
		notifier.On("Push", ctx, o.UserID(),
			"Your courier has started fueling your vehicle.").Return(nil).Once()

		cmd, _ := commands.NewBeginServiceCommand(o.ID())
		err := h.Handle(ctx, cmd)

		require.NoError(t, err)
		require.Equal(t, order.Servicing, o.Status())
		notifier.AssertExpectations(t)
	})

	t.Run("skipping a status fails", func(t *testing.T) {
		o := testOrder(t, nil)
		require.NoError(t, o.Assign(kernel.NewUUID(), time.Now()))
		h, uow, _ := progressTestFixture(t, o)

		cmd, _ := commands.NewBeginServiceCommand(o.ID())
		err := h.Handle(ctx, cmd)

		require.Error(t, err)
		require.Equal(t, order.Assigned, o.Status())
		uow.AssertNotCalled(t, "Commit", mock.Anything)
	})

	t.Run("progress from unassigned fails", func(t *testing.T) {
		o := testOrder(t, nil)
		h, uow, _ := progressTestFixture(t, o)

		cmd, _ := commands.NewAcceptOrderCommand(o.ID())
		err := h.Handle(ctx, cmd)

		require.Error(t, err)
		uow.AssertNotCalled(t, "Commit", mock.Anything)
	})
}
