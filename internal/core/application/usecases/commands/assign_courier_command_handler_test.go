package commands_test

import (
	"errors"
	"strings"
	"testing"
	"time"

	"fueldrop/internal/core/application/usecases/commands"
	"fueldrop/internal/core/domain/model/kernel"
	"fueldrop/internal/core/domain/model/order"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestAssignCourierCommandHandler_Handle_Success(t *testing.T) {
	ctx := t.Context()
	o := testOrder(t, nil)
	courier := testUser(t, false, false)
	cmd, _ := commands.NewAssignCourierCommand(o.ID(), courier.ID(), commands.AssignCourierOptions{})

	repo := new(MockOrderRepository)
	uow := new(MockOrderUoW)
	capacity := new(MockCourierCapacity)
	notifier := new(MockNotifier)
	users := new(MockUserRepository)

	uow.On("Begin", ctx).Return(nil).Once()
	uow.On("OrderRepository").Return(repo).Once()
	uow.On("Commit", ctx).Return(nil).Once()
	uow.On("Rollback", ctx).Return(nil).Once()
	repo.On("Get", ctx, o.ID()).Return(o, nil).Once()
	repo.On("Update", ctx, o).Return(nil).Once()
	repo.On("UnpaidBalance", ctx, o.UserID()).Return(2500, nil).Once()
	capacity.On("Acquire", ctx, courier.ID(), o.ID()).Return(nil).Once()
	notifier.On("Push", ctx, courier.ID(), mock.AnythingOfType("string")).Return(nil).Once()
	users.On("Get", ctx, courier.ID()).Return(courier, nil).Once()
	notifier.On("SMS", ctx, courier.Phone(), mock.MatchedBy(func(msg string) bool {
		return strings.Contains(msg, "$25.00")
	})).Return(nil).Once()

	factory := new(MockOrderUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewAssignCourierCommandHandler(factory, users, capacity, notifier)
	err := h.Handle(ctx, cmd)

	require.NoError(t, err)
	require.Equal(t, order.Assigned, o.Status())
	require.True(t, o.Courier().IsEqual(courier.ID()))
	repo.AssertExpectations(t)
	uow.AssertExpectations(t)
	capacity.AssertExpectations(t)
	notifier.AssertExpectations(t)
	users.AssertExpectations(t)
}

func TestAssignCourierCommandHandler_Handle_ReassignsByDefault(t *testing.T) {
	ctx := t.Context()
	o := testOrder(t, nil)
	previousCourier := kernel.NewUUID()
	require.NoError(t, o.Assign(previousCourier, time.Now()))

	newCourier := testUser(t, false, false)
	cmd, _ := commands.NewAssignCourierCommand(o.ID(), newCourier.ID(), commands.AssignCourierOptions{})

	repo := new(MockOrderRepository)
	uow := new(MockOrderUoW)
	capacity := new(MockCourierCapacity)
	notifier := new(MockNotifier)
	users := new(MockUserRepository)

	uow.On("Begin", ctx).Return(nil).Once()
	uow.On("OrderRepository").Return(repo).Once()
	uow.On("Commit", ctx).Return(nil).Once()
	uow.On("Rollback", ctx).Return(nil).Once()
	repo.On("Get", ctx, o.ID()).Return(o, nil).Once()
	repo.On("Update", ctx, o).Return(nil).Once()
	repo.On("UnpaidBalance", ctx, o.UserID()).Return(0, nil).Once()
	capacity.On("Release", ctx, previousCourier, o.ID()).Return(nil).Once()
	capacity.On("Acquire", ctx, newCourier.ID(), o.ID()).Return(nil).Once()
	notifier.On("Push", ctx, newCourier.ID(), mock.AnythingOfType("string")).Return(nil).Once()
	users.On("Get", ctx, newCourier.ID()).Return(newCourier, nil).Once()
	notifier.On("SMS", ctx, newCourier.Phone(), mock.AnythingOfType("string")).Return(nil).Once()

	factory := new(MockOrderUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewAssignCourierCommandHandler(factory, users, capacity, notifier)
	err := h.Handle(ctx, cmd)

	require.NoError(t, err)
	require.True(t, o.Courier().IsEqual(newCourier.ID()))
	repo.AssertExpectations(t)
	uow.AssertExpectations(t)
	capacity.AssertExpectations(t)
	notifier.AssertExpectations(t)
}

func TestAssignCourierCommandHandler_Handle_NoReassignSkipsAssignedOrder(t *testing.T) {
	ctx := t.Context()
	o := testOrder(t, nil)
	require.NoError(t, o.Assign(kernel.NewUUID(), time.Now()))
	originalCourier := *o.Courier()

	cmd, _ := commands.NewAssignCourierCommand(
		o.ID(), kernel.NewUUID(), commands.AssignCourierOptions{NoReassign: true})

	repo := new(MockOrderRepository)
	uow := new(MockOrderUoW)
	uow.On("Begin", ctx).Return(nil).Once()
	uow.On("OrderRepository").Return(repo).Once()
	uow.On("Rollback", ctx).Return(nil).Once()
	repo.On("Get", ctx, o.ID()).Return(o, nil).Once()

	factory := new(MockOrderUoWFactory)
	factory.On("Create").Return(uow).Once()

	capacity := new(MockCourierCapacity)
	notifier := new(MockNotifier)

	h := commands.NewAssignCourierCommandHandler(factory, new(MockUserRepository), capacity, notifier)
	err := h.Handle(ctx, cmd)

	require.NoError(t, err)
	require.True(t, o.Courier().IsEqual(originalCourier))
	require.Equal(t, order.Assigned, o.Status())
	uow.AssertNotCalled(t, "Commit", mock.Anything)
	capacity.AssertNotCalled(t, "Acquire", mock.Anything, mock.Anything, mock.Anything)
	capacity.AssertNotCalled(t, "Release", mock.Anything, mock.Anything, mock.Anything)
	notifier.AssertNotCalled(t, "Push", mock.Anything, mock.Anything, mock.Anything)
}

func TestAssignCourierCommandHandler_Handle_GetError(t *testing.T) {
	ctx := t.Context()
	cmd, _ := commands.NewAssignCourierCommand(kernel.NewUUID(), kernel.NewUUID(), commands.AssignCourierOptions{})

	repo := new(MockOrderRepository)
	uow := new(MockOrderUoW)
	uow.On("Begin", ctx).Return(nil).Once()
	uow.On("OrderRepository").Return(repo).Once()
	uow.On("Rollback", ctx).Return(nil).Once()
	repo.On("Get", ctx, mock.Anything).Return(nil, errors.New("order not found")).Once()

	factory := new(MockOrderUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewAssignCourierCommandHandler(
		factory, new(MockUserRepository), new(MockCourierCapacity), new(MockNotifier))
	err := h.Handle(ctx, cmd)

	require.Error(t, err)
	uow.AssertNotCalled(t, "Commit", mock.Anything)
}

func TestAssignCourierCommandHandler_Handle_AcquireError(t *testing.T) {
	ctx := t.Context()
	o := testOrder(t, nil)
	courierID := kernel.NewUUID()
	cmd, _ := commands.NewAssignCourierCommand(o.ID(), courierID, commands.AssignCourierOptions{})

	repo := new(MockOrderRepository)
	uow := new(MockOrderUoW)
	capacity := new(MockCourierCapacity)

	uow.On("Begin", ctx).Return(nil).Once()
	uow.On("OrderRepository").Return(repo).Once()
	uow.On("Rollback", ctx).Return(nil).Once()
	repo.On("Get", ctx, o.ID()).Return(o, nil).Once()
	repo.On("Update", ctx, o).Return(nil).Once()
	repo.On("UnpaidBalance", ctx, o.UserID()).Return(0, nil).Once()
	capacity.On("Acquire", ctx, courierID, o.ID()).Return(errors.New("capacity unavailable")).Once()

	factory := new(MockOrderUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewAssignCourierCommandHandler(
		factory, new(MockUserRepository), capacity, new(MockNotifier))
	err := h.Handle(ctx, cmd)

	require.Error(t, err)
	uow.AssertNotCalled(t, "Commit", mock.Anything)
}

func TestAssignCourierCommandHandler_Handle_ValidationError(t *testing.T) {
	ctx := t.Context()
	cmd := commands.AssignCourierCommand{}

	h := commands.NewAssignCourierCommandHandler(
		new(MockOrderUoWFactory), new(MockUserRepository), new(MockCourierCapacity), new(MockNotifier))
	err := h.Handle(ctx, cmd)

	require.ErrorIs(t, err, commands.ErrAssignCourierCommandIsNotConstructed)
}
