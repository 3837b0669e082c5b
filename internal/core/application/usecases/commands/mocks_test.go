package commands_test

import (
	"context"
	"testing"
	"time"

	"fueldrop/internal/core/application/usecases/commands"
	"fueldrop/internal/core/domain/model/compensation"
	"fueldrop/internal/core/domain/model/kernel"
	"fueldrop/internal/core/domain/model/order"
	"fueldrop/internal/core/domain/model/user"
	"fueldrop/internal/core/ports"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockOrderRepository struct{ mock.Mock }

func (m *MockOrderRepository) Add(ctx context.Context, o *order.Order) error {
	args := m.Called(ctx, o)
	return args.Error(0)
}

func (m *MockOrderRepository) Update(ctx context.Context, o *order.Order) error {
	args := m.Called(ctx, o)
	return args.Error(0)
}

func (m *MockOrderRepository) Get(ctx context.Context, id kernel.UUID) (*order.Order, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*order.Order), args.Error(1)
}

func (m *MockOrderRepository) UnpaidBalance(ctx context.Context, userID kernel.UUID) (int, error) {
	args := m.Called(ctx, userID)
	return args.Int(0), args.Error(1)
}

type MockCompensationRepository struct{ mock.Mock }

func (m *MockCompensationRepository) Add(ctx context.Context, steps []*compensation.Step) error {
	args := m.Called(ctx, steps)
	return args.Error(0)
}

func (m *MockCompensationRepository) Update(ctx context.Context, step *compensation.Step) error {
	args := m.Called(ctx, step)
	return args.Error(0)
}

func (m *MockCompensationRepository) GetNextPending(ctx context.Context, limit int) ([]*compensation.Step, error) {
	args := m.Called(ctx, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*compensation.Step), args.Error(1)
}

type MockUserRepository struct{ mock.Mock }

func (m *MockUserRepository) Get(ctx context.Context, id kernel.UUID) (*user.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*user.User), args.Error(1)
}

func (m *MockUserRepository) FindByReferralCode(ctx context.Context, code string) (*user.User, error) {
	args := m.Called(ctx, code)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*user.User), args.Error(1)
}

type MockPaymentGateway struct{ mock.Mock }

func (m *MockPaymentGateway) Capture(ctx context.Context, chargeID string) (*order.PaymentCapture, error) {
	args := m.Called(ctx, chargeID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*order.PaymentCapture), args.Error(1)
}

func (m *MockPaymentGateway) Refund(ctx context.Context, chargeID string) (*order.PaymentRefund, error) {
	args := m.Called(ctx, chargeID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*order.PaymentRefund), args.Error(1)
}

type MockCouponLedger struct{ mock.Mock }

func (m *MockCouponLedger) MarkUsed(ctx context.Context, code, licensePlate string, userID kernel.UUID) error {
	args := m.Called(ctx, code, licensePlate, userID)
	return args.Error(0)
}

func (m *MockCouponLedger) Release(ctx context.Context, code, licensePlate string, userID kernel.UUID) error {
	args := m.Called(ctx, code, licensePlate, userID)
	return args.Error(0)
}

type MockReferralLedger struct{ mock.Mock }

func (m *MockReferralLedger) Credit(ctx context.Context, userID kernel.UUID, gallons int) error {
	args := m.Called(ctx, userID, gallons)
	return args.Error(0)
}

func (m *MockReferralLedger) Debit(ctx context.Context, userID kernel.UUID, gallons int) error {
	args := m.Called(ctx, userID, gallons)
	return args.Error(0)
}

type MockCourierCapacity struct{ mock.Mock }

func (m *MockCourierCapacity) Acquire(ctx context.Context, courierID, orderID kernel.UUID) error {
	args := m.Called(ctx, courierID, orderID)
	return args.Error(0)
}

func (m *MockCourierCapacity) Release(ctx context.Context, courierID, orderID kernel.UUID) error {
	args := m.Called(ctx, courierID, orderID)
	return args.Error(0)
}

type MockNotifier struct{ mock.Mock }

func (m *MockNotifier) Push(ctx context.Context, userID kernel.UUID, message string) error {
	args := m.Called(ctx, userID, message)
	return args.Error(0)
}

func (m *MockNotifier) SMS(ctx context.Context, phone, message string) error {
	args := m.Called(ctx, phone, message)
	return args.Error(0)
}

type MockEventTracker struct{ mock.Mock }

func (m *MockEventTracker) Track(ctx context.Context, userID kernel.UUID, event string, properties map[string]any) error {
	args := m.Called(ctx, userID, event, properties)
	return args.Error(0)
}

type MockOrderUoW struct{ mock.Mock }

func (m *MockOrderUoW) Begin(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockOrderUoW) Commit(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockOrderUoW) Rollback(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockOrderUoW) OrderRepository() ports.OrderRepository {
	args := m.Called()
	return args.Get(0).(ports.OrderRepository)
}

type MockOrderUoWFactory struct{ mock.Mock }

func (m *MockOrderUoWFactory) Create() commands.OrderUoW {
	args := m.Called()
	return args.Get(0).(commands.OrderUoW)
}

type MockUoW struct{ mock.Mock }

func (m *MockUoW) Begin(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockUoW) Commit(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockUoW) Rollback(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockUoW) OrderRepository() ports.OrderRepository {
	args := m.Called()
	return args.Get(0).(ports.OrderRepository)
}

func (m *MockUoW) CompensationRepository() ports.CompensationRepository {
	args := m.Called()
	return args.Get(0).(ports.CompensationRepository)
}

type MockUoWFactory struct{ mock.Mock }

func (m *MockUoWFactory) Create() commands.UoW {
	args := m.Called()
	return args.Get(0).(commands.UoW)
}

// testOrder builds an unassigned order with sensible defaults; mutate tweaks
// the details before construction.
func testOrder(t *testing.T, mutate func(*order.Details)) *order.Order {
	t.Helper()

	location, err := kernel.NewLocation(30.2672, -97.7431)
	require.NoError(t, err)

	details := order.Details{
		GasType:      "regular",
		Gallons:      12,
		GasPrice:     3600,
		ServiceFee:   499,
		TotalPrice:   4099,
		LicensePlate: "ABC1234",
		Address:      order.Address{Street: "500 Congress Ave", City: "Austin", State: "TX", Zip: "78701"},
		Location:     location,
	}
	if mutate != nil {
		mutate(&details)
	}

	o, err := order.NewOrder(kernel.NewUUID(), kernel.NewUUID(), details, time.Now())
	require.NoError(t, err)
	return o
}

// testUser builds a valid user record.
func testUser(t *testing.T, managed, richText bool) *user.User {
	t.Helper()

	u, err := user.NewUser(kernel.NewUUID(), "Jordan Blake", "+15125550100", "JORDAN5", managed, richText)
	require.NoError(t, err)
	return u
}
