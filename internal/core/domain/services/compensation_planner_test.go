package services_test

import (
	"testing"
	"time"

	"fueldrop/internal/core/domain/model/compensation"
	"fueldrop/internal/core/domain/model/kernel"
	"fueldrop/internal/core/domain/model/order"
	"fueldrop/internal/core/domain/services"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func buildOrder(t *testing.T, mutate func(*order.Details)) *order.Order {
	t.Helper()

	location, err := kernel.NewLocation(37.7749, -122.4194)
	require.NoError(t, err)

	details := order.Details{
		GasType:    "regular",
		Gallons:    10,
		GasPrice:   3500,
		ServiceFee: 599,
		TotalPrice: 4099,
		Address:    order.Address{Street: "123 Main St", City: "San Francisco", State: "CA"},
		Location:   location,
	}
	if mutate != nil {
		mutate(&details)
	}

	o, err := order.NewOrder(kernel.NewUUID(), kernel.NewUUID(), details, time.Now())
	require.NoError(t, err)
	return o
}

func kindsOf(steps []*compensation.Step) []compensation.Kind {
	kinds := make([]compensation.Kind, 0, len(steps))
	for _, step := range steps {
		kinds = append(kinds, step.Kind())
	}
	return kinds
}

func TestCompensationPlanner_Plan(t *testing.T) {
	planner := services.NewCompensationPlanner()

	t.Run("full plan for order with every compensable attribute", func(t *testing.T) {
		o := buildOrder(t, func(d *order.Details) {
			d.CouponCode = "FRIEND50"
			d.ReferralGallonsUsed = 3
			d.ChargeID = "ch_1"
		})
		require.NoError(t, o.Assign(kernel.NewUUID(), time.Now()))

		steps, err := planner.Plan(o, services.PlanOptions{NotifyCustomer: true}, time.Now())

		require.NoError(t, err)
		assert.Equal(t, []compensation.Kind{
			compensation.KindCreditReferralGallons,
			compensation.KindReleaseCoupon,
			compensation.KindFreeCourier,
			compensation.KindNotifyCustomer,
			compensation.KindRefundPayment,
			compensation.KindTrackEvent,
		}, kindsOf(steps))

		for i, step := range steps {
			assert.Equal(t, i, step.Seq())
			assert.True(t, step.OrderID().IsEqual(o.ID()))
			assert.False(t, step.Done())
		}
	})

	t.Run("minimal plan is just the analytics event", func(t *testing.T) {
		o := buildOrder(t, nil)

		steps, err := planner.Plan(o, services.PlanOptions{}, time.Now())

		require.NoError(t, err)
		assert.Equal(t, []compensation.Kind{compensation.KindTrackEvent}, kindsOf(steps))
	})

	t.Run("customer origin recorded on analytics step", func(t *testing.T) {
		o := buildOrder(t, nil)

		steps, err := planner.Plan(o, services.PlanOptions{FromDashboard: false}, time.Now())
		require.NoError(t, err)
		assert.JSONEq(t, `{"from_customer":true}`, steps[len(steps)-1].Meta())

		steps, err = planner.Plan(o, services.PlanOptions{FromDashboard: true}, time.Now())
		require.NoError(t, err)
		assert.JSONEq(t, `{"from_customer":false}`, steps[len(steps)-1].Meta())
	})

	t.Run("skips steps for absent attributes", func(t *testing.T) {
		o := buildOrder(t, func(d *order.Details) {
			d.ChargeID = "ch_2"
		})

		steps, err := planner.Plan(o, services.PlanOptions{}, time.Now())

		require.NoError(t, err)
		assert.Equal(t, []compensation.Kind{
			compensation.KindRefundPayment,
			compensation.KindTrackEvent,
		}, kindsOf(steps))
	})

	t.Run("rejects unconstructed order", func(t *testing.T) {
		var o order.Order

		_, err := planner.Plan(&o, services.PlanOptions{}, time.Now())

		require.Error(t, err)
	})
}
