package commands_test

import (
	"testing"

	"fueldrop/internal/core/application/usecases/commands"
	"fueldrop/internal/core/domain/model/kernel"
	"fueldrop/internal/core/domain/model/order"

	"github.com/stretchr/testify/require"
)

func TestProgressOrderCommandConstructors(t *testing.T) {
	orderID := kernel.NewUUID()

	testCases := []struct {
		name     string
		build    func(kernel.UUID) (commands.ProgressOrderCommand, error)
		expected order.Status
	}{
		{"accept", commands.NewAcceptOrderCommand, order.Accepted},
		{"begin route", commands.NewBeginRouteCommand, order.EnRoute},
		{"begin service", commands.NewBeginServiceCommand, order.Servicing},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			cmd, err := tc.build(orderID)

			require.NoError(t, err)
			require.NoError(t, cmd.Validate())
			require.Equal(t, tc.expected, cmd.Target())
			require.True(t, cmd.OrderID().IsEqual(orderID))
		})
	}

	t.Run("rejects invalid order id", func(t *testing.T) {
		_, err := commands.NewAcceptOrderCommand(kernel.UUID{})
		require.Error(t, err)
	})

	t.Run("zero value command fails validation", func(t *testing.T) {
		cmd := commands.ProgressOrderCommand{}

		err := cmd.Validate()

		require.ErrorIs(t, err, commands.ErrProgressOrderCommandIsNotConstructed)
	})
}
