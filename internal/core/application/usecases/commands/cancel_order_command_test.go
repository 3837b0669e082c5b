package commands_test

import (
	"testing"

	"fueldrop/internal/core/application/usecases/commands"
	"fueldrop/internal/core/domain/model/kernel"
	"fueldrop/internal/core/domain/model/order"

	"github.com/stretchr/testify/require"
)

func TestNewCancelOrderCommand(t *testing.T) {
	t.Run("creates valid command with default cancellable set", func(t *testing.T) {
		userID := kernel.NewUUID()
		orderID := kernel.NewUUID()

		cmd, err := commands.NewCancelOrderCommand(userID, orderID, commands.CancelOrderOptions{})

		require.NoError(t, err)
		require.NoError(t, cmd.Validate())
		require.Equal(t, order.DefaultCancellableStatuses(), cmd.CancellableStatuses())
	})

	t.Run("override narrows the cancellable set", func(t *testing.T) {
		cmd, err := commands.NewCancelOrderCommand(kernel.NewUUID(), kernel.NewUUID(),
			commands.CancelOrderOptions{
				CancellableStatuses: []order.Status{order.Unassigned, order.Assigned},
			})

		require.NoError(t, err)
		require.Equal(t, []order.Status{order.Unassigned, order.Assigned}, cmd.CancellableStatuses())
	})

	t.Run("rejects invalid identifiers and statuses", func(t *testing.T) {
		_, err := commands.NewCancelOrderCommand(kernel.UUID{}, kernel.NewUUID(), commands.CancelOrderOptions{})
		require.Error(t, err)

		_, err = commands.NewCancelOrderCommand(kernel.NewUUID(), kernel.UUID{}, commands.CancelOrderOptions{})
		require.Error(t, err)

		_, err = commands.NewCancelOrderCommand(kernel.NewUUID(), kernel.NewUUID(),
			commands.CancelOrderOptions{CancellableStatuses: []order.Status{order.Unknown}})
		require.Error(t, err)
	})

	t.Run("zero value command fails validation", func(t *testing.T) {
		cmd := commands.CancelOrderCommand{}

		err := cmd.Validate()

		require.ErrorIs(t, err, commands.ErrCancelOrderCommandIsNotConstructed)
	})
}
