package commands_test

import (
	"testing"

	"fueldrop/internal/core/application/usecases/commands"
	"fueldrop/internal/core/domain/model/kernel"

	"github.com/stretchr/testify/require"
)

func TestNewAssignCourierCommand(t *testing.T) {
	t.Run("creates valid command", func(t *testing.T) {
		orderID := kernel.NewUUID()
		courierID := kernel.NewUUID()

		cmd, err := commands.NewAssignCourierCommand(orderID, courierID, commands.AssignCourierOptions{})

		require.NoError(t, err)
		require.NoError(t, cmd.Validate())
		require.True(t, cmd.OrderID().IsEqual(orderID))
		require.True(t, cmd.CourierID().IsEqual(courierID))
		require.False(t, cmd.Options().NoReassign)
	})

	t.Run("carries the no-reassign option", func(t *testing.T) {
		cmd, err := commands.NewAssignCourierCommand(
			kernel.NewUUID(), kernel.NewUUID(), commands.AssignCourierOptions{NoReassign: true})

		require.NoError(t, err)
		require.True(t, cmd.Options().NoReassign)
	})

	t.Run("rejects invalid identifiers", func(t *testing.T) {
		_, err := commands.NewAssignCourierCommand(kernel.UUID{}, kernel.NewUUID(), commands.AssignCourierOptions{})
		require.Error(t, err)

		_, err = commands.NewAssignCourierCommand(kernel.NewUUID(), kernel.UUID{}, commands.AssignCourierOptions{})
		require.Error(t, err)
	})

	t.Run("zero value command fails validation", func(t *testing.T) {
		cmd := commands.AssignCourierCommand{}

		err := cmd.Validate()

		require.ErrorIs(t, err, commands.ErrAssignCourierCommandIsNotConstructed)
	})
}
