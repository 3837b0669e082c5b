package jobs

import (
	"context"
	"errors"
	"log/slog"
	"testing"

	"fueldrop/internal/core/application/usecases/commands"
	"fueldrop/internal/core/domain/model/compensation"
	"fueldrop/internal/core/ports"

	"github.com/stretchr/testify/require"
)

type stubUoW struct {
	beginErr error
}

func (s stubUoW) Begin(context.Context) error    { return s.beginErr }
func (s stubUoW) Commit(context.Context) error   { return nil }
func (s stubUoW) Rollback(context.Context) error { return nil }

func (s stubUoW) OrderRepository() ports.OrderRepository { return nil }

func (s stubUoW) CompensationRepository() ports.CompensationRepository {
	return emptyCompensationRepo{}
}

type emptyCompensationRepo struct{}

func (emptyCompensationRepo) Add(context.Context, []*compensation.Step) error { return nil }

func (emptyCompensationRepo) Update(context.Context, *compensation.Step) error { return nil }

func (emptyCompensationRepo) GetNextPending(context.Context, int) ([]*compensation.Step, error) {
	return nil, nil
}

type stubUoWFactory struct {
	uow commands.UoW
}

func (f stubUoWFactory) Create() commands.UoW { return f.uow }

func newTestJob(uow commands.UoW) *CompensationJob {
	handler := commands.NewRunCompensationCommandHandler(
		stubUoWFactory{uow: uow}, nil, nil, nil, nil, nil, nil)
	logger := slog.New(slog.DiscardHandler)
	return NewCompensationJob(handler, logger)
}

func TestCompensationJob_RunOnce(t *testing.T) {
	t.Run("drains an empty queue without error", func(t *testing.T) {
		job := newTestJob(stubUoW{})

		require.NoError(t, job.runOnce(t.Context()))
	})

	t.Run("surfaces transaction failures", func(t *testing.T) {
		dbErr := errors.New("connection refused")
		job := newTestJob(stubUoW{beginErr: dbErr})

		require.ErrorIs(t, job.runOnce(t.Context()), dbErr)
	})
}

func TestCompensationJob_StartStop(t *testing.T) {
	t.Run("starts and stops cleanly", func(t *testing.T) {
		job := newTestJob(stubUoW{})

		require.NoError(t, job.Start())
		job.Stop()
	})
}
