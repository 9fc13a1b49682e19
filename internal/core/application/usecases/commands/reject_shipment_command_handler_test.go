package commands_test

import (
	"testing"

	"timberops/internal/core/application/usecases/commands"
	"timberops/internal/core/domain/model/kernel"
	"timberops/internal/core/domain/model/shipment"
	"timberops/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestRejectShipmentCommandHandler_Handle_Success(t *testing.T) {
	ctx := t.Context()
	from := kernel.NewUUID()
	to := kernel.NewUUID()
	aggregate := newPendingShipment(from, to)
	cmd, err := commands.NewRejectShipmentCommand(newTestActor(to), aggregate.ID(), "quality below agreed grade")
	require.NoError(t, err)

	repo := new(MockShipmentRepository)
	uow := new(MockShipmentUoW)
	uow.On("ShipmentRepository").Return(repo)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		repo.On("Get", mock.Anything, aggregate.ID()).Return(aggregate, nil).Once(),
		repo.On("Update", mock.Anything, aggregate).Return(nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockShipmentUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewRejectShipmentCommandHandler(factory)
	require.NoError(t, h.Handle(ctx, cmd))
	assert.Equal(t, shipment.Rejected, aggregate.Status())
	assert.Equal(t, "quality below agreed grade", aggregate.RejectionReason())
	assert.NotNil(t, aggregate.ReviewedAt())
	repo.AssertExpectations(t)
	uow.AssertExpectations(t)
}

func TestRejectShipmentCommandHandler_Handle_ReasonRequired(t *testing.T) {
	ctx := t.Context()
	from := kernel.NewUUID()
	to := kernel.NewUUID()
	aggregate := newPendingShipment(from, to)
	cmd, err := commands.NewRejectShipmentCommand(newTestActor(to), aggregate.ID(), "")
	require.NoError(t, err)

	repo := new(MockShipmentRepository)
	uow := new(MockShipmentUoW)
	uow.On("ShipmentRepository").Return(repo)
	uow.On("Begin", ctx).Return(nil).Once()
	uow.On("Rollback", ctx).Return(nil).Once()
	repo.On("Get", mock.Anything, aggregate.ID()).Return(aggregate, nil).Once()

	factory := new(MockShipmentUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewRejectShipmentCommandHandler(factory)
	err = h.Handle(ctx, cmd)
	require.Error(t, err)
	assert.ErrorIs(t, err, errs.ErrReasonRequired)
	assert.Equal(t, shipment.Pending, aggregate.Status())
	repo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
}
