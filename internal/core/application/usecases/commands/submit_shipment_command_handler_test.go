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

func TestSubmitShipmentCommandHandler_Handle_Success(t *testing.T) {
	ctx := t.Context()
	from := kernel.NewUUID()
	to := kernel.NewUUID()
	aggregate := newDraftShipment(from, to)
	cmd, err := commands.NewSubmitShipmentCommand(newTestActor(from), aggregate.ID())
	require.NoError(t, err)

	shipmentRepo := new(MockShipmentRepository)
	packageRepo := new(MockPackageRepository)
	uow := new(MockUoW)
	uow.On("ShipmentRepository").Return(shipmentRepo)
	uow.On("PackageRepository").Return(packageRepo)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		shipmentRepo.On("GetLocked", mock.Anything, aggregate.ID()).Return(aggregate, nil).Once(),
		packageRepo.On("CountByShipment", mock.Anything, aggregate.ID()).Return(int64(3), nil).Once(),
		shipmentRepo.On("Update", mock.Anything, aggregate).Return(nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewSubmitShipmentCommandHandler(factory)
	require.NoError(t, h.Handle(ctx, cmd))
	assert.Equal(t, shipment.Pending, aggregate.Status())
	assert.NotNil(t, aggregate.SubmittedAt())
	shipmentRepo.AssertExpectations(t)
	packageRepo.AssertExpectations(t)
}

func TestSubmitShipmentCommandHandler_Handle_EmptyShipment(t *testing.T) {
	ctx := t.Context()
	from := kernel.NewUUID()
	to := kernel.NewUUID()
	aggregate := newDraftShipment(from, to)
	cmd, err := commands.NewSubmitShipmentCommand(newTestActor(from), aggregate.ID())
	require.NoError(t, err)

	shipmentRepo := new(MockShipmentRepository)
	packageRepo := new(MockPackageRepository)
	uow := new(MockUoW)
	uow.On("ShipmentRepository").Return(shipmentRepo)
	uow.On("PackageRepository").Return(packageRepo)
	uow.On("Begin", ctx).Return(nil).Once()
	uow.On("Rollback", ctx).Return(nil).Once()
	shipmentRepo.On("GetLocked", mock.Anything, aggregate.ID()).Return(aggregate, nil).Once()
	packageRepo.On("CountByShipment", mock.Anything, aggregate.ID()).Return(int64(0), nil).Once()

	factory := new(MockUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewSubmitShipmentCommandHandler(factory)
	err = h.Handle(ctx, cmd)
	require.Error(t, err)
	assert.ErrorIs(t, err, errs.ErrNoPackages)
	assert.Equal(t, shipment.Draft, aggregate.Status())
}

func TestSubmitShipmentCommandHandler_Handle_SecondSubmitIsNotDraft(t *testing.T) {
	ctx := t.Context()
	from := kernel.NewUUID()
	to := kernel.NewUUID()
	aggregate := newPendingShipment(from, to)
	cmd, err := commands.NewSubmitShipmentCommand(newTestActor(from), aggregate.ID())
	require.NoError(t, err)

	shipmentRepo := new(MockShipmentRepository)
	packageRepo := new(MockPackageRepository)
	uow := new(MockUoW)
	uow.On("ShipmentRepository").Return(shipmentRepo)
	uow.On("PackageRepository").Return(packageRepo)
	uow.On("Begin", ctx).Return(nil).Once()
	uow.On("Rollback", ctx).Return(nil).Once()
	shipmentRepo.On("GetLocked", mock.Anything, aggregate.ID()).Return(aggregate, nil).Once()
	packageRepo.On("CountByShipment", mock.Anything, aggregate.ID()).Return(int64(3), nil).Once()

	factory := new(MockUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewSubmitShipmentCommandHandler(factory)
	err = h.Handle(ctx, cmd)
	require.Error(t, err)
	assert.Equal(t, errs.CodeNotDraft, errs.CodeOf(err))
}
