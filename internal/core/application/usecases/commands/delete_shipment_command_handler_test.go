package commands_test

import (
	"testing"

	"timberops/internal/core/application/usecases/commands"
	"timberops/internal/core/domain/model/kernel"
	"timberops/internal/core/ports"
	"timberops/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func internalSenderDirectory(senderID kernel.UUID) *MockOrganisationDirectory {
	directory := new(MockOrganisationDirectory)
	directory.On("GetOrganisation", mock.Anything, senderID).Return(ports.Organisation{
		ID:       senderID,
		Code:     "ABC",
		Name:     "Sawmill North",
		IsActive: true,
	}, nil)
	return directory
}

func TestDeleteShipmentCommandHandler_Handle_InternalSenderUnlinksPackages(t *testing.T) {
	ctx := t.Context()
	from := kernel.NewUUID()
	to := kernel.NewUUID()
	aggregate := newDraftShipment(from, to)
	cmd, err := commands.NewDeleteShipmentCommand(newTestActor(from), aggregate.ID())
	require.NoError(t, err)

	shipmentRepo := new(MockShipmentRepository)
	packageRepo := new(MockPackageRepository)
	uow := new(MockUoW)
	uow.On("ShipmentRepository").Return(shipmentRepo)
	uow.On("PackageRepository").Return(packageRepo)
	uow.On("Begin", ctx).Return(nil).Once()
	uow.On("Commit", ctx).Return(nil).Once()
	uow.On("Rollback", ctx).Return(nil).Once()
	shipmentRepo.On("GetLocked", mock.Anything, aggregate.ID()).Return(aggregate, nil).Once()
	packageRepo.On("CountProductionReferences", mock.Anything, aggregate.ID()).Return(int64(0), nil).Once()
	packageRepo.On("UnlinkByShipment", mock.Anything, aggregate.ID()).Return(nil).Once()
	shipmentRepo.On("Delete", mock.Anything, aggregate.ID()).Return(nil).Once()

	factory := new(MockUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewDeleteShipmentCommandHandler(factory, internalSenderDirectory(from))
	require.NoError(t, h.Handle(ctx, cmd))
	packageRepo.AssertNotCalled(t, "DeleteByShipment", mock.Anything, mock.Anything)
	packageRepo.AssertExpectations(t)
	shipmentRepo.AssertExpectations(t)
}

func TestDeleteShipmentCommandHandler_Handle_ExternalSenderDeletesPackages(t *testing.T) {
	ctx := t.Context()
	from := kernel.NewUUID()
	to := kernel.NewUUID()
	aggregate := newDraftShipment(from, to)
	cmd, err := commands.NewDeleteShipmentCommand(newTestActor(to), aggregate.ID())
	require.NoError(t, err)

	shipmentRepo := new(MockShipmentRepository)
	packageRepo := new(MockPackageRepository)
	uow := new(MockUoW)
	uow.On("ShipmentRepository").Return(shipmentRepo)
	uow.On("PackageRepository").Return(packageRepo)
	uow.On("Begin", ctx).Return(nil).Once()
	uow.On("Commit", ctx).Return(nil).Once()
	uow.On("Rollback", ctx).Return(nil).Once()
	shipmentRepo.On("GetLocked", mock.Anything, aggregate.ID()).Return(aggregate, nil).Once()
	packageRepo.On("CountProductionReferences", mock.Anything, aggregate.ID()).Return(int64(0), nil).Once()
	packageRepo.On("DeleteByShipment", mock.Anything, aggregate.ID()).Return(nil).Once()
	shipmentRepo.On("Delete", mock.Anything, aggregate.ID()).Return(nil).Once()

	factory := new(MockUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewDeleteShipmentCommandHandler(factory, externalSenderDirectory(from))
	require.NoError(t, h.Handle(ctx, cmd))
	packageRepo.AssertNotCalled(t, "UnlinkByShipment", mock.Anything, mock.Anything)
	packageRepo.AssertExpectations(t)
}

func TestDeleteShipmentCommandHandler_Handle_ProductionReferencesBlock(t *testing.T) {
	ctx := t.Context()
	from := kernel.NewUUID()
	to := kernel.NewUUID()
	aggregate := newDraftShipment(from, to)
	cmd, err := commands.NewDeleteShipmentCommand(newTestActor(from), aggregate.ID())
	require.NoError(t, err)

	shipmentRepo := new(MockShipmentRepository)
	packageRepo := new(MockPackageRepository)
	uow := new(MockUoW)
	uow.On("ShipmentRepository").Return(shipmentRepo)
	uow.On("PackageRepository").Return(packageRepo)
	uow.On("Begin", ctx).Return(nil).Once()
	uow.On("Rollback", ctx).Return(nil).Once()
	shipmentRepo.On("GetLocked", mock.Anything, aggregate.ID()).Return(aggregate, nil).Once()
	packageRepo.On("CountProductionReferences", mock.Anything, aggregate.ID()).Return(int64(2), nil).Once()

	factory := new(MockUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewDeleteShipmentCommandHandler(factory, internalSenderDirectory(from))
	err = h.Handle(ctx, cmd)
	require.Error(t, err)
	assert.Equal(t, errs.CodeValidationFailed, errs.CodeOf(err))
	shipmentRepo.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
}

func TestDeleteShipmentCommandHandler_Handle_ReceiverOfInternalSenderForbidden(t *testing.T) {
	ctx := t.Context()
	from := kernel.NewUUID()
	to := kernel.NewUUID()
	aggregate := newDraftShipment(from, to)
	cmd, err := commands.NewDeleteShipmentCommand(newTestActor(to), aggregate.ID())
	require.NoError(t, err)

	shipmentRepo := new(MockShipmentRepository)
	uow := new(MockUoW)
	uow.On("ShipmentRepository").Return(shipmentRepo)
	uow.On("Begin", ctx).Return(nil).Once()
	uow.On("Rollback", ctx).Return(nil).Once()
	shipmentRepo.On("GetLocked", mock.Anything, aggregate.ID()).Return(aggregate, nil).Once()

	factory := new(MockUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewDeleteShipmentCommandHandler(factory, internalSenderDirectory(from))
	err = h.Handle(ctx, cmd)
	require.Error(t, err)
	assert.ErrorIs(t, err, errs.ErrForbidden)
}

func TestDeleteShipmentCommandHandler_Handle_PendingShipmentRejected(t *testing.T) {
	ctx := t.Context()
	from := kernel.NewUUID()
	to := kernel.NewUUID()
	aggregate := newPendingShipment(from, to)
	cmd, err := commands.NewDeleteShipmentCommand(newTestActor(from), aggregate.ID())
	require.NoError(t, err)

	shipmentRepo := new(MockShipmentRepository)
	packageRepo := new(MockPackageRepository)
	uow := new(MockUoW)
	uow.On("ShipmentRepository").Return(shipmentRepo)
	uow.On("PackageRepository").Return(packageRepo)
	uow.On("Begin", ctx).Return(nil).Once()
	uow.On("Rollback", ctx).Return(nil).Once()
	shipmentRepo.On("GetLocked", mock.Anything, aggregate.ID()).Return(aggregate, nil).Once()

	factory := new(MockUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewDeleteShipmentCommandHandler(factory, internalSenderDirectory(from))
	err = h.Handle(ctx, cmd)
	require.Error(t, err)
	assert.ErrorIs(t, err, errs.ErrNotDraft)
	shipmentRepo.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
	packageRepo.AssertNotCalled(t, "UnlinkByShipment", mock.Anything, mock.Anything)
	packageRepo.AssertNotCalled(t, "DeleteByShipment", mock.Anything, mock.Anything)
}
