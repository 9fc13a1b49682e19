package commands_test

import (
	"testing"

	"timberops/internal/core/application/usecases/commands"
	"timberops/internal/core/domain/model/kernel"
	"timberops/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestRemovePackageCommandHandler_Handle_DeletesLinkedPackage(t *testing.T) {
	ctx := t.Context()
	from := kernel.NewUUID()
	to := kernel.NewUUID()
	aggregate := newDraftShipment(from, to)

	pkg := newAvailablePackage(from)
	require.NoError(t, pkg.AssignToShipment(aggregate.ID(), 1, "ABC-XYZ-001/001"))

	cmd, err := commands.NewRemovePackageCommand(newTestActor(from), aggregate.ID(), pkg.ID())
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
	packageRepo.On("Get", mock.Anything, pkg.ID()).Return(pkg, nil).Once()
	packageRepo.On("Delete", mock.Anything, pkg.ID()).Return(nil).Once()

	factory := new(MockUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewRemovePackageCommandHandler(factory, new(MockOrganisationDirectory))
	require.NoError(t, h.Handle(ctx, cmd))

	packageRepo.AssertExpectations(t)
	uow.AssertExpectations(t)
}

func TestRemovePackageCommandHandler_Handle_PackageFromAnotherShipment(t *testing.T) {
	ctx := t.Context()
	from := kernel.NewUUID()
	to := kernel.NewUUID()
	aggregate := newDraftShipment(from, to)

	pkg := newAvailablePackage(from)
	require.NoError(t, pkg.AssignToShipment(kernel.NewUUID(), 1, "OTH-ERS-007/001"))

	cmd, err := commands.NewRemovePackageCommand(newTestActor(from), aggregate.ID(), pkg.ID())
	require.NoError(t, err)

	shipmentRepo := new(MockShipmentRepository)
	packageRepo := new(MockPackageRepository)
	uow := new(MockUoW)
	uow.On("ShipmentRepository").Return(shipmentRepo)
	uow.On("PackageRepository").Return(packageRepo)
	uow.On("Begin", ctx).Return(nil).Once()
	uow.On("Rollback", ctx).Return(nil).Once()
	shipmentRepo.On("GetLocked", mock.Anything, aggregate.ID()).Return(aggregate, nil).Once()
	packageRepo.On("Get", mock.Anything, pkg.ID()).Return(pkg, nil).Once()

	factory := new(MockUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewRemovePackageCommandHandler(factory, new(MockOrganisationDirectory))
	err = h.Handle(ctx, cmd)
	require.Error(t, err)
	assert.Equal(t, errs.CodeWrongShipment, errs.CodeOf(err))
	packageRepo.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
}

func TestRemovePackageCommandHandler_Handle_UnlinkedPackage(t *testing.T) {
	ctx := t.Context()
	from := kernel.NewUUID()
	to := kernel.NewUUID()
	aggregate := newDraftShipment(from, to)

	pkg := newAvailablePackage(from)

	cmd, err := commands.NewRemovePackageCommand(newTestActor(from), aggregate.ID(), pkg.ID())
	require.NoError(t, err)

	shipmentRepo := new(MockShipmentRepository)
	packageRepo := new(MockPackageRepository)
	uow := new(MockUoW)
	uow.On("ShipmentRepository").Return(shipmentRepo)
	uow.On("PackageRepository").Return(packageRepo)
	uow.On("Begin", ctx).Return(nil).Once()
	uow.On("Rollback", ctx).Return(nil).Once()
	shipmentRepo.On("GetLocked", mock.Anything, aggregate.ID()).Return(aggregate, nil).Once()
	packageRepo.On("Get", mock.Anything, pkg.ID()).Return(pkg, nil).Once()

	factory := new(MockUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewRemovePackageCommandHandler(factory, new(MockOrganisationDirectory))
	err = h.Handle(ctx, cmd)
	require.Error(t, err)
	assert.Equal(t, errs.CodeWrongShipment, errs.CodeOf(err))
}

func TestRemovePackageCommandHandler_Handle_ReceiverOfInternalSenderForbidden(t *testing.T) {
	ctx := t.Context()
	from := kernel.NewUUID()
	to := kernel.NewUUID()
	aggregate := newDraftShipment(from, to)

	pkg := newAvailablePackage(from)
	require.NoError(t, pkg.AssignToShipment(aggregate.ID(), 1, "ABC-XYZ-001/001"))

	cmd, err := commands.NewRemovePackageCommand(newTestActor(to), aggregate.ID(), pkg.ID())
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

	h := commands.NewRemovePackageCommandHandler(factory, internalSenderDirectory(from))
	err = h.Handle(ctx, cmd)
	require.Error(t, err)
	assert.Equal(t, errs.CodeForbidden, errs.CodeOf(err))
	packageRepo.AssertNotCalled(t, "Get", mock.Anything, mock.Anything)
}

func TestRemovePackageCommandHandler_Handle_PendingShipmentRejected(t *testing.T) {
	ctx := t.Context()
	from := kernel.NewUUID()
	to := kernel.NewUUID()
	aggregate := newPendingShipment(from, to)

	cmd, err := commands.NewRemovePackageCommand(newTestActor(from), aggregate.ID(), kernel.NewUUID())
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

	h := commands.NewRemovePackageCommandHandler(factory, new(MockOrganisationDirectory))
	err = h.Handle(ctx, cmd)
	require.Error(t, err)
	assert.ErrorIs(t, err, errs.ErrNotDraft)
	packageRepo.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
}
