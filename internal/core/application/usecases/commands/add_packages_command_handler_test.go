package commands_test

import (
	"testing"

	"timberops/internal/core/application/usecases/commands"
	"timberops/internal/core/domain/model/inventory"
	"timberops/internal/core/domain/model/kernel"
	"timberops/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestAddPackagesCommandHandler_Handle_LinksOwnedAndSkipsRest(t *testing.T) {
	ctx := t.Context()
	from := kernel.NewUUID()
	to := kernel.NewUUID()
	aggregate := newDraftShipment(from, to)

	pkg1 := newAvailablePackage(from)
	pkg2 := newAvailablePackage(from)
	foreignID := kernel.NewUUID()
	requested := []kernel.UUID{pkg1.ID(), foreignID, pkg2.ID()}

	cmd, err := commands.NewAddPackagesCommand(newTestActor(from), aggregate.ID(), requested)
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
	packageRepo.On("GetOwnedAvailable", mock.Anything, from, requested).
		Return([]*inventory.Package{pkg1, pkg2}, nil).Once()
	packageRepo.On("MaxSequence", mock.Anything, aggregate.ID()).Return(4, nil).Once()
	packageRepo.On("Update", mock.Anything, pkg1).Return(nil).Once()
	packageRepo.On("Update", mock.Anything, pkg2).Return(nil).Once()

	factory := new(MockUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewAddPackagesCommandHandler(factory, new(MockOrganisationDirectory))
	result, err := h.Handle(ctx, cmd)
	require.NoError(t, err)

	require.Len(t, result.LinkedIDs, 2)
	require.Len(t, result.SkippedIDs, 1)
	assert.True(t, result.SkippedIDs[0].IsEqual(foreignID))

	require.NotNil(t, pkg1.ShipmentID())
	assert.True(t, pkg1.ShipmentID().IsEqual(aggregate.ID()))
	assert.Equal(t, 5, pkg1.Sequence())
	assert.Equal(t, "ABC-XYZ-001/005", pkg1.PackageNumber())
	assert.Equal(t, 6, pkg2.Sequence())
	assert.Equal(t, "ABC-XYZ-001/006", pkg2.PackageNumber())
	packageRepo.AssertExpectations(t)
}

func TestAddPackagesCommandHandler_Handle_NoValidPackages(t *testing.T) {
	ctx := t.Context()
	from := kernel.NewUUID()
	to := kernel.NewUUID()
	aggregate := newDraftShipment(from, to)
	requested := []kernel.UUID{kernel.NewUUID()}

	cmd, err := commands.NewAddPackagesCommand(newTestActor(from), aggregate.ID(), requested)
	require.NoError(t, err)

	shipmentRepo := new(MockShipmentRepository)
	packageRepo := new(MockPackageRepository)
	uow := new(MockUoW)
	uow.On("ShipmentRepository").Return(shipmentRepo)
	uow.On("PackageRepository").Return(packageRepo)
	uow.On("Begin", ctx).Return(nil).Once()
	uow.On("Rollback", ctx).Return(nil).Once()
	shipmentRepo.On("GetLocked", mock.Anything, aggregate.ID()).Return(aggregate, nil).Once()
	packageRepo.On("GetOwnedAvailable", mock.Anything, from, requested).
		Return([]*inventory.Package{}, nil).Once()

	factory := new(MockUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewAddPackagesCommandHandler(factory, new(MockOrganisationDirectory))
	_, err = h.Handle(ctx, cmd)
	require.Error(t, err)
	assert.ErrorIs(t, err, errs.ErrNoValidPackages)
	uow.AssertNotCalled(t, "Commit", mock.Anything)
}

func TestAddPackagesCommandHandler_Handle_PendingShipmentIsNotDraft(t *testing.T) {
	ctx := t.Context()
	from := kernel.NewUUID()
	to := kernel.NewUUID()
	aggregate := newPendingShipment(from, to)

	cmd, err := commands.NewAddPackagesCommand(
		newTestActor(from), aggregate.ID(), []kernel.UUID{kernel.NewUUID()})
	require.NoError(t, err)

	shipmentRepo := new(MockShipmentRepository)
	uow := new(MockUoW)
	uow.On("ShipmentRepository").Return(shipmentRepo)
	uow.On("Begin", ctx).Return(nil).Once()
	uow.On("Rollback", ctx).Return(nil).Once()
	shipmentRepo.On("GetLocked", mock.Anything, aggregate.ID()).Return(aggregate, nil).Once()

	factory := new(MockUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewAddPackagesCommandHandler(factory, new(MockOrganisationDirectory))
	_, err = h.Handle(ctx, cmd)
	require.Error(t, err)
	assert.Equal(t, errs.CodeNotDraft, errs.CodeOf(err))
}
