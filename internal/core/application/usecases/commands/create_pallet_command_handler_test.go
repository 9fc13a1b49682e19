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

func TestCreatePalletCommandHandler_Handle_NumbersSequentially(t *testing.T) {
	ctx := t.Context()
	from := kernel.NewUUID()
	to := kernel.NewUUID()
	aggregate := newDraftShipment(from, to)
	_, err := aggregate.CreatePallet(kernel.NewUUID())
	require.NoError(t, err)

	palletID := kernel.NewUUID()
	cmd, err := commands.NewCreatePalletCommand(newTestActor(from), aggregate.ID(), palletID)
	require.NoError(t, err)

	repo := new(MockShipmentRepository)
	uow := new(MockShipmentUoW)
	uow.On("ShipmentRepository").Return(repo)
	uow.On("Begin", ctx).Return(nil).Once()
	uow.On("Commit", ctx).Return(nil).Once()
	uow.On("Rollback", ctx).Return(nil).Once()
	repo.On("Get", mock.Anything, aggregate.ID()).Return(aggregate, nil).Once()
	repo.On("Update", mock.Anything, aggregate).Return(nil).Once()

	factory := new(MockShipmentUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewCreatePalletCommandHandler(factory, new(MockOrganisationDirectory))
	result, err := h.Handle(ctx, cmd)
	require.NoError(t, err)
	assert.Equal(t, palletID.String(), result.PalletID)
	assert.Equal(t, 2, result.PalletNumber)
	assert.Len(t, aggregate.Pallets(), 2)
}

func TestCreatePalletCommandHandler_Handle_PendingShipmentIsNotDraft(t *testing.T) {
	ctx := t.Context()
	from := kernel.NewUUID()
	to := kernel.NewUUID()
	aggregate := newPendingShipment(from, to)

	cmd, err := commands.NewCreatePalletCommand(newTestActor(from), aggregate.ID(), kernel.NewUUID())
	require.NoError(t, err)

	repo := new(MockShipmentRepository)
	uow := new(MockShipmentUoW)
	uow.On("ShipmentRepository").Return(repo)
	uow.On("Begin", ctx).Return(nil).Once()
	uow.On("Rollback", ctx).Return(nil).Once()
	repo.On("Get", mock.Anything, aggregate.ID()).Return(aggregate, nil).Once()

	factory := new(MockShipmentUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewCreatePalletCommandHandler(factory, new(MockOrganisationDirectory))
	_, err = h.Handle(ctx, cmd)
	require.Error(t, err)
	assert.Equal(t, errs.CodeNotDraft, errs.CodeOf(err))
	repo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
}
