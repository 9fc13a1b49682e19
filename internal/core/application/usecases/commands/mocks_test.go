package commands_test

import (
	"context"
	"time"

	"timberops/internal/core/application/usecases/commands"
	"timberops/internal/core/domain/model/inventory"
	"timberops/internal/core/domain/model/kernel"
	"timberops/internal/core/domain/model/shipment"
	"timberops/internal/core/ports"

	"github.com/stretchr/testify/mock"
)

type MockShipmentRepository struct{ mock.Mock }

func (m *MockShipmentRepository) Add(ctx context.Context, s *shipment.Shipment) error {
	args := m.Called(ctx, s)
	return args.Error(0)
}
func (m *MockShipmentRepository) Update(ctx context.Context, s *shipment.Shipment) error {
	args := m.Called(ctx, s)
	return args.Error(0)
}
func (m *MockShipmentRepository) Get(ctx context.Context, id kernel.UUID) (*shipment.Shipment, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*shipment.Shipment), args.Error(1)
}
func (m *MockShipmentRepository) GetLocked(ctx context.Context, id kernel.UUID) (*shipment.Shipment, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*shipment.Shipment), args.Error(1)
}
func (m *MockShipmentRepository) CountBetween(ctx context.Context, from, to kernel.UUID) (int64, error) {
	args := m.Called(ctx, from, to)
	return args.Get(0).(int64), args.Error(1)
}
func (m *MockShipmentRepository) NextShipmentNumber(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}
func (m *MockShipmentRepository) Delete(ctx context.Context, id kernel.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

type MockPackageRepository struct{ mock.Mock }

func (m *MockPackageRepository) Add(ctx context.Context, p *inventory.Package) error {
	args := m.Called(ctx, p)
	return args.Error(0)
}
func (m *MockPackageRepository) Update(ctx context.Context, p *inventory.Package) error {
	args := m.Called(ctx, p)
	return args.Error(0)
}
func (m *MockPackageRepository) Get(ctx context.Context, id kernel.UUID) (*inventory.Package, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*inventory.Package), args.Error(1)
}
func (m *MockPackageRepository) GetByShipment(ctx context.Context, shipmentID kernel.UUID) ([]*inventory.Package, error) {
	args := m.Called(ctx, shipmentID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*inventory.Package), args.Error(1)
}
func (m *MockPackageRepository) GetOwnedAvailable(
	ctx context.Context, organisationID kernel.UUID, ids []kernel.UUID,
) ([]*inventory.Package, error) {
	args := m.Called(ctx, organisationID, ids)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*inventory.Package), args.Error(1)
}
func (m *MockPackageRepository) CountByShipment(ctx context.Context, shipmentID kernel.UUID) (int64, error) {
	args := m.Called(ctx, shipmentID)
	return args.Get(0).(int64), args.Error(1)
}
func (m *MockPackageRepository) MaxSequence(ctx context.Context, shipmentID kernel.UUID) (int, error) {
	args := m.Called(ctx, shipmentID)
	return args.Get(0).(int), args.Error(1)
}
func (m *MockPackageRepository) TransferOwnership(
	ctx context.Context, shipmentID kernel.UUID, newOrganisationID kernel.UUID,
) (int64, error) {
	args := m.Called(ctx, shipmentID, newOrganisationID)
	return args.Get(0).(int64), args.Error(1)
}
func (m *MockPackageRepository) UnlinkByShipment(ctx context.Context, shipmentID kernel.UUID) error {
	args := m.Called(ctx, shipmentID)
	return args.Error(0)
}
func (m *MockPackageRepository) DeleteByShipment(ctx context.Context, shipmentID kernel.UUID) error {
	args := m.Called(ctx, shipmentID)
	return args.Error(0)
}
func (m *MockPackageRepository) Delete(ctx context.Context, id kernel.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}
func (m *MockPackageRepository) ClearPallet(ctx context.Context, palletID kernel.UUID) error {
	args := m.Called(ctx, palletID)
	return args.Error(0)
}
func (m *MockPackageRepository) CountProductionReferences(ctx context.Context, shipmentID kernel.UUID) (int64, error) {
	args := m.Called(ctx, shipmentID)
	return args.Get(0).(int64), args.Error(1)
}

type MockOrganisationDirectory struct{ mock.Mock }

func (m *MockOrganisationDirectory) GetOrganisation(ctx context.Context, id kernel.UUID) (ports.Organisation, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(ports.Organisation), args.Error(1)
}
func (m *MockOrganisationDirectory) IsTradingPartner(
	ctx context.Context, organisationID, partnerID kernel.UUID,
) (bool, error) {
	args := m.Called(ctx, organisationID, partnerID)
	return args.Bool(0), args.Error(1)
}

type MockShipmentUoW struct{ mock.Mock }

func (m *MockShipmentUoW) Begin(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}
func (m *MockShipmentUoW) Commit(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}
func (m *MockShipmentUoW) Rollback(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}
func (m *MockShipmentUoW) ShipmentRepository() ports.ShipmentRepository {
	args := m.Called()
	return args.Get(0).(ports.ShipmentRepository)
}

type MockShipmentUoWFactory struct{ mock.Mock }

func (m *MockShipmentUoWFactory) Create() commands.ShipmentUoW {
	args := m.Called()
	return args.Get(0).(commands.ShipmentUoW)
}

type MockUoW struct{ mock.Mock }

func (m *MockUoW) Begin(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}
func (m *MockUoW) Commit(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}
func (m *MockUoW) Rollback(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}
func (m *MockUoW) SavePoint(ctx context.Context, name string) error {
	args := m.Called(ctx, name)
	return args.Error(0)
}
func (m *MockUoW) RollbackTo(ctx context.Context, name string) error {
	args := m.Called(ctx, name)
	return args.Error(0)
}
func (m *MockUoW) ShipmentRepository() ports.ShipmentRepository {
	args := m.Called()
	return args.Get(0).(ports.ShipmentRepository)
}
func (m *MockUoW) PackageRepository() ports.PackageRepository {
	args := m.Called()
	return args.Get(0).(ports.PackageRepository)
}

type MockUoWFactory struct{ mock.Mock }

func (m *MockUoWFactory) Create() commands.UoW {
	args := m.Called()
	return args.Get(0).(commands.UoW)
}

// Shared fixtures.

func newTestActor(orgID kernel.UUID) commands.Actor {
	actor, err := commands.NewActor(orgID, kernel.NewUUID())
	if err != nil {
		panic(err)
	}
	return actor
}

func newDraftShipment(from, to kernel.UUID) *shipment.Shipment {
	s, err := shipment.NewShipment(kernel.NewUUID(), "ABC-XYZ-001", 1, from, to)
	if err != nil {
		panic(err)
	}
	return s
}

func newPendingShipment(from, to kernel.UUID) *shipment.Shipment {
	submitted := time.Now().UTC()
	s, err := shipment.RestoreShipment(
		kernel.NewUUID(), "ABC-XYZ-001", 1, from, to,
		shipment.Pending, &submitted, nil, nil, "", nil, nil, nil, 1,
	)
	if err != nil {
		panic(err)
	}
	return s
}

func newAvailablePackage(owner kernel.UUID) *inventory.Package {
	p, err := inventory.NewPackage(kernel.NewUUID(), owner, inventory.Attributes{
		ProductName: "Sawn spruce",
		Thickness:   inventory.NewDimension("25"),
		Width:       inventory.NewDimension("100"),
		Length:      inventory.NewDimension("3000"),
		Pieces:      inventory.NewDimension("10"),
	})
	if err != nil {
		panic(err)
	}
	return p
}
