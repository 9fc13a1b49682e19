package cmd

import (
	"timberops/internal/adapters/out/postgres"
	"timberops/internal/adapters/out/postgres/orgrepo"
	"timberops/internal/core/application/usecases/commands"
	"timberops/internal/core/application/usecases/queries"
	"timberops/internal/core/domain/services"
	"timberops/internal/core/ports"

	"gorm.io/gorm"
)

type CompositionRoot struct {
	gormDB      *gorm.DB
	uowFactory  postgres.GormUnitOfWorkFactory
	directory   ports.OrganisationDirectory
	codeService *services.ShipmentCodeService
}

func NewCompositionRoot(_ Config, gormDB *gorm.DB) CompositionRoot {
	return CompositionRoot{
		gormDB:      gormDB,
		uowFactory:  *postgres.NewGormUnitOfWorkFactory(gormDB),
		directory:   orgrepo.NewGormOrganisationDirectory(gormDB),
		codeService: services.NewShipmentCodeService(),
	}
}

// Directory exposes the organisation lookup for the HTTP layer.
func (c *CompositionRoot) Directory() ports.OrganisationDirectory {
	return c.directory
}

// CodeService exposes the shipment code builder for the HTTP layer.
func (c *CompositionRoot) CodeService() *services.ShipmentCodeService {
	return c.codeService
}

// ShipmentRepository returns a repository bound to the main connection, for
// read-only use outside a unit of work.
func (c *CompositionRoot) ShipmentRepository() ports.ShipmentRepository {
	return c.uowFactory.Create().ShipmentRepository()
}

func (c *CompositionRoot) shipmentUoWFactory() commands.ShipmentUoWFactory {
	return FuncShipmentUoWFactory(func() commands.ShipmentUoW {
		return c.uowFactory.Create()
	})
}

func (c *CompositionRoot) fullUoWFactory() commands.UoWFactory {
	return FuncUoWFactory(func() commands.UoW {
		return c.uowFactory.Create()
	})
}

func (c *CompositionRoot) CreateCreateDraftShipmentCommandHandler() commands.CreateDraftShipmentCommandHandler {
	return commands.NewCreateDraftShipmentCommandHandler(c.shipmentUoWFactory(), c.directory, c.codeService)
}

func (c *CompositionRoot) CreateSubmitShipmentCommandHandler() commands.SubmitShipmentCommandHandler {
	return commands.NewSubmitShipmentCommandHandler(c.fullUoWFactory())
}

func (c *CompositionRoot) CreateCancelSubmissionCommandHandler() commands.CancelSubmissionCommandHandler {
	return commands.NewCancelSubmissionCommandHandler(c.shipmentUoWFactory())
}

func (c *CompositionRoot) CreateAcceptShipmentCommandHandler() commands.AcceptShipmentCommandHandler {
	return commands.NewAcceptShipmentCommandHandler(c.fullUoWFactory())
}

func (c *CompositionRoot) CreateRejectShipmentCommandHandler() commands.RejectShipmentCommandHandler {
	return commands.NewRejectShipmentCommandHandler(c.shipmentUoWFactory())
}

func (c *CompositionRoot) CreateDeleteShipmentCommandHandler() commands.DeleteShipmentCommandHandler {
	return commands.NewDeleteShipmentCommandHandler(c.fullUoWFactory(), c.directory)
}

func (c *CompositionRoot) CreateAddPackagesCommandHandler() commands.AddPackagesCommandHandler {
	return commands.NewAddPackagesCommandHandler(c.fullUoWFactory(), c.directory)
}

func (c *CompositionRoot) CreateRemovePackageCommandHandler() commands.RemovePackageCommandHandler {
	return commands.NewRemovePackageCommandHandler(c.fullUoWFactory(), c.directory)
}

func (c *CompositionRoot) CreateSavePackagesCommandHandler() commands.SavePackagesCommandHandler {
	return commands.NewSavePackagesCommandHandler(c.fullUoWFactory(), c.directory)
}

func (c *CompositionRoot) CreateCreatePalletCommandHandler() commands.CreatePalletCommandHandler {
	return commands.NewCreatePalletCommandHandler(c.shipmentUoWFactory(), c.directory)
}

func (c *CompositionRoot) CreateDeletePalletCommandHandler() commands.DeletePalletCommandHandler {
	return commands.NewDeletePalletCommandHandler(c.fullUoWFactory(), c.directory)
}

func (c *CompositionRoot) CreateAssignPackageToPalletCommandHandler() commands.AssignPackageToPalletCommandHandler {
	return commands.NewAssignPackageToPalletCommandHandler(c.fullUoWFactory(), c.directory)
}

func (c *CompositionRoot) CreateGetShipmentQueryHandler() queries.GetShipmentQueryHandler {
	return queries.NewGetShipmentQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetAvailablePackagesQueryHandler() queries.GetAvailablePackagesQueryHandler {
	return queries.NewGetAvailablePackagesQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetStalePendingQueryHandler() queries.GetStalePendingQueryHandler {
	return queries.NewGetStalePendingQueryHandler(c.gormDB)
}

type FuncShipmentUoWFactory func() commands.ShipmentUoW

func (f FuncShipmentUoWFactory) Create() commands.ShipmentUoW {
	return f()
}

type FuncUoWFactory func() commands.UoW

func (f FuncUoWFactory) Create() commands.UoW {
	return f()
}
