// Package http exposes the shipment engine over a JSON API.
// Every failure is serialized as a {code, error} envelope so clients can
// branch on the code without parsing messages.
package http

import (
	"fmt"
	"net/http"
	"strconv"
	"time"

	"timberops/internal/core/application/usecases/commands"
	"timberops/internal/core/application/usecases/queries"
	"timberops/internal/core/domain/model/inventory"
	"timberops/internal/core/domain/model/kernel"
	"timberops/internal/core/domain/services"
	"timberops/internal/core/ports"
	"timberops/internal/pkg/errs"

	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"
)

const (
	headerOrganisationID = "X-Organisation-Id"
	headerUserID         = "X-User-Id"
)

// Server coordinates between HTTP handlers and application use cases.
type Server struct {
	createDraftHandler     commands.CreateDraftShipmentCommandHandler
	submitHandler          commands.SubmitShipmentCommandHandler
	cancelHandler          commands.CancelSubmissionCommandHandler
	acceptHandler          commands.AcceptShipmentCommandHandler
	rejectHandler          commands.RejectShipmentCommandHandler
	deleteShipmentHandler  commands.DeleteShipmentCommandHandler
	addPackagesHandler     commands.AddPackagesCommandHandler
	removePackageHandler   commands.RemovePackageCommandHandler
	savePackagesHandler    commands.SavePackagesCommandHandler
	createPalletHandler    commands.CreatePalletCommandHandler
	deletePalletHandler    commands.DeletePalletCommandHandler
	assignToPalletHandler  commands.AssignPackageToPalletCommandHandler
	getShipmentHandler     queries.GetShipmentQueryHandler
	availablePkgsHandler   queries.GetAvailablePackagesQueryHandler
	stalePendingHandler    queries.GetStalePendingQueryHandler
	shipments              ports.ShipmentRepository
	directory              ports.OrganisationDirectory
	codeService            *services.ShipmentCodeService
}

// NewServer creates a new HTTP server with the required handlers.
func NewServer(
	createDraftHandler commands.CreateDraftShipmentCommandHandler,
	submitHandler commands.SubmitShipmentCommandHandler,
	cancelHandler commands.CancelSubmissionCommandHandler,
	acceptHandler commands.AcceptShipmentCommandHandler,
	rejectHandler commands.RejectShipmentCommandHandler,
	deleteShipmentHandler commands.DeleteShipmentCommandHandler,
	addPackagesHandler commands.AddPackagesCommandHandler,
	removePackageHandler commands.RemovePackageCommandHandler,
	savePackagesHandler commands.SavePackagesCommandHandler,
	createPalletHandler commands.CreatePalletCommandHandler,
	deletePalletHandler commands.DeletePalletCommandHandler,
	assignToPalletHandler commands.AssignPackageToPalletCommandHandler,
	getShipmentHandler queries.GetShipmentQueryHandler,
	availablePkgsHandler queries.GetAvailablePackagesQueryHandler,
	stalePendingHandler queries.GetStalePendingQueryHandler,
	shipments ports.ShipmentRepository,
	directory ports.OrganisationDirectory,
	codeService *services.ShipmentCodeService,
) *Server {
	return &Server{
		createDraftHandler:    createDraftHandler,
		submitHandler:         submitHandler,
		cancelHandler:         cancelHandler,
		acceptHandler:         acceptHandler,
		rejectHandler:         rejectHandler,
		deleteShipmentHandler: deleteShipmentHandler,
		addPackagesHandler:    addPackagesHandler,
		removePackageHandler:  removePackageHandler,
		savePackagesHandler:   savePackagesHandler,
		createPalletHandler:   createPalletHandler,
		deletePalletHandler:   deletePalletHandler,
		assignToPalletHandler: assignToPalletHandler,
		getShipmentHandler:    getShipmentHandler,
		availablePkgsHandler:  availablePkgsHandler,
		stalePendingHandler:   stalePendingHandler,
		shipments:             shipments,
		directory:             directory,
		codeService:           codeService,
	}
}

// RegisterRoutes mounts all API routes on the echo instance.
func (s *Server) RegisterRoutes(e *echo.Echo) {
	api := e.Group("/api/v1")

	api.POST("/shipments", s.CreateDraftShipment)
	api.GET("/shipments/code-preview", s.PreviewShipmentCode)
	api.GET("/shipments/stale-pending", s.GetStalePendingShipments)
	api.GET("/shipments/:id", s.GetShipment)
	api.DELETE("/shipments/:id", s.DeleteShipment)

	api.POST("/shipments/:id/submit", s.SubmitShipment)
	api.POST("/shipments/:id/cancel", s.CancelSubmission)
	api.POST("/shipments/:id/accept", s.AcceptShipment)
	api.POST("/shipments/:id/reject", s.RejectShipment)

	api.POST("/shipments/:id/packages", s.AddPackages)
	api.PUT("/shipments/:id/packages", s.SavePackages)
	api.DELETE("/shipments/:id/packages/:packageId", s.RemovePackage)
	api.PUT("/shipments/:id/packages/:packageId/pallet", s.AssignPackageToPallet)

	api.POST("/shipments/:id/pallets", s.CreatePallet)
	api.DELETE("/shipments/:id/pallets/:palletId", s.DeletePallet)

	api.GET("/packages/available", s.GetAvailablePackages)
}

type errorEnvelope struct {
	Code  string `json:"code"`
	Error string `json:"error"`
}

// httpStatusFor maps an error code to an HTTP status. Infrastructure codes
// surface as 500; everything the client can act on stays in the 4xx range.
func httpStatusFor(code errs.ErrorCode) int {
	switch code {
	case errs.CodeUnauthenticated:
		return http.StatusUnauthorized
	case errs.CodeForbidden, errs.CodeNoOrganisation:
		return http.StatusForbidden
	case errs.CodeNotFound, errs.CodeOrgNotFound, errs.CodePalletNotFound:
		return http.StatusNotFound
	case errs.CodeNotDraft, errs.CodeNotPending, errs.CodeDuplicateCode, errs.CodeWrongShipment:
		return http.StatusConflict
	case errs.CodeSameOrg, errs.CodeReasonRequired, errs.CodeNoPackages,
		errs.CodeNoValidPackages, errs.CodeValidationFailed:
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}

func writeError(ctx echo.Context, err error) error {
	code := errs.CodeOf(err)
	return ctx.JSON(httpStatusFor(code), errorEnvelope{
		Code:  string(code),
		Error: err.Error(),
	})
}

// actorFrom builds the caller identity from request headers.
func actorFrom(ctx echo.Context) (commands.Actor, error) {
	orgID, _ := kernel.UUIDFromString(ctx.Request().Header.Get(headerOrganisationID))
	userID, _ := kernel.UUIDFromString(ctx.Request().Header.Get(headerUserID))
	return commands.NewActor(orgID, userID)
}

func pathUUID(ctx echo.Context, name string) (kernel.UUID, error) {
	return kernel.UUIDFromString(ctx.Param(name))
}

type createDraftShipmentRequest struct {
	ID                 string   `json:"id"`
	FromOrganisationID string   `json:"from_organisation_id"`
	ToOrganisationID   string   `json:"to_organisation_id"`
	TransportCost      *float64 `json:"transport_cost,omitempty"`
}

type createDraftShipmentResponse struct {
	ID             string `json:"id"`
	ShipmentCode   string `json:"shipment_code"`
	ShipmentNumber int64  `json:"shipment_number"`
}

// CreateDraftShipment handles POST /api/v1/shipments.
func (s *Server) CreateDraftShipment(ctx echo.Context) error {
	actor, err := actorFrom(ctx)
	if err != nil {
		return writeError(ctx, err)
	}

	var req createDraftShipmentRequest
	if err := ctx.Bind(&req); err != nil {
		return writeError(ctx, errs.NewValueIsRequiredError("body"))
	}

	shipmentID, err := kernel.UUIDFromString(req.ID)
	if err != nil {
		return writeError(ctx, errs.NewValueIsInvalidErrorWithCause("id", err))
	}
	fromID, err := kernel.UUIDFromString(req.FromOrganisationID)
	if err != nil {
		return writeError(ctx, errs.NewValueIsInvalidErrorWithCause("from_organisation_id", err))
	}
	toID, err := kernel.UUIDFromString(req.ToOrganisationID)
	if err != nil {
		return writeError(ctx, errs.NewValueIsInvalidErrorWithCause("to_organisation_id", err))
	}

	var cost *kernel.Money
	if req.TransportCost != nil {
		money, moneyErr := kernel.MoneyFromFloat(*req.TransportCost)
		if moneyErr != nil {
			return writeError(ctx, errs.NewValueIsInvalidErrorWithCause("transport_cost", moneyErr))
		}
		cost = &money
	}

	cmd, err := commands.NewCreateDraftShipmentCommand(actor, shipmentID, fromID, toID, cost)
	if err != nil {
		return writeError(ctx, err)
	}

	result, err := s.createDraftHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return writeError(ctx, err)
	}

	return ctx.JSON(http.StatusCreated, createDraftShipmentResponse{
		ID:             result.ShipmentID,
		ShipmentCode:   result.ShipmentCode,
		ShipmentNumber: result.ShipmentNumber,
	})
}

type codePreviewResponse struct {
	ShipmentCode string `json:"shipment_code"`
}

// PreviewShipmentCode handles GET /api/v1/shipments/code-preview.
// The preview is advisory: the code is assigned for real, under a lock,
// when the draft is created.
func (s *Server) PreviewShipmentCode(ctx echo.Context) error {
	fromID, err := kernel.UUIDFromString(ctx.QueryParam("from"))
	if err != nil {
		return writeError(ctx, errs.NewValueIsInvalidErrorWithCause("from", err))
	}
	toID, err := kernel.UUIDFromString(ctx.QueryParam("to"))
	if err != nil {
		return writeError(ctx, errs.NewValueIsInvalidErrorWithCause("to", err))
	}

	reqCtx := ctx.Request().Context()

	from, err := s.directory.GetOrganisation(reqCtx, fromID)
	if err != nil {
		return writeError(ctx, err)
	}
	to, err := s.directory.GetOrganisation(reqCtx, toID)
	if err != nil {
		return writeError(ctx, err)
	}

	count, err := s.shipments.CountBetween(reqCtx, fromID, toID)
	if err != nil {
		return writeError(ctx, errs.NewDomainErrorWithCause(errs.CodeCountFailed,
			"failed to count shipments between the organisations", err))
	}

	code, err := s.codeService.NextCode(from.Code, to.Code, count)
	if err != nil {
		return writeError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, codePreviewResponse{ShipmentCode: code})
}

// GetShipment handles GET /api/v1/shipments/:id.
func (s *Server) GetShipment(ctx echo.Context) error {
	actor, err := actorFrom(ctx)
	if err != nil {
		return writeError(ctx, err)
	}
	shipmentID, err := pathUUID(ctx, "id")
	if err != nil {
		return writeError(ctx, errs.NewValueIsInvalidErrorWithCause("id", err))
	}

	query, err := queries.NewGetShipmentQuery(actor.OrganisationID(), shipmentID)
	if err != nil {
		return writeError(ctx, err)
	}

	response, err := s.getShipmentHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return writeError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, toShipmentJSON(response))
}

// DeleteShipment handles DELETE /api/v1/shipments/:id.
func (s *Server) DeleteShipment(ctx echo.Context) error {
	actor, err := actorFrom(ctx)
	if err != nil {
		return writeError(ctx, err)
	}
	shipmentID, err := pathUUID(ctx, "id")
	if err != nil {
		return writeError(ctx, errs.NewValueIsInvalidErrorWithCause("id", err))
	}

	cmd, err := commands.NewDeleteShipmentCommand(actor, shipmentID)
	if err != nil {
		return writeError(ctx, err)
	}

	if err := s.deleteShipmentHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return writeError(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// SubmitShipment handles POST /api/v1/shipments/:id/submit.
func (s *Server) SubmitShipment(ctx echo.Context) error {
	actor, err := actorFrom(ctx)
	if err != nil {
		return writeError(ctx, err)
	}
	shipmentID, err := pathUUID(ctx, "id")
	if err != nil {
		return writeError(ctx, errs.NewValueIsInvalidErrorWithCause("id", err))
	}

	cmd, err := commands.NewSubmitShipmentCommand(actor, shipmentID)
	if err != nil {
		return writeError(ctx, err)
	}

	if err := s.submitHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return writeError(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// CancelSubmission handles POST /api/v1/shipments/:id/cancel.
func (s *Server) CancelSubmission(ctx echo.Context) error {
	actor, err := actorFrom(ctx)
	if err != nil {
		return writeError(ctx, err)
	}
	shipmentID, err := pathUUID(ctx, "id")
	if err != nil {
		return writeError(ctx, errs.NewValueIsInvalidErrorWithCause("id", err))
	}

	cmd, err := commands.NewCancelSubmissionCommand(actor, shipmentID)
	if err != nil {
		return writeError(ctx, err)
	}

	if err := s.cancelHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return writeError(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

type acceptShipmentResponse struct {
	PackagesTransferred int64 `json:"packages_transferred"`
}

// AcceptShipment handles POST /api/v1/shipments/:id/accept.
func (s *Server) AcceptShipment(ctx echo.Context) error {
	actor, err := actorFrom(ctx)
	if err != nil {
		return writeError(ctx, err)
	}
	shipmentID, err := pathUUID(ctx, "id")
	if err != nil {
		return writeError(ctx, errs.NewValueIsInvalidErrorWithCause("id", err))
	}

	cmd, err := commands.NewAcceptShipmentCommand(actor, shipmentID)
	if err != nil {
		return writeError(ctx, err)
	}

	result, err := s.acceptHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return writeError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, acceptShipmentResponse{
		PackagesTransferred: result.PackagesTransferred,
	})
}

type rejectShipmentRequest struct {
	Reason string `json:"reason"`
}

// RejectShipment handles POST /api/v1/shipments/:id/reject.
func (s *Server) RejectShipment(ctx echo.Context) error {
	actor, err := actorFrom(ctx)
	if err != nil {
		return writeError(ctx, err)
	}
	shipmentID, err := pathUUID(ctx, "id")
	if err != nil {
		return writeError(ctx, errs.NewValueIsInvalidErrorWithCause("id", err))
	}

	var req rejectShipmentRequest
	if err := ctx.Bind(&req); err != nil {
		return writeError(ctx, errs.NewValueIsRequiredError("body"))
	}

	cmd, err := commands.NewRejectShipmentCommand(actor, shipmentID, req.Reason)
	if err != nil {
		return writeError(ctx, err)
	}

	if err := s.rejectHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return writeError(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

type addPackagesRequest struct {
	PackageIDs []string `json:"package_ids"`
}

type addPackagesResponse struct {
	LinkedIDs  []string `json:"linked_ids"`
	SkippedIDs []string `json:"skipped_ids"`
}

// AddPackages handles POST /api/v1/shipments/:id/packages.
func (s *Server) AddPackages(ctx echo.Context) error {
	actor, err := actorFrom(ctx)
	if err != nil {
		return writeError(ctx, err)
	}
	shipmentID, err := pathUUID(ctx, "id")
	if err != nil {
		return writeError(ctx, errs.NewValueIsInvalidErrorWithCause("id", err))
	}

	var req addPackagesRequest
	if err := ctx.Bind(&req); err != nil {
		return writeError(ctx, errs.NewValueIsRequiredError("body"))
	}

	ids := make([]kernel.UUID, 0, len(req.PackageIDs))
	for _, raw := range req.PackageIDs {
		id, idErr := kernel.UUIDFromString(raw)
		if idErr != nil {
			return writeError(ctx, errs.NewValueIsInvalidErrorWithCause("package_ids", idErr))
		}
		ids = append(ids, id)
	}

	cmd, err := commands.NewAddPackagesCommand(actor, shipmentID, ids)
	if err != nil {
		return writeError(ctx, err)
	}

	result, err := s.addPackagesHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return writeError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, addPackagesResponse{
		LinkedIDs:  uuidStrings(result.LinkedIDs),
		SkippedIDs: uuidStrings(result.SkippedIDs),
	})
}

// RemovePackage handles DELETE /api/v1/shipments/:id/packages/:packageId.
func (s *Server) RemovePackage(ctx echo.Context) error {
	actor, err := actorFrom(ctx)
	if err != nil {
		return writeError(ctx, err)
	}
	shipmentID, err := pathUUID(ctx, "id")
	if err != nil {
		return writeError(ctx, errs.NewValueIsInvalidErrorWithCause("id", err))
	}
	packageID, err := pathUUID(ctx, "packageId")
	if err != nil {
		return writeError(ctx, errs.NewValueIsInvalidErrorWithCause("packageId", err))
	}

	cmd, err := commands.NewRemovePackageCommand(actor, shipmentID, packageID)
	if err != nil {
		return writeError(ctx, err)
	}

	if err := s.removePackageHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return writeError(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

type packageAttributesRequest struct {
	ProductName string   `json:"product_name"`
	Species     string   `json:"species"`
	Humidity    string   `json:"humidity"`
	WoodType    string   `json:"wood_type"`
	Processing  string   `json:"processing"`
	FSC         string   `json:"fsc"`
	Quality     string   `json:"quality"`
	Thickness   string   `json:"thickness"`
	Width       string   `json:"width"`
	Length      string   `json:"length"`
	Pieces      string   `json:"pieces"`
	Volume      *float64 `json:"volume,omitempty"`
}

func (r packageAttributesRequest) toDomain() inventory.Attributes {
	attrs := inventory.Attributes{
		ProductName: r.ProductName,
		Species:     r.Species,
		Humidity:    r.Humidity,
		WoodType:    r.WoodType,
		Processing:  r.Processing,
		FSC:         r.FSC,
		Quality:     r.Quality,
		Thickness:   inventory.NewDimension(r.Thickness),
		Width:       inventory.NewDimension(r.Width),
		Length:      inventory.NewDimension(r.Length),
		Pieces:      inventory.NewDimension(r.Pieces),
	}
	if r.Volume != nil {
		attrs.Volume = decimal.NewFromFloat(*r.Volume)
	}
	return attrs
}

type savePackagesRequest struct {
	Creates []packageAttributesRequest `json:"creates"`
	Updates []struct {
		ID         string                   `json:"id"`
		Attributes packageAttributesRequest `json:"attributes"`
	} `json:"updates"`
	Deletes []string `json:"deletes"`
}

type savePackagesResponse struct {
	Created int      `json:"created"`
	Updated int      `json:"updated"`
	Deleted int      `json:"deleted"`
	Errors  []string `json:"errors,omitempty"`
}

// SavePackages handles PUT /api/v1/shipments/:id/packages.
func (s *Server) SavePackages(ctx echo.Context) error {
	actor, err := actorFrom(ctx)
	if err != nil {
		return writeError(ctx, err)
	}
	shipmentID, err := pathUUID(ctx, "id")
	if err != nil {
		return writeError(ctx, errs.NewValueIsInvalidErrorWithCause("id", err))
	}

	var req savePackagesRequest
	if err := ctx.Bind(&req); err != nil {
		return writeError(ctx, errs.NewValueIsRequiredError("body"))
	}

	creates := make([]inventory.Attributes, 0, len(req.Creates))
	for _, c := range req.Creates {
		creates = append(creates, c.toDomain())
	}

	updates := make([]commands.PackageUpdate, 0, len(req.Updates))
	for _, u := range req.Updates {
		id, idErr := kernel.UUIDFromString(u.ID)
		if idErr != nil {
			return writeError(ctx, errs.NewValueIsInvalidErrorWithCause("updates", idErr))
		}
		updates = append(updates, commands.PackageUpdate{
			ID:         id,
			Attributes: u.Attributes.toDomain(),
		})
	}

	deletes := make([]kernel.UUID, 0, len(req.Deletes))
	for _, raw := range req.Deletes {
		id, idErr := kernel.UUIDFromString(raw)
		if idErr != nil {
			return writeError(ctx, errs.NewValueIsInvalidErrorWithCause("deletes", idErr))
		}
		deletes = append(deletes, id)
	}

	cmd, err := commands.NewSavePackagesCommand(actor, shipmentID, creates, updates, deletes)
	if err != nil {
		return writeError(ctx, err)
	}

	result, handleErr := s.savePackagesHandler.Handle(ctx.Request().Context(), cmd)
	if handleErr != nil {
		return writeError(ctx, handleErr)
	}

	return ctx.JSON(http.StatusOK, savePackagesResponse{
		Created: result.Created,
		Updated: result.Updated,
		Deleted: result.Deleted,
		Errors:  result.Errors,
	})
}

type createPalletRequest struct {
	ID string `json:"id"`
}

type createPalletResponse struct {
	ID           string `json:"id"`
	PalletNumber int    `json:"pallet_number"`
}

// CreatePallet handles POST /api/v1/shipments/:id/pallets.
func (s *Server) CreatePallet(ctx echo.Context) error {
	actor, err := actorFrom(ctx)
	if err != nil {
		return writeError(ctx, err)
	}
	shipmentID, err := pathUUID(ctx, "id")
	if err != nil {
		return writeError(ctx, errs.NewValueIsInvalidErrorWithCause("id", err))
	}

	var req createPalletRequest
	if err := ctx.Bind(&req); err != nil {
		return writeError(ctx, errs.NewValueIsRequiredError("body"))
	}

	palletID, err := kernel.UUIDFromString(req.ID)
	if err != nil {
		return writeError(ctx, errs.NewValueIsInvalidErrorWithCause("pallet id", err))
	}

	cmd, err := commands.NewCreatePalletCommand(actor, shipmentID, palletID)
	if err != nil {
		return writeError(ctx, err)
	}

	result, err := s.createPalletHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return writeError(ctx, err)
	}

	return ctx.JSON(http.StatusCreated, createPalletResponse{
		ID:           result.PalletID,
		PalletNumber: result.PalletNumber,
	})
}

// DeletePallet handles DELETE /api/v1/shipments/:id/pallets/:palletId.
func (s *Server) DeletePallet(ctx echo.Context) error {
	actor, err := actorFrom(ctx)
	if err != nil {
		return writeError(ctx, err)
	}
	shipmentID, err := pathUUID(ctx, "id")
	if err != nil {
		return writeError(ctx, errs.NewValueIsInvalidErrorWithCause("id", err))
	}
	palletID, err := pathUUID(ctx, "palletId")
	if err != nil {
		return writeError(ctx, errs.NewValueIsInvalidErrorWithCause("palletId", err))
	}

	cmd, err := commands.NewDeletePalletCommand(actor, shipmentID, palletID)
	if err != nil {
		return writeError(ctx, err)
	}

	if err := s.deletePalletHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return writeError(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

type assignPackageToPalletRequest struct {
	PalletID *string `json:"pallet_id"`
}

// AssignPackageToPallet handles PUT /api/v1/shipments/:id/packages/:packageId/pallet.
// A null pallet_id makes the package loose.
func (s *Server) AssignPackageToPallet(ctx echo.Context) error {
	actor, err := actorFrom(ctx)
	if err != nil {
		return writeError(ctx, err)
	}
	shipmentID, err := pathUUID(ctx, "id")
	if err != nil {
		return writeError(ctx, errs.NewValueIsInvalidErrorWithCause("id", err))
	}
	packageID, err := pathUUID(ctx, "packageId")
	if err != nil {
		return writeError(ctx, errs.NewValueIsInvalidErrorWithCause("packageId", err))
	}

	var req assignPackageToPalletRequest
	if err := ctx.Bind(&req); err != nil {
		return writeError(ctx, errs.NewValueIsRequiredError("body"))
	}

	var palletID *kernel.UUID
	if req.PalletID != nil {
		id, idErr := kernel.UUIDFromString(*req.PalletID)
		if idErr != nil {
			return writeError(ctx, errs.NewValueIsInvalidErrorWithCause("pallet_id", idErr))
		}
		palletID = &id
	}

	cmd, err := commands.NewAssignPackageToPalletCommand(actor, shipmentID, packageID, palletID)
	if err != nil {
		return writeError(ctx, err)
	}

	if err := s.assignToPalletHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return writeError(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

type availablePackageJSON struct {
	ID          string          `json:"id"`
	ProductName string          `json:"product_name"`
	Species     string          `json:"species"`
	Thickness   string          `json:"thickness"`
	Width       string          `json:"width"`
	Length      string          `json:"length"`
	Pieces      string          `json:"pieces"`
	Volume      decimal.Decimal `json:"volume"`
	VolumeAuto  bool            `json:"volume_auto"`
}

// GetAvailablePackages handles GET /api/v1/packages/available.
// Returns the caller's free inventory.
func (s *Server) GetAvailablePackages(ctx echo.Context) error {
	actor, err := actorFrom(ctx)
	if err != nil {
		return writeError(ctx, err)
	}

	query, err := queries.NewGetAvailablePackagesQuery(actor.OrganisationID())
	if err != nil {
		return writeError(ctx, err)
	}

	packages, err := s.availablePkgsHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return writeError(ctx, err)
	}

	response := make([]availablePackageJSON, len(packages))
	for i, pkg := range packages {
		response[i] = availablePackageJSON{
			ID:          pkg.ID.String(),
			ProductName: pkg.ProductName,
			Species:     pkg.Species,
			Thickness:   pkg.Thickness,
			Width:       pkg.Width,
			Length:      pkg.Length,
			Pieces:      pkg.Pieces,
			Volume:      pkg.Volume,
			VolumeAuto:  pkg.VolumeAuto,
		}
	}

	return ctx.JSON(http.StatusOK, response)
}

type stalePendingJSON struct {
	ID               string    `json:"id"`
	ShipmentCode     string    `json:"shipment_code"`
	ToOrganisationID string    `json:"to_organisation_id"`
	SubmittedAt      time.Time `json:"submitted_at"`
}

// GetStalePendingShipments handles GET /api/v1/shipments/stale-pending.
// The optional hours parameter defaults to 72.
func (s *Server) GetStalePendingShipments(ctx echo.Context) error {
	hours := 72
	if raw := ctx.QueryParam("hours"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed <= 0 {
			return writeError(ctx, errs.NewValueIsInvalidErrorWithCause("hours",
				fmt.Errorf("%q is not a positive hour count", raw)))
		}
		hours = parsed
	}

	query, err := queries.NewGetStalePendingQuery(time.Now().UTC().Add(-time.Duration(hours) * time.Hour))
	if err != nil {
		return writeError(ctx, err)
	}

	shipments, err := s.stalePendingHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return writeError(ctx, err)
	}

	response := make([]stalePendingJSON, len(shipments))
	for i, shp := range shipments {
		response[i] = stalePendingJSON{
			ID:               shp.ID.String(),
			ShipmentCode:     shp.ShipmentCode,
			ToOrganisationID: shp.ToOrganisationID.String(),
			SubmittedAt:      shp.SubmittedAt,
		}
	}

	return ctx.JSON(http.StatusOK, response)
}

type palletJSON struct {
	ID           string `json:"id"`
	PalletNumber int    `json:"pallet_number"`
}

type packageJSON struct {
	ID            string          `json:"id"`
	PalletID      *string         `json:"pallet_id"`
	Sequence      int             `json:"sequence"`
	PackageNumber string          `json:"package_number"`
	ProductName   string          `json:"product_name"`
	Species       string          `json:"species"`
	Thickness     string          `json:"thickness"`
	Width         string          `json:"width"`
	Length        string          `json:"length"`
	Pieces        string          `json:"pieces"`
	Volume        decimal.Decimal `json:"volume"`
	VolumeAuto    bool            `json:"volume_auto"`
	Status        string          `json:"status"`
}

type shipmentJSON struct {
	ID                 string           `json:"id"`
	ShipmentCode       string           `json:"shipment_code"`
	ShipmentNumber     int64            `json:"shipment_number"`
	FromOrganisationID string           `json:"from_organisation_id"`
	ToOrganisationID   string           `json:"to_organisation_id"`
	Status             string           `json:"status"`
	SubmittedAt        *time.Time       `json:"submitted_at"`
	ReviewedAt         *time.Time       `json:"reviewed_at"`
	ReviewedBy         *string          `json:"reviewed_by"`
	RejectionReason    string           `json:"rejection_reason,omitempty"`
	CompletedAt        *time.Time       `json:"completed_at"`
	TransportCost      *decimal.Decimal `json:"transport_cost"`
	Pallets            []palletJSON     `json:"pallets"`
	Packages           []packageJSON    `json:"packages"`
}

func toShipmentJSON(r queries.GetShipmentQueryResponse) shipmentJSON {
	out := shipmentJSON{
		ID:                 r.ID.String(),
		ShipmentCode:       r.ShipmentCode,
		ShipmentNumber:     r.ShipmentNumber,
		FromOrganisationID: r.FromOrganisationID.String(),
		ToOrganisationID:   r.ToOrganisationID.String(),
		Status:             r.Status,
		SubmittedAt:        r.SubmittedAt,
		ReviewedAt:         r.ReviewedAt,
		RejectionReason:    r.RejectionReason,
		CompletedAt:        r.CompletedAt,
		TransportCost:      r.TransportCost,
		Pallets:            make([]palletJSON, len(r.Pallets)),
		Packages:           make([]packageJSON, len(r.Packages)),
	}
	if r.ReviewedBy != nil {
		reviewer := r.ReviewedBy.String()
		out.ReviewedBy = &reviewer
	}
	for i, p := range r.Pallets {
		out.Pallets[i] = palletJSON{ID: p.ID.String(), PalletNumber: p.PalletNumber}
	}
	for i, p := range r.Packages {
		pkg := packageJSON{
			ID:            p.ID.String(),
			Sequence:      p.Sequence,
			PackageNumber: p.PackageNumber,
			ProductName:   p.ProductName,
			Species:       p.Species,
			Thickness:     p.Thickness,
			Width:         p.Width,
			Length:        p.Length,
			Pieces:        p.Pieces,
			Volume:        p.Volume,
			VolumeAuto:    p.VolumeAuto,
			Status:        p.Status,
		}
		if p.PalletID != nil {
			palletID := p.PalletID.String()
			pkg.PalletID = &palletID
		}
		out.Packages[i] = pkg
	}
	return out
}

func uuidStrings(ids []kernel.UUID) []string {
	out := make([]string, len(ids))
	for i, id := range ids {
		out[i] = id.String()
	}
	return out
}
