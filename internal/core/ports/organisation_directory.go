package ports

import (
	"context"

	"timberops/internal/core/domain/model/kernel"
)

// Organisation is the directory's view of an organisation: enough for party
// validation and code generation, nothing more.
type Organisation struct {
	ID kernel.UUID

	// Code is the short code used in shipment codes, e.g. "ABC".
	Code string

	Name string

	// IsExternal marks counterparties outside the portal's managed
	// organisations, such as outside suppliers.
	IsExternal bool

	IsActive bool
}

// OrganisationDirectory resolves organisation identity and trading-partner
// relationships. It is an external collaborator; the engine consumes it and
// trusts its answers.
type OrganisationDirectory interface {
	// GetOrganisation resolves an organisation by id.
	GetOrganisation(ctx context.Context, id kernel.UUID) (Organisation, error)

	// IsTradingPartner reports whether partner is a registered trading partner
	// of the organisation. Required to create drafts on behalf of external
	// senders.
	IsTradingPartner(ctx context.Context, organisationID, partnerID kernel.UUID) (bool, error)
}
