// Package inventory models the physical inventory unit the shipment engine
// moves between organisations: the Package.
//
// A Package carries descriptive attributes (product, species, humidity, type,
// processing, FSC certification, quality), physical dimensions that may each be
// a single value or a range, a piece count, and a volume that is either entered
// manually or derived from dimensions × pieces. Ownership is a single
// organisation id, and linkage to a shipment and optionally a pallet is what
// the draft mutation and transfer operations mutate.
//
// The inventory store itself (full CRUD over packages) is an external
// collaborator; this package owns only the entity rules the engine enforces.
package inventory
