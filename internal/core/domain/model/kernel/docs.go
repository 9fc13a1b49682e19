// Package kernel provides core domain primitives shared by the shipment and
// inventory models.
//
// It contains value objects with no business meaning of their own:
//
//   - UUID: validated entity identifier wrapping github.com/google/uuid
//   - Money: non-negative EUR amount with exact decimal arithmetic
//
// Kernel types are immutable and constructed only through their factory
// functions; the zero value of each type fails Validate.
package kernel
