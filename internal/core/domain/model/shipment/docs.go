// Package shipment contains the Shipment aggregate, the heart of the transfer
// engine.
//
// A Shipment groups inventory packages moving from one organisation to
// another. It owns the status state machine
//
//	draft ──> pending ──> {completed | rejected}
//	  ▲          │
//	  └──────────┘ (cancel submission)
//
// the workflow timestamps and actors recorded by each transition, and the
// pallet collection that sub-groups packages while the shipment is still a
// draft. Party authorization (sender vs receiver) is enforced on every
// transition against the identity the caller presents.
//
// The packages themselves live in the inventory package; the aggregate holds
// them by linkage only, so the ownership-transfer protocol can bulk-update
// them at the storage layer inside the accept transaction.
package shipment
