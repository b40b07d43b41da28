// Package approval keeps the per-run decision ledger.  Every eligible item
// is registered as a Request before it is acted on and receives exactly one
// Decision describing what happened to it.
package approval
