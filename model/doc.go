// Package model contains the in-memory representation of the portal records
// handled by signoff: sessions, payouts, salary runs and invoices.
//
// Portal payloads are loosely typed (booleans arrive as strings, identifiers
// as either numbers or strings).  The types in this package normalise those
// values at the JSON boundary so that the rest of the code base works with
// explicit enumerations only.
package model
