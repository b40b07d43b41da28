// Package portal is the HTTP client adapter for the back-office portal API.
//
// Every request carries the same browser identity headers.  The header set is
// rebuilt from an immutable template for each request so that cookies and
// body headers never leak from one call into another, including calls issued
// concurrently.  Any non-2xx response is surfaced as an *APIError carrying the
// status, body and headers for diagnosis; nothing is retried.
package portal
