// Package policy controls which categories a run may sign and whether items
// are signed automatically, confirmed one by one, or only reported.
package policy
