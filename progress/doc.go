// Package progress keeps aggregated item counters for a sign-off run.
package progress
