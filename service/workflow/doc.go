// Package workflow runs the sign-off pipeline for a single category: list the
// items, keep the ones still waiting for a signature, ask the policy, then
// authorize them concurrently (or in one batch) and count.
package workflow
