// Package compare verifies that two independently constructed scene graphs
// are structurally and numerically equivalent. The walk is pre-order, mother
// before daughters, daughters in placement insertion order, so the first
// reported divergence is deterministic across runs. Divergence reports are
// ordinary return values, never errors: they are the working currency of the
// cross-backend test suites.
package compare
