// Package preflight checks that a benchmark can run before any timing starts.
//
// The checks cover:
//   - Both input files exist and parse
//   - Directory size versus the quadratic cost of bubble sort
//   - Write access and free space where history is recorded
//   - Whether another benchmark currently holds the run lock
//
// Use the Checker type to run all checks:
//
//	checker := preflight.New()
//	results := checker.RunAll(ctx, preflight.Targets{...})
//	if checker.HasCriticalFailures(results) {
//	    // Handle failures
//	}
package preflight
