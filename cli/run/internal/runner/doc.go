// Package runner is the single gateway for spawning external tools. It
// threads the global dry-run/verbose flags and the resolved interpreter
// prefix through every invocation, echoing the exact argv before running
// so failures are reproducible by hand.
package runner
