// Package testutil contains test helpers shared by the lmc packages.
package testutil

// Cleanuper wraps the Cleanup method. It is satisfied by [*testing.T] and
// [*testing.B].
type Cleanuper interface {
	Cleanup(func())
}
