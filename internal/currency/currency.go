// Package currency holds the reference set of recognised ISO 4217 currency codes.
//
// The set is loaded once at start-up and shared read-only afterwards; nothing in
// the package mutates a CodeSet after its loader has returned it.
package currency

import (
	"context"
)

// CodeSet is an immutable set of currency codes.
type CodeSet interface {
	// Contains reports whether code is a recognised currency. Lookup is case-insensitive.
	Contains(code string) bool

	// Size returns the number of codes in the set.
	Size() int
}

// Loader defines the interface for loading a currency reference list.
type Loader interface {
	// Load reads a line-delimited currency list and returns a CodeSet.
	Load(ctx context.Context, path string) (CodeSet, error)
}
