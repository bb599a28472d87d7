package voucher

import (
	"context"
)

// Validator checks campus voucher codes presented at checkout. Voucher
// batches are distributed as flat code files; a code is honoured when enough
// of the active batches carry it.
type Validator interface {
	// Validate checks whether a voucher code can be attached to an order.
	Validate(ctx context.Context, code string) error

	// Close releases resources held by the validator.
	Close() error
}

// CodeSet represents one loaded voucher batch for fast lookup.
type CodeSet interface {
	// Contains checks if a voucher code exists in the set.
	Contains(code string) bool

	// Size returns the number of codes in the set.
	Size() int
}

// Loader defines the interface for loading voucher batch files.
type Loader interface {
	// Load reads a gzipped voucher file and returns a CodeSet.
	Load(ctx context.Context, path string) (CodeSet, error)
}
