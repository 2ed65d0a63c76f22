package store

import "github.com/oklog/ulid/v2"

// NewID mints a ledger row id. ULIDs sort lexicographically by
// creation time, which keeps the fp_ledger primary key append-mostly.
func NewID() string {
	return ulid.Make().String()
}
