package comparer

import (
	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
)

// IgnoreTimestamps ignora CreatedAt/UpdatedAt, preenchidos pelo banco no insert.
func IgnoreTimestamps[T any]() cmp.Option {
	var zero T
	return cmpopts.IgnoreFields(zero, "CreatedAt", "UpdatedAt")
}
