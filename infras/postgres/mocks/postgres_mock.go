package mocks

import (
	"context"

	"github.com/jmoiron/sqlx"
)

// TxRunner is a test double that executes the given function with a nil
// transaction, or fails with Err without running it.
type TxRunner struct {
	Err error
}

func (r *TxRunner) WithTransaction(_ context.Context, fn func(tx *sqlx.Tx) error) error {
	if r.Err != nil {
		return r.Err
	}

	return fn(nil)
}
