package model

import (
	"fmt"
	"strings"
)

// ParseError means the workbook bytes could not be decoded at all.
// The same bytes always fail the same way; there is nothing to retry.
type ParseError struct {
	Err error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("cannot read workbook: %v", e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }

// SchemaError lists every required column absent from a ledger header,
// not just the first one. Callers surface the names verbatim.
type SchemaError struct {
	Missing []string
}

func (e *SchemaError) Error() string {
	return fmt.Sprintf("missing required columns: %s", strings.Join(e.Missing, ", "))
}

// EmptyResultError means no rows survived the product-key filter, which
// is distinct from a schema problem.
type EmptyResultError struct{}

func (e *EmptyResultError) Error() string {
	return "ledger contains no rows with a product key"
}
