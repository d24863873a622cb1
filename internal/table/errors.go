package table

import "errors"

// Sentinel error kinds for this package. These allow errors.Is/As from callers.
var (
	ErrInvalidSchema  = errors.New("invalid schema")
	ErrSchemaMismatch = errors.New("schema mismatch")
	ErrParse          = errors.New("parse failed")
	ErrColumnType     = errors.New("column type mismatch")
	ErrNoColumn       = errors.New("no such column")
)
