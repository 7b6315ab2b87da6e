package record

import "errors"

var (
	ErrColumnCount = errors.New("wrong column count")
	ErrEmptySample = errors.New("empty sample field")
	ErrFieldCount  = errors.New("sample field count mismatches FORMAT")
	ErrMissingTag  = errors.New("missing VCF required tag(s)")
	ErrInteger     = errors.New("invalid integer value")
)
