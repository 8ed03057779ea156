package common

import "errors"

// ErrInvalidArgument reports malformed physical parameters or mismatched
// input lengths. Callers wrap it with context via fmt.Errorf and %w so
// errors.Is works across package boundaries.
var ErrInvalidArgument = errors.New("invalid argument")
