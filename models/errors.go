package models

import (
	"context"
	"errors"
)

// ErrorCode is the stable, transport-independent name of a failure mode.
type ErrorCode string

const (
	CodeUnreachableByWater ErrorCode = "UNREACHABLE_BY_WATER"
	CodeInvalidCoordinate  ErrorCode = "INVALID_COORDINATE"
	CodeInvalidRequest     ErrorCode = "INVALID_REQUEST"
	CodeUnknownHazard      ErrorCode = "UNKNOWN_HAZARD_ID"
	CodeLedgerUnavailable  ErrorCode = "LEDGER_UNAVAILABLE"
	CodeTimeout            ErrorCode = "TIMEOUT"
	CodeInternal           ErrorCode = "INTERNAL_ERROR"
)

var (
	// ErrUnreachableByWater means the sea-path primitive could not connect the
	// two points. Both ends must lie on navigable water, not land.
	ErrUnreachableByWater = errors.New("destination unreachable by water: origin and destination must be navigable water, not land")
	ErrInvalidCoordinate  = errors.New("invalid coordinate")
	ErrInvalidRequest     = errors.New("invalid request")
	ErrUnknownHazard      = errors.New("unknown hazard id")
	ErrLedgerUnavailable  = errors.New("ledger unavailable")
	ErrTimeout            = errors.New("lookup timed out")
)

// CodeOf classifies err into one of the stable error codes.
func CodeOf(err error) ErrorCode {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrUnreachableByWater):
		return CodeUnreachableByWater
	case errors.Is(err, ErrInvalidCoordinate):
		return CodeInvalidCoordinate
	case errors.Is(err, ErrInvalidRequest):
		return CodeInvalidRequest
	case errors.Is(err, ErrUnknownHazard):
		return CodeUnknownHazard
	case errors.Is(err, ErrTimeout), errors.Is(err, context.DeadlineExceeded):
		return CodeTimeout
	case errors.Is(err, ErrLedgerUnavailable):
		return CodeLedgerUnavailable
	default:
		return CodeInternal
	}
}
