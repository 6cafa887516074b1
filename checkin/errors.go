package checkin

import (
	"errors"
	"fmt"
)

// ErrorKind classifies failures inside the check-in operations.
// Callers of the public operations never see these; they are logged and
// flattened to an empty result.
type ErrorKind int

const (
	KindUnknown ErrorKind = iota
	KindConfigLookup
	KindRecordFetch
	KindMissingLead
	KindBatchWrite
)

func (k ErrorKind) String() string {
	switch k {
	case KindConfigLookup:
		return "config lookup"
	case KindRecordFetch:
		return "record fetch"
	case KindMissingLead:
		return "missing lead"
	case KindBatchWrite:
		return "batch write"
	default:
		return "unknown"
	}
}

type Error struct {
	Op   string
	Kind ErrorKind
	Err  error
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s: %s failed: %v", e.Op, e.Kind, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// KindOf returns the kind of the first *Error in err's chain.
func KindOf(err error) ErrorKind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindUnknown
}

// MissingLeadError is returned when a precinct has no lead worker linked.
type MissingLeadError struct {
	PrecinctID string
	Field      string
}

func (e *MissingLeadError) Error() string {
	return fmt.Sprintf("precinct %s lead not set (field %q)", e.PrecinctID, e.Field)
}
