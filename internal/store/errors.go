package store

import (
	"errors"
	"fmt"
)

// Error kinds. Callers only ever need to tell reads from writes: a missing
// record and a corrupt one are both ErrRead. ErrNotFound additionally marks
// the missing case so backends can log it at a lower level.
var (
	ErrRead     = errors.New("store read failed")
	ErrWrite    = errors.New("store write failed")
	ErrNotFound = errors.New("record not found")
)

// Error is the single error type returned by store backends.
type Error struct {
	Op   string // "load" or "save"
	Key  string
	Kind error // ErrRead or ErrWrite
	Err  error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s %q: %v: %v", e.Op, e.Key, e.Kind, e.Err)
	}
	return fmt.Sprintf("%s %q: %v", e.Op, e.Key, e.Kind)
}

// Unwrap exposes both the kind and the cause to errors.Is and errors.As.
func (e *Error) Unwrap() []error {
	if e.Err == nil {
		return []error{e.Kind}
	}
	return []error{e.Kind, e.Err}
}

// ReadError wraps err as a load failure for key.
func ReadError(key string, err error) error {
	return &Error{Op: "load", Key: key, Kind: ErrRead, Err: err}
}

// NotFound reports that key has no record.
func NotFound(key string) error {
	return ReadError(key, ErrNotFound)
}

// WriteError wraps err as a save failure for key.
func WriteError(key string, err error) error {
	return &Error{Op: "save", Key: key, Kind: ErrWrite, Err: err}
}

// IsNotFound reports whether err marks a missing record.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}
