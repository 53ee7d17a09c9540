// Package apperr defines the error kinds shared by all finledger components:
// validation failures, missing records, deletes blocked by dependent rows,
// and underlying store failures. Every error is recoverable at the calling
// boundary; handlers translate kinds to HTTP statuses.
package apperr

import (
	"errors"
	"fmt"
)

type Kind int

const (
	KindUnknown Kind = iota
	// KindValidation marks a malformed or out-of-range user-supplied value.
	KindValidation
	// KindNotFound marks a referenced id, category or budget triple that does not exist.
	KindNotFound
	// KindReferential marks a delete blocked by dependent rows.
	KindReferential
	// KindStore marks an underlying persistence failure.
	KindStore
)

type Error struct {
	Kind Kind
	Msg  string
	Err  error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return e.Msg + ": " + e.Err.Error()
	}
	return e.Msg
}

func (e *Error) Unwrap() error {
	return e.Err
}

func Validation(format string, args ...any) error {
	return &Error{Kind: KindValidation, Msg: fmt.Sprintf(format, args...)}
}

func NotFound(format string, args ...any) error {
	return &Error{Kind: KindNotFound, Msg: fmt.Sprintf(format, args...)}
}

func Referential(format string, args ...any) error {
	return &Error{Kind: KindReferential, Msg: fmt.Sprintf(format, args...)}
}

// Store wraps an underlying persistence error.
func Store(err error, format string, args ...any) error {
	return &Error{Kind: KindStore, Msg: fmt.Sprintf(format, args...), Err: err}
}

// KindOf returns the kind of err, or KindUnknown when err carries none.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindUnknown
}

func IsValidation(err error) bool  { return KindOf(err) == KindValidation }
func IsNotFound(err error) bool    { return KindOf(err) == KindNotFound }
func IsReferential(err error) bool { return KindOf(err) == KindReferential }
func IsStore(err error) bool       { return KindOf(err) == KindStore }
