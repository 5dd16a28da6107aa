// Package errs holds the closed set of failure kinds shared by training and
// inference. Every error returned by the core wraps exactly one of them, so
// callers branch with errors.Is instead of matching messages.
package errs

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrValidation: caller input is missing or malformed.
	ErrValidation = errors.New("validation error")
	// ErrNotReady: model artifacts are not loaded or not compatible.
	ErrNotReady = errors.New("model not ready")
	// ErrInternal: numeric or dimensionality failure, or a corrupt artifact.
	ErrInternal = errors.New("internal error")
	// ErrInput: training-time contract violation.
	ErrInput = errors.New("input error")
)

func Validation(format string, args ...any) error {
	return wrap(ErrValidation, format, args...)
}

func NotReady(format string, args ...any) error {
	return wrap(ErrNotReady, format, args...)
}

func Internal(format string, args ...any) error {
	return wrap(ErrInternal, format, args...)
}

func Input(format string, args ...any) error {
	return wrap(ErrInput, format, args...)
}

func wrap(kind error, format string, args ...any) error {
	return fmt.Errorf("%w: %s", kind, fmt.Sprintf(format, args...))
}

// Kind reports which sentinel err wraps, or nil for foreign errors.
func Kind(err error) error {
	for _, k := range []error{ErrValidation, ErrNotReady, ErrInternal, ErrInput} {
		if errors.Is(err, k) {
			return k
		}
	}
	return nil
}

// Detail is the message of err without its kind prefix, for showing to users.
func Detail(err error) string {
	msg := err.Error()
	if k := Kind(err); k != nil {
		msg = strings.TrimPrefix(msg, k.Error()+": ")
	}
	return msg
}
