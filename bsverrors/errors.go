// Package bsverrors defines the structured error taxonomy shared by every
// package in this module. Every fallible operation in this library returns
// one of these instead of a bare string error, so callers can switch on Kind
// rather than parse messages.
package bsverrors

import (
	"errors"
	"fmt"
)

// Kind identifies the category of failure. Callers should compare Kind
// values with errors.Is / errors.As rather than string-matching messages.
type Kind int

const (
	KindUnknown Kind = iota
	KindInvalidLength
	KindMalformedEncoding
	KindInvalidCurvePoint
	KindInvalidScalar
	KindInvalidSignature
	KindVerifyFailed
	KindDecryptFailed
	KindMissingForkID
	KindInputIndexOutOfRange
	KindScriptInterpretError
	KindInvariantViolation
	KindConfigError
)

func (k Kind) String() string {
	switch k {
	case KindInvalidLength:
		return "InvalidLength"
	case KindMalformedEncoding:
		return "MalformedEncoding"
	case KindInvalidCurvePoint:
		return "InvalidCurvePoint"
	case KindInvalidScalar:
		return "InvalidScalar"
	case KindInvalidSignature:
		return "InvalidSignature"
	case KindVerifyFailed:
		return "VerifyFailed"
	case KindDecryptFailed:
		return "DecryptFailed"
	case KindMissingForkID:
		return "MissingForkId"
	case KindInputIndexOutOfRange:
		return "InputIndexOutOfRange"
	case KindScriptInterpretError:
		return "ScriptInterpretError"
	case KindInvariantViolation:
		return "InvariantViolation"
	case KindConfigError:
		return "ConfigError"
	default:
		return "Unknown"
	}
}

// Error is the structured error type returned throughout bsvkernel.
type Error struct {
	Kind       Kind
	msg        string
	wrappedErr error
}

// New builds an Error of the given Kind. Extra args are passed to
// fmt.Sprintf against msg, unless the last arg is an error, in which case
// it is recorded as the wrapped cause.
func New(kind Kind, msg string, args ...interface{}) *Error {
	var wrapped error

	if len(args) > 0 {
		if err, ok := args[len(args)-1].(error); ok {
			wrapped = err
			args = args[:len(args)-1]
		}
	}

	if len(args) > 0 {
		msg = fmt.Sprintf(msg, args...)
	}

	return &Error{Kind: kind, msg: msg, wrappedErr: wrapped}
}

// Error implements the error interface. Message content containing key
// material must be redacted by the caller before display; see Redacted.
func (e *Error) Error() string {
	if e == nil {
		return "<nil>"
	}

	if e.wrappedErr == nil {
		return fmt.Sprintf("%s: %s", e.Kind, e.msg)
	}

	return fmt.Sprintf("%s: %s: %v", e.Kind, e.msg, e.wrappedErr)
}

// Message returns the error's own message, without the wrapped cause.
func (e *Error) Message() string {
	if e == nil {
		return ""
	}
	return e.msg
}

// Code returns the error's Kind, mirroring the accessor name conventions
// used elsewhere in the codebase for structured error codes.
func (e *Error) Code() Kind {
	if e == nil {
		return KindUnknown
	}
	return e.Kind
}

func (e *Error) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.wrappedErr
}

// Is reports whether target is an *Error with the same Kind.
func (e *Error) Is(target error) bool {
	if e == nil {
		return false
	}

	var other *Error
	if errors.As(target, &other) {
		return e.Kind == other.Kind
	}

	return false
}

// Redacted returns a display string with msg/wrapped content replaced,
// for use by default formatters over errors that may carry key material.
func (e *Error) Redacted() string {
	if e == nil {
		return "<nil>"
	}
	return fmt.Sprintf("%s: <redacted>", e.Kind)
}

// Is reports whether err wraps (or is) a *Error with the same Kind as target.
func Is(err, target error) bool { return errors.Is(err, target) }

// As finds the first error in err's chain matching target's type.
func As(err error, target interface{}) bool { return errors.As(err, target) }
