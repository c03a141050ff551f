// Package apperr classifies conversion failures so the CLI can report them
// and exit with a code per failure kind.
package apperr

import (
	"errors"
	"fmt"
)

// Kind identifies the stage boundary a failure was raised at.
type Kind int

const (
	KindUnknown Kind = iota
	KindFormat
	KindEmptyInput
	KindNetwork
	KindIO
)

// Sentinels for errors.Is checks against a classified error.
var (
	ErrFormat     = errors.New("input is not a GPX document")
	ErrEmptyInput = errors.New("no wpt or rtept found in input")
	ErrNetwork    = errors.New("coordinate transformation failed")
	ErrIO         = errors.New("filesystem operation failed")
)

func (k Kind) String() string {
	switch k {
	case KindFormat:
		return "format"
	case KindEmptyInput:
		return "empty_input"
	case KindNetwork:
		return "network"
	case KindIO:
		return "io"
	default:
		return "unknown"
	}
}

func (k Kind) sentinel() error {
	switch k {
	case KindFormat:
		return ErrFormat
	case KindEmptyInput:
		return ErrEmptyInput
	case KindNetwork:
		return ErrNetwork
	case KindIO:
		return ErrIO
	default:
		return nil
	}
}

// Error is a classified failure. Op names the operation, Err is the cause.
type Error struct {
	Kind Kind
	Op   string
	Err  error
}

func (e *Error) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("%s: %v", e.Op, e.Kind.sentinel())
	}
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

// Unwrap exposes both the cause and the kind sentinel.
func (e *Error) Unwrap() []error {
	errs := make([]error, 0, 2)
	if e.Err != nil {
		errs = append(errs, e.Err)
	}
	if s := e.Kind.sentinel(); s != nil {
		errs = append(errs, s)
	}
	return errs
}

// New builds a classified error.
func New(kind Kind, op string, err error) *Error {
	return &Error{Kind: kind, Op: op, Err: err}
}

func Format(op string, err error) *Error     { return New(KindFormat, op, err) }
func EmptyInput(op string, err error) *Error { return New(KindEmptyInput, op, err) }
func Network(op string, err error) *Error    { return New(KindNetwork, op, err) }
func IO(op string, err error) *Error         { return New(KindIO, op, err) }

// KindOf returns the kind of the first classified error in the chain.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindUnknown
}

// ExitCode maps an error to the process exit status.
func ExitCode(err error) int {
	if err == nil {
		return 0
	}
	switch KindOf(err) {
	case KindFormat:
		return 2
	case KindEmptyInput:
		return 3
	case KindNetwork:
		return 4
	case KindIO:
		return 5
	default:
		return 1
	}
}
