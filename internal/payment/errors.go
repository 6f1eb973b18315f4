package payment

import (
	"errors"
	"fmt"
)

// Kind classifies a failure as recoverable input trouble or a fatal inconsistency.
type Kind int

const (
	// KindWarning marks structural problems in input data. The offending entity
	// can be skipped, or the whole load rejected without treating it as a bug.
	KindWarning Kind = iota + 1

	// KindError marks invariant violations and unrecoverable inconsistencies.
	KindError
)

// String returns the lowercase name of the kind.
func (k Kind) String() string {
	switch k {
	case KindWarning:
		return "warning"
	case KindError:
		return "error"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

var (
	// ErrInsufficientLimit is wrapped when a payment method cannot cover an amount.
	ErrInsufficientLimit = errors.New("insufficient limit")

	// ErrNegativeAmount is wrapped when a negative amount is consumed.
	ErrNegativeAmount = errors.New("amount must be non-negative")
)

// Error is a classified failure raised by entity construction, loading or optimization.
type Error struct {
	Kind Kind
	Op   string
	Msg  string
	Err  error
}

func (e *Error) Error() string {
	msg := e.Msg
	if e.Op != "" {
		msg = e.Op + ": " + msg
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Warningf builds a warning-class error.
func Warningf(op, format string, args ...any) *Error {
	return &Error{Kind: KindWarning, Op: op, Msg: fmt.Sprintf(format, args...)}
}

// Errorf builds an error-class error.
func Errorf(op, format string, args ...any) *Error {
	return &Error{Kind: KindError, Op: op, Msg: fmt.Sprintf(format, args...)}
}

// KindOf reports the kind of the first *Error in err's chain, or zero if there is none.
func KindOf(err error) Kind {
	var perr *Error
	if errors.As(err, &perr) {
		return perr.Kind
	}
	return 0
}

// IsWarning reports whether err carries a warning classification.
func IsWarning(err error) bool {
	return KindOf(err) == KindWarning
}

// IsError reports whether err carries an error classification.
func IsError(err error) bool {
	return KindOf(err) == KindError
}
