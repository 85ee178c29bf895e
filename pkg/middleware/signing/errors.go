package signing

import (
	"errors"
	"fmt"
)

var (
	// ErrNonceMissing is returned when signing a transaction without nonce.
	ErrNonceMissing = errors.New("nonce missing")

	// ErrGasPriceMissing is returned when signing a transaction without fee fields.
	ErrGasPriceMissing = errors.New("gas price missing")

	// ErrGasMissing is returned when signing a transaction without gas limit.
	ErrGasMissing = errors.New("gas limit missing")

	// ErrWrongSigner is returned when asked to sign for an address other than the signer's.
	ErrWrongSigner = errors.New("wrong signer")

	// ErrDifferentChainID is returned when the transaction targets a chain other than the signer's.
	ErrDifferentChainID = errors.New("transaction chain id differs from the signer chain id")
)

// Kind classifies the failures of the signer layer.
type Kind int

const (
	// KindMiddleware wraps a failure of the inner layer.
	KindMiddleware Kind = iota
	// KindSigner wraps a failure of the signer.
	KindSigner
	// KindTransaction is a transaction that can't be signed as is.
	KindTransaction
)

// Error is the error of the signer layer. Op names the inner operation that failed, if any.
type Error struct {
	Kind Kind
	Op   string
	Err  error
}

func (e *Error) Error() string {
	switch e.Kind {
	case KindMiddleware:
		if e.Op != "" {
			return fmt.Sprintf("signer middleware: %s: %s", e.Op, e.Err)
		}
		return fmt.Sprintf("signer middleware: %s", e.Err)
	case KindSigner:
		return fmt.Sprintf("signing: %s", e.Err)
	default:
		return e.Err.Error()
	}
}

// Unwrap returns the wrapped error.
func (e *Error) Unwrap() error {
	return e.Err
}

// Inner returns the error of the inner layer, or nil if the signer layer failed on its own.
func (e *Error) Inner() error {
	if e.Kind == KindMiddleware {
		return e.Err
	}
	return nil
}

func wrapInner(err error) error {
	return &Error{Kind: KindMiddleware, Err: err}
}

func wrapInnerOp(op string, err error) error {
	return &Error{Kind: KindMiddleware, Op: op, Err: err}
}

func txError(err error) error {
	return &Error{Kind: KindTransaction, Err: err}
}
