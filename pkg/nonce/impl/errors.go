package impl

import "fmt"

// Kind classifies the failures of the nonce manager.
type Kind int

const (
	// KindMiddleware wraps a failure of the inner layer.
	KindMiddleware Kind = iota
	// KindNonce is a failure managing the nonce.
	KindNonce
)

// Error is the error of the nonce manager layer. Op names the inner operation that failed, if any.
type Error struct {
	Kind Kind
	Op   string
	Err  error
}

func (e *Error) Error() string {
	if e.Kind == KindMiddleware {
		if e.Op != "" {
			return fmt.Sprintf("nonce manager: %s: %s", e.Op, e.Err)
		}
		return fmt.Sprintf("nonce manager: %s", e.Err)
	}
	return e.Err.Error()
}

// Unwrap returns the wrapped error.
func (e *Error) Unwrap() error {
	return e.Err
}

// Inner returns the error of the inner layer, or nil if the nonce manager failed on its own.
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
