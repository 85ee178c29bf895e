package transformer

import "fmt"

// Kind classifies the failures of the transformer layer.
type Kind int

const (
	// KindMiddleware wraps a failure of the inner layer.
	KindMiddleware Kind = iota
	// KindTransformer is a failed rewrite.
	KindTransformer
)

// Error is the error of the transformer layer.
type Error struct {
	Kind Kind
	Err  error
}

func (e *Error) Error() string {
	if e.Kind == KindTransformer {
		return fmt.Sprintf("transforming transaction: %s", e.Err)
	}
	return fmt.Sprintf("transformer middleware: %s", e.Err)
}

// Unwrap returns the wrapped error.
func (e *Error) Unwrap() error {
	return e.Err
}

// Inner returns the error of the inner layer, or nil if the transformer failed.
func (e *Error) Inner() error {
	if e.Kind == KindMiddleware {
		return e.Err
	}
	return nil
}

func wrapInner(err error) error {
	return &Error{Kind: KindMiddleware, Err: err}
}
