package middleware

// LayerError is implemented by the error type of every layer. Inner returns the error of the
// wrapped layer when the failure happened there, and nil when the layer failed on its own.
type LayerError interface {
	error
	Inner() error
}

// As walks down the layer errors, one level at a time, until it finds an error of type T.
func As[T error](err error) (T, bool) {
	for err != nil {
		if target, ok := err.(T); ok {
			return target, true
		}
		le, ok := err.(LayerError)
		if !ok {
			break
		}
		err = le.Inner()
	}
	var zero T
	return zero, false
}

// Unwind returns the chain of errors from the outermost layer to the layer that failed.
func Unwind(err error) []error {
	var chain []error
	for err != nil {
		chain = append(chain, err)
		le, ok := err.(LayerError)
		if !ok {
			break
		}
		err = le.Inner()
	}
	return chain
}

// Root returns the error of the innermost layer that failed.
func Root(err error) error {
	chain := Unwind(err)
	if len(chain) == 0 {
		return nil
	}
	return chain[len(chain)-1]
}
