package policy

import (
	"context"
	"errors"
	"fmt"
	"math/big"

	"github.com/ethereum/go-ethereum/common"
	logger "github.com/rs/zerolog/log"
	"github.com/textileio/go-ethmiddleware/pkg/middleware"
	"github.com/textileio/go-ethmiddleware/pkg/txn"
)

var log = logger.With().Str("component", "policy").Logger()

// ErrPolicyViolation matches every rejection of the policy layer.
var ErrPolicyViolation = errors.New("policy violation")

// Kind classifies the failures of the policy layer.
type Kind int

const (
	// KindMiddleware wraps a failure of the inner layer.
	KindMiddleware Kind = iota
	// KindPolicy is a transaction rejected by the policy.
	KindPolicy
)

// Error is the error of the policy layer. For KindPolicy, Err is the reason given by the policy.
type Error struct {
	Kind Kind
	Err  error
}

func (e *Error) Error() string {
	if e.Kind == KindPolicy {
		return fmt.Sprintf("%s: %s", ErrPolicyViolation, e.Err)
	}
	return fmt.Sprintf("policy middleware: %s", e.Err)
}

// Unwrap returns the wrapped error.
func (e *Error) Unwrap() error {
	return e.Err
}

// Is makes rejections match ErrPolicyViolation.
func (e *Error) Is(target error) bool {
	return e.Kind == KindPolicy && target == ErrPolicyViolation
}

// Inner returns the error of the inner layer, or nil for rejections.
func (e *Error) Inner() error {
	if e.Kind == KindMiddleware {
		return e.Err
	}
	return nil
}

// PolicyMiddleware checks transactions against a policy before they get filled or sent.
// Reads go through unchecked.
type PolicyMiddleware struct {
	middleware.Base

	policy Policy
}

var _ middleware.Middleware = (*PolicyMiddleware)(nil)

// New returns a policy layer over inner.
func New(inner middleware.Middleware, p Policy) *PolicyMiddleware {
	return &PolicyMiddleware{
		Base: middleware.NewBase(inner, func(err error) error {
			return &Error{Kind: KindMiddleware, Err: err}
		}),
		policy: p,
	}
}

// FillTransaction checks the transaction and delegates.
func (m *PolicyMiddleware) FillTransaction(ctx context.Context, tx *txn.TypedTransaction, block *big.Int) error {
	if err := m.check(ctx, tx); err != nil {
		return err
	}
	return m.Base.FillTransaction(ctx, tx, block)
}

// SendTransaction checks the transaction and delegates.
func (m *PolicyMiddleware) SendTransaction(
	ctx context.Context, tx *txn.TypedTransaction, block *big.Int,
) (*middleware.PendingTransaction, error) {
	if err := m.check(ctx, tx); err != nil {
		return nil, err
	}
	return m.Base.SendTransaction(ctx, tx, block)
}

func (m *PolicyMiddleware) check(ctx context.Context, tx *txn.TypedTransaction) error {
	var from common.Address
	if tx.From != nil {
		from = *tx.From
	} else if sender, ok := m.Inner().DefaultSender(); ok {
		from = sender
	}

	if err := m.policy.EnsureCanSend(ctx, tx, from); err != nil {
		log.Warn().
			Err(err).
			Str("from", from.Hex()).
			Msg("transaction rejected")
		return &Error{Kind: KindPolicy, Err: err}
	}
	return nil
}
