package middleware

import (
	"context"
	"math/big"

	"github.com/ethereum/go-ethereum/common"
	"github.com/textileio/go-ethmiddleware/pkg/signer"
	"github.com/textileio/go-ethmiddleware/pkg/txn"
)

// Base implements every operation as a delegation to the inner layer. Layers embed it and
// override what they intercept. Errors coming from the inner layer are wrapped with the
// layer's own error constructor.
type Base struct {
	inner Middleware
	wrap  func(error) error
}

// NewBase returns a Base delegating to inner. A nil wrap leaves inner errors untouched.
func NewBase(inner Middleware, wrap func(error) error) Base {
	if wrap == nil {
		wrap = func(err error) error { return err }
	}
	return Base{inner: inner, wrap: wrap}
}

// Inner returns the wrapped layer.
func (b Base) Inner() Middleware {
	return b.inner
}

// Wrap wraps an error returned by the inner layer.
func (b Base) Wrap(err error) error {
	if err == nil {
		return nil
	}
	return b.wrap(err)
}

// DefaultSender delegates to the inner layer.
func (b Base) DefaultSender() (common.Address, bool) {
	return b.inner.DefaultSender()
}

// FillTransaction delegates to the inner layer.
func (b Base) FillTransaction(ctx context.Context, tx *txn.TypedTransaction, block *big.Int) error {
	return b.Wrap(b.inner.FillTransaction(ctx, tx, block))
}

// SignTransaction delegates to the inner layer.
func (b Base) SignTransaction(
	ctx context.Context, tx *txn.TypedTransaction, from common.Address,
) (*signer.Signature, error) {
	sig, err := b.inner.SignTransaction(ctx, tx, from)
	if err != nil {
		return nil, b.wrap(err)
	}
	return sig, nil
}

// SendTransaction delegates to the inner layer.
func (b Base) SendTransaction(
	ctx context.Context, tx *txn.TypedTransaction, block *big.Int,
) (*PendingTransaction, error) {
	pending, err := b.inner.SendTransaction(ctx, tx, block)
	if err != nil {
		return nil, b.wrap(err)
	}
	return pending, nil
}

// SendRawTransaction delegates to the inner layer.
func (b Base) SendRawTransaction(ctx context.Context, raw []byte) (*PendingTransaction, error) {
	pending, err := b.inner.SendRawTransaction(ctx, raw)
	if err != nil {
		return nil, b.wrap(err)
	}
	return pending, nil
}

// Sign delegates to the inner layer.
func (b Base) Sign(ctx context.Context, data []byte, from common.Address) (*signer.Signature, error) {
	sig, err := b.inner.Sign(ctx, data, from)
	if err != nil {
		return nil, b.wrap(err)
	}
	return sig, nil
}

// EstimateGas delegates to the inner layer.
func (b Base) EstimateGas(ctx context.Context, tx *txn.TypedTransaction, block *big.Int) (uint64, error) {
	gas, err := b.inner.EstimateGas(ctx, tx, block)
	if err != nil {
		return 0, b.wrap(err)
	}
	return gas, nil
}

// CreateAccessList delegates to the inner layer.
func (b Base) CreateAccessList(
	ctx context.Context, tx *txn.TypedTransaction, block *big.Int,
) (*AccessListResult, error) {
	res, err := b.inner.CreateAccessList(ctx, tx, block)
	if err != nil {
		return nil, b.wrap(err)
	}
	return res, nil
}

// Call delegates to the inner layer.
func (b Base) Call(ctx context.Context, tx *txn.TypedTransaction, block *big.Int) ([]byte, error) {
	out, err := b.inner.Call(ctx, tx, block)
	if err != nil {
		return nil, b.wrap(err)
	}
	return out, nil
}

// GetTransactionCount delegates to the inner layer.
func (b Base) GetTransactionCount(ctx context.Context, addr common.Address, block *big.Int) (uint64, error) {
	count, err := b.inner.GetTransactionCount(ctx, addr, block)
	if err != nil {
		return 0, b.wrap(err)
	}
	return count, nil
}

// ChainID delegates to the inner layer.
func (b Base) ChainID(ctx context.Context) (*big.Int, error) {
	id, err := b.inner.ChainID(ctx)
	if err != nil {
		return nil, b.wrap(err)
	}
	return id, nil
}
