package middleware_test

import (
	"context"
	"errors"
	"fmt"
	"math/big"
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/textileio/go-ethmiddleware/mocks"
	"github.com/textileio/go-ethmiddleware/pkg/middleware"
	"github.com/textileio/go-ethmiddleware/pkg/txn"
)

type layerError struct{ err error }

func (e *layerError) Error() string { return fmt.Sprintf("test layer: %s", e.err) }
func (e *layerError) Unwrap() error { return e.err }
func (e *layerError) Inner() error  { return e.err }

// gasCap overrides a single operation and inherits the rest.
type gasCap struct {
	middleware.Base
	limit uint64
}

func (m *gasCap) EstimateGas(ctx context.Context, tx *txn.TypedTransaction, block *big.Int) (uint64, error) {
	gas, err := m.Base.EstimateGas(ctx, tx, block)
	if err != nil {
		return 0, err
	}
	if gas > m.limit {
		return m.limit, nil
	}
	return gas, nil
}

func newGasCap(inner middleware.Middleware, limit uint64) *gasCap {
	return &gasCap{
		Base: middleware.NewBase(inner, func(err error) error {
			return &layerError{err: err}
		}),
		limit: limit,
	}
}

func TestBaseDelegates(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	addr := common.HexToAddress("0xd8da6bf26964af9d7eed9e03e53415d37aa96045")
	inner := mocks.NewMiddleware(t)
	inner.EXPECT().EstimateGas(mock.Anything, mock.Anything, mock.Anything).Return(uint64(90000), nil).Once()
	inner.EXPECT().Call(mock.Anything, mock.Anything, mock.Anything).Return([]byte{0x2a}, nil).Once()
	inner.EXPECT().DefaultSender().Return(addr, true).Once()

	var m middleware.Middleware = newGasCap(inner, 50000)
	require.Equal(t, inner, m.Inner())

	gas, err := m.EstimateGas(ctx, txn.Pay(addr, nil), nil)
	require.NoError(t, err)
	require.Equal(t, uint64(50000), gas)

	out, err := m.Call(ctx, txn.Pay(addr, nil), nil)
	require.NoError(t, err)
	require.Equal(t, []byte{0x2a}, out)

	sender, ok := m.DefaultSender()
	require.True(t, ok)
	require.Equal(t, addr, sender)
}

func TestBaseWrapsInnerErrors(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	boom := errors.New("boom")
	inner := mocks.NewMiddleware(t)
	inner.EXPECT().ChainID(mock.Anything).Return(nil, boom).Once()
	inner.EXPECT().FillTransaction(mock.Anything, mock.Anything, mock.Anything).Return(nil).Once()

	m := newGasCap(inner, 1)

	_, err := m.ChainID(ctx)
	require.ErrorIs(t, err, boom)
	lerr, ok := middleware.As[*layerError](err)
	require.True(t, ok)
	require.Equal(t, boom, lerr.Inner())

	require.NoError(t, m.FillTransaction(ctx, txn.NewLegacy(), nil))
	require.NoError(t, m.Wrap(nil))

	// nil wrap leaves errors as they are
	plain := middleware.NewBase(inner, nil)
	require.Equal(t, boom, plain.Wrap(boom))
}
