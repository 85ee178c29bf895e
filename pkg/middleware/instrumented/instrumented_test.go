package instrumented

import (
	"context"
	"errors"
	"math/big"
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/textileio/go-ethmiddleware/mocks"
	"github.com/textileio/go-ethmiddleware/pkg/middleware"
	"github.com/textileio/go-ethmiddleware/pkg/txn"
)

var recipient = common.HexToAddress("0xd8da6bf26964af9d7eed9e03e53415d37aa96045")

func TestDelegates(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	inner := mocks.NewMiddleware(t)
	inner.EXPECT().DefaultSender().Return(recipient, true).Once()
	inner.EXPECT().FillTransaction(mock.Anything, mock.Anything, mock.Anything).Return(nil).Once()
	inner.EXPECT().SendTransaction(mock.Anything, mock.Anything, mock.Anything).
		Return(middleware.NewPendingTransaction(common.HexToHash("0x01"), nil), nil).Once()
	inner.EXPECT().EstimateGas(mock.Anything, mock.Anything, mock.Anything).Return(uint64(21000), nil).Once()
	inner.EXPECT().ChainID(mock.Anything).Return(big.NewInt(5), nil).Once()
	inner.EXPECT().GetTransactionCount(mock.Anything, recipient, (*big.Int)(nil)).Return(uint64(9), nil).Once()

	m, err := New(inner, "provider")
	require.NoError(t, err)
	require.Equal(t, inner, m.Inner())

	sender, ok := m.DefaultSender()
	require.True(t, ok)
	require.Equal(t, recipient, sender)

	tx := txn.Pay(recipient, big.NewInt(1))
	require.NoError(t, m.FillTransaction(ctx, tx, nil))

	pending, err := m.SendTransaction(ctx, tx, nil)
	require.NoError(t, err)
	require.Equal(t, common.HexToHash("0x01"), pending.Hash)

	gas, err := m.EstimateGas(ctx, tx, nil)
	require.NoError(t, err)
	require.Equal(t, uint64(21000), gas)

	id, err := m.ChainID(ctx)
	require.NoError(t, err)
	require.Equal(t, int64(5), id.Int64())

	count, err := m.GetTransactionCount(ctx, recipient, nil)
	require.NoError(t, err)
	require.Equal(t, uint64(9), count)
}

func TestErrorsUnchanged(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	boom := errors.New("boom")
	inner := mocks.NewMiddleware(t)
	inner.EXPECT().Call(mock.Anything, mock.Anything, mock.Anything).Return(nil, boom).Once()
	inner.EXPECT().SendRawTransaction(mock.Anything, mock.Anything).Return(nil, boom).Once()

	m, err := New(inner, "signer")
	require.NoError(t, err)

	_, err = m.Call(ctx, txn.Pay(recipient, nil), nil)
	require.Equal(t, boom, err)

	_, err = m.SendRawTransaction(ctx, []byte{0x01})
	require.Equal(t, boom, err)
}
