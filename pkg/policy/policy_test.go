package policy

import (
	"context"
	"errors"
	"math/big"
	"testing"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/textileio/go-ethmiddleware/mocks"
	"github.com/textileio/go-ethmiddleware/pkg/middleware"
	"github.com/textileio/go-ethmiddleware/pkg/txn"
)

var (
	sender    = common.HexToAddress("0x7E5F4552091A69125d5DfCb7b8C2659029395Bdf")
	recipient = common.HexToAddress("0xd8da6bf26964af9d7eed9e03e53415d37aa96045")
)

func TestRejectEverything(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	inner := mocks.NewMiddleware(t)
	inner.EXPECT().DefaultSender().Return(sender, true).Maybe()

	m := New(inner, RejectEverything)

	for i := 0; i < 3; i++ {
		_, err := m.SendTransaction(ctx, txn.Pay(recipient, big.NewInt(1)), nil)
		require.ErrorIs(t, err, ErrPolicyViolation)
		require.ErrorIs(t, err, ErrRejected)

		perr, ok := middleware.As[*Error](err)
		require.True(t, ok)
		require.Equal(t, KindPolicy, perr.Kind)
		require.Nil(t, perr.Inner())
	}
	require.ErrorIs(t, m.FillTransaction(ctx, txn.Pay(recipient, big.NewInt(1)), nil), ErrPolicyViolation)

	inner.AssertNotCalled(t, "SendTransaction", mock.Anything, mock.Anything, mock.Anything)
	inner.AssertNotCalled(t, "FillTransaction", mock.Anything, mock.Anything, mock.Anything)
}

func TestReadsPassThrough(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	inner := mocks.NewMiddleware(t)
	inner.EXPECT().Call(mock.Anything, mock.Anything, mock.Anything).Return([]byte{0x01}, nil).Once()
	inner.EXPECT().EstimateGas(mock.Anything, mock.Anything, mock.Anything).Return(uint64(21000), nil).Once()

	m := New(inner, RejectEverything)

	out, err := m.Call(ctx, txn.Pay(recipient, big.NewInt(1)), nil)
	require.NoError(t, err)
	require.Equal(t, []byte{0x01}, out)

	gas, err := m.EstimateGas(ctx, txn.Pay(recipient, big.NewInt(1)), nil)
	require.NoError(t, err)
	require.Equal(t, uint64(21000), gas)
}

func TestAllowedAndInnerErrors(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	boom := errors.New("boom")
	inner := mocks.NewMiddleware(t)
	inner.EXPECT().SendTransaction(mock.Anything, mock.Anything, mock.Anything).
		Return(middleware.NewPendingTransaction(common.HexToHash("0x01"), nil), nil).Once()
	inner.EXPECT().SendTransaction(mock.Anything, mock.Anything, mock.Anything).Return(nil, boom).Once()

	m := New(inner, AllowEverything)

	pending, err := m.SendTransaction(ctx, txn.Pay(recipient, big.NewInt(1)).SetFrom(sender), nil)
	require.NoError(t, err)
	require.Equal(t, common.HexToHash("0x01"), pending.Hash)

	_, err = m.SendTransaction(ctx, txn.Pay(recipient, big.NewInt(1)).SetFrom(sender), nil)
	require.ErrorIs(t, err, boom)
	require.False(t, errors.Is(err, ErrPolicyViolation))

	perr, ok := middleware.As[*Error](err)
	require.True(t, ok)
	require.Equal(t, boom, perr.Inner())
}

func TestMaxValue(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	p := MaxValue(big.NewInt(100))
	require.NoError(t, p.EnsureCanSend(ctx, txn.Pay(recipient, big.NewInt(100)), sender))
	require.NoError(t, p.EnsureCanSend(ctx, txn.NewDynamicFee().SetTo(recipient), sender))
	require.Error(t, p.EnsureCanSend(ctx, txn.Pay(recipient, big.NewInt(101)), sender))
}

func TestAllowRecipients(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	p := AllowRecipients(recipient)
	require.NoError(t, p.EnsureCanSend(ctx, txn.Pay(recipient, big.NewInt(1)), sender))
	require.Error(t, p.EnsureCanSend(ctx, txn.Pay(sender, big.NewInt(1)), sender))
	require.Error(t, p.EnsureCanSend(ctx, txn.NewDynamicFee().SetData([]byte{0x60}), sender))
}

func TestRateLimit(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	p, err := RateLimit(2, time.Minute)
	require.NoError(t, err)
	defer func() { require.NoError(t, p.Close(ctx)) }()

	tx := txn.Pay(recipient, big.NewInt(1))
	require.NoError(t, p.EnsureCanSend(ctx, tx, sender))
	require.NoError(t, p.EnsureCanSend(ctx, tx, sender))
	require.Error(t, p.EnsureCanSend(ctx, tx, sender))

	// buckets are per sender
	require.NoError(t, p.EnsureCanSend(ctx, tx, recipient))
}

func TestAll(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	calls := 0
	counting := Func(func(context.Context, *txn.TypedTransaction, common.Address) error {
		calls++
		return nil
	})

	p := All(counting, MaxValue(big.NewInt(10)), counting)
	require.NoError(t, p.EnsureCanSend(ctx, txn.Pay(recipient, big.NewInt(1)), sender))
	require.Equal(t, 2, calls)

	require.Error(t, p.EnsureCanSend(ctx, txn.Pay(recipient, big.NewInt(11)), sender))
	require.Equal(t, 3, calls, "evaluation stops at the first rejection")
}
