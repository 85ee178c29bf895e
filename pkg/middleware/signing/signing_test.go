package signing

import (
	"context"
	"errors"
	"math/big"
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/textileio/go-ethmiddleware/mocks"
	"github.com/textileio/go-ethmiddleware/pkg/chaintest"
	"github.com/textileio/go-ethmiddleware/pkg/chains"
	"github.com/textileio/go-ethmiddleware/pkg/middleware"
	"github.com/textileio/go-ethmiddleware/pkg/provider"
	"github.com/textileio/go-ethmiddleware/pkg/txn"
	"github.com/textileio/go-ethmiddleware/pkg/wallet"
)

var (
	recipient  = common.HexToAddress("0xd8da6bf26964af9d7eed9e03e53415d37aa96045")
	thirdParty = common.HexToAddress("0x2B5AD5c4795c026514f8317c7a215E218DcCD6cF")
)

func TestFillSetsSender(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	w := newWallet(t, 1337)
	inner := mocks.NewMiddleware(t)
	inner.EXPECT().GetTransactionCount(mock.Anything, w.Address(), mock.Anything).Return(uint64(3), nil).Once()
	inner.EXPECT().FillTransaction(mock.Anything, mock.Anything, mock.Anything).Return(nil).Once()

	m := New(inner, w)

	tx := txn.Pay(recipient, big.NewInt(1))
	require.NoError(t, m.FillTransaction(ctx, tx, nil))
	require.Equal(t, w.Address(), *tx.From)
	require.Equal(t, uint64(3), *tx.Nonce)
	require.Equal(t, int64(1337), tx.ChainID.Int64())
	require.Equal(t, txn.DynamicFee, tx.Type)

	sender, ok := m.DefaultSender()
	require.True(t, ok)
	require.Equal(t, w.Address(), sender)
}

func TestFillKeepsThirdPartySender(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	w := newWallet(t, 1337)
	inner := mocks.NewMiddleware(t)
	inner.EXPECT().GetTransactionCount(mock.Anything, thirdParty, mock.Anything).Return(uint64(0), nil).Once()
	inner.EXPECT().FillTransaction(mock.Anything, mock.Anything, mock.Anything).Return(nil).Once()
	inner.EXPECT().SendTransaction(mock.Anything, mock.Anything, mock.Anything).
		RunAndReturn(func(_ context.Context, tx *txn.TypedTransaction, _ *big.Int) (*middleware.PendingTransaction, error) {
			require.Equal(t, thirdParty, *tx.From)
			return middleware.NewPendingTransaction(common.HexToHash("0x01"), nil), nil
		}).Once()

	m := New(inner, w)

	tx := txn.Pay(recipient, big.NewInt(1)).SetFrom(thirdParty)
	pending, err := m.SendTransaction(ctx, tx, nil)
	require.NoError(t, err)
	require.Equal(t, common.HexToHash("0x01"), pending.Hash)
	require.Equal(t, thirdParty, *tx.From)
	inner.AssertNotCalled(t, "SendRawTransaction", mock.Anything, mock.Anything)
}

func TestFillDifferentChainID(t *testing.T) {
	t.Parallel()

	w := newWallet(t, 1337)
	inner := mocks.NewMiddleware(t)
	m := New(inner, w)

	tx := txn.Pay(recipient, big.NewInt(1)).SetChainID(5)
	err := m.FillTransaction(context.Background(), tx, nil)
	require.ErrorIs(t, err, ErrDifferentChainID)
	require.Nil(t, tx.From, "a rejected draft is left untouched")

	var serr *Error
	require.True(t, errors.As(err, &serr))
	require.Equal(t, KindTransaction, serr.Kind)
	require.Nil(t, serr.Inner())

	_, err = m.SendTransaction(context.Background(), tx, nil)
	require.ErrorIs(t, err, ErrDifferentChainID)
}

func TestFillDowngradesOnLegacyChains(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	w := newWallet(t, uint64(chains.ChainIDs.BinanceSmart))
	inner := mocks.NewMiddleware(t)
	inner.EXPECT().FillTransaction(mock.Anything, mock.Anything, mock.Anything).Return(nil).Once()

	m := New(inner, w)

	accessList := types.AccessList{{Address: recipient, StorageKeys: []common.Hash{common.HexToHash("0x02")}}}
	tx := txn.NewDynamicFee().
		SetTo(recipient).
		SetValue(big.NewInt(42)).
		SetData([]byte{0xca, 0xfe}).
		SetGas(60000).
		SetNonce(9)
	tx.GasFeeCap = big.NewInt(30e9)
	tx.GasTipCap = big.NewInt(2e9)
	tx.AccessList = accessList

	require.NoError(t, m.FillTransaction(ctx, tx, nil))
	require.Equal(t, txn.Legacy, tx.Type)
	require.Equal(t, big.NewInt(30e9), tx.GasPrice)
	require.Nil(t, tx.GasFeeCap)
	require.Nil(t, tx.GasTipCap)
	require.Nil(t, tx.AccessList)
	require.Equal(t, recipient, *tx.To)
	require.Equal(t, w.Address(), *tx.From)
	require.Equal(t, big.NewInt(42), tx.Value)
	require.Equal(t, []byte{0xca, 0xfe}, tx.Data)
	require.Equal(t, uint64(60000), *tx.Gas)
	require.Equal(t, uint64(9), *tx.Nonce)
	require.Equal(t, int64(56), tx.ChainID.Int64())
}

func TestFillCustomRegistry(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	w := newWallet(t, 1337)
	inner := mocks.NewMiddleware(t)
	inner.EXPECT().FillTransaction(mock.Anything, mock.Anything, mock.Anything).Return(nil).Once()

	m := New(inner, w, WithChains(chains.NewRegistry(chains.Chain{ID: 1337, Legacy: true})))

	tx := txn.Pay(recipient, big.NewInt(1)).SetNonce(0)
	require.NoError(t, m.FillTransaction(ctx, tx, nil))
	require.Equal(t, txn.Legacy, tx.Type)
}

func TestSendSignsAndBroadcastsRaw(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	w := newWallet(t, 1337)
	inner := mocks.NewMiddleware(t)
	inner.EXPECT().GetTransactionCount(mock.Anything, w.Address(), mock.Anything).Return(uint64(7), nil).Once()
	inner.EXPECT().FillTransaction(mock.Anything, mock.Anything, mock.Anything).
		Run(func(_ context.Context, tx *txn.TypedTransaction, _ *big.Int) {
			tx.SetGas(21000).SetGasPrice(big.NewInt(1e9))
		}).
		Return(nil).Once()

	var broadcast *types.Transaction
	inner.EXPECT().SendRawTransaction(mock.Anything, mock.Anything).
		RunAndReturn(func(_ context.Context, raw []byte) (*middleware.PendingTransaction, error) {
			broadcast = new(types.Transaction)
			require.NoError(t, broadcast.UnmarshalBinary(raw))
			return middleware.NewPendingTransaction(broadcast.Hash(), nil), nil
		}).Once()

	m := New(inner, w)

	pending, err := m.SendTransaction(ctx, txn.Pay(recipient, big.NewInt(5)), nil)
	require.NoError(t, err)
	require.NotNil(t, broadcast)
	require.Equal(t, broadcast.Hash(), pending.Hash)
	require.Equal(t, uint64(7), broadcast.Nonce())
	require.Equal(t, uint8(types.DynamicFeeTxType), broadcast.Type())

	from, err := types.Sender(types.LatestSignerForChainID(big.NewInt(1337)), broadcast)
	require.NoError(t, err)
	require.Equal(t, w.Address(), from)
	inner.AssertNotCalled(t, "SendTransaction", mock.Anything, mock.Anything, mock.Anything)
}

func TestSignTransactionMissingFields(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	w := newWallet(t, 1337)
	m := New(mocks.NewMiddleware(t), w)

	_, err := m.SignTransaction(ctx, txn.Pay(recipient, big.NewInt(1)).SetGas(21000).SetGasPrice(big.NewInt(1)), w.Address())
	require.ErrorIs(t, err, ErrNonceMissing)

	_, err = m.SignTransaction(ctx, txn.Pay(recipient, big.NewInt(1)).SetNonce(0).SetGasPrice(big.NewInt(1)), w.Address())
	require.ErrorIs(t, err, ErrGasMissing)

	_, err = m.SignTransaction(ctx, txn.Pay(recipient, big.NewInt(1)).SetNonce(0).SetGas(21000), w.Address())
	require.ErrorIs(t, err, ErrGasPriceMissing)

	tx := txn.Pay(recipient, big.NewInt(1)).SetNonce(0).SetGas(21000).SetGasPrice(big.NewInt(1))
	_, err = m.SignTransaction(ctx, tx, thirdParty)
	require.ErrorIs(t, err, ErrWrongSigner)

	sig, err := m.SignTransaction(ctx, tx, w.Address())
	require.NoError(t, err)
	require.Contains(t, []uint64{35 + 2*1337, 36 + 2*1337}, sig.V)
}

func TestSign(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	w := newWallet(t, 1337)
	m := New(mocks.NewMiddleware(t), w)

	sig, err := m.Sign(ctx, []byte("hello"), w.Address())
	require.NoError(t, err)
	require.NoError(t, sig.Verify([]byte("hello"), w.Address()))

	_, err = m.Sign(ctx, []byte("hello"), thirdParty)
	require.ErrorIs(t, err, ErrWrongSigner)
}

func TestReadsSetSenderOnlyIfUnset(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	w := newWallet(t, 1337)
	inner := mocks.NewMiddleware(t)
	inner.EXPECT().EstimateGas(mock.Anything, mock.Anything, mock.Anything).
		RunAndReturn(func(_ context.Context, tx *txn.TypedTransaction, _ *big.Int) (uint64, error) {
			require.Equal(t, w.Address(), *tx.From)
			return 21000, nil
		}).Once()
	inner.EXPECT().Call(mock.Anything, mock.Anything, mock.Anything).
		RunAndReturn(func(_ context.Context, tx *txn.TypedTransaction, _ *big.Int) ([]byte, error) {
			require.Equal(t, thirdParty, *tx.From)
			return []byte{0x01}, nil
		}).Once()

	m := New(inner, w)

	tx := txn.Pay(recipient, big.NewInt(1))
	gas, err := m.EstimateGas(ctx, tx, nil)
	require.NoError(t, err)
	require.Equal(t, uint64(21000), gas)
	require.Nil(t, tx.From, "the caller transaction is left untouched")

	out, err := m.Call(ctx, txn.Pay(recipient, big.NewInt(1)).SetFrom(thirdParty), nil)
	require.NoError(t, err)
	require.Equal(t, []byte{0x01}, out)
}

func TestInnerErrorsAreWrapped(t *testing.T) {
	t.Parallel()

	boom := &provider.Error{Kind: provider.KindTransport, Op: "eth_getTransactionCount", Err: errors.New("boom")}
	w := newWallet(t, 1337)
	inner := mocks.NewMiddleware(t)
	inner.EXPECT().GetTransactionCount(mock.Anything, mock.Anything, mock.Anything).Return(uint64(0), boom).Once()

	m := New(inner, w)

	err := m.FillTransaction(context.Background(), txn.Pay(recipient, big.NewInt(1)), nil)
	require.ErrorIs(t, err, boom)

	serr, ok := middleware.As[*Error](err)
	require.True(t, ok)
	require.Equal(t, KindMiddleware, serr.Kind)
	require.Equal(t, "get transaction count", serr.Op)
	require.Same(t, boom, serr.Inner())

	perr, ok := middleware.As[*provider.Error](err)
	require.True(t, ok)
	require.Same(t, boom, perr)
	require.Equal(t, []error{err, boom}, middleware.Unwind(err))
}

func TestChainIDErrorsAreWrapped(t *testing.T) {
	t.Parallel()

	boom := &provider.Error{Kind: provider.KindTransport, Op: "eth_chainId", Err: errors.New("boom")}
	inner := mocks.NewMiddleware(t)
	inner.EXPECT().ChainID(mock.Anything).Return(nil, boom).Once()

	_, err := NewWithProviderChain(context.Background(), inner, newWallet(t, 1))
	serr, ok := middleware.As[*Error](err)
	require.True(t, ok)
	require.Equal(t, "get chain id", serr.Op)

	perr, ok := middleware.As[*provider.Error](err)
	require.True(t, ok)
	require.Same(t, boom, perr)
}

func TestNewWithProviderChain(t *testing.T) {
	t.Parallel()

	w := newWallet(t, wallet.DefaultChainID)
	inner := mocks.NewMiddleware(t)
	inner.EXPECT().ChainID(mock.Anything).Return(big.NewInt(80001), nil).Once()

	m, err := NewWithProviderChain(context.Background(), inner, w)
	require.NoError(t, err)
	require.Equal(t, uint64(80001), m.Signer().ChainID())
	require.Equal(t, wallet.DefaultChainID, w.ChainID(), "the original signer is not modified")

	other := newWallet(t, 80001)
	m2 := m.WithSigner(other)
	require.Equal(t, other.Address(), m2.Address())
	require.Equal(t, w.Address(), m.Address())
}

func TestSendOnSimulatedChain(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	chain := chaintest.NewSimulatedChain(t, 1)
	p := provider.New(chain.Backend, provider.WithChainID(chain.ChainID))

	m, err := NewWithProviderChain(ctx, p, chain.Wallets[0])
	require.NoError(t, err)

	for i, tx := range []*txn.TypedTransaction{
		txn.Pay(recipient, big.NewInt(100)),
		txn.NewLegacy().SetTo(recipient).SetValue(big.NewInt(200)),
		txn.NewAccessList().SetTo(recipient).SetValue(big.NewInt(300)),
	} {
		pending, err := m.SendTransaction(ctx, tx, nil)
		require.NoError(t, err)
		require.Equal(t, uint64(i), *tx.Nonce)
		chain.Backend.Commit()

		receipt, err := pending.Receipt(ctx)
		require.NoError(t, err)
		require.Equal(t, types.ReceiptStatusSuccessful, receipt.Status)
	}

	balance, err := chain.Backend.BalanceAt(ctx, recipient, nil)
	require.NoError(t, err)
	require.Equal(t, int64(600), balance.Int64())
}

func newWallet(t *testing.T, chainID uint64) *wallet.Wallet {
	t.Helper()

	w, err := wallet.New()
	require.NoError(t, err)
	return w.WithChainID(chainID).(*wallet.Wallet)
}
