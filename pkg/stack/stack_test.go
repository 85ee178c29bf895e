package stack

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
	"github.com/textileio/go-ethmiddleware/pkg/middleware"
	"github.com/textileio/go-ethmiddleware/pkg/middleware/signing"
	nonceimpl "github.com/textileio/go-ethmiddleware/pkg/nonce/impl"
	"github.com/textileio/go-ethmiddleware/pkg/policy"
	"github.com/textileio/go-ethmiddleware/pkg/provider"
	"github.com/textileio/go-ethmiddleware/pkg/transformer"
	"github.com/textileio/go-ethmiddleware/pkg/txn"
	"github.com/textileio/go-ethmiddleware/pkg/wallet"
)

var recipient = common.HexToAddress("0xd8da6bf26964af9d7eed9e03e53415d37aa96045")

func TestFullStack(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	chain := chaintest.NewSimulatedChain(t, 1)
	w := chain.Wallets[0]

	m, err := New(provider.New(chain.Backend, provider.WithChainID(chain.ChainID))).
		Instrumented("provider").
		WithSignerFromChain(ctx, w).
		WithNonceManager().
		WithPolicy(policy.MaxValue(big.NewInt(1000))).
		WithTransformer(transformer.Identity).
		Instrumented("stack").
		Build()
	require.NoError(t, err)

	sender, ok := m.DefaultSender()
	require.True(t, ok)
	require.Equal(t, w.Address(), sender)

	for i := 0; i < 3; i++ {
		pending, err := m.SendTransaction(ctx, txn.Pay(recipient, big.NewInt(100)), nil)
		require.NoError(t, err)
		chain.Backend.Commit()

		receipt, err := pending.Receipt(ctx)
		require.NoError(t, err)
		require.Equal(t, types.ReceiptStatusSuccessful, receipt.Status)
	}

	_, err = m.SendTransaction(ctx, txn.Pay(recipient, big.NewInt(2000)), nil)
	require.ErrorIs(t, err, policy.ErrPolicyViolation)

	nm, ok := Layer[*nonceimpl.NonceManager](m)
	require.True(t, ok)
	next, ok := nm.Nonce(w.Address())
	require.True(t, ok)
	require.Equal(t, uint64(3), next)

	s, ok := Layer[*signing.SignerMiddleware](m)
	require.True(t, ok)
	require.Equal(t, w.Address(), s.Address())

	_, ok = Layer[*provider.Provider](m)
	require.True(t, ok)

	balance, err := chain.Backend.BalanceAt(ctx, recipient, nil)
	require.NoError(t, err)
	require.Equal(t, int64(300), balance.Int64())
}

func TestBuildKeepsFirstError(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	chain := chaintest.NewSimulatedChain(t, 1)
	boom := errors.New("boom")

	inner := mocks.NewMiddleware(t)
	inner.EXPECT().ChainID(mock.Anything).Return(nil, boom).Once()

	m, err := New(inner).
		WithSignerFromChain(ctx, chain.Wallets[0]).
		WithNonceManager().
		WithPolicy(policy.AllowEverything).
		Build()
	require.Nil(t, m)
	require.ErrorIs(t, err, boom)
}

func TestLayerNotFound(t *testing.T) {
	t.Parallel()

	chain := chaintest.NewSimulatedChain(t, 1)
	m, err := New(provider.New(chain.Backend, provider.WithChainID(chain.ChainID))).
		WithSigner(chain.Wallets[0]).
		Build()
	require.NoError(t, err)

	_, ok := Layer[*nonceimpl.NonceManager](m)
	require.False(t, ok)
}

type unreachableNode struct {
	provider.Backend
}

func (unreachableNode) PendingNonceAt(context.Context, common.Address) (uint64, error) {
	return 0, errors.New("connection refused")
}

func TestErrorsNarrowAcrossLayers(t *testing.T) {
	t.Parallel()

	w, err := wallet.New()
	require.NoError(t, err)

	m, err := New(provider.New(unreachableNode{}, provider.WithChainID(1337))).
		WithSigner(w.WithChainID(1337)).
		WithNonceManager().
		WithPolicy(policy.AllowEverything).
		Build()
	require.NoError(t, err)

	_, err = m.SendTransaction(context.Background(), txn.Pay(recipient, big.NewInt(1)), nil)
	require.Error(t, err)

	perr, ok := middleware.As[*policy.Error](err)
	require.True(t, ok)
	require.Equal(t, policy.KindMiddleware, perr.Kind)

	nerr, ok := middleware.As[*nonceimpl.Error](err)
	require.True(t, ok)
	require.Equal(t, nonceimpl.KindMiddleware, nerr.Kind)
	require.Equal(t, "get transaction count", nerr.Op)

	serr, ok := middleware.As[*signing.Error](err)
	require.True(t, ok)
	require.Equal(t, signing.KindMiddleware, serr.Kind)

	root, ok := middleware.As[*provider.Error](err)
	require.True(t, ok)
	require.Equal(t, provider.KindTransport, root.Kind)
	require.Same(t, root, middleware.Root(err))
	require.Len(t, middleware.Unwind(err), 4)

	_, ok = middleware.As[*signing.Error](serr.Inner())
	require.False(t, ok, "narrowing never walks back up")
}
