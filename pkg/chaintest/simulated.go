package chaintest

import (
	"math"
	"math/big"
	"testing"

	"github.com/ethereum/go-ethereum/accounts/abi/bind/backends"
	"github.com/ethereum/go-ethereum/core"
	"github.com/stretchr/testify/require"
	"github.com/textileio/go-ethmiddleware/pkg/wallet"
)

// ChainID is the chain id of the simulated backend.
const ChainID uint64 = 1337

// SimulatedChain is a simulated Ethereum backend with funded wallets.
type SimulatedChain struct {
	ChainID uint64
	Backend *backends.SimulatedBackend
	Wallets []*wallet.Wallet
}

// NewSimulatedChain creates a simulated chain with n funded wallets bound to its chain id.
func NewSimulatedChain(t *testing.T, n int) *SimulatedChain {
	t.Helper()

	c := &SimulatedChain{ChainID: ChainID}

	alloc := make(core.GenesisAlloc)
	for i := 0; i < n; i++ {
		w, err := wallet.New()
		require.NoError(t, err)
		alloc[w.Address()] = core.GenesisAccount{Balance: big.NewInt(math.MaxInt64)}
		c.Wallets = append(c.Wallets, w.WithChainID(c.ChainID).(*wallet.Wallet))
	}
	c.Backend = backends.NewSimulatedBackend(alloc, math.MaxInt64)
	t.Cleanup(func() {
		_ = c.Backend.Close()
	})

	return c
}
