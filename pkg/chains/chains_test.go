package chains

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestDefaultRegistry(t *testing.T) {
	t.Parallel()

	for _, id := range []ChainID{56, 97, 250, 4002, 30, 42220, 44787, 288, 324, 280, 1101, 1442} {
		require.True(t, Default.IsLegacy(id), "chain %d", id)
	}
	for _, id := range []ChainID{1, 5, 10, 137, 80001, 42161, 11155111, 31337, 1337} {
		require.False(t, Default.IsLegacy(id), "chain %d", id)
	}

	// unknown chains accept EIP-1559
	require.False(t, Default.IsLegacy(999999))
	_, err := Default.Get(999999)
	require.True(t, errors.Is(err, ErrUnknownChain))
}

func TestRegister(t *testing.T) {
	t.Parallel()

	r := NewRegistry()
	require.False(t, r.IsLegacy(1337))

	r.Register(Chain{ID: 1337, Name: "Simulated", Legacy: true})
	require.True(t, r.IsLegacy(1337))

	c, err := r.Get(1337)
	require.NoError(t, err)
	require.Equal(t, "Simulated", c.Name)

	r.Register(Chain{ID: 5, Name: "Goerli"})
	list := r.List()
	require.Len(t, list, 2)
	require.Equal(t, ChainID(5), list[0].ID)
	require.Equal(t, ChainID(1337), list[1].ID)
}

func TestEndpointURL(t *testing.T) {
	t.Parallel()

	url, err := EndpointURL(ChainIDs.Polygon, "infura", "key")
	require.NoError(t, err)
	require.Equal(t, "https://polygon-mainnet.infura.io/v3/key", url)

	url, err = EndpointURL(ChainIDs.Local, "local", "")
	require.NoError(t, err)
	require.Equal(t, "http://localhost:8545", url)

	_, err = EndpointURL(ChainIDs.BinanceSmart, "alchemy", "key")
	require.Error(t, err)

	_, err = EndpointURL(ChainIDs.Ethereum, "quicknode", "key")
	require.Error(t, err)
}
