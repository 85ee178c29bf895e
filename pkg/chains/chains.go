package chains

import (
	"errors"
	"fmt"
	"sort"
	"sync"
)

// ChainID is an EVM chain identifier.
type ChainID uint64

// ChainIDs is the set of well known chain ids.
var ChainIDs = struct {
	Ethereum        ChainID
	Optimism        ChainID
	Polygon         ChainID
	Arbitrum        ChainID
	EthereumGoerli  ChainID
	EthereumSepolia ChainID
	PolygonMumbai   ChainID
	BinanceSmart    ChainID
	BinanceTestnet  ChainID
	Fantom          ChainID
	FantomTestnet   ChainID
	Rootstock       ChainID
	Celo            ChainID
	CeloAlfajores   ChainID
	Boba            ChainID
	ZkSync          ChainID
	ZkSyncTestnet   ChainID
	PolygonZkEVM    ChainID
	ZkEVMTestnet    ChainID
	Local           ChainID
	Simulated       ChainID
}{
	Ethereum:        1,
	Optimism:        10,
	Polygon:         137,
	Arbitrum:        42161,
	EthereumGoerli:  5,
	EthereumSepolia: 11155111,
	PolygonMumbai:   80001,
	BinanceSmart:    56,
	BinanceTestnet:  97,
	Fantom:          250,
	FantomTestnet:   4002,
	Rootstock:       30,
	Celo:            42220,
	CeloAlfajores:   44787,
	Boba:            288,
	ZkSync:          324,
	ZkSyncTestnet:   280,
	PolygonZkEVM:    1101,
	ZkEVMTestnet:    1442,
	Local:           31337,
	Simulated:       1337,
}

// Chain describes a known network.
type Chain struct {
	ID   ChainID
	Name string
	// Legacy is set for networks that don't accept EIP-1559 transactions.
	Legacy bool
}

// ErrUnknownChain is returned when looking up a chain id that isn't registered.
var ErrUnknownChain = errors.New("unknown chain")

// Registry holds the known networks. It's safe for concurrent use.
type Registry struct {
	mu     sync.RWMutex
	chains map[ChainID]Chain
}

// NewRegistry returns a registry with the given chains.
func NewRegistry(chains ...Chain) *Registry {
	r := &Registry{chains: make(map[ChainID]Chain, len(chains))}
	for _, c := range chains {
		r.chains[c.ID] = c
	}
	return r
}

// Default is the registry of well known networks.
var Default = NewRegistry(
	Chain{ID: ChainIDs.Ethereum, Name: "Ethereum"},
	Chain{ID: ChainIDs.Optimism, Name: "Optimism"},
	Chain{ID: ChainIDs.Polygon, Name: "Polygon"},
	Chain{ID: ChainIDs.Arbitrum, Name: "Arbitrum"},
	Chain{ID: ChainIDs.EthereumGoerli, Name: "Ethereum Goerli"},
	Chain{ID: ChainIDs.EthereumSepolia, Name: "Ethereum Sepolia"},
	Chain{ID: ChainIDs.PolygonMumbai, Name: "Polygon Mumbai"},
	Chain{ID: ChainIDs.BinanceSmart, Name: "BNB Smart Chain", Legacy: true},
	Chain{ID: ChainIDs.BinanceTestnet, Name: "BNB Smart Chain Testnet", Legacy: true},
	Chain{ID: ChainIDs.Fantom, Name: "Fantom", Legacy: true},
	Chain{ID: ChainIDs.FantomTestnet, Name: "Fantom Testnet", Legacy: true},
	Chain{ID: ChainIDs.Rootstock, Name: "Rootstock", Legacy: true},
	Chain{ID: ChainIDs.Celo, Name: "Celo", Legacy: true},
	Chain{ID: ChainIDs.CeloAlfajores, Name: "Celo Alfajores", Legacy: true},
	Chain{ID: ChainIDs.Boba, Name: "Boba", Legacy: true},
	Chain{ID: ChainIDs.ZkSync, Name: "zkSync Era", Legacy: true},
	Chain{ID: ChainIDs.ZkSyncTestnet, Name: "zkSync Era Testnet", Legacy: true},
	Chain{ID: ChainIDs.PolygonZkEVM, Name: "Polygon zkEVM", Legacy: true},
	Chain{ID: ChainIDs.ZkEVMTestnet, Name: "Polygon zkEVM Testnet", Legacy: true},
	Chain{ID: ChainIDs.Local, Name: "Local"},
	Chain{ID: ChainIDs.Simulated, Name: "Simulated"},
)

// Register adds or replaces a chain.
func (r *Registry) Register(c Chain) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.chains[c.ID] = c
}

// Get returns the chain with the given id.
func (r *Registry) Get(id ChainID) (Chain, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	c, ok := r.chains[id]
	if !ok {
		return Chain{}, fmt.Errorf("chain %d: %w", id, ErrUnknownChain)
	}
	return c, nil
}

// List returns the registered chains ordered by id.
func (r *Registry) List() []Chain {
	r.mu.RLock()
	defer r.mu.RUnlock()
	list := make([]Chain, 0, len(r.chains))
	for _, c := range r.chains {
		list = append(list, c)
	}
	sort.Slice(list, func(i, j int) bool { return list[i].ID < list[j].ID })
	return list
}

// IsLegacy reports whether the chain only accepts legacy transactions. Unknown chains aren't legacy.
func (r *Registry) IsLegacy(id ChainID) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.chains[id].Legacy
}

// InfuraURLs contains the URLs for supported chains for Infura.
var InfuraURLs = map[ChainID]string{
	ChainIDs.EthereumGoerli:  "https://goerli.infura.io/v3/%s",
	ChainIDs.EthereumSepolia: "https://sepolia.infura.io/v3/%s",
	ChainIDs.Ethereum:        "https://mainnet.infura.io/v3/%s",
	ChainIDs.Optimism:        "https://optimism-mainnet.infura.io/v3/%s",
	ChainIDs.Arbitrum:        "https://arbitrum-mainnet.infura.io/v3/%s",
	ChainIDs.PolygonMumbai:   "https://polygon-mumbai.infura.io/v3/%s",
	ChainIDs.Polygon:         "https://polygon-mainnet.infura.io/v3/%s",
}

// AlchemyURLs contains the URLs for supported chains for Alchemy.
var AlchemyURLs = map[ChainID]string{
	ChainIDs.EthereumGoerli: "https://eth-goerli.g.alchemy.com/v2/%s",
	ChainIDs.Ethereum:       "https://eth-mainnet.g.alchemy.com/v2/%s",
	ChainIDs.Optimism:       "https://opt-mainnet.g.alchemy.com/v2/%s",
	ChainIDs.Arbitrum:       "https://arb-mainnet.g.alchemy.com/v2/%s",
	ChainIDs.PolygonMumbai:  "https://polygon-mumbai.g.alchemy.com/v2/%s",
	ChainIDs.Polygon:        "https://polygon-mainnet.g.alchemy.com/v2/%s",
}

// LocalURLs contains the URLs for a local network.
var LocalURLs = map[ChainID]string{
	ChainIDs.Local: "http://localhost:8545",
}

// EndpointURL builds the endpoint url of a chain for a provider ("infura", "alchemy" or "local").
func EndpointURL(id ChainID, provider, apiKey string) (string, error) {
	var urls map[ChainID]string
	switch provider {
	case "infura":
		urls = InfuraURLs
	case "alchemy":
		urls = AlchemyURLs
	case "local":
		url, ok := LocalURLs[id]
		if !ok {
			return "", fmt.Errorf("chain %d has no local url", id)
		}
		return url, nil
	default:
		return "", fmt.Errorf("unknown provider %q", provider)
	}
	tmpl, ok := urls[id]
	if !ok {
		return "", fmt.Errorf("chain %d isn't supported by %s", id, provider)
	}
	return fmt.Sprintf(tmpl, apiKey), nil
}
