package signing

import (
	"context"
	"fmt"
	"math/big"

	"github.com/ethereum/go-ethereum/common"
	"github.com/google/uuid"
	logger "github.com/rs/zerolog/log"
	"github.com/textileio/go-ethmiddleware/pkg/chains"
	"github.com/textileio/go-ethmiddleware/pkg/middleware"
	"github.com/textileio/go-ethmiddleware/pkg/signer"
	"github.com/textileio/go-ethmiddleware/pkg/txn"
)

var log = logger.With().Str("component", "signer").Logger()

// Option modifies the layer configuration.
type Option func(*SignerMiddleware)

// WithChains sets the registry used to detect legacy-only chains.
func WithChains(r *chains.Registry) Option {
	return func(m *SignerMiddleware) {
		m.chains = r
	}
}

// SignerMiddleware fills, signs and broadcasts the transactions sent by its signer.
// Transactions from other senders go through unsigned.
type SignerMiddleware struct {
	middleware.Base

	signer  signer.Signer
	address common.Address
	chains  *chains.Registry
}

var _ middleware.Middleware = (*SignerMiddleware)(nil)

// New returns a signer layer over inner.
func New(inner middleware.Middleware, s signer.Signer, opts ...Option) *SignerMiddleware {
	m := &SignerMiddleware{
		Base:    middleware.NewBase(inner, wrapInner),
		signer:  s,
		address: s.Address(),
		chains:  chains.Default,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// NewWithProviderChain returns a signer layer whose signer is bound to the chain id of inner.
func NewWithProviderChain(
	ctx context.Context, inner middleware.Middleware, s signer.Signer, opts ...Option,
) (*SignerMiddleware, error) {
	chainID, err := inner.ChainID(ctx)
	if err != nil {
		return nil, wrapInnerOp("get chain id", err)
	}
	if !chainID.IsUint64() {
		return nil, txError(fmt.Errorf("chain id %s overflows uint64", chainID))
	}
	return New(inner, s.WithChainID(chainID.Uint64()), opts...), nil
}

// WithSigner returns a copy of the layer using another signer.
func (m *SignerMiddleware) WithSigner(s signer.Signer) *SignerMiddleware {
	c := *m
	c.signer = s
	c.address = s.Address()
	return &c
}

// Address returns the signer address.
func (m *SignerMiddleware) Address() common.Address {
	return m.address
}

// Signer returns the signer.
func (m *SignerMiddleware) Signer() signer.Signer {
	return m.signer
}

// DefaultSender returns the signer address.
func (m *SignerMiddleware) DefaultSender() (common.Address, bool) {
	return m.address, true
}

// FillTransaction sets the sender, the chain id and the nonce, and downgrades fee market transactions
// targeting legacy-only chains. The other fields are filled by the inner layer.
func (m *SignerMiddleware) FillTransaction(ctx context.Context, tx *txn.TypedTransaction, block *big.Int) error {
	if tx.ChainID != nil && !m.sameChain(tx) {
		return txError(fmt.Errorf("%w: %s != %d", ErrDifferentChainID, tx.ChainID, m.signer.ChainID()))
	}

	if tx.From == nil {
		tx.SetFrom(m.address)
	}
	if tx.ChainID == nil {
		tx.SetChainID(m.signer.ChainID())
	}

	if tx.Type == txn.DynamicFee && m.chains.IsLegacy(chains.ChainID(tx.ChainID.Uint64())) {
		log.Debug().
			Uint64("chain_id", tx.ChainID.Uint64()).
			Msg("downgrading transaction to legacy")
		*tx = *tx.ToLegacy()
	}

	if tx.Nonce == nil {
		nonce, err := m.Inner().GetTransactionCount(ctx, *tx.From, block)
		if err != nil {
			return wrapInnerOp("get transaction count", err)
		}
		tx.SetNonce(nonce)
	}

	return m.Base.FillTransaction(ctx, tx, block)
}

// SendTransaction fills the transaction, signs it and broadcasts the raw bytes through the inner layer.
// Transactions from another sender are delegated unsigned.
func (m *SignerMiddleware) SendTransaction(
	ctx context.Context, tx *txn.TypedTransaction, block *big.Int,
) (*middleware.PendingTransaction, error) {
	if err := m.FillTransaction(ctx, tx, block); err != nil {
		return nil, err
	}

	if *tx.From != m.address {
		return m.Base.SendTransaction(ctx, tx, block)
	}

	if !m.sameChain(tx) {
		return nil, txError(fmt.Errorf("%w: %s != %d", ErrDifferentChainID, tx.ChainID, m.signer.ChainID()))
	}

	raw, err := m.signedRaw(ctx, tx)
	if err != nil {
		return nil, err
	}

	pending, err := m.Base.SendRawTransaction(ctx, raw)
	if err != nil {
		return nil, err
	}

	log.Info().
		Str("correlation_id", uuid.NewString()).
		Str("hash", pending.Hash.Hex()).
		Str("from", m.address.Hex()).
		Uint64("nonce", *tx.Nonce).
		Str("type", tx.Type.String()).
		Msg("transaction sent")

	return pending, nil
}

// SignTransaction signs a filled transaction. The signer must be from.
func (m *SignerMiddleware) SignTransaction(
	_ context.Context, tx *txn.TypedTransaction, from common.Address,
) (*signer.Signature, error) {
	if from != m.address {
		return nil, txError(fmt.Errorf("%w: %s", ErrWrongSigner, from))
	}
	if tx.Nonce == nil {
		return nil, txError(ErrNonceMissing)
	}
	if tx.Gas == nil {
		return nil, txError(ErrGasMissing)
	}
	if !tx.HasFees() {
		return nil, txError(ErrGasPriceMissing)
	}

	sig, err := m.signer.SignTransaction(tx)
	if err != nil {
		return nil, &Error{Kind: KindSigner, Err: err}
	}
	return sig, nil
}

// Sign signs a message. The signer must be from.
func (m *SignerMiddleware) Sign(_ context.Context, data []byte, from common.Address) (*signer.Signature, error) {
	if from != m.address {
		return nil, txError(fmt.Errorf("%w: %s", ErrWrongSigner, from))
	}
	sig, err := m.signer.SignMessage(data)
	if err != nil {
		return nil, &Error{Kind: KindSigner, Err: err}
	}
	return sig, nil
}

// EstimateGas sets the signer as sender if the transaction has none, and delegates.
func (m *SignerMiddleware) EstimateGas(ctx context.Context, tx *txn.TypedTransaction, block *big.Int) (uint64, error) {
	return m.Base.EstimateGas(ctx, m.withSender(tx), block)
}

// CreateAccessList sets the signer as sender if the transaction has none, and delegates.
func (m *SignerMiddleware) CreateAccessList(
	ctx context.Context, tx *txn.TypedTransaction, block *big.Int,
) (*middleware.AccessListResult, error) {
	return m.Base.CreateAccessList(ctx, m.withSender(tx), block)
}

// Call sets the signer as sender if the transaction has none, and delegates.
func (m *SignerMiddleware) Call(ctx context.Context, tx *txn.TypedTransaction, block *big.Int) ([]byte, error) {
	return m.Base.Call(ctx, m.withSender(tx), block)
}

func (m *SignerMiddleware) withSender(tx *txn.TypedTransaction) *txn.TypedTransaction {
	if tx.From != nil {
		return tx
	}
	return tx.Clone().SetFrom(m.address)
}

func (m *SignerMiddleware) sameChain(tx *txn.TypedTransaction) bool {
	return tx.ChainID.IsUint64() && tx.ChainID.Uint64() == m.signer.ChainID()
}

func (m *SignerMiddleware) signedRaw(ctx context.Context, tx *txn.TypedTransaction) ([]byte, error) {
	sig, err := m.SignTransaction(ctx, tx, m.address)
	if err != nil {
		return nil, err
	}
	sigBytes, err := sig.Raw()
	if err != nil {
		return nil, &Error{Kind: KindSigner, Err: err}
	}
	raw, err := tx.RLPSigned(sigBytes)
	if err != nil {
		return nil, &Error{Kind: KindSigner, Err: err}
	}
	return raw, nil
}
