package impl

import (
	"context"
	"fmt"
	"math/big"
	"sync"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	logger "github.com/rs/zerolog/log"
	"github.com/textileio/go-ethmiddleware/pkg/middleware"
	"github.com/textileio/go-ethmiddleware/pkg/nonce"
	"github.com/textileio/go-ethmiddleware/pkg/provider"
	"github.com/textileio/go-ethmiddleware/pkg/txn"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/metric/instrument"
	"go.uber.org/atomic"
	"golang.org/x/sync/singleflight"
)

var log = logger.With().Str("component", "nonce").Logger()

// Option modifies the nonce manager configuration.
type Option func(*NonceManager)

// WithConflictPredicate sets the predicate recognizing nonce conflicts in send errors.
// It defaults to provider.IsNonceConflict.
func WithConflictPredicate(isConflict func(error) bool) Option {
	return func(m *NonceManager) {
		m.isConflict = isConflict
	}
}

// WithResubmit makes SendTransaction resend once with a fresh nonce after a nonce conflict.
func WithResubmit() Option {
	return func(m *NonceManager) {
		m.resubmit = true
	}
}

// WithPendingStore journals the transactions sent with a managed nonce.
func WithPendingStore(store nonce.PendingStore) Option {
	return func(m *NonceManager) {
		m.store = store
	}
}

type entry struct {
	synced atomic.Bool
	next   atomic.Uint64
}

// NonceManager assigns nonces locally so concurrent sends from the same address never collide,
// without asking the endpoint for each transaction.
type NonceManager struct {
	middleware.Base

	isConflict func(error) bool
	resubmit   bool
	store      nonce.PendingStore

	mu      sync.Mutex
	entries map[common.Address]*entry
	group   singleflight.Group

	chainIDMu sync.Mutex
	chainID   *big.Int

	mResyncs      instrument.Int64Counter
	mRegistration metric.Registration
	mBaseLabels   []attribute.KeyValue
}

var _ middleware.Middleware = (*NonceManager)(nil)

// New returns a nonce manager over inner.
func New(inner middleware.Middleware, opts ...Option) (*NonceManager, error) {
	m := &NonceManager{
		Base:       middleware.NewBase(inner, wrapInner),
		isConflict: provider.IsNonceConflict,
		entries:    make(map[common.Address]*entry),
	}
	for _, opt := range opts {
		opt(m)
	}
	if err := m.initMetrics(); err != nil {
		return nil, fmt.Errorf("init metrics: %s", err)
	}
	return m, nil
}

// FillTransaction sets the nonce from the local counter if unset, and delegates. If the inner
// layer fails the nonce is given back and the draft is left without nonce.
func (m *NonceManager) FillTransaction(ctx context.Context, tx *txn.TypedTransaction, block *big.Int) error {
	if tx.Nonce != nil {
		return m.Base.FillTransaction(ctx, tx, block)
	}

	from, err := m.sender(tx)
	if err != nil {
		return err
	}
	n, err := m.next(ctx, from, block)
	if err != nil {
		return err
	}
	tx.SetNonce(n)
	if err := m.Base.FillTransaction(ctx, tx, block); err != nil {
		tx.Nonce = nil
		m.release(from, n)
		return err
	}
	return nil
}

// GetTransactionCount returns the next managed nonce of a synced address for a nil block, without
// consuming it. Other requests are delegated.
func (m *NonceManager) GetTransactionCount(ctx context.Context, addr common.Address, block *big.Int) (uint64, error) {
	if block == nil {
		if n, ok := m.Nonce(addr); ok {
			return n, nil
		}
	}
	return m.Base.GetTransactionCount(ctx, addr, block)
}

// SendTransaction sets the nonce from the local counter if unset, and delegates. The address is
// resynced on a nonce conflict; on other failures a nonce taken by this call is given back.
func (m *NonceManager) SendTransaction(
	ctx context.Context, tx *txn.TypedTransaction, block *big.Int,
) (*middleware.PendingTransaction, error) {
	from, senderErr := m.sender(tx)
	managed := tx.Nonce == nil
	if managed {
		if senderErr != nil {
			return nil, senderErr
		}
		n, err := m.next(ctx, from, block)
		if err != nil {
			return nil, err
		}
		tx.SetNonce(n)
	}

	pending, err := m.Inner().SendTransaction(ctx, tx, block)
	if err == nil {
		if senderErr == nil {
			m.journal(ctx, from, *tx.Nonce, pending.Hash)
		}
		return pending, nil
	}
	if senderErr != nil {
		return nil, m.Wrap(err)
	}
	if !m.isConflict(err) {
		if managed {
			m.release(from, *tx.Nonce)
			tx.Nonce = nil
		}
		return nil, m.Wrap(err)
	}

	m.invalidate(from, *tx.Nonce, err)
	if !m.resubmit {
		return nil, m.Wrap(err)
	}

	n, nerr := m.next(ctx, from, block)
	if nerr != nil {
		return nil, nerr
	}
	log.Info().
		Str("address", from.Hex()).
		Uint64("nonce", n).
		Msg("resubmitting transaction")
	tx.SetNonce(n)

	pending, err = m.Inner().SendTransaction(ctx, tx, block)
	if err != nil {
		if m.isConflict(err) {
			m.invalidate(from, n, err)
		} else {
			m.release(from, n)
			tx.Nonce = nil
		}
		return nil, m.Wrap(err)
	}
	m.journal(ctx, from, n, pending.Hash)
	return pending, nil
}

// SendRawTransaction delegates. The sender, recovered from the signature, is resynced on a nonce conflict.
func (m *NonceManager) SendRawTransaction(ctx context.Context, raw []byte) (*middleware.PendingTransaction, error) {
	pending, err := m.Inner().SendRawTransaction(ctx, raw)

	decoded := new(types.Transaction)
	if derr := decoded.UnmarshalBinary(raw); derr != nil {
		if err != nil {
			return nil, m.Wrap(err)
		}
		return pending, nil
	}
	from, serr := types.Sender(types.LatestSignerForChainID(decoded.ChainId()), decoded)

	if err != nil {
		if serr == nil && m.isConflict(err) {
			m.invalidate(from, decoded.Nonce(), err)
		}
		return nil, m.Wrap(err)
	}
	if serr == nil {
		m.journal(ctx, from, decoded.Nonce(), pending.Hash)
	}
	return pending, nil
}

// Close stops reporting the nonce metrics of the manager.
func (m *NonceManager) Close() error {
	if m.mRegistration == nil {
		return nil
	}
	if err := m.mRegistration.Unregister(); err != nil {
		return fmt.Errorf("unregistering metrics callback: %s", err)
	}
	m.mRegistration = nil
	return nil
}

// Nonce returns the next nonce of an address, if it's synced.
func (m *NonceManager) Nonce(addr common.Address) (uint64, bool) {
	m.mu.Lock()
	e, ok := m.entries[addr]
	m.mu.Unlock()
	if !ok || !e.synced.Load() {
		return 0, false
	}
	return e.next.Load(), true
}

// Reset drops the local state of an address. The next fill resyncs it with the inner layer.
func (m *NonceManager) Reset(addr common.Address) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if e, ok := m.entries[addr]; ok {
		e.synced.Store(false)
	}
}

// PendingCount returns the number of journaled transactions of an address.
func (m *NonceManager) PendingCount(ctx context.Context, addr common.Address) (int, error) {
	if m.store == nil {
		return 0, nil
	}
	chainID, err := m.chainIDValue(ctx)
	if err != nil {
		return 0, err
	}
	txs, err := m.store.ListPendingTx(ctx, chainID, addr)
	if err != nil {
		return 0, fmt.Errorf("list pending txs: %s", err)
	}
	return len(txs), nil
}

// Confirm drops from the journal the transactions of an address that have at least depth blocks on top.
func (m *NonceManager) Confirm(
	ctx context.Context, addr common.Address, fetcher middleware.ReceiptFetcher, depth uint64,
) error {
	if m.store == nil {
		return nil
	}
	chainID, err := m.chainIDValue(ctx)
	if err != nil {
		return err
	}
	txs, err := m.store.ListPendingTx(ctx, chainID, addr)
	if err != nil {
		return fmt.Errorf("list pending txs: %s", err)
	}
	for _, pendingTx := range txs {
		log.Debug().
			Str("hash", pendingTx.Hash.Hex()).
			Uint64("nonce", pendingTx.Nonce).
			Msg("checking pending tx...")

		_, err := middleware.NewPendingTransaction(pendingTx.Hash, fetcher).Confirmations(depth + 1).Receipt(ctx)
		if err != nil {
			// pending txs are ordered by nonce, the next ones can't be confirmed either
			log.Debug().Err(err).Str("hash", pendingTx.Hash.Hex()).Msg("pending tx not confirmed")
			return nil
		}
		if err := m.store.DeletePendingTxByHash(ctx, chainID, pendingTx.Hash); err != nil {
			return fmt.Errorf("delete pending tx: %s", err)
		}
	}
	return nil
}

func (m *NonceManager) sender(tx *txn.TypedTransaction) (common.Address, error) {
	if tx.From != nil {
		return *tx.From, nil
	}
	if from, ok := m.Inner().DefaultSender(); ok {
		return from, nil
	}
	return common.Address{}, &Error{Kind: KindNonce, Err: nonce.ErrSenderMissing}
}

func (m *NonceManager) entry(addr common.Address) *entry {
	m.mu.Lock()
	defer m.mu.Unlock()
	e, ok := m.entries[addr]
	if !ok {
		e = &entry{}
		m.entries[addr] = e
	}
	return e
}

// next reads and bumps the counter of addr, syncing it first if needed.
func (m *NonceManager) next(ctx context.Context, addr common.Address, block *big.Int) (uint64, error) {
	e := m.entry(addr)
	if !e.synced.Load() {
		if _, err, _ := m.group.Do(addr.Hex(), func() (interface{}, error) {
			if e.synced.Load() {
				return nil, nil
			}
			count, err := m.sync(ctx, addr, block)
			if err != nil {
				return nil, err
			}
			e.next.Store(count)
			e.synced.Store(true)
			return nil, nil
		}); err != nil {
			return 0, err
		}
	}
	return e.next.Inc() - 1, nil
}

func (m *NonceManager) sync(ctx context.Context, addr common.Address, block *big.Int) (uint64, error) {
	count, err := m.Inner().GetTransactionCount(ctx, addr, block)
	if err != nil {
		return 0, wrapInnerOp("get transaction count", err)
	}

	if m.store != nil {
		chainID, err := m.chainIDValue(ctx)
		if err != nil {
			return 0, err
		}
		pendingTxs, err := m.store.ListPendingTx(ctx, chainID, addr)
		if err != nil {
			return 0, &Error{Kind: KindNonce, Err: fmt.Errorf("list pending txs: %w", err)}
		}
		if l := len(pendingTxs); l > 0 && pendingTxs[l-1].Nonce+1 > count {
			count = pendingTxs[l-1].Nonce + 1
		}
	}

	log.Debug().
		Str("address", addr.Hex()).
		Uint64("nonce", count).
		Msg("nonce synced")
	return count, nil
}

// release gives back a nonce that was never broadcast. If other nonces were handed out meanwhile
// the counter can't be rewound, and the address is resynced instead.
func (m *NonceManager) release(addr common.Address, n uint64) {
	e := m.entry(addr)
	if e.next.CompareAndSwap(n+1, n) {
		log.Debug().
			Str("address", addr.Hex()).
			Uint64("nonce", n).
			Msg("nonce released")
		return
	}
	log.Debug().
		Str("address", addr.Hex()).
		Uint64("nonce", n).
		Msg("nonce can't be released, resyncing")
	m.Reset(addr)
}

func (m *NonceManager) invalidate(addr common.Address, n uint64, cause error) {
	log.Warn().
		Err(cause).
		Str("address", addr.Hex()).
		Uint64("nonce", n).
		Msg("nonce conflict, resyncing")
	m.Reset(addr)
	m.mResyncs.Add(context.Background(), 1, append([]attribute.KeyValue{
		attribute.String("address", addr.Hex()),
	}, m.mBaseLabels...)...)
}

func (m *NonceManager) journal(ctx context.Context, addr common.Address, n uint64, hash common.Hash) {
	if m.store == nil {
		return
	}
	chainID, err := m.chainIDValue(ctx)
	if err == nil {
		err = m.store.InsertPendingTx(ctx, chainID, addr, n, hash)
	}
	if err != nil {
		log.Error().
			Err(err).
			Uint64("nonce", n).
			Str("hash", hash.Hex()).
			Msg("failed to store pending tx")
	}
}

func (m *NonceManager) chainIDValue(ctx context.Context) (uint64, error) {
	m.chainIDMu.Lock()
	defer m.chainIDMu.Unlock()
	if m.chainID == nil {
		chainID, err := m.Inner().ChainID(ctx)
		if err != nil {
			return 0, wrapInnerOp("get chain id", err)
		}
		m.chainID = chainID
	}
	return m.chainID.Uint64(), nil
}
