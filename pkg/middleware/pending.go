package middleware

import (
	"context"
	"errors"
	"fmt"
	"math/big"
	"time"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
)

// DefaultPollInterval is the interval between receipt lookups while waiting for inclusion.
const DefaultPollInterval = 7 * time.Second

var (
	// ErrReceiptNotFound indicates that the transaction wasn't included yet.
	ErrReceiptNotFound = errors.New("receipt not found")

	// ErrBlockDiffNotEnough indicates that the transaction was included but has not enough confirmations.
	ErrBlockDiffNotEnough = errors.New("the block number is not old enough to be considered confirmed")

	// ErrNoReceiptFetcher is returned when the pending transaction wasn't bound to an endpoint.
	ErrNoReceiptFetcher = errors.New("pending transaction has no endpoint to poll")
)

// ReceiptFetcher provides the endpoint api needed to follow a pending transaction.
type ReceiptFetcher interface {
	TransactionReceipt(ctx context.Context, hash common.Hash) (*types.Receipt, error)
	HeaderByNumber(ctx context.Context, number *big.Int) (*types.Header, error)
}

// PendingTransaction is the handle of a broadcast transaction. It can be dropped at any time,
// the transaction stays broadcast.
type PendingTransaction struct {
	Hash common.Hash

	fetcher       ReceiptFetcher
	interval      time.Duration
	confirmations uint64
}

// NewPendingTransaction returns a handle of the transaction polled through fetcher.
func NewPendingTransaction(hash common.Hash, fetcher ReceiptFetcher) *PendingTransaction {
	return &PendingTransaction{
		Hash:          hash,
		fetcher:       fetcher,
		interval:      DefaultPollInterval,
		confirmations: 1,
	}
}

// Interval sets the polling interval.
func (p *PendingTransaction) Interval(d time.Duration) *PendingTransaction {
	p.interval = d
	return p
}

// Confirmations sets the number of blocks, including the one with the transaction, needed to
// consider it confirmed.
func (p *PendingTransaction) Confirmations(n uint64) *PendingTransaction {
	if n == 0 {
		n = 1
	}
	p.confirmations = n
	return p
}

// Receipt returns the receipt if the transaction has enough confirmations.
func (p *PendingTransaction) Receipt(ctx context.Context) (*types.Receipt, error) {
	if p.fetcher == nil {
		return nil, ErrNoReceiptFetcher
	}
	receipt, err := p.fetcher.TransactionReceipt(ctx, p.Hash)
	if errors.Is(err, ethereum.NotFound) {
		return nil, ErrReceiptNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get transaction receipt: %w", err)
	}
	if receipt == nil {
		return nil, ErrReceiptNotFound
	}
	if p.confirmations <= 1 {
		return receipt, nil
	}

	h, err := p.fetcher.HeaderByNumber(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("get chain tip header: %w", err)
	}
	blockDiff := new(big.Int).Sub(h.Number, receipt.BlockNumber)
	if blockDiff.Cmp(new(big.Int).SetUint64(p.confirmations-1)) < 0 {
		return nil, ErrBlockDiffNotEnough
	}
	return receipt, nil
}

// Wait polls the endpoint until the transaction is confirmed or ctx is done.
func (p *PendingTransaction) Wait(ctx context.Context) (*types.Receipt, error) {
	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()
	for {
		receipt, err := p.Receipt(ctx)
		if err == nil {
			return receipt, nil
		}
		if !errors.Is(err, ErrReceiptNotFound) && !errors.Is(err, ErrBlockDiffNotEnough) {
			return nil, err
		}
		select {
		case <-ticker.C:
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
}
