package policy

import (
	"context"
	"errors"
	"fmt"
	"math/big"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/sethvargo/go-limiter"
	"github.com/sethvargo/go-limiter/memorystore"
	"github.com/textileio/go-ethmiddleware/pkg/txn"
)

// Policy decides whether a transaction can be sent.
type Policy interface {
	// EnsureCanSend returns an error describing why the transaction can't be sent by from.
	EnsureCanSend(ctx context.Context, tx *txn.TypedTransaction, from common.Address) error
}

// Func adapts a function to a Policy.
type Func func(ctx context.Context, tx *txn.TypedTransaction, from common.Address) error

// EnsureCanSend calls f.
func (f Func) EnsureCanSend(ctx context.Context, tx *txn.TypedTransaction, from common.Address) error {
	return f(ctx, tx, from)
}

// ErrRejected is the reason given by RejectEverything.
var ErrRejected = errors.New("every transaction is rejected")

// AllowEverything lets every transaction through.
var AllowEverything Policy = Func(func(context.Context, *txn.TypedTransaction, common.Address) error {
	return nil
})

// RejectEverything rejects every transaction.
var RejectEverything Policy = Func(func(context.Context, *txn.TypedTransaction, common.Address) error {
	return ErrRejected
})

// MaxValue rejects transactions transferring more than limit.
func MaxValue(limit *big.Int) Policy {
	limit = new(big.Int).Set(limit)
	return Func(func(_ context.Context, tx *txn.TypedTransaction, _ common.Address) error {
		if tx.Value != nil && tx.Value.Cmp(limit) > 0 {
			return fmt.Errorf("value %s exceeds the limit of %s", tx.Value, limit)
		}
		return nil
	})
}

// AllowRecipients only lets through calls to the given addresses. Contract creations are rejected.
func AllowRecipients(addrs ...common.Address) Policy {
	allowed := make(map[common.Address]struct{}, len(addrs))
	for _, addr := range addrs {
		allowed[addr] = struct{}{}
	}
	return Func(func(_ context.Context, tx *txn.TypedTransaction, _ common.Address) error {
		if tx.To == nil {
			return errors.New("contract creation isn't allowed")
		}
		if _, ok := allowed[*tx.To]; !ok {
			return fmt.Errorf("recipient %s isn't allowed", tx.To.Hex())
		}
		return nil
	})
}

// All lets through transactions accepted by every policy. Policies are evaluated in order.
func All(policies ...Policy) Policy {
	return Func(func(ctx context.Context, tx *txn.TypedTransaction, from common.Address) error {
		for _, p := range policies {
			if err := p.EnsureCanSend(ctx, tx, from); err != nil {
				return err
			}
		}
		return nil
	})
}

// RateLimitPolicy limits the number of transactions per sender.
type RateLimitPolicy struct {
	store limiter.Store
}

var _ Policy = (*RateLimitPolicy)(nil)

// RateLimit lets through up to tokens transactions per sender in each interval.
func RateLimit(tokens uint64, interval time.Duration) (*RateLimitPolicy, error) {
	store, err := memorystore.New(&memorystore.Config{
		Tokens:   tokens,
		Interval: interval,
	})
	if err != nil {
		return nil, fmt.Errorf("creating memory store: %s", err)
	}
	return &RateLimitPolicy{store: store}, nil
}

// EnsureCanSend takes a token from the sender bucket.
func (p *RateLimitPolicy) EnsureCanSend(ctx context.Context, _ *txn.TypedTransaction, from common.Address) error {
	_, _, reset, ok, err := p.store.Take(ctx, from.Hex())
	if err != nil {
		return fmt.Errorf("taking token: %s", err)
	}
	if !ok {
		return fmt.Errorf("rate limit exceeded for %s, retry after %s", from.Hex(), time.Unix(0, int64(reset)).UTC())
	}
	return nil
}

// Close stops the limiter.
func (p *RateLimitPolicy) Close(ctx context.Context) error {
	return p.store.Close(ctx)
}
