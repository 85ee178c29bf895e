package middleware

import (
	"context"
	"math/big"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/textileio/go-ethmiddleware/pkg/signer"
	"github.com/textileio/go-ethmiddleware/pkg/txn"
)

// Middleware is a layer of the transaction stack. Every layer holds exactly one inner layer,
// except the provider at the bottom of the stack which talks to the remote endpoint.
//
// A nil block means pending (or latest, for operations without a pending state).
type Middleware interface {
	// Inner returns the wrapped layer, or nil for the bottom of the stack.
	Inner() Middleware

	// DefaultSender returns the sender used when a transaction doesn't set one.
	DefaultSender() (common.Address, bool)

	// FillTransaction fills the missing fields of the transaction in place.
	FillTransaction(ctx context.Context, tx *txn.TypedTransaction, block *big.Int) error

	// SignTransaction signs a filled transaction on behalf of from.
	SignTransaction(ctx context.Context, tx *txn.TypedTransaction, from common.Address) (*signer.Signature, error)

	// SendTransaction fills and broadcasts the transaction.
	SendTransaction(ctx context.Context, tx *txn.TypedTransaction, block *big.Int) (*PendingTransaction, error)

	// SendRawTransaction broadcasts an already signed and encoded transaction.
	SendRawTransaction(ctx context.Context, raw []byte) (*PendingTransaction, error)

	// Sign signs an arbitrary message on behalf of from.
	Sign(ctx context.Context, data []byte, from common.Address) (*signer.Signature, error)

	EstimateGas(ctx context.Context, tx *txn.TypedTransaction, block *big.Int) (uint64, error)
	CreateAccessList(ctx context.Context, tx *txn.TypedTransaction, block *big.Int) (*AccessListResult, error)
	Call(ctx context.Context, tx *txn.TypedTransaction, block *big.Int) ([]byte, error)
	GetTransactionCount(ctx context.Context, addr common.Address, block *big.Int) (uint64, error)
	ChainID(ctx context.Context) (*big.Int, error)
}

// AccessListResult is the outcome of an access list creation.
type AccessListResult struct {
	AccessList types.AccessList
	GasUsed    uint64
}
