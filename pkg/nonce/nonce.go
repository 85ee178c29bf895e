package nonce

import (
	"context"
	"errors"
	"time"

	"github.com/ethereum/go-ethereum/common"
)

// ErrSenderMissing is returned when the sender of a transaction can't be resolved.
var ErrSenderMissing = errors.New("transaction has no sender and the inner layer has no default sender")

// PendingTx represents a transaction broadcast with a managed nonce.
type PendingTx struct {
	ChainID   uint64
	Address   common.Address
	Nonce     uint64
	Hash      common.Hash
	CreatedAt time.Time
}

// PendingStore provides the api for journaling pending transactions.
type PendingStore interface {
	InsertPendingTx(context.Context, uint64, common.Address, uint64, common.Hash) error
	ListPendingTx(context.Context, uint64, common.Address) ([]PendingTx, error)
	DeletePendingTxByHash(context.Context, uint64, common.Hash) error
	Close() error
}
