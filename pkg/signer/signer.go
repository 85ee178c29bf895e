package signer

import (
	"github.com/ethereum/go-ethereum/accounts"
	"github.com/ethereum/go-ethereum/common"
	"github.com/textileio/go-ethmiddleware/pkg/txn"
)

// Signer produces signatures for messages and transactions on behalf of a single address.
//
// Implementations must be safe for concurrent use and must never change their chain id
// in place: WithChainID returns an updated copy.
type Signer interface {
	// SignMessage signs the EIP-191 hash of the message (see HashMessage).
	SignMessage(message []byte) (*Signature, error)

	// SignTransaction signs the signing hash of the transaction. The returned `v` carries
	// EIP-155 replay protection. If the transaction has no chain id, the signer's one is used.
	SignTransaction(tx *txn.TypedTransaction) (*Signature, error)

	// Address returns the address of the signer.
	Address() common.Address

	// ChainID returns the chain id used for EIP-155 signing.
	ChainID() uint64

	// WithChainID returns a copy of the signer bound to another chain id.
	WithChainID(chainID uint64) Signer
}

// PrehashSigner is the capability a key holder must provide: sign a 32 bytes hash and
// return the signature scalars plus the recovery id. Local keys, hardware wallets and
// remote signers implement it.
type PrehashSigner interface {
	SignPrehash(hash common.Hash) (r, s [32]byte, recoveryID byte, err error)
}

// HashMessage returns keccak256("\x19Ethereum Signed Message:\n" + len(message) + message).
// Messages are never signed raw, so a signed message can't be confused with a signed transaction.
func HashMessage(message []byte) common.Hash {
	return common.BytesToHash(accounts.TextHash(message))
}

// ToEIP155V applies EIP-155 to a recovery id.
func ToEIP155V(recoveryID byte, chainID uint64) uint64 {
	return uint64(recoveryID) + 35 + chainID*2
}
