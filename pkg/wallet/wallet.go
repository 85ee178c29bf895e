package wallet

import (
	"bytes"
	"crypto/ecdsa"
	"fmt"
	"strings"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/pkg/errors"
	"github.com/textileio/go-ethmiddleware/pkg/signer"
	"github.com/textileio/go-ethmiddleware/pkg/txn"
)

// DefaultChainID is the chain id of a wallet that wasn't bound to any chain.
const DefaultChainID uint64 = 1

// Wallet signs messages and transactions with a secp256k1 key.
// It never mutates: WithChainID returns a new wallet.
type Wallet struct {
	key     signer.PrehashSigner
	address common.Address
	chainID uint64
}

var _ signer.Signer = (*Wallet)(nil)

// NewWallet creates a new wallet from a hex encoded private key. The 0x prefix is optional.
func NewWallet(sk string) (*Wallet, error) {
	sk = strings.TrimPrefix(strings.TrimPrefix(sk, "0x"), "0X")
	privateKey, err := crypto.HexToECDSA(sk)
	if err != nil {
		return nil, errors.Wrap(err, "converting private key to ECDSA")
	}
	return FromECDSA(privateKey)
}

// New creates a wallet with a random key.
func New() (*Wallet, error) {
	privateKey, err := crypto.GenerateKey()
	if err != nil {
		return nil, errors.Wrap(err, "generating key")
	}
	return FromECDSA(privateKey)
}

// FromBytes creates a wallet from a raw big endian scalar.
func FromBytes(b []byte) (*Wallet, error) {
	privateKey, err := crypto.ToECDSA(b)
	if err != nil {
		return nil, errors.Wrap(err, "converting bytes to ECDSA")
	}
	return FromECDSA(privateKey)
}

// FromECDSA creates a wallet that owns the given key.
func FromECDSA(privateKey *ecdsa.PrivateKey) (*Wallet, error) {
	key := &LocalKey{sk: privateKey}
	return &Wallet{
		key:     key,
		address: key.Address(),
		chainID: DefaultChainID,
	}, nil
}

// NewWithSigner builds a wallet on top of an external key holder, e.g. a hardware device.
func NewWithSigner(key signer.PrehashSigner, address common.Address, chainID uint64) *Wallet {
	return &Wallet{key: key, address: address, chainID: chainID}
}

// PrivateKey gets the private key. It returns nil if the wallet is backed by an external signer.
func (w *Wallet) PrivateKey() *ecdsa.PrivateKey {
	if k, ok := w.key.(*LocalKey); ok {
		return k.sk
	}
	return nil
}

// Address returns the wallet address.
func (w *Wallet) Address() common.Address {
	return w.address
}

// ChainID returns the chain id used for EIP-155.
func (w *Wallet) ChainID() uint64 {
	return w.chainID
}

// WithChainID returns a copy of the wallet bound to chainID.
func (w *Wallet) WithChainID(chainID uint64) signer.Signer {
	c := *w
	c.chainID = chainID
	return &c
}

// Key returns the key holder backing the wallet.
func (w *Wallet) Key() signer.PrehashSigner {
	return w.key
}

// SignHash signs the hash. The `v` value is recovery_id + 27.
func (w *Wallet) SignHash(hash common.Hash) (*signer.Signature, error) {
	r, s, recoveryID, err := w.key.SignPrehash(hash)
	if err != nil {
		return nil, errors.Wrap(err, "signing hash")
	}
	return signer.NewSignature(r, s, uint64(recoveryID)+27), nil
}

// SignMessage signs the EIP-191 hash of the message.
func (w *Wallet) SignMessage(message []byte) (*signer.Signature, error) {
	return w.SignHash(signer.HashMessage(message))
}

// SignTransaction signs the transaction signing hash with EIP-155 replay protection.
// The wallet chain id is used if the transaction has none.
func (w *Wallet) SignTransaction(tx *txn.TypedTransaction) (*signer.Signature, error) {
	chainID := w.chainID
	if tx.ChainID != nil {
		if !tx.ChainID.IsUint64() {
			return nil, fmt.Errorf("chain id %s overflows uint64", tx.ChainID)
		}
		chainID = tx.ChainID.Uint64()
	} else {
		tx = tx.Clone().SetChainID(chainID)
	}

	hash, err := tx.SigHash()
	if err != nil {
		return nil, errors.Wrap(err, "computing signing hash")
	}
	sig, err := w.SignHash(hash)
	if err != nil {
		return nil, err
	}
	sig.V = signer.ToEIP155V(byte(sig.V-27), chainID)
	return sig, nil
}

// Equal compares key material, address and chain id. External key holders don't expose their
// key, so wallets backed by them are compared by address and chain id.
func (w *Wallet) Equal(o *Wallet) bool {
	if w == nil || o == nil {
		return w == nil && o == nil
	}
	if w.address != o.address || w.chainID != o.chainID {
		return false
	}
	k1, ok1 := w.key.(*LocalKey)
	k2, ok2 := o.key.(*LocalKey)
	if ok1 && ok2 {
		return bytes.Equal(k1.Bytes(), k2.Bytes())
	}
	return true
}

// String never prints the key.
func (w *Wallet) String() string {
	return fmt.Sprintf("Wallet{address: %s, chainID: %d}", w.address.Hex(), w.chainID)
}
