package wallet

import (
	"crypto/ecdsa"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/pkg/errors"
	"github.com/textileio/go-ethmiddleware/pkg/signer"
)

// LocalKey is a secp256k1 private key kept in memory.
type LocalKey struct {
	sk *ecdsa.PrivateKey
}

var _ signer.PrehashSigner = (*LocalKey)(nil)

// SignPrehash signs a 32 bytes hash. Signatures are deterministic (RFC 6979).
func (k *LocalKey) SignPrehash(hash common.Hash) (r, s [32]byte, recoveryID byte, err error) {
	sig, err := crypto.Sign(hash.Bytes(), k.sk)
	if err != nil {
		return r, s, 0, errors.Wrap(err, "ecdsa sign")
	}
	copy(r[:], sig[:32])
	copy(s[:], sig[32:64])
	return r, s, sig[64], nil
}

// Address derives the address: the last 20 bytes of the keccak256 hash of the uncompressed
// public key without its 0x04 prefix.
func (k *LocalKey) Address() common.Address {
	pub := crypto.FromECDSAPub(&k.sk.PublicKey)
	return common.BytesToAddress(crypto.Keccak256(pub[1:])[12:])
}

// Bytes returns the 32 bytes big endian scalar.
func (k *LocalKey) Bytes() []byte {
	return crypto.FromECDSA(k.sk)
}
