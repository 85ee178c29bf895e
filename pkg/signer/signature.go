package signer

import (
	"errors"
	"fmt"
	"math/big"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/ethereum/go-ethereum/crypto"
)

// ErrInvalidV is returned when `v` doesn't encode a recovery id.
var ErrInvalidV = errors.New("invalid signature v value")

// Signature is an ECDSA signature with its recovery information.
//
// V is recovery_id + 27 for plain signatures and recovery_id + 35 + 2*chain_id when the
// signature carries EIP-155 replay protection.
type Signature struct {
	R *big.Int
	S *big.Int
	V uint64
}

// NewSignature builds a signature from the raw scalars and a `v` value.
func NewSignature(r, s [32]byte, v uint64) *Signature {
	return &Signature{
		R: new(big.Int).SetBytes(r[:]),
		S: new(big.Int).SetBytes(s[:]),
		V: v,
	}
}

// Parse decodes a 65 bytes R || S || V signature. V may be 0/1 or 27/28.
func Parse(b []byte) (*Signature, error) {
	if len(b) != crypto.SignatureLength {
		return nil, fmt.Errorf("signature must be %d bytes, got %d", crypto.SignatureLength, len(b))
	}
	v := uint64(b[64])
	if v < 27 {
		v += 27
	}
	return &Signature{
		R: new(big.Int).SetBytes(b[:32]),
		S: new(big.Int).SetBytes(b[32:64]),
		V: v,
	}, nil
}

// RecoveryID extracts the recovery id from V, whatever its encoding.
func (s *Signature) RecoveryID() (byte, error) {
	switch {
	case s.V == 0 || s.V == 1:
		return byte(s.V), nil
	case s.V == 27 || s.V == 28:
		return byte(s.V - 27), nil
	case s.V >= 35:
		return byte((s.V - 35) % 2), nil
	}
	return 0, ErrInvalidV
}

// Raw returns the R || S || recovery id form expected by go-ethereum.
func (s *Signature) Raw() ([]byte, error) {
	rec, err := s.RecoveryID()
	if err != nil {
		return nil, err
	}
	sig := make([]byte, crypto.SignatureLength)
	s.R.FillBytes(sig[:32])
	s.S.FillBytes(sig[32:64])
	sig[64] = rec
	return sig, nil
}

// Bytes returns the R || S || V form with V in {27, 28}, as used by personal_sign.
func (s *Signature) Bytes() []byte {
	sig, err := s.Raw()
	if err != nil {
		sig = make([]byte, crypto.SignatureLength)
		s.R.FillBytes(sig[:32])
		s.S.FillBytes(sig[32:64])
		sig[64] = byte(s.V)
		return sig
	}
	sig[64] += 27
	return sig
}

// String returns the hex encoding of Bytes.
func (s *Signature) String() string {
	return hexutil.Encode(s.Bytes())
}

// RecoverHash returns the address that signed the hash.
func (s *Signature) RecoverHash(hash common.Hash) (common.Address, error) {
	sig, err := s.Raw()
	if err != nil {
		return common.Address{}, err
	}
	pub, err := crypto.SigToPub(hash.Bytes(), sig)
	if err != nil {
		return common.Address{}, fmt.Errorf("recovering public key: %w", err)
	}
	return crypto.PubkeyToAddress(*pub), nil
}

// Recover returns the address that signed the message with SignMessage.
func (s *Signature) Recover(message []byte) (common.Address, error) {
	return s.RecoverHash(HashMessage(message))
}

// Verify checks that the message was signed by the address.
func (s *Signature) Verify(message []byte, address common.Address) error {
	recovered, err := s.Recover(message)
	if err != nil {
		return err
	}
	if recovered != address {
		return fmt.Errorf("signature was produced by %s, not %s", recovered, address)
	}
	return nil
}
