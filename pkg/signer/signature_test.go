package signer

import (
	"math/big"
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/stretchr/testify/require"
)

func TestHashMessage(t *testing.T) {
	t.Parallel()

	expected := crypto.Keccak256Hash([]byte("\x19Ethereum Signed Message:\n5hello"))
	require.Equal(t, expected, HashMessage([]byte("hello")))
	require.NotEqual(t, crypto.Keccak256Hash([]byte("hello")), HashMessage([]byte("hello")))
}

func TestToEIP155V(t *testing.T) {
	t.Parallel()

	require.Equal(t, uint64(37), ToEIP155V(0, 1))
	require.Equal(t, uint64(38), ToEIP155V(1, 1))
	require.Equal(t, uint64(35), ToEIP155V(0, 0))
	require.Equal(t, uint64(2709), ToEIP155V(0, 1337))
}

func TestRecoveryID(t *testing.T) {
	t.Parallel()

	for v, expected := range map[uint64]byte{0: 0, 1: 1, 27: 0, 28: 1, 37: 0, 38: 1, 2710: 1} {
		rec, err := (&Signature{V: v}).RecoveryID()
		require.NoError(t, err)
		require.Equal(t, expected, rec, "v=%d", v)
	}
	_, err := (&Signature{V: 30}).RecoveryID()
	require.ErrorIs(t, err, ErrInvalidV)
}

func TestParseAndBytes(t *testing.T) {
	t.Parallel()

	key, err := crypto.GenerateKey()
	require.NoError(t, err)
	hash := HashMessage([]byte("parse me"))
	raw, err := crypto.Sign(hash.Bytes(), key)
	require.NoError(t, err)

	sig, err := Parse(raw)
	require.NoError(t, err)
	require.Equal(t, uint64(raw[64])+27, sig.V)

	back, err := sig.Raw()
	require.NoError(t, err)
	require.Equal(t, raw, back)
	require.Equal(t, raw[64]+27, sig.Bytes()[64])

	addr, err := sig.RecoverHash(hash)
	require.NoError(t, err)
	require.Equal(t, crypto.PubkeyToAddress(key.PublicKey), addr)
	require.NoError(t, sig.Verify([]byte("parse me"), addr))
	require.Error(t, sig.Verify([]byte("parse me"), common.Address{}))

	_, err = Parse(raw[:64])
	require.Error(t, err)
}

func TestNewSignature(t *testing.T) {
	t.Parallel()

	var r, s [32]byte
	r[31], s[31] = 1, 2
	sig := NewSignature(r, s, 27)
	require.Equal(t, big.NewInt(1), sig.R)
	require.Equal(t, big.NewInt(2), sig.S)
	require.Len(t, sig.Bytes(), 65)
	require.Equal(t, "0x", sig.String()[:2])
}
