package txn

import (
	"errors"
	"fmt"
	"math/big"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
)

// Type identifies the variant of a TypedTransaction.
type Type uint8

const (
	// Legacy is the original transaction encoding, without type byte nor access list.
	Legacy Type = types.LegacyTxType
	// AccessList is an EIP-2930 transaction.
	AccessList Type = types.AccessListTxType
	// DynamicFee is an EIP-1559 fee market transaction.
	DynamicFee Type = types.DynamicFeeTxType
)

// String returns the string representation of the type.
func (t Type) String() string {
	switch t {
	case Legacy:
		return "legacy"
	case AccessList:
		return "eip2930"
	case DynamicFee:
		return "eip1559"
	}
	return fmt.Sprintf("unknown(%d)", uint8(t))
}

var (
	// ErrUnknownType is returned when the transaction type isn't one of the supported variants.
	ErrUnknownType = errors.New("unknown transaction type")

	// ErrInvalidSignature is returned when a signature can't be attached to a transaction.
	ErrInvalidSignature = errors.New("invalid signature length")
)

// TypedTransaction is a draft transaction that goes through the middleware stack.
// Pointer fields are unset while nil, and get filled by the layers.
type TypedTransaction struct {
	Type Type

	From    *common.Address
	To      *common.Address
	Nonce   *uint64
	Value   *big.Int
	Data    []byte
	Gas     *uint64
	ChainID *big.Int

	// GasPrice is used by Legacy and AccessList transactions.
	GasPrice *big.Int

	// GasFeeCap and GasTipCap are used by DynamicFee transactions.
	GasFeeCap *big.Int
	GasTipCap *big.Int

	// AccessList is ignored by Legacy transactions.
	AccessList types.AccessList
}

// NewLegacy returns an empty Legacy transaction.
func NewLegacy() *TypedTransaction {
	return &TypedTransaction{Type: Legacy}
}

// NewAccessList returns an empty AccessList transaction.
func NewAccessList() *TypedTransaction {
	return &TypedTransaction{Type: AccessList}
}

// NewDynamicFee returns an empty DynamicFee transaction.
func NewDynamicFee() *TypedTransaction {
	return &TypedTransaction{Type: DynamicFee}
}

// Pay builds a DynamicFee transaction transferring value to an address.
func Pay(to common.Address, value *big.Int) *TypedTransaction {
	return NewDynamicFee().SetTo(to).SetValue(value)
}

// SetFrom sets the sender.
func (tx *TypedTransaction) SetFrom(from common.Address) *TypedTransaction {
	tx.From = &from
	return tx
}

// SetTo sets the recipient.
func (tx *TypedTransaction) SetTo(to common.Address) *TypedTransaction {
	tx.To = &to
	return tx
}

// SetNonce sets the nonce.
func (tx *TypedTransaction) SetNonce(nonce uint64) *TypedTransaction {
	tx.Nonce = &nonce
	return tx
}

// SetValue sets the value.
func (tx *TypedTransaction) SetValue(value *big.Int) *TypedTransaction {
	tx.Value = copyBig(value)
	return tx
}

// SetData sets the calldata.
func (tx *TypedTransaction) SetData(data []byte) *TypedTransaction {
	tx.Data = common.CopyBytes(data)
	return tx
}

// SetGas sets the gas limit.
func (tx *TypedTransaction) SetGas(gas uint64) *TypedTransaction {
	tx.Gas = &gas
	return tx
}

// SetChainID sets the chain id.
func (tx *TypedTransaction) SetChainID(chainID uint64) *TypedTransaction {
	tx.ChainID = new(big.Int).SetUint64(chainID)
	return tx
}

// SetGasPrice sets the gas price. For DynamicFee transactions it sets both fee caps,
// which is how a single gas price is expressed in the fee market.
func (tx *TypedTransaction) SetGasPrice(price *big.Int) *TypedTransaction {
	if tx.Type == DynamicFee {
		tx.GasFeeCap = copyBig(price)
		tx.GasTipCap = copyBig(price)
		return tx
	}
	tx.GasPrice = copyBig(price)
	return tx
}

// EffectiveGasPrice returns the gas price for Legacy and AccessList transactions, and the
// fee cap for DynamicFee transactions. It returns nil while unset.
func (tx *TypedTransaction) EffectiveGasPrice() *big.Int {
	if tx.Type == DynamicFee {
		return tx.GasFeeCap
	}
	return tx.GasPrice
}

// HasFees reports whether the fee fields of the variant are all set.
func (tx *TypedTransaction) HasFees() bool {
	if tx.Type == DynamicFee {
		return tx.GasFeeCap != nil && tx.GasTipCap != nil
	}
	return tx.GasPrice != nil
}

// Clone returns a deep copy of the transaction.
func (tx *TypedTransaction) Clone() *TypedTransaction {
	c := &TypedTransaction{
		Type:      tx.Type,
		Value:     copyBig(tx.Value),
		Data:      common.CopyBytes(tx.Data),
		ChainID:   copyBig(tx.ChainID),
		GasPrice:  copyBig(tx.GasPrice),
		GasFeeCap: copyBig(tx.GasFeeCap),
		GasTipCap: copyBig(tx.GasTipCap),
	}
	if tx.From != nil {
		c.SetFrom(*tx.From)
	}
	if tx.To != nil {
		c.SetTo(*tx.To)
	}
	if tx.Nonce != nil {
		c.SetNonce(*tx.Nonce)
	}
	if tx.Gas != nil {
		c.SetGas(*tx.Gas)
	}
	if tx.AccessList != nil {
		c.AccessList = make(types.AccessList, len(tx.AccessList))
		for i, tuple := range tx.AccessList {
			c.AccessList[i] = types.AccessTuple{
				Address:     tuple.Address,
				StorageKeys: append([]common.Hash(nil), tuple.StorageKeys...),
			}
		}
	}
	return c
}

// ToLegacy converts the transaction to the Legacy variant. The fields shared by both variants
// are kept as is; a DynamicFee fee cap becomes the gas price and the access list is dropped.
func (tx *TypedTransaction) ToLegacy() *TypedTransaction {
	c := tx.Clone()
	if tx.Type == DynamicFee {
		c.GasPrice = copyBig(tx.GasFeeCap)
	}
	c.Type = Legacy
	c.GasFeeCap = nil
	c.GasTipCap = nil
	c.AccessList = nil
	return c
}

// Unsigned builds the go-ethereum transaction with the current fields, without signature.
// Unset numeric fields are encoded as zero.
func (tx *TypedTransaction) Unsigned() (*types.Transaction, error) {
	var (
		nonce uint64
		gas   uint64
		value = new(big.Int)
	)
	if tx.Nonce != nil {
		nonce = *tx.Nonce
	}
	if tx.Gas != nil {
		gas = *tx.Gas
	}
	if tx.Value != nil {
		value = copyBig(tx.Value)
	}

	switch tx.Type {
	case Legacy:
		return types.NewTx(&types.LegacyTx{
			Nonce:    nonce,
			GasPrice: orZero(tx.GasPrice),
			Gas:      gas,
			To:       tx.To,
			Value:    value,
			Data:     tx.Data,
		}), nil
	case AccessList:
		return types.NewTx(&types.AccessListTx{
			ChainID:    orZero(tx.ChainID),
			Nonce:      nonce,
			GasPrice:   orZero(tx.GasPrice),
			Gas:        gas,
			To:         tx.To,
			Value:      value,
			Data:       tx.Data,
			AccessList: tx.AccessList,
		}), nil
	case DynamicFee:
		return types.NewTx(&types.DynamicFeeTx{
			ChainID:    orZero(tx.ChainID),
			Nonce:      nonce,
			GasTipCap:  orZero(tx.GasTipCap),
			GasFeeCap:  orZero(tx.GasFeeCap),
			Gas:        gas,
			To:         tx.To,
			Value:      value,
			Data:       tx.Data,
			AccessList: tx.AccessList,
		}), nil
	}
	return nil, ErrUnknownType
}

// EthSigner returns the go-ethereum signer that computes the signing hash for the transaction.
// Legacy transactions without chain id (or chain id zero) use the pre EIP-155 (Homestead) hash.
func (tx *TypedTransaction) EthSigner() types.Signer {
	if tx.Type == Legacy && (tx.ChainID == nil || tx.ChainID.Sign() == 0) {
		return types.HomesteadSigner{}
	}
	return types.LatestSignerForChainID(tx.ChainID)
}

// SigHash returns the hash to be signed. Legacy transactions hash the list of fields with the
// chain id as described in EIP-155, typed transactions hash their envelope.
func (tx *TypedTransaction) SigHash() (common.Hash, error) {
	unsigned, err := tx.Unsigned()
	if err != nil {
		return common.Hash{}, fmt.Errorf("building transaction: %w", err)
	}
	return tx.EthSigner().Hash(unsigned), nil
}

// Signed attaches a signature to the transaction. The signature must be in the
// [R || S || recovery id] 65 bytes form.
func (tx *TypedTransaction) Signed(sig []byte) (*types.Transaction, error) {
	if len(sig) != 65 {
		return nil, ErrInvalidSignature
	}
	unsigned, err := tx.Unsigned()
	if err != nil {
		return nil, fmt.Errorf("building transaction: %w", err)
	}
	signed, err := unsigned.WithSignature(tx.EthSigner(), sig)
	if err != nil {
		return nil, fmt.Errorf("attaching signature: %w", err)
	}
	return signed, nil
}

// RLPSigned returns the canonical encoding of the signed transaction, ready to be broadcast.
func (tx *TypedTransaction) RLPSigned(sig []byte) ([]byte, error) {
	signed, err := tx.Signed(sig)
	if err != nil {
		return nil, err
	}
	raw, err := signed.MarshalBinary()
	if err != nil {
		return nil, fmt.Errorf("encoding signed transaction: %w", err)
	}
	return raw, nil
}

// FromTransaction converts a go-ethereum transaction into a draft with every field set.
// The sender is left unset since it can only be recovered from the signature.
func FromTransaction(t *types.Transaction) (*TypedTransaction, error) {
	tx := &TypedTransaction{Type: Type(t.Type())}
	switch tx.Type {
	case Legacy:
		tx.GasPrice = copyBig(t.GasPrice())
		if t.Protected() {
			tx.ChainID = copyBig(t.ChainId())
		}
	case AccessList:
		tx.GasPrice = copyBig(t.GasPrice())
		tx.ChainID = copyBig(t.ChainId())
		tx.AccessList = t.AccessList()
	case DynamicFee:
		tx.GasFeeCap = copyBig(t.GasFeeCap())
		tx.GasTipCap = copyBig(t.GasTipCap())
		tx.ChainID = copyBig(t.ChainId())
		tx.AccessList = t.AccessList()
	default:
		return nil, ErrUnknownType
	}
	if t.To() != nil {
		tx.SetTo(*t.To())
	}
	tx.SetNonce(t.Nonce())
	tx.SetGas(t.Gas())
	tx.SetValue(t.Value())
	tx.SetData(t.Data())
	return tx, nil
}

func copyBig(v *big.Int) *big.Int {
	if v == nil {
		return nil
	}
	return new(big.Int).Set(v)
}

func orZero(v *big.Int) *big.Int {
	if v == nil {
		return new(big.Int)
	}
	return v
}
