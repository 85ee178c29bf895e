package transformer

import (
	"errors"
	"fmt"
	"strings"

	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
	"github.com/textileio/go-ethmiddleware/pkg/txn"
)

// ErrMissingField is returned when the transaction lacks a field the transformer needs.
var ErrMissingField = errors.New("missing field")

// Transformer rewrites a transaction into the one that actually gets sent.
// Implementations return a replacement and never modify their input.
type Transformer interface {
	Transform(tx *txn.TypedTransaction) (*txn.TypedTransaction, error)
}

// Func adapts a function to a Transformer.
type Func func(tx *txn.TypedTransaction) (*txn.TypedTransaction, error)

// Transform calls f.
func (f Func) Transform(tx *txn.TypedTransaction) (*txn.TypedTransaction, error) {
	return f(tx)
}

// Identity returns a copy of the transaction.
var Identity Transformer = Func(func(tx *txn.TypedTransaction) (*txn.TypedTransaction, error) {
	return tx.Clone(), nil
})

// DsProxyABI is the part of the DSProxy interface used to forward calls.
const DsProxyABI = `[{"constant":false,"inputs":[{"name":"_target","type":"address"},` +
	`{"name":"_data","type":"bytes"}],"name":"execute","outputs":[{"name":"response","type":"bytes"}],` +
	`"payable":true,"stateMutability":"payable","type":"function"}]`

// DsProxy routes calls through a DSProxy contract: the proxy runs the original call data against
// the original target with delegatecall, so the call executes in the proxy's context.
type DsProxy struct {
	address common.Address
	abi     abi.ABI
}

var _ Transformer = (*DsProxy)(nil)

// NewDsProxy returns a transformer for the proxy deployed at address.
func NewDsProxy(address common.Address) (*DsProxy, error) {
	parsed, err := abi.JSON(strings.NewReader(DsProxyABI))
	if err != nil {
		return nil, fmt.Errorf("parsing ds proxy abi: %s", err)
	}
	return &DsProxy{address: address, abi: parsed}, nil
}

// Address returns the proxy address.
func (p *DsProxy) Address() common.Address {
	return p.address
}

// Transform sends the transaction to the proxy with execute(target, data) as calldata.
// Value and every other field are kept.
func (p *DsProxy) Transform(tx *txn.TypedTransaction) (*txn.TypedTransaction, error) {
	if tx.To == nil {
		return nil, fmt.Errorf("%w: to", ErrMissingField)
	}

	data := tx.Data
	if data == nil {
		data = []byte{}
	}
	calldata, err := p.abi.Pack("execute", *tx.To, data)
	if err != nil {
		return nil, fmt.Errorf("packing execute call: %w", err)
	}

	out := tx.Clone()
	out.SetTo(p.address)
	out.Data = calldata
	return out, nil
}
