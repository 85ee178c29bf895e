package provider

import (
	"context"
	"errors"
	"fmt"
	"math/big"
	"net/http"
	"strings"
	"sync"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/ethclient"
	"github.com/ethereum/go-ethereum/ethclient/gethclient"
	"github.com/ethereum/go-ethereum/rpc"
	logger "github.com/rs/zerolog/log"
	"github.com/textileio/go-ethmiddleware/pkg/middleware"
	"github.com/textileio/go-ethmiddleware/pkg/signer"
	"github.com/textileio/go-ethmiddleware/pkg/txn"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

var log = logger.With().Str("component", "provider").Logger()

var (
	// ErrUnsignedSend is returned when an unsigned transaction reaches the endpoint.
	ErrUnsignedSend = errors.New("the endpoint doesn't hold keys, add a signer layer to send transactions")

	// ErrNoSigner is returned when asking the endpoint to sign.
	ErrNoSigner = errors.New("the endpoint can't sign")

	// ErrUnsupported is returned when the backend doesn't offer an operation.
	ErrUnsupported = errors.New("operation not supported by the backend")
)

// Backend is the api needed from the endpoint. It's satisfied by *ethclient.Client and by
// go-ethereum's simulated backend.
type Backend interface {
	PendingNonceAt(ctx context.Context, account common.Address) (uint64, error)
	NonceAt(ctx context.Context, account common.Address, blockNumber *big.Int) (uint64, error)
	SendTransaction(ctx context.Context, tx *types.Transaction) error
	EstimateGas(ctx context.Context, call ethereum.CallMsg) (uint64, error)
	CallContract(ctx context.Context, call ethereum.CallMsg, blockNumber *big.Int) ([]byte, error)
	SuggestGasPrice(ctx context.Context) (*big.Int, error)
	SuggestGasTipCap(ctx context.Context) (*big.Int, error)
	HeaderByNumber(ctx context.Context, number *big.Int) (*types.Header, error)
	TransactionReceipt(ctx context.Context, txHash common.Hash) (*types.Receipt, error)
}

// ChainIDReader is implemented by backends that can tell the chain id.
type ChainIDReader interface {
	ChainID(ctx context.Context) (*big.Int, error)
}

// AccessListCreator is implemented by backends offering eth_createAccessList.
type AccessListCreator interface {
	CreateAccessList(ctx context.Context, msg ethereum.CallMsg) (*types.AccessList, uint64, string, error)
}

// Option modifies the provider configuration.
type Option func(*Provider)

// WithChainID fixes the chain id instead of asking the backend.
func WithChainID(chainID uint64) Option {
	return func(p *Provider) {
		p.chainID = new(big.Int).SetUint64(chainID)
	}
}

// WithAccessListCreator sets the backend used for access list creation.
func WithAccessListCreator(c AccessListCreator) Option {
	return func(p *Provider) {
		p.accessLists = c
	}
}

// Provider is the bottom of every stack. It maps the middleware operations to the endpoint api.
type Provider struct {
	backend     Backend
	accessLists AccessListCreator
	closer      func()

	mu      sync.Mutex
	chainID *big.Int
}

var _ middleware.Middleware = (*Provider)(nil)

// New returns a provider over backend.
func New(backend Backend, opts ...Option) *Provider {
	p := &Provider{backend: backend}
	if c, ok := backend.(AccessListCreator); ok {
		p.accessLists = c
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Dial connects to an endpoint url (http, ws or ipc). HTTP requests are traced and measured
// with otelhttp.
func Dial(ctx context.Context, url string, opts ...Option) (*Provider, error) {
	var (
		rpcClient *rpc.Client
		err       error
	)
	if strings.HasPrefix(url, "http://") || strings.HasPrefix(url, "https://") {
		rpcClient, err = rpc.DialHTTPWithClient(url, &http.Client{
			Transport: otelhttp.NewTransport(http.DefaultTransport),
		})
	} else {
		rpcClient, err = rpc.DialContext(ctx, url)
	}
	if err != nil {
		return nil, &Error{Kind: KindTransport, Op: "dial", Err: err}
	}
	opts = append([]Option{WithAccessListCreator(gethclient.New(rpcClient))}, opts...)
	p := New(ethclient.NewClient(rpcClient), opts...)
	p.closer = rpcClient.Close
	return p, nil
}

// Close closes the connection if the provider dialed it.
func (p *Provider) Close() {
	if p.closer != nil {
		p.closer()
	}
}

// Backend returns the underlying backend.
func (p *Provider) Backend() Backend {
	return p.backend
}

// Inner returns nil, the provider is the bottom of the stack.
func (p *Provider) Inner() middleware.Middleware {
	return nil
}

// DefaultSender returns false, the endpoint holds no account.
func (p *Provider) DefaultSender() (common.Address, bool) {
	return common.Address{}, false
}

// ChainID returns the chain id of the endpoint. It's only fetched once.
func (p *Provider) ChainID(ctx context.Context) (*big.Int, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.chainID != nil {
		return new(big.Int).Set(p.chainID), nil
	}

	reader, ok := p.backend.(ChainIDReader)
	if !ok {
		return nil, &Error{Kind: KindTransport, Op: "chain id", Err: ErrUnsupported}
	}
	chainID, err := reader.ChainID(ctx)
	if err != nil {
		return nil, &Error{Kind: KindTransport, Op: "chain id", Err: err}
	}
	p.chainID = new(big.Int).Set(chainID)
	return chainID, nil
}

// GetTransactionCount returns the pending nonce for a nil block, and the nonce at block otherwise.
func (p *Provider) GetTransactionCount(ctx context.Context, addr common.Address, block *big.Int) (uint64, error) {
	var (
		count uint64
		err   error
	)
	if block == nil {
		count, err = p.backend.PendingNonceAt(ctx, addr)
	} else {
		count, err = p.backend.NonceAt(ctx, addr, block)
	}
	if err != nil {
		return 0, &Error{Kind: KindTransport, Op: "transaction count", Err: err}
	}
	return count, nil
}

// FillTransaction fills the chain id, the fee fields and the gas limit.
func (p *Provider) FillTransaction(ctx context.Context, tx *txn.TypedTransaction, block *big.Int) error {
	if tx.ChainID == nil {
		chainID, err := p.ChainID(ctx)
		if err != nil {
			return err
		}
		tx.ChainID = chainID
	}

	if !tx.HasFees() {
		if err := p.fillFees(ctx, tx); err != nil {
			return err
		}
	}

	if tx.Gas == nil {
		gas, err := p.EstimateGas(ctx, tx, block)
		if err != nil {
			return err
		}
		tx.SetGas(gas)
	}

	return nil
}

func (p *Provider) fillFees(ctx context.Context, tx *txn.TypedTransaction) error {
	if tx.Type != txn.DynamicFee {
		gasPrice, err := p.backend.SuggestGasPrice(ctx)
		if err != nil {
			return &Error{Kind: KindTransport, Op: "suggest gas price", Err: err}
		}
		tx.GasPrice = gasPrice
		return nil
	}

	if tx.GasTipCap == nil {
		tip, err := p.backend.SuggestGasTipCap(ctx)
		if err != nil {
			return &Error{Kind: KindTransport, Op: "suggest gas tip cap", Err: err}
		}
		tx.GasTipCap = tip
	}
	if tx.GasFeeCap == nil {
		head, err := p.backend.HeaderByNumber(ctx, nil)
		if err != nil {
			return &Error{Kind: KindTransport, Op: "head header", Err: err}
		}
		if head.BaseFee == nil {
			return &Error{Kind: KindTransport, Op: "head header", Err: errors.New("chain has no base fee")}
		}
		// leaves room for the base fee to double before the transaction gets mined
		feeCap := new(big.Int).Mul(head.BaseFee, big.NewInt(2))
		tx.GasFeeCap = feeCap.Add(feeCap, tx.GasTipCap)
	}
	return nil
}

// SendTransaction fails: an unsigned transaction can't be broadcast.
func (p *Provider) SendTransaction(
	_ context.Context, _ *txn.TypedTransaction, _ *big.Int,
) (*middleware.PendingTransaction, error) {
	return nil, ErrUnsignedSend
}

// SendRawTransaction decodes a signed transaction and broadcasts it.
func (p *Provider) SendRawTransaction(ctx context.Context, raw []byte) (*middleware.PendingTransaction, error) {
	tx := new(types.Transaction)
	if err := tx.UnmarshalBinary(raw); err != nil {
		return nil, &Error{Kind: KindEncoding, Op: "send raw transaction", Err: err}
	}
	if err := p.backend.SendTransaction(ctx, tx); err != nil {
		return nil, &Error{Kind: KindTransport, Op: "send raw transaction", Err: err}
	}

	log.Debug().
		Str("hash", tx.Hash().Hex()).
		Uint64("nonce", tx.Nonce()).
		Msg("transaction broadcast")

	return middleware.NewPendingTransaction(tx.Hash(), p.backend), nil
}

// SignTransaction fails: the endpoint holds no keys.
func (p *Provider) SignTransaction(
	_ context.Context, _ *txn.TypedTransaction, _ common.Address,
) (*signer.Signature, error) {
	return nil, ErrNoSigner
}

// Sign fails: the endpoint holds no keys.
func (p *Provider) Sign(_ context.Context, _ []byte, _ common.Address) (*signer.Signature, error) {
	return nil, ErrNoSigner
}

// EstimateGas estimates the gas needed by the transaction.
func (p *Provider) EstimateGas(ctx context.Context, tx *txn.TypedTransaction, _ *big.Int) (uint64, error) {
	gas, err := p.backend.EstimateGas(ctx, CallMsg(tx))
	if err != nil {
		return 0, &Error{Kind: KindTransport, Op: "estimate gas", Err: err}
	}
	return gas, nil
}

// Call executes the transaction as a call without creating a transaction.
func (p *Provider) Call(ctx context.Context, tx *txn.TypedTransaction, block *big.Int) ([]byte, error) {
	out, err := p.backend.CallContract(ctx, CallMsg(tx), block)
	if err != nil {
		return nil, &Error{Kind: KindTransport, Op: "call", Err: err}
	}
	return out, nil
}

// CreateAccessList asks the endpoint for the access list of the transaction.
func (p *Provider) CreateAccessList(
	ctx context.Context, tx *txn.TypedTransaction, _ *big.Int,
) (*middleware.AccessListResult, error) {
	if p.accessLists == nil {
		return nil, &Error{Kind: KindTransport, Op: "create access list", Err: ErrUnsupported}
	}
	al, gasUsed, vmErr, err := p.accessLists.CreateAccessList(ctx, CallMsg(tx))
	if err != nil {
		return nil, &Error{Kind: KindTransport, Op: "create access list", Err: err}
	}
	if vmErr != "" {
		return nil, &Error{Kind: KindTransport, Op: "create access list", Err: errors.New(vmErr)}
	}
	res := &middleware.AccessListResult{GasUsed: gasUsed}
	if al != nil {
		res.AccessList = *al
	}
	return res, nil
}

// CallMsg builds the call message of a transaction.
func CallMsg(tx *txn.TypedTransaction) ethereum.CallMsg {
	msg := ethereum.CallMsg{
		To:         tx.To,
		Value:      tx.Value,
		Data:       tx.Data,
		AccessList: tx.AccessList,
	}
	if tx.From != nil {
		msg.From = *tx.From
	}
	if tx.Gas != nil {
		msg.Gas = *tx.Gas
	}
	if tx.Type == txn.DynamicFee {
		msg.GasFeeCap = tx.GasFeeCap
		msg.GasTipCap = tx.GasTipCap
	} else {
		msg.GasPrice = tx.GasPrice
	}
	return msg
}

var nonceConflicts = []string{
	"nonce too low",
	"invalid transaction nonce",
	"replacement transaction underpriced",
	"already known",
}

// IsNonceConflict reports whether the endpoint rejected a transaction because of its nonce.
func IsNonceConflict(err error) bool {
	if err == nil {
		return false
	}
	msg := strings.ToLower(err.Error())
	for _, c := range nonceConflicts {
		if strings.Contains(msg, c) {
			return true
		}
	}
	return false
}

// Kind classifies provider failures.
type Kind int

const (
	// KindTransport is a failure talking to the endpoint, or returned by it.
	KindTransport Kind = iota
	// KindEncoding is a malformed transaction.
	KindEncoding
)

// Error is the error of the provider layer.
type Error struct {
	Kind Kind
	Op   string
	Err  error
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s: %s", e.Op, e.Err)
}

// Unwrap returns the endpoint error.
func (e *Error) Unwrap() error {
	return e.Err
}

// Inner returns nil, the provider has no inner layer.
func (e *Error) Inner() error {
	return nil
}
