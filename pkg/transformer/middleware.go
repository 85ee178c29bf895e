package transformer

import (
	"context"
	"math/big"

	logger "github.com/rs/zerolog/log"
	"github.com/textileio/go-ethmiddleware/pkg/middleware"
	"github.com/textileio/go-ethmiddleware/pkg/txn"
)

var log = logger.With().Str("component", "transformer").Logger()

// Option modifies the configuration of the layer.
type Option func(*config)

type config struct {
	readPaths bool
}

// WithReadPaths also rewrites the transactions given to Call, EstimateGas and CreateAccessList.
func WithReadPaths() Option {
	return func(c *config) {
		c.readPaths = true
	}
}

// TransformerMiddleware rewrites submitted transactions before they reach the inner layer.
type TransformerMiddleware struct {
	middleware.Base

	transformer Transformer
	readPaths   bool
}

var _ middleware.Middleware = (*TransformerMiddleware)(nil)

// New returns a transformer layer over inner.
func New(inner middleware.Middleware, t Transformer, opts ...Option) *TransformerMiddleware {
	cfg := config{}
	for _, opt := range opts {
		opt(&cfg)
	}
	return &TransformerMiddleware{
		Base:        middleware.NewBase(inner, wrapInner),
		transformer: t,
		readPaths:   cfg.readPaths,
	}
}

// Transformer returns the configured transformer.
func (m *TransformerMiddleware) Transformer() Transformer {
	return m.transformer
}

// SendTransaction rewrites the transaction and delegates the send. Inner layers fill the rewritten
// transaction, so gas is estimated against the new target.
func (m *TransformerMiddleware) SendTransaction(
	ctx context.Context, tx *txn.TypedTransaction, block *big.Int,
) (*middleware.PendingTransaction, error) {
	out, err := m.transform(tx)
	if err != nil {
		return nil, err
	}
	log.Debug().
		Str("type", out.Type.String()).
		Msg("sending transformed transaction")
	return m.Base.SendTransaction(ctx, out, block)
}

// EstimateGas estimates the rewritten transaction when read paths are enabled.
func (m *TransformerMiddleware) EstimateGas(ctx context.Context, tx *txn.TypedTransaction, block *big.Int) (uint64, error) {
	tx, err := m.read(tx)
	if err != nil {
		return 0, err
	}
	return m.Base.EstimateGas(ctx, tx, block)
}

// Call runs the rewritten transaction when read paths are enabled.
func (m *TransformerMiddleware) Call(ctx context.Context, tx *txn.TypedTransaction, block *big.Int) ([]byte, error) {
	tx, err := m.read(tx)
	if err != nil {
		return nil, err
	}
	return m.Base.Call(ctx, tx, block)
}

// CreateAccessList builds the access list of the rewritten transaction when read paths are enabled.
func (m *TransformerMiddleware) CreateAccessList(
	ctx context.Context, tx *txn.TypedTransaction, block *big.Int,
) (*middleware.AccessListResult, error) {
	tx, err := m.read(tx)
	if err != nil {
		return nil, err
	}
	return m.Base.CreateAccessList(ctx, tx, block)
}

func (m *TransformerMiddleware) read(tx *txn.TypedTransaction) (*txn.TypedTransaction, error) {
	if !m.readPaths {
		return tx, nil
	}
	return m.transform(tx)
}

func (m *TransformerMiddleware) transform(tx *txn.TypedTransaction) (*txn.TypedTransaction, error) {
	out, err := m.transformer.Transform(tx)
	if err != nil {
		return nil, &Error{Kind: KindTransformer, Err: err}
	}
	return out, nil
}
