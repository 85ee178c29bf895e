package instrumented

import (
	"context"
	"fmt"
	"math/big"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/textileio/go-ethmiddleware/pkg/metrics"
	"github.com/textileio/go-ethmiddleware/pkg/middleware"
	"github.com/textileio/go-ethmiddleware/pkg/signer"
	"github.com/textileio/go-ethmiddleware/pkg/txn"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric/global"
	"go.opentelemetry.io/otel/metric/instrument"
)

// InstrumentedMiddleware records the number of calls and their latency for every operation of the
// wrapped layer. Errors are returned unchanged.
type InstrumentedMiddleware struct {
	inner            middleware.Middleware
	layer            string
	callCount        instrument.Int64Counter
	latencyHistogram instrument.Int64Histogram
}

var _ middleware.Middleware = (*InstrumentedMiddleware)(nil)

// New creates a new InstrumentedMiddleware. layer names the wrapped layer in the metrics.
func New(inner middleware.Middleware, layer string) (*InstrumentedMiddleware, error) {
	meter := global.MeterProvider().Meter("ethmiddleware")
	callCount, err := meter.Int64Counter("ethmiddleware.call.count")
	if err != nil {
		return &InstrumentedMiddleware{}, fmt.Errorf("registering call counter: %s", err)
	}
	latencyHistogram, err := meter.Int64Histogram("ethmiddleware.call.latency")
	if err != nil {
		return &InstrumentedMiddleware{}, fmt.Errorf("registering latency histogram: %s", err)
	}

	return &InstrumentedMiddleware{
		inner:            inner,
		layer:            layer,
		callCount:        callCount,
		latencyHistogram: latencyHistogram,
	}, nil
}

// Inner returns the wrapped layer.
func (m *InstrumentedMiddleware) Inner() middleware.Middleware {
	return m.inner
}

// DefaultSender isn't instrumented, it never leaves the process.
func (m *InstrumentedMiddleware) DefaultSender() (common.Address, bool) {
	return m.inner.DefaultSender()
}

// FillTransaction implements middleware.Middleware.
func (m *InstrumentedMiddleware) FillTransaction(ctx context.Context, tx *txn.TypedTransaction, block *big.Int) error {
	start := time.Now()
	err := m.inner.FillTransaction(ctx, tx, block)
	m.record(ctx, "FillTransaction", start, err)
	return err
}

// SignTransaction implements middleware.Middleware.
func (m *InstrumentedMiddleware) SignTransaction(
	ctx context.Context, tx *txn.TypedTransaction, from common.Address,
) (*signer.Signature, error) {
	start := time.Now()
	sig, err := m.inner.SignTransaction(ctx, tx, from)
	m.record(ctx, "SignTransaction", start, err)
	return sig, err
}

// SendTransaction implements middleware.Middleware.
func (m *InstrumentedMiddleware) SendTransaction(
	ctx context.Context, tx *txn.TypedTransaction, block *big.Int,
) (*middleware.PendingTransaction, error) {
	start := time.Now()
	pending, err := m.inner.SendTransaction(ctx, tx, block)
	m.record(ctx, "SendTransaction", start, err)
	return pending, err
}

// SendRawTransaction implements middleware.Middleware.
func (m *InstrumentedMiddleware) SendRawTransaction(
	ctx context.Context, raw []byte,
) (*middleware.PendingTransaction, error) {
	start := time.Now()
	pending, err := m.inner.SendRawTransaction(ctx, raw)
	m.record(ctx, "SendRawTransaction", start, err)
	return pending, err
}

// Sign implements middleware.Middleware.
func (m *InstrumentedMiddleware) Sign(
	ctx context.Context, data []byte, from common.Address,
) (*signer.Signature, error) {
	start := time.Now()
	sig, err := m.inner.Sign(ctx, data, from)
	m.record(ctx, "Sign", start, err)
	return sig, err
}

// EstimateGas implements middleware.Middleware.
func (m *InstrumentedMiddleware) EstimateGas(
	ctx context.Context, tx *txn.TypedTransaction, block *big.Int,
) (uint64, error) {
	start := time.Now()
	gas, err := m.inner.EstimateGas(ctx, tx, block)
	m.record(ctx, "EstimateGas", start, err)
	return gas, err
}

// CreateAccessList implements middleware.Middleware.
func (m *InstrumentedMiddleware) CreateAccessList(
	ctx context.Context, tx *txn.TypedTransaction, block *big.Int,
) (*middleware.AccessListResult, error) {
	start := time.Now()
	res, err := m.inner.CreateAccessList(ctx, tx, block)
	m.record(ctx, "CreateAccessList", start, err)
	return res, err
}

// Call implements middleware.Middleware.
func (m *InstrumentedMiddleware) Call(ctx context.Context, tx *txn.TypedTransaction, block *big.Int) ([]byte, error) {
	start := time.Now()
	out, err := m.inner.Call(ctx, tx, block)
	m.record(ctx, "Call", start, err)
	return out, err
}

// GetTransactionCount implements middleware.Middleware.
func (m *InstrumentedMiddleware) GetTransactionCount(
	ctx context.Context, addr common.Address, block *big.Int,
) (uint64, error) {
	start := time.Now()
	count, err := m.inner.GetTransactionCount(ctx, addr, block)
	m.record(ctx, "GetTransactionCount", start, err)
	return count, err
}

// ChainID implements middleware.Middleware.
func (m *InstrumentedMiddleware) ChainID(ctx context.Context) (*big.Int, error) {
	start := time.Now()
	id, err := m.inner.ChainID(ctx)
	m.record(ctx, "ChainID", start, err)
	return id, err
}

func (m *InstrumentedMiddleware) record(ctx context.Context, method string, start time.Time, err error) {
	latency := time.Since(start).Milliseconds()

	attributes := append([]attribute.KeyValue{
		{Key: "method", Value: attribute.StringValue(method)},
		{Key: "success", Value: attribute.BoolValue(err == nil)},
		{Key: "layer", Value: attribute.StringValue(m.layer)},
	}, metrics.BaseAttrs...)

	m.callCount.Add(ctx, 1, attributes...)
	m.latencyHistogram.Record(ctx, latency, attributes...)
}
