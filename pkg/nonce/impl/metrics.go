package impl

import (
	"context"
	"fmt"

	"github.com/textileio/go-ethmiddleware/pkg/metrics"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/metric/global"
	"go.opentelemetry.io/otel/metric/instrument"
)

func (m *NonceManager) initMetrics() error {
	meter := global.MeterProvider().Meter("ethmiddleware")
	m.mBaseLabels = append([]attribute.KeyValue{}, metrics.BaseAttrs...)

	mNonce, err := meter.Int64ObservableGauge("ethmiddleware.nonce.next")
	if err != nil {
		return fmt.Errorf("creating nonce metric: %s", err)
	}
	mAddresses, err := meter.Int64ObservableGauge("ethmiddleware.nonce.addresses")
	if err != nil {
		return fmt.Errorf("creating addresses metric: %s", err)
	}
	m.mResyncs, err = meter.Int64Counter("ethmiddleware.nonce.resyncs")
	if err != nil {
		return fmt.Errorf("creating resyncs metric: %s", err)
	}

	m.mRegistration, err = meter.RegisterCallback(
		func(ctx context.Context, o metric.Observer) error {
			m.mu.Lock()
			defer m.mu.Unlock()
			for addr, e := range m.entries {
				if !e.synced.Load() {
					continue
				}
				o.ObserveInt64(mNonce, int64(e.next.Load()), append([]attribute.KeyValue{
					attribute.String("address", addr.Hex()),
				}, m.mBaseLabels...)...)
			}
			o.ObserveInt64(mAddresses, int64(len(m.entries)), m.mBaseLabels...)

			return nil
		}, []instrument.Asynchronous{
			mNonce,
			mAddresses,
		}...)
	if err != nil {
		return fmt.Errorf("registering async metric callback: %s", err)
	}

	return nil
}
