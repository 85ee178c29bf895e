package metrics

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"runtime"
	"time"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	logger "github.com/rs/zerolog/log"
	"github.com/textileio/go-ethmiddleware/buildinfo"
	"go.opentelemetry.io/otel/attribute"
	otelprom "go.opentelemetry.io/otel/exporters/prometheus"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/metric/global"
	"go.opentelemetry.io/otel/metric/instrument"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/metric/aggregation"
)

var log = logger.With().Str("component", "metrics").Logger()

// BaseAttrs contains attributes that should be added in all exported metrics.
var BaseAttrs []attribute.KeyValue

// Endpoint serves the collected metrics in the Prometheus format.
type Endpoint struct {
	provider *sdkmetric.MeterProvider
	server   *http.Server
	listener net.Listener
}

// SetupInstrumentation installs the global meter provider and serves /metrics on addr.
// An addr with port 0 picks a free port, see Addr.
func SetupInstrumentation(addr string, serviceName string) (*Endpoint, error) {
	BaseAttrs = []attribute.KeyValue{
		attribute.String("service_name", serviceName),
		attribute.String("service_version", buildinfo.GetSummary().Version),
	}

	registry := prometheus.NewRegistry()
	exporter, err := otelprom.New(
		otelprom.WithRegisterer(registry),
		otelprom.WithAggregationSelector(aggregatorSelector),
	)
	if err != nil {
		return nil, fmt.Errorf("creating prometheus exporter: %s", err)
	}

	provider := sdkmetric.NewMeterProvider(sdkmetric.WithReader(exporter))
	global.SetMeterProvider(provider)

	if err := startCollectingRuntimeMetrics(); err != nil {
		return nil, fmt.Errorf("start collecting Go runtime metrics: %s", err)
	}

	listener, err := net.Listen("tcp", addr)
	if err != nil {
		return nil, fmt.Errorf("listening on %s: %s", addr, err)
	}

	router := mux.NewRouter()
	router.Handle("/metrics", promhttp.HandlerFor(registry, promhttp.HandlerOpts{})).Methods(http.MethodGet)
	router.HandleFunc("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	}).Methods(http.MethodGet)
	e := &Endpoint{
		provider: provider,
		server:   &http.Server{Handler: router, ReadHeaderTimeout: 5 * time.Second},
		listener: listener,
	}
	go func() {
		if err := e.server.Serve(listener); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error().Err(err).Msg("serving metrics")
		}
	}()

	return e, nil
}

// Addr returns the address the endpoint listens on.
func (e *Endpoint) Addr() string {
	return e.listener.Addr().String()
}

// Close stops serving and flushes the meter provider.
func (e *Endpoint) Close(ctx context.Context) error {
	if err := e.server.Shutdown(ctx); err != nil {
		return fmt.Errorf("shutting down metrics server: %s", err)
	}
	if err := e.provider.Shutdown(ctx); err != nil {
		return fmt.Errorf("shutting down meter provider: %s", err)
	}
	return nil
}

func startCollectingRuntimeMetrics() error {
	meter := global.MeterProvider().Meter("runtime")

	uptime, err := meter.Int64ObservableGauge(
		"runtime.uptime",
		instrument.WithUnit("ms"),
		instrument.WithDescription("Milliseconds since application was initialized"),
	)
	if err != nil {
		return fmt.Errorf("creating runtime uptime: %s", err)
	}

	goroutines, err := meter.Int64ObservableGauge(
		"process.runtime.go.goroutines",
		instrument.WithDescription("Number of goroutines that currently exist"),
	)
	if err != nil {
		return fmt.Errorf("creating runtime goroutines: %s", err)
	}

	heapInuse, err := meter.Int64ObservableGauge(
		"process.runtime.go.mem.heap_inuse",
		instrument.WithUnit("By"),
		instrument.WithDescription("Bytes in in-use spans"),
	)
	if err != nil {
		return fmt.Errorf("creating heap in use: %s", err)
	}

	var (
		startTime    = time.Now()
		lastMemStats time.Time
		memStats     runtime.MemStats
	)
	_, err = meter.RegisterCallback(
		func(ctx context.Context, o metric.Observer) error {
			if time.Since(lastMemStats) >= 15*time.Second {
				runtime.ReadMemStats(&memStats)
				lastMemStats = time.Now()
			}
			o.ObserveInt64(uptime, time.Since(startTime).Milliseconds(), BaseAttrs...)
			o.ObserveInt64(goroutines, int64(runtime.NumGoroutine()), BaseAttrs...)
			o.ObserveInt64(heapInuse, int64(memStats.HeapInuse), BaseAttrs...)
			return nil
		},
		[]instrument.Asynchronous{
			uptime,
			goroutines,
			heapInuse,
		}...,
	)
	if err != nil {
		return fmt.Errorf("registering callback: %s", err)
	}

	return nil
}

func aggregatorSelector(ik sdkmetric.InstrumentKind) aggregation.Aggregation {
	switch ik {
	case sdkmetric.InstrumentKindCounter, sdkmetric.InstrumentKindUpDownCounter,
		sdkmetric.InstrumentKindObservableCounter, sdkmetric.InstrumentKindObservableUpDownCounter:
		return aggregation.Sum{}
	case sdkmetric.InstrumentKindObservableGauge:
		return aggregation.LastValue{}
	case sdkmetric.InstrumentKindHistogram:
		// latencies are recorded in milliseconds, RPC round trips dominate.
		return aggregation.ExplicitBucketHistogram{
			Boundaries: []float64{1, 5, 10, 25, 50, 100, 250, 500, 1000, 2500, 5000, 10000},
			NoMinMax:   false,
		}
	}
	panic("unknown instrument kind")
}
