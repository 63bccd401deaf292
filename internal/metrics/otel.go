package metrics

import (
	"context"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/otlp/otlpmetric/otlpmetrichttp"
	promexporter "go.opentelemetry.io/otel/exporters/prometheus"
	"go.opentelemetry.io/otel/metric"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/resource"
	semconv "go.opentelemetry.io/otel/semconv/v1.24.0"
)

// DefaultServiceName labels telemetry when TelemetryConfig.ServiceName is empty.
const DefaultServiceName = "toa-client"

var (
	promReaderFactory = prometheusComponents
	otlpReaderFactory = buildOTLPReader
	instrumentFactory = newOtelInstruments
)

// TelemetryConfig controls how metrics are exported.
type TelemetryConfig struct {
	Enabled      bool
	Port         string
	ServiceName  string
	OtlpEndpoint string
	OtlpInsecure bool
}

// Setup configures OpenTelemetry metrics with a Prometheus exporter and an
// optional OTLP exporter. When disabled it returns an in-memory Recorder, a nil
// handler and a no-op shutdown.
func Setup(ctx context.Context, cfg TelemetryConfig) (*Recorder, http.Handler, func(context.Context) error, error) {
	if !cfg.Enabled {
		return NewRecorder(), nil, func(context.Context) error { return nil }, nil
	}

	if cfg.ServiceName == "" {
		cfg.ServiceName = DefaultServiceName
	}

	promReader, promHandler, err := promReaderFactory()
	if err != nil {
		return nil, nil, nil, err
	}

	opts := []sdkmetric.Option{sdkmetric.WithReader(promReader)}

	if cfg.OtlpEndpoint != "" {
		otlpReader, err := otlpReaderFactory(ctx, cfg.OtlpEndpoint, cfg.OtlpInsecure)
		if err != nil {
			return nil, nil, nil, err
		}
		opts = append(opts, sdkmetric.WithReader(otlpReader))
	}

	res, err := resource.New(ctx,
		resource.WithAttributes(semconv.ServiceName(cfg.ServiceName)),
	)
	if err != nil {
		return nil, nil, nil, err
	}

	opts = append(opts, sdkmetric.WithResource(res))

	provider := sdkmetric.NewMeterProvider(opts...)

	otelInst, err := instrumentFactory(provider)
	if err != nil {
		return nil, nil, nil, err
	}

	rec := newRecorder(otelInst)
	shutdown := func(c context.Context) error {
		return provider.Shutdown(c)
	}

	return rec, promHandler, shutdown, nil
}

func buildOTLPReader(ctx context.Context, endpoint string, insecure bool) (sdkmetric.Reader, error) {
	otlpOpts := []otlpmetrichttp.Option{otlpmetrichttp.WithEndpoint(endpoint)}
	if insecure {
		otlpOpts = append(otlpOpts, otlpmetrichttp.WithInsecure())
	}
	otlpExp, err := otlpmetrichttp.New(ctx, otlpOpts...)
	if err != nil {
		return nil, err
	}
	return sdkmetric.NewPeriodicReader(otlpExp, sdkmetric.WithInterval(15*time.Second)), nil
}

type otelInstruments struct {
	ctx            context.Context
	requests       metric.Int64Counter
	requestErrors  metric.Int64Counter
	requestLatency metric.Float64Histogram
	retries        metric.Int64Counter
	rateLimitHits  metric.Int64Counter
	retryAfterMs   metric.Float64Histogram
	watchCycles    metric.Int64Counter
	watchErrors    metric.Int64Counter
	watchChanges   metric.Int64Counter
	watchLatency   metric.Float64Histogram
}

func prometheusComponents() (sdkmetric.Reader, http.Handler, error) {
	reg := prometheus.NewRegistry()
	promExp, err := promexporter.New(promexporter.WithRegisterer(reg))
	if err != nil {
		return nil, nil, err
	}
	return promExp, promhttp.HandlerFor(reg, promhttp.HandlerOpts{}), nil
}

func newOtelInstruments(provider metric.MeterProvider) (*otelInstruments, error) {
	meter := provider.Meter(DefaultServiceName)
	inst := &otelInstruments{ctx: context.Background()}

	var err error
	counters := []struct {
		dst  *metric.Int64Counter
		name string
		desc string
	}{
		{&inst.requests, "toa_requests_total", "TOA API requests by endpoint and status."},
		{&inst.requestErrors, "toa_request_errors_total", "Failed TOA API requests by endpoint and error kind."},
		{&inst.retries, "toa_retries_total", "Retries scheduled after a retryable failure."},
		{&inst.rateLimitHits, "toa_rate_limit_hits_total", "Responses with status 429."},
		{&inst.watchCycles, "toa_watch_cycles_total", "Ranking watch polls."},
		{&inst.watchErrors, "toa_watch_errors_total", "Ranking watch polls that failed."},
		{&inst.watchChanges, "toa_watch_changes_total", "Ranking rows that changed between polls."},
	}
	for _, c := range counters {
		if *c.dst, err = meter.Int64Counter(c.name, metric.WithDescription(c.desc)); err != nil {
			return nil, err
		}
	}

	histograms := []struct {
		dst  *metric.Float64Histogram
		name string
		desc string
	}{
		{&inst.requestLatency, "toa_request_duration_ms", "TOA API request latency in milliseconds."},
		{&inst.retryAfterMs, "toa_retry_after_ms", "Retry-After hints received with 429 responses."},
		{&inst.watchLatency, "toa_watch_cycle_duration_ms", "Ranking watch poll latency in milliseconds."},
	}
	for _, h := range histograms {
		if *h.dst, err = meter.Float64Histogram(h.name, metric.WithDescription(h.desc)); err != nil {
			return nil, err
		}
	}

	return inst, nil
}

func (o *otelInstruments) recordRequest(endpoint string, status int, duration time.Duration, err error) {
	if o == nil {
		return
	}
	attrs := []attribute.KeyValue{
		attribute.String(AttrEndpoint, endpoint),
		attribute.Int(AttrStatus, status),
	}
	o.recordCounter(o.requests, 1, attrs...)
	o.recordHistogram(o.requestLatency, float64(duration.Milliseconds()), attrs...)
	if err != nil {
		o.recordCounter(o.requestErrors, 1,
			attribute.String(AttrEndpoint, endpoint),
			attribute.String(AttrErrorKind, ErrorKind(err)),
		)
	}
}

func (o *otelInstruments) recordRetry(endpoint string) {
	if o == nil {
		return
	}
	o.recordCounter(o.retries, 1, attribute.String(AttrEndpoint, endpoint))
}

func (o *otelInstruments) recordRateLimit(endpoint string, retryAfter time.Duration) {
	if o == nil {
		return
	}
	attrs := []attribute.KeyValue{attribute.String(AttrEndpoint, endpoint)}
	o.recordCounter(o.rateLimitHits, 1, attrs...)
	if retryAfter > 0 {
		o.recordHistogram(o.retryAfterMs, float64(retryAfter.Milliseconds()), attrs...)
	}
}

func (o *otelInstruments) recordWatch(eventKey string, duration time.Duration, changes int, err error) {
	if o == nil {
		return
	}
	attrs := []attribute.KeyValue{attribute.String(AttrEventKey, eventKey)}
	o.recordCounter(o.watchCycles, 1, attrs...)
	o.recordHistogram(o.watchLatency, float64(duration.Milliseconds()), attrs...)
	if changes > 0 {
		o.recordCounter(o.watchChanges, int64(changes), attrs...)
	}
	if err != nil {
		o.recordCounter(o.watchErrors, 1, attrs...)
	}
}

func (o *otelInstruments) recordCounter(counter metric.Int64Counter, value int64, attrs ...attribute.KeyValue) {
	if o == nil {
		return
	}
	counter.Add(o.ctx, value, metric.WithAttributes(attrs...))
}

func (o *otelInstruments) recordHistogram(hist metric.Float64Histogram, value float64, attrs ...attribute.KeyValue) {
	if o == nil {
		return
	}
	hist.Record(o.ctx, value, metric.WithAttributes(attrs...))
}
